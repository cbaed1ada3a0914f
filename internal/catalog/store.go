// Package catalog loads the per-language message catalogs and name-day
// calendars used by the report builder. Built-in files are embedded in the
// binary; a directory with the same layout can override them file by file:
//
//	<dir>/<lang>/weather_messages.txt
//	<dir>/<lang>/namedays.txt
package catalog

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"sync"

	"github.com/couchcryptid/daily-brief-service/internal/domain"
)

const (
	messagesFile = "weather_messages.txt"
	namedaysFile = "namedays.txt"
)

//go:embed languages
var embedded embed.FS

// Builtin returns the embedded catalog files rooted at the language
// directories.
func Builtin() fs.FS {
	sub, err := fs.Sub(embedded, "languages")
	if err != nil {
		panic(err) // the embed pattern guarantees the directory exists
	}
	return sub
}

// Store caches one parsed catalog and name-day calendar per language. The
// first lookup for a language loads it; later lookups share the cached maps
// until Reload. Safe for concurrent use.
type Store struct {
	layers []fs.FS // searched in order, first hit wins
	logger *slog.Logger

	mu       sync.RWMutex
	messages map[domain.LanguageCode]domain.ConditionMessages
	namedays map[domain.LanguageCode]domain.NamedayCalendar
}

// New creates a store over the given file systems. Each file is read from
// the first layer that has it.
func New(logger *slog.Logger, layers ...fs.FS) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		layers:   layers,
		logger:   logger,
		messages: make(map[domain.LanguageCode]domain.ConditionMessages),
		namedays: make(map[domain.LanguageCode]domain.NamedayCalendar),
	}
}

// Open creates a store that reads dir first and falls back to the embedded
// files. An empty dir uses the embedded files only.
func Open(dir string, logger *slog.Logger) (*Store, error) {
	if dir == "" {
		return New(logger, Builtin()), nil
	}
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("open catalog dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("open catalog dir: %s is not a directory", dir)
	}
	return New(logger, os.DirFS(dir), Builtin()), nil
}

// Messages returns the condition messages for a language. A missing file
// yields an empty catalog, which the fallback chain handles.
func (s *Store) Messages(language domain.LanguageCode) domain.ConditionMessages {
	s.mu.RLock()
	m, ok := s.messages[language]
	s.mu.RUnlock()
	if ok {
		return m
	}

	m, err := s.loadMessages(language)
	if err != nil {
		s.logger.Warn("catalog unavailable", "language", language, "error", err)
		m = domain.ConditionMessages{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if cached, ok := s.messages[language]; ok {
		return cached
	}
	s.messages[language] = m
	return m
}

// Namedays returns the name-day calendar for a language. Languages without a
// calendar file get an empty calendar.
func (s *Store) Namedays(language domain.LanguageCode) domain.NamedayCalendar {
	s.mu.RLock()
	c, ok := s.namedays[language]
	s.mu.RUnlock()
	if ok {
		return c
	}

	c, err := s.loadNamedays(language)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.logger.Warn("nameday calendar unavailable", "language", language, "error", err)
		}
		c = domain.NamedayCalendar{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if cached, ok := s.namedays[language]; ok {
		return cached
	}
	s.namedays[language] = c
	return c
}

// Reload re-reads every supported language and swaps the cache in one step.
// On a read error the previous cache is kept and the error returned.
func (s *Store) Reload() error {
	messages := make(map[domain.LanguageCode]domain.ConditionMessages)
	namedays := make(map[domain.LanguageCode]domain.NamedayCalendar)

	for _, lang := range domain.SupportedLanguages() {
		m, err := s.loadMessages(lang)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("reload %s messages: %w", lang, err)
		}
		if m == nil {
			m = domain.ConditionMessages{}
		}
		messages[lang] = m

		c, err := s.loadNamedays(lang)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("reload %s namedays: %w", lang, err)
		}
		namedays[lang] = c
	}

	s.mu.Lock()
	s.messages = messages
	s.namedays = namedays
	s.mu.Unlock()

	s.logger.Info("catalogs reloaded", "languages", len(messages))
	return nil
}

func (s *Store) loadMessages(language domain.LanguageCode) (domain.ConditionMessages, error) {
	f, name, err := s.open(path.Join(string(language), messagesFile))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, skipped, err := domain.ParseCatalog(f)
	for _, e := range skipped {
		s.logger.Warn("skipping malformed catalog line",
			"file", name,
			"line", e.Line,
			"fields", e.Fields,
		)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	s.logger.Debug("catalog loaded", "language", language, "conditions", len(m), "skipped", len(skipped))
	return m, nil
}

func (s *Store) loadNamedays(language domain.LanguageCode) (domain.NamedayCalendar, error) {
	f, name, err := s.open(path.Join(string(language), namedaysFile))
	if err != nil {
		return domain.NamedayCalendar{}, err
	}
	defer f.Close()

	c, err := domain.ParseNamedays(f)
	if err != nil {
		return domain.NamedayCalendar{}, fmt.Errorf("%s: %w", name, err)
	}
	return c, nil
}

// open returns the file from the first layer that has it.
func (s *Store) open(name string) (fs.File, string, error) {
	for _, layer := range s.layers {
		f, err := layer.Open(name)
		if err == nil {
			return f, name, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, name, err
		}
	}
	return nil, name, fmt.Errorf("%s: %w", name, fs.ErrNotExist)
}

// FS returns the merged view of the store's layers, the files Messages and
// Namedays actually read.
func (s *Store) FS() fs.FS {
	return layeredFS{s}
}

type layeredFS struct{ s *Store }

func (l layeredFS) Open(name string) (fs.File, error) {
	f, _, err := l.s.open(name)
	return f, err
}
