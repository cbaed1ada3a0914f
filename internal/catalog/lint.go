package catalog

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"time"

	"github.com/couchcryptid/daily-brief-service/internal/domain"
)

// Issue is one problem found by Lint.
type Issue struct {
	File    string
	Line    int // 0 when the problem is not tied to a line
	Message string
}

func (i Issue) String() string {
	if i.Line > 0 {
		return fmt.Sprintf("%s:%d: %s", i.File, i.Line, i.Message)
	}
	return fmt.Sprintf("%s: %s", i.File, i.Message)
}

// Lint checks the catalog files of every supported language in fsys. The
// error is non-nil only when a file exists but cannot be read.
func Lint(fsys fs.FS) ([]Issue, error) {
	var issues []Issue
	for _, lang := range domain.SupportedLanguages() {
		found, err := lintMessages(fsys, lang)
		if err != nil {
			return issues, err
		}
		issues = append(issues, found...)

		found, err = lintNamedays(fsys, lang)
		if err != nil {
			return issues, err
		}
		issues = append(issues, found...)
	}
	return issues, nil
}

func lintMessages(fsys fs.FS, lang domain.LanguageCode) ([]Issue, error) {
	name := path.Join(string(lang), messagesFile)
	f, err := fsys.Open(name)
	if errors.Is(err, fs.ErrNotExist) {
		return []Issue{{File: name, Message: "missing message catalog"}}, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	messages, skipped, err := domain.ParseCatalog(f)
	if err != nil {
		return nil, err
	}

	var issues []Issue
	for _, e := range skipped {
		issues = append(issues, Issue{File: name, Line: e.Line, Message: fmt.Sprintf("expected 5 fields, got %d", e.Fields)})
	}

	if messages.Lookup(domain.ConditionDefault, domain.PersonalityNeutral) == "" {
		issues = append(issues, Issue{File: name, Message: "no neutral default message"})
	}

	conditions := make([]domain.WeatherCondition, 0, len(messages))
	for c := range messages {
		conditions = append(conditions, c)
	}
	sort.Slice(conditions, func(i, j int) bool { return conditions[i] < conditions[j] })

	for _, c := range conditions {
		if !c.IsKnown() {
			issues = append(issues, Issue{File: name, Message: fmt.Sprintf("unknown condition %q", c)})
			continue
		}
		if messages.Lookup(c, domain.PersonalityNeutral) == "" {
			issues = append(issues, Issue{File: name, Message: fmt.Sprintf("condition %q has no neutral text", c)})
		}
		if lang != domain.LanguageSlovak && messages.Lookup(c, domain.PersonalityEmuska) != "" {
			issues = append(issues, Issue{File: name, Message: fmt.Sprintf("condition %q has emuska text that is never shown outside sk", c)})
		}
	}
	return issues, nil
}

func lintNamedays(fsys fs.FS, lang domain.LanguageCode) ([]Issue, error) {
	name := path.Join(string(lang), namedaysFile)
	f, err := fsys.Open(name)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cal, err := domain.ParseNamedays(f)
	if err != nil {
		return nil, err
	}

	var issues []Issue
	if cal.Prefix == "" {
		issues = append(issues, Issue{File: name, Message: "missing '# Message:' line"})
	}

	keys := make([]string, 0, len(cal.Names))
	for k := range cal.Names {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		// 2024 is a leap year, so 02-29 parses.
		if _, err := time.Parse("2006-01-02", "2024-"+k); err != nil {
			issues = append(issues, Issue{File: name, Message: fmt.Sprintf("invalid date key %q", k)})
		}
	}
	return issues, nil
}
