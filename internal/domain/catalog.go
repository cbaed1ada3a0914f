package domain

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// catalogFields is the number of pipe-delimited fields in a catalog data line:
// condition, then one text per personality in Personalities() order.
const catalogFields = 5

// ConditionMessages holds one language's catalog: condition → personality → text.
// Treat it as read-only once built.
type ConditionMessages map[WeatherCondition]map[PersonalityMode]string

// MessageCatalog holds catalogs for several languages.
type MessageCatalog map[LanguageCode]ConditionMessages

// Lookup returns the text for a condition and personality, or "".
func (m ConditionMessages) Lookup(c WeatherCondition, p PersonalityMode) string {
	if m == nil {
		return ""
	}
	return m[c][p]
}

// CatalogLineError describes a catalog line that was skipped.
type CatalogLineError struct {
	Line   int
	Fields int
	Text   string
}

func (e CatalogLineError) Error() string {
	return fmt.Sprintf("catalog line %d: expected %d fields, got %d", e.Line, catalogFields, e.Fields)
}

// ParseCatalog reads a line-oriented catalog:
//
//	# comment
//	condition|neutral|cute|brutal|emuska
//
// Blank and '#' lines are ignored. Lines with the wrong number of fields are
// skipped and reported in the returned slice; they never abort the load.
// A later line for the same condition replaces an earlier one. The error is
// non-nil only when reading fails.
func ParseCatalog(r io.Reader) (ConditionMessages, []CatalogLineError, error) {
	messages := make(ConditionMessages)
	var skipped []CatalogLineError

	err := readLines(r, func(lineNo int, line string) {
		line = strings.TrimSpace(line)
		if lineNo == 1 {
			line = strings.TrimPrefix(line, "\ufeff")
		}
		if line == "" || strings.HasPrefix(line, "#") {
			return
		}

		parts := strings.Split(line, "|")
		if len(parts) != catalogFields {
			skipped = append(skipped, CatalogLineError{Line: lineNo, Fields: len(parts), Text: line})
			return
		}

		condition := WeatherCondition(strings.ToLower(strings.TrimSpace(parts[0])))
		texts := make(map[PersonalityMode]string, len(personalities))
		for i, p := range personalities {
			texts[p] = strings.TrimSpace(parts[i+1])
		}
		messages[condition] = texts
	})
	if err != nil {
		return messages, skipped, fmt.Errorf("read catalog: %w", err)
	}

	return messages, skipped, nil
}

// readLines calls fn for every line of r, numbered from 1, without the
// trailing newline. Lines may be of any length.
func readLines(r io.Reader, fn func(lineNo int, line string)) error {
	br := bufio.NewReader(r)
	for lineNo := 1; ; lineNo++ {
		line, err := br.ReadString('\n')
		if line != "" {
			fn(lineNo, strings.TrimSuffix(line, "\n"))
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}
