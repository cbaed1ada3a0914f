package domain

import (
	"fmt"
	"io"
	"strings"
	"time"
)

const namedayMessageMarker = "# Message:"

// NamedayCalendar maps MM-DD keys to the names celebrated that day.
// A calendar without a Prefix is treated as unsupported.
type NamedayCalendar struct {
	Prefix string
	Names  map[string]string
}

// ParseNamedays reads a name-day file:
//
//	# Message: Meniny má
//	01-02=Alexandra, Karina
//
// Other '#' lines are comments. Lines without '=' are ignored.
func ParseNamedays(r io.Reader) (NamedayCalendar, error) {
	cal := NamedayCalendar{Names: make(map[string]string)}

	err := readLines(r, func(_ int, line string) {
		line = strings.TrimSpace(line)
		switch {
		case line == "":
			return
		case strings.HasPrefix(line, namedayMessageMarker):
			cal.Prefix = strings.TrimSpace(strings.TrimPrefix(line, namedayMessageMarker))
			return
		case strings.HasPrefix(line, "#"):
			return
		}

		key, names, ok := strings.Cut(line, "=")
		if !ok {
			return
		}
		cal.Names[strings.TrimSpace(key)] = strings.TrimSpace(names)
	})
	if err != nil {
		return cal, fmt.Errorf("read namedays: %w", err)
	}
	return cal, nil
}

// Message returns "<prefix> <names>" for the date, or "" when the calendar is
// unsupported or nobody celebrates that day.
func (c NamedayCalendar) Message(date time.Time) string {
	if c.Prefix == "" {
		return ""
	}
	names := c.Names[date.Format("01-02")]
	if names == "" {
		return ""
	}
	return c.Prefix + " " + names
}
