package domain

import (
	"strconv"
	"strings"
	"time"
)

const countdownDateLayout = "2006-01-02"

// CountdownEvent is a user-defined date the daily brief counts down to.
// Templates may use {name}, {days} and {unit} placeholders.
type CountdownEvent struct {
	Name          string `json:"name" yaml:"name"`
	Date          string `json:"date" yaml:"date"` // YYYY-MM-DD
	Yearly        bool   `json:"yearly" yaml:"yearly"`
	MessageBefore string `json:"message_before,omitempty" yaml:"message_before,omitempty"`
	MessageAfter  string `json:"message_after,omitempty" yaml:"message_after,omitempty"`
}

var (
	countdownBefore = map[LanguageCode]string{
		LanguageEnglish: "{name}: {days} {unit} to go",
		LanguageSpanish: "{name}: faltan {days} {unit}",
		LanguageSlovak:  "{name}: ešte {days} {unit}",
	}
	countdownToday = map[LanguageCode]string{
		LanguageEnglish: "{name} is today! 🎉",
		LanguageSpanish: "¡{name} es hoy! 🎉",
		LanguageSlovak:  "{name} je dnes! 🎉",
	}
	countdownHeader = map[LanguageCode]string{
		LanguageEnglish: "⏳ Countdowns:",
		LanguageSpanish: "⏳ Cuentas atrás:",
		LanguageSlovak:  "⏳ Odpočítavanie:",
	}
)

// DaysWord returns the localized unit for n days, using Slovak's
// 1 / 2-4 / 5+ plural forms.
func DaysWord(n int, language LanguageCode) string {
	if n < 0 {
		n = -n
	}
	switch language {
	case LanguageSlovak:
		switch {
		case n == 1:
			return "deň"
		case n >= 2 && n <= 4:
			return "dni"
		default:
			return "dní"
		}
	case LanguageSpanish:
		if n == 1 {
			return "día"
		}
		return "días"
	default:
		if n == 1 {
			return "day"
		}
		return "days"
	}
}

// NextOccurrence returns the event date relevant to today, as a UTC midnight.
// Yearly events roll over to next year once this year's date has passed;
// the event day itself still counts as this year.
func (e CountdownEvent) NextOccurrence(today time.Time) (time.Time, error) {
	date, err := time.Parse(countdownDateLayout, strings.TrimSpace(e.Date))
	if err != nil {
		return time.Time{}, err
	}
	if !e.Yearly {
		return date, nil
	}

	day := civilDay(today)
	next := time.Date(day.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	if next.Before(day) {
		next = time.Date(day.Year()+1, date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	}
	return next, nil
}

// Line renders the countdown for today. It reports false when the event date
// is invalid, or when a one-off event has passed and has no after-template.
func (e CountdownEvent) Line(today time.Time, language LanguageCode) (string, bool) {
	if _, ok := countdownBefore[language]; !ok {
		language = LanguageEnglish
	}

	next, err := e.NextOccurrence(today)
	if err != nil {
		return "", false
	}

	days := int(next.Sub(civilDay(today)).Hours() / 24)

	var template string
	switch {
	case days > 0:
		template = e.MessageBefore
		if template == "" {
			template = countdownBefore[language]
		}
	case days == 0:
		template = countdownToday[language]
	default:
		if e.MessageAfter == "" {
			return "", false
		}
		template = e.MessageAfter
		days = -days
	}

	if days != 0 && !strings.Contains(template, "{days}") {
		template += ": {days} {unit}"
	}

	r := strings.NewReplacer(
		"{name}", e.Name,
		"{days}", strconv.Itoa(days),
		"{unit}", DaysWord(days, language),
	)
	return r.Replace(template), true
}

// CountdownSection renders all active countdowns under a localized header,
// or "" when none produce a line.
func CountdownSection(events []CountdownEvent, today time.Time, language LanguageCode) string {
	var lines []string
	for _, e := range events {
		if line, ok := e.Line(today, language); ok {
			lines = append(lines, "• "+line)
		}
	}
	if len(lines) == 0 {
		return ""
	}

	header, ok := countdownHeader[language]
	if !ok {
		header = countdownHeader[LanguageEnglish]
	}
	return header + "\n" + strings.Join(lines, "\n")
}

// civilDay strips the clock time, keeping the calendar date of t in its own
// location.
func civilDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
