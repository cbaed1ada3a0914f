package domain

import (
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"time"
)

// CatalogSource supplies per-language reference data to the report builder.
// Implementations must be safe for concurrent use and must not mutate
// returned values.
type CatalogSource interface {
	Messages(language LanguageCode) ConditionMessages
	Namedays(language LanguageCode) NamedayCalendar
}

type reportLabels struct {
	intro       string
	temperature string
	rain        string
	rainAmount  string
	wind        string
	subject     string
	briefTitle  string
	empty       string
}

var labels = map[LanguageCode]reportLabels{
	LanguageEnglish: {
		intro:       "Today's weather for %s:",
		temperature: "🌡️ Temperature: High %s°C / Low %s°C",
		rain:        "🌧️ Rain probability: %s%%",
		rainAmount:  " (≈%s mm)",
		wind:        "💨 Wind: up to %s km/h",
		subject:     "Your daily weather for %s",
		briefTitle:  "Your daily brief",
		empty:       "No active subscriptions.",
	},
	LanguageSpanish: {
		intro:       "El tiempo de hoy para %s:",
		temperature: "🌡️ Temperatura: máxima %s°C / mínima %s°C",
		rain:        "🌧️ Probabilidad de lluvia: %s%%",
		rainAmount:  " (≈%s mm)",
		wind:        "💨 Viento: hasta %s km/h",
		subject:     "Tu pronóstico diario para %s",
		briefTitle:  "Tu resumen diario",
		empty:       "No hay suscripciones activas.",
	},
	LanguageSlovak: {
		intro:       "Dnešné počasie pre %s:",
		temperature: "🌡️ Teplota: max %s°C / min %s°C",
		rain:        "🌧️ Pravdepodobnosť dažďa: %s%%",
		rainAmount:  " (≈%s mm)",
		wind:        "💨 Vietor: do %s km/h",
		subject:     "Tvoje denné počasie pre %s",
		briefTitle:  "Tvoj denný prehľad",
		empty:       "Žiadne aktívne odbery.",
	},
}

func labelsFor(language LanguageCode) (reportLabels, LanguageCode) {
	if l, ok := labels[language]; ok {
		return l, language
	}
	return labels[LanguageEnglish], LanguageEnglish
}

// ReportBuilder turns forecast numbers into humanized, localized messages.
type ReportBuilder struct {
	catalogs CatalogSource
	logger   *slog.Logger
}

// NewReportBuilder creates a ReportBuilder. A nil catalog source is allowed;
// every message then comes from the generic fallbacks.
func NewReportBuilder(catalogs CatalogSource, logger *slog.Logger) *ReportBuilder {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReportBuilder{catalogs: catalogs, logger: logger}
}

func (b *ReportBuilder) messages(language LanguageCode) ConditionMessages {
	if b.catalogs == nil {
		return nil
	}
	return b.catalogs.Messages(language)
}

// GenerateWeatherReport classifies obs and renders the full weather report:
// numeric summary, condition message and clothing advice. The result is
// never empty.
func (b *ReportBuilder) GenerateWeatherReport(obs WeatherObservation, location string, personality PersonalityMode, language LanguageCode) string {
	report, _ := b.weatherReport(obs, location, personality, language)
	return report
}

func (b *ReportBuilder) weatherReport(obs WeatherObservation, location string, personality PersonalityMode, language LanguageCode) (string, WeatherCondition) {
	lbl, language := labelsFor(language)
	if _, ok := ParsePersonality(string(personality)); !ok {
		personality = PersonalityNeutral
	}
	location = strings.TrimSpace(location)
	if location == "" {
		location = fallbackLocation
	}

	condition := ClassifyCondition(obs)
	message := ResolveMessage(b.messages(language), condition, personality, language, b.logger)

	rain := fmt.Sprintf(lbl.rain, formatPercent(obs.PrecipitationProbability))
	if obs.PrecipitationSum > 0 {
		rain += fmt.Sprintf(lbl.rainAmount, formatNumber(obs.PrecipitationSum))
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, lbl.intro, location)
	sb.WriteString("\n\n")
	fmt.Fprintf(&sb, lbl.temperature, formatNumber(obs.TempMax), formatNumber(obs.TempMin))
	sb.WriteString("\n")
	sb.WriteString(rain)
	sb.WriteString("\n")
	fmt.Fprintf(&sb, lbl.wind, formatNumber(obs.WindSpeedMax))
	sb.WriteString("\n\n")
	sb.WriteString(message)
	sb.WriteString("\n\n👕 ")
	sb.WriteString(ClothingAdvice(obs, personality, language))

	return sb.String(), condition
}

// BriefRequest is everything the daily brief for one subscriber needs.
// A nil Observation or empty Location leaves the weather section out.
type BriefRequest struct {
	Location       string
	Personality    PersonalityMode
	Language       LanguageCode
	Date           time.Time
	Observation    *WeatherObservation
	Countdowns     []CountdownEvent
	IncludeNameday bool
}

// DailyBrief is the rendered daily message.
type DailyBrief struct {
	Subject   string
	Body      string
	Condition WeatherCondition // empty when the weather section is absent
}

// BuildDailyBrief assembles the weather report, name day and countdowns into
// one message. Sections are separated by a blank line; a brief with no
// sections says so in the subscriber's language.
func (b *ReportBuilder) BuildDailyBrief(req BriefRequest) DailyBrief {
	lbl, language := labelsFor(req.Language)
	date := req.Date
	if date.IsZero() {
		date = clock.Now()
	}

	brief := DailyBrief{Subject: lbl.briefTitle}
	var sections []string

	if req.Observation != nil && strings.TrimSpace(req.Location) != "" {
		report, condition := b.weatherReport(*req.Observation, req.Location, req.Personality, language)
		sections = append(sections, report)
		brief.Condition = condition
		brief.Subject = fmt.Sprintf(lbl.subject, strings.TrimSpace(req.Location))
	}

	if req.IncludeNameday && b.catalogs != nil {
		if msg := b.catalogs.Namedays(language).Message(date); msg != "" {
			sections = append(sections, "🎂 "+msg)
		}
	}

	if section := CountdownSection(req.Countdowns, date, language); section != "" {
		sections = append(sections, section)
	}

	if len(sections) == 0 {
		brief.Body = lbl.empty
		return brief
	}
	brief.Body = strings.Join(sections, "\n\n")
	return brief
}

// formatNumber renders a measurement with at most one decimal place.
func formatNumber(v float64) string {
	r := math.Round(v*10) / 10
	if r == 0 {
		return "0"
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}

func formatPercent(v float64) string {
	return strconv.Itoa(int(math.Round(math.Max(0, math.Min(100, v)))))
}
