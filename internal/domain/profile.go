package domain

import "strings"

// PersonalityMode selects the text style of outbound messages.
// The zero value means "not specified".
type PersonalityMode string

// Personality modes.
const (
	PersonalityNeutral PersonalityMode = "neutral"
	PersonalityCute    PersonalityMode = "cute"
	PersonalityBrutal  PersonalityMode = "brutal"
	PersonalityEmuska  PersonalityMode = "emuska"
)

// LanguageCode is an ISO 639-1 code of a supported message language.
// The zero value means "not specified".
type LanguageCode string

// Supported languages.
const (
	LanguageEnglish LanguageCode = "en"
	LanguageSpanish LanguageCode = "es"
	LanguageSlovak  LanguageCode = "sk"
)

var personalities = []PersonalityMode{PersonalityNeutral, PersonalityCute, PersonalityBrutal, PersonalityEmuska}

var languages = []LanguageCode{LanguageEnglish, LanguageSpanish, LanguageSlovak}

// Personalities returns all personality modes in catalog column order.
func Personalities() []PersonalityMode {
	out := make([]PersonalityMode, len(personalities))
	copy(out, personalities)
	return out
}

// SupportedLanguages returns all languages the service can render.
func SupportedLanguages() []LanguageCode {
	out := make([]LanguageCode, len(languages))
	copy(out, languages)
	return out
}

// ParsePersonality validates a stored or user-supplied personality value.
// Matching is case-insensitive and ignores surrounding whitespace.
func ParsePersonality(s string) (PersonalityMode, bool) {
	p := PersonalityMode(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range personalities {
		if p == known {
			return p, true
		}
	}
	return "", false
}

// ParseLanguage validates a stored or user-supplied language code.
func ParseLanguage(s string) (LanguageCode, bool) {
	l := LanguageCode(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range languages {
		if l == known {
			return l, true
		}
	}
	return "", false
}

// NormalizeProfile resolves a stored (personality, language) pair into values
// safe for rendering: unknown personalities become neutral and unknown
// languages become English. The second return value reports whether anything
// had to be replaced.
func NormalizeProfile(personality, language string) (PersonalityMode, LanguageCode, bool) {
	p, okP := ParsePersonality(personality)
	if !okP {
		p = PersonalityNeutral
	}
	l, okL := ParseLanguage(language)
	if !okL {
		l = LanguageEnglish
	}
	return p, l, okP && okL
}

// MessagePersonality returns the personality used for catalog lookups.
// Emuska exists only in Slovak; elsewhere it is rendered as cute.
func MessagePersonality(p PersonalityMode, l LanguageCode) PersonalityMode {
	if p == PersonalityEmuska && l != LanguageSlovak {
		return PersonalityCute
	}
	return p
}
