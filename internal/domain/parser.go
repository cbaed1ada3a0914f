package domain

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// fallbackLocation is subscribed when a message carries no usable text at all.
const fallbackLocation = "current"

var (
	// languageMap maps language codes plus English and native language names
	// onto a LanguageCode.
	languageMap = map[string]LanguageCode{
		"en":         LanguageEnglish,
		"eng":        LanguageEnglish,
		"english":    LanguageEnglish,
		"anglicky":   LanguageEnglish,
		"angličtina": LanguageEnglish,
		"inglés":     LanguageEnglish,
		"ingles":     LanguageEnglish,
		"es":         LanguageSpanish,
		"spanish":    LanguageSpanish,
		"español":    LanguageSpanish,
		"espanol":    LanguageSpanish,
		"castellano": LanguageSpanish,
		"španielsky": LanguageSpanish,
		"sk":         LanguageSlovak,
		"slovak":     LanguageSlovak,
		"slovenčina": LanguageSlovak,
		"slovencina": LanguageSlovak,
		"slovensky":  LanguageSlovak,
		"slovenský":  LanguageSlovak,
		"eslovaco":   LanguageSlovak,
	}

	// personalityMap maps canonical personality names and their synonyms.
	personalityMap = map[string]PersonalityMode{
		"neutral":  PersonalityNeutral,
		"normal":   PersonalityNeutral,
		"standard": PersonalityNeutral,
		"basic":    PersonalityNeutral,
		"cute":     PersonalityCute,
		"sweet":    PersonalityCute,
		"lovely":   PersonalityCute,
		"nice":     PersonalityCute,
		"kind":     PersonalityCute,
		"brutal":   PersonalityBrutal,
		"harsh":    PersonalityBrutal,
		"direct":   PersonalityBrutal,
		"honest":   PersonalityBrutal,
		"straight": PersonalityBrutal,
		"emuska":   PersonalityEmuska,
		"emuška":   PersonalityEmuska,
		"princess": PersonalityEmuska,
		"romantic": PersonalityEmuska,
		"loving":   PersonalityEmuska,
	}

	// ignoreWords are command words, labels, articles, prepositions and
	// politeness words that never name a location.
	ignoreWords = toSet(
		// commands and labels
		"subscribe", "subscription", "weather", "forecast", "daily", "report",
		"update", "change", "set", "switch", "mode", "style", "personality",
		"language", "lang", "location", "city", "place", "where", "send",
		"want", "would", "like", "get", "give", "use", "please", "pls",
		// articles, pronouns, prepositions
		"the", "a", "an", "in", "at", "for", "to", "of", "on", "from", "with",
		"by", "near", "me", "my", "i", "is", "it", "be", "and", "or", "this",
		"that", "you", "your", "today", "tomorrow",
		// greetings and thanks
		"hi", "hello", "hey", "dear", "thanks", "thank", "cheers", "regards",
		"best", "ok", "okay", "yes", "no",
		// Slovak
		"prosím", "prosim", "ďakujem", "dakujem", "ahoj", "dobrý", "deň",
		"počasie", "pocasie", "pre", "do", "vo", "na", "mesto", "jazyk",
		"chcem", "zmeniť", "zmenit",
		// Spanish
		"hola", "gracias", "por", "favor", "para", "el", "la", "los", "las",
		"de", "del", "tiempo", "clima", "ciudad", "idioma", "quiero",
	)

	// labelPrefixRe strips a leading "location:"-style label from a line.
	labelPrefixRe = regexp.MustCompile(`(?i)^(location|city|place|where):\s*`)
)

func toSet(words ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

func isIgnored(lower string) bool {
	_, ok := ignoreWords[lower]
	return ok
}

func isKeyword(lower string) bool {
	if _, ok := languageMap[lower]; ok {
		return true
	}
	_, ok := personalityMap[lower]
	return ok
}

// ParseCommand interprets a free-text message body as one subscription
// command. It never fails: text with nothing recognizable subscribes the
// first meaningful line, and empty text subscribes "current".
func ParseCommand(text string) ParsedCommand {
	text = strings.TrimSpace(sanitizeText(text))
	lower := strings.ToLower(text)

	if strings.Contains(lower, "delete") || strings.Contains(lower, "unsubscribe") {
		return DeleteCommand()
	}

	lines := splitLines(text)

	var (
		language    LanguageCode
		personality PersonalityMode
		candidates  []string
	)

	for _, line := range lines {
		for _, token := range splitTokens(line) {
			tl := strings.ToLower(token)
			if l, ok := languageMap[tl]; ok {
				if language == "" {
					language = l
				}
				continue
			}
			if p, ok := personalityMap[tl]; ok {
				if personality == "" {
					personality = p
				}
				continue
			}
			if !isIgnored(tl) && utf8.RuneCountInString(token) > 1 {
				candidates = append(candidates, token)
			}
		}
	}

	for _, line := range lines {
		if isKeyword(strings.ToLower(line)) {
			continue
		}
		rest := strings.TrimSpace(labelPrefixRe.ReplaceAllString(line, ""))
		if rest != "" && !isIgnored(strings.ToLower(rest)) {
			candidates = append(candidates, rest)
		}
	}

	location := selectLocation(candidates)

	switch {
	case personality != "" && location == "":
		return PersonalityCommand(personality)
	case language != "" && location == "" && personality == "":
		return LanguageCommand(language)
	case location != "":
		return WeatherCommand(location, personality, language)
	}

	return WeatherCommand(fallbackLine(lines), "", "")
}

// sanitizeText drops invalid UTF-8 and composes accents so that decomposed
// input ("slovenčina") matches the lookup tables.
func sanitizeText(s string) string {
	return norm.NFC.String(strings.ToValidUTF8(s, ""))
}

// splitLines returns the trimmed, non-empty lines of text.
func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// splitTokens breaks a line into punctuation-free tokens. Whitespace fields
// ending in ':' are label markers and are dropped whole.
func splitTokens(line string) []string {
	var tokens []string
	for _, field := range strings.Fields(line) {
		if strings.HasSuffix(field, ":") {
			continue
		}
		for _, token := range strings.FieldsFunc(field, isTokenSeparator) {
			if token = strings.Trim(token, "-'"); token != "" {
				tokens = append(tokens, token)
			}
		}
	}
	return tokens
}

func isTokenSeparator(r rune) bool {
	return !unicode.IsLetter(r) && !unicode.IsDigit(r) && !unicode.IsMark(r) && r != '-' && r != '\''
}

// selectLocation prefers longer candidates, which tend to be more specific
// ("Bratislava, Slovakia" over "Bratislava"), skipping any candidate that
// itself carries a language or personality keyword.
func selectLocation(candidates []string) string {
	if len(candidates) == 0 {
		return ""
	}

	seen := make(map[string]struct{}, len(candidates))
	unique := make([]string, 0, len(candidates))
	for _, c := range candidates {
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		unique = append(unique, c)
	}

	sort.SliceStable(unique, func(i, j int) bool {
		return utf8.RuneCountInString(unique[i]) > utf8.RuneCountInString(unique[j])
	})

	for _, c := range unique {
		if !containsKeyword(c) {
			return c
		}
	}
	return unique[0]
}

func containsKeyword(candidate string) bool {
	for _, token := range splitTokens(strings.ToLower(candidate)) {
		if isKeyword(token) {
			return true
		}
	}
	return false
}

// fallbackLine picks a location when no candidate survived: the first line
// that is not a filler word, else the first line, else "current".
func fallbackLine(lines []string) string {
	for _, line := range lines {
		if !isIgnored(strings.ToLower(line)) {
			return line
		}
	}
	if len(lines) > 0 {
		return lines[0]
	}
	return fallbackLocation
}
