package domain

import "log/slog"

// genericMessages are the last resort when a catalog has neither the
// condition nor a default entry. They do not depend on catalog state.
var genericMessages = map[LanguageCode]map[PersonalityMode]string{
	LanguageEnglish: {
		PersonalityNeutral: "Have a great day!",
		PersonalityCute:    "Have a great day, sunshine! 🌈",
		PersonalityBrutal:  "Have a great day. Or don't. Your call.",
		PersonalityEmuska:  "Have a great day, princess! 👑",
	},
	LanguageSpanish: {
		PersonalityNeutral: "¡Que tengas un buen día!",
		PersonalityCute:    "¡Que tengas un día precioso, solecito! 🌈",
		PersonalityBrutal:  "Que tengas un buen día. O no. Tú sabrás.",
		PersonalityEmuska:  "¡Que tengas un buen día, princesa! 👑",
	},
	LanguageSlovak: {
		PersonalityNeutral: "Pekný deň!",
		PersonalityCute:    "Krásny deň, slniečko! 🌈",
		PersonalityBrutal:  "Pekný deň. Alebo nie. Je to na tebe.",
		PersonalityEmuska:  "Krásny deň, princeznička moja! 👑💖",
	},
}

// GenericMessage returns the built-in text for a personality and language.
// It never returns an empty string.
func GenericMessage(p PersonalityMode, l LanguageCode) string {
	byPersonality, ok := genericMessages[l]
	if !ok {
		byPersonality = genericMessages[LanguageEnglish]
	}
	if msg := byPersonality[p]; msg != "" {
		return msg
	}
	return byPersonality[PersonalityNeutral]
}

// ResolveMessage selects the condition text for a personality from one
// language's catalog. The chain is:
//
//  1. emuska outside Slovak is downgraded to cute (logged, not an error)
//  2. messages[condition][personality]
//  3. emuska with empty text retries cute
//  4. messages[default][personality]
//  5. the built-in GenericMessage
//
// The result is never empty. messages may be nil.
func ResolveMessage(messages ConditionMessages, condition WeatherCondition, personality PersonalityMode, language LanguageCode, logger *slog.Logger) string {
	if _, ok := ParsePersonality(string(personality)); !ok {
		personality = PersonalityNeutral
	}

	if p := MessagePersonality(personality, language); p != personality {
		if logger != nil {
			logger.Warn("emuska mode is slovak only, using cute",
				"language", language,
				"condition", condition,
			)
		}
		personality = p
	}

	if msg := messages.Lookup(condition, personality); msg != "" {
		return msg
	}

	if personality == PersonalityEmuska {
		if msg := messages.Lookup(condition, PersonalityCute); msg != "" {
			return msg
		}
	}

	if msg := messages.Lookup(ConditionDefault, personality); msg != "" {
		if logger != nil {
			logger.Debug("condition message missing, using default",
				"language", language,
				"condition", condition,
				"personality", personality,
			)
		}
		return msg
	}

	if logger != nil {
		logger.Warn("no catalog message, using generic text",
			"language", language,
			"condition", condition,
			"personality", personality,
		)
	}
	return GenericMessage(personality, language)
}
