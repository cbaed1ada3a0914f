package domain

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func testMessages() ConditionMessages {
	return ConditionMessages{
		ConditionSunny: {
			PersonalityNeutral: "Sunny.",
			PersonalityCute:    "Sunny, sweetie!",
			PersonalityBrutal:  "Sun. Go outside.",
			PersonalityEmuska:  "",
		},
		ConditionRaining: {
			PersonalityNeutral: "Rain.",
			PersonalityCute:    "",
			PersonalityBrutal:  "Rain. Umbrella.",
			PersonalityEmuska:  "Prší, princeznička.",
		},
		ConditionDefault: {
			PersonalityNeutral: "A day.",
			PersonalityCute:    "A lovely day!",
			PersonalityBrutal:  "",
			PersonalityEmuska:  "Krásny deň.",
		},
	}
}

func TestResolveMessage(t *testing.T) {
	messages := testMessages()

	tests := []struct {
		name        string
		condition   WeatherCondition
		personality PersonalityMode
		language    LanguageCode
		want        string
	}{
		{"direct hit", ConditionSunny, PersonalityBrutal, LanguageEnglish, "Sun. Go outside."},
		{"emuska in slovak", ConditionRaining, PersonalityEmuska, LanguageSlovak, "Prší, princeznička."},
		{"emuska outside slovak uses cute", ConditionRaining, PersonalityEmuska, LanguageEnglish, "A lovely day!"},
		{"empty emuska retries cute", ConditionSunny, PersonalityEmuska, LanguageSlovak, "Sunny, sweetie!"},
		{"missing condition uses default", ConditionFoggy, PersonalityNeutral, LanguageEnglish, "A day."},
		{"empty cute uses default", ConditionRaining, PersonalityCute, LanguageEnglish, "A lovely day!"},
		{"empty default uses generic", ConditionFoggy, PersonalityBrutal, LanguageEnglish, "Have a great day. Or don't. Your call."},
		{"invalid personality is neutral", ConditionSunny, PersonalityMode("grumpy"), LanguageEnglish, "Sunny."},
		{"empty personality is neutral", ConditionRaining, "", LanguageEnglish, "Rain."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveMessage(messages, tt.condition, tt.personality, tt.language, discardLogger())
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveMessage_NilCatalog(t *testing.T) {
	for _, l := range SupportedLanguages() {
		for _, p := range Personalities() {
			got := ResolveMessage(nil, ConditionSunny, p, l, nil)
			assert.Equal(t, GenericMessage(MessagePersonality(p, l), l), got)
			assert.NotEmpty(t, got)
		}
	}
}

func TestResolveMessage_EmuskaContainment(t *testing.T) {
	catalogs := []ConditionMessages{nil, {}, testMessages()}
	conditions := []WeatherCondition{ConditionSunny, ConditionRaining, ConditionDefault, ConditionBlizzard}

	for _, messages := range catalogs {
		for _, c := range conditions {
			for _, l := range []LanguageCode{LanguageEnglish, LanguageSpanish} {
				emuska := ResolveMessage(messages, c, PersonalityEmuska, l, discardLogger())
				cute := ResolveMessage(messages, c, PersonalityCute, l, discardLogger())
				assert.Equal(t, cute, emuska, "condition %s language %s", c, l)
			}
		}
	}
}

func TestResolveMessage_LogsEmuskaDowngrade(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	ResolveMessage(testMessages(), ConditionSunny, PersonalityEmuska, LanguageSpanish, logger)

	assert.Contains(t, buf.String(), "emuska mode is slovak only")
	assert.Contains(t, buf.String(), "level=WARN")
}

func TestGenericMessage(t *testing.T) {
	assert.Equal(t, "Have a great day!", GenericMessage(PersonalityNeutral, LanguageEnglish))
	assert.Equal(t, "Pekný deň!", GenericMessage(PersonalityNeutral, LanguageSlovak))
	assert.Equal(t, "Have a great day!", GenericMessage(PersonalityNeutral, LanguageCode("de")))
	assert.Equal(t, "¡Que tengas un buen día!", GenericMessage(PersonalityMode("x"), LanguageSpanish))
}
