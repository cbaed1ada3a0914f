package domain

import (
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCatalog = "\ufeff# Weather messages\n" +
	"# condition|neutral|cute|brutal|emuska\n" +
	"\n" +
	"sunny|Sunny today.|Sunshine for you! ☀️|Sun. Deal with it.|\n" +
	"RAINING|Rain expected.|Pitter-patter! ☔|Wet. Obviously.|Prší, princeznička ☔\n" +
	"broken|only two\n" +
	"default|Normal day.|Lovely day!|Just a day.|Krásny deň 👑\n" +
	"too|many|fields|here|now|extra\n" +
	"sunny|Sunny again.|Sunny again, cutie!|Still sun.|\n"

func TestParseCatalog(t *testing.T) {
	messages, skipped, err := ParseCatalog(strings.NewReader(testCatalog))
	require.NoError(t, err)

	assert.Len(t, messages, 3)
	assert.Equal(t, "Rain expected.", messages.Lookup(ConditionRaining, PersonalityNeutral))
	assert.Equal(t, "Prší, princeznička ☔", messages.Lookup(ConditionRaining, PersonalityEmuska))
	assert.Equal(t, "Lovely day!", messages.Lookup(ConditionDefault, PersonalityCute))

	t.Run("later lines override", func(t *testing.T) {
		assert.Equal(t, "Sunny again.", messages.Lookup(ConditionSunny, PersonalityNeutral))
	})

	t.Run("empty emuska column", func(t *testing.T) {
		text, ok := messages[ConditionSunny][PersonalityEmuska]
		assert.True(t, ok)
		assert.Empty(t, text)
	})

	t.Run("malformed lines reported", func(t *testing.T) {
		require.Len(t, skipped, 2)
		assert.Equal(t, 6, skipped[0].Line)
		assert.Equal(t, 2, skipped[0].Fields)
		assert.Equal(t, 8, skipped[1].Line)
		assert.Equal(t, 6, skipped[1].Fields)
		assert.Contains(t, skipped[0].Error(), "expected 5 fields, got 2")
	})
}

func TestParseCatalog_BOMOnFirstLine(t *testing.T) {
	messages, skipped, err := ParseCatalog(strings.NewReader("\ufeffsunny|a|b|c|d\n"))
	require.NoError(t, err)
	assert.Empty(t, skipped)
	assert.Equal(t, "a", messages.Lookup(ConditionSunny, PersonalityNeutral))
}

func TestParseCatalog_OverlongLine(t *testing.T) {
	input := "default|Normal day.|Lovely day!|Just a day.|\n" +
		"sunny|Sunny today.|Sunshine!|Sun.|\n" +
		strings.Repeat("x", 70_000) + "\n" +
		"raining|Rain expected.|Pitter-patter!|Wet.|\n" +
		"cloudy|Grey skies.|Fluffy clouds!|Grey.|"

	messages, skipped, err := ParseCatalog(strings.NewReader(input))
	require.NoError(t, err)

	assert.Len(t, messages, 4)
	assert.Equal(t, "Sunny today.", messages.Lookup(ConditionSunny, PersonalityNeutral))
	assert.Equal(t, "Rain expected.", messages.Lookup(ConditionRaining, PersonalityNeutral))
	assert.Equal(t, "Grey skies.", messages.Lookup(ConditionCloudy, PersonalityNeutral), "final line without newline")

	require.Len(t, skipped, 1)
	assert.Equal(t, 3, skipped[0].Line)
	assert.Equal(t, 1, skipped[0].Fields)
}

func TestParseCatalog_ReadError(t *testing.T) {
	r := io.MultiReader(strings.NewReader("sunny|a|b|c|d\n"), iotest.ErrReader(errors.New("disk gone")))

	messages, _, err := ParseCatalog(r)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read catalog: disk gone")
	assert.Equal(t, "a", messages.Lookup(ConditionSunny, PersonalityNeutral))
}

func TestParseCatalog_Empty(t *testing.T) {
	messages, skipped, err := ParseCatalog(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, messages)
	assert.Empty(t, skipped)
}

func TestConditionMessages_LookupNil(t *testing.T) {
	var messages ConditionMessages
	assert.Empty(t, messages.Lookup(ConditionSunny, PersonalityNeutral))
}
