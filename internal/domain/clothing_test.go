package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClothingAdvice_Tiers(t *testing.T) {
	tests := []struct {
		tMax float64
		want string
	}{
		{-5, "a heavy winter coat, a hat, a scarf and gloves"},
		{0, "a warm coat and a sweater"},
		{4.9, "a warm coat and a sweater"},
		{5, "a light jacket or a hoodie"},
		{15, "a long-sleeve shirt or light layers"},
		{24.9, "a long-sleeve shirt or light layers"},
		{25, "light, breathable clothes and sunglasses"},
		{38, "light, breathable clothes and sunglasses"},
	}

	for _, tt := range tests {
		got := ClothingAdvice(obs(tt.tMax, 0, 0, 0), PersonalityNeutral, LanguageEnglish)
		assert.Equal(t, "Recommended clothing: "+tt.want+".", got, "temp_max %v", tt.tMax)
	}
}

func TestClothingAdvice_Accessories(t *testing.T) {
	tests := []struct {
		name string
		obs  WeatherObservation
		want string
	}{
		{"likely rain", obs(10, 0, 60, 0), "a light jacket or a hoodie, plus a waterproof jacket and an umbrella"},
		{"measurable rain", obs(10, 1.5, 0, 0), "a light jacket or a hoodie, plus a waterproof jacket and an umbrella"},
		{"possible rain", obs(10, 0.5, 30, 0), "a light jacket or a hoodie, plus an umbrella just in case"},
		{"windy", obs(10, 0, 0, 31), "a light jacket or a hoodie, plus a windproof layer"},
		{"rain and wind", obs(10, 5, 90, 50), "a light jacket or a hoodie, plus a waterproof jacket and an umbrella, plus a windproof layer"},
		{"thresholds are exclusive", obs(10, 1, 20, 30), "a light jacket or a hoodie"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClothingAdvice(tt.obs, PersonalityNeutral, LanguageEnglish)
			assert.Equal(t, "Recommended clothing: "+tt.want+".", got)
		})
	}
}

func TestClothingAdvice_Localized(t *testing.T) {
	o := obs(10, 0, 30, 0)

	assert.Equal(t,
		"Odporúčané oblečenie: ľahkú bundu alebo mikinu, a k tomu dáždnik pre istotu.",
		ClothingAdvice(o, PersonalityNeutral, LanguageSlovak))
	assert.Equal(t,
		"Ponte una chaqueta ligera o una sudadera, además de un paraguas por si acaso. No es tan difícil.",
		ClothingAdvice(o, PersonalityBrutal, LanguageSpanish))
}

func TestClothingAdvice_EmuskaAlwaysSlovak(t *testing.T) {
	o := obs(10, 0, 0, 0)

	for _, l := range SupportedLanguages() {
		got := ClothingAdvice(o, PersonalityEmuska, l)
		assert.True(t, strings.HasPrefix(got, "Princeznička moja, obleč si "), "language %s: %q", l, got)
		assert.True(t, strings.HasSuffix(got, ", nech mi neprechladneš 👑💖"), "language %s: %q", l, got)
	}

	// the garments follow the report language
	assert.Contains(t, ClothingAdvice(o, PersonalityEmuska, LanguageEnglish), "a light jacket or a hoodie")
}

func TestClothingAdvice_DistinctWraps(t *testing.T) {
	o := obs(10, 0, 0, 0)
	seen := make(map[string]struct{})

	for _, l := range SupportedLanguages() {
		for _, p := range []PersonalityMode{PersonalityNeutral, PersonalityCute, PersonalityBrutal} {
			got := ClothingAdvice(o, p, l)
			_, dup := seen[got]
			assert.False(t, dup, "duplicate advice %q", got)
			seen[got] = struct{}{}
		}
	}
}

func TestClothingAdvice_UnknownInputs(t *testing.T) {
	o := obs(10, 0, 0, 0)
	assert.Equal(t,
		ClothingAdvice(o, PersonalityNeutral, LanguageEnglish),
		ClothingAdvice(o, PersonalityMode("sarcastic"), LanguageCode("fr")))
}
