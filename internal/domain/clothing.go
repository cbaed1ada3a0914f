package domain

import "strings"

// clothingTier is one row of the temperature table: garments for days whose
// high stays below upTo °C. The last tier has no upper bound.
type clothingTier struct {
	upTo     float64
	garments map[LanguageCode]string
}

var clothingTiers = []clothingTier{
	{upTo: 0, garments: map[LanguageCode]string{
		LanguageEnglish: "a heavy winter coat, a hat, a scarf and gloves",
		LanguageSpanish: "un abrigo grueso de invierno, gorro, bufanda y guantes",
		LanguageSlovak:  "hrubú zimnú bundu, čiapku, šál a rukavice",
	}},
	{upTo: 5, garments: map[LanguageCode]string{
		LanguageEnglish: "a warm coat and a sweater",
		LanguageSpanish: "un abrigo cálido y un suéter",
		LanguageSlovak:  "teplý kabát a sveter",
	}},
	{upTo: 15, garments: map[LanguageCode]string{
		LanguageEnglish: "a light jacket or a hoodie",
		LanguageSpanish: "una chaqueta ligera o una sudadera",
		LanguageSlovak:  "ľahkú bundu alebo mikinu",
	}},
	{upTo: 25, garments: map[LanguageCode]string{
		LanguageEnglish: "a long-sleeve shirt or light layers",
		LanguageSpanish: "una camisa de manga larga o capas ligeras",
		LanguageSlovak:  "tričko s dlhým rukávom alebo ľahké vrstvy",
	}},
	{garments: map[LanguageCode]string{
		LanguageEnglish: "light, breathable clothes and sunglasses",
		LanguageSpanish: "ropa ligera y transpirable y gafas de sol",
		LanguageSlovak:  "ľahké, priedušné oblečenie a slnečné okuliare",
	}},
}

var (
	heavyRainGear = map[LanguageCode]string{
		LanguageEnglish: "a waterproof jacket and an umbrella",
		LanguageSpanish: "una chaqueta impermeable y un paraguas",
		LanguageSlovak:  "nepremokavú bundu a dáždnik",
	}
	lightRainGear = map[LanguageCode]string{
		LanguageEnglish: "an umbrella just in case",
		LanguageSpanish: "un paraguas por si acaso",
		LanguageSlovak:  "dáždnik pre istotu",
	}
	windGear = map[LanguageCode]string{
		LanguageEnglish: "a windproof layer",
		LanguageSpanish: "una capa cortavientos",
		LanguageSlovak:  "vetruodolnú vrstvu",
	}
	accessoryJoiner = map[LanguageCode]string{
		LanguageEnglish: ", plus ",
		LanguageSpanish: ", además de ",
		LanguageSlovak:  ", a k tomu ",
	}
)

// clothingWrap is the personality-specific frame around the garment phrase.
type clothingWrap struct {
	prefix string
	suffix string
}

// emuskaWrap is always Slovak, whatever language the report is in.
var emuskaWrap = clothingWrap{prefix: "Princeznička moja, obleč si ", suffix: ", nech mi neprechladneš 👑💖"}

var clothingWraps = map[LanguageCode]map[PersonalityMode]clothingWrap{
	LanguageEnglish: {
		PersonalityNeutral: {prefix: "Recommended clothing: ", suffix: "."},
		PersonalityCute:    {prefix: "Bundle up cutely in ", suffix: "! 🧸"},
		PersonalityBrutal:  {prefix: "Wear ", suffix: ". Not complicated."},
		PersonalityEmuska:  emuskaWrap,
	},
	LanguageSpanish: {
		PersonalityNeutral: {prefix: "Ropa recomendada: ", suffix: "."},
		PersonalityCute:    {prefix: "Abrígate con ", suffix: ", cariño! 🧸"},
		PersonalityBrutal:  {prefix: "Ponte ", suffix: ". No es tan difícil."},
		PersonalityEmuska:  emuskaWrap,
	},
	LanguageSlovak: {
		PersonalityNeutral: {prefix: "Odporúčané oblečenie: ", suffix: "."},
		PersonalityCute:    {prefix: "Obleč si ", suffix: ", zlatko! 🧸"},
		PersonalityBrutal:  {prefix: "Obleč si ", suffix: ". Nie je to zložité."},
		PersonalityEmuska:  emuskaWrap,
	},
}

// ClothingAdvice builds the clothing line for an observation: a garment
// phrase picked by the day's high, rain and wind accessories appended, and the
// whole wrapped in the personality's prefix and suffix. Emuska keeps its
// Slovak wrapper in every language.
func ClothingAdvice(obs WeatherObservation, personality PersonalityMode, language LanguageCode) string {
	if _, ok := clothingWraps[language]; !ok {
		language = LanguageEnglish
	}
	if _, ok := ParsePersonality(string(personality)); !ok {
		personality = PersonalityNeutral
	}

	parts := []string{garmentsFor(obs.TempMax, language)}

	switch {
	case obs.PrecipitationProbability > 50 || obs.PrecipitationSum > 1:
		parts = append(parts, heavyRainGear[language])
	case obs.PrecipitationProbability > 20:
		parts = append(parts, lightRainGear[language])
	}
	if obs.WindSpeedMax > 30 {
		parts = append(parts, windGear[language])
	}

	wrap := clothingWraps[language][personality]
	return wrap.prefix + strings.Join(parts, accessoryJoiner[language]) + wrap.suffix
}

func garmentsFor(tempMax float64, language LanguageCode) string {
	last := len(clothingTiers) - 1
	for _, tier := range clothingTiers[:last] {
		if tempMax < tier.upTo {
			return tier.garments[language]
		}
	}
	return clothingTiers[last].garments[language]
}
