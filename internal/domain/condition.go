package domain

import "math"

// WeatherObservation is one day of forecast data as delivered by the
// forecast fetcher. Units: °C, mm, %, km/h.
type WeatherObservation struct {
	TempMax                  float64 `json:"temp_max" yaml:"temp_max"`
	TempMin                  float64 `json:"temp_min" yaml:"temp_min"`
	PrecipitationSum         float64 `json:"precipitation_sum" yaml:"precipitation_sum"`
	PrecipitationProbability float64 `json:"precipitation_probability" yaml:"precipitation_probability"`
	WindSpeedMax             float64 `json:"wind_speed_max" yaml:"wind_speed_max"`
}

// WellFormed reports whether every field is a finite number.
func (o WeatherObservation) WellFormed() bool {
	for _, v := range []float64{o.TempMax, o.TempMin, o.PrecipitationSum, o.PrecipitationProbability, o.WindSpeedMax} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// WeatherCondition is the discrete label a day's weather is reported under.
// Condition names double as catalog keys.
type WeatherCondition string

// Weather conditions. The classifier emits a subset; the rest are valid
// catalog keys used by hand-written catalogs.
const (
	ConditionSunny        WeatherCondition = "sunny"
	ConditionSunnyHot     WeatherCondition = "sunny_hot"
	ConditionHeatwave     WeatherCondition = "heatwave"
	ConditionHot          WeatherCondition = "hot"
	ConditionMild         WeatherCondition = "mild"
	ConditionCloudy       WeatherCondition = "cloudy"
	ConditionOvercast     WeatherCondition = "overcast"
	ConditionDrizzle      WeatherCondition = "drizzle"
	ConditionRaining      WeatherCondition = "raining"
	ConditionHeavyRain    WeatherCondition = "heavy_rain"
	ConditionRainyCold    WeatherCondition = "rainy_cold"
	ConditionThunderstorm WeatherCondition = "thunderstorm"
	ConditionStormy       WeatherCondition = "stormy"
	ConditionWindy        WeatherCondition = "windy"
	ConditionCold         WeatherCondition = "cold"
	ConditionColdWindy    WeatherCondition = "cold_windy"
	ConditionFreezing     WeatherCondition = "freezing"
	ConditionSnowing      WeatherCondition = "snowing"
	ConditionSleet        WeatherCondition = "sleet"
	ConditionHail         WeatherCondition = "hail"
	ConditionBlizzard     WeatherCondition = "blizzard"
	ConditionFoggy        WeatherCondition = "foggy"
	ConditionHumid        WeatherCondition = "humid"
	ConditionDry          WeatherCondition = "dry"
	ConditionDefault      WeatherCondition = "default"
)

var knownConditions = map[WeatherCondition]struct{}{
	ConditionSunny: {}, ConditionSunnyHot: {}, ConditionHeatwave: {}, ConditionHot: {},
	ConditionMild: {}, ConditionCloudy: {}, ConditionOvercast: {}, ConditionDrizzle: {},
	ConditionRaining: {}, ConditionHeavyRain: {}, ConditionRainyCold: {}, ConditionThunderstorm: {},
	ConditionStormy: {}, ConditionWindy: {}, ConditionCold: {}, ConditionColdWindy: {},
	ConditionFreezing: {}, ConditionSnowing: {}, ConditionSleet: {}, ConditionHail: {},
	ConditionBlizzard: {}, ConditionFoggy: {}, ConditionHumid: {}, ConditionDry: {},
	ConditionDefault: {},
}

// IsKnown reports whether c is one of the declared condition tags.
func (c WeatherCondition) IsKnown() bool {
	_, ok := knownConditions[c]
	return ok
}

// ClassifyCondition maps an observation onto one condition using an ordered
// decision tree. Branch order is significant: earlier branches win on
// boundary inputs (a 30 °C day with heavy rain is "hot").
//
//	temp_max >= 35        heatwave (>= 40) | sunny_hot
//	temp_max <= -10       blizzard (precip > 10 and wind > 50) | freezing
//	temp_max <= 0         snowing (precip > 5) | freezing
//	temp_max <= 5         cold_windy (wind > 30) | rainy_cold (precip > 2) | cold
//	temp_max >= 30        hot
//	precip > 20 or p > 80 thunderstorm (wind > 40) | heavy_rain (precip > 50) | rainy_cold (temp_max <= 10) | raining
//	precip > 0 or p > 50  raining
//	wind > 60             stormy
//	wind > 40             thunderstorm (p > 30) | windy
//	wind > 25             windy
//	p < 20 and wind < 20  mild (20 < temp_max <= 28) | sunny (p < 10) | cloudy
//	otherwise             default
func ClassifyCondition(obs WeatherObservation) WeatherCondition {
	tMax := obs.TempMax
	precip := obs.PrecipitationSum
	prob := obs.PrecipitationProbability
	wind := obs.WindSpeedMax

	switch {
	case tMax >= 35:
		if tMax >= 40 {
			return ConditionHeatwave
		}
		return ConditionSunnyHot
	case tMax <= -10:
		if precip > 10 && wind > 50 {
			return ConditionBlizzard
		}
		return ConditionFreezing
	case tMax <= 0:
		if precip > 5 {
			return ConditionSnowing
		}
		return ConditionFreezing
	case tMax <= 5:
		switch {
		case wind > 30:
			return ConditionColdWindy
		case precip > 2:
			return ConditionRainyCold
		default:
			return ConditionCold
		}
	case tMax >= 30:
		return ConditionHot
	}

	if precip > 20 || prob > 80 {
		switch {
		case wind > 40:
			return ConditionThunderstorm
		case precip > 50:
			return ConditionHeavyRain
		case tMax <= 10:
			return ConditionRainyCold
		default:
			return ConditionRaining
		}
	}

	if precip > 0 || prob > 50 {
		return ConditionRaining
	}

	switch {
	case wind > 60:
		return ConditionStormy
	case wind > 40:
		if prob > 30 {
			return ConditionThunderstorm
		}
		return ConditionWindy
	case wind > 25:
		return ConditionWindy
	}

	if prob < 20 && wind < 20 {
		switch {
		case tMax > 20 && tMax <= 28:
			return ConditionMild
		case prob < 10:
			return ConditionSunny
		default:
			return ConditionCloudy
		}
	}

	return ConditionDefault
}
