// Package domain holds the pure core of the daily brief service: the free-text
// command parser and the weather message engine.
//
// # Commands
//
// Subscribers talk to the service in loosely structured plain text, usually
// the body of an email. [ParseCommand] turns any such text into exactly one
// [ParsedCommand]:
//
//	"delete" / "unsubscribe" anywhere      →  delete
//	"cute"                                  →  personality change
//	"slovensky"                             →  language change
//	"Bratislava, Slovakia\nbrutal\nsk"      →  weather subscription
//
// The parser never fails. Ambiguous input falls back to a best-guess weather
// subscription, and empty input subscribes the "current" location.
//
// # Weather messages
//
// A [WeatherObservation] holds one day of forecast numbers (°C, mm, %, km/h).
// [ClassifyCondition] maps it onto a single [WeatherCondition] through an
// ordered decision tree: heat, extreme cold, freezing, cold, hot, heavy
// precipitation, moderate precipitation, wind, clear. Earlier branches win, so
// a 30 °C rainy day is "hot" rather than "raining".
//
// Message texts come from per-language catalog files:
//
//	# comment
//	condition|neutral|cute|brutal|emuska
//
// [ResolveMessage] walks the fallback chain
//
//	emuska outside Slovak → cute
//	catalog[condition][personality]
//	emuska empty → cute
//	catalog[default][personality]
//	built-in generic text
//
// and never returns an empty string.
//
// # Personalities
//
// Four text styles exist: neutral, cute, brutal and emuska. Emuska is a Slovak
// easter egg. Outside Slovak it is downgraded to cute for condition messages,
// but its clothing advice wrapper stays Slovak in every language.
package domain
