package domain

// CommandKind tags the variant held by a ParsedCommand.
type CommandKind string

// Command kinds.
const (
	CommandDelete      CommandKind = "delete"
	CommandPersonality CommandKind = "personality"
	CommandLanguage    CommandKind = "language"
	CommandWeather     CommandKind = "weather"
)

// ParsedCommand is the structured result of ParseCommand. Exactly one kind is
// set. Location is non-empty only for CommandWeather; Personality and
// Language are empty when the user did not name them.
type ParsedCommand struct {
	Kind        CommandKind     `json:"kind"`
	Location    string          `json:"location,omitempty"`
	Personality PersonalityMode `json:"personality,omitempty"`
	Language    LanguageCode    `json:"language,omitempty"`
}

// DeleteCommand unsubscribes the sender.
func DeleteCommand() ParsedCommand {
	return ParsedCommand{Kind: CommandDelete}
}

// PersonalityCommand changes the sender's personality mode.
func PersonalityCommand(p PersonalityMode) ParsedCommand {
	return ParsedCommand{Kind: CommandPersonality, Personality: p}
}

// LanguageCommand changes the sender's message language.
func LanguageCommand(l LanguageCode) ParsedCommand {
	return ParsedCommand{Kind: CommandLanguage, Language: l}
}

// WeatherCommand subscribes the sender to daily weather for location.
// Empty personality or language leave the stored values untouched.
func WeatherCommand(location string, p PersonalityMode, l LanguageCode) ParsedCommand {
	return ParsedCommand{Kind: CommandWeather, Location: location, Personality: p, Language: l}
}
