package domain

import (
	"context"
	"time"
)

// RawEvent represents an unprocessed message from a source topic.
type RawEvent struct {
	Key       []byte
	Value     []byte
	Headers   map[string]string
	Topic     string
	Partition int
	Offset    int64
	Timestamp time.Time
	Commit    func(ctx context.Context) error
}

// OutputEvent is the serialized form destined for a sink topic.
type OutputEvent struct {
	Key     []byte
	Value   []byte
	Headers map[string]string
}

// InboundMessage is a subscriber message forwarded by the email or webhook
// bridge.
type InboundMessage struct {
	ID         string    `json:"id,omitempty"`
	From       string    `json:"from"`
	Subject    string    `json:"subject,omitempty"`
	Body       string    `json:"body"`
	ReceivedAt time.Time `json:"received_at"`
}

// Geo represents a WGS-84 latitude/longitude coordinate pair.
type Geo struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// CommandEvent is a parsed command ready for the subscription store.
type CommandEvent struct {
	ID     string `json:"id"`
	Sender string `json:"sender"`
	ParsedCommand

	// Geocoding enrichment fields, set for weather commands only.
	Geo              *Geo    `json:"geo,omitempty"`
	FormattedAddress string  `json:"formatted_address,omitempty"`
	GeoConfidence    float64 `json:"geo_confidence,omitempty"`
	GeoSource        string  `json:"geo_source,omitempty"` // "forward", "original", "failed"

	ReceivedAt  time.Time `json:"received_at"`
	ProcessedAt time.Time `json:"processed_at"`
}

// ReportRequest asks for one subscriber's daily brief. The scheduler fills
// in the observation from the forecast API and the profile from storage.
type ReportRequest struct {
	SubscriberID   string              `json:"subscriber_id"`
	Email          string              `json:"email"`
	Location       string              `json:"location,omitempty"`
	Personality    string              `json:"personality,omitempty"`
	Language       string              `json:"language,omitempty"`
	Date           string              `json:"date,omitempty"` // YYYY-MM-DD, defaults to today
	Observation    *WeatherObservation `json:"observation,omitempty"`
	Countdowns     []CountdownEvent    `json:"countdowns,omitempty"`
	IncludeNameday bool                `json:"include_nameday,omitempty"`
}

// OutboundReport is a rendered brief handed to the sender.
type OutboundReport struct {
	SubscriberID string           `json:"subscriber_id"`
	Email        string           `json:"email"`
	Subject      string           `json:"subject"`
	Body         string           `json:"body"`
	Condition    WeatherCondition `json:"condition,omitempty"`
	Personality  PersonalityMode  `json:"personality"`
	Language     LanguageCode     `json:"language"`
	GeneratedAt  time.Time        `json:"generated_at"`
}
