package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ParseInboundMessage deserializes a RawEvent's value into an InboundMessage.
// A missing received_at falls back to the Kafka message timestamp.
func ParseInboundMessage(raw RawEvent) (InboundMessage, error) {
	var msg InboundMessage
	if err := json.Unmarshal(raw.Value, &msg); err != nil {
		return InboundMessage{}, fmt.Errorf("parse inbound message: %w", err)
	}
	if msg.ReceivedAt.IsZero() {
		msg.ReceivedAt = raw.Timestamp
	}
	return msg, nil
}

// CommandText returns the text to parse: the body, or the subject when the
// body is blank (one-line commands sent as a subject only).
func (m InboundMessage) CommandText() string {
	if strings.TrimSpace(m.Body) != "" {
		return m.Body
	}
	return m.Subject
}

// NewCommandEvent wraps a parsed command with routing and audit fields.
func NewCommandEvent(msg InboundMessage, cmd ParsedCommand) CommandEvent {
	sender := strings.ToLower(strings.TrimSpace(msg.From))
	return CommandEvent{
		ID:            generateID(sender, cmd, msg.ReceivedAt),
		Sender:        sender,
		ParsedCommand: cmd,
		ReceivedAt:    msg.ReceivedAt,
		ProcessedAt:   clock.Now(),
	}
}

// generateID produces a deterministic ID from the command's key fields, so
// a redelivered message yields the same command ID downstream.
func generateID(sender string, cmd ParsedCommand, receivedAt time.Time) string {
	input := fmt.Sprintf("%s|%s|%s|%s|%s|%s",
		sender, cmd.Kind, cmd.Location, cmd.Personality, cmd.Language,
		receivedAt.UTC().Format(time.RFC3339Nano))
	hash := sha256.Sum256([]byte(input))
	short := hex.EncodeToString(hash[:8])
	if cmd.Kind == "" {
		return short
	}
	return string(cmd.Kind) + "-" + short
}

// SerializeCommandEvent marshals a CommandEvent keyed by sender, keeping one
// subscriber's commands ordered within a partition.
func SerializeCommandEvent(ev CommandEvent) (OutputEvent, error) {
	data, err := json.Marshal(ev)
	if err != nil {
		return OutputEvent{}, fmt.Errorf("serialize command event: %w", err)
	}
	return OutputEvent{
		Key:   []byte(ev.Sender),
		Value: data,
		Headers: map[string]string{
			"command_kind": string(ev.Kind),
			"processed_at": ev.ProcessedAt.Format(time.RFC3339),
		},
	}, nil
}

// ErrNoRecipient is returned for report requests that name nobody to send to.
var ErrNoRecipient = errors.New("report request has no subscriber_id or email")

// ParseReportRequest deserializes a RawEvent's value into a ReportRequest.
func ParseReportRequest(raw RawEvent) (ReportRequest, error) {
	var req ReportRequest
	if err := json.Unmarshal(raw.Value, &req); err != nil {
		return ReportRequest{}, fmt.Errorf("parse report request: %w", err)
	}
	if req.SubscriberID == "" && req.Email == "" {
		return ReportRequest{}, ErrNoRecipient
	}
	return req, nil
}

// BriefRequest converts the wire request into builder input. Unknown
// personalities and languages are normalized; an unparsable date means today.
func (r ReportRequest) BriefRequest() BriefRequest {
	p, l, _ := NormalizeProfile(r.Personality, r.Language)

	var date time.Time
	if r.Date != "" {
		if d, err := time.Parse(countdownDateLayout, r.Date); err == nil {
			date = d
		}
	}

	return BriefRequest{
		Location:       r.Location,
		Personality:    p,
		Language:       l,
		Date:           date,
		Observation:    r.Observation,
		Countdowns:     r.Countdowns,
		IncludeNameday: r.IncludeNameday,
	}
}

// NewOutboundReport pairs a rendered brief with its recipient.
func NewOutboundReport(req ReportRequest, in BriefRequest, brief DailyBrief) OutboundReport {
	return OutboundReport{
		SubscriberID: req.SubscriberID,
		Email:        req.Email,
		Subject:      brief.Subject,
		Body:         brief.Body,
		Condition:    brief.Condition,
		Personality:  in.Personality,
		Language:     in.Language,
		GeneratedAt:  clock.Now(),
	}
}

// SerializeOutboundReport marshals a report keyed by subscriber.
func SerializeOutboundReport(rep OutboundReport) (OutputEvent, error) {
	data, err := json.Marshal(rep)
	if err != nil {
		return OutputEvent{}, fmt.Errorf("serialize outbound report: %w", err)
	}
	key := rep.SubscriberID
	if key == "" {
		key = rep.Email
	}
	return OutputEvent{
		Key:   []byte(key),
		Value: data,
		Headers: map[string]string{
			"condition":    string(rep.Condition),
			"language":     string(rep.Language),
			"processed_at": rep.GeneratedAt.Format(time.RFC3339),
		},
	}, nil
}
