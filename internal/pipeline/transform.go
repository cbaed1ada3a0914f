package pipeline

import (
	"context"
	"errors"
	"log/slog"

	"github.com/couchcryptid/daily-brief-service/internal/domain"
	"github.com/couchcryptid/daily-brief-service/internal/observability"
)

// ErrMalformedObservation marks report requests whose observation contains
// NaN or infinite values.
var ErrMalformedObservation = errors.New("observation has non-finite values")

// CommandTransformer turns inbound subscriber messages into command events,
// geocoding the location of weather commands when a geocoder is set.
type CommandTransformer struct {
	geocoder domain.Geocoder
	logger   *slog.Logger
	metrics  *observability.Metrics
}

// NewCommandTransformer creates a CommandTransformer. Pass a nil geocoder to
// disable geocoding enrichment.
func NewCommandTransformer(geocoder domain.Geocoder, logger *slog.Logger, metrics *observability.Metrics) *CommandTransformer {
	return &CommandTransformer{
		geocoder: geocoder,
		logger:   logger,
		metrics:  metrics,
	}
}

// Transform parses an inbound subscriber message into a geocoded subscription command event.
func (t *CommandTransformer) Transform(ctx context.Context, raw domain.RawEvent) (domain.OutputEvent, error) {
	msg, err := domain.ParseInboundMessage(raw)
	if err != nil {
		return domain.OutputEvent{}, err
	}

	cmd := domain.ParseCommand(msg.CommandText())
	t.metrics.CommandsParsed.WithLabelValues(string(cmd.Kind)).Inc()

	event := domain.NewCommandEvent(msg, cmd)
	event = domain.EnrichWithGeocoding(ctx, event, t.geocoder, t.logger)

	t.logger.Debug("command parsed",
		"command_id", event.ID,
		"kind", event.Kind,
		"location", event.Location,
	)
	return domain.SerializeCommandEvent(event)
}

// ReportTransformer renders report requests into outbound daily briefs.
type ReportTransformer struct {
	builder *domain.ReportBuilder
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewReportTransformer creates a ReportTransformer around a report builder.
func NewReportTransformer(builder *domain.ReportBuilder, logger *slog.Logger, metrics *observability.Metrics) *ReportTransformer {
	return &ReportTransformer{
		builder: builder,
		logger:  logger,
		metrics: metrics,
	}
}

// Transform builds the daily brief for a report request and wraps it in an outbound report.
func (t *ReportTransformer) Transform(_ context.Context, raw domain.RawEvent) (domain.OutputEvent, error) {
	req, err := domain.ParseReportRequest(raw)
	if err != nil {
		return domain.OutputEvent{}, err
	}
	if req.Observation != nil && !req.Observation.WellFormed() {
		return domain.OutputEvent{}, ErrMalformedObservation
	}

	in := req.BriefRequest()
	brief := t.builder.BuildDailyBrief(in)

	condition := string(brief.Condition)
	if condition == "" {
		condition = "none"
	}
	t.metrics.ReportsGenerated.WithLabelValues(condition, string(in.Language)).Inc()

	return domain.SerializeOutboundReport(domain.NewOutboundReport(req, in, brief))
}
