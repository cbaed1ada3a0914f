package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/daily-brief-service/internal/domain"
	"github.com/couchcryptid/daily-brief-service/internal/observability"
)

// Failed reads and writes are retried after a delay that starts at
// minRetryDelay and doubles up to maxRetryDelay.
const (
	minRetryDelay = 200 * time.Millisecond
	maxRetryDelay = 5 * time.Second
)

// BatchExtractor pulls the next batch of subscriber messages or report
// requests, at most batchSize long.
type BatchExtractor interface {
	ExtractBatch(ctx context.Context, batchSize int) ([]domain.RawEvent, error)
}

// Transformer turns one inbound record into the record to publish. An error
// marks the record as unusable; it is committed and dropped.
type Transformer interface {
	Transform(ctx context.Context, raw domain.RawEvent) (domain.OutputEvent, error)
}

// BatchLoader publishes transformed records in one write.
type BatchLoader interface {
	LoadBatch(ctx context.Context, events []domain.OutputEvent) error
}

// Pipeline moves records from one topic to another through a Transformer.
// The service runs two of them, "commands" and "reports"; the name is
// attached to every log line and metric.
type Pipeline struct {
	name        string
	extractor   BatchExtractor
	transformer Transformer
	loader      BatchLoader
	logger      *slog.Logger
	metrics     *observability.Metrics
	ready       atomic.Bool
	batchSize   int
}

// New wires a named pipeline.
func New(name string, e BatchExtractor, t Transformer, l BatchLoader, logger *slog.Logger, metrics *observability.Metrics, batchSize int) *Pipeline {
	return &Pipeline{
		name:        name,
		extractor:   e,
		transformer: t,
		loader:      l,
		logger:      logger.With("pipeline", name),
		metrics:     metrics,
		batchSize:   batchSize,
	}
}

// Name returns the pipeline's label.
func (p *Pipeline) Name() string { return p.name }

// Ready reports whether the pipeline has published at least one batch.
func (p *Pipeline) Ready() bool { return p.ready.Load() }

// CheckReadiness implements the readiness probe for the HTTP server.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if !p.Ready() {
		return fmt.Errorf("%s pipeline has not processed any messages yet", p.name)
	}
	return nil
}

// Run consumes batches until ctx is cancelled. It returns nil on shutdown.
func (p *Pipeline) Run(ctx context.Context) error {
	p.logger.Info("pipeline started", "batch_size", p.batchSize)
	running := p.metrics.PipelineRunning.WithLabelValues(p.name)
	running.Set(1)
	defer running.Set(0)

	delay := newRetryDelay(minRetryDelay, maxRetryDelay)
	for ctx.Err() == nil {
		if !p.step(ctx, delay) {
			break
		}
	}
	p.logger.Info("pipeline stopping", "reason", ctx.Err())
	return nil
}

// step handles one batch. It reports false once ctx is done.
func (p *Pipeline) step(ctx context.Context, delay *retryDelay) bool {
	start := time.Now()

	batch, err := p.extractor.ExtractBatch(ctx, p.batchSize)
	switch {
	case err != nil && ctx.Err() != nil:
		return false
	case err != nil:
		p.logger.Error("extract batch failed", "error", err)
		return delay.wait(ctx)
	case len(batch) == 0:
		return ctx.Err() == nil
	}

	p.metrics.MessagesConsumed.WithLabelValues(p.name).Add(float64(len(batch)))
	p.metrics.BatchSize.WithLabelValues(p.name).Observe(float64(len(batch)))
	delay.reset()

	published, ok := p.publish(ctx, batch, delay)
	if !ok {
		return false
	}
	if published > 0 {
		p.metrics.BatchProcessingDuration.WithLabelValues(p.name).Observe(time.Since(start).Seconds())
		p.ready.Store(true)
	}
	return true
}

// publish transforms the batch and writes what survived. Records the
// transformer rejects are committed straight away so they are not redelivered;
// the rest are committed only after the write succeeds.
func (p *Pipeline) publish(ctx context.Context, batch []domain.RawEvent, delay *retryDelay) (int, bool) {
	out := make([]domain.OutputEvent, 0, len(batch))
	pending := make([]domain.RawEvent, 0, len(batch))

	for _, raw := range batch {
		event, err := p.transformer.Transform(ctx, raw)
		if err != nil {
			p.logger.Warn("transform failed, skipping message",
				"error", err,
				"topic", raw.Topic,
				"partition", raw.Partition,
				"offset", raw.Offset,
			)
			p.metrics.TransformErrors.WithLabelValues(p.name).Inc()
			p.commit(ctx, raw)
			continue
		}
		out = append(out, event)
		pending = append(pending, raw)
	}

	if len(out) == 0 {
		return 0, true
	}

	if err := p.loader.LoadBatch(ctx, out); err != nil {
		p.logger.Error("load batch failed", "error", err, "batch_size", len(out))
		return 0, delay.wait(ctx)
	}
	p.metrics.MessagesProduced.WithLabelValues(p.name).Add(float64(len(out)))

	for _, raw := range pending {
		p.commit(ctx, raw)
	}
	return len(out), true
}

func (p *Pipeline) commit(ctx context.Context, raw domain.RawEvent) {
	if raw.Commit == nil {
		return
	}
	if err := raw.Commit(ctx); err != nil {
		p.logger.Warn("commit offset failed", "error", err,
			"topic", raw.Topic, "partition", raw.Partition, "offset", raw.Offset)
	}
}

// retryDelay is the pause between failed Kafka reads or writes.
type retryDelay struct {
	min, max, next time.Duration
}

func newRetryDelay(first, limit time.Duration) *retryDelay {
	return &retryDelay{min: first, max: limit, next: first}
}

func (d *retryDelay) reset() { d.next = d.min }

// wait sleeps for the current delay and doubles it, capped at max. It
// returns false if ctx is done first.
func (d *retryDelay) wait(ctx context.Context) bool {
	if ctx.Err() != nil {
		return false
	}
	if d.next > 0 {
		timer := time.NewTimer(d.next)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return false
		case <-timer.C:
		}
	}
	d.next = min(d.next*2, d.max)
	return true
}
