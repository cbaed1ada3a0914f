package catalog

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/robfig/cron/v3"

	"github.com/couchcryptid/daily-brief-service/internal/observability"
)

// Reloader re-reads a Store on a cron schedule so catalog edits in the
// override directory go live without a restart.
type Reloader struct {
	store   *Store
	cron    *cron.Cron
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewReloader schedules store reloads. schedule is a standard five-field
// cron expression or a descriptor such as "@hourly".
func NewReloader(store *Store, schedule string, logger *slog.Logger, metrics *observability.Metrics) (*Reloader, error) {
	r := &Reloader{
		store:   store,
		cron:    cron.New(),
		logger:  logger.With("component", "catalog_reloader"),
		metrics: metrics,
	}
	if _, err := r.cron.AddFunc(schedule, r.reload); err != nil {
		return nil, fmt.Errorf("schedule catalog reload %q: %w", schedule, err)
	}
	return r, nil
}

// Run starts the schedule and blocks until ctx is cancelled, then waits for
// a reload in progress to finish.
func (r *Reloader) Run(ctx context.Context) error {
	r.cron.Start()
	r.logger.Info("catalog reload scheduled", "next", r.cron.Entries()[0].Next)

	<-ctx.Done()
	<-r.cron.Stop().Done()
	return nil
}

func (r *Reloader) reload() {
	if err := r.store.Reload(); err != nil {
		r.logger.Error("catalog reload failed, keeping previous catalogs", "error", err)
		r.metrics.CatalogReloads.WithLabelValues("error").Inc()
		return
	}
	r.metrics.CatalogReloads.WithLabelValues("success").Inc()
}
