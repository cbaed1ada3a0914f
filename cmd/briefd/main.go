// Command briefd runs the daily brief service: the command pipeline turns
// inbound subscriber messages into subscription commands, the report
// pipeline renders daily briefs, and an HTTP server exposes health, metrics
// and the preview API.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	httpadapter "github.com/couchcryptid/daily-brief-service/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/daily-brief-service/internal/adapter/kafka"
	"github.com/couchcryptid/daily-brief-service/internal/adapter/mapbox"
	"github.com/couchcryptid/daily-brief-service/internal/catalog"
	"github.com/couchcryptid/daily-brief-service/internal/config"
	"github.com/couchcryptid/daily-brief-service/internal/domain"
	"github.com/couchcryptid/daily-brief-service/internal/observability"
	"github.com/couchcryptid/daily-brief-service/internal/pipeline"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("service stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	metrics := observability.NewMetrics()

	store, err := catalog.Open(cfg.CatalogDir, logger)
	if err != nil {
		return err
	}
	builder := domain.NewReportBuilder(store, logger)

	reloader, err := newReloader(cfg, store, logger, metrics)
	if err != nil {
		return err
	}

	// Initialize geocoder (feature-flagged via MAPBOX_ENABLED / MAPBOX_TOKEN).
	var geocoder domain.Geocoder
	if cfg.MapboxEnabled {
		client := mapbox.NewClient(cfg.MapboxToken, cfg.MapboxTimeout, logger, metrics)
		cached, err := mapbox.NewCachedGeocoder(client, cfg.MapboxCacheSize, metrics)
		if err != nil {
			return err
		}
		geocoder = cached
		metrics.GeocodeEnabled.Set(1)
		logger.Info("mapbox geocoding enabled", "cache_size", cfg.MapboxCacheSize, "timeout", cfg.MapboxTimeout)
	} else {
		logger.Info("mapbox geocoding disabled")
	}

	commandReader := kafkaadapter.NewReader(cfg, cfg.KafkaInboundTopic, logger)
	commandWriter := kafkaadapter.NewWriter(cfg, cfg.KafkaCommandTopic, logger)
	reportReader := kafkaadapter.NewReader(cfg, cfg.KafkaReportRequestTopic, logger)
	reportWriter := kafkaadapter.NewWriter(cfg, cfg.KafkaReportTopic, logger)

	commands := pipeline.New("commands", commandReader,
		pipeline.NewCommandTransformer(geocoder, logger, metrics),
		commandWriter, logger, metrics, cfg.BatchSize)
	reports := pipeline.New("reports", reportReader,
		pipeline.NewReportTransformer(builder, logger, metrics),
		reportWriter, logger, metrics, cfg.BatchSize)

	srv := httpadapter.NewServer(cfg.HTTPAddr, builder, logger, commands, reports)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error { return commands.Run(gctx) })
	g.Go(func() error { return reports.Run(gctx) })

	if reloader != nil {
		g.Go(func() error { return reloader.Run(gctx) })
	}

	// Stop the server on a signal or when any other goroutine fails.
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("http server shutdown error", "error", err)
		}
		return nil
	})

	err = g.Wait()

	for name, c := range map[string]interface{ Close() error }{
		"command reader": commandReader,
		"command writer": commandWriter,
		"report reader":  reportReader,
		"report writer":  reportWriter,
	} {
		if cerr := c.Close(); cerr != nil {
			logger.Error("kafka close error", "client", name, "error", cerr)
		}
	}

	logger.Info("shutdown complete")
	return err
}

// newReloader returns nil when no reload schedule is configured.
func newReloader(cfg *config.Config, store *catalog.Store, logger *slog.Logger, metrics *observability.Metrics) (*catalog.Reloader, error) {
	if cfg.CatalogReloadSchedule == "" {
		return nil, nil
	}
	return catalog.NewReloader(store, cfg.CatalogReloadSchedule, logger, metrics)
}
