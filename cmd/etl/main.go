package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hangarline/avwx-etl/internal/adapter/avwx"
	"github.com/hangarline/avwx-etl/internal/adapter/hass"
	httpadapter "github.com/hangarline/avwx-etl/internal/adapter/http"
	kafkaadapter "github.com/hangarline/avwx-etl/internal/adapter/kafka"
	"github.com/hangarline/avwx-etl/internal/config"
	"github.com/hangarline/avwx-etl/internal/domain"
	"github.com/hangarline/avwx-etl/internal/observability"
	"github.com/hangarline/avwx-etl/internal/pipeline"
	"github.com/hangarline/avwx-etl/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	loc := time.Local
	if cfg.LocalTZ != "" {
		loc, err = time.LoadLocation(cfg.LocalTZ)
		if err != nil {
			logger.Error("invalid LOCAL_TZ", "tz", cfg.LocalTZ, "error", err)
			os.Exit(1)
		}
	}

	fetcher := avwx.NewClient(cfg.APIBaseURL, cfg.APITimeout, metrics, logger)
	writer := kafkaadapter.NewWriter(cfg, logger)
	enricher := domain.NewEnricher(loc, logger)
	st := store.New(cfg.StoreSize)

	// Home Assistant publishing is feature-flagged via HASS_ENABLED / SUPERVISOR_TOKEN.
	var states pipeline.StatePublisher
	if cfg.HassEnabled {
		states = hass.NewClient(cfg.HassAPIURL, cfg.SupervisorToken, cfg.HassTimeout, logger)
		logger.Info("home assistant publishing enabled", "sensor_station", cfg.SensorStation)
	} else {
		logger.Info("home assistant publishing disabled")
	}

	p := pipeline.New(fetcher, enricher, writer, st, states, logger, metrics, pipeline.Options{
		Stations:       cfg.Stations,
		UpdateInterval: cfg.UpdateInterval,
		StationDelay:   cfg.StationDelay,
		IncludeTAF:     cfg.IncludeTAF,
		SensorStation:  cfg.SensorStation,
	})

	srv := httpadapter.NewServer(cfg.HTTPAddr, p, st, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	// Start the update pipeline.
	go func() {
		if err := p.Run(ctx); err != nil {
			logger.Error("pipeline error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if err := writer.Close(); err != nil {
		logger.Error("kafka writer close error", "error", err)
	}

	logger.Info("shutdown complete")
}
