package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/hangarline/avwx-etl/internal/domain"
	"github.com/hangarline/avwx-etl/internal/observability"
	"github.com/hangarline/avwx-etl/internal/store"
)

// Fetcher retrieves raw weather products for one station.
type Fetcher interface {
	FetchMETAR(ctx context.Context, stationID string) (domain.RawMETAR, bool, error)
	FetchTAF(ctx context.Context, stationID string) (domain.RawTAF, bool, error)
}

// Publisher writes enriched records to the destination.
type Publisher interface {
	PublishObservation(ctx context.Context, obs domain.EnrichedObservation) error
	PublishForecast(ctx context.Context, fc domain.EnrichedForecast) error
}

// StatePublisher pushes the latest record for the sensor station to an
// external state consumer after each cycle.
type StatePublisher interface {
	PublishStates(ctx context.Context, rec store.Record) error
}

// Options carries the loop parameters.
type Options struct {
	Stations       []string
	UpdateInterval time.Duration
	StationDelay   time.Duration
	IncludeTAF     bool
	SensorStation  string

	// Clock defaults to the real clock; tests inject a fake.
	Clock clockwork.Clock
}

// Pipeline orchestrates the periodic fetch-enrich-publish loop.
type Pipeline struct {
	fetcher   Fetcher
	enricher  *domain.Enricher
	publisher Publisher
	store     *store.Store
	states    StatePublisher
	logger    *slog.Logger
	metrics   *observability.Metrics
	opts      Options
	clock     clockwork.Clock
	ready     atomic.Bool
}

// New creates a Pipeline with the given stages and observability. Pass
// a nil states publisher to disable external state publishing.
func New(f Fetcher, e *domain.Enricher, p Publisher, st *store.Store, states StatePublisher,
	logger *slog.Logger, metrics *observability.Metrics, opts Options) *Pipeline {
	clock := opts.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Pipeline{
		fetcher:   f,
		enricher:  e,
		publisher: p,
		store:     st,
		states:    states,
		logger:    logger,
		metrics:   metrics,
		opts:      opts,
		clock:     clock,
	}
}

// CheckReadiness returns nil if the pipeline has completed at least one
// station update, or an error describing why the service is not yet ready.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if !p.ready.Load() {
		return errors.New("pipeline has not completed an update cycle yet")
	}
	return nil
}

// Run executes the update loop until the context is cancelled. The
// first cycle starts immediately; later cycles follow the interval.
func (p *Pipeline) Run(ctx context.Context) error {
	p.logger.Info("pipeline started",
		"stations", len(p.opts.Stations),
		"interval", p.opts.UpdateInterval,
		"include_taf", p.opts.IncludeTAF,
	)
	p.metrics.PipelineRunning.Set(1)
	defer p.metrics.PipelineRunning.Set(0)

	p.runCycle(ctx)

	ticker := p.clock.NewTicker(p.opts.UpdateInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			p.logger.Info("pipeline stopping", "reason", ctx.Err())
			return nil
		case <-ticker.Chan():
			p.runCycle(ctx)
		}
	}
}

// runCycle updates every configured station once. Stations are
// isolated: one failing station never aborts the rest of the cycle.
func (p *Pipeline) runCycle(ctx context.Context) {
	start := p.clock.Now()
	updated := 0

	for i, station := range p.opts.Stations {
		// Pace requests so a long station list does not hammer the API.
		if i > 0 && !p.sleep(ctx, p.opts.StationDelay) {
			return
		}
		if ctx.Err() != nil {
			return
		}
		if p.updateStation(ctx, station) {
			updated++
			p.metrics.StationsUpdated.Inc()
		}
	}

	if updated > 0 {
		p.ready.Store(true)
	}
	p.metrics.CycleDuration.Observe(p.clock.Since(start).Seconds())
	p.metrics.LastUpdate.Set(float64(p.clock.Now().Unix()))
	p.logger.Info("update cycle complete", "updated", updated, "stations", len(p.opts.Stations))

	p.publishStates(ctx)
}

// publishStates pushes the sensor station's latest record to the
// external state consumer, if one is configured.
func (p *Pipeline) publishStates(ctx context.Context) {
	if p.states == nil || p.opts.SensorStation == "" {
		return
	}
	rec, ok := p.store.Get(p.opts.SensorStation)
	if !ok {
		return
	}
	if err := p.states.PublishStates(ctx, rec); err != nil {
		p.logger.Warn("state publish failed", "station", p.opts.SensorStation, "error", err)
		p.metrics.HassPublish.WithLabelValues("error").Inc()
		return
	}
	p.metrics.HassPublish.WithLabelValues("success").Inc()
}

func (p *Pipeline) sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	select {
	case <-ctx.Done():
		return false
	case <-p.clock.After(d):
		return true
	}
}
