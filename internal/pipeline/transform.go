package pipeline

import (
	"context"
)

// updateStation runs one fetch-enrich-publish pass for a station.
// Returns true if at least the observation was refreshed.
func (p *Pipeline) updateStation(ctx context.Context, station string) bool {
	ok := p.updateObservation(ctx, station)

	if p.opts.IncludeTAF {
		p.updateForecast(ctx, station)
	}

	return ok
}

func (p *Pipeline) updateObservation(ctx context.Context, station string) bool {
	raw, found, err := p.fetcher.FetchMETAR(ctx, station)
	if err != nil {
		p.logger.Error("metar fetch failed", "station", station, "error", err)
		p.metrics.FetchErrors.WithLabelValues("metar").Inc()
		return false
	}
	if !found {
		p.logger.Warn("no current observation", "station", station)
		return false
	}

	obs := p.enricher.EnrichObservation(raw)
	p.store.PutObservation(obs)

	if err := p.publisher.PublishObservation(ctx, obs); err != nil {
		p.logger.Error("observation publish failed", "station", station, "error", err)
		p.metrics.PublishErrors.Inc()
		return false
	}
	p.metrics.RecordsPublished.Inc()
	return true
}

func (p *Pipeline) updateForecast(ctx context.Context, station string) {
	raw, found, err := p.fetcher.FetchTAF(ctx, station)
	if err != nil {
		p.logger.Error("taf fetch failed", "station", station, "error", err)
		p.metrics.FetchErrors.WithLabelValues("taf").Inc()
		return
	}
	if !found {
		// Not every station files a TAF; absence is routine.
		p.logger.Debug("no current forecast", "station", station)
		return
	}

	fc := p.enricher.EnrichForecast(raw)
	p.store.PutForecast(fc)

	if err := p.publisher.PublishForecast(ctx, fc); err != nil {
		p.logger.Error("forecast publish failed", "station", station, "error", err)
		p.metrics.PublishErrors.Inc()
		return
	}
	p.metrics.RecordsPublished.Inc()
}
