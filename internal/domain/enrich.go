package domain

import (
	"log/slog"
	"time"
)

// Enricher composes the decoders into the single public entry point of
// the core. It holds no mutable state between calls: the local
// timezone and logger are fixed at construction, every call reads only
// its input and allocates only new output, so invocations may run
// concurrently per station without coordination.
type Enricher struct {
	loc    *time.Location
	logger *slog.Logger
}

// NewEnricher creates an Enricher rendering local times in loc (nil
// means the system timezone). The logger is the diagnostic side
// channel; parse failures are reported there and never interrupt
// enrichment.
func NewEnricher(loc *time.Location, logger *slog.Logger) *Enricher {
	if loc == nil {
		loc = time.Local
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Enricher{loc: loc, logger: logger}
}

// EnrichObservation transforms one raw METAR into its normalized,
// decoded, derived form. Every sub-step degrades independently: a
// field that cannot be interpreted is absent in the output while its
// siblings still enrich.
func (e *Enricher) EnrichObservation(raw RawMETAR) EnrichedObservation {
	obs := EnrichedObservation{
		StationID:   raw.StationID,
		StationName: raw.StationName,
		RawText:     raw.RawText,
		TempC:       raw.Temp,
		DewpointC:   raw.Dewpoint,
		WindSpeedKt: raw.WindSpeed,
		WindGustKt:  raw.WindGust,
		WxString:    raw.WxString,
	}

	if raw.WxString != "" {
		obs.WxDecoded = ptrString(DecodeWeather(raw.WxString))
	}

	obs.CloudLayers = DecodeCloudLayers(raw.Clouds, raw.Cover, raw.Ceiling)

	obs.CeilingFeet = ExtractCeiling(obs.CloudLayers)
	if obs.CeilingFeet == nil && raw.Ceiling != nil {
		obs.CeilingFeet = ptrInt(int(*raw.Ceiling))
	}

	obs.WindDirDeg, obs.WindVariable = decodeWindDir(raw.WindDir)

	obs.VisibilitySM = ParseVisibility(raw.Visibility)
	if obs.VisibilitySM == nil && raw.Visibility.Present() {
		e.logger.Debug("unparseable visibility",
			"station", raw.StationID, "visib", raw.Visibility.Text())
	}

	if raw.FlightCat != "" {
		obs.FlightCategory = ptrString(raw.FlightCat)
	} else {
		obs.FlightCategory = DeriveFlightCategory(obs.VisibilitySM, obs.CeilingFeet)
	}

	obs.ObservedAt = LocalizeTime(raw.ObsTime, e.loc)
	if obs.ObservedAt != nil && obs.ObservedAt.Parsed.IsZero() {
		e.logger.Debug("unparseable observation time",
			"station", raw.StationID, "obs_time", raw.ObsTime.Text())
	}

	obs.AltimeterInHg, obs.PressureHPa = NormalizePressure(raw.Altimeter, raw.Pressure)

	if raw.Temp != nil && raw.Dewpoint != nil {
		obs.HumidityPct = ptrFloat(RelativeHumidity(*raw.Temp, *raw.Dewpoint))
	}

	category := ""
	if obs.FlightCategory != nil {
		category = *obs.FlightCategory
	}
	obs.Condition = ConditionFor(raw.WxString, category)
	obs.CloudCoveragePct = CloudCoveragePercent(raw.Cover)

	obs.ProcessedAt = clock.Now()
	return obs
}

// EnrichForecast transforms one raw TAF into decoded, summarized
// periods plus localized issue/validity times.
func (e *Enricher) EnrichForecast(raw RawTAF) EnrichedForecast {
	fc := EnrichedForecast{
		StationID: raw.StationID,
		RawText:   raw.RawText,
		IssuedAt:  LocalizeTime(raw.IssueTime, e.loc),
		ValidFrom: LocalizeTime(raw.ValidTimeFrom, e.loc),
		ValidTo:   LocalizeTime(raw.ValidTimeTo, e.loc),
	}

	periods := raw.Periods()
	if len(periods) == 0 {
		e.logger.Warn("TAF has no forecast periods", "station", raw.StationID)
	}

	fc.Periods = make([]ForecastPeriod, 0, len(periods))
	for _, p := range periods {
		fc.Periods = append(fc.Periods, e.decodePeriod(p))
	}

	fc.ProcessedAt = clock.Now()
	return fc
}

// decodeWindDir interprets the METAR wind direction: numeric degrees
// (0 kept as 0), or the literal "VRB" which reports as variable with
// no bearing.
func decodeWindDir(dir Scalar) (*int, bool) {
	if d, ok := dir.Float(); ok {
		return ptrInt(int(d)), d == 0
	}
	if dir.Text() == "VRB" {
		return nil, true
	}
	return nil, false
}
