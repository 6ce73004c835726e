package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the ETL pipeline.
type Metrics struct {
	StationsUpdated  prometheus.Counter
	FetchErrors      *prometheus.CounterVec // labels: product={metar,taf}
	RecordsPublished prometheus.Counter
	PublishErrors    prometheus.Counter
	PipelineRunning  prometheus.Gauge
	LastUpdate       prometheus.Gauge

	CycleDuration    prometheus.Histogram
	FetchAPIDuration *prometheus.HistogramVec // labels: product={metar,taf}

	// Home Assistant publishing metrics.
	HassPublish *prometheus.CounterVec // labels: outcome={success,error}
}

// NewMetrics creates and registers all pipeline metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		StationsUpdated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "avwx_etl",
			Name:      "stations_updated_total",
			Help:      "Total station updates completed successfully.",
		}),
		FetchErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "avwx_etl",
			Name:      "fetch_errors_total",
			Help:      "Weather API fetch failures by product.",
		}, []string{"product"}),
		RecordsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "avwx_etl",
			Name:      "records_published_total",
			Help:      "Total enriched records written to the sink topic.",
		}),
		PublishErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "avwx_etl",
			Name:      "publish_errors_total",
			Help:      "Total sink publish failures.",
		}),
		PipelineRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "avwx_etl",
			Name:      "pipeline_running",
			Help:      "1 when the pipeline is active, 0 when shut down.",
		}),
		LastUpdate: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "avwx_etl",
			Name:      "last_update_timestamp_seconds",
			Help:      "Unix time of the last completed update cycle.",
		}),
		CycleDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "avwx_etl",
			Name:      "cycle_duration_seconds",
			Help:      "Duration of a complete all-stations update cycle.",
			Buckets:   []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
		}),
		FetchAPIDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "avwx_etl",
			Name:      "fetch_api_duration_seconds",
			Help:      "Weather API request duration in seconds by product.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"product"}),
		HassPublish: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "avwx_etl",
			Name:      "hass_publish_total",
			Help:      "Home Assistant state publishes by outcome.",
		}, []string{"outcome"}),
	}

	prometheus.MustRegister(
		m.StationsUpdated,
		m.FetchErrors,
		m.RecordsPublished,
		m.PublishErrors,
		m.PipelineRunning,
		m.LastUpdate,
		m.CycleDuration,
		m.FetchAPIDuration,
		m.HassPublish,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		StationsUpdated:  prometheus.NewCounter(prometheus.CounterOpts{Namespace: "avwx_etl", Name: "stations_updated_total"}),
		FetchErrors:      prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "avwx_etl", Name: "fetch_errors_total"}, []string{"product"}),
		RecordsPublished: prometheus.NewCounter(prometheus.CounterOpts{Namespace: "avwx_etl", Name: "records_published_total"}),
		PublishErrors:    prometheus.NewCounter(prometheus.CounterOpts{Namespace: "avwx_etl", Name: "publish_errors_total"}),
		PipelineRunning:  prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "avwx_etl", Name: "pipeline_running"}),
		LastUpdate:       prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "avwx_etl", Name: "last_update_timestamp_seconds"}),
		CycleDuration:    prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "avwx_etl", Name: "cycle_duration_seconds"}),
		FetchAPIDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{Namespace: "avwx_etl", Name: "fetch_api_duration_seconds"}, []string{"product"}),
		HassPublish:      prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "avwx_etl", Name: "hass_publish_total"}, []string{"outcome"}),
	}
}
