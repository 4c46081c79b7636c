package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the collectors of the API and the site generator.
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequests     *prometheus.CounterVec
	HTTPDuration     *prometheus.HistogramVec
	ReviewsSubmitted prometheus.Counter
	ReviewsRejected  *prometheus.CounterVec
	PagesRendered    *prometheus.CounterVec
	BuildDuration    prometheus.Histogram
	DirectoryLoaded  prometheus.Gauge
}

// New registers every collector on a fresh registry, together with the Go
// runtime and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		HTTPRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cocolist_http_requests_total",
				Help: "Total number of HTTP requests served",
			},
			[]string{"method", "route", "status"},
		),
		HTTPDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "cocolist_http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		ReviewsSubmitted: factory.NewCounter(prometheus.CounterOpts{
			Name: "cocolist_reviews_submitted_total",
			Help: "Total number of reviews stored",
		}),
		ReviewsRejected: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cocolist_reviews_rejected_total",
				Help: "Total number of reviews rejected",
			},
			[]string{"reason"},
		),
		PagesRendered: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cocolist_site_pages_rendered_total",
				Help: "Total number of site pages written",
			},
			[]string{"language", "kind"},
		),
		BuildDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "cocolist_site_build_duration_seconds",
			Help:    "Duration of full site builds in seconds",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 10),
		}),
		DirectoryLoaded: factory.NewGauge(prometheus.GaugeOpts{
			Name: "cocolist_directory_loaded_timestamp_seconds",
			Help: "Fetch time of the snapshot served by the API",
		}),
	}
}

// Registry exposes the registry for tests and custom gatherers.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
