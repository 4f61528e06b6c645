package providers

import (
	"carhoot/internal/structures"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"time"
)

type MetricsProviderInterface interface {
	IncRequestsTotal(endpoint string, status int)
	ObserveRequestDuration(endpoint string, duration time.Duration)
	IncCacheHits()
	IncCacheMisses()
	ObservePersistenceDuration(duration time.Duration)
	IncPersistenceErrors(op string)
	IncGuesses(mode string, result string)
	SetActiveMatches(count int)
	SetStoredKeys(count int)
}

type MetricsProvider struct {
	requestsTotal       *prometheus.CounterVec
	requestDuration     *prometheus.HistogramVec
	cacheHits           prometheus.Counter
	cacheMisses         prometheus.Counter
	persistenceDuration prometheus.Histogram
	persistenceErrors   *prometheus.CounterVec
	guessesTotal        *prometheus.CounterVec
	activeMatches       prometheus.Gauge
	storedKeys          prometheus.Gauge
}

func (m *MetricsProvider) IncRequestsTotal(endpoint string, status int) {
	m.requestsTotal.WithLabelValues(endpoint, httpStatusBucket(status)).Inc()
}

func (m *MetricsProvider) ObserveRequestDuration(endpoint string, duration time.Duration) {
	m.requestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncCacheHits() {
	m.cacheHits.Inc()
}

func (m *MetricsProvider) IncCacheMisses() {
	m.cacheMisses.Inc()
}

func (m *MetricsProvider) ObservePersistenceDuration(duration time.Duration) {
	m.persistenceDuration.Observe(duration.Seconds())
}

func (m *MetricsProvider) IncPersistenceErrors(op string) {
	m.persistenceErrors.WithLabelValues(op).Inc()
}

func (m *MetricsProvider) IncGuesses(mode string, result string) {
	m.guessesTotal.WithLabelValues(mode, result).Inc()
}

func (m *MetricsProvider) SetActiveMatches(count int) {
	m.activeMatches.Set(float64(count))
}

func (m *MetricsProvider) SetStoredKeys(count int) {
	m.storedKeys.Set(float64(count))
}

func httpStatusBucket(code int) string {
	switch {
	case code < 200:
		return "1xx"
	case code < 300:
		return "2xx"
	case code < 400:
		return "3xx"
	case code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}

func NewMetricsProvider(conf *structures.Config) MetricsProviderInterface {
	if !conf.Metrics.Enabled {
		return &noopMetrics{}
	}

	return &MetricsProvider{
		requestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "carhoot_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"endpoint", "status"}),

		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "carhoot_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),

		cacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "carhoot_cache_hits_total",
			Help: "Total number of cache hits",
		}),

		cacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "carhoot_cache_misses_total",
			Help: "Total number of cache misses",
		}),

		persistenceDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "carhoot_persistence_duration_seconds",
			Help:    "Duration of snapshot writes in seconds",
			Buckets: prometheus.DefBuckets,
		}),

		persistenceErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "carhoot_persistence_errors_total",
			Help: "Failed progress store operations",
		}, []string{"op"}),

		guessesTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "carhoot_guesses_total",
			Help: "Submitted guesses by mode and result",
		}, []string{"mode", "result"}),

		activeMatches: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "carhoot_active_matches",
			Help: "Multiplayer matches held in memory",
		}),

		storedKeys: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "carhoot_stored_keys",
			Help: "Entries in the durable progress store",
		}),
	}
}

// noopMetrics is a no-op implementation for when metrics are disabled.
type noopMetrics struct{}

func (n *noopMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (n *noopMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (n *noopMetrics) IncCacheHits()                                    {}
func (n *noopMetrics) IncCacheMisses()                                  {}
func (n *noopMetrics) ObservePersistenceDuration(_ time.Duration)       {}
func (n *noopMetrics) IncPersistenceErrors(_ string)                    {}
func (n *noopMetrics) IncGuesses(_ string, _ string)                    {}
func (n *noopMetrics) SetActiveMatches(_ int)                           {}
func (n *noopMetrics) SetStoredKeys(_ int)                              {}
