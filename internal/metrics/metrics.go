// Package metrics exposes Prometheus instrumentation for ranking calls and
// similarity matrix builds.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metric names as constants for consistency.
const (
	MetricRankRequestsTotal        = "recommender_rank_requests_total"
	MetricRankDuration             = "recommender_rank_duration_seconds"
	MetricRankedResources          = "recommender_ranked_resources"
	MetricMatrixBuildsTotal        = "recommender_similarity_builds_total"
	MetricMatrixBuildDuration      = "recommender_similarity_build_duration_seconds"
	MetricMatrixSize               = "recommender_similarity_matrix_size"
	MetricSnapshotEvictionsTotal   = "recommender_similarity_snapshot_evictions_total"
	MetricPersonaLoadFailuresTotal = "recommender_persona_load_failures_total"
)

// Status constants for build outcomes.
const (
	StatusSuccess = "success"
	StatusFailure = "failure"
)

// Metrics contains the recommender's Prometheus collectors.
// All operations are thread-safe.
type Metrics struct {
	rankRequests        *prometheus.CounterVec
	rankDuration        *prometheus.HistogramVec
	rankedResources     prometheus.Histogram
	matrixBuilds        *prometheus.CounterVec
	matrixBuildDuration prometheus.Histogram
	matrixSize          prometheus.Gauge
	snapshotEvictions   prometheus.Counter
	personaLoadFailures prometheus.Counter
}

// NewMetrics creates and returns a new Metrics instance with all collectors initialized.
// The metrics are not registered; call Register to register them with a registry.
func NewMetrics() *Metrics {
	return &Metrics{
		rankRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: MetricRankRequestsTotal,
				Help: "Total number of ranking calls by resolved persona",
			},
			[]string{"persona"},
		),
		rankDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    MetricRankDuration,
				Help:    "Histogram of ranking duration in seconds by resolved persona",
				Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0},
			},
			[]string{"persona"},
		),
		rankedResources: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    MetricRankedResources,
				Help:    "Number of resources returned per ranking call",
				Buckets: prometheus.ExponentialBuckets(1, 4, 8),
			},
		),
		matrixBuilds: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: MetricMatrixBuildsTotal,
				Help: "Total number of similarity matrix builds by status",
			},
			[]string{"status"},
		),
		matrixBuildDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    MetricMatrixBuildDuration,
				Help:    "Histogram of similarity matrix build duration in seconds",
				Buckets: []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1.0, 5.0, 30.0},
			},
		),
		matrixSize: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: MetricMatrixSize,
				Help: "Number of skills in the most recently built similarity matrix",
			},
		),
		snapshotEvictions: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: MetricSnapshotEvictionsTotal,
				Help: "Total number of similarity snapshots evicted from the cache",
			},
		),
		personaLoadFailures: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: MetricPersonaLoadFailuresTotal,
				Help: "Total number of persona table loads that fell back to the default persona",
			},
		),
	}
}

// Register registers all metrics with the given registry.
func (m *Metrics) Register(reg prometheus.Registerer) error {
	for _, c := range m.Collectors() {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// Collectors returns all Prometheus collectors.
func (m *Metrics) Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.rankRequests,
		m.rankDuration,
		m.rankedResources,
		m.matrixBuilds,
		m.matrixBuildDuration,
		m.matrixSize,
		m.snapshotEvictions,
		m.personaLoadFailures,
	}
}

// ObserveRank records one ranking call. It satisfies ranking.Observer.
func (m *Metrics) ObserveRank(persona string, _ int, ranked int, elapsed time.Duration) {
	m.rankRequests.WithLabelValues(persona).Inc()
	m.rankDuration.WithLabelValues(persona).Observe(elapsed.Seconds())
	m.rankedResources.Observe(float64(ranked))
}

// ObserveMatrixBuild records a similarity build. size is ignored on failure.
func (m *Metrics) ObserveMatrixBuild(size int, elapsed time.Duration, err error) {
	if err != nil {
		m.matrixBuilds.WithLabelValues(StatusFailure).Inc()
		return
	}
	m.matrixBuilds.WithLabelValues(StatusSuccess).Inc()
	m.matrixBuildDuration.Observe(elapsed.Seconds())
	m.matrixSize.Set(float64(size))
}

// IncSnapshotEvictions counts one snapshot leaving the cache.
func (m *Metrics) IncSnapshotEvictions() {
	m.snapshotEvictions.Inc()
}

// IncPersonaLoadFailures counts a persona table that could not be loaded.
func (m *Metrics) IncPersonaLoadFailures() {
	m.personaLoadFailures.Inc()
}
