// Package metrics provides the centralized Prometheus metrics registry for
// the prediction platform.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Global registry instance
var (
	registry *prometheus.Registry
	once     sync.Once
)

// Counter metrics
var (
	RowsIngestedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "match_point",
		Name:      "rows_ingested_total",
		Help:      "Total number of raw match rows read from the dataset",
	})
	RowsDroppedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "match_point",
		Name:      "rows_dropped_total",
		Help:      "Total number of raw match rows dropped during cleaning",
	}, []string{"reason"})
	MatchesEngineeredTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "match_point",
		Name:      "matches_engineered_total",
		Help:      "Total number of matches run through the feature pipeline",
	})
	PredictionsServed = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "match_point",
		Name:      "predictions_served_total",
		Help:      "Total number of predictions served over HTTP",
	})
	DatasetDownloadsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "match_point",
		Name:      "dataset_downloads_total",
		Help:      "Total number of yearly dataset download attempts",
	}, []string{"status"})
)

// Gauge metrics
var (
	SnapshotPlayers = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "match_point",
		Name:      "snapshot_players",
		Help:      "Number of players in the serving snapshot",
	})
	SnapshotColumns = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "match_point",
		Name:      "snapshot_columns",
		Help:      "Number of feature columns sent to the model",
	})
)

// Histogram metrics
var (
	PipelineDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "match_point",
		Name:      "pipeline_duration_seconds",
		Help:      "Duration of full feature pipeline runs in seconds",
		Buckets:   []float64{1, 5, 10, 30, 60, 300, 600, 1800},
	})
	StageDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "match_point",
		Name:      "stage_duration_seconds",
		Help:      "Duration of individual feature stages in seconds",
		Buckets:   prometheus.DefBuckets,
	}, []string{"stage"})
)

// InitRegistry initializes the global Prometheus registry.
func InitRegistry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()

		// Register counter metrics
		registry.MustRegister(RowsIngestedTotal)
		registry.MustRegister(RowsDroppedTotal)
		registry.MustRegister(MatchesEngineeredTotal)
		registry.MustRegister(PredictionsServed)
		registry.MustRegister(DatasetDownloadsTotal)

		// Register gauge metrics
		registry.MustRegister(SnapshotPlayers)
		registry.MustRegister(SnapshotColumns)

		// Register histogram metrics
		registry.MustRegister(PipelineDuration)
		registry.MustRegister(StageDuration)
	})
	return registry
}

// GetRegistry returns the global Prometheus registry.
func GetRegistry() *prometheus.Registry {
	if registry == nil {
		return InitRegistry()
	}
	return registry
}

// Handler returns the Prometheus HTTP handler.
func Handler() http.Handler {
	return promhttp.HandlerFor(GetRegistry(), promhttp.HandlerOpts{})
}

// RegisterCollectors adds package-local collectors to the global registry.
func RegisterCollectors(collectors ...prometheus.Collector) {
	reg := GetRegistry()
	for _, c := range collectors {
		reg.MustRegister(c)
	}
}

// RecordRowIngested records a raw dataset row read.
func RecordRowIngested() {
	RowsIngestedTotal.Inc()
}

// RecordRowDropped records a row dropped during cleaning.
func RecordRowDropped(reason string) {
	RowsDroppedTotal.WithLabelValues(reason).Inc()
}

// RecordPipelineRun records a completed pipeline run.
func RecordPipelineRun(matches int, durationSeconds float64) {
	MatchesEngineeredTotal.Add(float64(matches))
	PipelineDuration.Observe(durationSeconds)
}

// RecordStageDuration records the duration of a single feature stage.
func RecordStageDuration(stage string, durationSeconds float64) {
	StageDuration.WithLabelValues(stage).Observe(durationSeconds)
}

// UpdateSnapshot updates the snapshot size gauges.
func UpdateSnapshot(players, columns int) {
	SnapshotPlayers.Set(float64(players))
	SnapshotColumns.Set(float64(columns))
}
