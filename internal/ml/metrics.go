package ml

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Prometheus metrics for model service interactions
var (
	ModelPredictionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "match_point",
		Name:      "model_predictions_total",
		Help:      "Total number of predictions requested from the model service",
	}, []string{"cached"})

	ModelPredictionLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "match_point",
		Name:      "model_prediction_latency_seconds",
		Help:      "Latency of model service prediction calls",
		Buckets:   prometheus.DefBuckets,
	})

	ModelErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "match_point",
		Name:      "model_errors_total",
		Help:      "Total number of model service errors",
	}, []string{"operation", "reason"})

	PredictionCacheHits = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "match_point",
		Name:      "prediction_cache_hits_total",
		Help:      "Total number of prediction cache hits",
	})

	PredictionCacheMisses = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "match_point",
		Name:      "prediction_cache_misses_total",
		Help:      "Total number of prediction cache misses",
	})
)

// Collectors returns all collectors of this package for registration.
func Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		ModelPredictionsTotal,
		ModelPredictionLatency,
		ModelErrorsTotal,
		PredictionCacheHits,
		PredictionCacheMisses,
	}
}
