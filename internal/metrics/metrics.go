// Package metrics provides the centralized Prometheus metrics registry for the pipeline.
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
	MatchesProcessedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "value_scout",
		Name:      "matches_processed_total",
		Help:      "Total number of match payloads processed into records",
	})
	PayloadsRejectedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "value_scout",
		Name:      "payloads_rejected_total",
		Help:      "Total number of feed payloads rejected as malformed",
	})
	PredictionsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "value_scout",
		Name:      "predictions_total",
		Help:      "Total number of outcome predictions produced",
	})
	PredictionFallbacksTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "value_scout",
		Name:      "prediction_fallbacks_total",
		Help:      "Total number of predictions served by the odds-implied fallback",
	})
	ValueBetsDetectedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "value_scout",
		Name:      "value_bets_detected_total",
		Help:      "Total number of value bets flagged",
	})
	FeedRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "value_scout",
		Name:      "feed_requests_total",
		Help:      "Total number of odds feed requests by sport and status",
	}, []string{"sport_key", "status"})
)

// Gauge metrics
var (
	LiveMatches = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "value_scout",
		Name:      "live_matches",
		Help:      "Number of matches currently inside the live window",
	})
	ModelReady = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "value_scout",
		Name:      "model_ready",
		Help:      "Whether the outcome model is trained and serving (1) or not (0)",
	})
	TrackedMatches = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "value_scout",
		Name:      "tracked_matches",
		Help:      "Number of match records held after the last refresh cycle",
	})
)

// Histogram metrics
var (
	MatchProcessingDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "value_scout",
		Name:      "match_processing_duration_seconds",
		Help:      "Duration of single-payload processing in seconds",
		Buckets:   prometheus.DefBuckets,
	})
	RefreshCycleDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "value_scout",
		Name:      "refresh_cycle_duration_seconds",
		Help:      "Duration of full odds refresh cycles in seconds",
		Buckets:   []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120},
	})
)

// InitRegistry initializes the global Prometheus registry and registers all metrics.
func InitRegistry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()

		// Register counter metrics
		registry.MustRegister(MatchesProcessedTotal)
		registry.MustRegister(PayloadsRejectedTotal)
		registry.MustRegister(PredictionsTotal)
		registry.MustRegister(PredictionFallbacksTotal)
		registry.MustRegister(ValueBetsDetectedTotal)
		registry.MustRegister(FeedRequestsTotal)

		// Register gauge metrics
		registry.MustRegister(LiveMatches)
		registry.MustRegister(ModelReady)
		registry.MustRegister(TrackedMatches)

		// Register histogram metrics
		registry.MustRegister(MatchProcessingDuration)
		registry.MustRegister(RefreshCycleDuration)
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

// RecordMatchProcessed records a processed payload and its processing duration.
func RecordMatchProcessed(durationSeconds float64) {
	MatchesProcessedTotal.Inc()
	MatchProcessingDuration.Observe(durationSeconds)
}

// RecordPayloadRejected records a malformed payload rejection.
func RecordPayloadRejected() {
	PayloadsRejectedTotal.Inc()
}

// RecordPrediction records a prediction event, fallback or model-backed.
func RecordPrediction(fallback bool) {
	PredictionsTotal.Inc()
	if fallback {
		PredictionFallbacksTotal.Inc()
	}
}

// RecordValueBet records a detected value bet.
func RecordValueBet() {
	ValueBetsDetectedTotal.Inc()
}

// RecordFeedRequest records an odds feed request outcome.
// status should be one of: "success", "failure"
func RecordFeedRequest(sportKey, status string) {
	FeedRequestsTotal.WithLabelValues(sportKey, status).Inc()
}

// RecordRefreshCycle records the duration of a refresh cycle.
func RecordRefreshCycle(durationSeconds float64) {
	RefreshCycleDuration.Observe(durationSeconds)
}

// UpdateLiveMatches updates the live match gauge.
func UpdateLiveMatches(count float64) {
	LiveMatches.Set(count)
}

// UpdateTrackedMatches updates the tracked match gauge.
func UpdateTrackedMatches(count float64) {
	TrackedMatches.Set(count)
}

// SetModelReady flips the model readiness gauge.
func SetModelReady(ready bool) {
	if ready {
		ModelReady.Set(1)
	} else {
		ModelReady.Set(0)
	}
}
