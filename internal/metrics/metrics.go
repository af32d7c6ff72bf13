package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	Predictions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "screening_predictions_total",
			Help: "Number of predictions by verdict",
		},
		[]string{"verdict"},
	)

	PredictionErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "screening_prediction_errors_total",
			Help: "Number of failed predictions by error code",
		},
		[]string{"code"},
	)

	Retrains = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "screening_retrains_total",
			Help: "Number of retrain attempts by outcome",
		},
		[]string{"outcome"},
	)

	RetrainDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "screening_retrain_duration_seconds",
			Help:    "Duration of a full retrain in seconds",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 12),
		},
	)

	TrainingSamples = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "screening_training_samples",
			Help: "Number of samples used by the active model",
		},
	)

	ModelInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "screening_model_info",
			Help: "Active model version, value is always 1",
		},
		[]string{"version", "schema"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "screening_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)
)

// SetActiveModel выставляет ModelInfo только для текущей версии.
func SetActiveModel(version, schema string, samples int) {
	ModelInfo.Reset()
	ModelInfo.WithLabelValues(version, schema).Set(1)
	TrainingSamples.Set(float64(samples))
}
