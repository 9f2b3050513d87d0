package metrics

import (
	"strconv"
	"sync"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"burialpredict/internal/validation"
)

// Prediction outcomes.
const (
	OutcomeOK       = "ok"
	OutcomeRejected = "rejected"
	OutcomeFailed   = "failed"
)

var (
	predictionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "burialpredict_predictions_total",
			Help: "Total prediction requests by outcome",
		},
		[]string{"outcome"},
	)

	predictedDays = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "burialpredict_predicted_days_between",
			Help:    "Rounded number of days between death and recommended burial",
			Buckets: []float64{0, 1, 2, 3, 4, 5, 7, 10, 14, 21, 30},
		},
	)

	modelInfo = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "burialpredict_model_info",
			Help: "Loaded model artifact, always 1",
		},
		[]string{"model_type", "trees"},
	)
)

var initOnce sync.Once

// Init registers the collectors with the default registry.
// Must be called once at startup.
func Init() {
	initOnce.Do(func() {
		prometheus.MustRegister(predictionsTotal, predictedDays, modelInfo)
	})
}

// Handler serves the Prometheus exposition format.
func Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}

// SetModelInfo records which artifact is serving.
func SetModelInfo(modelType string, trees int) {
	modelInfo.Reset()
	modelInfo.WithLabelValues(modelType, strconv.Itoa(trees)).Set(1)
}

// RecordPrediction counts one /predict request. days is only observed on
// success.
func RecordPrediction(days int, err error) {
	switch {
	case err == nil:
		predictionsTotal.WithLabelValues(OutcomeOK).Inc()
		predictedDays.Observe(float64(days))
	case validation.IsValidationError(err):
		predictionsTotal.WithLabelValues(OutcomeRejected).Inc()
	default:
		predictionsTotal.WithLabelValues(OutcomeFailed).Inc()
	}
}
