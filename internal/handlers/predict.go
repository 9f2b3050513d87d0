package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	"burialpredict/internal/metrics"
	"burialpredict/internal/models"
	"burialpredict/internal/prediction"
	"burialpredict/internal/validation"
)

// Recommender produces burial recommendations from a raw death date.
type Recommender interface {
	Recommend(rawDeathDate string) (*prediction.Recommendation, error)
}

// PredictHandler serves burial date predictions.
type PredictHandler struct {
	service Recommender
}

// NewPredictHandler creates a new predict handler.
func NewPredictHandler(service Recommender) *PredictHandler {
	return &PredictHandler{service: service}
}

// Predict handles POST /predict. Errors are returned to the app's
// ErrorHandler, which owns the mapping to status codes. A panic is counted
// as a failed prediction and re-raised for the recover middleware.
func (h *PredictHandler) Predict(c fiber.Ctx) error {
	defer func() {
		if r := recover(); r != nil {
			metrics.RecordPrediction(0, fmt.Errorf("panic: %v", r))
			panic(r)
		}
	}()

	rec, err := h.recommend(c)
	if err != nil {
		metrics.RecordPrediction(0, err)
		return err
	}
	metrics.RecordPrediction(rec.PredictedDaysBetween, nil)

	return c.JSON(models.NewPredictionResponse(rec))
}

func (h *PredictHandler) recommend(c fiber.Ctx) (*prediction.Recommendation, error) {
	var req models.PredictionRequest
	if err := validation.DecodeJSON(c.Body(), &req); err != nil {
		return nil, err
	}
	return h.service.Recommend(*req.DeathDate)
}
