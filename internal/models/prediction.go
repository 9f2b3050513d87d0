package models

import (
	"burialpredict/internal/prediction"
)

// PredictionRequest is the body of POST /predict.
type PredictionRequest struct {
	DeathDate *string `json:"deathDate" validate:"required"`
}

// PredictionResponse is returned for a successful prediction.
type PredictionResponse struct {
	DeathDate            string `json:"deathDate"`
	PredictedDaysBetween int    `json:"predictedDaysBetween"`
	BurialDate           string `json:"burialDate"`
	BurialWeekday        string `json:"burialWeekday"`
}

// NewPredictionResponse formats a recommendation for the wire.
func NewPredictionResponse(rec *prediction.Recommendation) PredictionResponse {
	return PredictionResponse{
		DeathDate:            prediction.FormatDate(rec.DeathDate),
		PredictedDaysBetween: rec.PredictedDaysBetween,
		BurialDate:           prediction.FormatDate(rec.BurialDate),
		BurialWeekday:        rec.BurialWeekday(),
	}
}

// ErrorResponse is the body of every non-2xx API response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// StatusResponse is returned by the probe endpoints.
type StatusResponse struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}
