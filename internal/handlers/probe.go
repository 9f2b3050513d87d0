package handlers

import (
	"github.com/gofiber/fiber/v3"

	"burialpredict/internal/models"
	"burialpredict/internal/prediction"
)

// ProbeHandler handles Kubernetes health probe endpoints.
type ProbeHandler struct {
	model prediction.Regressor
}

// NewProbeHandler creates a new probe handler.
func NewProbeHandler(model prediction.Regressor) *ProbeHandler {
	return &ProbeHandler{model: model}
}

// Liveness handles the /healthz endpoint for Kubernetes liveness probes.
// Returns 200 OK if the application is running.
func (h *ProbeHandler) Liveness(c fiber.Ctx) error {
	return c.JSON(models.StatusResponse{Status: "ok"})
}

// Readiness handles the /readyz endpoint for Kubernetes readiness probes.
// Returns 200 OK if a model is loaded and requests can be served.
func (h *ProbeHandler) Readiness(c fiber.Ctx) error {
	if h.model == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(models.StatusResponse{
			Status: "error",
			Error:  "model unavailable",
		})
	}

	return c.JSON(models.StatusResponse{Status: "ok"})
}
