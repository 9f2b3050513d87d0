package server

import (
	"burialpredict/internal/handlers"
	"burialpredict/internal/metrics"
	"burialpredict/internal/prediction"
)

// RegisterRoutes registers all application routes.
func (s *Server) RegisterRoutes(model prediction.Regressor, service handlers.Recommender) {
	predictHandler := handlers.NewPredictHandler(service)
	probeHandler := handlers.NewProbeHandler(model)

	s.App.Post("/predict", predictHandler.Predict)

	// Kubernetes probes
	s.App.Get("/healthz", probeHandler.Liveness)
	s.App.Get("/readyz", probeHandler.Readiness)

	if s.Cfg.MetricsEnabled {
		metrics.Init()
		s.App.Get("/metrics", metrics.Handler())
	}
}
