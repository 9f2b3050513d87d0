package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"burialpredict/internal/config"
	"burialpredict/internal/logging"
	"burialpredict/internal/metrics"
	"burialpredict/internal/model"
	"burialpredict/internal/prediction"
	"burialpredict/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := logging.New(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	// The service cannot answer anything without its model.
	forest, err := model.Load(cfg.ModelPath)
	if err != nil {
		logger.Fatal("failed to load model", zap.String("path", cfg.ModelPath), zap.Error(err))
	}
	if err := forest.CheckFeatures(prediction.FeatureNames); err != nil {
		logger.Fatal("model does not match feature layout", zap.String("path", cfg.ModelPath), zap.Error(err))
	}
	logger.Info("model loaded",
		zap.String("path", cfg.ModelPath),
		zap.String("model_type", forest.ModelType()),
		zap.Int("trees", forest.NumTrees()),
	)

	service := prediction.NewService(forest)

	srv := server.New(cfg, logger)
	srv.RegisterRoutes(forest, service)
	if cfg.MetricsEnabled {
		metrics.SetModelInfo(forest.ModelType(), forest.NumTrees())
	}

	// Graceful shutdown
	go func() {
		if err := srv.Start(); err != nil {
			logger.Error("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}
	logger.Info("server exited")
}
