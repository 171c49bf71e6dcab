// cmd/worker-manager/main.go
package main

import (
	"context"
	stderrors "errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"creator-pricing-workers/internal/api"
	"creator-pricing-workers/internal/common/camunda"
	"creator-pricing-workers/internal/common/config"
	"creator-pricing-workers/internal/common/logger"
	"creator-pricing-workers/internal/common/observability"
	"creator-pricing-workers/internal/common/validation"
	"creator-pricing-workers/pkg/registry"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		zap.NewExample().Fatal("config load failed", zap.Error(err))
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog).WithFields(map[string]interface{}{
		"service": cfg.App.Name,
		"env":     cfg.App.Environment,
	})

	log.Info("Starting worker manager", map[string]interface{}{"version": cfg.App.Version})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	obs := observability.New(cfg.App.Name, log)

	reg, err := registry.Default()
	if err != nil {
		zapLog.Fatal("activity registry invalid", zap.Error(err))
	}
	validator, err := validation.NewValidator(reg.InputSchemas())
	if err != nil {
		zapLog.Fatal("input schemas failed to compile", zap.Error(err))
	}

	infra, err := connectInfrastructure(ctx, cfg, log)
	if err != nil {
		zapLog.Fatal("infrastructure unavailable", zap.Error(err))
	}
	defer infra.Close()

	deps, err := buildDependencies(ctx, cfg, infra, log)
	if err != nil {
		zapLog.Fatal("dependency wiring failed", zap.Error(err))
	}

	zeebeClient, err := camunda.Connect(ctx, cfg.Camunda, camunda.DefaultRetryConfig, log)
	if err != nil {
		zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
	}

	pool := camunda.NewPool(zeebeClient, log)
	handlers := buildHandlers(cfg, deps, validator, obs, log)
	for _, h := range handlers {
		pool.Start(h.taskType, config.GetWorkerConfig(cfg, h.taskType), h.handler)
	}
	log.Info("Workers registered", map[string]interface{}{"started": pool.Started()})

	// --- Health, Metrics & Public API ---
	server := api.NewServer(cfg.HTTP, api.Dependencies{
		Estimator: deps.estimator,
		Limiter:   deps.limiter,
		Validator: validator,
		Checks:    infra.Checks(),
		Logger:    log,
	}).HTTPServer()

	go func() {
		log.Info("HTTP server listening", map[string]interface{}{"address": cfg.HTTP.Address})
		if err := server.ListenAndServe(); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			log.Error("HTTP server failed", map[string]interface{}{"error": err.Error()})
			stop()
		}
	}()

	// --- Graceful Shutdown ---
	<-ctx.Done()
	log.Info("Shutdown signal received, stopping workers...", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.GetDuration(cfg.HTTP.ShutdownTimeout))
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown failed", map[string]interface{}{"error": err.Error()})
	}
	if err := pool.Close(); err != nil {
		log.Error("Error closing Zeebe client", map[string]interface{}{"error": err.Error()})
	}
	if err := obs.Shutdown(shutdownCtx); err != nil {
		log.Warn("Telemetry shutdown failed", map[string]interface{}{"error": err.Error()})
	}

	log.Info("Worker manager stopped gracefully", nil)
}

// workerDuration is the configured job timeout for taskType, or def when the
// worker has no configuration section.
func workerDuration(cfg *config.Config, taskType string, def time.Duration) time.Duration {
	if w, ok := cfg.Workers[taskType]; ok && w.Timeout > 0 {
		return config.GetDuration(w.Timeout)
	}
	return def
}
