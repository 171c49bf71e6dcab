// internal/workers/pricing/calculate-quick-estimate/handler.go
package calculatequickestimate

import (
	"context"
	"fmt"
	"time"

	"creator-pricing-workers/internal/common/camunda"
	"creator-pricing-workers/internal/common/errors"
	"creator-pricing-workers/internal/common/logger"
	"creator-pricing-workers/internal/common/metrics"
	"creator-pricing-workers/internal/common/observability"
	"creator-pricing-workers/internal/common/validation"
	"creator-pricing-workers/internal/scoring/estimate"
	"creator-pricing-workers/internal/scoring/pricing"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "calculate-quick-estimate"

	// quick estimates are quoted before a profile, and so a currency, exists
	estimateCurrency = "USD"
)

type Handler struct {
	config   *Config
	reporter *camunda.JobReporter
	logger   logger.Logger
}

func NewHandler(config *Config, validator *validation.Validator, obs *observability.Observability, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:   config,
		reporter: camunda.NewJobReporter(TaskType, validator, obs, log),
		logger:   log,
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	start := time.Now()
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	var input Input
	if err := h.reporter.Decode(job, &input); err != nil {
		h.reporter.Fail(client, job, err, start)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	output, err := h.Execute(ctx, &input)
	if err != nil {
		h.reporter.Fail(client, job, err, start)
		return
	}
	h.reporter.Complete(client, job, output, start)
}

// Execute validates the request and returns the estimate. It is shared by the
// job worker and the public HTTP endpoint.
func (h *Handler) Execute(_ context.Context, input *Input) (*Output, error) {
	req := estimate.Input{
		FollowerCount: input.FollowerCount,
		Platform:      input.Platform,
		ContentFormat: input.ContentFormat,
		Niche:         input.Niche,
	}
	if err := estimate.Validate(req); err != nil {
		return nil, errors.NewValidationError(err)
	}

	result := estimate.Calculate(req)
	metrics.RecordResult("quick_estimate", result.Tier)

	h.logger.Info("quick estimate calculated", map[string]interface{}{
		"tier":       result.Tier,
		"platform":   result.Platform,
		"minRate":    result.MinRate,
		"maxRate":    result.MaxRate,
		"percentile": result.Percentile,
	})

	return &Output{
		Estimate: result,
		DisplayRange: fmt.Sprintf("%s - %s",
			pricing.FormatAmount(estimateCurrency, result.MinRate),
			pricing.FormatAmount(estimateCurrency, result.MaxRate)),
	}, nil
}
