// internal/workers/pricing/calculate-deal-quality/handler.go
package calculatedealquality

import (
	"context"
	"time"

	"creator-pricing-workers/internal/common/camunda"
	"creator-pricing-workers/internal/common/errors"
	"creator-pricing-workers/internal/common/logger"
	"creator-pricing-workers/internal/common/metrics"
	"creator-pricing-workers/internal/common/observability"
	"creator-pricing-workers/internal/common/validation"
	"creator-pricing-workers/internal/scoring/dealquality"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "calculate-deal-quality"
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

func (h *Handler) Execute(_ context.Context, input *Input) (*Output, error) {
	signals := &dealquality.Input{
		BrandTrustScore:       input.BrandTrustScore,
		PreviousCollaboration: input.PreviousCollaboration,
	}
	if err := dealquality.ValidateInput(signals); err != nil {
		return nil, errors.NewInvalidInputError(err, dealquality.ErrInvalidInput)
	}

	compat := dealquality.Calculate(input.CreatorProfile, input.Brief, signals)
	metrics.RecordResult("deal_quality", compat.DealQuality.Level)

	h.logger.Info("deal quality calculated", map[string]interface{}{
		"creatorId": input.CreatorProfile.ID,
		"brand":     input.Brief.BrandName,
		"score":     compat.DealQuality.Score,
		"level":     compat.DealQuality.Level,
		"fitLevel":  compat.FitScore.Level,
	})

	return &Output{
		DealQuality: compat.DealQuality,
		FitScore:    compat.FitScore,
	}, nil
}
