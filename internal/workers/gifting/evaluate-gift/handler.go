// internal/workers/gifting/evaluate-gift/handler.go
package evaluategift

import (
	"context"
	stderrors "errors"
	"strings"
	"time"

	"creator-pricing-workers/internal/common/camunda"
	"creator-pricing-workers/internal/common/errors"
	"creator-pricing-workers/internal/common/logger"
	"creator-pricing-workers/internal/common/metrics"
	"creator-pricing-workers/internal/common/observability"
	"creator-pricing-workers/internal/common/validation"
	"creator-pricing-workers/internal/scoring/gifting"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "evaluate-gift"
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

// Execute evaluates the offer and drafts the reply quoting the same add-on.
func (h *Handler) Execute(_ context.Context, input *Input) (*Output, error) {
	ev, err := gifting.Evaluate(input.Offer, input.CreatorProfile)
	if err != nil {
		if stderrors.Is(err, gifting.ErrInvalidInput) {
			return nil, errors.NewInvalidInputError(err, gifting.ErrInvalidInput)
		}
		return nil, errors.NewComputationError("gifting", err)
	}
	metrics.RecordResult("gifting", ev.Recommendation)

	creatorName := input.CreatorName
	if strings.TrimSpace(creatorName) == "" {
		creatorName = input.CreatorProfile.DisplayName
	}
	response := gifting.GenerateResponse(ev, gifting.ResponseContext{
		BrandName:   input.Offer.BrandName,
		ProductName: input.Offer.ProductName,
		CreatorName: creatorName,
	})

	h.logger.Info("gift offer evaluated", map[string]interface{}{
		"brand":          input.Offer.BrandName,
		"worthScore":     ev.WorthScore,
		"recommendation": ev.Recommendation,
		"addOn":          ev.MinimumAcceptableAddOn,
	})

	return &Output{Evaluation: ev, Response: response}, nil
}
