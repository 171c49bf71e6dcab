// internal/workers/brands/vet-brand/handler.go
package vetbrand

import (
	"context"
	stderrors "errors"
	"time"

	"creator-pricing-workers/internal/common/camunda"
	"creator-pricing-workers/internal/common/errors"
	"creator-pricing-workers/internal/common/logger"
	"creator-pricing-workers/internal/common/metrics"
	"creator-pricing-workers/internal/common/observability"
	"creator-pricing-workers/internal/common/validation"
	"creator-pricing-workers/internal/scoring/brandvet"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "vet-brand"
)

type Handler struct {
	config   *Config
	vetter   *brandvet.Vetter
	reporter *camunda.JobReporter
	logger   logger.Logger
}

func NewHandler(config *Config, vetter *brandvet.Vetter, validator *validation.Validator, obs *observability.Observability, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:   config,
		vetter:   vetter,
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

// Execute vets the brand. Signal sources that fail are scored as missing; only
// a deadline or cancellation fails the job.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	res, err := h.vetter.Vet(ctx, *input)
	if err != nil {
		switch {
		case stderrors.Is(err, brandvet.ErrInvalidInput):
			return nil, errors.NewInvalidInputError(err, brandvet.ErrInvalidInput)
		case stderrors.Is(err, context.DeadlineExceeded), stderrors.Is(err, context.Canceled):
			return nil, errors.NewVettingCancelledError(err)
		default:
			return nil, errors.NewComputationError("brandvet", err)
		}
	}
	metrics.RecordResult("brandvet", res.TrustLevel)

	h.logger.Info("brand vetted", map[string]interface{}{
		"brand":      res.BrandName,
		"platform":   res.Platform,
		"trustScore": res.TrustScore,
		"trustLevel": res.TrustLevel,
		"redFlags":   len(res.RedFlags),
		"cached":     res.Cached,
	})

	return &Output{
		Result:   res,
		Proceed:  res.TrustLevel != brandvet.LevelHighRisk,
		CacheKey: brandvet.CacheKey(*input),
	}, nil
}
