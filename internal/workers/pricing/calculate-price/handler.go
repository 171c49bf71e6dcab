// internal/workers/pricing/calculate-price/handler.go
package calculateprice

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"creator-pricing-workers/internal/common/camunda"
	"creator-pricing-workers/internal/common/errors"
	"creator-pricing-workers/internal/common/logger"
	"creator-pricing-workers/internal/common/metrics"
	"creator-pricing-workers/internal/common/observability"
	"creator-pricing-workers/internal/common/validation"
	"creator-pricing-workers/internal/scoring/dealquality"
	"creator-pricing-workers/internal/scoring/pricing"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "calculate-price"
)

type Handler struct {
	config   *Config
	reporter *camunda.JobReporter
	logger   logger.Logger
	clock    func() time.Time
}

func NewHandler(config *Config, validator *validation.Validator, obs *observability.Observability, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:   config,
		reporter: camunda.NewJobReporter(TaskType, validator, obs, log),
		logger:   log,
		clock:    time.Now,
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

// Execute scores the deal, feeds the score into the fit layer and prices the brief.
func (h *Handler) Execute(_ context.Context, input *Input) (*Output, error) {
	signals := &dealquality.Input{
		BrandTrustScore:       input.BrandTrustScore,
		PreviousCollaboration: input.PreviousCollaboration,
	}
	if err := dealquality.ValidateInput(signals); err != nil {
		return nil, errors.NewInvalidInputError(err, dealquality.ErrInvalidInput)
	}
	quality := dealquality.Calculate(input.CreatorProfile, input.Brief, signals).DealQuality

	quote, err := pricing.Calculate(input.CreatorProfile, input.Brief, quality)
	if err != nil {
		if stderrors.Is(err, pricing.ErrInvalidInput) {
			return nil, errors.NewInvalidInputError(err, pricing.ErrInvalidInput)
		}
		return nil, errors.NewComputationError("pricing", err)
	}

	if input.OverrideTotal != nil {
		quote, err = pricing.ApplyOverride(quote, *input.OverrideTotal)
		if err != nil {
			return nil, errors.NewInvalidInputError(fmt.Errorf("%w: Invalid overrideTotal: must not be negative", err), err)
		}
		h.logger.Info("creator override applied", map[string]interface{}{
			"computedTotal": *quote.OriginalTotal,
			"overrideTotal": quote.TotalPrice,
		})
	}
	metrics.RecordResult("pricing", quote.Tier)

	h.logger.Info("price calculated", map[string]interface{}{
		"creatorId":           input.CreatorProfile.ID,
		"brand":               input.Brief.BrandName,
		"tier":                quote.Tier,
		"pricePerDeliverable": quote.PricePerDeliverable,
		"quantity":            quote.Quantity,
		"totalPrice":          quote.TotalPrice,
		"dealQuality":         quality.Score,
	})

	return &Output{
		Quote:          quote,
		DealQuality:    quality,
		FormattedTotal: pricing.FormatAmount(quote.Currency, quote.TotalPrice),
		ValidUntil:     h.clock().UTC().AddDate(0, 0, quote.ValidDays).Format("2006-01-02"),
	}, nil
}
