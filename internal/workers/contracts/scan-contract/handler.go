// internal/workers/contracts/scan-contract/handler.go
package scancontract

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
	"creator-pricing-workers/internal/scoring/contracts"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "scan-contract"
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
	res, err := contracts.Scan(contracts.Input{
		ContractText: input.ContractText,
		DealContext:  input.DealContext,
	})
	if err != nil {
		if stderrors.Is(err, contracts.ErrInvalidInput) {
			return nil, errors.NewInvalidInputError(err, contracts.ErrInvalidInput)
		}
		return nil, errors.NewComputationError("contracts", err)
	}

	// Scan signs with a placeholder; redraft when the process knows the creator.
	if strings.TrimSpace(input.CreatorName) != "" {
		res.ChangeRequestTemplate = contracts.GenerateChangeRequest(res, input.CreatorName)
	}
	metrics.RecordResult("contracts", res.HealthLevel)

	out := &Output{
		Result:       res,
		RedFlagCount: len(res.RedFlags),
		NeedsChanges: h.needsChanges(res),
	}

	h.logger.Info("contract scanned", map[string]interface{}{
		"healthScore":    res.HealthScore,
		"healthLevel":    res.HealthLevel,
		"redFlags":       out.RedFlagCount,
		"missingClauses": len(res.MissingClauses),
		"needsChanges":   out.NeedsChanges,
	})
	return out, nil
}

func (h *Handler) needsChanges(res contracts.Result) bool {
	if res.HealthScore < h.config.MinHealthyScore {
		return true
	}
	for _, f := range res.RedFlags {
		if f.Severity == contracts.SeverityHigh {
			return true
		}
	}
	for _, m := range res.MissingClauses {
		if m.Importance == contracts.ImportanceCritical {
			return true
		}
	}
	return false
}
