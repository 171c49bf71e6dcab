// internal/common/camunda/job.go
package camunda

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"creator-pricing-workers/internal/common/errors"
	"creator-pricing-workers/internal/common/logger"
	"creator-pricing-workers/internal/common/metrics"
	"creator-pricing-workers/internal/common/observability"
	"creator-pricing-workers/internal/common/validation"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

// JobReporter decodes job variables and reports the outcome of a job back to
// the engine, recording metrics for both paths.
type JobReporter struct {
	taskType  string
	validator *validation.Validator
	errors    *errors.ErrorHandler
	obs       *observability.Observability
	logger    logger.Logger
}

func NewJobReporter(taskType string, validator *validation.Validator, obs *observability.Observability, log logger.Logger) *JobReporter {
	return &JobReporter{
		taskType:  taskType,
		validator: validator,
		errors:    errors.NewErrorHandler(log),
		obs:       obs,
		logger:    log,
	}
}

// Decode checks the variables against the task's input schema and unmarshals them into out.
func (r *JobReporter) Decode(job entities.Job, out interface{}) error {
	return DecodeVariables(r.taskType, r.validator, job.Variables, out)
}

// DecodeVariables returns PARSE_ERROR for malformed JSON and VALIDATION_FAILED
// for schema violations.
func DecodeVariables(taskType string, validator *validation.Validator, variables string, out interface{}) error {
	if !json.Valid([]byte(variables)) {
		return errors.NewParseError(fmt.Errorf("job variables are not valid JSON"))
	}
	if res := validator.ValidateJSON(taskType, variables); !res.Valid {
		return errors.NewValidationError(fmt.Errorf("Invalid input: %s", res.Error()))
	}
	if err := json.Unmarshal([]byte(variables), out); err != nil {
		return errors.NewParseError(err)
	}
	return nil
}

func (r *JobReporter) Complete(client worker.JobClient, job entities.Job, output interface{}, start time.Time) {
	ctx := context.Background()

	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		r.logger.Error("failed to create complete job command", map[string]interface{}{
			"jobKey": job.Key,
			"error":  err.Error(),
		})
		r.Fail(client, job, errors.NewComputationError(r.taskType, err), start)
		return
	}
	if _, err := cmd.Send(ctx); err != nil {
		r.logger.Error("failed to send complete job command", map[string]interface{}{
			"jobKey": job.Key,
			"error":  err.Error(),
		})
		return
	}

	elapsed := time.Since(start)
	metrics.WorkerJobsCompleted.WithLabelValues(r.taskType).Inc()
	metrics.WorkerJobDuration.WithLabelValues(r.taskType).Observe(elapsed.Seconds())
	r.obs.RecordJob(ctx, r.taskType, "completed", elapsed)

	r.logger.Info("job completed", map[string]interface{}{
		"jobKey":     job.Key,
		"durationMs": elapsed.Milliseconds(),
	})
}

func (r *JobReporter) Fail(client worker.JobClient, job entities.Job, err error, start time.Time) {
	ctx := context.Background()
	code := r.errors.HandleJobError(ctx, client, job, err)

	elapsed := time.Since(start)
	metrics.WorkerJobsFailed.WithLabelValues(r.taskType, code).Inc()
	metrics.WorkerJobDuration.WithLabelValues(r.taskType).Observe(elapsed.Seconds())
	r.obs.RecordJob(ctx, r.taskType, "failed", elapsed)
}
