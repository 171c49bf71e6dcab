// internal/workers/communication/send-negotiation/handler.go
package sendnegotiation

import (
	"context"
	"fmt"
	"strings"
	"time"

	"creator-pricing-workers/internal/common/aws"
	"creator-pricing-workers/internal/common/camunda"
	"creator-pricing-workers/internal/common/errors"
	"creator-pricing-workers/internal/common/logger"
	"creator-pricing-workers/internal/common/metrics"
	"creator-pricing-workers/internal/common/observability"
	"creator-pricing-workers/internal/common/validation"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"
)

const (
	TaskType = "send-negotiation"
)

// Mailer and SMSSender are satisfied by the SES and SNS clients.
type Mailer interface {
	Send(ctx context.Context, email aws.Email) (string, error)
}

type SMSSender interface {
	SendSMS(ctx context.Context, phone, message string) (string, error)
}

type Handler struct {
	config   *Config
	mailer   Mailer
	sms      SMSSender
	reporter *camunda.JobReporter
	logger   logger.Logger
	clock    func() time.Time
}

func NewHandler(config *Config, mailer Mailer, sms SMSSender, validator *validation.Validator, obs *observability.Observability, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:   config,
		mailer:   mailer,
		sms:      sms,
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

// Execute emails the message to the brand. Urgent messages also alert the
// creator by SMS; an SMS failure is logged and does not fail the job.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	if err := validateInput(input); err != nil {
		return nil, errors.NewValidationError(err)
	}

	out := &Output{
		MessageID: uuid.New().String(),
		Channels:  []string{},
		Status:    StatusDisabled,
		SentAt:    h.clock().UTC(),
	}

	if h.config.EmailEnabled && h.mailer != nil {
		id, err := h.mailer.Send(ctx, aws.Email{
			To:      strings.TrimSpace(input.RecipientEmail),
			ReplyTo: input.ReplyTo,
			Subject: input.Subject,
			Text:    input.Body,
		})
		if err != nil {
			metrics.NotificationsSent.WithLabelValues(ChannelEmail, "failed").Inc()
			return nil, errors.NewNotificationSendFailedError(ChannelEmail, err)
		}
		metrics.NotificationsSent.WithLabelValues(ChannelEmail, "sent").Inc()
		out.EmailMessageID = id
		out.Channels = append(out.Channels, ChannelEmail)
	} else {
		h.logger.Warn("email channel disabled, negotiation not delivered", map[string]interface{}{
			"messageId": out.MessageID,
		})
	}

	if input.Urgent && input.CreatorPhone != "" && h.config.SMSEnabled && h.sms != nil {
		id, err := h.sms.SendSMS(ctx, input.CreatorPhone, smsAlert(input))
		if err != nil {
			metrics.NotificationsSent.WithLabelValues(ChannelSMS, "failed").Inc()
			h.logger.Error("SMS alert failed", map[string]interface{}{
				"messageId": out.MessageID,
				"error":     err.Error(),
			})
		} else {
			metrics.NotificationsSent.WithLabelValues(ChannelSMS, "sent").Inc()
			out.SMSMessageID = id
			out.Channels = append(out.Channels, ChannelSMS)
		}
	}

	if len(out.Channels) > 0 {
		out.Status = StatusSent
	}

	h.logger.Info("negotiation message processed", map[string]interface{}{
		"messageId": out.MessageID,
		"brand":     input.BrandName,
		"channels":  out.Channels,
		"status":    out.Status,
	})
	return out, nil
}

func validateInput(input *Input) error {
	if !validation.ValidateEmail(strings.TrimSpace(input.RecipientEmail)) {
		return fmt.Errorf("Invalid recipientEmail: must be a valid email address")
	}
	if strings.TrimSpace(input.Subject) == "" {
		return fmt.Errorf("subject is required")
	}
	if strings.TrimSpace(input.Body) == "" {
		return fmt.Errorf("body is required")
	}
	if input.ReplyTo != "" && !validation.ValidateEmail(strings.TrimSpace(input.ReplyTo)) {
		return fmt.Errorf("Invalid replyTo: must be a valid email address")
	}
	if input.CreatorPhone != "" && !validation.ValidatePhone(input.CreatorPhone) {
		return fmt.Errorf("Invalid creatorPhone: must be in E.164 format, e.g. +14155550123")
	}
	return nil
}

func smsAlert(input *Input) string {
	brand := strings.TrimSpace(input.BrandName)
	if brand == "" {
		brand = "the brand"
	}
	return fmt.Sprintf("Urgent: your message to %s was sent. Subject: %s", brand, input.Subject)
}
