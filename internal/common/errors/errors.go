// Package errors provides standardized error handling for BPMN workflow integration.
package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	// Caller input: the message is shown to the user as is and the job is never retried.
	ErrCodeParseError       ErrorCode = "PARSE_ERROR"
	ErrCodeValidationFailed ErrorCode = "VALIDATION_FAILED"

	// Scorers are total over validated input, so this signals a bug.
	ErrCodeComputationFailed ErrorCode = "COMPUTATION_FAILED"

	ErrCodeExternalSignalUnavailable ErrorCode = "EXTERNAL_SIGNAL_UNAVAILABLE"
	ErrCodeCacheUnavailable          ErrorCode = "CACHE_UNAVAILABLE"
	ErrCodeVettingCancelled          ErrorCode = "VETTING_CANCELLED"

	ErrCodeNotificationSendFailed ErrorCode = "NOTIFICATION_SEND_FAILED"
	ErrCodeRateLimited            ErrorCode = "RATE_LIMITED"

	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
	cause     error
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

func (e *StandardError) Unwrap() error {
	return e.cause
}

// As reports whether err carries a StandardError and returns it.
func As(err error) (*StandardError, bool) {
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr, true
	}
	return nil, false
}

// ==========================
// 2. BPMN Error Integration
// ==========================

// BPMNError represents an error that can be thrown to the Camunda workflow engine.
type BPMNError struct {
	Code           string                 `json:"code"`
	Message        string                 `json:"message"`
	Details        string                 `json:"details,omitempty"`
	Retryable      bool                   `json:"retryable"`
	Retries        int                    `json:"retries"`
	ErrorVariables map[string]interface{} `json:"errorVariables,omitempty"`
}

func (e *BPMNError) Error() string {
	return fmt.Sprintf("BPMNError[%s]: %s", e.Code, e.Message)
}

// ToErrorVariables returns a map suitable for setting Camunda job fail variables.
func (e *BPMNError) ToErrorVariables() map[string]interface{} {
	vars := map[string]interface{}{
		"errorCode":    e.Code,
		"errorMessage": e.Message,
		"errorDetails": e.Details,
		"retryable":    e.Retryable,
	}
	for k, v := range e.ErrorVariables {
		vars[k] = v
	}
	return vars
}

// ==========================
// 3. Error Constructors
// ==========================

func NewParseError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeParseError,
		Message:   "Job variables are not valid JSON for this task",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewValidationError keeps the validator's message verbatim so the caller can
// show it to the user.
func NewValidationError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeValidationFailed,
		Message:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewInvalidInputError is NewValidationError with the engine's sentinel prefix
// stripped from the message.
func NewInvalidInputError(err, sentinel error) *StandardError {
	stdErr := NewValidationError(err)
	stdErr.Message = strings.TrimPrefix(stdErr.Message, sentinel.Error()+": ")
	return stdErr
}

func NewComputationError(engine string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeComputationFailed,
		Message:   fmt.Sprintf("Scoring engine '%s' failed", engine),
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

func NewExternalSignalError(source string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeExternalSignalUnavailable,
		Message:   fmt.Sprintf("Brand signal source '%s' unavailable", source),
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

func NewCacheUnavailableError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeCacheUnavailable,
		Message:   "Result cache unavailable",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

func NewVettingCancelledError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeVettingCancelled,
		Message:   "Brand vetting did not finish before the job deadline",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

func NewNotificationSendFailedError(channel string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeNotificationSendFailed,
		Message:   "Notification delivery failed",
		Details:   fmt.Sprintf("channel: %s, error: %s", channel, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

func NewRateLimitedError(key string, retryAfter time.Duration) *StandardError {
	return &StandardError{
		Code:      ErrCodeRateLimited,
		Message:   "Too many requests, please try again later",
		Details:   fmt.Sprintf("key: %s", key),
		Retryable: true,
		Metadata:  map[string]interface{}{"retryAfterSeconds": int(retryAfter.Seconds())},
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 4. BPMN Mapping and Retries
// ==========================

// BPMNErrorMapping maps internal codes to the error codes caught by boundary
// events in the process models.
var BPMNErrorMapping = map[ErrorCode]string{
	ErrCodeParseError:                "INVALID_INPUT",
	ErrCodeValidationFailed:          "INVALID_INPUT",
	ErrCodeComputationFailed:         "SCORING_FAILED",
	ErrCodeExternalSignalUnavailable: "BRAND_SIGNALS_UNAVAILABLE",
	ErrCodeCacheUnavailable:          "CACHE_UNAVAILABLE",
	ErrCodeVettingCancelled:          "BRAND_VETTING_TIMEOUT",
	ErrCodeNotificationSendFailed:    "NOTIFICATION_FAILED",
	ErrCodeRateLimited:               "RATE_LIMITED",
}

// GetRetryCount returns how many times the engine should retry a job failing with code.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeNotificationSendFailed, ErrCodeExternalSignalUnavailable:
		return 3
	case ErrCodeVettingCancelled, ErrCodeCacheUnavailable:
		return 2
	case ErrCodeRateLimited:
		return 1
	default:
		return 0
	}
}

// ConvertToBPMNError converts a StandardError into a BPMN-compatible error.
func ConvertToBPMNError(stdErr *StandardError) *BPMNError {
	bpmnCode, exists := BPMNErrorMapping[stdErr.Code]
	if !exists {
		bpmnCode = string(stdErr.Code)
	}

	retries := GetRetryCount(stdErr.Code)
	if !stdErr.Retryable {
		retries = 0
	}

	return &BPMNError{
		Code:      bpmnCode,
		Message:   stdErr.Message,
		Details:   stdErr.Details,
		Retryable: stdErr.Retryable,
		Retries:   retries,
		ErrorVariables: map[string]interface{}{
			"originalErrorCode": string(stdErr.Code),
			"timestamp":         stdErr.Timestamp.Format(time.RFC3339),
		},
	}
}

func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

// GetErrorCategory groups codes for dashboards and log queries.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case code == ErrCodeParseError || strings.Contains(codeStr, "VALIDATION"):
		return "VALIDATION"
	case strings.Contains(codeStr, "COMPUTATION"):
		return "COMPUTATION"
	case strings.Contains(codeStr, "SIGNAL") || strings.Contains(codeStr, "VETTING") || strings.Contains(codeStr, "CACHE"):
		return "EXTERNAL_SIGNAL"
	case strings.Contains(codeStr, "NOTIFICATION"):
		return "NOTIFICATION"
	case code == ErrCodeRateLimited:
		return "RATE_LIMIT"
	default:
		return "OTHER"
	}
}
