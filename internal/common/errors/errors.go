// Package errors provides the standardized error type used across the eligibility checker.
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

// Validation errors (local, synchronous, never reach the network)
const (
	ErrCodeStepIncomplete             ErrorCode = "STEP_INCOMPLETE"
	ErrCodeSubmissionValidationFailed ErrorCode = "SUBMISSION_VALIDATION_FAILED"
	ErrCodeInvalidAnswerField         ErrorCode = "INVALID_ANSWER_FIELD"
)

// Flow-control errors
const (
	ErrCodeSubmissionInFlight ErrorCode = "SUBMISSION_IN_FLIGHT"
	ErrCodeRestorePending     ErrorCode = "RESTORE_PENDING"
)

// Transport errors (remote scoring API)
const (
	ErrCodeScoringAPITimeout     ErrorCode = "SCORING_API_TIMEOUT"
	ErrCodeScoringAPIUnavailable ErrorCode = "SCORING_API_UNAVAILABLE"
	ErrCodeScoringAPIRejected    ErrorCode = "SCORING_API_REJECTED"
)

// Storage and side-channel errors
const (
	ErrCodeCorruptPersistedState ErrorCode = "CORRUPT_PERSISTED_STATE"
	ErrCodeStorageFailed         ErrorCode = "STORAGE_FAILED"
	ErrCodeAnalyticsEmitFailed   ErrorCode = "ANALYTICS_EMIT_FAILED"
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
	if e.Details != "" {
		return fmt.Sprintf("StandardError[%s]: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

func (e *StandardError) Unwrap() error {
	return e.cause
}

// Is matches another *StandardError by code, so errors.Is(err, &StandardError{Code: X}) works.
func (e *StandardError) Is(target error) bool {
	t, ok := target.(*StandardError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// ==========================
// 2. Error Constructors
// ==========================

// NewStepIncompleteError is returned when the per-step validator rejects forward navigation.
func NewStepIncompleteError(step int) *StandardError {
	return &StandardError{
		Code:      ErrCodeStepIncomplete,
		Message:   "Please complete all required fields before continuing",
		Details:   fmt.Sprintf("step: %d", step),
		Retryable: false,
		Metadata:  map[string]interface{}{"step": step},
		Timestamp: time.Now().UTC(),
	}
}

// NewSubmissionValidationError carries every failing reason from the field-level check.
func NewSubmissionValidationError(reasons []string) *StandardError {
	return &StandardError{
		Code:      ErrCodeSubmissionValidationFailed,
		Message:   "Please correct the following before submitting",
		Details:   strings.Join(reasons, "; "),
		Retryable: false,
		Metadata:  map[string]interface{}{"reasons": reasons},
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidAnswerFieldError rejects a malformed partial update.
func NewInvalidAnswerFieldError(field, details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidAnswerField,
		Message:   "Invalid answer field",
		Details:   fmt.Sprintf("field: %s, %s", field, details),
		Retryable: false,
		Metadata:  map[string]interface{}{"field": field},
		Timestamp: time.Now().UTC(),
	}
}

func NewSubmissionInFlightError() *StandardError {
	return &StandardError{
		Code:      ErrCodeSubmissionInFlight,
		Message:   "A submission is already in progress",
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewRestorePendingError() *StandardError {
	return &StandardError{
		Code:      ErrCodeRestorePending,
		Message:   "Choose whether to restore your saved progress first",
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewScoringAPITimeoutError wraps a deadline hit on the remote call.
func NewScoringAPITimeoutError(timeout time.Duration, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeScoringAPITimeout,
		Message:   "Eligibility service timed out",
		Details:   fmt.Sprintf("timeout: %s", timeout),
		Retryable: false,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewScoringAPIUnavailableError wraps a network-level failure.
func NewScoringAPIUnavailableError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeScoringAPIUnavailable,
		Message:   "Eligibility service unavailable",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewScoringAPIRejectedError is a non-2xx response or an unreadable body.
func NewScoringAPIRejectedError(statusCode int, body string) *StandardError {
	return &StandardError{
		Code:      ErrCodeScoringAPIRejected,
		Message:   "Eligibility service rejected the submission",
		Details:   fmt.Sprintf("status: %d, body: %s", statusCode, truncate(body, 256)),
		Retryable: false,
		Metadata:  map[string]interface{}{"statusCode": statusCode},
		Timestamp: time.Now().UTC(),
	}
}

func NewCorruptPersistedStateError(key string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeCorruptPersistedState,
		Message:   "Saved progress could not be read",
		Details:   fmt.Sprintf("key: %s, error: %v", key, err),
		Retryable: false,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

func NewStorageFailedError(op string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeStorageFailed,
		Message:   "Local storage operation failed",
		Details:   fmt.Sprintf("op: %s, error: %v", op, err),
		Retryable: false,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

func NewAnalyticsEmitFailedError(sink string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeAnalyticsEmitFailed,
		Message:   fmt.Sprintf("Analytics sink '%s' error", sink),
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// ==========================
// 3. Utility Functions
// ==========================

// AsStandardError extracts a *StandardError from an error chain.
func AsStandardError(err error) (*StandardError, bool) {
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr, true
	}
	return nil, false
}

// HasCode reports whether err carries the given code.
func HasCode(err error, code ErrorCode) bool {
	stdErr, ok := AsStandardError(err)
	return ok && stdErr.Code == code
}

// IsRetryable is false for every code in this system; nothing is retried automatically.
func IsRetryable(err error) bool {
	stdErr, ok := AsStandardError(err)
	return ok && stdErr.Retryable
}

// IsTransportError reports whether err came from the remote scoring call.
func IsTransportError(err error) bool {
	stdErr, ok := AsStandardError(err)
	return ok && GetErrorCategory(stdErr.Code) == "TRANSPORT"
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.HasPrefix(codeStr, "SCORING_API"):
		return "TRANSPORT"
	case strings.Contains(codeStr, "INCOMPLETE") || strings.Contains(codeStr, "VALIDATION") || strings.Contains(codeStr, "INVALID"):
		return "VALIDATION"
	case strings.Contains(codeStr, "PERSISTED") || strings.Contains(codeStr, "STORAGE"):
		return "STORAGE"
	case strings.Contains(codeStr, "PENDING") || strings.Contains(codeStr, "IN_FLIGHT"):
		return "FLOW"
	default:
		return "OTHER"
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
