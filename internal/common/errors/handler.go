// internal/common/errors/handler.go
package errors

import (
	"time"
)

// Notice is the user-facing form of an error: an alert line plus optional itemized reasons.
type Notice struct {
	Code     ErrorCode `json:"code"`
	Category string    `json:"category"`
	Text     string    `json:"text"`
	Items    []string  `json:"items,omitempty"`
}

// ErrorHandler converts errors into user-facing notices at the boundary where they occur.
type ErrorHandler struct {
	logger Logger
}

type Logger interface {
	Error(msg string, fields map[string]interface{})
}

func NewErrorHandler(logger Logger) *ErrorHandler {
	return &ErrorHandler{logger: logger}
}

// Handle logs err and returns the notice the caller should surface.
func (h *ErrorHandler) Handle(op string, err error) Notice {
	stdErr := h.normalizeError(err)
	h.logError(op, stdErr)

	notice := Notice{
		Code:     stdErr.Code,
		Category: GetErrorCategory(stdErr.Code),
		Text:     stdErr.Message,
	}
	if reasons, ok := stdErr.Metadata["reasons"].([]string); ok {
		notice.Items = append([]string(nil), reasons...)
	}
	return notice
}

// normalizeError ensures we always have a StandardError
func (h *ErrorHandler) normalizeError(err error) *StandardError {
	if stdErr, ok := AsStandardError(err); ok {
		return stdErr
	}
	return &StandardError{
		Code:      "INTERNAL_ERROR",
		Message:   "Something went wrong, please try again",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

func (h *ErrorHandler) logError(op string, stdErr *StandardError) {
	if h.logger == nil {
		return
	}
	h.logger.Error("Operation failed", map[string]interface{}{
		"operation":     op,
		"errorCode":     string(stdErr.Code),
		"message":       stdErr.Message,
		"details":       stdErr.Details,
		"errorCategory": GetErrorCategory(stdErr.Code),
	})
}
