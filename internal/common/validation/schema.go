package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// Error codes attached to ValidationError.Code.
const (
	CodeMissingRequired  = "MISSING_REQUIRED"
	CodeInvalidFormat    = "INVALID_FORMAT"
	CodeInvalidValue     = "INVALID_VALUE"
	CodeSchemaViolation  = "SCHEMA_VIOLATION"
	CodeInvariantViolate = "INVARIANT_VIOLATION"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// NewResult returns an empty, valid result.
func NewResult() *ValidationResult {
	return &ValidationResult{Valid: true}
}

// Add records a failure and marks the result invalid.
func (vr *ValidationResult) Add(field, code, message string) {
	vr.Valid = false
	vr.Errors = append(vr.Errors, ValidationError{Field: field, Code: code, Message: message})
}

// GetErrorMessages returns the messages in the order they were added.
func (vr *ValidationResult) GetErrorMessages() []string {
	messages := make([]string, len(vr.Errors))
	for i, err := range vr.Errors {
		messages[i] = err.Message
	}
	return messages
}

// GetErrorsForField returns errors for a field and its nested paths.
func (vr *ValidationResult) GetErrorsForField(field string) []ValidationError {
	var fieldErrors []ValidationError
	for _, err := range vr.Errors {
		if err.Field == field || strings.HasPrefix(err.Field, field+".") || strings.HasPrefix(err.Field, field+"[") {
			fieldErrors = append(fieldErrors, err)
		}
	}
	return fieldErrors
}

// ValidateDocument checks a raw JSON document against a JSON schema. A document that is
// not JSON at all is reported as an error, a schema mismatch as an invalid result.
func ValidateDocument(schemaJSON string, document []byte) (*ValidationResult, error) {
	schemaLoader := gojsonschema.NewStringLoader(schemaJSON)
	documentLoader := gojsonschema.NewBytesLoader(document)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return nil, fmt.Errorf("validation error: %w", err)
	}

	out := NewResult()
	for _, desc := range result.Errors() {
		out.Add(desc.Field(), CodeSchemaViolation, desc.String())
	}
	return out, nil
}

// ValidateEmail validates email format
func ValidateEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// EmailDomain returns the lower-cased part after the single '@', or "" when there is not exactly one.
func EmailDomain(email string) string {
	parts := strings.Split(strings.TrimSpace(email), "@")
	if len(parts) != 2 {
		return ""
	}
	return strings.ToLower(parts[1])
}
