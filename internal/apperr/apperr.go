// Package apperr defines the error kinds surfaced to catalog users.
//
// Every failure that reaches the console or the HTTP API is one of:
//
//   - ValidationError: malformed user input (title, year, language code)
//   - APIError: network failure or non-2xx response from Gutendex
//   - DataConversionError: a payload that could not be decoded
//   - DomainError: a catalog rule was violated (e.g. a book with no author)
//
// Anything else is treated as unexpected and reported generically.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// ValidationError reports invalid user input. No store mutation happens
// when one is returned.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewValidation creates a ValidationError for the given field.
func NewValidation(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// APIError reports a failed call to the books API. StatusCode is 0 for
// transport-level failures.
type APIError struct {
	StatusCode int
	Message    string
	Cause      error
}

func (e *APIError) Error() string {
	if e.StatusCode == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s (HTTP %d)", e.Message, e.StatusCode)
}

func (e *APIError) Unwrap() error { return e.Cause }

// Retryable reports whether another attempt may succeed: transport errors
// and 5xx responses are retried, 4xx are not.
func (e *APIError) Retryable() bool {
	return e.StatusCode == 0 || e.StatusCode >= http.StatusInternalServerError
}

// maxPayloadContext bounds how many runes of an offending payload are echoed back.
const maxPayloadContext = 200

// DataConversionError reports a payload that could not be mapped into records.
type DataConversionError struct {
	Message string
	Payload string
	Cause   error
}

func (e *DataConversionError) Error() string {
	payload := e.Payload
	if runes := []rune(payload); len(runes) > maxPayloadContext {
		payload = string(runes[:maxPayloadContext]) + "..."
	}
	msg := e.Message
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	if payload == "" {
		return msg
	}
	return fmt.Sprintf("%s (payload: %s)", msg, payload)
}

func (e *DataConversionError) Unwrap() error { return e.Cause }

// DomainError reports a violated catalog rule.
type DomainError struct {
	Message string
}

func (e *DomainError) Error() string { return e.Message }

// NewDomain creates a DomainError.
func NewDomain(message string) *DomainError {
	return &DomainError{Message: message}
}

func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

func IsAPI(err error) bool {
	var target *APIError
	return errors.As(err, &target)
}

func IsDataConversion(err error) bool {
	var target *DataConversionError
	return errors.As(err, &target)
}

func IsDomain(err error) bool {
	var target *DomainError
	return errors.As(err, &target)
}

// UserMessage renders err for display at an action boundary.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var validation *ValidationError
	var api *APIError
	var conversion *DataConversionError
	var domain *DomainError

	switch {
	case errors.As(err, &validation):
		return "Invalid input: " + validation.Message
	case errors.As(err, &api):
		return "Books API error: " + api.Error()
	case errors.As(err, &conversion):
		return "Could not read the API response: " + conversion.Message
	case errors.As(err, &domain):
		return "Operation rejected: " + domain.Message
	default:
		return "Unexpected error: " + err.Error()
	}
}
