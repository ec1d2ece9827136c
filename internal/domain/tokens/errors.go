package tokens

import (
	"errors"
	"fmt"
)

// ErrorCode identifies well-known error categories raised by the token
// domain and the services built on top of it.
type ErrorCode string

const (
	ErrCodeValidation         ErrorCode = "VALIDATION_ERROR"
	ErrCodeNotFound           ErrorCode = "NOT_FOUND"
	ErrCodeContextUnavailable ErrorCode = "CONTEXT_UNAVAILABLE"
	ErrCodeUnknownPreset      ErrorCode = "UNKNOWN_PRESET"
	ErrCodeInvalidTarget      ErrorCode = "INVALID_TARGET"
	ErrCodeDerivedToken       ErrorCode = "DERIVED_TOKEN"
	ErrCodeInternal           ErrorCode = "INTERNAL_ERROR"
)

// DomainError represents a typed error enriched with contextual data while
// remaining free from infrastructure dependencies.
type DomainError struct {
	Code    ErrorCode
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap exposes the wrapped cause for errors.Is / errors.As usage.
func (e *DomainError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// Is matches on error code so callers can compare against the sentinel
// values below without caring about context.
func (e *DomainError) Is(target error) bool {
	var domainErr *DomainError
	if !errors.As(target, &domainErr) {
		return false
	}
	return e.Code == domainErr.Code
}

// WithContext clones the error with additional contextual metadata.
func (e *DomainError) WithContext(ctx map[string]interface{}) *DomainError {
	if e == nil {
		return nil
	}
	merged := make(map[string]interface{}, len(e.Context)+len(ctx))
	for k, v := range e.Context {
		merged[k] = v
	}
	for k, v := range ctx {
		merged[k] = v
	}
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Cause:   e.Cause,
		Context: merged,
	}
}

// Sentinels for errors.Is comparisons.
var (
	ErrContextUnavailable = &DomainError{Code: ErrCodeContextUnavailable, Message: "token context unavailable"}
	ErrUnknownPreset      = &DomainError{Code: ErrCodeUnknownPreset, Message: "unknown spring preset"}
	ErrInvalidTarget      = &DomainError{Code: ErrCodeInvalidTarget, Message: "invalid preset target"}
	ErrDerivedToken       = &DomainError{Code: ErrCodeDerivedToken, Message: "token is derived from an active preset"}
	ErrNotFound           = &DomainError{Code: ErrCodeNotFound, Message: "token not found"}
)

// NewDomainError constructs a DomainError with the supplied code and message.
func NewDomainError(code ErrorCode, message string, cause error, context map[string]interface{}) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Cause:   cause,
		Context: context,
	}
}

func newUnknownPresetError(preset string) *DomainError {
	return ErrUnknownPreset.WithContext(map[string]interface{}{"preset": preset})
}

func newInvalidTargetError(target string) *DomainError {
	return ErrInvalidTarget.WithContext(map[string]interface{}{"target": target})
}
