// Package errors provides structured CLI errors for wakedev.
//
// Every user-facing failure is a CLIError carrying a category, a message,
// and remediation steps. The category drives both retry behavior in the
// delivery pipeline (only Network errors are retryable) and the process
// exit code chosen by the CLI layer.
package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCategory classifies a failure for retry and exit-code handling.
type ErrorCategory int

const (
	// Validation covers bad payloads or arguments. Fatal, never retried.
	Validation ErrorCategory = iota
	// Auth covers bad or missing tokens. Fatal per attempt, never retried.
	Auth
	// Network covers timeouts, refused connections and 5xx responses.
	// Retried up to the configured bound, then fallback or final failure.
	Network
	// Provider covers display API failures. Fatal for the attempt.
	Provider
	// Configuration covers unusable configuration files or values.
	Configuration
)

// String returns a human-readable category name.
func (c ErrorCategory) String() string {
	switch c {
	case Validation:
		return "Validation Error"
	case Auth:
		return "Auth Error"
	case Network:
		return "Network Error"
	case Provider:
		return "Provider Error"
	case Configuration:
		return "Configuration Error"
	default:
		return "Error"
	}
}

// CLIError is a structured error with remediation guidance.
type CLIError struct {
	Category    ErrorCategory
	Message     string
	Remediation []string
	Usage       string
	Err         error
}

// Error implements the error interface.
func (e *CLIError) Error() string {
	return e.Message
}

// Unwrap exposes the underlying error for errors.Is/As chains.
func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewValidationError creates a Validation CLIError.
func NewValidationError(message string, remediation ...string) *CLIError {
	return &CLIError{Category: Validation, Message: message, Remediation: remediation}
}

// NewAuthError creates an Auth CLIError.
func NewAuthError(message string, remediation ...string) *CLIError {
	return &CLIError{Category: Auth, Message: message, Remediation: remediation}
}

// NewNetworkError creates a Network CLIError.
func NewNetworkError(message string, remediation ...string) *CLIError {
	return &CLIError{Category: Network, Message: message, Remediation: remediation}
}

// NewProviderError creates a Provider CLIError.
func NewProviderError(message string, remediation ...string) *CLIError {
	return &CLIError{Category: Provider, Message: message, Remediation: remediation}
}

// NewConfigError creates a Configuration CLIError.
func NewConfigError(message string, remediation ...string) *CLIError {
	return &CLIError{Category: Configuration, Message: message, Remediation: remediation}
}

// NewValidationErrorWithUsage creates a Validation CLIError carrying usage text.
func NewValidationErrorWithUsage(message, usage string, remediation ...string) *CLIError {
	return &CLIError{Category: Validation, Message: message, Usage: usage, Remediation: remediation}
}

// Wrap attaches a category and remediation steps to an existing error.
// Returns nil for a nil error.
func Wrap(err error, category ErrorCategory, remediation ...string) *CLIError {
	if err == nil {
		return nil
	}
	return &CLIError{
		Category:    category,
		Message:     err.Error(),
		Remediation: remediation,
		Err:         err,
	}
}

// WrapWithMessage wraps an error with a categorized outer message.
// Returns nil for a nil error.
func WrapWithMessage(err error, category ErrorCategory, message string) *CLIError {
	if err == nil {
		return nil
	}
	return &CLIError{
		Category: category,
		Message:  fmt.Sprintf("%s: %s", message, err.Error()),
		Err:      err,
	}
}

// IsCLIError reports whether err is (or wraps) a CLIError.
func IsCLIError(err error) bool {
	var cliErr *CLIError
	return stderrors.As(err, &cliErr)
}

// AsCLIError extracts a CLIError from err's chain.
func AsCLIError(err error) (*CLIError, bool) {
	var cliErr *CLIError
	ok := stderrors.As(err, &cliErr)
	return cliErr, ok
}

// Retryable reports whether err represents a transient failure the delivery
// pipeline may retry. Only Network errors qualify; Auth and Validation
// failures fail fast per attempt.
func Retryable(err error) bool {
	cliErr, ok := AsCLIError(err)
	return ok && cliErr.Category == Network
}
