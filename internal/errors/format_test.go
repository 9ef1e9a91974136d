// Package errors_test tests CLI error formatting with and without colors, and error output utilities.
// Related: internal/errors/format.go
// Tags: errors, formatting, colors, output, plain-text
package errors

import (
	"bytes"
	stderrors "errors"
	"strings"
	"testing"
)

func TestFormatError(t *testing.T) {
	t.Run("nil error returns empty string", func(t *testing.T) {
		t.Parallel()
		result := FormatError(nil)
		if result != "" {
			t.Errorf("Expected empty string, got %q", result)
		}
	})

	t.Run("basic error formatting", func(t *testing.T) {
		t.Parallel()
		err := &CLIError{
			Category: Validation,
			Message:  "test message",
		}

		result := FormatError(err)

		if !strings.Contains(result, "Validation Error") {
			t.Error("Expected output to contain 'Validation Error'")
		}
		if !strings.Contains(result, "test message") {
			t.Error("Expected output to contain 'test message'")
		}
	})

	t.Run("error with usage", func(t *testing.T) {
		t.Parallel()
		err := &CLIError{
			Category: Validation,
			Message:  "missing arg",
			Usage:    "wakedev send <message>",
		}

		result := FormatError(err)

		if !strings.Contains(result, "Usage:") {
			t.Error("Expected output to contain 'Usage:'")
		}
		if !strings.Contains(result, "wakedev send <message>") {
			t.Error("Expected output to contain usage string")
		}
	})

	t.Run("error with remediation", func(t *testing.T) {
		t.Parallel()
		err := &CLIError{
			Category:    Network,
			Message:     "error",
			Remediation: []string{"step 1", "step 2"},
		}

		result := FormatError(err)

		if !strings.Contains(result, "To fix this:") {
			t.Error("Expected output to contain 'To fix this:'")
		}
		if !strings.Contains(result, "step 1") {
			t.Error("Expected output to contain 'step 1'")
		}
		if !strings.Contains(result, "step 2") {
			t.Error("Expected output to contain 'step 2'")
		}
	})
}

func TestFormatErrorPlain(t *testing.T) {
	t.Run("nil error returns empty string", func(t *testing.T) {
		t.Parallel()
		result := FormatErrorPlain(nil)
		if result != "" {
			t.Errorf("Expected empty string, got %q", result)
		}
	})

	t.Run("basic formatting without colors", func(t *testing.T) {
		t.Parallel()
		err := &CLIError{
			Category:    Configuration,
			Message:     "config error",
			Remediation: []string{"fix it"},
		}

		result := FormatErrorPlain(err)

		if !strings.Contains(result, "Configuration Error") {
			t.Error("Expected output to contain 'Configuration Error'")
		}
		if !strings.Contains(result, "config error") {
			t.Error("Expected output to contain 'config error'")
		}
		if strings.Contains(result, "\x1b[") {
			t.Error("Expected no ANSI escape codes in plain output")
		}
	})
}

func TestPrintError(t *testing.T) {
	// PrintError writes to stderr, but we can't easily capture that
	// This just verifies it doesn't panic
	err := &CLIError{
		Category: Provider,
		Message:  "test",
	}
	PrintError(err) // Should not panic
	PrintError(nil) // Should not panic
}

func TestFprintError(t *testing.T) {
	t.Run("nil error does nothing", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		FprintError(&buf, nil)

		if buf.Len() != 0 {
			t.Errorf("Expected no output for nil error, got %q", buf.String())
		}
	})

	t.Run("writes error to buffer", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		err := &CLIError{
			Category: Auth,
			Message:  "missing token",
		}

		FprintError(&buf, err)

		if !strings.Contains(buf.String(), "missing token") {
			t.Error("Expected buffer to contain error message")
		}
	})
}

func TestFormatSimpleError(t *testing.T) {
	t.Run("nil error returns empty string", func(t *testing.T) {
		t.Parallel()
		result := FormatSimpleError(nil, Provider)
		if result != "" {
			t.Errorf("Expected empty string, got %q", result)
		}
	})

	t.Run("formats regular error", func(t *testing.T) {
		t.Parallel()
		result := FormatSimpleError(stderrors.New("boom"), Provider)

		if !strings.Contains(result, "Provider Error") {
			t.Error("Expected output to contain 'Provider Error'")
		}
		if !strings.Contains(result, "boom") {
			t.Error("Expected output to contain the error message")
		}
	})

	t.Run("preserves CLIError category", func(t *testing.T) {
		t.Parallel()
		result := FormatSimpleError(NewAuthError("rejected"), Provider)

		if !strings.Contains(result, "Auth Error") {
			t.Error("Expected output to preserve the CLIError category")
		}
	})
}
