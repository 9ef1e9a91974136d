package errors

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
)

// FormatError renders a CLIError for terminal output, with colors when the
// environment allows them (fatih/color honors NO_COLOR and TTY detection).
func FormatError(err *CLIError) string {
	if err == nil {
		return ""
	}

	header := color.New(color.FgRed, color.Bold).Sprint(err.Category.String())
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s\n", header, err.Message)

	if err.Usage != "" {
		fmt.Fprintf(&b, "\nUsage: %s\n", color.CyanString(err.Usage))
	}

	if len(err.Remediation) > 0 {
		b.WriteString("\nTo fix this:\n")
		for _, step := range err.Remediation {
			fmt.Fprintf(&b, "  - %s\n", step)
		}
	}

	return b.String()
}

// FormatErrorPlain renders a CLIError without any color codes, for
// non-terminal destinations such as log files.
func FormatErrorPlain(err *CLIError) string {
	if err == nil {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s\n", err.Category.String(), err.Message)

	if err.Usage != "" {
		fmt.Fprintf(&b, "\nUsage: %s\n", err.Usage)
	}

	if len(err.Remediation) > 0 {
		b.WriteString("\nTo fix this:\n")
		for _, step := range err.Remediation {
			fmt.Fprintf(&b, "  - %s\n", step)
		}
	}

	return b.String()
}

// FormatSimpleError renders a plain error under a category header.
func FormatSimpleError(err error, category ErrorCategory) string {
	if err == nil {
		return ""
	}
	if cliErr, ok := AsCLIError(err); ok {
		return FormatError(cliErr)
	}
	return FormatError(&CLIError{Category: category, Message: err.Error()})
}

// PrintError writes the formatted error to stderr.
func PrintError(err *CLIError) {
	FprintError(os.Stderr, err)
}

// FprintError writes the formatted error to w.
func FprintError(w io.Writer, err *CLIError) {
	if err == nil {
		return
	}
	fmt.Fprint(w, FormatError(err))
}
