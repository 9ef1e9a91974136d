package cli

import (
	goerrors "errors"

	"wakedev/internal/errors"
)

// Exit codes for programmatic callers. A click action that fails after a
// successful delivery exits zero; the notification did its job.
const (
	// ExitSuccess indicates successful command execution
	ExitSuccess = 0

	// ExitDeliveryFailed indicates the notification could not be delivered
	ExitDeliveryFailed = 1

	// ExitInvalidArguments indicates invalid command arguments
	ExitInvalidArguments = 2

	// ExitConfigError indicates the configuration could not be loaded
	ExitConfigError = 3

	// ExitAuthFailed indicates the remote listener rejected our credentials
	ExitAuthFailed = 4
)

// exitError carries an exit code through cobra's error return.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err != nil {
		return e.err.Error()
	}
	return "exit"
}

func (e *exitError) Unwrap() error { return e.err }

// NewExitError wraps err with an explicit exit code.
func NewExitError(code int, err error) error {
	return &exitError{code: code, err: err}
}

// ExitCode maps an error to the process exit code. CLI errors map by
// category; anything else is a delivery failure.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exit *exitError
	if goerrors.As(err, &exit) {
		return exit.code
	}

	if cliErr, ok := errors.AsCLIError(err); ok {
		switch cliErr.Category {
		case errors.Validation:
			return ExitInvalidArguments
		case errors.Configuration:
			return ExitConfigError
		case errors.Auth:
			return ExitAuthFailed
		}
	}
	return ExitDeliveryFailed
}
