package errors

import "fmt"

// Canned errors for common CLI failure modes. Keeping the wording in one
// place makes remediation text consistent across commands.

// MissingMessage is returned when send is invoked without a message.
func MissingMessage() *CLIError {
	return NewValidationErrorWithUsage(
		"missing notification message",
		"wakedev send <message> [flags]",
		"provide the notification text as the first argument",
		"run 'wakedev send --help' for examples",
	)
}

// BackgroundRequiresOnClick is returned when --background is used without
// a click action; a detached watcher with nothing to run on click would
// just leak a process.
func BackgroundRequiresOnClick() *CLIError {
	return NewValidationError(
		"--background requires --on-click",
		"add --on-click '<command>' to run when the notification is clicked",
		"or drop --background to deliver without waiting",
	)
}

// InvalidUrgency is returned for an unrecognized urgency level.
func InvalidUrgency(value string) *CLIError {
	return NewValidationError(
		fmt.Sprintf("invalid urgency %q", value),
		"use one of: low, normal, high",
	)
}

// ConfigParseError wraps a configuration loading failure.
func ConfigParseError(path string, err error) *CLIError {
	return &CLIError{
		Category: Configuration,
		Message:  fmt.Sprintf("failed to load config from %s: %v", path, err),
		Remediation: []string{
			"check the file is valid JSON",
			"run 'wakedev init --force' to regenerate a template config",
		},
		Err: err,
	}
}

// RemoteNotConfigured is returned when a remote send is requested but no
// listener host is configured.
func RemoteNotConfigured() *CLIError {
	return NewConfigError(
		"remote delivery requested but remote.host is not configured",
		"set remote.host (and remote.port) in the config file",
		"or set WAKEDEV_REMOTE_HOST in the environment",
	)
}

// NoProviderAvailable is returned when no delivery backend exists for the
// current platform.
func NoProviderAvailable() *CLIError {
	return NewProviderError(
		"no notification provider available on this platform",
		"configure remote delivery to relay notifications to a supported host",
	)
}
