// Package provider abstracts desktop notification display. A Provider shows
// a notification and, where the platform supports it, blocks until the user
// clicks it. Providers degrade gracefully: an unavailable display tool means
// a no-op, never an error loop.
package provider

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"runtime"

	"wakedev/internal/notification"
)

// ErrClickUnsupported is returned by DisplayAndWait when the platform has no
// way to observe notification clicks. Callers fall back to plain display.
var ErrClickUnsupported = errors.New("click detection not supported on this platform")

// Provider displays desktop notifications.
type Provider interface {
	// Name identifies the provider in reports and logs.
	Name() string

	// Display shows the notification and returns without waiting for
	// user interaction.
	Display(ctx context.Context, n notification.Notification) error

	// DisplayAndWait shows the notification and blocks until it is
	// clicked, dismissed, or ctx is done. The returned event carries
	// Clicked=false for dismissal and timeout.
	DisplayAndWait(ctx context.Context, n notification.Notification) (notification.ClickEvent, error)

	// Available reports whether this provider can display anything
	// in the current environment.
	Available() bool
}

// New returns the default provider for the current platform. When no
// display path exists it returns a no-op provider rather than failing.
func New() Provider {
	p := newDesktopProvider()
	if !p.Available() {
		return &noopProvider{}
	}
	return p
}

// ForName resolves a provider by name, for the --provider override.
// Recognized names are "desktop" and "noop".
func ForName(name string) (Provider, error) {
	switch name {
	case "", "desktop":
		return New(), nil
	case "noop":
		return &noopProvider{}, nil
	default:
		return nil, errors.New("unknown provider: " + name)
	}
}

// Platform returns the current operating system name.
func Platform() string {
	return runtime.GOOS
}

// toolAvailable checks if a command-line tool is available in PATH.
func toolAvailable(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}

// hasDisplay checks for a graphical session on Linux. Other platforms
// always report true.
func hasDisplay() bool {
	if runtime.GOOS != "linux" {
		return true
	}
	return os.Getenv("DISPLAY") != "" || os.Getenv("WAYLAND_DISPLAY") != ""
}

// noopProvider swallows notifications on platforms with no display path.
type noopProvider struct{}

func (p *noopProvider) Name() string { return "noop" }

func (p *noopProvider) Display(_ context.Context, _ notification.Notification) error { return nil }

func (p *noopProvider) DisplayAndWait(_ context.Context, n notification.Notification) (notification.ClickEvent, error) {
	return notification.ClickEvent{ID: n.ID}, ErrClickUnsupported
}

func (p *noopProvider) Available() bool { return false }
