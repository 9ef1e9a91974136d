package provider

import (
	"context"
	"fmt"

	"github.com/gen2brain/beeep"

	"wakedev/internal/notification"
)

// displayFunc and waitForClick are indirections over the platform display
// and click-wait paths, overridable in tests.
var (
	displayFunc  = displayDesktop
	waitForClick = platformWaitForClick
)

// desktopProvider displays notifications through the OS notification
// system. Plain display is portable; click waiting is platform-specific.
type desktopProvider struct {
	available bool
}

func newDesktopProvider() Provider {
	return &desktopProvider{available: hasDisplay()}
}

func (p *desktopProvider) Name() string { return "desktop" }

func (p *desktopProvider) Available() bool { return p.available }

// Display shows the notification without waiting for interaction.
func (p *desktopProvider) Display(ctx context.Context, n notification.Notification) error {
	if !p.available {
		return nil // graceful degradation
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return displayFunc(n)
}

// DisplayAndWait shows the notification and blocks until it is clicked,
// dismissed, or ctx is done.
func (p *desktopProvider) DisplayAndWait(ctx context.Context, n notification.Notification) (notification.ClickEvent, error) {
	if !p.available {
		return notification.ClickEvent{ID: n.ID}, ErrClickUnsupported
	}
	return waitForClick(ctx, n)
}

// displayDesktop pushes a fire-and-forget notification to the OS.
// High urgency maps to the platform's alert presentation.
func displayDesktop(n notification.Notification) error {
	var err error
	if n.Urgency == notification.UrgencyHigh {
		err = beeep.Alert(n.Title, n.Message, n.Icon)
	} else {
		err = beeep.Notify(n.Title, n.Message, n.Icon)
	}
	if err != nil {
		return fmt.Errorf("desktop notification failed: %w", err)
	}
	if n.Sound != "" && n.Sound != "none" {
		// Sound failures never fail a delivered notification.
		_ = beeep.Beep(beeep.DefaultFreq, beeep.DefaultDuration)
	}
	return nil
}
