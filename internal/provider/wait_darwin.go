//go:build darwin

package provider

import (
	"context"
	"os/exec"
	"strings"

	"wakedev/internal/notification"
)

// platformWaitForClick displays through alerter, which blocks until the user
// interacts with the notification and reports the outcome on stdout.
func platformWaitForClick(ctx context.Context, n notification.Notification) (notification.ClickEvent, error) {
	if !toolAvailable("alerter") {
		// Show the notification anyway; the click just cannot be observed.
		if err := displayFunc(n); err != nil {
			return notification.ClickEvent{ID: n.ID}, err
		}
		return notification.ClickEvent{ID: n.ID}, ErrClickUnsupported
	}

	args := []string{"-title", n.Title, "-message", n.Message}
	if n.Tag != "" {
		args = append(args, "-group", n.Tag)
	}
	if n.Icon != "" {
		args = append(args, "-appIcon", n.Icon)
	}
	if n.Sound != "" && n.Sound != "none" {
		args = append(args, "-sound", n.Sound)
	}

	cmd := exec.CommandContext(ctx, "alerter", args...)
	out, err := cmd.Output()
	if ctx.Err() != nil {
		return notification.ClickEvent{ID: n.ID}, ctx.Err()
	}
	if err != nil {
		return notification.ClickEvent{ID: n.ID}, err
	}

	// alerter prints @CONTENTCLICKED for a body click, @CLOSED/@TIMEOUT for
	// dismissal, and the action label when an action button was chosen.
	switch result := strings.TrimSpace(string(out)); result {
	case "@CONTENTCLICKED":
		return notification.ClickEvent{ID: n.ID, Clicked: true}, nil
	case "@CLOSED", "@TIMEOUT", "":
		return notification.ClickEvent{ID: n.ID}, nil
	default:
		return notification.ClickEvent{ID: n.ID, Clicked: true, Action: result}, nil
	}
}
