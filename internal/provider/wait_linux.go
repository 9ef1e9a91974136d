//go:build linux

package provider

import (
	"context"
	"os/exec"
	"strings"

	"wakedev/internal/notification"
)

// platformWaitForClick displays through notify-send with an action button
// and waits for the server to report which action, if any, was invoked.
func platformWaitForClick(ctx context.Context, n notification.Notification) (notification.ClickEvent, error) {
	if !toolAvailable("notify-send") || !hasDisplay() {
		if err := displayFunc(n); err != nil {
			return notification.ClickEvent{ID: n.ID}, err
		}
		return notification.ClickEvent{ID: n.ID}, ErrClickUnsupported
	}

	urgency := "normal"
	switch n.Urgency {
	case notification.UrgencyLow:
		urgency = "low"
	case notification.UrgencyHigh:
		urgency = "critical"
	}

	args := []string{"--wait", "--action=default=Open", "-u", urgency}
	if n.Icon != "" {
		args = append(args, "-i", n.Icon)
	}
	args = append(args, n.Title, n.Message)

	cmd := exec.CommandContext(ctx, "notify-send", args...)
	out, err := cmd.Output()
	if ctx.Err() != nil {
		return notification.ClickEvent{ID: n.ID}, ctx.Err()
	}
	if err != nil {
		return notification.ClickEvent{ID: n.ID}, err
	}

	// notify-send prints the chosen action key; nothing means dismissed.
	result := strings.TrimSpace(string(out))
	if result == "" {
		return notification.ClickEvent{ID: n.ID}, nil
	}
	return notification.ClickEvent{ID: n.ID, Clicked: true, Action: result}, nil
}
