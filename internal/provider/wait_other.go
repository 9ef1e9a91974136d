//go:build !darwin && !linux

package provider

import (
	"context"

	"wakedev/internal/notification"
)

// platformWaitForClick has no click-observation path on this platform; it
// displays the notification and reports the wait as unsupported.
func platformWaitForClick(_ context.Context, n notification.Notification) (notification.ClickEvent, error) {
	if err := displayFunc(n); err != nil {
		return notification.ClickEvent{ID: n.ID}, err
	}
	return notification.ClickEvent{ID: n.ID}, ErrClickUnsupported
}
