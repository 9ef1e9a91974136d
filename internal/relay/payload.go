// Package relay implements both halves of the notification relay: the
// transport client that posts notifications to a remote listener, and the
// listener server that authenticates, filters, decorates, and forwards
// inbound payloads to local delivery.
package relay

import (
	"wakedev/internal/notification"
	"wakedev/internal/termctx"
)

// Payload is the wire envelope for a relayed notification. The auth token
// travels out-of-band in a header, never inside the body.
type Payload struct {
	Notification notification.Notification `json:"notification"`
	Context      termctx.Context           `json:"context"`
}

// TokenHeader is the custom header accepted as an alternative to the
// Authorization bearer form.
const TokenHeader = "X-Wakedev-Token"

// NotifyPath and HealthPath are the listener's two endpoints.
const (
	NotifyPath = "/notify"
	HealthPath = "/health"
)
