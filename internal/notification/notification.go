// Package notification defines the core notification value types shared by
// the delivery pipeline, the relay, and the click coordinator.
//
// A Notification is constructed once (New assigns its id) and treated as
// immutable afterwards: every component receives it by value and never
// mutates it in place. The one sanctioned exception is the listener server,
// which decorates a copy of a forwarded notification before local display.
package notification

// Urgency indicates how prominently the OS should surface a notification.
type Urgency string

const (
	UrgencyLow    Urgency = "low"
	UrgencyNormal Urgency = "normal"
	UrgencyHigh   Urgency = "high"
)

// ValidUrgency checks if the given string is a valid urgency level.
func ValidUrgency(s string) bool {
	switch Urgency(s) {
	case UrgencyLow, UrgencyNormal, UrgencyHigh:
		return true
	default:
		return false
	}
}

// WaitMode controls whether a send blocks on user interaction.
type WaitMode string

const (
	// WaitNone delivers and returns immediately.
	WaitNone WaitMode = "none"
	// WaitBlocking suspends the caller until the notification is clicked
	// or the wait is cancelled.
	WaitBlocking WaitMode = "blocking"
	// WaitBackground returns immediately and hands the click wait to a
	// detached watcher process.
	WaitBackground WaitMode = "background"
)

// ValidWaitMode checks if the given string is a valid wait mode.
func ValidWaitMode(s string) bool {
	switch WaitMode(s) {
	case WaitNone, WaitBlocking, WaitBackground:
		return true
	default:
		return false
	}
}

// Notification is a single desktop notification.
type Notification struct {
	// ID uniquely identifies the notification within the lifetime of any
	// coordinator or listener process that handles it.
	ID string `json:"id"`

	// Title is the notification headline.
	Title string `json:"title"`

	// Message is the notification body text.
	Message string `json:"message"`

	// Source names the workflow that produced the notification
	// (e.g. "claude", "codex"). Used for icon/title presets.
	Source string `json:"source,omitempty"`

	// Icon is an optional path to an icon file.
	Icon string `json:"icon,omitempty"`

	// Sound is an optional sound name or file; "none" disables sound.
	Sound string `json:"sound,omitempty"`

	// Tag groups related notifications for dedupe/replacement by the OS.
	Tag string `json:"tag,omitempty"`

	// Urgency is the display priority; empty means UrgencyNormal.
	Urgency Urgency `json:"urgency,omitempty"`

	// OnClick is a shell command executed when the user clicks the
	// notification. Empty means no click action.
	OnClick string `json:"on_click,omitempty"`

	// Wait selects the click-wait semantics for the send; empty means
	// WaitNone.
	Wait WaitMode `json:"wait,omitempty"`
}

// New creates a Notification with a freshly generated id.
// Callers fill the remaining fields before handing it to the pipeline.
func New(title, message string) Notification {
	return Notification{
		ID:      NewID(),
		Title:   title,
		Message: message,
	}
}

// ClickEvent records the user's interaction with a displayed notification.
// At most one ClickEvent is accepted per notification id.
type ClickEvent struct {
	// ID is the notification the event belongs to.
	ID string `json:"id"`

	// Clicked is true when the user activated the notification, false when
	// it was dismissed or the wait was resolved without interaction.
	Clicked bool `json:"clicked"`

	// Action is the label of the action button the user chose, when the
	// platform distinguishes buttons from a plain content click.
	Action string `json:"action,omitempty"`
}
