// Package hook turns agent lifecycle callbacks into notifications. Claude
// Code invokes hooks with a JSON payload on stdin; Codex passes the payload
// as an argument to its notify command. Both paths reduce to an Event the
// send pipeline can deliver.
package hook

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Title and message length bounds for hook-produced notifications. Agent
// output is unbounded; notification real estate is not.
const (
	maxTitleLen   = 120
	maxMessageLen = 300
)

// Event is a notification distilled from a hook payload.
type Event struct {
	Title   string
	Message string
	Source  string
}

// claudePayload covers the fields shared by Claude Code hook events.
type claudePayload struct {
	HookEventName    string `json:"hook_event_name"`
	NotificationType string `json:"notification_type"`
	Message          string `json:"message"`
	Prompt           string `json:"prompt"`
	ToolName         string `json:"tool_name"`
}

// ParseClaude builds an Event from a Claude Code hook payload. The second
// return value is false when the payload carries nothing worth notifying.
func ParseClaude(data []byte) (Event, bool, error) {
	var p claudePayload
	if err := json.Unmarshal(data, &p); err != nil {
		return Event{}, false, fmt.Errorf("parsing claude hook payload: %w", err)
	}

	hook := p.HookEventName
	if hook == "" {
		hook = "Unknown"
	}

	message := p.Message
	if message == "" {
		message = p.Prompt
	}

	var title string
	switch hook {
	case "Notification":
		ntype := p.NotificationType
		if ntype == "" {
			ntype = "notification"
		}
		title = "Claude Code: " + ntype
	case "Stop", "SubagentStop":
		if message == "" {
			message = "Task completed"
		}
		title = "Claude Code: finished"
	default:
		title = "Claude Code: " + hook
	}

	if message == "" {
		if p.ToolName != "" {
			message = p.ToolName
		} else {
			message = " "
		}
	}

	return Event{
		Title:   truncate(title, maxTitleLen),
		Message: truncate(message, maxMessageLen),
		Source:  "claude",
	}, true, nil
}

// codexPayload covers the Codex notify payload for completed turns.
type codexPayload struct {
	Type                 string   `json:"type"`
	LastAssistantMessage string   `json:"last-assistant-message"`
	InputMessages        []string `json:"input_messages"`
}

// ParseCodex builds an Event from a Codex notify payload. Event types other
// than agent-turn-complete are ignored.
func ParseCodex(data []byte) (Event, bool, error) {
	var p codexPayload
	if err := json.Unmarshal(data, &p); err != nil {
		return Event{}, false, fmt.Errorf("parsing codex notify payload: %w", err)
	}

	if p.Type != "agent-turn-complete" {
		return Event{}, false, nil
	}

	title := "Codex: Turn Complete"
	if p.LastAssistantMessage != "" {
		title = "Codex: " + p.LastAssistantMessage
	}

	message := strings.TrimSpace(strings.Join(p.InputMessages, " "))
	if message == "" {
		message = " "
	}

	return Event{
		Title:   truncate(title, maxTitleLen),
		Message: truncate(message, maxMessageLen),
		Source:  "codex",
	}, true, nil
}

// truncate bounds a string, marking the cut with an ellipsis.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	const suffix = "..."
	cut := max - len(suffix)
	if cut < 0 {
		cut = 0
	}
	runes := []rune(s)
	if cut > len(runes) {
		cut = len(runes)
	}
	return string(runes[:cut]) + suffix
}
