package hook

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClaude(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		payload     string
		wantTitle   string
		wantMessage string
	}{
		"notification event": {
			payload:     `{"hook_event_name":"Notification","notification_type":"permission_request","message":"Claude needs permission"}`,
			wantTitle:   "Claude Code: permission_request",
			wantMessage: "Claude needs permission",
		},
		"notification without type": {
			payload:     `{"hook_event_name":"Notification","message":"hello"}`,
			wantTitle:   "Claude Code: notification",
			wantMessage: "hello",
		},
		"stop event": {
			payload:     `{"hook_event_name":"Stop"}`,
			wantTitle:   "Claude Code: finished",
			wantMessage: "Task completed",
		},
		"subagent stop": {
			payload:     `{"hook_event_name":"SubagentStop","message":"subtask done"}`,
			wantTitle:   "Claude Code: finished",
			wantMessage: "subtask done",
		},
		"unknown event falls back to tool name": {
			payload:     `{"hook_event_name":"PreToolUse","tool_name":"Bash"}`,
			wantTitle:   "Claude Code: PreToolUse",
			wantMessage: "Bash",
		},
		"prompt substitutes for message": {
			payload:     `{"hook_event_name":"Notification","prompt":"continue?"}`,
			wantTitle:   "Claude Code: notification",
			wantMessage: "continue?",
		},
		"empty payload": {
			payload:     `{}`,
			wantTitle:   "Claude Code: Unknown",
			wantMessage: " ",
		},
	}

	for name, test := range tests {
		test := test
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			ev, ok, err := ParseClaude([]byte(test.payload))
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, test.wantTitle, ev.Title)
			assert.Equal(t, test.wantMessage, ev.Message)
			assert.Equal(t, "claude", ev.Source)
		})
	}
}

func TestParseClaudeMalformed(t *testing.T) {
	t.Parallel()

	_, _, err := ParseClaude([]byte("{not json"))
	assert.Error(t, err)
}

func TestParseCodex(t *testing.T) {
	t.Parallel()

	t.Run("turn complete", func(t *testing.T) {
		t.Parallel()
		payload := `{"type":"agent-turn-complete","last-assistant-message":"Done refactoring","input_messages":["fix the tests","and lint"]}`
		ev, ok, err := ParseCodex([]byte(payload))
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "Codex: Done refactoring", ev.Title)
		assert.Equal(t, "fix the tests and lint", ev.Message)
		assert.Equal(t, "codex", ev.Source)
	})

	t.Run("missing assistant message", func(t *testing.T) {
		t.Parallel()
		ev, ok, err := ParseCodex([]byte(`{"type":"agent-turn-complete"}`))
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "Codex: Turn Complete", ev.Title)
		assert.Equal(t, " ", ev.Message)
	})

	t.Run("other event types ignored", func(t *testing.T) {
		t.Parallel()
		_, ok, err := ParseCodex([]byte(`{"type":"session-start"}`))
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("malformed payload", func(t *testing.T) {
		t.Parallel()
		_, _, err := ParseCodex([]byte("{not json"))
		assert.Error(t, err)
	})
}

func TestTruncation(t *testing.T) {
	t.Parallel()

	longMessage := strings.Repeat("x", 400)
	payload := `{"hook_event_name":"Stop","message":"` + longMessage + `"}`

	ev, ok, err := ParseClaude([]byte(payload))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Len(t, ev.Message, maxMessageLen)
	assert.True(t, strings.HasSuffix(ev.Message, "..."))

	longTitle := strings.Repeat("y", 200)
	codex := `{"type":"agent-turn-complete","last-assistant-message":"` + longTitle + `"}`
	ev, ok, err = ParseCodex([]byte(codex))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Len(t, ev.Title, maxTitleLen)
}

func TestParsedEventsAlwaysTitled(t *testing.T) {
	t.Parallel()

	tests := map[string]func() (Event, bool, error){
		"claude empty payload": func() (Event, bool, error) {
			return ParseClaude([]byte(`{}`))
		},
		"claude bare stop": func() (Event, bool, error) {
			return ParseClaude([]byte(`{"hook_event_name":"Stop"}`))
		},
		"codex bare turn complete": func() (Event, bool, error) {
			return ParseCodex([]byte(`{"type":"agent-turn-complete"}`))
		},
	}

	for name, parse := range tests {
		parse := parse
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			ev, ok, err := parse()
			require.NoError(t, err)
			require.True(t, ok)
			assert.NotEmpty(t, ev.Title, "hook notifications never rely on a preset title")
			assert.NotEmpty(t, ev.Message)
		})
	}
}
