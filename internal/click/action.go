package click

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"

	"wakedev/internal/notification"
	"wakedev/internal/termctx"
)

// Environment variables injected into an executed click action.
const (
	EnvSource      = "WAKEDEV_SOURCE"
	EnvTitle       = "WAKEDEV_TITLE"
	EnvMessage     = "WAKEDEV_MESSAGE"
	EnvTag         = "WAKEDEV_TAG"
	EnvContextJSON = "WAKEDEV_CONTEXT_JSON"
)

// ActionEnv builds the environment for a click action: the parent process
// environment plus the notification fields and captured context. The full
// context also travels as serialized JSON so actions can consume fields
// this list does not break out.
func ActionEnv(n notification.Notification, tctx termctx.Context) []string {
	env := os.Environ()
	env = append(env,
		EnvTitle+"="+n.Title,
		EnvMessage+"="+n.Message,
	)
	if n.Source != "" {
		env = append(env, EnvSource+"="+n.Source)
	}
	if n.Tag != "" {
		env = append(env, EnvTag+"="+n.Tag)
	}
	if tctx.Tmux != nil {
		env = append(env,
			termctx.EnvTmuxSession+"="+tctx.Tmux.Session,
			termctx.EnvTmuxWindow+"="+tctx.Tmux.Window,
			termctx.EnvTmuxPane+"="+tctx.Tmux.Pane,
		)
	}
	if tctx.TerminalApp != "" {
		env = append(env, termctx.EnvTerminalApp+"="+tctx.TerminalApp)
	}
	if data, err := json.Marshal(tctx); err == nil {
		env = append(env, EnvContextJSON+"="+string(data))
	}
	return env
}

// RunAction executes the notification's click action through the shell with
// the click environment. Failures are the caller's to record; they must
// never escalate into the outer delivery result.
func RunAction(ctx context.Context, n notification.Notification, tctx termctx.Context) error {
	if n.OnClick == "" {
		return nil
	}
	cmd := exec.CommandContext(ctx, "sh", "-c", n.OnClick)
	cmd.Env = ActionEnv(n, tctx)
	cmd.Stdout = os.Stderr
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("click action failed: %w", err)
	}
	return nil
}
