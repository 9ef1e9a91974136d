// Package focus restores the user's working context after a notification
// click: it brings the originating terminal application to the foreground
// and reselects the tmux session, window, and pane the notification came
// from.
package focus

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"wakedev/internal/termctx"
)

// runCommand executes an external tool; overridable in tests.
var runCommand = func(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	return cmd.Run()
}

// Options select what to focus. Empty fields fall back to the environment
// a click action inherits from its watcher.
type Options struct {
	TerminalApp string
	Session     string
	Window      string
	Pane        string
	NoActivate  bool
}

// FromEnv fills unset options from the click-action environment, falling
// back to TERM_PROGRAM for the terminal application.
func (o Options) FromEnv() Options {
	if o.TerminalApp == "" {
		o.TerminalApp = os.Getenv(termctx.EnvTerminalApp)
	}
	if o.TerminalApp == "" {
		o.TerminalApp = os.Getenv("TERM_PROGRAM")
	}
	if o.Session == "" {
		o.Session = os.Getenv(termctx.EnvTmuxSession)
	}
	if o.Window == "" {
		o.Window = os.Getenv(termctx.EnvTmuxWindow)
	}
	if o.Pane == "" {
		o.Pane = os.Getenv(termctx.EnvTmuxPane)
	}
	return o
}

// Restore activates the terminal application and reselects the tmux target.
// Both halves are best-effort: a missing terminal never blocks the tmux
// switch, and vice versa.
func Restore(o Options) error {
	if !o.NoActivate {
		activateTerminal(o.TerminalApp)
	}

	if o.Session == "" && o.Window == "" && o.Pane == "" {
		return nil
	}

	var firstErr error
	if o.Session != "" {
		if err := runCommand("tmux", "switch-client", "-t", o.Session); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("tmux switch-client: %w", err)
		}
	}
	if o.Window != "" {
		if err := runCommand("tmux", "select-window", "-t", o.Window); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("tmux select-window: %w", err)
		}
	}
	if o.Pane != "" {
		if err := runCommand("tmux", "select-pane", "-t", o.Pane); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("tmux select-pane: %w", err)
		}
	}
	return firstErr
}

// terminalApps maps normalized terminal identifiers to the application
// names osascript activates.
var terminalApps = map[string]string{
	"ghostty":        "Ghostty",
	"iterm":          "iTerm",
	"iterm2":         "iTerm",
	"terminal":       "Terminal",
	"apple_terminal": "Terminal",
	"alacritty":      "Alacritty",
	"kitty":          "kitty",
	"wezterm":        "WezTerm",
}

// appForTerminal resolves a terminal identifier (possibly a TERM_PROGRAM
// value like "iTerm.app") to an activatable application name.
func appForTerminal(terminal string) string {
	key := strings.ToLower(strings.TrimSuffix(terminal, ".app"))
	return terminalApps[key]
}

// activateTerminal brings the terminal application to the foreground.
// Only macOS exposes a scriptable activation path; elsewhere this is a
// no-op.
func activateTerminal(terminal string) {
	if runtime.GOOS != "darwin" || terminal == "" {
		return
	}
	app := appForTerminal(terminal)
	if app == "" {
		return
	}
	_ = runCommand("osascript", "-e", fmt.Sprintf("tell application %q to activate", app))
}
