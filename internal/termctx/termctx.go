// Package termctx captures the terminal/session identity of the sending
// process: origin host and user, working directory, the terminal emulator
// the command runs in, and the tmux session/window/pane when present.
//
// The captured Context travels verbatim with the notification through the
// relay and is consumed at click time to restore focus to the originating
// terminal. It is captured once at send time and never mutated.
package termctx

import (
	"os"
	"os/user"
	"strings"
)

// Environment variable overrides. These take precedence over auto-detection,
// which matters in nested or remote shells where process-ancestry walking
// would report the wrong terminal.
const (
	EnvTerminalApp = "WAKEDEV_TERMINAL_APP"
	EnvTmuxSession = "WAKEDEV_TMUX_SESSION"
	EnvTmuxWindow  = "WAKEDEV_TMUX_WINDOW"
	EnvTmuxPane    = "WAKEDEV_TMUX_PANE"
)

// Tmux identifies the pane the sending command ran in.
type Tmux struct {
	Session string `json:"session"`
	Window  string `json:"window"`
	Pane    string `json:"pane"`
}

// Context is the captured terminal/session identity attached to a
// notification at send time.
type Context struct {
	OriginHost  string `json:"origin_host"`
	OriginUser  string `json:"origin_user"`
	Cwd         string `json:"cwd"`
	TerminalApp string `json:"terminal_app,omitempty"`
	Tmux        *Tmux  `json:"tmux,omitempty"`
}

// Capture gathers the current terminal/session identity.
// Detection failures degrade to empty fields rather than errors; a partial
// context is still useful for title prefixing and click env injection.
func Capture() Context {
	ctx := Context{}

	if host, err := os.Hostname(); err == nil {
		ctx.OriginHost = host
	}
	if u, err := user.Current(); err == nil {
		ctx.OriginUser = u.Username
	}
	if cwd, err := os.Getwd(); err == nil {
		ctx.Cwd = cwd
	}

	ctx.TerminalApp = detectTerminalApp()
	ctx.Tmux = detectTmux()

	return ctx
}

// detectTerminalApp resolves the terminal emulator identity.
// Order: explicit override > TERM_PROGRAM > process ancestry walk.
func detectTerminalApp() string {
	if app := os.Getenv(EnvTerminalApp); app != "" {
		return app
	}
	if app := os.Getenv("TERM_PROGRAM"); app != "" {
		return app
	}
	return terminalFromAncestry()
}

// detectTmux resolves the tmux pane identity.
// Explicit overrides win; otherwise the local tmux control interface is
// queried when a tmux environment is detected.
func detectTmux() *Tmux {
	session := os.Getenv(EnvTmuxSession)
	window := os.Getenv(EnvTmuxWindow)
	pane := os.Getenv(EnvTmuxPane)
	if session != "" || window != "" || pane != "" {
		return &Tmux{Session: session, Window: window, Pane: pane}
	}

	if os.Getenv("TMUX") == "" {
		return nil
	}
	return queryTmux(os.Getenv("TMUX_PANE"))
}

// recognizedTerminals maps process names seen during ancestry walking to
// the terminal identity reported in the context.
var recognizedTerminals = map[string]string{
	"ghostty":        "ghostty",
	"iterm2":         "iTerm.app",
	"iterm":          "iTerm.app",
	"terminal":       "Apple_Terminal",
	"alacritty":      "alacritty",
	"kitty":          "kitty",
	"wezterm-gui":    "WezTerm",
	"gnome-terminal": "gnome-terminal",
	"konsole":        "konsole",
	"foot":           "foot",
}

// matchTerminal normalizes a process name and looks it up in the
// recognized-terminal table.
func matchTerminal(comm string) (string, bool) {
	name := strings.ToLower(strings.TrimSpace(comm))
	name = strings.TrimPrefix(name, "-") // login shells
	if idx := strings.LastIndex(name, "/"); idx >= 0 {
		name = name[idx+1:]
	}
	app, ok := recognizedTerminals[name]
	return app, ok
}
