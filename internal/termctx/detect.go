package termctx

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// runCommand executes a helper process and returns its trimmed stdout.
// Overridable in tests; production always shells out.
var runCommand = func(name string, args ...string) (string, error) {
	out, err := exec.Command(name, args...).Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// queryTmux asks the local tmux server for the session/window/pane of the
// given pane id (or the active pane when empty).
func queryTmux(paneID string) *Tmux {
	args := []string{"display-message", "-p"}
	if paneID != "" {
		args = append(args, "-t", paneID)
	}
	args = append(args, "#{session_name}\t#{window_index}\t#{pane_index}")

	out, err := runCommand("tmux", args...)
	if err != nil {
		return nil
	}
	parts := strings.Split(out, "\t")
	if len(parts) != 3 {
		return nil
	}
	return &Tmux{Session: parts[0], Window: parts[1], Pane: parts[2]}
}

// ancestryLimit bounds the process-ancestry walk. Terminal emulators sit a
// handful of levels above a CLI invocation.
const ancestryLimit = 12

// terminalFromAncestry walks up the process tree looking for a recognized
// terminal-emulator process. Returns "" when none is found or the walk
// cannot proceed.
func terminalFromAncestry() string {
	pid := os.Getppid()
	for i := 0; i < ancestryLimit && pid > 1; i++ {
		out, err := runCommand("ps", "-o", "ppid=,comm=", "-p", fmt.Sprintf("%d", pid))
		if err != nil {
			return ""
		}
		fields := strings.Fields(out)
		if len(fields) < 2 {
			return ""
		}
		if app, ok := matchTerminal(strings.Join(fields[1:], " ")); ok {
			return app
		}
		var ppid int
		if _, err := fmt.Sscanf(fields[0], "%d", &ppid); err != nil {
			return ""
		}
		pid = ppid
	}
	return ""
}
