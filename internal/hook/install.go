package hook

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// Installer wires wakedev into agent configuration files. Without apply it
// previews the change; with apply it backs up the existing file and writes.
type Installer struct {
	// HomeDir overrides the user's home directory, for tests.
	HomeDir string

	// Executable is the binary path written into hook commands.
	Executable string

	Out io.Writer
}

func (i *Installer) home() (string, error) {
	if i.HomeDir != "" {
		return i.HomeDir, nil
	}
	return os.UserHomeDir()
}

func (i *Installer) out() io.Writer {
	if i.Out != nil {
		return i.Out
	}
	return os.Stdout
}

// InstallClaude registers wakedev under the Notification and Stop hooks in
// ~/.claude/settings.json, preserving every unrelated setting in the file.
func (i *Installer) InstallClaude(apply bool) error {
	home, err := i.home()
	if err != nil {
		return fmt.Errorf("resolving home directory: %w", err)
	}
	settingsPath := filepath.Join(home, ".claude", "settings.json")

	old, err := os.ReadFile(settingsPath)
	if err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("reading %s: %w", settingsPath, err)
		}
		old = []byte("{}")
	}

	settings := make(map[string]interface{})
	if err := json.Unmarshal(old, &settings); err != nil {
		return fmt.Errorf("parsing %s: %w", settingsPath, err)
	}

	hookEntry := []interface{}{
		map[string]interface{}{
			"matcher": "",
			"hooks": []interface{}{
				map[string]interface{}{
					"type":    "command",
					"command": i.Executable + " hook claude",
				},
			},
		},
	}

	hooks, ok := settings["hooks"].(map[string]interface{})
	if !ok {
		hooks = make(map[string]interface{})
	}
	hooks["Notification"] = hookEntry
	hooks["Stop"] = hookEntry
	settings["hooks"] = hooks

	updated, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding settings: %w", err)
	}
	updated = append(updated, '\n')

	return i.finish(settingsPath, old, updated, apply, "wakedev install claude --apply")
}

// InstallCodex points the notify command in ~/.codex/config.toml at wakedev.
// The edit is a targeted splice of the top-level notify line so the rest of
// the user's file, comments included, survives byte for byte.
func (i *Installer) InstallCodex(apply bool) error {
	home, err := i.home()
	if err != nil {
		return fmt.Errorf("resolving home directory: %w", err)
	}
	configPath := filepath.Join(home, ".codex", "config.toml")

	old, err := os.ReadFile(configPath)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("reading %s: %w", configPath, err)
	}

	notifyLine := fmt.Sprintf("notify = [%q, %q, %q]", i.Executable, "hook", "codex")
	updated := spliceNotifyLine(string(old), notifyLine)

	return i.finish(configPath, old, []byte(updated), apply, "wakedev install codex --apply")
}

// spliceNotifyLine replaces the top-level notify assignment or, when none
// exists, inserts it ahead of the first table header so it stays top-level.
func spliceNotifyLine(config, notifyLine string) string {
	lines := strings.Split(config, "\n")

	for idx, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "[") {
			// A notify key past this point belongs to a table, not to us.
			break
		}
		if strings.HasPrefix(trimmed, "notify") {
			rest := strings.TrimSpace(strings.TrimPrefix(trimmed, "notify"))
			if strings.HasPrefix(rest, "=") {
				lines[idx] = notifyLine
				return strings.Join(lines, "\n")
			}
		}
	}

	for idx, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "[") {
			out := make([]string, 0, len(lines)+2)
			out = append(out, lines[:idx]...)
			out = append(out, notifyLine, "")
			out = append(out, lines[idx:]...)
			return strings.Join(out, "\n")
		}
	}

	if strings.TrimSpace(config) == "" {
		return notifyLine + "\n"
	}
	if !strings.HasSuffix(config, "\n") {
		config += "\n"
	}
	return config + notifyLine + "\n"
}

// finish previews or applies the edit. Apply backs up any existing file
// first; preview renders a diff and names the command that applies it.
func (i *Installer) finish(path string, old, updated []byte, apply bool, applyCommand string) error {
	if string(old) == string(updated) {
		fmt.Fprintf(i.out(), "%s is already up to date\n", path)
		return nil
	}

	if !apply {
		fmt.Fprintf(i.out(), "The following changes would be made to %s:\n\n", path)
		i.printDiff(path, old, updated)
		fmt.Fprintf(i.out(), "\nRun `%s` to apply them.\n", applyCommand)
		return nil
	}

	if _, err := os.Stat(path); err == nil {
		if err := backupFile(path); err != nil {
			return err
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, updated, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	fmt.Fprintf(i.out(), "Installed hooks in %s\n", path)
	return nil
}

// printDiff renders a unified diff via the system diff tool, falling back
// to printing the new contents when diff is unavailable.
func (i *Installer) printDiff(path string, old, updated []byte) {
	diffPath, err := exec.LookPath("diff")
	if err != nil {
		fmt.Fprintln(i.out(), string(updated))
		return
	}

	base := filepath.Base(path)
	oldFile := filepath.Join(os.TempDir(), fmt.Sprintf("wakedev-old-%d-%s", os.Getpid(), base))
	newFile := filepath.Join(os.TempDir(), fmt.Sprintf("wakedev-new-%d-%s", os.Getpid(), base))
	if err := os.WriteFile(oldFile, old, 0o600); err != nil {
		fmt.Fprintln(i.out(), string(updated))
		return
	}
	defer os.Remove(oldFile)
	if err := os.WriteFile(newFile, updated, 0o600); err != nil {
		fmt.Fprintln(i.out(), string(updated))
		return
	}
	defer os.Remove(newFile)

	cmd := exec.Command(diffPath, "-u", oldFile, newFile)
	cmd.Stdout = i.out()
	// diff exits 1 when the files differ, which is the expected case.
	_ = cmd.Run()
}

// backupFile copies the file aside with a timestamped suffix before it is
// overwritten.
func backupFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s for backup: %w", path, err)
	}
	backup := fmt.Sprintf("%s.bak-%d", path, time.Now().Unix())
	if err := os.WriteFile(backup, data, 0o644); err != nil {
		return fmt.Errorf("writing backup %s: %w", backup, err)
	}
	return nil
}
