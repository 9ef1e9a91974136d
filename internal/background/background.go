// Package background hands a click wait to a detached watcher process. The
// sender writes the notification and its captured terminal context to a
// payload file, re-executes itself in a new session pointed at that file,
// and returns immediately. The payload file is the only state the two
// processes share.
package background

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"wakedev/internal/notification"
	"wakedev/internal/termctx"
)

// Payload is everything a detached watcher needs to display a notification,
// wait for the click, and run the click action with the origin's context.
type Payload struct {
	Notification notification.Notification `json:"notification"`
	Context      termctx.Context           `json:"context"`
}

// WritePayload persists the payload to a uniquely named file in the temp
// directory and returns its path.
func WritePayload(p Payload) (string, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("encoding payload: %w", err)
	}

	name := fmt.Sprintf("wakedev-payload-%d-%d.json", os.Getpid(), time.Now().UnixMilli())
	path := filepath.Join(os.TempDir(), name)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", fmt.Errorf("writing payload file: %w", err)
	}
	return path, nil
}

// ReadPayload loads and removes a payload file. The watcher is the file's
// only consumer, so it cleans up on read regardless of what happens next.
func ReadPayload(path string) (Payload, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Payload{}, fmt.Errorf("reading payload file: %w", err)
	}
	_ = os.Remove(path)

	var p Payload
	if err := json.Unmarshal(data, &p); err != nil {
		return Payload{}, fmt.Errorf("decoding payload file: %w", err)
	}
	return p, nil
}

// Spawn writes the payload and starts a detached watcher on it. The watcher
// runs `<this executable> wait --payload <path>` in its own session with all
// standard streams detached, so it outlives the sender and any terminal the
// sender ran in.
func Spawn(p Payload) (string, error) {
	return spawn(p)
}

// SpawnWithMaxWait is Spawn with a bound on how long the watcher waits.
// Hook-driven sends use it so an unclicked notification cannot leak a
// watcher forever.
func SpawnWithMaxWait(p Payload, maxWait time.Duration) (string, error) {
	return spawn(p, "--max-wait", maxWait.String())
}

func spawn(p Payload, extraArgs ...string) (string, error) {
	path, err := WritePayload(p)
	if err != nil {
		return "", err
	}

	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("locating executable: %w", err)
	}

	args := append([]string{"wait", "--payload", path}, extraArgs...)
	cmd := exec.Command(exe, args...)
	cmd.Stdin = nil
	cmd.Stdout = nil
	cmd.Stderr = nil
	cmd.SysProcAttr = detachAttr()

	if err := cmd.Start(); err != nil {
		return "", fmt.Errorf("starting watcher: %w", err)
	}
	// The watcher is on its own now; never wait on it.
	if err := cmd.Process.Release(); err != nil {
		return path, fmt.Errorf("releasing watcher: %w", err)
	}
	return path, nil
}
