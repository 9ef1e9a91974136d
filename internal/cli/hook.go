package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"wakedev/internal/background"
	"wakedev/internal/config"
	"wakedev/internal/errors"
	"wakedev/internal/hook"
	"wakedev/internal/notification"
	"wakedev/internal/termctx"
)

var hookCmd = &cobra.Command{
	Use:     "hook <claude|codex> [payload]",
	Short:   "Handle an agent hook callback",
	GroupID: GroupIntegrations,
	Long: `Turn an agent lifecycle callback into a notification. The JSON payload is
read from stdin, or from the argument when the agent passes it on the
command line (Codex does).

The resulting notification carries a click action that restores focus to
this terminal, and its click wait runs in a detached watcher so the hook
returns immediately.`,
	Example: `  # Claude Code settings.json hook entry
  wakedev hook claude

  # Codex config.toml: notify = ["wakedev", "hook", "codex"]
  wakedev hook codex '{"type":"agent-turn-complete"}'`,
	Args:      cobra.RangeArgs(1, 2),
	ValidArgs: []string{"claude", "codex"},
	RunE:      runHook,
}

func init() {
	hookCmd.Flags().String("json", "", "Hook payload as a JSON string (overrides stdin)")

	rootCmd.AddCommand(hookCmd)
}

// hookWatcherMaxWait bounds the detached click watchers spawned by hook
// sends, so an unclicked notification does not leak a process forever.
const hookWatcherMaxWait = 24 * time.Hour

func runHook(cmd *cobra.Command, args []string) error {
	payload, err := hookPayload(cmd, args)
	if err != nil {
		return NewExitError(ExitInvalidArguments, err)
	}

	var ev hook.Event
	var ok bool
	switch args[0] {
	case "claude":
		ev, ok, err = hook.ParseClaude(payload)
	case "codex":
		ev, ok, err = hook.ParseCodex(payload)
	default:
		cliErr := errors.NewValidationError(
			fmt.Sprintf("unknown hook agent %q", args[0]),
			"Supported agents: claude, codex",
		)
		errors.PrintError(cliErr)
		return NewExitError(ExitInvalidArguments, cliErr)
	}
	if err != nil {
		return NewExitError(ExitInvalidArguments, err)
	}
	if !ok {
		// Nothing notifiable in this event; hooks must stay quiet.
		return nil
	}

	cfg, err := config.Load(configFlag(cmd))
	if err != nil {
		return NewExitError(ExitConfigError, err)
	}

	n := notification.New(ev.Title, ev.Message)
	n.Source = ev.Source
	n.Wait = notification.WaitBackground
	// Parsed events always carry an event-specific title; the source preset
	// contributes only the icon here.
	if preset, found := cfg.Sources[ev.Source]; found {
		n.Icon = preset.Icon
	}
	if exe, exeErr := os.Executable(); exeErr == nil {
		n.OnClick = fmt.Sprintf("%s focus", exe)
	}

	p, err := buildPipeline(cfg, sendFlags{})
	if err != nil {
		return NewExitError(ExitCode(err), err)
	}
	p.Spawn = func(bp background.Payload) (string, error) {
		return background.SpawnWithMaxWait(bp, hookWatcherMaxWait)
	}

	if _, err := p.Send(cmd.Context(), n, termctx.Capture()); err != nil {
		return NewExitError(ExitDeliveryFailed, err)
	}
	return nil
}

// hookPayload reads the hook's JSON payload from --json when set, from the
// argument when present, from stdin otherwise.
func hookPayload(cmd *cobra.Command, args []string) ([]byte, error) {
	if inline, _ := cmd.Flags().GetString("json"); inline != "" {
		return []byte(inline), nil
	}
	if len(args) > 1 {
		return []byte(args[1]), nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return nil, fmt.Errorf("reading hook payload: %w", err)
	}
	if len(data) == 0 {
		return []byte("{}"), nil
	}
	return data, nil
}
