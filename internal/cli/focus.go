package cli

import (
	"github.com/spf13/cobra"

	"wakedev/internal/focus"
)

var focusCmd = &cobra.Command{
	Use:     "focus",
	Short:   "Restore focus to the originating terminal and tmux pane",
	GroupID: GroupSending,
	Long: `Bring the terminal that sent a notification back to the foreground and
reselect its tmux session, window, and pane.

Flags override the WAKEDEV_* environment variables that click actions
inherit, so this command works both as a default click action and by hand.`,
	Example: `  wakedev focus
  wakedev focus --tmux-session work --tmux-window 2
  wakedev focus --no-activate`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		f := cmd.Flags()
		opts := focus.Options{}
		opts.TerminalApp, _ = f.GetString("terminal")
		opts.Session, _ = f.GetString("tmux-session")
		opts.Window, _ = f.GetString("tmux-window")
		opts.Pane, _ = f.GetString("tmux-pane")
		opts.NoActivate, _ = f.GetBool("no-activate")

		if err := focus.Restore(opts.FromEnv()); err != nil {
			return NewExitError(ExitDeliveryFailed, err)
		}
		return nil
	},
}

func init() {
	f := focusCmd.Flags()
	f.String("terminal", "", "Terminal application to activate")
	f.String("tmux-session", "", "tmux session to switch to")
	f.String("tmux-window", "", "tmux window to select")
	f.String("tmux-pane", "", "tmux pane to select")
	f.Bool("no-activate", false, "Skip activating the terminal application")

	rootCmd.AddCommand(focusCmd)
}
