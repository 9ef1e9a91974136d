// Package cli provides the Cobra-based command surface: sending
// notifications (send, ping), receiving them (listen), click plumbing
// (focus, wait), and setup (init, doctor, hook, install).
package cli

import (
	goerrors "errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"wakedev/internal/errors"
)

// Command group IDs for organizing help output
const (
	GroupSending       = "sending"
	GroupListening     = "listening"
	GroupIntegrations  = "integrations"
	GroupConfiguration = "configuration"
)

var rootCmd = &cobra.Command{
	Use:   "wakedev",
	Short: "desktop notifications for long-running work",
	Long: `wakedev delivers desktop notifications from scripts, agents, and remote
machines, and brings you back to the terminal that sent them.

A send goes to the local desktop, or relays to a listener on another machine
when a remote is configured. Clicking a notification can run a command or
restore the originating terminal and tmux pane.`,
	Example: `  # Notify when a long build finishes
  make build; wakedev send "Build finished" --title "CI"

  # Run a command when the notification is clicked
  wakedev send "Deploy ready" --on-click "open https://ci.example.com"

  # Keep working; a detached watcher handles the click
  wakedev send "Tests passed" --on-click "tmux switch-client -t work" --background

  # Receive notifications from other machines
  wakedev listen`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command. Command handlers print their own errors
// before wrapping them in an exit code; anything else (flag parsing, arg
// validation) is printed here.
func Execute() error {
	err := rootCmd.Execute()
	if err == nil {
		return nil
	}

	var exit *exitError
	if !goerrors.As(err, &exit) {
		if cliErr, ok := errors.AsCLIError(err); ok {
			errors.PrintError(cliErr)
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
	}
	return err
}

func init() {
	rootCmd.AddGroup(&cobra.Group{ID: GroupSending, Title: "Sending:"})
	rootCmd.AddGroup(&cobra.Group{ID: GroupListening, Title: "Listening:"})
	rootCmd.AddGroup(&cobra.Group{ID: GroupIntegrations, Title: "Integrations:"})
	rootCmd.AddGroup(&cobra.Group{ID: GroupConfiguration, Title: "Configuration:"})

	rootCmd.SetHelpCommandGroupID(GroupConfiguration)
	rootCmd.SetCompletionCommandGroupID(GroupConfiguration)

	rootCmd.PersistentFlags().StringP("config", "c", "", "Path to a local config file (overrides the global one)")
}

// configFlag returns the --config value for the invocation.
func configFlag(cmd *cobra.Command) string {
	path, _ := cmd.Flags().GetString("config")
	return path
}
