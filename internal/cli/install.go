package cli

import (
	"os"

	"github.com/spf13/cobra"

	"wakedev/internal/errors"
	"wakedev/internal/hook"
)

var installCmd = &cobra.Command{
	Use:     "install <claude|codex>",
	Short:   "Wire wakedev into an agent's hook configuration",
	GroupID: GroupIntegrations,
	Long: `Edit the agent's configuration to invoke wakedev on lifecycle events:
Claude Code's ~/.claude/settings.json Notification and Stop hooks, or
Codex's ~/.codex/config.toml notify command.

Without --apply the command previews the edit as a diff. With --apply it
backs up the existing file and writes the change. Unrelated configuration
is preserved either way.`,
	Example: `  wakedev install claude
  wakedev install claude --apply
  wakedev install codex --apply`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"claude", "codex"},
	RunE: func(cmd *cobra.Command, args []string) error {
		apply, _ := cmd.Flags().GetBool("apply")

		exe, err := os.Executable()
		if err != nil {
			return NewExitError(ExitDeliveryFailed, err)
		}

		inst := &hook.Installer{Executable: exe, Out: cmd.OutOrStdout()}

		switch args[0] {
		case "claude":
			err = inst.InstallClaude(apply)
		case "codex":
			err = inst.InstallCodex(apply)
		default:
			cliErr := errors.NewValidationError(
				"unknown install target "+args[0],
				"Supported targets: claude, codex",
			)
			errors.PrintError(cliErr)
			return NewExitError(ExitInvalidArguments, cliErr)
		}
		if err != nil {
			return NewExitError(ExitConfigError, err)
		}
		return nil
	},
}

func init() {
	installCmd.Flags().Bool("apply", false, "Write the change instead of previewing it")
	rootCmd.AddCommand(installCmd)
}
