package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"wakedev/internal/health"
)

var doctorCmd = &cobra.Command{
	Use:     "doctor",
	Short:   "Run health checks for wakedev dependencies",
	GroupID: GroupConfiguration,
	Long: `Run health checks to verify that notifications can be displayed and
delivered from this machine.

This command checks for:
  - The platform display tool
  - Click detection support
  - tmux (for focus restoration)
  - Configuration validity
  - The remote listener, when one is configured

Each check will display a ✓ if passed or ✗ with an error message if failed.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		report := health.RunHealthChecks(cmd.Context(), configFlag(cmd))
		fmt.Fprint(cmd.OutOrStdout(), health.FormatReport(report))

		if !report.Passed {
			return NewExitError(ExitDeliveryFailed, nil)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}
