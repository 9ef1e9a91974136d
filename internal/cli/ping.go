package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"wakedev/internal/config"
	"wakedev/internal/errors"
	"wakedev/internal/relay"
)

var pingCmd = &cobra.Command{
	Use:     "ping",
	Short:   "Check that the configured remote listener answers",
	GroupID: GroupSending,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configFlag(cmd))
		if err != nil {
			cliErr := errors.ConfigParseError(configFlag(cmd), err)
			errors.PrintError(cliErr)
			return NewExitError(ExitConfigError, cliErr)
		}

		if !cfg.Remote.Configured() {
			cliErr := errors.RemoteNotConfigured()
			errors.PrintError(cliErr)
			return NewExitError(ExitConfigError, cliErr)
		}

		client := relay.NewClient(cfg.Remote)
		res, err := client.Ping(cmd.Context())
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "✗ %s did not answer: %v\n", client.BaseURL(), err)
			return NewExitError(ExitDeliveryFailed, err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "✓ %s answered in %s\n", client.BaseURL(), res.Latency.Round(time.Millisecond))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(pingCmd)
}
