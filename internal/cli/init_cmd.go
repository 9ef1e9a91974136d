package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"wakedev/internal/config"
	wderrors "wakedev/internal/errors"
)

var initCmd = &cobra.Command{
	Use:     "init",
	Short:   "Write a starter config file",
	GroupID: GroupConfiguration,
	Long: `Write a starter configuration to the global config path
(respecting XDG_CONFIG_HOME). Refuses to overwrite an existing file unless
--force is given.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")
		path := config.DefaultPath()

		if err := config.WriteTemplate(path, force); err != nil {
			if errors.Is(err, os.ErrExist) {
				cliErr := wderrors.NewConfigError(
					fmt.Sprintf("config file already exists at %s", path),
					"Pass --force to overwrite it",
				)
				wderrors.PrintError(cliErr)
				return NewExitError(ExitConfigError, cliErr)
			}
			return NewExitError(ExitConfigError, err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Wrote config to %s\n", path)
		return nil
	},
}

func init() {
	initCmd.Flags().Bool("force", false, "Overwrite an existing config file")
	rootCmd.AddCommand(initCmd)
}
