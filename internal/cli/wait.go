package cli

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"wakedev/internal/background"
	"wakedev/internal/click"
	"wakedev/internal/notification"
	"wakedev/internal/pipeline"
	"wakedev/internal/provider"
)

// waitCmd is the detached watcher entry point. It is spawned by background
// sends and by the listener, never invoked by hand, so it stays hidden.
var waitCmd = &cobra.Command{
	Use:    "wait",
	Short:  "Wait on a payload file for a notification click",
	Hidden: true,
	Args:   cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		payloadPath, _ := cmd.Flags().GetString("payload")
		maxWait, _ := cmd.Flags().GetDuration("max-wait")

		payload, err := background.ReadPayload(payloadPath)
		if err != nil {
			return NewExitError(ExitInvalidArguments, err)
		}

		ctx := cmd.Context()
		if maxWait > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, maxWait)
			defer cancel()
		}

		n := payload.Notification
		n.Wait = notification.WaitBlocking

		p := &pipeline.Pipeline{
			Local:       provider.New(),
			Coordinator: click.New(),
			Log:         zerolog.New(os.Stderr).Level(zerolog.Disabled),
		}

		// A timed-out or cancelled wait is a normal end of watch, not a
		// failure worth reporting from a detached process.
		if _, err := p.Send(ctx, n, payload.Context); err != nil && ctx.Err() == nil {
			return NewExitError(ExitDeliveryFailed, err)
		}
		return nil
	},
}

func init() {
	f := waitCmd.Flags()
	f.String("payload", "", "Path to the payload file written by the sender")
	f.Duration("max-wait", 0, "Give up waiting after this long (0 waits forever)")
	_ = waitCmd.MarkFlagRequired("payload")

	rootCmd.AddCommand(waitCmd)
}
