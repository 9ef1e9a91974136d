package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"wakedev/internal/background"
	"wakedev/internal/config"
	"wakedev/internal/errors"
	"wakedev/internal/notification"
	"wakedev/internal/provider"
	"wakedev/internal/relay"
)

var listenCmd = &cobra.Command{
	Use:     "listen",
	Short:   "Receive notifications from remote senders",
	GroupID: GroupListening,
	Long: `Run the relay listener. Accepted notifications are displayed on this
machine's desktop; clicking one restores focus to this terminal unless the
listener config names a different click action.

Senders authenticate with the configured token. The allowlist, when set,
restricts which hosts may deliver at all.`,
	Example: `  wakedev listen
  wakedev listen --bind 0.0.0.0 --port 4280
  wakedev listen --debug`,
	Args: cobra.NoArgs,
	RunE: runListen,
}

func init() {
	f := listenCmd.Flags()
	f.String("bind", "", "Bind address (overrides the config)")
	f.Int("port", 0, "Listen port (overrides the config)")
	f.Bool("debug", false, "Enable debug logging")

	rootCmd.AddCommand(listenCmd)
}

func runListen(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configFlag(cmd))
	if err != nil {
		cliErr := errors.ConfigParseError(configFlag(cmd), err)
		errors.PrintError(cliErr)
		return NewExitError(ExitConfigError, cliErr)
	}

	listener := cfg.Listener
	if bind, _ := cmd.Flags().GetString("bind"); bind != "" {
		listener.Bind = bind
	}
	if port, _ := cmd.Flags().GetInt("port"); port != 0 {
		listener.Port = port
	}

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		With().Timestamp().Logger()
	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		log = log.Level(zerolog.DebugLevel)
	} else {
		log = log.Level(zerolog.InfoLevel)
	}

	if listener.RequireToken && listener.Token == "" {
		cliErr := errors.NewConfigError(
			"listener.require_token is set but no token is configured",
			"Set listener.token in the config or WAKEDEV_LISTENER_TOKEN in the environment",
			"Or set listener.require_token to false for trusted networks",
		)
		errors.PrintError(cliErr)
		return NewExitError(ExitConfigError, cliErr)
	}

	local := provider.New()
	if !local.Available() {
		log.Warn().Msg("no display path available; accepted notifications will be dropped")
	}

	forward := func(ctx context.Context, payload relay.Payload) error {
		// Forwarded notifications with a click action run in a detached
		// watcher so this handler returns immediately.
		if payload.Notification.Wait == notification.WaitBackground {
			_, err := background.Spawn(background.Payload{
				Notification: payload.Notification,
				Context:      payload.Context,
			})
			return err
		}
		return local.Display(ctx, payload.Notification)
	}

	defaultClick := ""
	if exe, err := os.Executable(); err == nil {
		defaultClick = fmt.Sprintf("%s focus", exe)
	}

	srv := relay.NewServer(listener, forward, defaultClick, log)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.ListenAndServe(ctx); err != nil {
		log.Error().Err(err).Msg("listener failed")
		return NewExitError(ExitDeliveryFailed, err)
	}
	return nil
}
