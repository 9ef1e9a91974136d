package cli

import (
	"encoding/json"
	goerrors "errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/briandowns/spinner"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"wakedev/internal/background"
	"wakedev/internal/click"
	"wakedev/internal/config"
	"wakedev/internal/errors"
	"wakedev/internal/notification"
	"wakedev/internal/pipeline"
	"wakedev/internal/provider"
	"wakedev/internal/relay"
	"wakedev/internal/termctx"
)

type sendFlags struct {
	title        string
	source       string
	tag          string
	urgency      string
	icon         string
	noIcon       bool
	sound        string
	onClick      string
	waitForClick bool
	bg           bool
	providerName string
	local        bool
	jsonOutput   bool
}

var sendCmd = &cobra.Command{
	Use:     "send <message>",
	Short:   "Send a desktop notification",
	GroupID: GroupSending,
	Long: `Send a desktop notification, locally or through a configured remote
listener.

With --on-click, clicking the notification runs the given shell command with
WAKEDEV_* environment variables describing the notification and the terminal
context it came from. --wait-for-click blocks until the notification is
clicked or dismissed; --background hands the wait to a detached watcher and
returns immediately.`,
	Example: `  wakedev send "Build finished"
  wakedev send "Deploy ready" --title CI --urgency high
  wakedev send "Tests passed" --on-click "tmux switch-client -t work" --background
  wakedev send "Review me" --wait-for-click --json`,
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return errors.MissingMessage()
		}
		return cobra.ExactArgs(1)(cmd, args)
	},
	RunE: runSend,
}

func init() {
	f := sendCmd.Flags()
	f.StringP("title", "t", "", "Notification title (defaults to the source display name)")
	f.String("source", "", "Source preset from the config (e.g. claude, codex)")
	f.String("tag", "", "Tag for grouping related notifications")
	f.StringP("urgency", "u", "", "Urgency: low, normal, or high")
	f.String("icon", "", "Path to an icon file")
	f.Bool("no-icon", false, "Suppress the icon, including source presets")
	f.String("sound", "", "Notification sound (\"none\" to disable)")
	f.String("on-click", "", "Shell command to run when the notification is clicked")
	f.BoolP("wait-for-click", "w", false, "Block until the notification is clicked or dismissed")
	f.BoolP("background", "b", false, "Detach the click wait into a watcher process")
	f.String("provider", "", "Display provider override (desktop, noop)")
	f.Bool("local", false, "Skip the remote listener and display locally")
	f.Bool("json", false, "Print the delivery report as JSON")

	rootCmd.AddCommand(sendCmd)
}

func parseSendFlags(cmd *cobra.Command) sendFlags {
	f := cmd.Flags()
	var flags sendFlags
	flags.title, _ = f.GetString("title")
	flags.source, _ = f.GetString("source")
	flags.tag, _ = f.GetString("tag")
	flags.urgency, _ = f.GetString("urgency")
	flags.icon, _ = f.GetString("icon")
	flags.noIcon, _ = f.GetBool("no-icon")
	flags.sound, _ = f.GetString("sound")
	flags.onClick, _ = f.GetString("on-click")
	flags.waitForClick, _ = f.GetBool("wait-for-click")
	flags.bg, _ = f.GetBool("background")
	flags.providerName, _ = f.GetString("provider")
	flags.local, _ = f.GetBool("local")
	flags.jsonOutput, _ = f.GetBool("json")
	return flags
}

func runSend(cmd *cobra.Command, args []string) error {
	flags := parseSendFlags(cmd)

	cfg, err := config.Load(configFlag(cmd))
	if err != nil {
		cliErr := errors.ConfigParseError(configFlag(cmd), err)
		errors.PrintError(cliErr)
		return NewExitError(ExitCode(cliErr), cliErr)
	}

	n, err := buildNotification(args[0], flags, cfg)
	if err != nil {
		if cliErr, ok := errors.AsCLIError(err); ok {
			errors.PrintError(cliErr)
		}
		return NewExitError(ExitCode(err), err)
	}

	p, err := buildPipeline(cfg, flags)
	if err != nil {
		if cliErr, ok := errors.AsCLIError(err); ok {
			errors.PrintError(cliErr)
		}
		return NewExitError(ExitCode(err), err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var spin *spinner.Spinner
	if n.Wait == notification.WaitBlocking && !flags.jsonOutput && interactive() {
		spin = spinner.New(spinner.CharSets[14], 100*time.Millisecond)
		spin.Writer = os.Stderr
		spin.Suffix = " Waiting for click..."
		spin.Start()
	}

	report, sendErr := p.Send(ctx, n, termctx.Capture())

	if spin != nil {
		spin.Stop()
	}

	if err := printReport(cmd, report, flags.jsonOutput); err != nil {
		return err
	}
	if sendErr != nil {
		code := ExitDeliveryFailed
		var attemptErr *relay.AttemptError
		if goerrors.As(sendErr, &attemptErr) && attemptErr.Kind == relay.AuthRejected {
			code = ExitAuthFailed
		}
		if !flags.jsonOutput {
			fmt.Fprintln(os.Stderr, errors.FormatSimpleError(sendErr, errors.Network))
		}
		return NewExitError(code, sendErr)
	}
	return nil
}

// buildNotification validates the flags and assembles the notification,
// applying source presets from the configuration.
func buildNotification(message string, flags sendFlags, cfg *config.Configuration) (notification.Notification, error) {
	if flags.urgency != "" && !notification.ValidUrgency(flags.urgency) {
		return notification.Notification{}, errors.InvalidUrgency(flags.urgency)
	}
	if flags.bg && flags.onClick == "" {
		return notification.Notification{}, errors.BackgroundRequiresOnClick()
	}

	n := notification.New(flags.title, message)
	n.Source = flags.source
	n.Tag = flags.tag
	n.Sound = flags.sound
	n.OnClick = flags.onClick
	if flags.urgency != "" {
		n.Urgency = notification.Urgency(flags.urgency)
	}
	if !flags.noIcon {
		n.Icon = flags.icon
	}

	// Source presets fill whatever the flags left empty.
	if flags.source != "" && cfg != nil {
		if preset, ok := cfg.Sources[flags.source]; ok {
			if n.Title == "" {
				n.Title = preset.DisplayName
			}
			if n.Icon == "" && !flags.noIcon {
				n.Icon = preset.Icon
			}
		}
	}
	if n.Title == "" && flags.source != "" {
		n.Title = strings.ToUpper(flags.source[:1]) + flags.source[1:]
	}
	if n.Title == "" {
		n.Title = "Wakedev"
	}

	switch {
	case flags.bg:
		n.Wait = notification.WaitBackground
	case flags.waitForClick || flags.onClick != "":
		n.Wait = notification.WaitBlocking
	default:
		n.Wait = notification.WaitNone
	}
	return n, nil
}

// buildPipeline assembles the delivery pipeline from configuration and
// flag overrides.
func buildPipeline(cfg *config.Configuration, flags sendFlags) (*pipeline.Pipeline, error) {
	providerName := flags.providerName
	if providerName == "" {
		providerName = cfg.DefaultProvider
	}
	local, err := provider.ForName(providerName)
	if err != nil {
		return nil, errors.NewValidationError(err.Error(), "Valid providers: desktop, noop")
	}

	p := &pipeline.Pipeline{
		Local:           local,
		Coordinator:     click.New(),
		Spawn:           background.Spawn,
		Retries:         cfg.Remote.Retries,
		RetryDelay:      cfg.Remote.RetryDelay(),
		FallbackToLocal: cfg.Remote.FallbackToLocal,
		Log:             zerolog.New(os.Stderr).Level(zerolog.WarnLevel).With().Timestamp().Logger(),
	}
	if cfg.Remote.Configured() && !flags.local {
		p.Remote = relay.NewClient(cfg.Remote)
	}
	if p.Remote == nil && !local.Available() {
		return nil, errors.NoProviderAvailable()
	}
	return p, nil
}

func printReport(cmd *cobra.Command, report pipeline.Report, jsonOutput bool) error {
	out := cmd.OutOrStdout()
	if jsonOutput {
		data, err := json.Marshal(report)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	switch {
	case report.Background:
		fmt.Fprintf(out, "Notification sent; watcher detached (payload %s)\n", report.PayloadPath)
	case report.Clicked:
		fmt.Fprintln(out, "Notification clicked")
		if report.ActionError != "" {
			fmt.Fprintf(out, "Click action failed: %s\n", report.ActionError)
		}
	case report.Delivered:
		fmt.Fprintf(out, "Notification sent via %s\n", report.Provider)
	}
	return nil
}

// interactive reports whether a human is watching the terminal. CI runs and
// piped output skip the spinner.
func interactive() bool {
	if os.Getenv("CI") != "" {
		return false
	}
	return term.IsTerminal(int(os.Stderr.Fd()))
}
