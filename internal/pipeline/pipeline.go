// Package pipeline orchestrates notification delivery: remote relay with
// retry and fallback, local display, and the three click-wait modes.
package pipeline

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"wakedev/internal/background"
	"wakedev/internal/click"
	"wakedev/internal/notification"
	"wakedev/internal/provider"
	"wakedev/internal/relay"
	"wakedev/internal/termctx"
)

// Deliverer posts one payload to a remote listener. One call is one attempt.
type Deliverer interface {
	Deliver(ctx context.Context, payload relay.Payload) error
}

// SpawnFunc starts a detached watcher for a background click wait and
// returns the payload file path it runs on.
type SpawnFunc func(p background.Payload) (string, error)

// Report is the outcome of one Send, shaped for the --json output.
type Report struct {
	ID        string `json:"id"`
	Provider  string `json:"provider"`
	Delivered bool   `json:"delivered"`
	Clicked   bool   `json:"clicked"`
	// Action is the click-action command that ran; null when none did.
	Action      *string `json:"action"`
	ActionError string  `json:"action_error,omitempty"`
	Background  bool    `json:"background"`
	// PayloadPath is the watcher's payload file for background sends.
	PayloadPath string `json:"payload,omitempty"`
	// FellBack is true when remote delivery failed and the notification
	// was displayed locally instead.
	FellBack bool   `json:"fell_back,omitempty"`
	Error    string `json:"error,omitempty"`
}

// Pipeline routes notifications to the remote listener when one is
// configured, falling back to or starting from local display.
type Pipeline struct {
	// Local displays notifications on this machine.
	Local provider.Provider

	// Remote posts to the configured listener; nil means local-only.
	Remote Deliverer

	// Coordinator bridges click events to blocking waiters.
	Coordinator *click.Coordinator

	// Spawn starts detached watchers for background waits.
	Spawn SpawnFunc

	// Retries is the number of re-attempts after the first remote failure.
	Retries int

	// RetryDelay is the pause between remote attempts.
	RetryDelay time.Duration

	// FallbackToLocal displays locally when every remote attempt failed.
	FallbackToLocal bool

	Log zerolog.Logger
}

// Send delivers the notification and, depending on its wait mode, waits for
// the user's click. The report is always populated; a non-nil error means
// delivery itself failed.
func (p *Pipeline) Send(ctx context.Context, n notification.Notification, tctx termctx.Context) (Report, error) {
	if p.Remote != nil {
		report, fellBack, err := p.sendRemote(ctx, n, tctx)
		if !fellBack {
			return report, err
		}
		local, localErr := p.sendLocal(ctx, n, tctx)
		local.FellBack = true
		return local, localErr
	}
	return p.sendLocal(ctx, n, tctx)
}

// sendRemote runs the attempt loop against the listener. It returns
// fellBack=true when every attempt failed and fallback is configured.
func (p *Pipeline) sendRemote(ctx context.Context, n notification.Notification, tctx termctx.Context) (Report, bool, error) {
	payload := relay.Payload{Notification: n, Context: tctx}
	attempts := p.Retries + 1

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		err := p.Remote.Deliver(ctx, payload)
		if err == nil {
			p.Log.Debug().Str("id", n.ID).Int("attempt", attempt).Msg("remote delivery accepted")
			return Report{ID: n.ID, Provider: "remote", Delivered: true}, false, nil
		}
		lastErr = err

		var attemptErr *relay.AttemptError
		if errors.As(err, &attemptErr) && !attemptErr.Retryable() {
			// Auth rejections and malformed requests never heal on retry.
			p.Log.Warn().Str("id", n.ID).Err(err).Msg("remote delivery failed, not retryable")
			break
		}
		if attempt == attempts {
			break
		}

		p.Log.Debug().Str("id", n.ID).Int("attempt", attempt).Err(err).Msg("remote attempt failed, retrying")
		select {
		case <-time.After(p.RetryDelay):
		case <-ctx.Done():
			return Report{ID: n.ID, Provider: "remote", Error: ctx.Err().Error()}, false, ctx.Err()
		}
	}

	if p.FallbackToLocal {
		p.Log.Warn().Str("id", n.ID).Err(lastErr).Msg("remote delivery exhausted, falling back to local display")
		return Report{}, true, nil
	}
	return Report{ID: n.ID, Provider: "remote", Error: lastErr.Error()}, false, lastErr
}

func (p *Pipeline) sendLocal(ctx context.Context, n notification.Notification, tctx termctx.Context) (Report, error) {
	report := Report{ID: n.ID, Provider: p.Local.Name()}

	switch n.Wait {
	case notification.WaitBackground:
		path, err := p.Spawn(background.Payload{Notification: n, Context: tctx})
		if err != nil {
			report.Error = err.Error()
			return report, err
		}
		report.Delivered = true
		report.Background = true
		report.PayloadPath = path
		return report, nil

	case notification.WaitBlocking:
		return p.displayAndWait(ctx, n, tctx)

	default:
		if err := p.Local.Display(ctx, n); err != nil {
			report.Error = err.Error()
			return report, err
		}
		report.Delivered = true
		return report, nil
	}
}

// displayAndWait suspends the caller until the notification is clicked,
// dismissed, or ctx is done. The provider's wait runs in its own goroutine
// and resolves through the coordinator, so cancellation never orphans a
// registered waiter.
func (p *Pipeline) displayAndWait(ctx context.Context, n notification.Notification, tctx termctx.Context) (Report, error) {
	report := Report{ID: n.ID, Provider: p.Local.Name()}

	w, err := p.Coordinator.Register(n.ID)
	if err != nil {
		report.Error = err.Error()
		return report, err
	}

	displayErr := make(chan error, 1)
	go func() {
		ev, err := p.Local.DisplayAndWait(ctx, n)
		if err != nil && !errors.Is(err, provider.ErrClickUnsupported) {
			displayErr <- err
			// A failed display leaves nothing to click; release the
			// waiter so the error surfaces instead of hanging the send.
			p.Coordinator.Cancel(w)
			return
		}
		displayErr <- nil
		// Unsupported click detection resolves as a non-click so the
		// waiter is released rather than stranded.
		p.Coordinator.Resolve(ev)
	}()

	ev, waitErr := p.Coordinator.Wait(ctx, w)
	if waitErr != nil {
		if err := <-displayErr; err != nil {
			report.Error = err.Error()
			return report, err
		}
		report.Error = waitErr.Error()
		return report, waitErr
	}
	if err := <-displayErr; err != nil {
		report.Error = err.Error()
		return report, err
	}

	report.Delivered = true
	report.Clicked = ev.Clicked

	if ev.Clicked && n.OnClick != "" {
		action := n.OnClick
		report.Action = &action
		// A failing click action does not retract a successful delivery.
		if err := click.RunAction(ctx, n, tctx); err != nil {
			p.Log.Warn().Str("id", n.ID).Err(err).Msg("click action failed")
			report.ActionError = err.Error()
		}
	}
	return report, nil
}
