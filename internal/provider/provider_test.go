package provider

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wakedev/internal/notification"
)

// stubDisplay swaps the display path for the duration of the test.
// Tests using it must not run in parallel.
func stubDisplay(t *testing.T, fn func(notification.Notification) error) {
	t.Helper()
	orig := displayFunc
	displayFunc = fn
	t.Cleanup(func() { displayFunc = orig })
}

func stubWait(t *testing.T, fn func(context.Context, notification.Notification) (notification.ClickEvent, error)) {
	t.Helper()
	orig := waitForClick
	waitForClick = fn
	t.Cleanup(func() { waitForClick = orig })
}

func TestNoopProvider(t *testing.T) {
	t.Parallel()

	p := &noopProvider{}
	n := notification.New("Build", "done")

	assert.Equal(t, "noop", p.Name())
	assert.False(t, p.Available())
	assert.NoError(t, p.Display(context.Background(), n))

	ev, err := p.DisplayAndWait(context.Background(), n)
	assert.ErrorIs(t, err, ErrClickUnsupported)
	assert.Equal(t, n.ID, ev.ID)
	assert.False(t, ev.Clicked)
}

func TestForName(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		name    string
		wantErr bool
	}{
		"empty resolves default": {name: ""},
		"desktop":                {name: "desktop"},
		"noop":                   {name: "noop"},
		"unknown rejected":       {name: "growl", wantErr: true},
	}

	for name, test := range tests {
		test := test
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			p, err := ForName(test.name)
			if test.wantErr {
				assert.Error(t, err)
				assert.Nil(t, p)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, p)
		})
	}
}

func TestDesktopDisplayUsesDisplayPath(t *testing.T) {
	var got notification.Notification
	stubDisplay(t, func(n notification.Notification) error {
		got = n
		return nil
	})

	p := &desktopProvider{available: true}
	n := notification.New("Build", "done")
	require.NoError(t, p.Display(context.Background(), n))
	assert.Equal(t, n.ID, got.ID)
}

func TestDesktopDisplayUnavailableIsNoop(t *testing.T) {
	stubDisplay(t, func(notification.Notification) error {
		t.Fatal("display path must not run when unavailable")
		return nil
	})

	p := &desktopProvider{available: false}
	assert.NoError(t, p.Display(context.Background(), notification.New("Build", "done")))
}

func TestDesktopDisplayHonorsCancelledContext(t *testing.T) {
	stubDisplay(t, func(notification.Notification) error { return nil })

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := &desktopProvider{available: true}
	err := p.Display(ctx, notification.New("Build", "done"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDesktopDisplayAndWait(t *testing.T) {
	t.Run("delegates to the platform waiter", func(t *testing.T) {
		stubWait(t, func(_ context.Context, n notification.Notification) (notification.ClickEvent, error) {
			return notification.ClickEvent{ID: n.ID, Clicked: true, Action: "Open"}, nil
		})

		p := &desktopProvider{available: true}
		n := notification.New("Build", "done")
		ev, err := p.DisplayAndWait(context.Background(), n)
		require.NoError(t, err)
		assert.True(t, ev.Clicked)
		assert.Equal(t, "Open", ev.Action)
		assert.Equal(t, n.ID, ev.ID)
	})

	t.Run("unavailable reports unsupported", func(t *testing.T) {
		stubWait(t, func(_ context.Context, n notification.Notification) (notification.ClickEvent, error) {
			t.Fatal("waiter must not run when unavailable")
			return notification.ClickEvent{}, nil
		})

		p := &desktopProvider{available: false}
		_, err := p.DisplayAndWait(context.Background(), notification.New("Build", "done"))
		assert.ErrorIs(t, err, ErrClickUnsupported)
	})

	t.Run("waiter errors propagate", func(t *testing.T) {
		waitErr := errors.New("alerter crashed")
		stubWait(t, func(_ context.Context, n notification.Notification) (notification.ClickEvent, error) {
			return notification.ClickEvent{ID: n.ID}, waitErr
		})

		p := &desktopProvider{available: true}
		_, err := p.DisplayAndWait(context.Background(), notification.New("Build", "done"))
		assert.ErrorIs(t, err, waitErr)
	})
}

func TestNewFallsBackToNoop(t *testing.T) {
	t.Parallel()

	// New never returns nil, whatever the environment looks like.
	p := New()
	require.NotNil(t, p)
	if !p.Available() {
		assert.Equal(t, "noop", p.Name())
	}
}
