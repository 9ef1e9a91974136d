package pipeline

import (
	"context"
	"sync"

	"wakedev/internal/background"
	"wakedev/internal/notification"
	"wakedev/internal/relay"
	"wakedev/internal/termctx"
)

// fakeDeliverer scripts remote attempt outcomes and counts calls.
type fakeDeliverer struct {
	mu       sync.Mutex
	attempts int
	// errs holds the outcome per attempt; attempts past the end reuse the
	// last entry.
	errs []error
}

func (f *fakeDeliverer) Deliver(_ context.Context, _ relay.Payload) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	var err error
	if len(f.errs) > 0 {
		i := f.attempts
		if i >= len(f.errs) {
			i = len(f.errs) - 1
		}
		err = f.errs[i]
	}
	f.attempts++
	return err
}

func (f *fakeDeliverer) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.attempts
}

// fakeProvider scripts local display behavior.
type fakeProvider struct {
	mu          sync.Mutex
	displayed   []notification.Notification
	displayErr  error
	clickEvent  notification.ClickEvent
	clickErr    error
	blockOnWait bool
	waitStarted chan struct{}
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{waitStarted: make(chan struct{}, 1)}
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) Available() bool { return true }

func (f *fakeProvider) Display(_ context.Context, n notification.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.displayed = append(f.displayed, n)
	return f.displayErr
}

func (f *fakeProvider) DisplayAndWait(ctx context.Context, n notification.Notification) (notification.ClickEvent, error) {
	f.mu.Lock()
	f.displayed = append(f.displayed, n)
	block := f.blockOnWait
	ev, err := f.clickEvent, f.clickErr
	f.mu.Unlock()

	select {
	case f.waitStarted <- struct{}{}:
	default:
	}

	if block {
		<-ctx.Done()
		return notification.ClickEvent{ID: n.ID}, ctx.Err()
	}
	if ev.ID == "" {
		ev.ID = n.ID
	}
	return ev, err
}

func (f *fakeProvider) displayCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.displayed)
}

// fakeSpawner records background watcher launches.
type fakeSpawner struct {
	mu       sync.Mutex
	payloads []background.Payload
	path     string
	err      error
}

func (f *fakeSpawner) spawn(p background.Payload) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.payloads = append(f.payloads, p)
	return f.path, f.err
}

func emptyContext() termctx.Context {
	return termctx.Context{OriginHost: "build-01", OriginUser: "ci"}
}
