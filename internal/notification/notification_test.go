package notification

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAssignsID(t *testing.T) {
	t.Parallel()

	n := New("Build", "Build complete")

	require.NotEmpty(t, n.ID)
	assert.Equal(t, "Build", n.Title)
	assert.Equal(t, "Build complete", n.Message)
	assert.Equal(t, WaitMode(""), n.Wait)
}

func TestNewIDUniqueUnderConcurrency(t *testing.T) {
	t.Parallel()

	const (
		workers = 10
		perWorker = 1000
	)

	var mu sync.Mutex
	seen := make(map[string]struct{}, workers*perWorker)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ids := make([]string, 0, perWorker)
			for j := 0; j < perWorker; j++ {
				ids = append(ids, NewID())
			}
			mu.Lock()
			defer mu.Unlock()
			for _, id := range ids {
				seen[id] = struct{}{}
			}
		}()
	}
	wg.Wait()

	assert.Len(t, seen, workers*perWorker, "expected no id collisions")
}

func TestValidUrgency(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		value string
		want  bool
	}{
		"low":     {value: "low", want: true},
		"normal":  {value: "normal", want: true},
		"high":    {value: "high", want: true},
		"empty":   {value: "", want: false},
		"unknown": {value: "critical", want: false},
	}

	for name, test := range tests {
		test := test
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, test.want, ValidUrgency(test.value))
		})
	}
}

func TestValidWaitMode(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		value string
		want  bool
	}{
		"none":       {value: "none", want: true},
		"blocking":   {value: "blocking", want: true},
		"background": {value: "background", want: true},
		"unknown":    {value: "detached", want: false},
	}

	for name, test := range tests {
		test := test
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, test.want, ValidWaitMode(test.value))
		})
	}
}
