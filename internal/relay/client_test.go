package relay

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wakedev/internal/config"
	"wakedev/internal/notification"
	"wakedev/internal/termctx"
)

// clientFor points a Client at an httptest server.
func clientFor(t *testing.T, ts *httptest.Server, token string, timeoutMs int) *Client {
	t.Helper()
	u, err := url.Parse(ts.URL)
	require.NoError(t, err)
	port, err := strconv.Atoi(u.Port())
	require.NoError(t, err)
	return NewClient(config.RemoteConfig{
		Host:      u.Hostname(),
		Port:      port,
		Token:     token,
		TimeoutMs: timeoutMs,
	})
}

func testPayload() Payload {
	return Payload{
		Notification: notification.New("Build", "Build complete"),
		Context:      termctx.Context{OriginHost: "build-01", OriginUser: "ci"},
	}
}

func TestDeliverSuccess(t *testing.T) {
	t.Parallel()

	var gotAuth string
	var gotBody Payload
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, NotifyPath, r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		writeJSON(w, http.StatusOK, map[string]bool{"received": true})
	}))
	defer ts.Close()

	c := clientFor(t, ts, "secret", 1000)
	err := c.Deliver(context.Background(), testPayload())

	require.NoError(t, err)
	assert.Equal(t, "Bearer secret", gotAuth)
	assert.Equal(t, "Build", gotBody.Notification.Title)
	assert.Equal(t, "build-01", gotBody.Context.OriginHost)
}

func TestDeliverClassifiesFailures(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		status        int
		wantKind      FailureKind
		wantRetryable bool
	}{
		"401 is auth, terminal":      {status: http.StatusUnauthorized, wantKind: AuthRejected, wantRetryable: false},
		"403 is auth, terminal":      {status: http.StatusForbidden, wantKind: AuthRejected, wantRetryable: false},
		"500 is retryable":           {status: http.StatusInternalServerError, wantKind: ServerError, wantRetryable: true},
		"503 is retryable":           {status: http.StatusServiceUnavailable, wantKind: ServerError, wantRetryable: true},
		"400 is malformed, terminal": {status: http.StatusBadRequest, wantKind: Malformed, wantRetryable: false},
		"404 is malformed, terminal": {status: http.StatusNotFound, wantKind: Malformed, wantRetryable: false},
	}

	for name, test := range tests {
		test := test
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(test.status)
			}))
			defer ts.Close()

			c := clientFor(t, ts, "", 1000)
			err := c.Deliver(context.Background(), testPayload())

			var attemptErr *AttemptError
			require.ErrorAs(t, err, &attemptErr)
			assert.Equal(t, test.wantKind, attemptErr.Kind)
			assert.Equal(t, test.status, attemptErr.Status)
			assert.Equal(t, test.wantRetryable, attemptErr.Retryable())
		})
	}
}

func TestDeliverUnreachable(t *testing.T) {
	t.Parallel()

	// Reserve a port, then close the server so nothing listens there.
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	c := clientFor(t, ts, "", 500)
	ts.Close()

	err := c.Deliver(context.Background(), testPayload())

	var attemptErr *AttemptError
	require.ErrorAs(t, err, &attemptErr)
	assert.Equal(t, Unreachable, attemptErr.Kind)
	assert.True(t, attemptErr.Retryable())
}

func TestDeliverTimeout(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer func() {
		close(release)
		ts.Close()
	}()

	c := clientFor(t, ts, "", 50)
	start := time.Now()
	err := c.Deliver(context.Background(), testPayload())
	elapsed := time.Since(start)

	var attemptErr *AttemptError
	require.ErrorAs(t, err, &attemptErr)
	assert.Equal(t, Timeout, attemptErr.Kind)
	assert.True(t, attemptErr.Retryable())
	assert.Less(t, elapsed, time.Second, "attempt must be bounded by timeout_ms")
}

func TestPing(t *testing.T) {
	t.Parallel()

	t.Run("healthy listener", func(t *testing.T) {
		t.Parallel()
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, HealthPath, r.URL.Path)
			// Health requires no auth.
			assert.Empty(t, r.Header.Get("Authorization"))
			writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		}))
		defer ts.Close()

		res, err := clientFor(t, ts, "secret", 1000).Ping(context.Background())
		require.NoError(t, err)
		assert.True(t, res.OK)
		assert.Greater(t, res.Latency, time.Duration(0))
	})

	t.Run("unreachable listener", func(t *testing.T) {
		t.Parallel()
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		c := clientFor(t, ts, "", 200)
		ts.Close()

		res, err := c.Ping(context.Background())
		assert.Error(t, err)
		assert.False(t, res.OK)
	})
}
