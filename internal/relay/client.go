package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"wakedev/internal/config"
)

// FailureKind classifies one failed delivery attempt.
type FailureKind int

const (
	// AuthRejected covers 401/403 responses. Terminal, never retried.
	AuthRejected FailureKind = iota
	// Unreachable covers refused/unroutable connections. Retryable.
	Unreachable
	// Timeout covers attempts that exceeded the configured bound. Retryable.
	Timeout
	// ServerError covers 5xx responses. Retryable.
	ServerError
	// Malformed covers non-auth 4xx responses. Terminal.
	Malformed
)

// String returns the failure kind name used in logs and reports.
func (k FailureKind) String() string {
	switch k {
	case AuthRejected:
		return "auth_rejected"
	case Unreachable:
		return "unreachable"
	case Timeout:
		return "timeout"
	case ServerError:
		return "server_error"
	case Malformed:
		return "malformed"
	default:
		return "unknown"
	}
}

// AttemptError is the outcome of a single failed round trip.
type AttemptError struct {
	Kind   FailureKind
	Status int
	Err    error
}

// Error implements the error interface.
func (e *AttemptError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("remote delivery failed (%s, status %d)", e.Kind, e.Status)
	}
	return fmt.Sprintf("remote delivery failed (%s): %v", e.Kind, e.Err)
}

// Unwrap exposes the underlying transport error.
func (e *AttemptError) Unwrap() error { return e.Err }

// Retryable reports whether the pipeline may retry after this failure.
func (e *AttemptError) Retryable() bool {
	switch e.Kind {
	case Unreachable, Timeout, ServerError:
		return true
	default:
		return false
	}
}

// Client posts relay payloads to a remote listener. One Deliver call is
// exactly one network round trip; the delivery pipeline owns retries.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
}

// NewClient creates a transport client for the configured remote listener.
// Every attempt is bounded by the configured timeout.
func NewClient(cfg config.RemoteConfig) *Client {
	port := cfg.Port
	if port == 0 {
		port = config.DefaultPort
	}
	timeout := cfg.Timeout()
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    fmt.Sprintf("http://%s", net.JoinHostPort(cfg.Host, fmt.Sprintf("%d", port))),
		token:      cfg.Token,
	}
}

// BaseURL returns the listener URL the client targets.
func (c *Client) BaseURL() string { return c.baseURL }

// Deliver posts the payload to the listener's notify endpoint. A nil return
// means the listener accepted the notification for local display. Failures
// come back as *AttemptError for classification by the caller.
func (c *Client) Deliver(ctx context.Context, payload Payload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return &AttemptError{Kind: Malformed, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+NotifyPath, bytes.NewReader(body))
	if err != nil {
		return &AttemptError{Kind: Malformed, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return classifyTransportError(err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))

	switch {
	case resp.StatusCode == http.StatusOK:
		return nil
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return &AttemptError{Kind: AuthRejected, Status: resp.StatusCode}
	case resp.StatusCode >= 500:
		return &AttemptError{Kind: ServerError, Status: resp.StatusCode}
	default:
		return &AttemptError{Kind: Malformed, Status: resp.StatusCode}
	}
}

// PingResult is the outcome of a listener health check.
type PingResult struct {
	OK      bool
	Latency time.Duration
}

// Ping issues a bare health check against the listener. It never
// participates in retry or fallback accounting.
func (c *Client) Ping(ctx context.Context) (PingResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+HealthPath, nil)
	if err != nil {
		return PingResult{}, err
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(start)
	if err != nil {
		return PingResult{Latency: latency}, classifyTransportError(err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))

	if resp.StatusCode != http.StatusOK {
		return PingResult{Latency: latency}, &AttemptError{Kind: ServerError, Status: resp.StatusCode}
	}
	return PingResult{OK: true, Latency: latency}, nil
}

// classifyTransportError separates timeouts from unreachable targets.
func classifyTransportError(err error) *AttemptError {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &AttemptError{Kind: Timeout, Err: err}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return &AttemptError{Kind: Timeout, Err: err}
	}
	return &AttemptError{Kind: Unreachable, Err: err}
}
