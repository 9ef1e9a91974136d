package relay

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"wakedev/internal/config"
	"wakedev/internal/notification"
)

// maxBodySize bounds inbound notify payloads.
const maxBodySize = 64 * 1024

// ForwardFunc hands an accepted payload to the local delivery pipeline.
// It must return quickly; long-lived click waits belong to detached
// watchers, not to the request handler.
type ForwardFunc func(ctx context.Context, payload Payload) error

// Server is the relay listener. Its configuration is read-only after
// construction, so concurrent requests share it without locking.
type Server struct {
	cfg          config.ListenerConfig
	forward      ForwardFunc
	log          zerolog.Logger
	defaultClick string
}

// NewServer creates a listener server. defaultClick is the click action
// substituted into forwarded notifications that carry none; typically
// "<wakedev binary> focus".
func NewServer(cfg config.ListenerConfig, forward ForwardFunc, defaultClick string, log zerolog.Logger) *Server {
	return &Server{
		cfg:          cfg,
		forward:      forward,
		log:          log,
		defaultClick: defaultClick,
	}
}

// Handler returns the HTTP handler exposing the notify and health endpoints.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(NotifyPath, s.handleNotify)
	mux.HandleFunc(HealthPath, s.handleHealth)
	return mux
}

// ListenAndServe runs the listener until ctx is done, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr(),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", srv.Addr).Msg("listener started")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.log.Info().Msg("listener shutting down")
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleNotify(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	// Allowlist runs before body parsing and independent of token validity,
	// so disallowed hosts cost as little as possible.
	remote := remoteHost(r.RemoteAddr)
	if !s.hostAllowed(remote) {
		s.log.Warn().Str("remote", remote).Msg("rejected: host not allowlisted")
		writeJSON(w, http.StatusForbidden, map[string]string{"error": "host not allowed"})
		return
	}

	if s.cfg.RequireToken {
		if !s.tokenValid(r) {
			s.log.Warn().Str("remote", remote).Msg("rejected: invalid or missing token")
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid token"})
			return
		}
	}

	var payload Payload
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		s.log.Warn().Str("remote", remote).Err(err).Msg("rejected: malformed payload")
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "malformed payload"})
		return
	}
	if payload.Notification.Title == "" && payload.Notification.Message == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "empty notification"})
		return
	}

	decorated := s.decorate(payload)

	s.log.Info().
		Str("id", decorated.Notification.ID).
		Str("origin_host", payload.Context.OriginHost).
		Str("origin_user", payload.Context.OriginUser).
		Str("title", decorated.Notification.Title).
		Msg("notification accepted")

	// Acknowledgment means "accepted for local display", not "displayed".
	// A display failure past this point is a logged divergence, never a
	// retracted ack.
	writeJSON(w, http.StatusOK, map[string]bool{"received": true})

	// The request context dies with the client connection; the accepted
	// notification must not.
	if err := s.forward(context.WithoutCancel(r.Context()), decorated); err != nil {
		s.log.Error().
			Str("id", decorated.Notification.ID).
			Err(err).
			Msg("local display failed after ack")
	}
}

// decorate applies listener-side rewrites to an accepted payload: the
// origin-host title prefix, and the local click-action substitution.
func (s *Server) decorate(payload Payload) Payload {
	n := payload.Notification

	if s.cfg.PrefixHostname && payload.Context.OriginHost != "" {
		n.Title = fmt.Sprintf("[%s] %s", payload.Context.OriginHost, n.Title)
	}

	// A remote-supplied click action would run against a terminal/tmux
	// context that does not exist on this host. Unless the sender supplied
	// an explicit action, substitute the local restore-focus action.
	if n.OnClick == "" {
		if s.cfg.OnClick != "" {
			n.OnClick = s.cfg.OnClick
		} else {
			n.OnClick = s.defaultClick
		}
	}

	// Clicks on forwarded notifications resolve in a detached watcher; the
	// request handler never blocks on user interaction.
	if n.OnClick != "" {
		n.Wait = notification.WaitBackground
	} else {
		n.Wait = notification.WaitNone
	}

	payload.Notification = n
	return payload
}

// tokenValid compares the presented token against the configured one in
// constant time. Missing configuration fails closed when require_token is
// set.
func (s *Server) tokenValid(r *http.Request) bool {
	if s.cfg.Token == "" {
		return false
	}
	presented := bearerToken(r)
	if presented == "" {
		presented = r.Header.Get(TokenHeader)
	}
	if presented == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(presented), []byte(s.cfg.Token)) == 1
}

// bearerToken extracts the token from an Authorization: Bearer header.
func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(auth) > len(prefix) && strings.EqualFold(auth[:len(prefix)], prefix) {
		return auth[len(prefix):]
	}
	return ""
}

// hostAllowed checks the remote address against the allowlist. An empty
// allowlist admits every host.
func (s *Server) hostAllowed(remote string) bool {
	if len(s.cfg.AllowHosts) == 0 {
		return true
	}
	for _, allowed := range s.cfg.AllowHosts {
		if remote == allowed {
			return true
		}
	}
	return false
}

// remoteHost strips the port from a request's RemoteAddr.
func remoteHost(addr string) string {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		return addr
	}
	return host
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
