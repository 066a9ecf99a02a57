package boxauth

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"
)

// CallbackPath is the route the provider redirects to after authorization.
const CallbackPath = "/callback"

// CodeHandler receives the authorization code and the opaque state value
// from the provider redirect. The returned error controls the page shown
// to the user's browser.
type CodeHandler func(ctx context.Context, code, state string) error

// Listener is the short-lived local HTTP endpoint that captures the OAuth
// redirect. Every accepted connection is tracked so Stop can force-close
// clients that are still mid-request.
type Listener struct {
	addr    string
	handler CodeHandler
	logger  *slog.Logger

	mu      sync.Mutex
	srv     *http.Server
	ln      net.Listener
	conns   map[net.Conn]struct{}
	started bool
}

// NewListener creates a listener bound to host:port. It does not bind until
// Start is called.
func NewListener(host string, port int, handler CodeHandler, logger *slog.Logger) *Listener {
	if logger == nil {
		logger = slog.Default()
	}
	return &Listener{
		addr:    fmt.Sprintf("%s:%d", host, port),
		handler: handler,
		logger:  logger,
		conns:   make(map[net.Conn]struct{}),
	}
}

// Start binds the local address and begins serving the callback route.
// Bind errors are returned synchronously; serving happens in a background
// goroutine until Stop is called.
func (l *Listener) Start() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.started {
		return fmt.Errorf("listener already started on %s", l.addr)
	}

	ln, err := net.Listen("tcp", l.addr)
	if err != nil {
		return fmt.Errorf("failed to bind %s: %w", l.addr, err)
	}

	mux := http.NewServeMux()
	mux.HandleFunc(CallbackPath, l.handleCallback)

	l.srv = &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
		ConnState: func(conn net.Conn, state http.ConnState) {
			l.mu.Lock()
			defer l.mu.Unlock()
			switch state {
			case http.StateNew:
				l.conns[conn] = struct{}{}
			case http.StateClosed, http.StateHijacked:
				delete(l.conns, conn)
			}
		},
	}
	l.ln = ln
	l.started = true

	srv := l.srv
	go func() {
		if serveErr := srv.Serve(ln); serveErr != nil && serveErr != http.ErrServerClosed {
			l.logger.Error("authorization listener stopped", "addr", l.addr, "error", serveErr)
		}
	}()

	l.logger.Info("authorization listener started", "addr", l.addr)
	return nil
}

// Stop closes the server and destroys every tracked connection. Calling
// Stop on a listener that was never started is a no-op success. Close is
// immediate, so an already-done ctx does not fail a completed stop.
func (l *Listener) Stop(ctx context.Context) error {
	l.mu.Lock()
	if !l.started {
		l.mu.Unlock()
		return nil
	}
	srv := l.srv
	conns := make([]net.Conn, 0, len(l.conns))
	for conn := range l.conns {
		conns = append(conns, conn)
	}
	l.conns = make(map[net.Conn]struct{})
	l.started = false
	l.srv = nil
	l.ln = nil
	l.mu.Unlock()

	err := srv.Close()
	for _, conn := range conns {
		_ = conn.Close()
	}
	if err != nil {
		return fmt.Errorf("failed to close authorization listener: %w", err)
	}
	l.logger.Info("authorization listener stopped", "addr", l.addr)
	return nil
}

// Addr returns the bound address, or "" when the listener is not running.
// It differs from the configured address when port 0 was requested.
func (l *Listener) Addr() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.ln == nil {
		return ""
	}
	return l.ln.Addr().String()
}

// Running reports whether the listener is currently serving.
func (l *Listener) Running() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.started
}

func (l *Listener) handleCallback(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	if errCode := query.Get("error"); errCode != "" {
		l.logger.Warn("authorization denied by provider",
			"error", errCode, "description", query.Get("error_description"))
		writePage(w, http.StatusBadRequest, "Authorization failed",
			fmt.Sprintf("The provider reported: %s", errCode))
		return
	}

	code := query.Get("code")
	if code == "" {
		writePage(w, http.StatusBadRequest, "Authorization failed",
			"The redirect did not contain an authorization code.")
		return
	}

	if err := l.handler(r.Context(), code, query.Get("state")); err != nil {
		l.logger.Error("token exchange failed", "error", err)
		writePage(w, http.StatusInternalServerError, "Authorization failed",
			"The authorization code could not be exchanged for tokens.")
		return
	}

	writePage(w, http.StatusOK, "Authorization complete",
		"You can close this window and return to the application.")
}

func writePage(w http.ResponseWriter, status int, title, message string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	fmt.Fprintf(w, "<!DOCTYPE html><html><head><title>%s</title></head><body><h1>%s</h1><p>%s</p></body></html>",
		title, title, message)
}
