package server

import (
	"context"
	"log/slog"

	"github.com/boxworks/gobox/internal/box"
	"github.com/boxworks/gobox/internal/instrumentation"
)

// ServerContext holds the shared state for the MCP server: the Box client
// whose connection registry backs every tool call, the metrics recorder,
// and the shutdown lifecycle.
type ServerContext struct {
	ctx      context.Context
	cancel   context.CancelFunc
	client   *box.Client
	metrics  *instrumentation.Metrics
	logger   *slog.Logger
	sessions *SessionIDManager
}

// NewServerContext creates a server context around an existing Box client.
func NewServerContext(ctx context.Context, client *box.Client, metrics *instrumentation.Metrics, logger *slog.Logger) *ServerContext {
	if metrics == nil {
		metrics = &instrumentation.Metrics{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	shutdownCtx, cancel := context.WithCancel(ctx)
	return &ServerContext{
		ctx:      shutdownCtx,
		cancel:   cancel,
		client:   client,
		metrics:  metrics,
		logger:   logger,
		sessions: NewSessionIDManager(),
	}
}

// Context returns the server's shutdown context.
func (sc *ServerContext) Context() context.Context {
	return sc.ctx
}

// Client returns the Box client.
func (sc *ServerContext) Client() *box.Client {
	return sc.client
}

// ConnectionForAccount returns the per-account connection. The Box client
// guarantees identity-stable lookup, so tools can call this freely.
func (sc *ServerContext) ConnectionForAccount(account string) *box.Connection {
	return sc.client.GetConnection(account)
}

// Sessions returns the transport session registry. Never nil.
func (sc *ServerContext) Sessions() *SessionIDManager {
	return sc.sessions
}

// Metrics returns the metrics recorder. Never nil.
func (sc *ServerContext) Metrics() *instrumentation.Metrics {
	return sc.metrics
}

// Logger returns the server logger.
func (sc *ServerContext) Logger() *slog.Logger {
	return sc.logger
}

// Shutdown cancels the server context and stops the authorization listener.
func (sc *ServerContext) Shutdown(ctx context.Context) error {
	sc.cancel()
	return sc.client.StopServer(ctx)
}

// IsShutdown reports whether Shutdown has been called.
func (sc *ServerContext) IsShutdown() bool {
	return sc.ctx.Err() != nil
}
