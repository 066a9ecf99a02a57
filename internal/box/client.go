package box

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"golang.org/x/oauth2"

	"github.com/boxworks/gobox/internal/boxauth"
	"github.com/boxworks/gobox/internal/instrumentation"
)

// Client is the root object for one set of application credentials. It owns
// the per-account connection registry and the authorization listener
// lifecycle. Construct one Client per application, then obtain per-account
// Connections via GetConnection.
type Client struct {
	cfg        Config
	oauth      *oauth2.Config
	httpClient *http.Client
	logger     *slog.Logger
	metrics    *instrumentation.Metrics
	baseURL    string
	store      boxauth.TokenStore
	delegated  bool

	mu       sync.Mutex
	conns    map[string]*Connection
	listener *boxauth.Listener

	startupRefresh sync.Once
}

// New creates a Client in standalone mode. The config must carry the
// application credentials and the local callback port.
func New(cfg Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return newClient(cfg, false), nil
}

// NewDelegated creates a Client for delegated-authentication mode: no local
// listener is started and no credentials are required up front. The
// integrating application routes the provider redirect to the handler
// returned by AuthCallbackHandler.
func NewDelegated(cfg Config) *Client {
	return newClient(cfg, true)
}

func newClient(cfg Config, delegated bool) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultRequestTimeout}
	}
	metrics := cfg.Metrics
	if metrics == nil {
		// The zero value records nothing.
		metrics = &instrumentation.Metrics{}
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &Client{
		cfg:        cfg,
		oauth:      boxauth.OAuthConfig(cfg.ClientID, cfg.ClientSecret, cfg.RedirectURL()),
		httpClient: httpClient,
		logger:     logger,
		metrics:    metrics,
		baseURL:    baseURL,
		store:      cfg.TokenStore,
		delegated:  delegated,
		conns:      make(map[string]*Connection),
	}
}

// GetConnection returns the Connection for the account, creating it on
// first use. The lookup is idempotent: for a given account id the same
// Connection instance is returned for the lifetime of the Client.
func (c *Client) GetConnection(account string) *Connection {
	c.mu.Lock()
	conn, ok := c.conns[account]
	if !ok {
		conn = newConnection(c, account)
		c.conns[account] = conn
	}
	c.mu.Unlock()

	if ok {
		return conn
	}

	conn.adoptStoredToken()

	// A configured refresh token seeds the first connection so standalone
	// applications can start without an interactive authorization. The
	// session is marked pending before GetConnection returns, so callers
	// that immediately wait on Ready never observe an unset session.
	if c.cfg.RefreshToken != "" {
		c.startupRefresh.Do(func() {
			if conn.session.beginExchange() {
				go conn.runRefresh(context.Background(), c.cfg.RefreshToken)
			}
		})
	}

	return conn
}

// StartServer starts the authorization listener on the configured
// host:port. Standalone mode only.
func (c *Client) StartServer() error {
	if c.delegated {
		return fmt.Errorf("authorization listener is not available in delegated mode")
	}

	c.mu.Lock()
	if c.listener == nil {
		host := c.cfg.Host
		if host == "" {
			host = DefaultHost
		}
		c.listener = boxauth.NewListener(host, c.cfg.Port, c.handleAuthCode, c.logger)
	}
	l := c.listener
	c.mu.Unlock()

	return l.Start()
}

// StopServer closes the authorization listener and force-closes any
// connections still open on it. Stopping a server that was never started
// is a no-op success, so callers can defer it unconditionally.
func (c *Client) StopServer(ctx context.Context) error {
	c.mu.Lock()
	l := c.listener
	c.mu.Unlock()

	if l == nil {
		return nil
	}
	return l.Stop(ctx)
}

// AuthCallbackHandler returns the HTTP handler that accepts the provider
// redirect. Delegated-mode integrations mount it on their own router; in
// standalone mode the listener serves it on the configured port.
func (c *Client) AuthCallbackHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		code := r.URL.Query().Get("code")
		if code == "" {
			http.Error(w, "missing authorization code", http.StatusBadRequest)
			return
		}
		if err := c.handleAuthCode(r.Context(), code, r.URL.Query().Get("state")); err != nil {
			http.Error(w, "token exchange failed", http.StatusInternalServerError)
			return
		}
		fmt.Fprintln(w, "authorization complete")
	})
}

// handleAuthCode routes an authorization code to the session the state
// parameter names. AuthURL puts the account id in state, so the redirect
// carries its own routing information.
func (c *Client) handleAuthCode(ctx context.Context, code, state string) error {
	account := state
	if account == "" {
		account = "default"
	}
	conn := c.GetConnection(account)
	return conn.exchangeCode(ctx, code)
}
