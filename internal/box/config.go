package box

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/boxworks/gobox/internal/boxauth"
	"github.com/boxworks/gobox/internal/instrumentation"
)

const (
	// DefaultHost is the host the authorization listener binds to.
	DefaultHost = "localhost"

	// DefaultRequestTimeout bounds every resource request. Override via
	// Config.HTTPClient.
	DefaultRequestTimeout = 30 * time.Second
)

// Config holds the application credentials and listener settings for a
// Client running in standalone mode.
type Config struct {
	// ClientID and ClientSecret identify the Box application.
	ClientID     string
	ClientSecret string

	// Port is the local port the authorization listener binds to.
	Port int

	// Host is the local host for the authorization listener and the
	// redirect URI. Defaults to "localhost".
	Host string

	// RefreshToken, when set, is exchanged for an access token the first
	// time a Connection is created, so the application can start without
	// an interactive authorization round trip.
	RefreshToken string

	// TokenStore persists tokens across restarts. Optional; when nil,
	// tokens live only in memory.
	TokenStore boxauth.TokenStore

	// BaseURL overrides the Content API endpoint. Defaults to the public
	// Box API.
	BaseURL string

	// HTTPClient is used for resource requests. Defaults to a client with
	// DefaultRequestTimeout.
	HTTPClient *http.Client

	// Logger receives structured logs. Defaults to slog.Default().
	Logger *slog.Logger

	// Metrics receives API operation and token exchange metrics. Optional;
	// when nil a no-op recorder is used.
	Metrics *instrumentation.Metrics
}

// Validate checks the invariants for standalone mode.
func (c *Config) Validate() error {
	if c.ClientID == "" {
		return fmt.Errorf("client_id must not be empty")
	}
	if c.ClientSecret == "" {
		return fmt.Errorf("client_secret must not be empty")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("port must be in range 1-65535, got %d", c.Port)
	}
	return nil
}

// RedirectURL returns the OAuth redirect URI the listener serves.
func (c *Config) RedirectURL() string {
	host := c.Host
	if host == "" {
		host = DefaultHost
	}
	return fmt.Sprintf("http://%s:%d%s", host, c.Port, boxauth.CallbackPath)
}
