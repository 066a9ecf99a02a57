package box

import (
	"context"
	"errors"

	"github.com/boxworks/gobox/internal/boxauth"
	"github.com/boxworks/gobox/internal/instrumentation"
)

// Connection is the per-account handle through which resource operations
// are invoked. It owns the account's Session; all resource methods funnel
// through the shared request dispatch in request.go.
type Connection struct {
	client  *Client
	session *Session
}

func newConnection(c *Client, account string) *Connection {
	return &Connection{
		client:  c,
		session: newSession(account),
	}
}

// Account returns the account id this connection is bound to.
func (conn *Connection) Account() string {
	return conn.session.Account()
}

// Session exposes the connection's token state.
func (conn *Connection) Session() *Session {
	return conn.session
}

// AuthURL returns the provider authorization URL for this account. The
// construction is deterministic for a given configuration; the account id
// travels in the state parameter so the redirect can be routed back to
// this connection.
func (conn *Connection) AuthURL() string {
	return conn.client.oauth.AuthCodeURL(conn.session.Account())
}

// Ready blocks until the session holds a usable access token, or returns
// the exchange error if authorization failed. Resource methods call this
// internally; callers only need it to sequence work after authorization.
func (conn *Connection) Ready(ctx context.Context) error {
	return conn.session.Ready(ctx)
}

// exchangeCode trades an authorization code for tokens and readies the
// session. A second code arriving while an exchange is pending is dropped
// in favor of the in-flight one.
func (conn *Connection) exchangeCode(ctx context.Context, code string) error {
	if !conn.session.beginExchange() {
		return conn.session.Ready(ctx)
	}

	tok, err := boxauth.Exchange(ctx, conn.client.oauth, code)
	conn.client.metrics.RecordOAuthExchange(ctx, instrumentation.GrantAuthorizationCode, err)
	if err != nil {
		authErr := &AuthError{Op: "authorization code exchange", Err: err}
		conn.session.fail(authErr)
		conn.client.logger.Warn("authorization failed",
			"account", conn.session.Account(), "error", err)
		return authErr
	}

	conn.applyToken(ctx, tok)
	conn.client.logger.Info("authorization complete", "account", conn.session.Account())
	return nil
}

// refreshAndWait refreshes the session's access token, used by the dispatch
// path after an expired-token response. If another exchange is already in
// flight the call queues behind it instead of starting a parallel one.
func (conn *Connection) refreshAndWait(ctx context.Context) error {
	refreshToken, ok := conn.session.beginRefresh()
	if !ok {
		return conn.session.Ready(ctx)
	}
	return conn.runRefresh(ctx, refreshToken)
}

func (conn *Connection) runRefresh(ctx context.Context, refreshToken string) error {
	tok, err := boxauth.Refresh(ctx, conn.client.oauth, refreshToken)
	conn.client.metrics.RecordOAuthExchange(ctx, instrumentation.GrantRefreshToken, err)
	if err != nil {
		authErr := &AuthError{Op: "token refresh", Err: err}
		conn.session.fail(authErr)
		conn.client.logger.Warn("token refresh failed",
			"account", conn.session.Account(), "error", err)
		return authErr
	}

	conn.applyToken(ctx, tok)
	conn.client.logger.Debug("token refreshed", "account", conn.session.Account())
	return nil
}

// applyToken stores the exchange result on the session and persists it when
// a token store is configured.
func (conn *Connection) applyToken(ctx context.Context, tok *boxauth.Token) {
	conn.session.setTokens(tok.AccessToken, tok.RefreshToken)

	if conn.client.store != nil {
		if err := conn.client.store.Save(ctx, conn.session.Account(), tok); err != nil {
			conn.client.logger.Warn("failed to persist token",
				"account", conn.session.Account(), "error", err)
		}
	}
}

// adoptStoredToken seeds a fresh connection from the token store, so a
// restarted process resumes without re-authorizing. A stale access token is
// recovered by the dispatch path's refresh-and-retry.
func (conn *Connection) adoptStoredToken() {
	if conn.client.store == nil {
		return
	}

	tok, err := conn.client.store.Load(context.Background(), conn.session.Account())
	if err != nil {
		if !errors.Is(err, boxauth.ErrTokenNotFound) {
			conn.client.logger.Warn("failed to load stored token",
				"account", conn.session.Account(), "error", err)
		}
		return
	}
	if tok.AccessToken == "" {
		// Only a refresh token survived; run a refresh in the background.
		if conn.session.beginExchange() {
			go conn.runRefresh(context.Background(), tok.RefreshToken)
		}
		return
	}
	conn.session.setTokens(tok.AccessToken, tok.RefreshToken)
}
