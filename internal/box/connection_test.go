package box

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boxworks/gobox/internal/boxauth"
)

func TestExchangePersistsTokenToStore(t *testing.T) {
	tokenSrv := newTokenServer(t, tokenResponse{AccessToken: "at-1", RefreshToken: "rt-1"})
	defer tokenSrv.Close()

	store := boxauth.NewMemoryStore()
	cfg := testConfig()
	cfg.TokenStore = store
	client, err := New(cfg)
	require.NoError(t, err)
	client.oauth.Endpoint.TokenURL = tokenSrv.URL

	conn := client.GetConnection("work")
	require.NoError(t, conn.exchangeCode(context.Background(), "auth-code"))

	saved, err := store.Load(context.Background(), "work")
	require.NoError(t, err)
	assert.Equal(t, "at-1", saved.AccessToken)
	assert.Equal(t, "rt-1", saved.RefreshToken)
}

func TestGetConnectionAdoptsStoredToken(t *testing.T) {
	store := boxauth.NewMemoryStore()
	require.NoError(t, store.Save(context.Background(), "work", &boxauth.Token{
		AccessToken:  "stored-access",
		RefreshToken: "stored-refresh",
	}))

	cfg := testConfig()
	cfg.TokenStore = store
	client, err := New(cfg)
	require.NoError(t, err)

	conn := client.GetConnection("work")
	assert.Equal(t, StateReady, conn.Session().State())
	assert.Equal(t, "stored-access", conn.Session().AccessToken())
	assert.Equal(t, "stored-refresh", conn.Session().RefreshToken())
}

func TestGetConnectionRefreshesRefreshOnlyStoredToken(t *testing.T) {
	tokenSrv := newCountingTokenServer(t, tokenResponse{AccessToken: "refreshed-access", RefreshToken: "rotated-refresh"})
	defer tokenSrv.Close()

	store := boxauth.NewMemoryStore()
	require.NoError(t, store.Save(context.Background(), "work", &boxauth.Token{
		RefreshToken: "stored-refresh",
	}))

	cfg := testConfig()
	cfg.TokenStore = store
	client, err := New(cfg)
	require.NoError(t, err)
	client.oauth.Endpoint.TokenURL = tokenSrv.URL

	conn := client.GetConnection("work")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, conn.Ready(ctx))
	assert.Equal(t, "refreshed-access", conn.Session().AccessToken())
	assert.Equal(t, "rotated-refresh", conn.Session().RefreshToken())
	assert.Equal(t, int64(1), tokenSrv.calls.Load())
}

func TestConfiguredRefreshTokenSeedsFirstConnection(t *testing.T) {
	tokenSrv := newCountingTokenServer(t, tokenResponse{AccessToken: "seeded-access", RefreshToken: "seeded-refresh"})
	defer tokenSrv.Close()

	cfg := testConfig()
	cfg.RefreshToken = "configured-refresh"
	client, err := New(cfg)
	require.NoError(t, err)
	client.oauth.Endpoint.TokenURL = tokenSrv.URL

	conn := client.GetConnection("default")
	assert.NotEqual(t, StateUnset, conn.Session().State(),
		"the startup refresh must mark the session pending before GetConnection returns")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, conn.Ready(ctx))
	assert.Equal(t, "seeded-access", conn.Session().AccessToken())

	// The startup refresh runs once, not per connection.
	client.GetConnection("other")
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int64(1), tokenSrv.calls.Load())
}

func TestExchangeCodeFailureFailsSession(t *testing.T) {
	tokenSrv := newTokenServer(t, tokenResponse{})
	tokenSrv.Close() // refuse connections

	client, err := New(testConfig())
	require.NoError(t, err)
	client.oauth.Endpoint.TokenURL = tokenSrv.URL

	conn := client.GetConnection("work")
	err = conn.exchangeCode(context.Background(), "auth-code")
	require.Error(t, err)

	var authErr *AuthError
	assert.ErrorAs(t, err, &authErr)
	assert.Equal(t, StateError, conn.Session().State())

	readyErr := conn.Ready(context.Background())
	assert.ErrorAs(t, readyErr, &authErr)
}
