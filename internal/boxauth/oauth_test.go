package boxauth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTokenEndpoint(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func TestOAuthConfigDefaults(t *testing.T) {
	conf := OAuthConfig("client-id", "client-secret", "http://localhost:9999/callback")
	assert.Equal(t, "client-id", conf.ClientID)
	assert.Equal(t, "client-secret", conf.ClientSecret)
	assert.Equal(t, "http://localhost:9999/callback", conf.RedirectURL)
	assert.Equal(t, Endpoint.AuthURL, conf.Endpoint.AuthURL)
	assert.Equal(t, Endpoint.TokenURL, conf.Endpoint.TokenURL)
}

func TestExchange(t *testing.T) {
	var gotGrantType, gotCode string
	srv := newTestTokenEndpoint(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		gotGrantType = r.FormValue("grant_type")
		gotCode = r.FormValue("code")
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token":  "at-1",
			"refresh_token": "rt-1",
			"token_type":    "bearer",
			"expires_in":    3600,
		})
	})

	conf := OAuthConfig("id", "secret", "http://localhost:9999/callback")
	conf.Endpoint.TokenURL = srv.URL

	tok, err := Exchange(context.Background(), conf, "auth-code")
	require.NoError(t, err)
	assert.Equal(t, "authorization_code", gotGrantType)
	assert.Equal(t, "auth-code", gotCode)
	assert.Equal(t, "at-1", tok.AccessToken)
	assert.Equal(t, "rt-1", tok.RefreshToken)
}

func TestExchangeFailure(t *testing.T) {
	srv := newTestTokenEndpoint(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid_grant"})
	})

	conf := OAuthConfig("id", "secret", "http://localhost:9999/callback")
	conf.Endpoint.TokenURL = srv.URL

	_, err := Exchange(context.Background(), conf, "bad-code")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to exchange auth code")
}

func TestRefreshRotatesToken(t *testing.T) {
	var gotGrantType, gotRefreshToken string
	srv := newTestTokenEndpoint(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		gotGrantType = r.FormValue("grant_type")
		gotRefreshToken = r.FormValue("refresh_token")
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token":  "at-2",
			"refresh_token": "rt-2",
			"token_type":    "bearer",
			"expires_in":    3600,
		})
	})

	conf := OAuthConfig("id", "secret", "http://localhost:9999/callback")
	conf.Endpoint.TokenURL = srv.URL

	tok, err := Refresh(context.Background(), conf, "rt-1")
	require.NoError(t, err)
	assert.Equal(t, "refresh_token", gotGrantType)
	assert.Equal(t, "rt-1", gotRefreshToken)
	assert.Equal(t, "at-2", tok.AccessToken)
	assert.Equal(t, "rt-2", tok.RefreshToken)
}

func TestRefreshKeepsTokenWhenResponseOmitsIt(t *testing.T) {
	srv := newTestTokenEndpoint(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token": "at-2",
			"token_type":   "bearer",
			"expires_in":   3600,
		})
	})

	conf := OAuthConfig("id", "secret", "http://localhost:9999/callback")
	conf.Endpoint.TokenURL = srv.URL

	tok, err := Refresh(context.Background(), conf, "rt-1")
	require.NoError(t, err)
	assert.Equal(t, "at-2", tok.AccessToken)
	assert.Equal(t, "rt-1", tok.RefreshToken, "the previous refresh token survives when the response omits one")
}

func TestRefreshRequiresToken(t *testing.T) {
	conf := OAuthConfig("id", "secret", "http://localhost:9999/callback")
	_, err := Refresh(context.Background(), conf, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no refresh token")
}
