package box

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
}

// newTokenServer serves the OAuth token endpoint with a fixed response.
func newTokenServer(t *testing.T, resp tokenResponse) *httptest.Server {
	t.Helper()
	if resp.TokenType == "" {
		resp.TokenType = "bearer"
	}
	if resp.ExpiresIn == 0 {
		resp.ExpiresIn = 3600
	}
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
}

// countingTokenServer counts refresh calls and hands out sequenced tokens.
type countingTokenServer struct {
	*httptest.Server
	calls atomic.Int64
}

func newCountingTokenServer(t *testing.T, resp tokenResponse) *countingTokenServer {
	t.Helper()
	if resp.TokenType == "" {
		resp.TokenType = "bearer"
	}
	if resp.ExpiresIn == 0 {
		resp.ExpiresIn = 3600
	}
	cts := &countingTokenServer{}
	cts.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cts.calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
	return cts
}

// readyTestConn returns a connection with a ready session pointed at the
// given API and token servers.
func readyTestConn(t *testing.T, apiURL, tokenURL string) *Connection {
	t.Helper()
	client, err := New(testConfig())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	client.baseURL = apiURL
	if tokenURL != "" {
		client.oauth.Endpoint.TokenURL = tokenURL
	}
	conn := client.GetConnection("default")
	conn.session.setTokens("initial-access", "initial-refresh")
	return conn
}
