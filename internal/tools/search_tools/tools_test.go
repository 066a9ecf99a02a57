package search_tools

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/boxworks/gobox/internal/box"
	"github.com/boxworks/gobox/internal/boxauth"
	"github.com/boxworks/gobox/internal/server"
)

func newTestServerContext(t *testing.T) *server.ServerContext {
	t.Helper()
	client, err := box.New(box.Config{
		ClientID:     "test-client",
		ClientSecret: "test-secret",
		Port:         9999,
	})
	if err != nil {
		t.Fatalf("box.New: %v", err)
	}
	return server.NewServerContext(context.Background(), client, nil, nil)
}

func newAPIBackedServerContext(t *testing.T, baseURL string) *server.ServerContext {
	t.Helper()
	store := boxauth.NewMemoryStore()
	if err := store.Save(context.Background(), "default", &boxauth.Token{
		AccessToken:  "test-access",
		RefreshToken: "test-refresh",
	}); err != nil {
		t.Fatalf("seed token store: %v", err)
	}
	client, err := box.New(box.Config{
		ClientID:     "test-client",
		ClientSecret: "test-secret",
		Port:         9999,
		BaseURL:      baseURL,
		TokenStore:   store,
	})
	if err != nil {
		t.Fatalf("box.New: %v", err)
	}
	return server.NewServerContext(context.Background(), client, nil, nil)
}

func TestRegisterSearchTools(t *testing.T) {
	for _, readOnly := range []bool{true, false} {
		s := mcpserver.NewMCPServer("test", "0.0.0", mcpserver.WithToolCapabilities(true))
		if err := RegisterSearchTools(s, newTestServerContext(t), readOnly); err != nil {
			t.Fatalf("RegisterSearchTools(readOnly=%v): %v", readOnly, err)
		}
	}
}

func TestSearchToolForwardsQueryParameters(t *testing.T) {
	var gotQuery url.Values
	apiSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"total_count":0,"entries":[]}`))
	}))
	defer apiSrv.Close()

	s := mcpserver.NewMCPServer("test", "0.0.0", mcpserver.WithToolCapabilities(true))
	if err := RegisterSearchTools(s, newAPIBackedServerContext(t, apiSrv.URL), true); err != nil {
		t.Fatalf("RegisterSearchTools: %v", err)
	}

	msg, err := json.Marshal(map[string]interface{}{
		"jsonrpc": "2.0",
		"id":      1,
		"method":  "tools/call",
		"params": map[string]interface{}{
			"name": "box_search",
			"arguments": map[string]interface{}{
				"query": "quarterly report",
				"type":  "file",
				"limit": 5,
			},
		},
	})
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}

	resp := s.HandleMessage(context.Background(), msg)
	data, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("marshal response: %v", err)
	}
	var decoded struct {
		Result struct {
			IsError bool `json:"isError"`
		} `json:"result"`
		Error *struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if decoded.Error != nil {
		t.Fatalf("tool call failed: %s", decoded.Error.Message)
	}
	if decoded.Result.IsError {
		t.Fatal("unexpected error result")
	}

	if got := gotQuery.Get("query"); got != "quarterly report" {
		t.Errorf("query = %q", got)
	}
	if got := gotQuery.Get("type"); got != "file" {
		t.Errorf("type = %q", got)
	}
	if got := gotQuery.Get("limit"); got != "5" {
		t.Errorf("limit = %q", got)
	}
}
