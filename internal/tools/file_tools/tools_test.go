package file_tools

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
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

func TestRegisterFileTools(t *testing.T) {
	for _, readOnly := range []bool{true, false} {
		s := mcpserver.NewMCPServer("test", "0.0.0", mcpserver.WithToolCapabilities(true))
		if err := RegisterFileTools(s, newTestServerContext(t), readOnly); err != nil {
			t.Fatalf("RegisterFileTools(readOnly=%v): %v", readOnly, err)
		}
	}
}

func TestFileInfoToolFetchesFile(t *testing.T) {
	var gotPath string
	apiSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"type":"file","id":"456","name":"report.pdf"}`))
	}))
	defer apiSrv.Close()

	s := mcpserver.NewMCPServer("test", "0.0.0", mcpserver.WithToolCapabilities(true))
	if err := RegisterFileTools(s, newAPIBackedServerContext(t, apiSrv.URL), true); err != nil {
		t.Fatalf("RegisterFileTools: %v", err)
	}

	msg, err := json.Marshal(map[string]interface{}{
		"jsonrpc": "2.0",
		"id":      1,
		"method":  "tools/call",
		"params": map[string]interface{}{
			"name":      "box_file_info",
			"arguments": map[string]interface{}{"fileId": "456"},
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
			Content []struct {
				Text string `json:"text"`
			} `json:"content"`
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
		t.Fatalf("unexpected error result: %+v", decoded.Result.Content)
	}
	if gotPath != "/files/456" {
		t.Errorf("path = %q", gotPath)
	}
	if len(decoded.Result.Content) == 0 || !strings.Contains(decoded.Result.Content[0].Text, "report.pdf") {
		t.Errorf("result does not contain the file: %+v", decoded.Result.Content)
	}
}
