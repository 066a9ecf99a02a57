package account_tools

import (
	"context"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/boxworks/gobox/internal/box"
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

type fakeSession struct {
	id          string
	notif       chan mcp.JSONRPCNotification
	initialized bool
}

func (s *fakeSession) SessionID() string { return s.id }
func (s *fakeSession) NotificationChannel() chan<- mcp.JSONRPCNotification {
	return s.notif
}
func (s *fakeSession) Initialize()       { s.initialized = true }
func (s *fakeSession) Initialized() bool { return s.initialized }

func callRequest(args map[string]interface{}) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if result == nil || len(result.Content) == 0 {
		t.Fatal("expected a result with content")
	}
	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("expected text content, got %T", result.Content[0])
	}
	return text.Text
}

func TestRegisterAccountTools(t *testing.T) {
	s := mcpserver.NewMCPServer("test", "0.0.0", mcpserver.WithToolCapabilities(true))
	if err := RegisterAccountTools(s, newTestServerContext(t)); err != nil {
		t.Fatalf("RegisterAccountTools: %v", err)
	}
}

func TestUseAccountBindsTransportSession(t *testing.T) {
	sc := newTestServerContext(t)
	srv := mcpserver.NewMCPServer("test", "0.0.0")
	ctx := srv.WithContext(context.Background(), &fakeSession{
		id:    "sess-1",
		notif: make(chan mcp.JSONRPCNotification, 1),
	})

	result, err := handleUseAccount(ctx, callRequest(map[string]interface{}{"account": "work@example.com"}), sc)
	if err != nil {
		t.Fatalf("handleUseAccount: %v", err)
	}
	if result.IsError {
		t.Fatalf("unexpected error result: %s", resultText(t, result))
	}

	account, ok := sc.Sessions().Account("sess-1")
	if !ok || account != "work@example.com" {
		t.Errorf("session binding = %q, %v; want work@example.com", account, ok)
	}
}

func TestUseAccountMintsSessionWithoutTransport(t *testing.T) {
	sc := newTestServerContext(t)

	result, err := handleUseAccount(context.Background(), callRequest(map[string]interface{}{"account": "work@example.com"}), sc)
	if err != nil {
		t.Fatalf("handleUseAccount: %v", err)
	}
	if result.IsError {
		t.Fatalf("unexpected error result: %s", resultText(t, result))
	}

	if sc.Sessions().Len() != 1 {
		t.Fatalf("expected one registered session, got %d", sc.Sessions().Len())
	}
	if !strings.Contains(resultText(t, result), "work@example.com") {
		t.Error("expected the result to name the bound account")
	}
}

func TestUseAccountRequiresAccount(t *testing.T) {
	sc := newTestServerContext(t)

	result, err := handleUseAccount(context.Background(), callRequest(nil), sc)
	if err != nil {
		t.Fatalf("handleUseAccount: %v", err)
	}
	if !result.IsError {
		t.Error("expected an error result for a missing account")
	}
}

func TestGetAuthURLUsesSessionBinding(t *testing.T) {
	sc := newTestServerContext(t)
	srv := mcpserver.NewMCPServer("test", "0.0.0")
	ctx := srv.WithContext(context.Background(), &fakeSession{
		id:    "sess-1",
		notif: make(chan mcp.JSONRPCNotification, 1),
	})
	sc.Sessions().Bind("sess-1", "work@example.com")

	result, err := handleGetAuthURL(ctx, callRequest(nil), sc)
	if err != nil {
		t.Fatalf("handleGetAuthURL: %v", err)
	}

	text := resultText(t, result)
	if !strings.Contains(text, "client_id=test-client") {
		t.Errorf("auth URL missing client id: %s", text)
	}
	if !strings.Contains(text, "state=work%40example.com") {
		t.Errorf("auth URL missing account state: %s", text)
	}
}
