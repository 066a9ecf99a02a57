package common

import (
	"context"
	"errors"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/boxworks/gobox/internal/server"
)

// errToolResult marks handlers that returned an error result without a Go
// error, so the failure still lands in the metrics.
var errToolResult = errors.New("tool returned error result")

// DefaultAccount is used when a request names no account.
const DefaultAccount = "default"

// ResolveAccount determines which account a tool call targets. An explicit
// account argument wins; otherwise the transport session's binding applies
// (set via the box_use_account tool), then DefaultAccount. Box accounts are
// identified by email.
func ResolveAccount(ctx context.Context, sc *server.ServerContext, args map[string]interface{}) string {
	if accountVal, ok := args["account"].(string); ok && accountVal != "" {
		return accountVal
	}
	if session := mcpserver.ClientSessionFromContext(ctx); session != nil {
		if account, ok := sc.Sessions().Account(session.SessionID()); ok {
			return account
		}
	}
	return DefaultAccount
}

// InstrumentedToolHandler wraps a tool handler with invocation metrics.
//
// Usage:
//
//	s.AddTool(myTool, common.InstrumentedToolHandler("my_tool", sc, handler))
func InstrumentedToolHandler(
	toolName string,
	sc *server.ServerContext,
	handler func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error),
) func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		start := time.Now()
		result, err := handler(ctx, request)
		duration := time.Since(start)

		recordErr := err
		if recordErr == nil && result != nil && result.IsError {
			recordErr = errToolResult
		}
		sc.Metrics().RecordToolInvocation(ctx, toolName, duration, recordErr)

		return result, err
	}
}
