package account_tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/boxworks/gobox/internal/server"
	"github.com/boxworks/gobox/internal/tools/common"
)

// RegisterAccountTools registers the Box account management tools with the
// MCP server. These are always available regardless of read-only mode.
func RegisterAccountTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	getAuthURLTool := mcp.NewTool("box_get_auth_url",
		mcp.WithDescription("Get the OAuth URL to authorize Box access for a specific account"),
		mcp.WithString("account",
			mcp.Description("Account email (default: 'default'). Used to manage multiple Box accounts."),
		),
	)
	s.AddTool(getAuthURLTool, common.InstrumentedToolHandler("box_get_auth_url", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleGetAuthURL(ctx, request, sc)
		}))

	useAccountTool := mcp.NewTool("box_use_account",
		mcp.WithDescription("Bind this session to a Box account, so subsequent tool calls that name no account use it"),
		mcp.WithString("account",
			mcp.Required(),
			mcp.Description("Account email to bind the session to"),
		),
	)
	s.AddTool(useAccountTool, common.InstrumentedToolHandler("box_use_account", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleUseAccount(ctx, request, sc)
		}))

	return nil
}

func handleGetAuthURL(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args, _ := request.Params.Arguments.(map[string]interface{})
	account := common.ResolveAccount(ctx, sc, args)

	authURL := sc.ConnectionForAccount(account).AuthURL()

	result := fmt.Sprintf(`To authorize Box access for account "%s":

1. Visit this URL in your browser:
   %s

2. Sign in with your Box account and grant access
3. The local callback listener completes the authorization automatically`, account, authURL)

	return mcp.NewToolResultText(result), nil
}

func handleUseAccount(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args, _ := request.Params.Arguments.(map[string]interface{})

	account, ok := args["account"].(string)
	if !ok || account == "" {
		return mcp.NewToolResultError("account is required"), nil
	}

	// Transports carry their own session id; embedded integrations without
	// one get a freshly minted session.
	var sessionID string
	if session := mcpserver.ClientSessionFromContext(ctx); session != nil {
		sessionID = session.SessionID()
		sc.Sessions().Bind(sessionID, account)
	} else {
		sessionID = sc.Sessions().Register(account)
	}

	return mcp.NewToolResultText(fmt.Sprintf("Session %s now uses account %q", sessionID, account)), nil
}
