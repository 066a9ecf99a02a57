package search_tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/boxworks/gobox/internal/box"
	"github.com/boxworks/gobox/internal/server"
	"github.com/boxworks/gobox/internal/tools/common"
)

// RegisterSearchTools registers search and collaboration tools with the
// MCP server. Write tools are skipped in read-only mode.
func RegisterSearchTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	searchTool := mcp.NewTool("box_search",
		mcp.WithDescription("Search for content in a Box account"),
		mcp.WithString("account",
			mcp.Description("Account email (default: 'default')"),
		),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("The search query"),
		),
		mcp.WithString("type",
			mcp.Description("Restrict results to 'file', 'folder' or 'web_link'"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of results"),
		),
	)
	s.AddTool(searchTool, common.InstrumentedToolHandler("box_search", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args, _ := request.Params.Arguments.(map[string]interface{})
			conn := sc.ConnectionForAccount(common.ResolveAccount(ctx, sc, args))

			query, ok := args["query"].(string)
			if !ok || query == "" {
				return mcp.NewToolResultError("query is required"), nil
			}

			options := box.SearchOptions{}
			if itemType, ok := args["type"].(string); ok {
				options.Type = itemType
			}
			if limit, ok := args["limit"].(float64); ok {
				options.Limit = int(limit)
			}

			results, err := conn.Search(ctx, query, options)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("search failed: %v", err)), nil
			}
			return jsonResult(results)
		}))

	pendingTool := mcp.NewTool("box_pending_collaborations",
		mcp.WithDescription("List collaborations awaiting the current user's acceptance"),
		mcp.WithString("account",
			mcp.Description("Account email (default: 'default')"),
		),
	)
	s.AddTool(pendingTool, common.InstrumentedToolHandler("box_pending_collaborations", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args, _ := request.Params.Arguments.(map[string]interface{})
			conn := sc.ConnectionForAccount(common.ResolveAccount(ctx, sc, args))

			collabs, err := conn.PendingCollaborations(ctx)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("failed to list pending collaborations: %v", err)), nil
			}
			return jsonResult(collabs)
		}))

	if readOnly {
		return nil
	}

	createCollabTool := mcp.NewTool("box_create_collaboration",
		mcp.WithDescription("Invite a user to collaborate on a Box file or folder"),
		mcp.WithString("account",
			mcp.Description("Account email (default: 'default')"),
		),
		mcp.WithString("itemType",
			mcp.Required(),
			mcp.Description("The item type: 'file' or 'folder'"),
		),
		mcp.WithString("itemId",
			mcp.Required(),
			mcp.Description("The numeric ID of the item"),
		),
		mcp.WithString("login",
			mcp.Required(),
			mcp.Description("Email address of the user to invite"),
		),
		mcp.WithString("role",
			mcp.Required(),
			mcp.Description("The granted role, e.g. 'editor' or 'viewer'"),
		),
	)
	s.AddTool(createCollabTool, common.InstrumentedToolHandler("box_create_collaboration", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args, _ := request.Params.Arguments.(map[string]interface{})
			conn := sc.ConnectionForAccount(common.ResolveAccount(ctx, sc, args))

			params := box.CollaborationParams{}
			params.ItemType, _ = args["itemType"].(string)
			params.ItemID, _ = args["itemId"].(string)
			params.Login, _ = args["login"].(string)
			params.Role, _ = args["role"].(string)

			collab, err := conn.CreateCollaboration(ctx, params)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("failed to create collaboration: %v", err)), nil
			}
			return jsonResult(collab)
		}))

	deleteCollabTool := mcp.NewTool("box_delete_collaboration",
		mcp.WithDescription("Remove a collaboration from a Box item"),
		mcp.WithString("account",
			mcp.Description("Account email (default: 'default')"),
		),
		mcp.WithString("collaborationId",
			mcp.Required(),
			mcp.Description("The numeric ID of the collaboration"),
		),
	)
	s.AddTool(deleteCollabTool, common.InstrumentedToolHandler("box_delete_collaboration", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args, _ := request.Params.Arguments.(map[string]interface{})
			conn := sc.ConnectionForAccount(common.ResolveAccount(ctx, sc, args))

			collabID, _ := args["collaborationId"].(string)
			if err := conn.DeleteCollaboration(ctx, collabID); err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("failed to delete collaboration: %v", err)), nil
			}
			return mcp.NewToolResultText(fmt.Sprintf("collaboration %s removed", collabID)), nil
		}))

	return nil
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
