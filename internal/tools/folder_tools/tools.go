package folder_tools

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

// RegisterFolderTools registers folder and trash tools with the MCP server.
// Write tools are skipped in read-only mode.
func RegisterFolderTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	registerReadTools(s, sc)
	if !readOnly {
		registerWriteTools(s, sc)
	}
	return nil
}

func registerReadTools(s *mcpserver.MCPServer, sc *server.ServerContext) {
	folderInfoTool := mcp.NewTool("box_folder_info",
		mcp.WithDescription("Get metadata for a Box folder. Folder ID 0 is the root folder."),
		mcp.WithString("account",
			mcp.Description("Account email (default: 'default'). Used to manage multiple Box accounts."),
		),
		mcp.WithString("folderId",
			mcp.Required(),
			mcp.Description("The numeric ID of the folder"),
		),
	)
	s.AddTool(folderInfoTool, common.InstrumentedToolHandler("box_folder_info", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args, _ := request.Params.Arguments.(map[string]interface{})
			conn := sc.ConnectionForAccount(common.ResolveAccount(ctx, sc, args))

			folderID, ok := args["folderId"].(string)
			if !ok || folderID == "" {
				return mcp.NewToolResultError("folderId is required"), nil
			}

			folder, err := conn.FolderInfo(ctx, folderID)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("failed to get folder info: %v", err)), nil
			}
			return jsonResult(folder)
		}))

	folderItemsTool := mcp.NewTool("box_folder_items",
		mcp.WithDescription("List the items in a Box folder"),
		mcp.WithString("account",
			mcp.Description("Account email (default: 'default')"),
		),
		mcp.WithString("folderId",
			mcp.Required(),
			mcp.Description("The numeric ID of the folder"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of items to return"),
		),
		mcp.WithNumber("offset",
			mcp.Description("Paging offset"),
		),
	)
	s.AddTool(folderItemsTool, common.InstrumentedToolHandler("box_folder_items", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args, _ := request.Params.Arguments.(map[string]interface{})
			conn := sc.ConnectionForAccount(common.ResolveAccount(ctx, sc, args))

			folderID, ok := args["folderId"].(string)
			if !ok || folderID == "" {
				return mcp.NewToolResultError("folderId is required"), nil
			}

			options := box.ItemOptions{}
			if limit, ok := args["limit"].(float64); ok {
				options.Limit = int(limit)
			}
			if offset, ok := args["offset"].(float64); ok {
				options.Offset = int(offset)
			}

			items, err := conn.FolderItems(ctx, folderID, options)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("failed to list folder items: %v", err)), nil
			}
			return jsonResult(items)
		}))

	trashedItemsTool := mcp.NewTool("box_trashed_items",
		mcp.WithDescription("List items currently in the Box trash"),
		mcp.WithString("account",
			mcp.Description("Account email (default: 'default')"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of items to return"),
		),
		mcp.WithNumber("offset",
			mcp.Description("Paging offset"),
		),
	)
	s.AddTool(trashedItemsTool, common.InstrumentedToolHandler("box_trashed_items", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args, _ := request.Params.Arguments.(map[string]interface{})
			conn := sc.ConnectionForAccount(common.ResolveAccount(ctx, sc, args))

			options := box.ItemOptions{}
			if limit, ok := args["limit"].(float64); ok {
				options.Limit = int(limit)
			}
			if offset, ok := args["offset"].(float64); ok {
				options.Offset = int(offset)
			}

			items, err := conn.TrashedItems(ctx, options)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("failed to list trashed items: %v", err)), nil
			}
			return jsonResult(items)
		}))

	folderCollaborationsTool := mcp.NewTool("box_folder_collaborations",
		mcp.WithDescription("List the collaborations on a Box folder"),
		mcp.WithString("account",
			mcp.Description("Account email (default: 'default')"),
		),
		mcp.WithString("folderId",
			mcp.Required(),
			mcp.Description("The numeric ID of the folder"),
		),
	)
	s.AddTool(folderCollaborationsTool, common.InstrumentedToolHandler("box_folder_collaborations", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args, _ := request.Params.Arguments.(map[string]interface{})
			conn := sc.ConnectionForAccount(common.ResolveAccount(ctx, sc, args))

			folderID, ok := args["folderId"].(string)
			if !ok || folderID == "" {
				return mcp.NewToolResultError("folderId is required"), nil
			}

			collabs, err := conn.FolderCollaborations(ctx, folderID)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("failed to list collaborations: %v", err)), nil
			}
			return jsonResult(collabs)
		}))
}

func registerWriteTools(s *mcpserver.MCPServer, sc *server.ServerContext) {
	createFolderTool := mcp.NewTool("box_create_folder",
		mcp.WithDescription("Create a folder in Box"),
		mcp.WithString("account",
			mcp.Description("Account email (default: 'default')"),
		),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("The name of the new folder"),
		),
		mcp.WithString("parentId",
			mcp.Required(),
			mcp.Description("The numeric ID of the parent folder (0 for root)"),
		),
	)
	s.AddTool(createFolderTool, common.InstrumentedToolHandler("box_create_folder", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args, _ := request.Params.Arguments.(map[string]interface{})
			conn := sc.ConnectionForAccount(common.ResolveAccount(ctx, sc, args))

			name, _ := args["name"].(string)
			parentID, _ := args["parentId"].(string)

			folder, err := conn.CreateFolder(ctx, name, parentID)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("failed to create folder: %v", err)), nil
			}
			return jsonResult(folder)
		}))

	deleteFolderTool := mcp.NewTool("box_delete_folder",
		mcp.WithDescription("Move a Box folder to the trash"),
		mcp.WithString("account",
			mcp.Description("Account email (default: 'default')"),
		),
		mcp.WithString("folderId",
			mcp.Required(),
			mcp.Description("The numeric ID of the folder"),
		),
		mcp.WithBoolean("recursive",
			mcp.Description("Delete the folder even if it is not empty"),
		),
	)
	s.AddTool(deleteFolderTool, common.InstrumentedToolHandler("box_delete_folder", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args, _ := request.Params.Arguments.(map[string]interface{})
			conn := sc.ConnectionForAccount(common.ResolveAccount(ctx, sc, args))

			folderID, _ := args["folderId"].(string)
			recursive, _ := args["recursive"].(bool)

			if err := conn.DeleteFolder(ctx, folderID, box.DeleteOptions{Recursive: recursive}); err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("failed to delete folder: %v", err)), nil
			}
			return mcp.NewToolResultText(fmt.Sprintf("folder %s moved to trash", folderID)), nil
		}))

	copyFolderTool := mcp.NewTool("box_copy_folder",
		mcp.WithDescription("Copy a Box folder into another parent folder"),
		mcp.WithString("account",
			mcp.Description("Account email (default: 'default')"),
		),
		mcp.WithString("folderId",
			mcp.Required(),
			mcp.Description("The numeric ID of the folder to copy"),
		),
		mcp.WithString("parentId",
			mcp.Required(),
			mcp.Description("The numeric ID of the destination parent folder"),
		),
		mcp.WithString("name",
			mcp.Description("Optional new name for the copy"),
		),
	)
	s.AddTool(copyFolderTool, common.InstrumentedToolHandler("box_copy_folder", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args, _ := request.Params.Arguments.(map[string]interface{})
			conn := sc.ConnectionForAccount(common.ResolveAccount(ctx, sc, args))

			folderID, _ := args["folderId"].(string)
			parentID, _ := args["parentId"].(string)
			name, _ := args["name"].(string)

			folder, err := conn.CopyFolder(ctx, folderID, parentID, name)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("failed to copy folder: %v", err)), nil
			}
			return jsonResult(folder)
		}))

	restoreFolderTool := mcp.NewTool("box_restore_folder",
		mcp.WithDescription("Restore a Box folder from the trash"),
		mcp.WithString("account",
			mcp.Description("Account email (default: 'default')"),
		),
		mcp.WithString("folderId",
			mcp.Required(),
			mcp.Description("The numeric ID of the trashed folder"),
		),
		mcp.WithString("name",
			mcp.Description("New name if the original name is taken"),
		),
		mcp.WithString("parentId",
			mcp.Description("New parent if the original location is gone"),
		),
	)
	s.AddTool(restoreFolderTool, common.InstrumentedToolHandler("box_restore_folder", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args, _ := request.Params.Arguments.(map[string]interface{})
			conn := sc.ConnectionForAccount(common.ResolveAccount(ctx, sc, args))

			folderID, _ := args["folderId"].(string)
			name, _ := args["name"].(string)
			parentID, _ := args["parentId"].(string)

			folder, err := conn.RestoreTrashedFolder(ctx, folderID, name, parentID)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("failed to restore folder: %v", err)), nil
			}
			return jsonResult(folder)
		}))

	sharedLinkTool := mcp.NewTool("box_folder_shared_link",
		mcp.WithDescription("Create or update the shared link on a Box folder"),
		mcp.WithString("account",
			mcp.Description("Account email (default: 'default')"),
		),
		mcp.WithString("folderId",
			mcp.Required(),
			mcp.Description("The numeric ID of the folder"),
		),
		mcp.WithString("access",
			mcp.Description("Link access level: 'open', 'company' or 'collaborators'"),
		),
	)
	s.AddTool(sharedLinkTool, common.InstrumentedToolHandler("box_folder_shared_link", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args, _ := request.Params.Arguments.(map[string]interface{})
			conn := sc.ConnectionForAccount(common.ResolveAccount(ctx, sc, args))

			folderID, _ := args["folderId"].(string)
			access, _ := args["access"].(string)

			folder, err := conn.FolderSharedLink(ctx, folderID, box.SharedLinkOptions{Access: access})
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("failed to set shared link: %v", err)), nil
			}
			return jsonResult(folder)
		}))
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
