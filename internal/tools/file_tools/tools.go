package file_tools

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

// RegisterFileTools registers file tools with the MCP server. Write tools
// are skipped in read-only mode.
func RegisterFileTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	fileInfoTool := mcp.NewTool("box_file_info",
		mcp.WithDescription("Get metadata for a Box file"),
		mcp.WithString("account",
			mcp.Description("Account email (default: 'default')"),
		),
		mcp.WithString("fileId",
			mcp.Required(),
			mcp.Description("The numeric ID of the file"),
		),
	)
	s.AddTool(fileInfoTool, common.InstrumentedToolHandler("box_file_info", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args, _ := request.Params.Arguments.(map[string]interface{})
			conn := sc.ConnectionForAccount(common.ResolveAccount(ctx, sc, args))

			fileID, ok := args["fileId"].(string)
			if !ok || fileID == "" {
				return mcp.NewToolResultError("fileId is required"), nil
			}

			file, err := conn.FileInfo(ctx, fileID)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("failed to get file info: %v", err)), nil
			}
			return jsonResult(file)
		}))

	fileCommentsTool := mcp.NewTool("box_file_comments",
		mcp.WithDescription("List the comments on a Box file"),
		mcp.WithString("account",
			mcp.Description("Account email (default: 'default')"),
		),
		mcp.WithString("fileId",
			mcp.Required(),
			mcp.Description("The numeric ID of the file"),
		),
	)
	s.AddTool(fileCommentsTool, common.InstrumentedToolHandler("box_file_comments", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args, _ := request.Params.Arguments.(map[string]interface{})
			conn := sc.ConnectionForAccount(common.ResolveAccount(ctx, sc, args))

			fileID, ok := args["fileId"].(string)
			if !ok || fileID == "" {
				return mcp.NewToolResultError("fileId is required"), nil
			}

			comments, err := conn.FileComments(ctx, fileID)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("failed to list comments: %v", err)), nil
			}
			return jsonResult(comments)
		}))

	if readOnly {
		return nil
	}

	updateFileTool := mcp.NewTool("box_update_file",
		mcp.WithDescription("Update name or description of a Box file"),
		mcp.WithString("account",
			mcp.Description("Account email (default: 'default')"),
		),
		mcp.WithString("fileId",
			mcp.Required(),
			mcp.Description("The numeric ID of the file"),
		),
		mcp.WithString("name",
			mcp.Description("New name for the file"),
		),
		mcp.WithString("description",
			mcp.Description("New description for the file"),
		),
	)
	s.AddTool(updateFileTool, common.InstrumentedToolHandler("box_update_file", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args, _ := request.Params.Arguments.(map[string]interface{})
			conn := sc.ConnectionForAccount(common.ResolveAccount(ctx, sc, args))

			fileID, _ := args["fileId"].(string)
			name, _ := args["name"].(string)
			description, _ := args["description"].(string)

			file, err := conn.UpdateFile(ctx, fileID, box.FileUpdate{Name: name, Description: description})
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("failed to update file: %v", err)), nil
			}
			return jsonResult(file)
		}))

	deleteFileTool := mcp.NewTool("box_delete_file",
		mcp.WithDescription("Move a Box file to the trash"),
		mcp.WithString("account",
			mcp.Description("Account email (default: 'default')"),
		),
		mcp.WithString("fileId",
			mcp.Required(),
			mcp.Description("The numeric ID of the file"),
		),
		mcp.WithString("etag",
			mcp.Description("Etag for If-Match; deletion fails if the file changed"),
		),
	)
	s.AddTool(deleteFileTool, common.InstrumentedToolHandler("box_delete_file", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args, _ := request.Params.Arguments.(map[string]interface{})
			conn := sc.ConnectionForAccount(common.ResolveAccount(ctx, sc, args))

			fileID, _ := args["fileId"].(string)
			etag, _ := args["etag"].(string)

			if err := conn.DeleteFile(ctx, fileID, etag); err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("failed to delete file: %v", err)), nil
			}
			return mcp.NewToolResultText(fmt.Sprintf("file %s moved to trash", fileID)), nil
		}))

	copyFileTool := mcp.NewTool("box_copy_file",
		mcp.WithDescription("Copy a Box file into another folder"),
		mcp.WithString("account",
			mcp.Description("Account email (default: 'default')"),
		),
		mcp.WithString("fileId",
			mcp.Required(),
			mcp.Description("The numeric ID of the file to copy"),
		),
		mcp.WithString("parentId",
			mcp.Required(),
			mcp.Description("The numeric ID of the destination folder"),
		),
		mcp.WithString("name",
			mcp.Description("Optional new name for the copy"),
		),
	)
	s.AddTool(copyFileTool, common.InstrumentedToolHandler("box_copy_file", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args, _ := request.Params.Arguments.(map[string]interface{})
			conn := sc.ConnectionForAccount(common.ResolveAccount(ctx, sc, args))

			fileID, _ := args["fileId"].(string)
			parentID, _ := args["parentId"].(string)
			name, _ := args["name"].(string)

			file, err := conn.CopyFile(ctx, fileID, parentID, name)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("failed to copy file: %v", err)), nil
			}
			return jsonResult(file)
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
