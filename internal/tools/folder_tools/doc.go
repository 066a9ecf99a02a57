// Package folder_tools exposes Box folder and trash operations as MCP
// tools. Read tools are always registered; write tools (create, delete,
// copy, restore, shared links) require write mode.
package folder_tools
