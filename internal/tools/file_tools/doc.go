// Package file_tools exposes Box file operations as MCP tools.
package file_tools
