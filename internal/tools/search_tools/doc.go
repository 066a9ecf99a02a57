// Package search_tools exposes Box search and collaboration operations as
// MCP tools.
package search_tools
