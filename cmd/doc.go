// Package cmd implements the gobox command line interface.
//
// The root command wires flags and environment configuration into the Box
// client; subcommands cover interactive authorization, folder, search and
// trash operations, and an MCP server mode.
package cmd
