// Package common holds helpers shared by the MCP tool packages: account
// argument resolution and the instrumented handler wrapper that records
// tool invocation metrics.
package common
