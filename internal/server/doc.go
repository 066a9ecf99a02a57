// Package server provides the MCP server context and operational endpoints
// for gobox.
//
// ServerContext wraps the Box client so tool packages resolve per-account
// Connections through one place and share a metrics recorder. The client's
// connection registry guarantees identity-stable lookups, so tools never
// cache connections themselves.
//
// MetricsServer serves Prometheus metrics and health probes on a dedicated
// port. SessionIDManager tracks which account each HTTP-transport session
// is bound to.
package server
