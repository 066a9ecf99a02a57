// Package boxauth implements the OAuth2 plumbing for the Box Content API:
// endpoint configuration, authorization-code and refresh-token grants, the
// local authorization listener that captures the provider redirect, and
// pluggable token persistence.
//
// # Token Stores
//
// Three TokenStore implementations are provided:
//   - FileStore: one 0600 JSON file per account under the user cache dir
//   - KeyringStore: OS-native credential storage
//   - MemoryStore: process-local, for tests and delegated integrations
//
// # Authorization Listener
//
// Listener serves the /callback route on a configured host:port, hands the
// received authorization code to a CodeHandler, and tracks every accepted
// connection so Stop can tear down clients that are still mid-request.
// Stopping a listener that was never started is a no-op success.
package boxauth
