// Package box is a client for the Box Content API.
//
// A Client is constructed once per set of application credentials and hands
// out one Connection per account via GetConnection. Each Connection owns a
// Session that tracks the OAuth token lifecycle (unset, pending, ready,
// error); resource methods wait for the session to become ready before
// dispatching, so callers never check token state themselves.
//
// Authorization happens one of three ways:
//   - interactively, by sending the user to Connection.AuthURL and running
//     the local listener (Client.StartServer) to capture the redirect;
//   - silently at startup, via Config.RefreshToken;
//   - through a stored token (Config.TokenStore) from a previous run.
//
// On an expired-token response, the dispatch path performs exactly one
// refresh followed by one retry; a second failure is returned unmodified.
package box
