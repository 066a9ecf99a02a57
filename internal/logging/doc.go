// Package logging provides structured logging utilities for gobox.
//
// It centralizes slog attribute naming and sanitization so log output stays
// consistent across the client library, the CLI and the MCP server:
//
//	logger := logging.WithOperation(slog.Default(), "folders.items")
//	logger.Info("listed folder", logging.Status(logging.StatusSuccess))
//
// Account ids are emails; log them hashed via UserHash, and never log token
// contents (SanitizeToken reveals only the length).
package logging
