// Package instrumentation provides OpenTelemetry metrics and tracing for
// gobox.
//
// Provider wires up meter and tracer providers from a Config (environment
// driven by default): prometheus, OTLP-over-HTTP or stdout for metrics;
// OTLP-over-HTTP, stdout or none for traces. Metrics is the recorder used
// by the MCP tool layer for Box API operations, OAuth exchanges and tool
// invocations.
//
// High-cardinality labels (per-account) are off by default; enable them
// with METRICS_DETAILED_LABELS=true for debugging only. Account labels are
// always hashed before recording.
package instrumentation
