package instrumentation

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/boxworks/gobox/internal/logging"
)

// Metric attribute keys.
const (
	attrOperation = "operation"
	attrResult    = "result"
	attrGrant     = "grant"
	attrTool      = "tool"
	attrAccount   = "account"
)

// Result values.
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

// OAuth grant types recorded on exchange metrics.
const (
	GrantAuthorizationCode = "authorization_code"
	GrantRefreshToken      = "refresh_token"
)

// Metrics records observability metrics for Box API operations, OAuth
// exchanges and MCP tool invocations. The zero value is a no-op recorder.
type Metrics struct {
	apiOperationsTotal   metric.Int64Counter
	apiOperationDuration metric.Float64Histogram

	oauthExchangesTotal metric.Int64Counter

	toolInvocationsTotal metric.Int64Counter
	toolDuration         metric.Float64Histogram

	// detailedLabels controls whether high-cardinality labels (account
	// hashes) are included.
	detailedLabels bool
}

// NewMetrics creates a Metrics instance with all instruments initialized.
func NewMetrics(meter metric.Meter, detailedLabels bool) (*Metrics, error) {
	m := &Metrics{detailedLabels: detailedLabels}

	var err error

	m.apiOperationsTotal, err = meter.Int64Counter(
		"box_api_operations_total",
		metric.WithDescription("Total number of Box API operations"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create box_api_operations_total counter: %w", err)
	}

	m.apiOperationDuration, err = meter.Float64Histogram(
		"box_api_operation_duration_seconds",
		metric.WithDescription("Box API operation duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create box_api_operation_duration_seconds histogram: %w", err)
	}

	m.oauthExchangesTotal, err = meter.Int64Counter(
		"oauth_exchanges_total",
		metric.WithDescription("Total number of OAuth token exchanges, by grant type"),
		metric.WithUnit("{exchange}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create oauth_exchanges_total counter: %w", err)
	}

	m.toolInvocationsTotal, err = meter.Int64Counter(
		"tool_invocations_total",
		metric.WithDescription("Total number of MCP tool invocations"),
		metric.WithUnit("{invocation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create tool_invocations_total counter: %w", err)
	}

	m.toolDuration, err = meter.Float64Histogram(
		"tool_duration_seconds",
		metric.WithDescription("MCP tool invocation duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.001, 0.01, 0.1, 0.5, 1.0, 2.5, 5.0, 10.0),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create tool_duration_seconds histogram: %w", err)
	}

	return m, nil
}

// RecordAPIOperation records one Box API operation with its outcome and
// duration.
func (m *Metrics) RecordAPIOperation(ctx context.Context, operation, account string, duration time.Duration, err error) {
	if m.apiOperationsTotal == nil {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.String(attrOperation, operation),
		attribute.String(attrResult, resultLabel(err)),
	}
	if m.detailedLabels && account != "" {
		attrs = append(attrs, attribute.String(attrAccount, logging.AnonymizeAccount(account)))
	}

	set := metric.WithAttributeSet(attribute.NewSet(attrs...))
	m.apiOperationsTotal.Add(ctx, 1, set)
	m.apiOperationDuration.Record(ctx, duration.Seconds(), set)
}

// RecordOAuthExchange records one token exchange by grant type.
func (m *Metrics) RecordOAuthExchange(ctx context.Context, grant string, err error) {
	if m.oauthExchangesTotal == nil {
		return
	}
	m.oauthExchangesTotal.Add(ctx, 1, metric.WithAttributeSet(attribute.NewSet(
		attribute.String(attrGrant, grant),
		attribute.String(attrResult, resultLabel(err)),
	)))
}

// RecordToolInvocation records one MCP tool call with its outcome and
// duration.
func (m *Metrics) RecordToolInvocation(ctx context.Context, tool string, duration time.Duration, err error) {
	if m.toolInvocationsTotal == nil {
		return
	}

	set := metric.WithAttributeSet(attribute.NewSet(
		attribute.String(attrTool, tool),
		attribute.String(attrResult, resultLabel(err)),
	))
	m.toolInvocationsTotal.Add(ctx, 1, set)
	m.toolDuration.Record(ctx, duration.Seconds(), set)
}

func resultLabel(err error) string {
	if err != nil {
		return ResultFailure
	}
	return ResultSuccess
}
