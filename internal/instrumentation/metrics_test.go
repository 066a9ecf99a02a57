package instrumentation

import (
	"context"
	"errors"
	"testing"
	"time"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func TestZeroValueMetricsIsNoop(t *testing.T) {
	var m Metrics
	ctx := context.Background()

	// None of these may panic on the zero value.
	m.RecordAPIOperation(ctx, "folder_info", "user@example.com", time.Second, nil)
	m.RecordAPIOperation(ctx, "folder_info", "", time.Second, errors.New("boom"))
	m.RecordOAuthExchange(ctx, GrantAuthorizationCode, nil)
	m.RecordOAuthExchange(ctx, GrantRefreshToken, errors.New("boom"))
	m.RecordToolInvocation(ctx, "box_search", time.Millisecond, nil)
}

func TestMetricsRecording(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	defer func() { _ = provider.Shutdown(context.Background()) }()

	m, err := NewMetrics(provider.Meter("test"), false)
	if err != nil {
		t.Fatalf("NewMetrics: %v", err)
	}

	ctx := context.Background()
	m.RecordAPIOperation(ctx, "folder_info", "user@example.com", 100*time.Millisecond, nil)
	m.RecordAPIOperation(ctx, "folder_info", "user@example.com", 200*time.Millisecond, errors.New("boom"))
	m.RecordOAuthExchange(ctx, GrantRefreshToken, nil)
	m.RecordToolInvocation(ctx, "box_search", 50*time.Millisecond, nil)

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(ctx, &rm); err != nil {
		t.Fatalf("Collect: %v", err)
	}

	found := map[string]bool{}
	for _, sm := range rm.ScopeMetrics {
		for _, metricData := range sm.Metrics {
			found[metricData.Name] = true
		}
	}

	for _, name := range []string{
		"box_api_operations_total",
		"box_api_operation_duration_seconds",
		"oauth_exchanges_total",
		"tool_invocations_total",
		"tool_duration_seconds",
	} {
		if !found[name] {
			t.Errorf("expected metric %s to be recorded, got %v", name, found)
		}
	}
}

func TestResultLabel(t *testing.T) {
	if got := resultLabel(nil); got != ResultSuccess {
		t.Errorf("resultLabel(nil) = %q", got)
	}
	if got := resultLabel(errors.New("boom")); got != ResultFailure {
		t.Errorf("resultLabel(err) = %q", got)
	}
}
