package infrastructure

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
)

func testOTelLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// TestOTelInitialization tests OpenTelemetry initialization
func TestOTelInitialization(t *testing.T) {
	providers, err := InitializeOTel(nil, testOTelLogger())
	require.NoError(t, err)
	require.NotNil(t, providers)

	assert.NotNil(t, providers.TracerProvider)
	assert.NotNil(t, providers.Tracer)

	assert.NotNil(t, providers.MeterProvider)
	assert.NotNil(t, providers.Meter)

	assert.NotNil(t, providers.PrometheusHTTP)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err = providers.Shutdown(ctx)
	assert.NoError(t, err)
}

// TestOTelDisabledSignals verifies disabled exporters still yield usable
// tracer and meter handles.
func TestOTelDisabledSignals(t *testing.T) {
	cfg := DefaultOTelConfig()
	cfg.TraceExporter = "none"
	cfg.MetricExporter = "none"

	providers, err := InitializeOTel(cfg, testOTelLogger())
	require.NoError(t, err)
	defer providers.Shutdown(context.Background())

	assert.Nil(t, providers.TracerProvider)
	assert.Nil(t, providers.MeterProvider)
	assert.Nil(t, providers.PrometheusHTTP)

	require.NotNil(t, providers.Tracer)
	require.NotNil(t, providers.Meter)

	_, span := providers.Tracer.Start(context.Background(), "noop")
	span.End()

	metrics, err := CreateBusinessMetrics(providers.Meter)
	require.NoError(t, err)
	metrics.HTTPRequestsTotal.Add(context.Background(), 1)
}

// TestTraceCorrelation tests trace ID correlation
func TestTraceCorrelation(t *testing.T) {
	providers, err := InitializeOTel(DefaultOTelConfig(), testOTelLogger())
	require.NoError(t, err)
	defer providers.Shutdown(context.Background())

	ctx := context.Background()

	tracer := otel.Tracer("test")
	ctx, span := tracer.Start(ctx, "test-operation")
	defer span.End()

	traceID := TraceIDFromContext(ctx)
	assert.NotEmpty(t, traceID)

	expectedTraceID := span.SpanContext().TraceID().String()
	assert.Equal(t, expectedTraceID, traceID)

	ctx = WithTraceID(ctx, traceID)
	retrievedTraceID := GetTraceID(ctx)
	assert.Equal(t, traceID, retrievedTraceID)
}

// TestSpanOperations tests span events and error recording
func TestSpanOperations(t *testing.T) {
	providers, err := InitializeOTel(DefaultOTelConfig(), testOTelLogger())
	require.NoError(t, err)
	defer providers.Shutdown(context.Background())

	ctx := context.Background()
	tracer := otel.Tracer("test")
	ctx, span := tracer.Start(ctx, "test-span")
	defer span.End()

	AddSpanEvent(ctx, "test.event", map[string]interface{}{
		"string_attr": "test_value",
		"int_attr":    42,
		"float_attr":  3.14,
		"bool_attr":   true,
	})

	RecordError(ctx, assert.AnError)

	assert.True(t, span.IsRecording())

	// Without a span both helpers are silent no-ops
	AddSpanEvent(context.Background(), "ignored", nil)
	RecordError(context.Background(), assert.AnError)
}

// TestBusinessMetrics tests business metrics creation
func TestBusinessMetrics(t *testing.T) {
	providers, err := InitializeOTel(DefaultOTelConfig(), testOTelLogger())
	require.NoError(t, err)
	defer providers.Shutdown(context.Background())

	metrics, err := CreateBusinessMetrics(providers.Meter)
	require.NoError(t, err)
	require.NotNil(t, metrics)

	assert.NotNil(t, metrics.HTTPRequestsTotal)
	assert.NotNil(t, metrics.HTTPRequestDuration)
	assert.NotNil(t, metrics.HTTPActiveRequests)

	assert.NotNil(t, metrics.DatasetLoadsTotal)
	assert.NotNil(t, metrics.DatasetLoadDuration)
	assert.NotNil(t, metrics.DatasetRowsParsed)
	assert.NotNil(t, metrics.FiltersAppliedTotal)
	assert.NotNil(t, metrics.ExportsTotal)
	assert.NotNil(t, metrics.ExportDuration)

	assert.NotNil(t, metrics.SystemErrors)
	assert.NotNil(t, metrics.SystemUptime)
}

// TestMetricRecorders tests the metric recording helpers
func TestMetricRecorders(t *testing.T) {
	providers, err := InitializeOTel(DefaultOTelConfig(), testOTelLogger())
	require.NoError(t, err)
	defer providers.Shutdown(context.Background())

	metrics, err := CreateBusinessMetrics(providers.Meter)
	require.NoError(t, err)

	ctx := context.Background()

	// Recording must not panic, with or without an error outcome
	RecordDatasetLoad(ctx, metrics, "csv", 100, 50*time.Millisecond, nil)
	RecordDatasetLoad(ctx, metrics, "txt", 0, 5*time.Millisecond, errors.New("boom"))
	RecordFilterApplied(ctx, metrics, 42)
	RecordExport(ctx, metrics, "json", 10*time.Millisecond, nil)
	RecordExport(ctx, metrics, "csv", 10*time.Millisecond, errors.New("disk full"))

	// Nil metrics are a silent no-op
	RecordDatasetLoad(ctx, nil, "csv", 1, time.Millisecond, nil)
	RecordFilterApplied(ctx, nil, 1)
	RecordExport(ctx, nil, "json", time.Millisecond, nil)
}

// TestPrometheusEndpoint tests the Prometheus metrics endpoint
func TestPrometheusEndpoint(t *testing.T) {
	providers, err := InitializeOTel(DefaultOTelConfig(), testOTelLogger())
	require.NoError(t, err)
	defer providers.Shutdown(context.Background())

	require.NotNil(t, providers.PrometheusHTTP)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	providers.PrometheusHTTP.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Body.String())
}

// TestSystemMetricsCollector tests runtime metrics collection
func TestSystemMetricsCollector(t *testing.T) {
	providers, err := InitializeOTel(DefaultOTelConfig(), testOTelLogger())
	require.NoError(t, err)
	defer providers.Shutdown(context.Background())

	collector, err := NewSystemMetricsCollector(providers.Meter, time.Second)
	require.NoError(t, err)

	stats := collector.GetCurrentStats(context.Background())
	require.NotNil(t, stats)

	assert.Greater(t, stats.GoRoutines, int64(0))
	assert.Greater(t, stats.MemoryUsage, int64(0))

	formatted := stats.FormatStats()
	assert.Contains(t, formatted, "runtime")
	assert.Contains(t, formatted, "timestamp")
}
