// Package telemetry exposes the builder API's OpenTelemetry instruments through a
// Prometheus scrape endpoint.
//
// Instruments, as Prometheus sees them:
//
//	mcp_builder_http_requests_total   requests per method, route pattern and status
//	mcp_builder_http_request_duration latency histogram in seconds, same labels
//	mcp_builder_http_errors_total     responses with status >= 400
//	mcp_builder_service_up            1 once the server is serving
//	mcp_builder_drafts_saved_total    session integrations written by the autosaver
//
// Go runtime metrics (GC, goroutines, memory) are exported alongside them.
package telemetry

import (
	"context"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/runtime"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
)

// Namespace prefixes every instrument name and doubles as the service name
const Namespace = "mcp_builder"

// Request latency buckets in seconds. Simulated repository latency tops out at
// two seconds, so the buckets are dense below that.
var durationBuckets = []float64{0.005, 0.05, 0.1, 0.25, 0.5, 1, 1.5, 2, 2.5, 5, 10}

// Metrics holds the instruments shared by the HTTP middleware, the health
// endpoint and the autosaver
type Metrics struct {
	// Requests is labelled with method, path (the route pattern, not the raw URL) and status_code
	Requests metric.Int64Counter

	RequestDuration metric.Float64Histogram

	// ErrorCount only counts responses with status 400 and above
	ErrorCount metric.Int64Counter

	Up metric.Int64Gauge

	// DraftsSaved grows by the number of integrations each autosave cycle wrote
	DraftsSaved metric.Int64Counter
}

// ShutdownFunc flushes and stops the meter provider
type ShutdownFunc func(ctx context.Context) error

// NewMetrics creates the builder's instruments on meter
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	var (
		m   Metrics
		err error
	)

	if m.Requests, err = meter.Int64Counter(Namespace+".http.requests",
		metric.WithDescription("HTTP requests served by the builder API")); err != nil {
		return nil, fmt.Errorf("failed to create request counter: %w", err)
	}
	if m.RequestDuration, err = meter.Float64Histogram(Namespace+".http.request.duration",
		metric.WithDescription("Time spent serving builder API requests, in seconds"),
		metric.WithExplicitBucketBoundaries(durationBuckets...)); err != nil {
		return nil, fmt.Errorf("failed to create request duration histogram: %w", err)
	}
	if m.ErrorCount, err = meter.Int64Counter(Namespace+".http.errors",
		metric.WithDescription("Builder API responses with a client or server error status")); err != nil {
		return nil, fmt.Errorf("failed to create error counter: %w", err)
	}
	if m.Up, err = meter.Int64Gauge(Namespace+".service.up",
		metric.WithDescription("1 while the builder API is serving")); err != nil {
		return nil, fmt.Errorf("failed to create service up gauge: %w", err)
	}
	if m.DraftsSaved, err = meter.Int64Counter(Namespace+".drafts.saved",
		metric.WithDescription("Session integrations written to draft storage by the autosaver")); err != nil {
		return nil, fmt.Errorf("failed to create drafts counter: %w", err)
	}
	return &m, nil
}

// InitMetrics installs a Prometheus-backed global meter provider, starts Go
// runtime instrumentation and returns the builder's instruments
func InitMetrics(version string) (ShutdownFunc, *Metrics, error) {
	noop := func(context.Context) error { return nil }

	res, err := resource.Merge(resource.Default(), resource.NewSchemaless(
		semconv.ServiceName(Namespace),
		semconv.ServiceVersion(version),
	))
	if err != nil {
		return noop, nil, fmt.Errorf("failed to create resource: %w", err)
	}

	exporter, err := prometheus.New()
	if err != nil {
		return noop, nil, fmt.Errorf("failed to create Prometheus exporter: %w", err)
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(exporter),
	)
	otel.SetMeterProvider(mp)

	if err := runtime.Start(runtime.WithMeterProvider(mp)); err != nil {
		_ = mp.Shutdown(context.Background())
		return noop, nil, fmt.Errorf("failed to start runtime instrumentation: %w", err)
	}

	meter := mp.Meter(Namespace,
		metric.WithSchemaURL(semconv.SchemaURL),
		metric.WithInstrumentationVersion(version))
	metrics, err := NewMetrics(meter)
	if err != nil {
		_ = mp.Shutdown(context.Background())
		return noop, nil, err
	}
	return mp.Shutdown, metrics, nil
}

// PrometheusHandler serves /metrics from the default Prometheus registry the exporter writes to
func (m *Metrics) PrometheusHandler() http.Handler {
	return promhttp.Handler()
}
