package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics holds all custom metrics for the service. A nil *Metrics is
// safe to call; every recorder is a no-op then, so metrics stay optional
// in tests and development.
type Metrics struct {
	// HTTP metrics
	HTTPRequestsTotal metric.Int64Counter
	HTTPDurationMs    metric.Float64Histogram

	// Business metrics
	OrdersTotal      metric.Int64Counter
	WarningsTotal    metric.Int64Counter
	GenerationsTotal metric.Int64Counter
}

// InitMetrics initializes all custom metrics
func InitMetrics() (*Metrics, error) {
	meter := otel.Meter("github.com/lamar-health/care-plan-service")

	httpRequestsTotal, err := meter.Int64Counter(
		"http_server_requests_total",
		metric.WithDescription("Total number of HTTP requests"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, err
	}

	httpDurationMs, err := meter.Float64Histogram(
		"http_server_duration_milliseconds",
		metric.WithDescription("HTTP request duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	ordersTotal, err := meter.Int64Counter(
		"orders_created_total",
		metric.WithDescription("Total number of orders committed through intake"),
		metric.WithUnit("{order}"),
	)
	if err != nil {
		return nil, err
	}

	warningsTotal, err := meter.Int64Counter(
		"intake_warnings_total",
		metric.WithDescription("Total number of duplicate warnings surfaced during intake"),
		metric.WithUnit("{warning}"),
	)
	if err != nil {
		return nil, err
	}

	generationsTotal, err := meter.Int64Counter(
		"care_plan_generations_total",
		metric.WithDescription("Total number of care plan generation attempts by outcome"),
		metric.WithUnit("{generation}"),
	)
	if err != nil {
		return nil, err
	}

	return &Metrics{
		HTTPRequestsTotal: httpRequestsTotal,
		HTTPDurationMs:    httpDurationMs,
		OrdersTotal:       ordersTotal,
		WarningsTotal:     warningsTotal,
		GenerationsTotal:  generationsTotal,
	}, nil
}

// RecordHTTPRequest records one handled HTTP request
func (m *Metrics) RecordHTTPRequest(ctx context.Context, method, route string, status int, durationMs float64) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String("http.method", method),
		attribute.String("http.route", route),
		attribute.Int("http.status_code", status),
	)
	m.HTTPRequestsTotal.Add(ctx, 1, attrs)
	m.HTTPDurationMs.Record(ctx, durationMs, attrs)
}

// RecordOrderCreated counts a committed intake submission
func (m *Metrics) RecordOrderCreated(ctx context.Context, acknowledged bool) {
	if m == nil {
		return
	}
	m.OrdersTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.Bool("warnings_acknowledged", acknowledged),
	))
}

// RecordWarning counts one surfaced duplicate warning by kind
func (m *Metrics) RecordWarning(ctx context.Context, kind string) {
	if m == nil {
		return
	}
	m.WarningsTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("kind", kind),
	))
}

// RecordGeneration counts a care plan generation attempt by outcome
// ("generated", "failed", "lost_race")
func (m *Metrics) RecordGeneration(ctx context.Context, outcome string) {
	if m == nil {
		return
	}
	m.GenerationsTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("outcome", outcome),
	))
}
