package metrics

import (
	"context"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

type HTTPMetrics struct {
	requestsTotal   metric.Int64Counter
	requestDuration metric.Float64Histogram
}

func NewHTTPMetrics(meter metric.Meter) (*HTTPMetrics, error) {
	hm := &HTTPMetrics{}

	var err error

	hm.requestsTotal, err = meter.Int64Counter(
		"http.server.requests",
		metric.WithDescription("Number of HTTP requests handled"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, err
	}

	hm.requestDuration, err = meter.Float64Histogram(
		"http.server.request.duration",
		metric.WithDescription("Duration of HTTP requests"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	return hm, nil
}

// RecordRequest records one handled request. Safe to call on a mock instance.
func (hm *HTTPMetrics) RecordRequest(ctx context.Context, method, path string, status int, duration time.Duration) {
	if hm == nil || hm.requestsTotal == nil {
		return
	}

	attrs := metric.WithAttributes(
		attribute.String("http.method", method),
		attribute.String("http.path", path),
		attribute.String("http.status", strconv.Itoa(status)),
	)

	hm.requestsTotal.Add(ctx, 1, attrs)
	hm.requestDuration.Record(ctx, float64(duration.Milliseconds()), attrs)
}
