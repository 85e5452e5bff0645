package telemetry

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// Client records usage events, numeric metrics and exceptions. Calls never
// fail and never block the request path.
type Client interface {
	TrackEvent(ctx context.Context, name string, props map[string]string)
	TrackMetric(ctx context.Context, name string, value float64, props map[string]string)
	TrackException(ctx context.Context, err error, props map[string]string)
}

// Noop is selected when telemetry is not configured.
type Noop struct{}

func (Noop) TrackEvent(context.Context, string, map[string]string)           {}
func (Noop) TrackMetric(context.Context, string, float64, map[string]string) {}
func (Noop) TrackException(context.Context, error, map[string]string)        {}

const instrumentationName = "github.com/rehabfolio/portfolio-api"

// OtelClient writes events and exceptions onto the active span and metrics
// into histograms of the global meter.
type OtelClient struct {
	meter      metric.Meter
	histograms sync.Map // name -> metric.Float64Histogram
}

func NewOtelClient() *OtelClient {
	return NewOtelClientWithMeter(otel.Meter(instrumentationName))
}

func NewOtelClientWithMeter(m metric.Meter) *OtelClient {
	return &OtelClient{meter: m}
}

func (c *OtelClient) TrackEvent(ctx context.Context, name string, props map[string]string) {
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}
	span.AddEvent(name, trace.WithAttributes(attrs(props)...))
}

func (c *OtelClient) TrackMetric(ctx context.Context, name string, value float64, props map[string]string) {
	h, ok := c.histogram(name)
	if !ok {
		return
	}
	h.Record(ctx, value, metric.WithAttributes(attrs(props)...))
}

func (c *OtelClient) TrackException(ctx context.Context, err error, props map[string]string) {
	if err == nil {
		return
	}
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}
	span.RecordError(err, trace.WithAttributes(attrs(props)...))
	span.SetStatus(codes.Error, err.Error())
}

func (c *OtelClient) histogram(name string) (metric.Float64Histogram, bool) {
	if h, ok := c.histograms.Load(name); ok {
		return h.(metric.Float64Histogram), true
	}
	h, err := c.meter.Float64Histogram(name)
	if err != nil {
		return nil, false
	}
	actual, _ := c.histograms.LoadOrStore(name, h)
	return actual.(metric.Float64Histogram), true
}

func attrs(props map[string]string) []attribute.KeyValue {
	out := make([]attribute.KeyValue, 0, len(props))
	for k, v := range props {
		out = append(out, attribute.String(k, v))
	}
	return out
}
