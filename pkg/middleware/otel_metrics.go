package middleware

import (
	"context"
	"time"

	"github.com/hyp3rd/ewrap"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/hyp3rd/seqstats"
	"github.com/hyp3rd/seqstats/internal/telemetry/attrs"
	"github.com/hyp3rd/seqstats/pkg/stats"
	"github.com/hyp3rd/seqstats/types"
)

// OTelMetricsMiddleware emits OpenTelemetry metrics for service methods.
type OTelMetricsMiddleware struct {
	next seqstats.Service

	calls     metric.Int64Counter
	durations metric.Float64Histogram
	lengths   metric.Int64Histogram
}

// NewOTelMetricsMiddleware constructs a metrics middleware using the provided meter.
func NewOTelMetricsMiddleware(next seqstats.Service, meter metric.Meter) (seqstats.Service, error) {
	calls, err := meter.Int64Counter("seqstats.calls")
	if err != nil {
		return nil, ewrap.Wrap(err, "create counter")
	}

	durations, err := meter.Float64Histogram("seqstats.duration.ms", metric.WithUnit("ms"))
	if err != nil {
		return nil, ewrap.Wrap(err, "create duration histogram")
	}

	lengths, err := meter.Int64Histogram("seqstats.sequence.length")
	if err != nil {
		return nil, ewrap.Wrap(err, "create length histogram")
	}

	return &OTelMetricsMiddleware{next: next, calls: calls, durations: durations, lengths: lengths}, nil
}

// Compute implements Service.Compute with metrics.
func (mw *OTelMetricsMiddleware) Compute(ctx context.Context, seq []int64) (*types.Result, error) {
	start := time.Now()
	res, err := mw.next.Compute(ctx, seq)

	mw.lengths.Record(ctx, int64(len(seq)))
	mw.rec(ctx, "Compute", start,
		attribute.Int(attrs.AttrWorkers, mw.next.Workers()),
		attribute.String(attrs.AttrMedianPolicy, mw.next.MedianPolicy().String()),
		attribute.Bool(attrs.AttrFailed, err != nil),
	)

	return res, err
}

// Workers returns the degree of parallelism of the next service.
func (mw *OTelMetricsMiddleware) Workers() int { return mw.next.Workers() }

// MedianPolicy returns the median policy of the next service.
func (mw *OTelMetricsMiddleware) MedianPolicy() types.MedianPolicy { return mw.next.MedianPolicy() }

// MedianStrategy returns the median strategy of the next service.
func (mw *OTelMetricsMiddleware) MedianStrategy() types.MedianStrategy {
	return mw.next.MedianStrategy()
}

// GetStats returns stats.
func (mw *OTelMetricsMiddleware) GetStats() stats.Stats { return mw.next.GetStats() }

// Stop stops the underlying service.
func (mw *OTelMetricsMiddleware) Stop(ctx context.Context) error { return mw.next.Stop(ctx) }

// rec records call count and duration with attributes.
func (mw *OTelMetricsMiddleware) rec(ctx context.Context, method string, start time.Time, attributes ...attribute.KeyValue) {
	base := []attribute.KeyValue{attribute.String(attrs.AttrMethod, method)}
	base = append(base, attributes...)

	mw.calls.Add(ctx, 1, metric.WithAttributes(base...))
	mw.durations.Record(ctx, float64(time.Since(start).Microseconds())/1e3, metric.WithAttributes(base...))
}
