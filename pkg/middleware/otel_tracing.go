package middleware

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/hyp3rd/seqstats"
	"github.com/hyp3rd/seqstats/internal/telemetry/attrs"
	"github.com/hyp3rd/seqstats/pkg/stats"
	"github.com/hyp3rd/seqstats/types"
)

// OTelTracingMiddleware wraps seqstats.Service methods with OpenTelemetry spans.
type OTelTracingMiddleware struct {
	next   seqstats.Service
	tracer trace.Tracer
	// static attributes applied to all spans
	commonAttrs []attribute.KeyValue
}

// OTelTracingOption allows configuring the tracing middleware.
type OTelTracingOption func(*OTelTracingMiddleware)

// WithCommonAttributes sets attributes applied to all spans.
func WithCommonAttributes(attributes ...attribute.KeyValue) OTelTracingOption {
	return func(m *OTelTracingMiddleware) { m.commonAttrs = append(m.commonAttrs, attributes...) }
}

// NewOTelTracingMiddleware creates a tracing middleware.
func NewOTelTracingMiddleware(next seqstats.Service, tracer trace.Tracer, opts ...OTelTracingOption) seqstats.Service {
	mw := &OTelTracingMiddleware{next: next, tracer: tracer}
	for _, o := range opts {
		o(mw)
	}

	return mw
}

// Compute implements Service.Compute with tracing.
func (mw OTelTracingMiddleware) Compute(ctx context.Context, seq []int64) (*types.Result, error) {
	ctx, span := mw.startSpan(ctx, "seqstats.Compute",
		attribute.Int(attrs.AttrSequenceLength, len(seq)),
		attribute.Int(attrs.AttrWorkers, mw.next.Workers()),
		attribute.String(attrs.AttrMedianPolicy, mw.next.MedianPolicy().String()))
	defer span.End()

	res, err := mw.next.Compute(ctx, seq)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())

		return nil, err
	}

	span.SetAttributes(
		attribute.Int(attrs.AttrRunIncreasing, res.LongestIncreasing.Length),
		attribute.Int(attrs.AttrRunDecreasing, res.LongestDecreasing.Length),
	)

	return res, nil
}

// Workers returns the degree of parallelism of the next service.
func (mw OTelTracingMiddleware) Workers() int { return mw.next.Workers() }

// MedianPolicy returns the median policy of the next service.
func (mw OTelTracingMiddleware) MedianPolicy() types.MedianPolicy { return mw.next.MedianPolicy() }

// MedianStrategy returns the median strategy of the next service.
func (mw OTelTracingMiddleware) MedianStrategy() types.MedianStrategy {
	return mw.next.MedianStrategy()
}

// GetStats returns stats.
func (mw OTelTracingMiddleware) GetStats() stats.Stats { return mw.next.GetStats() }

// Stop stops the service with a span.
func (mw OTelTracingMiddleware) Stop(ctx context.Context) error {
	ctx, span := mw.startSpan(ctx, "seqstats.Stop")
	defer span.End()

	return mw.next.Stop(ctx)
}

// startSpan starts a span with common and provided attributes.
func (mw OTelTracingMiddleware) startSpan(ctx context.Context, name string, attributes ...attribute.KeyValue) (context.Context, trace.Span) {
	ctx, span := mw.tracer.Start(ctx, name, trace.WithSpanKind(trace.SpanKindInternal))
	if len(mw.commonAttrs) > 0 {
		span.SetAttributes(mw.commonAttrs...)
	}

	if len(attributes) > 0 {
		span.SetAttributes(attributes...)
	}

	return ctx, span
}
