// Package middleware provides seqstats.Service decorators: logging, stats
// collection, and OpenTelemetry metrics and tracing.
package middleware

import (
	"context"
	"time"

	"github.com/hyp3rd/seqstats"
	"github.com/hyp3rd/seqstats/pkg/stats"
	"github.com/hyp3rd/seqstats/types"
)

// Logger describes a logging interface allowing to implement different external, or custom logger.
// Tested with Uber's Zap SugaredLogger, but should work with any other logger that matches the interface.
type Logger interface {
	Infof(format string, v ...any)
	Errorf(format string, v ...any)
}

// LoggingMiddleware is a middleware that logs the time it takes to execute the next middleware.
// Must implement the seqstats.Service interface.
type LoggingMiddleware struct {
	next   seqstats.Service
	logger Logger
}

// NewLoggingMiddleware returns a new LoggingMiddleware.
func NewLoggingMiddleware(next seqstats.Service, logger Logger) seqstats.Service {
	return &LoggingMiddleware{next: next, logger: logger}
}

// Compute logs the sequence length, the outcome and the time it took.
func (mw LoggingMiddleware) Compute(ctx context.Context, seq []int64) (*types.Result, error) {
	defer func(begin time.Time) {
		mw.logger.Infof("method Compute took: %s", time.Since(begin))
	}(time.Now())

	mw.logger.Infof("Compute method called with %d values", len(seq))

	res, err := mw.next.Compute(ctx, seq)
	if err != nil {
		mw.logger.Errorf("Compute failed: %v", err)

		return nil, err
	}

	mw.logger.Infof(
		"Compute result: min=%d max=%d median=%g mean=%g increasing=%d decreasing=%d",
		res.Min, res.Max, res.Median, res.Mean, res.LongestIncreasing.Length, res.LongestDecreasing.Length,
	)

	return res, nil
}

// Workers returns the degree of parallelism of the next service.
func (mw LoggingMiddleware) Workers() int { return mw.next.Workers() }

// MedianPolicy returns the median policy of the next service.
func (mw LoggingMiddleware) MedianPolicy() types.MedianPolicy { return mw.next.MedianPolicy() }

// MedianStrategy returns the median strategy of the next service.
func (mw LoggingMiddleware) MedianStrategy() types.MedianStrategy { return mw.next.MedianStrategy() }

// GetStats returns the stats of the next service.
func (mw LoggingMiddleware) GetStats() stats.Stats { return mw.next.GetStats() }

// Stop logs and stops the next service.
func (mw LoggingMiddleware) Stop(ctx context.Context) error {
	mw.logger.Infof("Stop method called")

	return mw.next.Stop(ctx)
}
