package middleware

import (
	"context"
	"time"

	"github.com/hyp3rd/seqstats"
	"github.com/hyp3rd/seqstats/pkg/stats"
	"github.com/hyp3rd/seqstats/types"
)

// StatsCollectorMiddleware records call counts and durations into a collector.
// Its stats are named seqstats_service_*, apart from the engine's own, so it may
// share the engine's collector.
type StatsCollectorMiddleware struct {
	next           seqstats.Service
	statsCollector stats.ICollector
}

// NewStatsCollectorMiddleware returns a new StatsCollectorMiddleware.
func NewStatsCollectorMiddleware(next seqstats.Service, statsCollector stats.ICollector) seqstats.Service {
	return &StatsCollectorMiddleware{next: next, statsCollector: statsCollector}
}

// Compute collects stats for the Compute method.
func (mw StatsCollectorMiddleware) Compute(ctx context.Context, seq []int64) (*types.Result, error) {
	start := time.Now()

	res, err := mw.next.Compute(ctx, seq)

	mw.statsCollector.Timing(types.StatServiceDuration, time.Since(start).Nanoseconds())
	mw.statsCollector.Incr(types.StatServiceCount, 1)

	if err != nil {
		mw.statsCollector.Incr(types.StatServiceErrors, 1)
	}

	return res, err
}

// Workers returns the degree of parallelism of the next service.
func (mw StatsCollectorMiddleware) Workers() int { return mw.next.Workers() }

// MedianPolicy returns the median policy of the next service.
func (mw StatsCollectorMiddleware) MedianPolicy() types.MedianPolicy { return mw.next.MedianPolicy() }

// MedianStrategy returns the median strategy of the next service.
func (mw StatsCollectorMiddleware) MedianStrategy() types.MedianStrategy {
	return mw.next.MedianStrategy()
}

// GetStats returns the stats of the middleware's own collector.
func (mw StatsCollectorMiddleware) GetStats() stats.Stats { return mw.statsCollector.GetStats() }

// Stop stops the next service.
func (mw StatsCollectorMiddleware) Stop(ctx context.Context) error { return mw.next.Stop(ctx) }
