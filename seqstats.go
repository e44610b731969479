// Copyright 2023 F. All rights reserved.
// Use of this source code is governed by a Mozilla Public License 2.0
// license that can be found in the LICENSE file.
// SeqStats computes batch statistics over sequences of int64 values: min, max,
// median, mean and the longest strictly increasing and decreasing runs.
package seqstats

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hyp3rd/ewrap"

	"github.com/hyp3rd/seqstats/internal/constants"
	"github.com/hyp3rd/seqstats/internal/sentinel"
	"github.com/hyp3rd/seqstats/pkg/loader"
	"github.com/hyp3rd/seqstats/pkg/reducer"
	"github.com/hyp3rd/seqstats/pkg/stats"
	"github.com/hyp3rd/seqstats/pkg/workerpool"
	"github.com/hyp3rd/seqstats/types"
)

// SeqStats is the statistics engine. It owns a worker pool shared by every
// computation; the passes of one computation run concurrently and fan their
// chunks out to that pool.
// A SeqStats is safe for concurrent use until Stop is called.
type SeqStats struct {
	workers            int
	minChunkSize       int
	medianPolicy       types.MedianPolicy
	medianStrategy     types.MedianStrategy
	statsCollectorName string
	// StatsCollector records the duration of every pass and computation.
	StatsCollector stats.ICollector

	pool    *workerpool.WorkerPool
	reducer *reducer.Reducer
	stopped atomic.Bool
}

// New creates an engine. Defaults: one worker per CPU, exact medians computed by
// sorting, the default histogram stats collector.
func New(opts ...Option) (*SeqStats, error) {
	engine := &SeqStats{
		workers:            constants.DefaultWorkers,
		minChunkSize:       constants.DefaultMinChunkSize,
		medianPolicy:       constants.DefaultMedianPolicy,
		medianStrategy:     constants.DefaultMedianStrategy,
		statsCollectorName: constants.DefaultStatsCollector,
	}

	ApplyOptions(engine, opts...)

	if engine.workers < 0 {
		return nil, ewrap.Wrapf(sentinel.ErrInvalidWorkers, "workers %d", engine.workers)
	}

	if engine.StatsCollector == nil {
		collector, err := stats.NewCollector(engine.statsCollectorName)
		if err != nil {
			return nil, err
		}

		engine.StatsCollector = collector
	}

	pool := workerpool.NewWorkerPool(engine.workers)

	r, err := reducer.New(
		reducer.WithExecutor(pool),
		reducer.WithMinChunkSize(engine.minChunkSize),
		reducer.WithMedianPolicy(engine.medianPolicy),
		reducer.WithMedianStrategy(engine.medianStrategy),
	)
	if err != nil {
		pool.Shutdown()

		return nil, err
	}

	engine.pool = pool
	engine.reducer = r
	engine.workers = pool.Workers()

	return engine, nil
}

// Compute runs every statistic over seq and assembles the result.
// The context is only checked before the passes are scheduled; once started they run to completion.
// An empty seq fails with ErrEmptyInput: no partial result is ever returned.
func (s *SeqStats) Compute(ctx context.Context, seq []int64) (*types.Result, error) {
	start := time.Now()

	res, err := s.compute(ctx, seq)

	s.StatsCollector.Timing(types.StatComputeDuration, time.Since(start).Nanoseconds())
	s.StatsCollector.Incr(types.StatComputeCount, 1)

	if err != nil {
		s.StatsCollector.Incr(types.StatComputeErrors, 1)

		return nil, err
	}

	return res, nil
}

func (s *SeqStats) compute(ctx context.Context, seq []int64) (*types.Result, error) {
	if s.stopped.Load() {
		return nil, sentinel.ErrPoolClosed
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ewrap.Wrap(sentinel.ErrTimeoutOrCanceled, ctxErr.Error())
	}

	if len(seq) == 0 {
		return nil, ewrap.Wrap(sentinel.ErrEmptyInput, "compute")
	}

	s.StatsCollector.Histogram(types.StatSequenceLength, int64(len(seq)))

	res := &types.Result{Count: len(seq), MedianPolicy: s.medianPolicy}

	// each pass writes its own fields and its own error
	var (
		wg                               sync.WaitGroup
		extErr, medErr, meanErr, runsErr error
	)

	wg.Go(s.timed(types.StatExtremumDuration, func() {
		res.Min, res.Max, extErr = s.reducer.MinMax(seq)
	}))
	wg.Go(s.timed(types.StatMedianDuration, func() {
		res.Median, medErr = s.reducer.Median(seq)
	}))
	wg.Go(s.timed(types.StatMeanDuration, func() {
		res.Mean, meanErr = s.reducer.Mean(seq)
	}))
	wg.Go(s.timed(types.StatRunsDuration, func() {
		res.LongestIncreasing, res.LongestDecreasing, runsErr = s.reducer.Runs(seq)
	}))
	wg.Go(s.timed(types.StatDigestDuration, func() {
		res.Digest = reducer.Digest(seq)
	}))

	wg.Wait()

	for _, err := range []error{extErr, medErr, meanErr, runsErr} {
		if err != nil {
			return nil, err
		}
	}

	return res, nil
}

func (s *SeqStats) timed(stat types.Stat, pass func()) func() {
	return func() {
		start := time.Now()

		pass()

		s.StatsCollector.Timing(stat, time.Since(start).Nanoseconds())
	}
}

// ComputeFrom loads a sequence with l and computes its statistics with svc.
func ComputeFrom(ctx context.Context, svc Service, l loader.Loader) (*types.Result, error) {
	seq, err := l.Load(ctx)
	if err != nil {
		return nil, err
	}

	return svc.Compute(ctx, seq)
}

// Workers returns the number of workers of the engine's pool.
func (s *SeqStats) Workers() int {
	return s.workers
}

// MinChunkSize returns the smallest number of elements a single job folds.
func (s *SeqStats) MinChunkSize() int {
	return s.minChunkSize
}

// MedianPolicy returns how even-length medians are reported.
func (s *SeqStats) MedianPolicy() types.MedianPolicy {
	return s.medianPolicy
}

// MedianStrategy returns the order statistic algorithm.
func (s *SeqStats) MedianStrategy() types.MedianStrategy {
	return s.medianStrategy
}

// GetStats returns the stats collected by the engine.
func (s *SeqStats) GetStats() stats.Stats {
	return s.StatsCollector.GetStats()
}

// Stop shuts the worker pool down once running batches drained.
// It is idempotent. If ctx ends first, Stop returns ErrTimeoutOrCanceled and the
// pool finishes shutting down in the background.
func (s *SeqStats) Stop(ctx context.Context) error {
	if !s.stopped.CompareAndSwap(false, true) {
		return nil
	}

	done := make(chan struct{})

	go func() {
		s.pool.Shutdown()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return sentinel.ErrTimeoutOrCanceled
	}
}
