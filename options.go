package seqstats

import (
	"github.com/hyp3rd/seqstats/pkg/stats"
	"github.com/hyp3rd/seqstats/types"
)

// Option is a function type that can be used to configure the `SeqStats` engine.
type Option func(*SeqStats)

// ApplyOptions applies the given options to the given engine.
func ApplyOptions(engine *SeqStats, options ...Option) {
	for _, option := range options {
		option(engine)
	}
}

// WithWorkers sets the number of workers of the engine's pool.
// Zero means one worker per available CPU.
func WithWorkers(workers int) Option {
	return func(engine *SeqStats) {
		engine.workers = workers
	}
}

// WithMinChunkSize sets the smallest number of elements a single job folds.
// Sequences shorter than two chunks are reduced on the calling goroutine.
func WithMinChunkSize(size int) Option {
	return func(engine *SeqStats) {
		engine.minChunkSize = size
	}
}

// WithMedianPolicy sets how the median of an even-length sequence is reported.
func WithMedianPolicy(policy types.MedianPolicy) Option {
	return func(engine *SeqStats) {
		engine.medianPolicy = policy
	}
}

// WithMedianStrategy sets the order statistic algorithm.
func WithMedianStrategy(strategy types.MedianStrategy) Option {
	return func(engine *SeqStats) {
		engine.medianStrategy = strategy
	}
}

// WithStatsCollector selects a stats collector by its registry name.
func WithStatsCollector(name string) Option {
	return func(engine *SeqStats) {
		engine.statsCollectorName = name
	}
}

// WithCollector sets the stats collector instance, bypassing the registry.
func WithCollector(collector stats.ICollector) Option {
	return func(engine *SeqStats) {
		engine.StatsCollector = collector
	}
}
