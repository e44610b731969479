// Package constants defines default configuration values for the seqstats system.
// It provides standard settings for parallelism, median semantics, input locations,
// report formats and the management HTTP server.
package constants

import "time"

const (
	// DefaultWorkers is the default number of workers. Zero means one worker per
	// available CPU as reported by runtime.GOMAXPROCS.
	DefaultWorkers = 0
	// DefaultMinChunkSize is the smallest number of elements a single job processes.
	// Sequences shorter than two chunks are reduced by a single job, since forking
	// costs more than folding a few thousand integers.
	DefaultMinChunkSize = 1 << 14
	// DefaultMedianPolicy is the default median policy: fractional midpoint for even lengths.
	DefaultMedianPolicy = "exact"
	// DefaultMedianStrategy is the default order statistic strategy.
	DefaultMedianStrategy = "sort"
	// DefaultStatsCollector is the name of the default stats collector.
	DefaultStatsCollector = "default"
	// DefaultStatsWindow is the number of most recent samples a histogram stat keeps.
	// Count and Sum still cover every sample recorded.
	DefaultStatsWindow = 1024
	// DefaultLocation is the input location used when none is given.
	DefaultLocation = "10m.txt"
	// DefaultFormat is the default report format.
	DefaultFormat = "text"
	// DefaultManagementAddr is the default listen address of the management HTTP server.
	DefaultManagementAddr = "127.0.0.1:8089"
	// DefaultShutdownTimeout bounds the graceful shutdown of the management HTTP server.
	DefaultShutdownTimeout = 5 * time.Second
	// MaxLineBytes is the longest input line accepted by the line reader.
	MaxLineBytes = 1 << 20
	// StdinLocation is the location that selects the standard input.
	StdinLocation = "-"
)
