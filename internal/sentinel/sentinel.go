// Package sentinel provides standardized error definitions for the seqstats system.
// This package centralizes all error types used across the seqstats components,
// ensuring consistent error handling and messaging throughout the application.
//
// The errors defined here cover various scenarios including:
// - Input failures (unreadable or unparsable sources, empty sequences)
// - Invalid configuration parameters (workers, chunk sizes, median policies)
// - Component lookup failures (loaders, serializers, report formats, stats collectors)
// - Runtime operation errors (closed pools, panicking jobs, cancellations)
//
// All errors are created using the ewrap package to provide enhanced error
// wrapping and context capabilities.
package sentinel

import (
	"github.com/hyp3rd/ewrap"
)

var (
	// ErrEmptyInput is returned when min, max, median or mean is requested on an empty sequence.
	ErrEmptyInput = ewrap.New("empty input sequence")

	// ErrLoad is returned when the input source cannot be read or a line is not a valid integer.
	ErrLoad = ewrap.New("failed to load input sequence")

	// ErrOverflow is returned when a summation exceeds the range of its accumulator.
	ErrOverflow = ewrap.New("accumulator overflow")

	// ErrParamCannotBeEmpty is returned when a parameter cannot be empty.
	ErrParamCannotBeEmpty = ewrap.New("param cannot be empty")

	// ErrStatsCollectorNotFound is returned when a stats collector is not found.
	ErrStatsCollectorNotFound = ewrap.New("stats collector not found")

	// ErrSerializerNotFound is returned when a serializer is not found.
	ErrSerializerNotFound = ewrap.New("serializer not found")

	// ErrLoaderNotFound is returned when no loader is registered for a location scheme.
	ErrLoaderNotFound = ewrap.New("loader not found")

	// ErrFormatNotFound is returned when a report format is not supported.
	ErrFormatNotFound = ewrap.New("report format not found")

	// ErrInvalidWorkers is returned when a negative worker count is configured.
	ErrInvalidWorkers = ewrap.New("workers cannot be negative")

	// ErrInvalidChunkSize is returned when the minimum chunk size is lower than one.
	ErrInvalidChunkSize = ewrap.New("min chunk size must be positive")

	// ErrInvalidMedianPolicy is returned when an unknown median policy is configured.
	ErrInvalidMedianPolicy = ewrap.New("invalid median policy")

	// ErrInvalidMedianStrategy is returned when an unknown median strategy is configured.
	ErrInvalidMedianStrategy = ewrap.New("invalid median strategy")

	// ErrPoolClosed is returned when jobs are submitted to a worker pool that was shut down.
	ErrPoolClosed = ewrap.New("worker pool is closed")

	// ErrJobPanic is returned when a job panicked while running on the worker pool.
	ErrJobPanic = ewrap.New("job panicked")

	// ErrInvalidConfig is returned when a configuration file does not match the schema.
	ErrInvalidConfig = ewrap.New("invalid configuration")

	// ErrNilClient is returned when a nil client is passed to a loader.
	ErrNilClient = ewrap.New("nil client")

	// ErrTimeoutOrCanceled is returned when a timeout or cancellation occurs.
	ErrTimeoutOrCanceled = ewrap.New("the operation timed out or was canceled")

	// ErrMgmtHTTPShutdownTimeout is returned when the management HTTP server fails to shutdown before context deadline.
	ErrMgmtHTTPShutdownTimeout = ewrap.New("management http shutdown timeout")
)
