// Package attrs defines telemetry attribute keys used for observability and monitoring
// across the seqstats system. These constants provide standardized key names for
// metrics, traces, and logs to ensure consistent telemetry data collection.
package attrs

const (
	// AttrMethod identifies the service method a metric or span belongs to.
	AttrMethod = "method"
	// AttrSequenceLength represents the number of elements handed to a computation.
	// This attribute helps correlate latency with input size.
	AttrSequenceLength = "sequence.len"
	// AttrWorkers represents the number of workers the engine fans out to.
	AttrWorkers = "workers"
	// AttrMedianPolicy represents the median policy in effect for a computation,
	// so truncated and exact medians can be told apart downstream.
	AttrMedianPolicy = "median.policy"
	// AttrRunIncreasing represents the length of the longest increasing run found.
	AttrRunIncreasing = "run.increasing.len"
	// AttrRunDecreasing represents the length of the longest decreasing run found.
	AttrRunDecreasing = "run.decreasing.len"
	// AttrFailed flags a computation that returned an error.
	AttrFailed = "failed"
)
