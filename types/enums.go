package types

import "strings"

// Direction tags a run with its monotonicity.
type Direction string

// Constants for the two run directions.
const (
	Increasing Direction = "increasing" // every element is strictly greater than the previous one
	Decreasing Direction = "decreasing" // every element is strictly lower than the previous one
)

// String returns the string representation of the Direction.
func (d Direction) String() string {
	return string(d)
}

// MedianPolicy selects how the median of an even-length sequence is reported.
type MedianPolicy string

const (
	// MedianExact reports the fractional midpoint of the two middle elements.
	MedianExact MedianPolicy = "exact"
	// MedianTruncate reports the midpoint truncated toward zero, as integer division would.
	// For [1, 2, 3, 4] it yields 2 instead of 2.5.
	MedianTruncate MedianPolicy = "truncate"
)

// String returns the string representation of the MedianPolicy.
func (p MedianPolicy) String() string {
	return string(p)
}

// Valid reports whether the policy is known.
func (p MedianPolicy) Valid() bool {
	return p == MedianExact || p == MedianTruncate
}

// ParseMedianPolicy parses a policy name, case-insensitively.
func ParseMedianPolicy(s string) (MedianPolicy, bool) {
	p := MedianPolicy(strings.ToLower(strings.TrimSpace(s)))

	return p, p.Valid()
}

// MedianStrategy selects the algorithm of the order statistic engine.
type MedianStrategy string

const (
	// StrategySort sorts a private copy of the sequence in parallel.
	StrategySort MedianStrategy = "sort"
	// StrategySelect runs quickselect on a private copy of the sequence.
	StrategySelect MedianStrategy = "select"
)

// String returns the string representation of the MedianStrategy.
func (s MedianStrategy) String() string {
	return string(s)
}

// Valid reports whether the strategy is known.
func (s MedianStrategy) Valid() bool {
	return s == StrategySort || s == StrategySelect
}

// ParseMedianStrategy parses a strategy name, case-insensitively.
func ParseMedianStrategy(s string) (MedianStrategy, bool) {
	st := MedianStrategy(strings.ToLower(strings.TrimSpace(s)))

	return st, st.Valid()
}

// Stat is a type that represents a different stat values that can be collected by the stats collector.
type Stat string

const (
	// StatComputeDuration is the wall time of a whole computation, in nanoseconds.
	StatComputeDuration Stat = "seqstats_compute_duration"
	// StatComputeCount counts computations.
	StatComputeCount Stat = "seqstats_compute_count"
	// StatComputeErrors counts failed computations.
	StatComputeErrors Stat = "seqstats_compute_errors"
	// StatExtremumDuration is the wall time of the min/max pass.
	StatExtremumDuration Stat = "seqstats_extremum_duration"
	// StatMedianDuration is the wall time of the median pass.
	StatMedianDuration Stat = "seqstats_median_duration"
	// StatMeanDuration is the wall time of the mean pass.
	StatMeanDuration Stat = "seqstats_mean_duration"
	// StatRunsDuration is the wall time of the run-length pass.
	StatRunsDuration Stat = "seqstats_runs_duration"
	// StatDigestDuration is the wall time of the digest pass.
	StatDigestDuration Stat = "seqstats_digest_duration"
	// StatSequenceLength records the length of every sequence handed to the engine.
	StatSequenceLength Stat = "seqstats_sequence_length"

	// StatServiceDuration is the wall time of a call through the stats middleware,
	// decorators below it included.
	StatServiceDuration Stat = "seqstats_service_compute_duration"
	// StatServiceCount counts calls through the stats middleware.
	StatServiceCount Stat = "seqstats_service_compute_count"
	// StatServiceErrors counts failed calls through the stats middleware.
	StatServiceErrors Stat = "seqstats_service_compute_errors"
)

// String returns the string representation of a Stat.
func (s Stat) String() string {
	return string(s)
}
