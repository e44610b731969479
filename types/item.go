// Package types holds the values exchanged between the seqstats engine, its reducers
// and the reporters.
package types

// Run is a maximal contiguous, strictly monotonic sub-sequence.
// Runs are compared by Length only; the one found first wins ties.
type Run struct {
	Direction Direction `json:"direction" msgpack:"direction" codec:"direction"`
	Start     int       `json:"start"     msgpack:"start"     codec:"start"`
	Length    int       `json:"length"    msgpack:"length"    codec:"length"`
	Values    []int64   `json:"values"    msgpack:"values"    codec:"values"`
}

// Empty reports whether the run holds no element.
func (r Run) Empty() bool {
	return r.Length == 0
}

// End returns the index one past the last element of the run.
func (r Run) End() int {
	return r.Start + r.Length
}

// Result aggregates every statistic computed over a sequence.
type Result struct {
	Count             int          `json:"count"              msgpack:"count"              codec:"count"`
	Min               int64        `json:"min"                msgpack:"min"                codec:"min"`
	Max               int64        `json:"max"                msgpack:"max"                codec:"max"`
	Median            float64      `json:"median"             msgpack:"median"             codec:"median"`
	MedianPolicy      MedianPolicy `json:"median_policy"      msgpack:"median_policy"      codec:"median_policy"`
	Mean              float64      `json:"mean"               msgpack:"mean"               codec:"mean"`
	LongestIncreasing Run          `json:"longest_increasing" msgpack:"longest_increasing" codec:"longest_increasing"`
	LongestDecreasing Run          `json:"longest_decreasing" msgpack:"longest_decreasing" codec:"longest_decreasing"`
	Digest            string       `json:"digest"             msgpack:"digest"             codec:"digest"`
}
