package reducer

import (
	"slices"

	"github.com/hyp3rd/seqstats/types"
)

// extends reports whether next continues a run ending in prev.
type extends func(prev, next int64) bool

func increasing(prev, next int64) bool { return next > prev }

func decreasing(prev, next int64) bool { return next < prev }

// runSummary describes the runs of one direction inside the span [lo, hi).
// prefix is the length of the run starting at lo, suffix the length of the run
// ending at hi-1, and best the longest run of the span, earliest on ties.
// Runs touching the span bounds may continue in the neighbouring spans.
type runSummary struct {
	lo, hi    int
	prefix    int
	suffix    int
	bestStart int
	bestLen   int
}

// scanRuns closes a run on every element that does not extend it and keeps the
// longest closed run, replacing it only on strict improvement.
func scanRuns(seq []int64, s span, ext extends) runSummary {
	sum := runSummary{lo: s.lo, hi: s.hi, bestStart: s.lo, bestLen: 1}
	start := s.lo

	closeRun := func(end int) {
		if l := end - start; l > sum.bestLen {
			sum.bestStart, sum.bestLen = start, l
		}

		if start == s.lo {
			sum.prefix = end - s.lo
		}
	}

	for i := s.lo + 1; i < s.hi; i++ {
		if ext(seq[i-1], seq[i]) {
			continue
		}

		closeRun(i)
		start = i
	}

	// the open run may be the longest and is never closed by the loop
	closeRun(s.hi)
	sum.suffix = s.hi - start

	return sum
}

// mergeRuns combines the summaries of two adjacent spans, left before right.
// Across the boundary, the suffix run of left and the prefix run of right form
// a single run when seq[left.hi-1] and seq[right.lo] continue the direction.
// Candidates are considered in start order so ties keep the earliest run.
func mergeRuns(seq []int64, left, right runSummary, ext extends) runSummary {
	merged := runSummary{
		lo:        left.lo,
		hi:        right.hi,
		prefix:    left.prefix,
		suffix:    right.suffix,
		bestStart: left.bestStart,
		bestLen:   left.bestLen,
	}

	if ext(seq[left.hi-1], seq[right.lo]) {
		if left.prefix == left.hi-left.lo {
			merged.prefix = left.prefix + right.prefix
		}

		if right.suffix == right.hi-right.lo {
			merged.suffix = right.suffix + left.suffix
		}

		if joined := left.suffix + right.prefix; joined > merged.bestLen {
			merged.bestStart, merged.bestLen = left.hi-left.suffix, joined
		}
	}

	if right.bestLen > merged.bestLen {
		merged.bestStart, merged.bestLen = right.bestStart, right.bestLen
	}

	return merged
}

func (s runSummary) run(seq []int64, dir types.Direction) types.Run {
	return types.Run{
		Direction: dir,
		Start:     s.bestStart,
		Length:    s.bestLen,
		Values:    slices.Clone(seq[s.bestStart : s.bestStart+s.bestLen]),
	}
}

// Runs returns the longest strictly increasing and the longest strictly decreasing
// contiguous runs of seq. Equal neighbours break both directions, so every element
// is at least a run of length one. When several runs share the maximal length, the
// earliest one is returned. An empty seq yields two empty runs.
//
// Each span is scanned independently; the summaries are then folded left to right.
func (r *Reducer) Runs(seq []int64) (inc, dec types.Run, err error) {
	if len(seq) == 0 {
		return emptyRun(types.Increasing), emptyRun(types.Decreasing), nil
	}

	spans := r.spans(len(seq))
	incs := make([]runSummary, len(spans))
	decs := make([]runSummary, len(spans))

	err = r.forEach(spans, func(i int, s span) {
		incs[i] = scanRuns(seq, s, increasing)
		decs[i] = scanRuns(seq, s, decreasing)
	})
	if err != nil {
		return inc, dec, err
	}

	incAcc, decAcc := incs[0], decs[0]
	for i := 1; i < len(spans); i++ {
		incAcc = mergeRuns(seq, incAcc, incs[i], increasing)
		decAcc = mergeRuns(seq, decAcc, decs[i], decreasing)
	}

	return incAcc.run(seq, types.Increasing), decAcc.run(seq, types.Decreasing), nil
}

func emptyRun(dir types.Direction) types.Run {
	return types.Run{Direction: dir, Values: []int64{}}
}
