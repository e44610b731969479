package reducer

import (
	"github.com/hyp3rd/ewrap"

	"github.com/hyp3rd/seqstats/internal/sentinel"
)

// extremum is the partial (min, max) of a span.
type extremum struct {
	min, max int64
}

func (e extremum) merge(o extremum) extremum {
	return extremum{min: min(e.min, o.min), max: max(e.max, o.max)}
}

// foldExtremum scans a non-empty chunk once for both bounds.
func foldExtremum(chunk []int64) extremum {
	e := extremum{min: chunk[0], max: chunk[0]}

	for _, v := range chunk[1:] {
		if v < e.min {
			e.min = v
		} else if v > e.max {
			e.max = v
		}
	}

	return e
}

// MinMax returns the smallest and the largest element of seq.
// It returns ErrEmptyInput when seq is empty.
func (r *Reducer) MinMax(seq []int64) (minVal, maxVal int64, err error) {
	if len(seq) == 0 {
		return 0, 0, ewrap.Wrap(sentinel.ErrEmptyInput, "min/max")
	}

	spans := r.spans(len(seq))
	partials := make([]extremum, len(spans))

	err = r.forEach(spans, func(i int, s span) {
		partials[i] = foldExtremum(seq[s.lo:s.hi])
	})
	if err != nil {
		return 0, 0, err
	}

	acc := partials[0]
	for _, p := range partials[1:] {
		acc = acc.merge(p)
	}

	return acc.min, acc.max, nil
}
