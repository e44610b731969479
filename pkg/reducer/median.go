package reducer

import (
	"math/bits"
	"slices"

	"github.com/hyp3rd/ewrap"

	"github.com/hyp3rd/seqstats/internal/sentinel"
	"github.com/hyp3rd/seqstats/pkg/workerpool"
	"github.com/hyp3rd/seqstats/types"
)

// Median returns the median of seq: the middle element for odd lengths, the midpoint
// of the two middle elements for even lengths. How a fractional midpoint is reported
// depends on the MedianPolicy: MedianExact keeps the .5, MedianTruncate rounds toward zero.
//
// seq is left untouched; the order statistic is computed on a private copy.
// It returns ErrEmptyInput when seq is empty.
func (r *Reducer) Median(seq []int64) (float64, error) {
	if len(seq) == 0 {
		return 0, ewrap.Wrap(sentinel.ErrEmptyInput, "median")
	}

	work := slices.Clone(seq)
	n := len(work)

	var lower, upper int64

	switch r.strategy {
	case types.StrategySelect:
		upper = quickselect(work, n/2)
		lower = upper

		if n%2 == 0 {
			// quickselect leaves the n/2 smallest elements in front of index n/2.
			lower = slices.Max(work[:n/2])
		}
	default:
		err := r.sort(work)
		if err != nil {
			return 0, err
		}

		upper = work[n/2]
		lower = upper

		if n%2 == 0 {
			lower = work[n/2-1]
		}
	}

	return midpoint(lower, upper, r.policy), nil
}

// midpoint returns (a+b)/2 without overflowing int64.
func midpoint(a, b int64, policy types.MedianPolicy) float64 {
	// a+b == 2*(a&b) + (a^b); the arithmetic shift floors.
	floor := (a & b) + ((a ^ b) >> 1)

	if (a^b)&1 == 0 {
		return float64(floor)
	}

	if policy == types.MedianTruncate {
		if floor < 0 {
			return float64(floor + 1)
		}

		return float64(floor)
	}

	return float64(floor) + 0.5
}

// sort sorts work in place: spans are sorted concurrently, then merged pairwise,
// one round per halving, ping-ponging between work and a scratch buffer.
func (r *Reducer) sort(work []int64) error {
	spans := r.spans(len(work))
	if len(spans) == 1 {
		slices.Sort(work)

		return nil
	}

	err := r.forEach(spans, func(_ int, s span) {
		slices.Sort(work[s.lo:s.hi])
	})
	if err != nil {
		return err
	}

	src, dst := work, make([]int64, len(work))

	for len(spans) > 1 {
		next := make([]span, 0, (len(spans)+1)/2)
		jobs := make([]workerpool.JobFunc, 0, cap(next))

		for i := 0; i < len(spans); i += 2 {
			if i+1 == len(spans) {
				s := spans[i]
				jobs = append(jobs, func() error {
					copy(dst[s.lo:s.hi], src[s.lo:s.hi])

					return nil
				})
				next = append(next, s)

				continue
			}

			a, b := spans[i], spans[i+1]
			jobs = append(jobs, func() error {
				mergeSorted(dst[a.lo:b.hi], src[a.lo:a.hi], src[b.lo:b.hi])

				return nil
			})
			next = append(next, span{lo: a.lo, hi: b.hi})
		}

		err = r.exec.Run(jobs...)
		if err != nil {
			return ewrap.Wrap(err, "merging sorted spans")
		}

		spans = next
		src, dst = dst, src
	}

	if &src[0] != &work[0] {
		copy(work, src)
	}

	return nil
}

// mergeSorted merges the sorted slices a and b into dst, which must hold len(a)+len(b) elements.
func mergeSorted(dst, a, b []int64) {
	i, j, k := 0, 0, 0

	for i < len(a) && j < len(b) {
		if b[j] < a[i] {
			dst[k] = b[j]
			j++
		} else {
			dst[k] = a[i]
			i++
		}

		k++
	}

	k += copy(dst[k:], a[i:])
	copy(dst[k:], b[j:])
}

// quickselect places the k-th smallest element of a at index k and returns it.
// Every element before k is lower or equal, every element after is greater or equal.
// Partitioning is three-way so runs of equal values do not degrade it; past a depth
// budget the remaining range is sorted instead.
func quickselect(a []int64, k int) int64 {
	lo, hi := 0, len(a)
	budget := 2 * bits.Len(uint(len(a)))

	for hi-lo > 1 {
		if budget == 0 {
			slices.Sort(a[lo:hi])

			return a[k]
		}

		budget--

		pivot := medianOfThree(a[lo], a[lo+(hi-lo)/2], a[hi-1])
		lt, gt := partition3(a, lo, hi, pivot)

		switch {
		case k < lt:
			hi = lt
		case k >= gt:
			lo = gt
		default:
			return pivot
		}
	}

	return a[k]
}

func medianOfThree(x, y, z int64) int64 {
	if x > y {
		x, y = y, x
	}

	if y > z {
		y = z
	}

	return max(x, y)
}

// partition3 rearranges a[lo:hi] so that a[lo:lt] < pivot, a[lt:gt] == pivot and a[gt:hi] > pivot.
func partition3(a []int64, lo, hi int, pivot int64) (lt, gt int) {
	lt, gt = lo, hi

	for i := lo; i < gt; {
		switch {
		case a[i] < pivot:
			a[lt], a[i] = a[i], a[lt]
			lt++
			i++
		case a[i] > pivot:
			gt--
			a[i], a[gt] = a[gt], a[i]
		default:
			i++
		}
	}

	return lt, gt
}
