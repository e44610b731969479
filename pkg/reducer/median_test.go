package reducer

import (
	"math"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/longbridgeapp/assert"

	"github.com/hyp3rd/seqstats/types"
)

var strategies = []types.MedianStrategy{types.StrategySort, types.StrategySelect}

func TestMedian(t *testing.T) {
	tests := []struct {
		name         string
		seq          []int64
		wantExact    float64
		wantTruncate float64
	}{
		{name: "single", seq: []int64{5}, wantExact: 5, wantTruncate: 5},
		{name: "odd unsorted", seq: []int64{3, 1, 2}, wantExact: 2, wantTruncate: 2},
		{name: "odd sorted", seq: []int64{1, 2, 3}, wantExact: 2, wantTruncate: 2},
		{name: "even odd-sum middle", seq: []int64{1, 2, 3, 4}, wantExact: 2.5, wantTruncate: 2},
		{name: "even even-sum middle", seq: []int64{4, 1, 3, 5}, wantExact: 3.5, wantTruncate: 3},
		{name: "even negative middle", seq: []int64{-1, -2, -3, -4}, wantExact: -2.5, wantTruncate: -2},
		{name: "even straddling zero", seq: []int64{-1, 0}, wantExact: -0.5, wantTruncate: 0},
		{name: "duplicates", seq: []int64{7, 7, 7, 7, 1}, wantExact: 7, wantTruncate: 7},
		{name: "int64 bounds", seq: []int64{math.MaxInt64, math.MaxInt64}, wantExact: math.MaxInt64, wantTruncate: math.MaxInt64},
		{name: "opposite bounds", seq: []int64{math.MinInt64, math.MaxInt64}, wantExact: -0.5, wantTruncate: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, strategy := range strategies {
				for _, workers := range []int{1, 3} {
					exact := newParallel(t, workers, WithMedianStrategy(strategy))
					got, err := exact.Median(tt.seq)
					assert.Nil(t, err)
					assert.Equal(t, tt.wantExact, got)

					truncate := newParallel(t, workers, WithMedianStrategy(strategy), WithMedianPolicy(types.MedianTruncate))
					got, err = truncate.Median(tt.seq)
					assert.Nil(t, err)
					assert.Equal(t, tt.wantTruncate, got)
				}
			}
		})
	}
}

func TestMedian_PermutationInvariant(t *testing.T) {
	rng := rand.New(rand.NewPCG(5, 6))

	for _, n := range []int{9, 10, 333, 1000} {
		seq := randomSequence(rng, n, 50)

		sorted := slices.Clone(seq)
		slices.Sort(sorted)

		want := float64(sorted[n/2])
		if n%2 == 0 {
			want = (float64(sorted[n/2-1]) + float64(sorted[n/2])) / 2
		}

		for _, strategy := range strategies {
			r := newParallel(t, 4, WithMedianStrategy(strategy))

			for range 3 {
				rng.Shuffle(len(seq), func(i, j int) { seq[i], seq[j] = seq[j], seq[i] })

				got, err := r.Median(seq)
				assert.Nil(t, err)
				assert.Equal(t, want, got)
			}
		}
	}
}

func TestParallelSort(t *testing.T) {
	rng := rand.New(rand.NewPCG(8, 9))

	for _, workers := range []int{2, 3, 5, 8} {
		r := newParallel(t, workers)
		work := randomSequence(rng, 1234, 1000)

		err := r.sort(work)
		assert.Nil(t, err)
		assert.True(t, slices.IsSorted(work))
	}
}

func TestQuickselect(t *testing.T) {
	rng := rand.New(rand.NewPCG(10, 11))

	for _, n := range []int{1, 2, 5, 64, 500} {
		seq := randomSequence(rng, n, 3)
		sorted := slices.Clone(seq)
		slices.Sort(sorted)

		for _, k := range []int{0, n / 2, n - 1} {
			work := slices.Clone(seq)

			assert.Equal(t, sorted[k], quickselect(work, k))
			assert.Equal(t, sorted[k], work[k])

			for _, v := range work[:k] {
				assert.True(t, v <= work[k])
			}

			for _, v := range work[k+1:] {
				assert.True(t, v >= work[k])
			}
		}
	}
}

func TestMergeSorted(t *testing.T) {
	dst := make([]int64, 7)
	mergeSorted(dst, []int64{1, 4, 4, 9}, []int64{2, 4, 10})
	assert.Equal(t, []int64{1, 2, 4, 4, 4, 9, 10}, dst)
}
