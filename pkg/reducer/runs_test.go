package reducer

import (
	"math/rand/v2"
	"testing"

	"github.com/longbridgeapp/assert"

	"github.com/hyp3rd/seqstats/types"
)

// referenceRuns is the plain single-pass scan the segmented scanner must agree with.
func referenceRuns(seq []int64) (inc, dec []int64) {
	if len(seq) == 0 {
		return []int64{}, []int64{}
	}

	var curInc, curDec []int64

	curInc = append(curInc, seq[0])
	curDec = append(curDec, seq[0])

	for _, v := range seq[1:] {
		if v > curInc[len(curInc)-1] {
			curInc = append(curInc, v)
		} else {
			if len(curInc) > len(inc) {
				inc = curInc
			}

			curInc = []int64{v}
		}

		if v < curDec[len(curDec)-1] {
			curDec = append(curDec, v)
		} else {
			if len(curDec) > len(dec) {
				dec = curDec
			}

			curDec = []int64{v}
		}
	}

	if len(curInc) > len(inc) {
		inc = curInc
	}

	if len(curDec) > len(dec) {
		dec = curDec
	}

	return inc, dec
}

func TestRuns(t *testing.T) {
	tests := []struct {
		name     string
		seq      []int64
		wantInc  types.Run
		wantDecr types.Run
	}{
		{
			name:     "up then down",
			seq:      []int64{1, 2, 3, 2, 1},
			wantInc:  types.Run{Direction: types.Increasing, Start: 0, Length: 3, Values: []int64{1, 2, 3}},
			wantDecr: types.Run{Direction: types.Decreasing, Start: 2, Length: 3, Values: []int64{3, 2, 1}},
		},
		{
			name:     "single element",
			seq:      []int64{5},
			wantInc:  types.Run{Direction: types.Increasing, Start: 0, Length: 1, Values: []int64{5}},
			wantDecr: types.Run{Direction: types.Decreasing, Start: 0, Length: 1, Values: []int64{5}},
		},
		{
			name:     "equal neighbours are not strict",
			seq:      []int64{1, 1, 1},
			wantInc:  types.Run{Direction: types.Increasing, Start: 0, Length: 1, Values: []int64{1}},
			wantDecr: types.Run{Direction: types.Decreasing, Start: 0, Length: 1, Values: []int64{1}},
		},
		{
			name:     "tie keeps the earliest",
			seq:      []int64{1, 2, 3, 0, -1, 5, 6},
			wantInc:  types.Run{Direction: types.Increasing, Start: 0, Length: 3, Values: []int64{1, 2, 3}},
			wantDecr: types.Run{Direction: types.Decreasing, Start: 2, Length: 3, Values: []int64{3, 0, -1}},
		},
		{
			name:     "open run is the longest",
			seq:      []int64{5, 4, 1, 2, 3, 4},
			wantInc:  types.Run{Direction: types.Increasing, Start: 2, Length: 4, Values: []int64{1, 2, 3, 4}},
			wantDecr: types.Run{Direction: types.Decreasing, Start: 0, Length: 3, Values: []int64{5, 4, 1}},
		},
		{
			name:     "plateau breaks the run",
			seq:      []int64{1, 2, 2, 3},
			wantInc:  types.Run{Direction: types.Increasing, Start: 0, Length: 2, Values: []int64{1, 2}},
			wantDecr: types.Run{Direction: types.Decreasing, Start: 0, Length: 1, Values: []int64{1}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, workers := range []int{1, 2, 3, 8} {
				r := newParallel(t, workers)

				inc, dec, err := r.Runs(tt.seq)
				assert.Nil(t, err)
				assert.Equal(t, tt.wantInc, inc)
				assert.Equal(t, tt.wantDecr, dec)
			}
		})
	}
}

func TestRuns_AcrossSegmentBoundaries(t *testing.T) {
	// a single increasing run spanning every segment
	seq := make([]int64, 100)
	for i := range seq {
		seq[i] = int64(i)
	}

	for _, workers := range []int{2, 3, 7, 100} {
		r := newParallel(t, workers)

		inc, dec, err := r.Runs(seq)
		assert.Nil(t, err)
		assert.Equal(t, 0, inc.Start)
		assert.Equal(t, 100, inc.Length)
		assert.Equal(t, 0, dec.Start)
		assert.Equal(t, 1, dec.Length)
	}
}

func TestRuns_MatchReferenceScan(t *testing.T) {
	rng := rand.New(rand.NewPCG(12, 13))

	for _, n := range []int{2, 3, 10, 97, 500} {
		for _, spread := range []int64{1, 2, 10} {
			seq := randomSequence(rng, n, spread)
			wantInc, wantDec := referenceRuns(seq)

			for _, workers := range []int{1, 2, 4, 9, 32} {
				r := newParallel(t, workers)

				inc, dec, err := r.Runs(seq)
				assert.Nil(t, err)
				assert.Equal(t, wantInc, inc.Values)
				assert.Equal(t, wantDec, dec.Values)
				assert.Equal(t, len(wantInc), inc.Length)
				assert.Equal(t, seq[inc.Start:inc.End()], inc.Values)
				assert.Equal(t, seq[dec.Start:dec.End()], dec.Values)
			}
		}
	}
}

func TestRuns_AreStrictAndMaximal(t *testing.T) {
	rng := rand.New(rand.NewPCG(14, 15))
	seq := randomSequence(rng, 2000, 4)

	r := newParallel(t, 5)

	inc, dec, err := r.Runs(seq)
	assert.Nil(t, err)

	for _, run := range []types.Run{inc, dec} {
		ext := increasing
		if run.Direction == types.Decreasing {
			ext = decreasing
		}

		for i := 1; i < len(run.Values); i++ {
			assert.True(t, ext(run.Values[i-1], run.Values[i]))
		}

		if run.Start > 0 {
			assert.False(t, ext(seq[run.Start-1], seq[run.Start]))
		}

		if run.End() < len(seq) {
			assert.False(t, ext(seq[run.End()-1], seq[run.End()]))
		}
	}
}
