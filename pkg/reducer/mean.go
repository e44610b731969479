package reducer

import (
	"math/bits"

	"github.com/hyp3rd/ewrap"

	"github.com/hyp3rd/seqstats/internal/sentinel"
)

// two64 is 2^64 as a float64.
const two64 = 1 << 64

// int128 is a two's complement signed 128-bit integer.
// Summing any []int64 fits: |sum| <= len * 2^63 < 2^127.
type int128 struct {
	hi int64
	lo uint64
}

// add64 adds a sign-extended int64.
func (a int128) add64(v int64) int128 {
	lo, carry := bits.Add64(a.lo, uint64(v), 0)
	hi, _ := bits.Add64(uint64(a.hi), uint64(v>>63), carry)

	return int128{hi: int64(hi), lo: lo}
}

func (a int128) add(b int128) int128 {
	lo, carry := bits.Add64(a.lo, b.lo, 0)
	hi, _ := bits.Add64(uint64(a.hi), uint64(b.hi), carry)

	return int128{hi: int64(hi), lo: lo}
}

func (a int128) neg() int128 {
	lo, borrow := bits.Sub64(0, a.lo, 0)
	hi, _ := bits.Sub64(0, uint64(a.hi), borrow)

	return int128{hi: int64(hi), lo: lo}
}

// quo divides by n using integer long division and converts the quotient and the
// remainder separately, so the result only carries float64 rounding.
func (a int128) quo(n uint64) float64 {
	negative := a.hi < 0
	if negative {
		a = a.neg()
	}

	q1, r1 := bits.Div64(0, uint64(a.hi), n)
	q0, r := bits.Div64(r1, a.lo, n)

	v := float64(q1)*two64 + float64(q0) + float64(r)/float64(n)
	if negative {
		return -v
	}

	return v
}

func sum128(chunk []int64) int128 {
	var acc int128
	for _, v := range chunk {
		acc = acc.add64(v)
	}

	return acc
}

// Mean returns the arithmetic mean of seq. The sum is accumulated on 128 bits,
// so sequences whose sum exceeds the int64 range still yield the exact mean.
// It returns ErrEmptyInput when seq is empty.
func (r *Reducer) Mean(seq []int64) (float64, error) {
	if len(seq) == 0 {
		return 0, ewrap.Wrap(sentinel.ErrEmptyInput, "mean")
	}

	spans := r.spans(len(seq))
	partials := make([]int128, len(spans))

	err := r.forEach(spans, func(i int, s span) {
		partials[i] = sum128(seq[s.lo:s.hi])
	})
	if err != nil {
		return 0, err
	}

	var total int128
	for _, p := range partials {
		total = total.add(p)
	}

	return total.quo(uint64(len(seq))), nil
}
