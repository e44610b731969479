// Package reducer implements the statistics passes over a sequence of int64 values:
// extremum, mean, median and longest monotonic runs.
//
// Every pass splits the sequence into contiguous spans, folds each span on its own
// job and merges the partial results after the join. Merges are associative, so the
// outcome does not depend on the number of workers or on how the spans were cut.
// The sequence is never written to; the median works on a private copy.
package reducer

import (
	"github.com/hyp3rd/ewrap"

	"github.com/hyp3rd/seqstats/internal/constants"
	"github.com/hyp3rd/seqstats/internal/sentinel"
	"github.com/hyp3rd/seqstats/pkg/workerpool"
	"github.com/hyp3rd/seqstats/types"
)

// Reducer runs statistics passes on an Executor.
// A Reducer holds no per-call state and is safe for concurrent use.
type Reducer struct {
	exec         workerpool.Executor
	minChunkSize int
	policy       types.MedianPolicy
	strategy     types.MedianStrategy
}

// Option is a function type that can be used to configure the `Reducer` struct.
type Option func(*Reducer)

// WithExecutor sets the executor the passes fan out to.
// Without it, every pass runs sequentially on the calling goroutine.
func WithExecutor(exec workerpool.Executor) Option {
	return func(r *Reducer) {
		r.exec = exec
	}
}

// WithMinChunkSize sets the smallest number of elements handed to a single job.
func WithMinChunkSize(size int) Option {
	return func(r *Reducer) {
		r.minChunkSize = size
	}
}

// WithMedianPolicy sets how even-length medians are reported.
func WithMedianPolicy(policy types.MedianPolicy) Option {
	return func(r *Reducer) {
		r.policy = policy
	}
}

// WithMedianStrategy sets the order statistic algorithm.
func WithMedianStrategy(strategy types.MedianStrategy) Option {
	return func(r *Reducer) {
		r.strategy = strategy
	}
}

// New creates a Reducer. Defaults: sequential execution, exact medians computed by sorting.
func New(opts ...Option) (*Reducer, error) {
	r := &Reducer{
		exec:         workerpool.Sequential{},
		minChunkSize: constants.DefaultMinChunkSize,
		policy:       types.MedianExact,
		strategy:     types.StrategySort,
	}

	for _, opt := range opts {
		opt(r)
	}

	if r.exec == nil {
		r.exec = workerpool.Sequential{}
	}

	if r.minChunkSize < 1 {
		return nil, ewrap.Wrapf(sentinel.ErrInvalidChunkSize, "min chunk size %d", r.minChunkSize)
	}

	if !r.policy.Valid() {
		return nil, ewrap.Wrap(sentinel.ErrInvalidMedianPolicy, r.policy.String())
	}

	if !r.strategy.Valid() {
		return nil, ewrap.Wrap(sentinel.ErrInvalidMedianStrategy, r.strategy.String())
	}

	return r, nil
}

// MedianPolicy returns the median policy in effect.
func (r *Reducer) MedianPolicy() types.MedianPolicy {
	return r.policy
}

// MedianStrategy returns the order statistic algorithm in effect.
func (r *Reducer) MedianStrategy() types.MedianStrategy {
	return r.strategy
}

// span is the half-open index range [lo, hi).
type span struct {
	lo, hi int
}

func (s span) len() int { return s.hi - s.lo }

// partition cuts [0, n) into at most parts contiguous spans of at least minChunk
// elements each. A sequence shorter than two chunks yields a single span.
// Span lengths differ by at most one.
func partition(n, parts, minChunk int) []span {
	if n == 0 {
		return nil
	}

	parts = min(parts, n/minChunk)
	parts = max(parts, 1)

	spans := make([]span, parts)
	size, rem := n/parts, n%parts

	lo := 0
	for i := range spans {
		hi := lo + size
		if i < rem {
			hi++
		}

		spans[i] = span{lo: lo, hi: hi}
		lo = hi
	}

	return spans
}

func (r *Reducer) spans(n int) []span {
	return partition(n, r.exec.Workers(), r.minChunkSize)
}

// forEach runs fn once per span on the executor and waits for all of them.
// fn must only write to state owned by its index.
func (r *Reducer) forEach(spans []span, fn func(i int, s span)) error {
	if len(spans) == 1 {
		fn(0, spans[0])

		return nil
	}

	jobs := make([]workerpool.JobFunc, len(spans))
	for i, s := range spans {
		jobs[i] = func() error {
			fn(i, s)

			return nil
		}
	}

	err := r.exec.Run(jobs...)
	if err != nil {
		return ewrap.Wrap(err, "running reducer jobs")
	}

	return nil
}
