package seqstats

import "github.com/hyp3rd/seqstats/internal/sentinel"

// Errors callers are expected to match with errors.Is.
var (
	ErrEmptyInput            = sentinel.ErrEmptyInput
	ErrLoad                  = sentinel.ErrLoad
	ErrOverflow              = sentinel.ErrOverflow
	ErrInvalidWorkers        = sentinel.ErrInvalidWorkers
	ErrInvalidChunkSize      = sentinel.ErrInvalidChunkSize
	ErrInvalidMedianPolicy   = sentinel.ErrInvalidMedianPolicy
	ErrInvalidMedianStrategy = sentinel.ErrInvalidMedianStrategy
	ErrInvalidConfig         = sentinel.ErrInvalidConfig
	ErrFormatNotFound        = sentinel.ErrFormatNotFound
	ErrLoaderNotFound        = sentinel.ErrLoaderNotFound
	ErrTimeoutOrCanceled     = sentinel.ErrTimeoutOrCanceled
)
