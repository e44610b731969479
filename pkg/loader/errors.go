package loader

import (
	"strconv"

	"github.com/hyp3rd/seqstats/internal/sentinel"
)

// LoadError reports where a sequence could not be read.
// Line is 1-based; zero means the failure is not tied to a line.
type LoadError struct {
	Source string
	Line   int
	Err    error
}

func (e *LoadError) Error() string {
	msg := "load " + e.Source
	if e.Line > 0 {
		msg += ":" + strconv.Itoa(e.Line)
	}

	return msg + ": " + e.Err.Error()
}

// Unwrap returns the underlying cause.
func (e *LoadError) Unwrap() error {
	return e.Err
}

// Is makes every LoadError match sentinel.ErrLoad.
func (e *LoadError) Is(target error) bool {
	return target == sentinel.ErrLoad
}
