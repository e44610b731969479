package seqstats

import (
	"context"

	"github.com/hyp3rd/seqstats/pkg/stats"
	"github.com/hyp3rd/seqstats/types"
)

// Service is the service interface of the statistics engine.
// It enables middleware to be added to the service.
type Service interface {
	// Compute runs every statistic over seq. seq is not modified.
	Compute(ctx context.Context, seq []int64) (*types.Result, error)
	// Workers returns the degree of parallelism of the engine
	Workers() int
	// MedianPolicy returns how even-length medians are reported
	MedianPolicy() types.MedianPolicy
	// MedianStrategy returns the order statistic algorithm
	MedianStrategy() types.MedianStrategy
	// GetStats returns the engine's own measurements
	GetStats() stats.Stats
	// Stop releases the workers
	Stop(ctx context.Context) error
}

// Middleware describes a service middleware.
type Middleware func(Service) Service

// ApplyMiddleware applies middlewares to a service, the first one being the innermost.
func ApplyMiddleware(svc Service, mw ...Middleware) Service {
	for _, m := range mw {
		svc = m(svc)
	}

	return svc
}
