// Package stats collects the engine's own measurements: pass durations, call
// counts and the lengths of the sequences it was handed.
package stats

import (
	"sync"

	"github.com/hyp3rd/ewrap"

	"github.com/hyp3rd/seqstats/internal/constants"
	"github.com/hyp3rd/seqstats/internal/sentinel"
	"github.com/hyp3rd/seqstats/types"
)

// ICollector is an interface that defines the methods that a stats collector should implement.
type ICollector interface {
	// Incr increments the count of a statistic by the given value.
	Incr(stat types.Stat, value int64)
	// Decr decrements the count of a statistic by the given value.
	Decr(stat types.Stat, value int64)
	// Timing records the time it took for an event to occur.
	Timing(stat types.Stat, value int64)
	// Gauge records the current value of a statistic.
	Gauge(stat types.Stat, value int64)
	// Histogram records the statistical distribution of a set of values.
	Histogram(stat types.Stat, value int64)
	// GetStats returns the collected statistics.
	GetStats() Stats
}

// CollectorRegistry manages stats collector constructors.
type CollectorRegistry struct {
	mu         sync.RWMutex
	collectors map[string]func() (ICollector, error)
}

// NewCollectorRegistry creates a new collector registry with the default collector pre-registered.
func NewCollectorRegistry() *CollectorRegistry {
	registry := NewEmptyCollectorRegistry()

	registry.Register(constants.DefaultStatsCollector, func() (ICollector, error) {
		return NewHistogramStatsCollector(), nil
	})

	return registry
}

// NewEmptyCollectorRegistry creates a new collector registry without default collectors.
func NewEmptyCollectorRegistry() *CollectorRegistry {
	return &CollectorRegistry{
		collectors: make(map[string]func() (ICollector, error)),
	}
}

// Register registers a new stats collector with the given name.
func (r *CollectorRegistry) Register(name string, createFunc func() (ICollector, error)) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.collectors[name] = createFunc
}

// NewCollector creates a new stats collector.
func (r *CollectorRegistry) NewCollector(statsCollectorName string) (ICollector, error) {
	if statsCollectorName == "" {
		return nil, ewrap.Wrap(sentinel.ErrParamCannotBeEmpty, "statsCollectorName")
	}

	r.mu.RLock()
	createFunc, ok := r.collectors[statsCollectorName]
	r.mu.RUnlock()

	if !ok {
		return nil, ewrap.Wrap(sentinel.ErrStatsCollectorNotFound, statsCollectorName)
	}

	return createFunc()
}

// NewCollector creates a new stats collector from a registry holding the default collectors.
func NewCollector(statsCollectorName string) (ICollector, error) {
	return NewCollectorRegistry().NewCollector(statsCollectorName)
}
