package stats

import (
	"slices"
	"sync"

	"github.com/hyp3rd/seqstats/internal/constants"
	"github.com/hyp3rd/seqstats/pkg/reducer"
	"github.com/hyp3rd/seqstats/types"
)

// series holds the running totals of one stat and a ring of its latest samples.
type series struct {
	count  int
	sum    int64
	last   int64
	window []int64
	next   int // ring write position once window is full
}

func (s *series) add(value int64, capacity int) {
	s.count++
	s.sum += value
	s.last = value

	if len(s.window) < capacity {
		s.window = append(s.window, value)

		return
	}

	s.window[s.next] = value
	s.next = (s.next + 1) % capacity
}

// HistogramStatsCollector keeps the latest samples of every stat and summarises them on demand.
type HistogramStatsCollector struct {
	mu      sync.RWMutex
	stats   map[string]*series
	window  int
	reducer *reducer.Reducer
}

// NewHistogramStatsCollector creates a new histogram stats collector keeping
// constants.DefaultStatsWindow samples per stat.
func NewHistogramStatsCollector() *HistogramStatsCollector {
	return NewBoundedHistogramStatsCollector(constants.DefaultStatsWindow)
}

// NewBoundedHistogramStatsCollector creates a histogram stats collector keeping the
// latest window samples per stat. A window lower than one keeps a single sample.
func NewBoundedHistogramStatsCollector(window int) *HistogramStatsCollector {
	// the default reducer options are always valid
	r, _ := reducer.New()

	return &HistogramStatsCollector{
		stats:   make(map[string]*series),
		window:  max(window, 1),
		reducer: r,
	}
}

func (c *HistogramStatsCollector) record(stat types.Stat, value int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, ok := c.stats[stat.String()]
	if !ok {
		s = &series{}
		c.stats[stat.String()] = s
	}

	s.add(value, c.window)
}

// Incr increments the count of a statistic by the given value.
func (c *HistogramStatsCollector) Incr(stat types.Stat, value int64) {
	c.record(stat, value)
}

// Decr decrements the count of a statistic by the given value.
func (c *HistogramStatsCollector) Decr(stat types.Stat, value int64) {
	c.record(stat, -value)
}

// Timing records the time it took for an event to occur.
func (c *HistogramStatsCollector) Timing(stat types.Stat, value int64) {
	c.record(stat, value)
}

// Gauge records the current value of a statistic.
func (c *HistogramStatsCollector) Gauge(stat types.Stat, value int64) {
	c.record(stat, value)
}

// Histogram records the statistical distribution of a set of values.
func (c *HistogramStatsCollector) Histogram(stat types.Stat, value int64) {
	c.record(stat, value)
}

// GetStats returns a summary of every stat. Count, Sum and Last cover every
// sample recorded; Min, Max, Mean and Median cover the retained window.
func (c *HistogramStatsCollector) GetStats() Stats {
	c.mu.RLock()

	stats := make(Stats, len(c.stats))
	windows := make(map[string][]int64, len(c.stats))

	for name, s := range c.stats {
		stats[name] = &Stat{Count: s.count, Sum: s.sum, Last: s.last}
		windows[name] = slices.Clone(s.window)
	}

	c.mu.RUnlock()

	for name, values := range windows {
		// recorded windows are never empty
		stat := stats[name]
		stat.Min, stat.Max, _ = c.reducer.MinMax(values)
		stat.Mean, _ = c.reducer.Mean(values)
		stat.Median, _ = c.reducer.Median(values)
	}

	return stats
}
