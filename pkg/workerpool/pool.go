// Package workerpool provides the fork-join executor the reducers fan out to.
// A WorkerPool keeps a fixed set of goroutines alive across computations; each call to
// Run submits a batch of jobs and blocks until every job of that batch finished.
package workerpool

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/hyp3rd/ewrap"

	"github.com/hyp3rd/seqstats/internal/sentinel"
)

// JobFunc is a function that can be enqueued in a worker pool.
type JobFunc func() error

// Executor runs a batch of jobs and returns once all of them completed.
// Jobs of a batch may run concurrently and in any order.
type Executor interface {
	Run(jobs ...JobFunc) error
	// Workers returns the degree of parallelism the executor offers.
	Workers() int
}

// batch tracks the completion of the jobs submitted by a single Run call.
type batch struct {
	wg   sync.WaitGroup
	errs []error
}

type task struct {
	job   JobFunc
	batch *batch
	index int
}

// WorkerPool is a pool of workers that can execute jobs concurrently.
type WorkerPool struct {
	mu      sync.RWMutex // guards closed and sends on jobs
	workers int
	closed  bool
	jobs    chan task
	wg      sync.WaitGroup // running worker goroutines
}

// NewWorkerPool creates a new worker pool with the given number of workers.
// A count lower than one starts one worker per available CPU.
func NewWorkerPool(workers int) *WorkerPool {
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}

	pool := &WorkerPool{
		workers: workers,
		jobs:    make(chan task, workers),
	}
	pool.start()

	return pool
}

// Workers returns the number of workers. It is fixed for the pool's lifetime.
func (pool *WorkerPool) Workers() int {
	return pool.workers
}

// Run enqueues the jobs and waits for all of them to finish.
// Errors returned by jobs, and panics raised by them, are aggregated into the returned error.
func (pool *WorkerPool) Run(jobs ...JobFunc) error {
	if len(jobs) == 0 {
		return nil
	}

	b := &batch{errs: make([]error, len(jobs))}
	b.wg.Add(len(jobs))

	pool.mu.RLock()

	if pool.closed {
		pool.mu.RUnlock()

		return sentinel.ErrPoolClosed
	}

	for i, job := range jobs {
		pool.jobs <- task{job: job, batch: b, index: i}
	}

	pool.mu.RUnlock()

	b.wg.Wait()

	eg := ewrap.NewErrorGroup()

	for _, err := range b.errs {
		if err != nil {
			eg.Add(err)
		}
	}

	return eg.ErrorOrNil()
}

// Shutdown shuts down the worker pool. Jobs already enqueued are drained first.
func (pool *WorkerPool) Shutdown() {
	pool.mu.Lock()

	if pool.closed {
		pool.mu.Unlock()

		return
	}

	pool.closed = true
	close(pool.jobs)
	pool.mu.Unlock()

	pool.wg.Wait()
}

// start starts the worker pool.
func (pool *WorkerPool) start() {
	pool.wg.Add(pool.workers)

	for range pool.workers {
		go pool.worker()
	}
}

// worker is the main loop executed by each worker goroutine.
// It returns once the jobs channel is closed and drained.
func (pool *WorkerPool) worker() {
	defer pool.wg.Done()

	for t := range pool.jobs {
		t.batch.errs[t.index] = execute(t.job)
		t.batch.wg.Done()
	}
}

// execute runs a job, turning a panic into an error so the batch can still complete.
func execute(job JobFunc) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = ewrap.Wrap(sentinel.ErrJobPanic, fmt.Sprint(r))
		}
	}()

	return job()
}

// Sequential is an Executor running every job on the calling goroutine, in order.
type Sequential struct{}

// Run runs the jobs one after the other and aggregates their errors.
func (Sequential) Run(jobs ...JobFunc) error {
	eg := ewrap.NewErrorGroup()

	for _, job := range jobs {
		err := execute(job)
		if err != nil {
			eg.Add(err)
		}
	}

	return eg.ErrorOrNil()
}

// Workers always returns one.
func (Sequential) Workers() int { return 1 }
