package workerpool

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/longbridgeapp/assert"

	"github.com/hyp3rd/seqstats/internal/sentinel"
)

func TestWorkerPool_RunWaitsForBatch(t *testing.T) {
	pool := NewWorkerPool(3)
	defer pool.Shutdown()

	results := make([]int, 5)

	jobs := make([]JobFunc, 0, len(results))
	for i := range results {
		jobs = append(jobs, func() error {
			time.Sleep(time.Millisecond)

			results[i] = i * i

			return nil
		})
	}

	err := pool.Run(jobs...)
	assert.Nil(t, err)
	assert.Equal(t, []int{0, 1, 4, 9, 16}, results)
}

func TestWorkerPool_RunEmptyBatch(t *testing.T) {
	pool := NewWorkerPool(1)
	defer pool.Shutdown()

	assert.Nil(t, pool.Run())
}

func TestWorkerPool_JobErrorHandling(t *testing.T) {
	pool := NewWorkerPool(2)
	defer pool.Shutdown()

	expectedErr := errors.New("job error")

	err := pool.Run(
		func() error { return expectedErr },
		func() error { return nil },
	)
	assert.True(t, err != nil)
}

func TestWorkerPool_JobPanicBecomesError(t *testing.T) {
	pool := NewWorkerPool(2)
	defer pool.Shutdown()

	var ran atomic.Int32

	err := pool.Run(
		func() error { panic("boom") },
		func() error {
			ran.Add(1)

			return nil
		},
	)
	assert.True(t, err != nil)
	assert.Equal(t, int32(1), ran.Load())

	// the pool survives the panic
	assert.Nil(t, pool.Run(func() error { return nil }))
}

func TestWorkerPool_ConcurrentBatches(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Shutdown()

	var (
		wg    sync.WaitGroup
		count atomic.Int64
	)

	for range 8 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			jobs := make([]JobFunc, 16)
			for i := range jobs {
				jobs[i] = func() error {
					count.Add(1)

					return nil
				}
			}

			assert.Nil(t, pool.Run(jobs...))
		}()
	}

	wg.Wait()
	assert.Equal(t, int64(8*16), count.Load())
}

func TestWorkerPool_DefaultsToCPUCount(t *testing.T) {
	pool := NewWorkerPool(0)
	defer pool.Shutdown()

	assert.True(t, pool.Workers() >= 1)
}

func TestWorkerPool_RunAfterShutdown(t *testing.T) {
	pool := NewWorkerPool(1)
	pool.Shutdown()
	pool.Shutdown() // idempotent

	err := pool.Run(func() error { return nil })
	assert.True(t, errors.Is(err, sentinel.ErrPoolClosed))
}

func TestSequential_RunsInOrder(t *testing.T) {
	var order []int

	err := Sequential{}.Run(
		func() error { order = append(order, 1); return nil },
		func() error { order = append(order, 2); return nil },
		func() error { order = append(order, 3); return nil },
	)
	assert.Nil(t, err)
	assert.Equal(t, []int{1, 2, 3}, order)
	assert.Equal(t, 1, Sequential{}.Workers())
}
