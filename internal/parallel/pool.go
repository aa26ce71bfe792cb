// Package parallel runs row-banded image work on a shared worker pool.
//
// Bands write disjoint rows, so results do not depend on scheduling and
// renders stay reproducible for a fixed seed.
package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// WorkerPool is a pool of goroutines that help with batches of indexed
// work.
//
// A batch is claimed item by item from a shared counter. The submitting
// goroutine claims items too, so a batch completes even when every worker
// is busy elsewhere or the pool has been closed, and nested batches cannot
// deadlock.
//
// Thread safety: WorkerPool is safe for concurrent use.
type WorkerPool struct {
	workers int
	batches chan *batch
	done    chan struct{}
	wg      sync.WaitGroup
	running atomic.Bool
}

// batch is n items of fn, handed out in index order.
type batch struct {
	n       int
	fn      func(i int)
	next    atomic.Int64
	pending sync.WaitGroup
}

// drain claims and runs items until none are left.
func (b *batch) drain() {
	for {
		i := int(b.next.Add(1) - 1)
		if i >= b.n {
			return
		}
		b.fn(i)
		b.pending.Done()
	}
}

// NewWorkerPool creates a pool with the given number of workers.
// If workers is 0 or negative, GOMAXPROCS is used.
func NewWorkerPool(workers int) *WorkerPool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	p := &WorkerPool{
		workers: workers,
		batches: make(chan *batch, workers),
		done:    make(chan struct{}),
	}
	p.running.Store(true)

	p.wg.Add(workers)
	for range workers {
		go p.worker()
	}
	return p
}

func (p *WorkerPool) worker() {
	defer p.wg.Done()
	for {
		select {
		case <-p.done:
			return
		case b := <-p.batches:
			b.drain()
		}
	}
}

// Do calls fn(i) for every i in [0, n) and returns when all calls have
// finished. Idle workers join in; the caller always does its share.
func (p *WorkerPool) Do(n int, fn func(i int)) {
	if n <= 0 {
		return
	}
	b := &batch{n: n, fn: fn}
	b.pending.Add(n)

	if p.running.Load() {
		// One offer per extra item at most; a full queue means the
		// workers are saturated and the caller carries on alone.
	offer:
		for range min(p.workers, n-1) {
			select {
			case p.batches <- b:
			default:
				break offer
			}
		}
	}

	b.drain()
	b.pending.Wait()
}

// Close stops the workers. Batches in flight finish on their callers. It
// is safe to call more than once.
func (p *WorkerPool) Close() {
	if !p.running.CompareAndSwap(true, false) {
		return
	}
	close(p.done)
	p.wg.Wait()
}

// Workers returns the number of workers in the pool.
func (p *WorkerPool) Workers() int { return p.workers }

// IsRunning reports whether the pool still has workers.
func (p *WorkerPool) IsRunning() bool { return p.running.Load() }
