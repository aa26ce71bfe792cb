package parallel

import (
	"sync"
	"sync/atomic"
)

// MinBandRows is the smallest band handed to a worker. Images shorter
// than two bands are processed inline.
const MinBandRows = 16

var (
	defaultMu   sync.Mutex
	defaultPool atomic.Pointer[WorkerPool]
	serial      atomic.Bool
)

// Default returns the process-wide pool, sized to GOMAXPROCS unless
// SetWorkers chose otherwise.
func Default() *WorkerPool {
	if p := defaultPool.Load(); p != nil {
		return p
	}
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if p := defaultPool.Load(); p != nil {
		return p
	}
	p := NewWorkerPool(0)
	defaultPool.Store(p)
	return p
}

// SetWorkers resizes the process-wide pool. n <= 0 means GOMAXPROCS and
// n == 1 makes Rows run on the calling goroutine. The previous pool is
// closed; calls already running on it finish on their callers.
func SetWorkers(n int) {
	defaultMu.Lock()
	old := defaultPool.Swap(nil)
	if n != 1 {
		defaultPool.Store(NewWorkerPool(n))
	}
	serial.Store(n == 1)
	defaultMu.Unlock()

	if old != nil {
		old.Close()
	}
}

// Rows calls fn over [0, height) split into contiguous bands [y0, y1) on
// the default pool. fn must only write rows inside its band.
func Rows(height int, fn func(y0, y1 int)) {
	if serial.Load() {
		if height > 0 {
			fn(0, height)
		}
		return
	}
	Default().Rows(height, fn)
}

// Rows splits [0, height) into bands and runs fn on each, waiting for all.
func (p *WorkerPool) Rows(height int, fn func(y0, y1 int)) {
	bands := Bands(height, p.workers, MinBandRows)
	if len(bands) <= 1 {
		if height > 0 {
			fn(0, height)
		}
		return
	}
	p.Do(len(bands), func(i int) { fn(bands[i][0], bands[i][1]) })
}

// Bands splits [0, height) into at most 2*workers contiguous ranges of at
// least minRows rows each. The ranges cover every row exactly once.
func Bands(height, workers, minRows int) [][2]int {
	if height <= 0 {
		return nil
	}
	minRows = max(minRows, 1)
	n := min(max(workers, 1)*2, max(height/minRows, 1))

	bands := make([][2]int, 0, n)
	for i := range n {
		y0 := height * i / n
		y1 := height * (i + 1) / n
		if y1 > y0 {
			bands = append(bands, [2]int{y0, y1})
		}
	}
	return bands
}
