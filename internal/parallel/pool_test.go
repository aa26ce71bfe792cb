package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"
	"testing"
)

func TestWorkerPool_Create(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	if pool.Workers() != 4 {
		t.Errorf("Workers() = %d, want 4", pool.Workers())
	}
	if !pool.IsRunning() {
		t.Error("Pool should be running after creation")
	}
}

func TestWorkerPool_CreateDefaultWorkers(t *testing.T) {
	for _, n := range []int{0, -5} {
		pool := NewWorkerPool(n)
		if pool.Workers() != runtime.GOMAXPROCS(0) {
			t.Errorf("NewWorkerPool(%d).Workers() = %d, want GOMAXPROCS", n, pool.Workers())
		}
		pool.Close()
	}
}

func TestWorkerPool_Do(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	for _, n := range []int{0, 1, 3, 100} {
		hits := make([]int32, n)
		pool.Do(n, func(i int) { atomic.AddInt32(&hits[i], 1) })
		for i, h := range hits {
			if h != 1 {
				t.Fatalf("n=%d: item %d ran %d times", n, i, h)
			}
		}
	}
}

func TestWorkerPool_DoAfterClose(t *testing.T) {
	pool := NewWorkerPool(2)
	pool.Close()
	pool.Close() // idempotent

	if pool.IsRunning() {
		t.Error("closed pool reports running")
	}
	var ran atomic.Int64
	pool.Do(5, func(int) { ran.Add(1) })
	if ran.Load() != 5 {
		t.Errorf("ran %d items after close, want 5 on the caller", ran.Load())
	}
}

func TestWorkerPool_NestedDo(t *testing.T) {
	pool := NewWorkerPool(2)
	defer pool.Close()

	var total atomic.Int64
	pool.Do(8, func(int) {
		pool.Do(8, func(int) { total.Add(1) })
	})
	if total.Load() != 64 {
		t.Errorf("total = %d, want 64", total.Load())
	}
}

func TestWorkerPool_ConcurrentCallers(t *testing.T) {
	pool := NewWorkerPool(3)
	defer pool.Close()

	var wg sync.WaitGroup
	var total atomic.Int64
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			pool.Rows(200, func(y0, y1 int) { total.Add(int64(y1 - y0)) })
		}()
	}
	wg.Wait()
	if total.Load() != 8*200 {
		t.Errorf("rows covered = %d, want %d", total.Load(), 8*200)
	}
}

func TestBands(t *testing.T) {
	tests := []struct {
		name                     string
		height, workers, minRows int
		wantBands                int
	}{
		{"empty", 0, 4, 16, 0},
		{"short", 10, 4, 16, 1},
		{"limited by rows", 64, 8, 16, 4},
		{"limited by workers", 1000, 2, 16, 4},
		{"one worker", 100, 1, 1, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bands := Bands(tt.height, tt.workers, tt.minRows)
			if len(bands) != tt.wantBands {
				t.Fatalf("got %d bands %v, want %d", len(bands), bands, tt.wantBands)
			}
			next := 0
			for _, b := range bands {
				if b[0] != next || b[1] <= b[0] {
					t.Fatalf("bands %v are not contiguous", bands)
				}
				next = b[1]
			}
			if next != tt.height {
				t.Errorf("bands end at %d, want %d", next, tt.height)
			}
		})
	}
}

func TestRowsCoversEveryRow(t *testing.T) {
	pool := NewWorkerPool(3)
	defer pool.Close()

	for _, h := range []int{0, 1, 17, 250} {
		hits := make([]int32, h)
		pool.Rows(h, func(y0, y1 int) {
			for y := y0; y < y1; y++ {
				atomic.AddInt32(&hits[y], 1)
			}
		})
		for y, n := range hits {
			if n != 1 {
				t.Fatalf("height %d: row %d visited %d times", h, y, n)
			}
		}
	}
}

func TestSetWorkersSerial(t *testing.T) {
	SetWorkers(1)
	defer SetWorkers(0)

	var calls [][2]int
	Rows(100, func(y0, y1 int) { calls = append(calls, [2]int{y0, y1}) })
	if len(calls) != 1 || calls[0] != [2]int{0, 100} {
		t.Errorf("serial Rows calls = %v, want one [0 100] call", calls)
	}

	SetWorkers(3)
	if got := Default().Workers(); got != 3 {
		t.Errorf("Default().Workers() = %d, want 3", got)
	}
	var covered atomic.Int64
	Rows(100, func(y0, y1 int) { covered.Add(int64(y1 - y0)) })
	if covered.Load() != 100 {
		t.Errorf("covered %d rows, want 100", covered.Load())
	}
}
