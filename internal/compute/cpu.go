package compute

import (
	"runtime"
	"sync"
)

// minParallelCells below this count ParallelFor just runs inline; spinning
// up goroutines for a handful of cells costs more than it saves.
const minParallelCells = 4096

var workers = runtime.NumCPU()

// SetWorkers overrides the goroutine fan-out used by ParallelFor. Mostly
// useful in tests that want deterministic single-goroutine execution.
func SetWorkers(n int) {
	if n > 0 {
		workers = n
	}
}

// ParallelFor calls fn(i) for every i in [0, n), chunking the range across
// workers goroutines and blocking until all of them finish. fn must not
// write to any location another index's call might read — every LB kernel
// built on top of ParallelFor reads only the previous step's fields and
// writes into a fresh output buffer, so this holds by construction.
func ParallelFor(n int, fn func(i int)) {
	if n <= 0 {
		return
	}
	if n < minParallelCells || workers <= 1 {
		for i := 0; i < n; i++ {
			fn(i)
		}
		return
	}

	chunkSize := (n + workers - 1) / workers
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		start := w * chunkSize
		if start >= n {
			break
		}
		end := start + chunkSize
		if end > n {
			end = n
		}
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				fn(i)
			}
		}(start, end)
	}
	wg.Wait()
}
