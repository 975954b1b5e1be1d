package dbscan

import "sync"

// computeNeighborhoodsParallel runs the region query of every point using
// multiple goroutines and returns the neighbor lists indexed by point.
// numWorkers controls the degree of parallelism; if <= 1 the queries run on
// the calling goroutine.
//
// Each list is exactly what a lazy query for that point would return, so a
// scan over the cached lists produces the same clustering.
func computeNeighborhoodsParallel(finder neighborFinder, n, numWorkers int) [][]int {
	lists := make([][]int, n)
	if numWorkers <= 1 || n <= 1 {
		for i := range lists {
			lists[i] = finder.neighbors(i)
		}
		return lists
	}

	// Split rows across workers. Each worker fills a contiguous range of
	// lists, so no synchronization is needed for writes.
	var wg sync.WaitGroup

	rowsPerWorker := (n + numWorkers - 1) / numWorkers

	for w := 0; w < numWorkers; w++ {
		startRow := w * rowsPerWorker
		endRow := startRow + rowsPerWorker
		if endRow > n {
			endRow = n
		}
		if startRow >= n {
			break
		}

		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				lists[i] = finder.neighbors(i)
			}
		}(startRow, endRow)
	}

	wg.Wait()
	return lists
}
