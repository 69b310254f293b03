package engine

import "sync"

// minChunk is the smallest slice of the active set worth a goroutine.
const minChunk = 2048

// parallelFor splits [0, n) into at most workers contiguous chunks of at
// least minChunk items and runs fn on each concurrently. Chunk i always
// covers a lower range than chunk i+1. It returns the number of chunks.
func parallelFor(n, workers, minChunk int, fn func(chunk, start, end int)) int {
	if n == 0 {
		return 0
	}
	if n <= minChunk || workers <= 1 {
		fn(0, 0, n)
		return 1
	}

	if n/minChunk < workers {
		workers = n / minChunk
	}
	if workers < 1 {
		workers = 1
	}

	chunkSize := (n + workers - 1) / workers
	chunks := (n + chunkSize - 1) / chunkSize

	var wg sync.WaitGroup
	wg.Add(chunks)

	for c := 0; c < chunks; c++ {
		start := c * chunkSize
		end := start + chunkSize
		if end > n {
			end = n
		}

		go func(c, s, e int) {
			defer wg.Done()
			fn(c, s, e)
		}(c, start, end)
	}

	wg.Wait()
	return chunks
}
