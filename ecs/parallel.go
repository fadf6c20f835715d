package ecs

import "golang.org/x/sync/errgroup"

// minChunk keeps tiny passes on the calling goroutine.
const minChunk = 256

// ParallelFor splits [0, n) into contiguous chunks and runs fn on up to
// workers goroutines. fn must only touch state owned by its index range;
// shared changes go through the command and event queues.
func ParallelFor(n, workers int, fn func(start, end int)) {
	if n <= 0 {
		return
	}
	if workers <= 1 || n <= minChunk {
		fn(0, n)
		return
	}
	chunk := max((n+workers*4-1)/(workers*4), minChunk)

	var g errgroup.Group
	g.SetLimit(workers)
	for start := 0; start < n; start += chunk {
		end := min(start+chunk, n)
		g.Go(func() error {
			fn(start, end)
			return nil
		})
	}
	_ = g.Wait()
}
