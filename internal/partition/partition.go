// Package partition fans a per-row computation out across goroutines.
//
// The destination buffer is split into contiguous, non-overlapping views, one
// per chunk of rows. Each worker receives only its own view, so no two
// workers can address the same output cell. Workers read whatever shared
// source their closure captures; that source must not be written while Run
// is in progress. Run returns only after every worker has finished.
package partition

import (
	"errors"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// ErrWorkerPanic marks a worker that panicked instead of returning.
var ErrWorkerPanic = errors.New("partition: worker panicked")

// Chunk is the half-open row range [Start, End) owned by one worker.
type Chunk struct {
	Start, End int
}

// Len returns the number of rows in the chunk.
func (c Chunk) Len() int { return c.End - c.Start }

// ChunkError reports the chunk whose worker failed.
type ChunkError struct {
	Chunk Chunk
	Err   error
}

func (e *ChunkError) Error() string {
	return fmt.Sprintf("partition: rows [%d,%d): %v", e.Chunk.Start, e.Chunk.End, e.Err)
}

func (e *ChunkError) Unwrap() error { return e.Err }

// Workers resolves a requested worker count. Values below one select the
// number of available CPUs.
func Workers(n int) int {
	if n <= 0 {
		n = runtime.NumCPU()
	}
	if n < 1 {
		n = 1
	}
	return n
}

// Chunks splits rows into contiguous chunks of ceil(rows/workers) rows.
// Fewer chunks than workers are returned when rows do not divide evenly.
func Chunks(rows, workers int) []Chunk {
	if rows <= 0 {
		return nil
	}
	workers = Workers(workers)
	size := (rows + workers - 1) / workers
	chunks := make([]Chunk, 0, workers)
	for start := 0; start < rows; start += size {
		chunks = append(chunks, Chunk{Start: start, End: min(start+size, rows)})
	}
	return chunks
}

// Split returns one view of dst per chunk, covering rows chunk.Start to
// chunk.End at the given stride. Each view's capacity ends where the next
// chunk begins, so appending to a view cannot spill into a neighbour.
func Split[T any](dst []T, stride int, chunks []Chunk) [][]T {
	views := make([][]T, len(chunks))
	for i, c := range chunks {
		lo, hi := c.Start*stride, c.End*stride
		views[i] = dst[lo:hi:hi]
	}
	return views
}

// Run partitions rows among workers and calls fn once per chunk with the
// chunk's view of dst. Index 0 of the view is row chunk.Start. If any worker
// fails or panics, Run returns that failure after all workers have joined
// and the contents of dst must be discarded.
func Run[T any](dst []T, stride, rows, workers int, fn func(c Chunk, view []T) error) error {
	if len(dst) < rows*stride {
		return fmt.Errorf("partition: destination holds %d cells, need %d", len(dst), rows*stride)
	}
	chunks := Chunks(rows, workers)
	views := Split(dst, stride, chunks)

	if len(chunks) == 1 {
		return call(chunks[0], views[0], fn)
	}

	var g errgroup.Group
	for i, c := range chunks {
		view := views[i]
		g.Go(func() error { return call(c, view, fn) })
	}
	return g.Wait()
}

func call[T any](c Chunk, view []T, fn func(Chunk, []T) error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &ChunkError{Chunk: c, Err: fmt.Errorf("%w: %v", ErrWorkerPanic, r)}
		}
	}()
	if err := fn(c, view); err != nil {
		return &ChunkError{Chunk: c, Err: err}
	}
	return nil
}
