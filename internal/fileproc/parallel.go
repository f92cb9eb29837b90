// Package fileproc provides concurrent file processing utilities.
package fileproc

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/augurco/augur/pkg/parser"
	"github.com/sourcegraph/conc/pool"
)

// ProcessingError represents an error that occurred while processing a file.
type ProcessingError struct {
	Path string
	Err  error
}

func (e ProcessingError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

// ProcessingErrors collects multiple file processing errors.
type ProcessingErrors struct {
	Errors []ProcessingError
	mu     sync.Mutex
}

// Add appends an error to the collection (thread-safe).
func (e *ProcessingErrors) Add(path string, err error) {
	e.mu.Lock()
	e.Errors = append(e.Errors, ProcessingError{Path: path, Err: err})
	e.mu.Unlock()
}

// HasErrors returns true if any errors were collected.
func (e *ProcessingErrors) HasErrors() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.Errors) > 0
}

// Error implements the error interface.
func (e *ProcessingErrors) Error() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.Errors) == 0 {
		return "no errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	return fmt.Sprintf("%d files failed to process (first: %v)", len(e.Errors), e.Errors[0])
}

// DefaultWorkerMultiplier is the multiplier applied to NumCPU for worker count.
// 2x is optimal for mixed I/O and CGO workloads.
const DefaultWorkerMultiplier = 2

// ProgressFunc is called after each file is processed.
type ProgressFunc func()

// ErrorFunc is called when a file processing error occurs.
// Receives the file path and the error. If nil, errors are silently skipped.
type ErrorFunc func(path string, err error)

// MapFiles processes files in parallel, calling fn for each file with a
// dedicated parser. Results are collected and returned in arbitrary order;
// callers that need determinism must sort by a key carried in T.
// Files whose fn returns an error contribute no result; the error goes to
// onError when set. Cancellation is checked per file: once ctx is done,
// remaining files are skipped and ctx.Err() is reported.
func MapFiles[T any](ctx context.Context, files []string, fn func(*parser.Parser, string) (T, error)) []T {
	return MapFilesN(ctx, files, 0, fn, nil, nil)
}

// MapFilesN processes files with configurable worker count and callbacks.
// If maxWorkers is <= 0, defaults to 2x NumCPU.
func MapFilesN[T any](ctx context.Context, files []string, maxWorkers int, fn func(*parser.Parser, string) (T, error), onProgress ProgressFunc, onError ErrorFunc) []T {
	if len(files) == 0 {
		return nil
	}

	if maxWorkers <= 0 {
		maxWorkers = runtime.NumCPU() * DefaultWorkerMultiplier
	}

	results := make([]T, 0, len(files))
	var mu sync.Mutex

	p := pool.New().WithMaxGoroutines(maxWorkers)
	for _, path := range files {
		p.Go(func() {
			if err := ctx.Err(); err != nil {
				if onError != nil {
					onError(path, err)
				}
				return
			}

			psr := parser.New()
			defer psr.Close()

			result, err := fn(psr, path)

			if onProgress != nil {
				onProgress()
			}

			if err != nil {
				if onError != nil {
					onError(path, err)
				}
				return
			}

			mu.Lock()
			results = append(results, result)
			mu.Unlock()
		})
	}
	p.Wait()

	return results
}

// ForEachFile processes files in parallel without a parser; use this for
// operations that only need the path (e.g. stat-based filtering).
func ForEachFile[T any](ctx context.Context, files []string, fn func(string) (T, error), onProgress ProgressFunc, onError ErrorFunc) []T {
	if len(files) == 0 {
		return nil
	}

	results := make([]T, 0, len(files))
	var mu sync.Mutex

	p := pool.New().WithMaxGoroutines(runtime.NumCPU() * DefaultWorkerMultiplier)
	for _, path := range files {
		p.Go(func() {
			if err := ctx.Err(); err != nil {
				if onError != nil {
					onError(path, err)
				}
				return
			}

			result, err := fn(path)

			if onProgress != nil {
				onProgress()
			}

			if err != nil {
				if onError != nil {
					onError(path, err)
				}
				return
			}

			mu.Lock()
			results = append(results, result)
			mu.Unlock()
		})
	}
	p.Wait()

	return results
}
