package app

import (
	"context"
	"sync"
)

// PartialResult holds one function's result or error for partial-success
// fan-outs where a single failed source must not discard the others.
type PartialResult[T any] struct {
	Value T
	Err   error
}

// ParallelPartialLimit runs fns with at most limit goroutines at once
// and collects every result, even on partial failure. A limit below
// one means no limit. Nothing is
// canceled when a function errors; callers inspect each PartialResult.
//
// The collector uses this to fetch from all quote sources at once:
//
//	results := ParallelPartialLimit(ctx, 2, fetchFns...)
//	for _, r := range results {
//	    if r.Err != nil { continue }
//	    records = append(records, r.Value...)
//	}
func ParallelPartialLimit[T any](
	ctx context.Context,
	limit int,
	fns ...func(context.Context) (T, error),
) []PartialResult[T] {
	results := make([]PartialResult[T], len(fns))

	// A non-positive limit would make the semaphore unbuffered and
	// deadlock every send; treat it as unlimited instead.
	if limit <= 0 || limit > len(fns) {
		limit = len(fns)
	}

	sem := make(chan struct{}, limit)

	var wg sync.WaitGroup

	for i, fn := range fns {
		wg.Go(func() {
			sem <- struct{}{}

			defer func() { <-sem }()

			value, err := fn(ctx)
			results[i] = PartialResult[T]{Value: value, Err: err}
		})
	}

	wg.Wait()

	return results
}
