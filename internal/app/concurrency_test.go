package app

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParallelPartialLimit(t *testing.T) {
	ctx := context.Background()

	countingFns := func(n int) []func(context.Context) (int, error) {
		fns := make([]func(context.Context) (int, error), n)
		for i := range fns {
			fns[i] = func(context.Context) (int, error) {
				return i, nil
			}
		}

		return fns
	}

	t.Run("results keep argument order", func(t *testing.T) {
		results := ParallelPartialLimit(ctx, 2, countingFns(5)...)

		require.Len(t, results, 5)
		for i, r := range results {
			require.NoError(t, r.Err)
			assert.Equal(t, i, r.Value)
		}
	})

	t.Run("failures do not discard other results", func(t *testing.T) {
		boom := errors.New("source down")
		fns := []func(context.Context) (string, error){
			func(context.Context) (string, error) { return "first", nil },
			func(context.Context) (string, error) { return "", boom },
			func(context.Context) (string, error) { return "third", nil },
		}

		results := ParallelPartialLimit(ctx, 2, fns...)

		require.Len(t, results, 3)
		assert.Equal(t, "first", results[0].Value)
		assert.ErrorIs(t, results[1].Err, boom)
		assert.Equal(t, "third", results[2].Value)
	})

	t.Run("non-positive limit still completes", func(t *testing.T) {
		for _, limit := range []int{0, -1} {
			results := ParallelPartialLimit(ctx, limit, countingFns(3)...)

			require.Len(t, results, 3)
			for i, r := range results {
				require.NoError(t, r.Err)
				assert.Equal(t, i, r.Value)
			}
		}
	})

	t.Run("limit larger than function count", func(t *testing.T) {
		results := ParallelPartialLimit(ctx, 10, countingFns(2)...)

		require.Len(t, results, 2)
	})

	t.Run("no functions", func(t *testing.T) {
		results := ParallelPartialLimit[int](ctx, 0)

		assert.Empty(t, results)
	})

	t.Run("limit bounds concurrency", func(t *testing.T) {
		const limit = 2

		var (
			inFlight atomic.Int32
			peak     atomic.Int32
			mu       sync.Mutex
		)

		fns := make([]func(context.Context) (struct{}, error), 8)
		for i := range fns {
			fns[i] = func(context.Context) (struct{}, error) {
				n := inFlight.Add(1)
				defer inFlight.Add(-1)

				mu.Lock()
				if n > peak.Load() {
					peak.Store(n)
				}
				mu.Unlock()

				return struct{}{}, nil
			}
		}

		ParallelPartialLimit(ctx, limit, fns...)

		assert.LessOrEqual(t, peak.Load(), int32(limit))
	})
}
