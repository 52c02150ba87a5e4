package runner

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"
)

func setupTestLogger(t *testing.T) context.Context {
	logger := zerolog.New(zerolog.TestWriter{T: t}).With().Timestamp().Logger()
	return logger.WithContext(context.Background())
}

func TestPool(t *testing.T) {
	ctx := setupTestLogger(t)

	t.Run("runs_every_task", func(t *testing.T) {
		pool := NewPool(ctx, 4)

		var ran atomic.Int64
		for i := 0; i < 50; i++ {
			pool.Submit(func(ctx context.Context) error {
				ran.Add(1)
				return nil
			})
		}

		progress, err := pool.Wait()
		require.NoError(t, err, "waiting for batch")
		assert.Equal(t, int64(50), ran.Load())
		assert.Equal(t, int64(50), progress.Total)
		assert.Equal(t, int64(50), progress.Processed)
		assert.Zero(t, progress.Errors)
	})

	t.Run("failures_are_counted_not_fatal", func(t *testing.T) {
		pool := NewPool(ctx, 2)

		for i := 0; i < 10; i++ {
			fail := i%2 == 0
			pool.Submit(func(ctx context.Context) error {
				if fail {
					return errors.New("per-file failure")
				}
				return nil
			})
		}

		progress, err := pool.Wait()
		require.NoError(t, err, "a failing task must not abort the batch")
		assert.Equal(t, int64(10), progress.Processed)
		assert.Equal(t, int64(5), progress.Errors)
	})

	t.Run("single_worker_preserves_order", func(t *testing.T) {
		pool := NewPool(ctx, 1)

		var order []int
		for i := 0; i < 5; i++ {
			n := i
			pool.Submit(func(ctx context.Context) error {
				order = append(order, n)
				return nil
			})
		}

		_, err := pool.Wait()
		require.NoError(t, err, "waiting for batch")
		assert.Equal(t, []int{0, 1, 2, 3, 4}, order)
	})

	t.Run("worker_count_is_clamped_to_one", func(t *testing.T) {
		pool := NewPool(ctx, 0)
		pool.Submit(func(ctx context.Context) error { return nil })
		progress, err := pool.Wait()
		require.NoError(t, err)
		assert.Equal(t, int64(1), progress.Processed)
	})

	t.Run("cancellation_drains_remaining_tasks", func(t *testing.T) {
		cancelCtx, cancel := context.WithCancel(ctx)
		pool := NewPool(cancelCtx, 1)

		pool.Submit(func(ctx context.Context) error {
			cancel()
			return nil
		})
		for i := 0; i < 5; i++ {
			pool.Submit(func(ctx context.Context) error { return nil })
		}

		progress, err := pool.Wait()
		require.Error(t, err, "cancelled batch should report the cancellation")
		assert.Equal(t, int64(6), progress.Processed, "queued tasks must still drain")
	})

	t.Run("snapshot_during_run", func(t *testing.T) {
		pool := NewPool(ctx, 1)
		pool.Submit(func(ctx context.Context) error { return nil })

		progress, err := pool.Wait()
		require.NoError(t, err)
		assert.Equal(t, progress, pool.Snapshot())
	})
}
