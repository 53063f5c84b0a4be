package retry_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/niksmo/inventory/pkg/retry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errTemporary = errors.New("temporary")

func TestDo(t *testing.T) {
	fast := retry.LinearBackoff(time.Millisecond)

	t.Run("SucceedsAfterFailures", func(t *testing.T) {
		var calls int
		err := retry.Do(t.Context(),
			retry.RetryConfig{MaxAttempts: 3, Backoff: fast},
			func() error {
				calls++
				if calls < 3 {
					return errTemporary
				}
				return nil
			})
		require.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("ExhaustsAttempts", func(t *testing.T) {
		var calls int
		err := retry.Do(t.Context(),
			retry.RetryConfig{MaxAttempts: 4, Backoff: fast},
			func() error {
				calls++
				return errTemporary
			})
		assert.ErrorIs(t, err, errTemporary)
		assert.Equal(t, 4, calls)
	})

	t.Run("NonRetryableReturnsError", func(t *testing.T) {
		var calls int
		err := retry.Do(t.Context(),
			retry.RetryConfig{
				MaxAttempts: 5,
				Backoff:     fast,
				ShouldRetry: func(err error) bool { return false },
			},
			func() error {
				calls++
				return errTemporary
			})
		assert.ErrorIs(t, err, errTemporary)
		assert.Equal(t, 1, calls)
	})

	t.Run("ZeroAttemptsRunsOnce", func(t *testing.T) {
		var calls int
		_ = retry.Do(t.Context(), retry.RetryConfig{}, func() error {
			calls++
			return nil
		})
		assert.Equal(t, 1, calls)
	})

	t.Run("CanceledContext", func(t *testing.T) {
		ctx, cancel := context.WithCancel(t.Context())
		cancel()

		err := retry.Do(ctx, retry.RetryConfig{MaxAttempts: 3},
			func() error { return nil })
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("ContextDoneWhileWaiting", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(t.Context(), 10*time.Millisecond)
		defer cancel()

		err := retry.Do(ctx,
			retry.RetryConfig{
				MaxAttempts: 3,
				Backoff:     retry.LinearBackoff(time.Minute),
			},
			func() error { return errTemporary })
		assert.ErrorIs(t, err, context.DeadlineExceeded)
		assert.ErrorIs(t, err, errTemporary)
	})
}

func TestDoWithResult(t *testing.T) {
	v, err := retry.DoWithResult(t.Context(),
		retry.RetryConfig{MaxAttempts: 2, Backoff: retry.LinearBackoff(0)},
		func() (int, error) { return 42, nil })
	require.NoError(t, err)
	assert.Equal(t, 42, v)
}

func TestExponentialBackoff(t *testing.T) {
	b := retry.ExponentialBackoff(10 * time.Millisecond)
	for attempt, base := range map[int]time.Duration{
		1: 10 * time.Millisecond,
		2: 20 * time.Millisecond,
		3: 40 * time.Millisecond,
	} {
		got := b(attempt)
		assert.GreaterOrEqual(t, got, base)
		assert.Less(t, got, base+base/2)
	}
}
