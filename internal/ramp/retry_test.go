package ramp

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-ramp-client/internal/adapter"
)

func testPolicy(delays *[]time.Duration) RetryPolicy {
	p := DefaultRetryPolicy()
	p.sleep = func(ctx context.Context, d time.Duration) error {
		if delays != nil {
			*delays = append(*delays, d)
		}
		return nil
	}
	return p
}

func TestRetryDo_SuccessFirstAttempt(t *testing.T) {
	p := testPolicy(nil)

	calls := 0
	err := p.Do(context.Background(), func(ctx context.Context) error {
		calls++
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestRetryDo_TransientErrorsUseBackoffSchedule(t *testing.T) {
	var delays []time.Duration
	p := testPolicy(&delays)

	calls := 0
	err := p.Do(context.Background(), func(ctx context.Context) error {
		calls++
		if calls < 3 {
			return fmt.Errorf("%w: broken pipe", adapter.ErrTransient)
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
	assert.Equal(t, []time.Duration{time.Second, 2 * time.Second}, delays)
}

func TestRetryDo_ExhaustionWrapsLastError(t *testing.T) {
	p := testPolicy(nil)

	last := fmt.Errorf("%w: still down", adapter.ErrTransient)
	calls := 0
	err := p.Do(context.Background(), func(ctx context.Context) error {
		calls++
		return last
	})

	assert.Equal(t, 3, calls)

	var exhausted *RetryExhaustedError
	require.ErrorAs(t, err, &exhausted)
	assert.Equal(t, 3, exhausted.Attempts)
	assert.ErrorIs(t, err, adapter.ErrTransient)
}

func TestRetryDo_NonRetryableReturnsImmediately(t *testing.T) {
	p := testPolicy(nil)

	rejection := fmt.Errorf("%w: amount below minimum", adapter.ErrServerRejection)
	calls := 0
	err := p.Do(context.Background(), func(ctx context.Context) error {
		calls++
		return rejection
	})

	assert.Equal(t, 1, calls)
	assert.Equal(t, rejection, err)

	var exhausted *RetryExhaustedError
	assert.False(t, errors.As(err, &exhausted))
}

func TestRetryDo_CanceledSleepStopsRetrying(t *testing.T) {
	p := DefaultRetryPolicy()
	p.sleep = func(ctx context.Context, d time.Duration) error { return context.Canceled }

	calls := 0
	err := p.Do(context.Background(), func(ctx context.Context) error {
		calls++
		return fmt.Errorf("%w: broken pipe", adapter.ErrTransient)
	})

	assert.Equal(t, 1, calls)

	var exhausted *RetryExhaustedError
	require.ErrorAs(t, err, &exhausted)
	assert.Equal(t, 1, exhausted.Attempts)
}

func TestRetryDelay_ClampsToLastScheduledValue(t *testing.T) {
	p := RetryPolicy{Backoff: []time.Duration{time.Second, 2 * time.Second}}

	assert.Equal(t, time.Second, p.delay(1))
	assert.Equal(t, 2*time.Second, p.delay(2))
	assert.Equal(t, 2*time.Second, p.delay(7))

	empty := RetryPolicy{}
	assert.Equal(t, time.Duration(0), empty.delay(1))
}
