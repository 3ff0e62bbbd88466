// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package ramp

import (
	"context"
	"errors"
	"time"

	"github.com/MKhiriev/go-ramp-client/internal/adapter"
)

// RetryPolicy runs an operation up to Attempts times, sleeping the scheduled
// backoff between failures the Retryable predicate accepts. Both order steps
// share one policy instance, so retry behavior cannot drift between them.
type RetryPolicy struct {
	Attempts  int
	Backoff   []time.Duration
	Retryable func(error) bool

	// sleep is swapped in tests to avoid real waiting.
	sleep func(ctx context.Context, d time.Duration) error
}

// DefaultRetryPolicy is 3 attempts with 1s/2s exponential backoff, retrying
// only transient failures. Validation and 4xx business errors pass through
// on the first attempt.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		Attempts:  3,
		Backoff:   []time.Duration{time.Second, 2 * time.Second, 4 * time.Second},
		Retryable: func(err error) bool { return errors.Is(err, adapter.ErrTransient) },
	}
}

// Do executes op until it succeeds, fails terminally, or the attempt budget
// runs out. Exhaustion returns a [*RetryExhaustedError] carrying the attempt
// count and the last error; non-retryable errors return as-is immediately.
func (p RetryPolicy) Do(ctx context.Context, op func(ctx context.Context) error) error {
	sleep := p.sleep
	if sleep == nil {
		sleep = sleepCtx
	}

	var lastErr error
	for attempt := 1; attempt <= p.Attempts; attempt++ {
		lastErr = op(ctx)
		if lastErr == nil {
			return nil
		}
		if p.Retryable == nil || !p.Retryable(lastErr) {
			return lastErr
		}
		if attempt == p.Attempts {
			break
		}
		if err := sleep(ctx, p.delay(attempt)); err != nil {
			return &RetryExhaustedError{Attempts: attempt, Err: lastErr}
		}
	}

	return &RetryExhaustedError{Attempts: p.Attempts, Err: lastErr}
}

// delay returns the backoff after the given 1-based failed attempt, clamping
// to the last scheduled value when attempts outnumber the schedule.
func (p RetryPolicy) delay(attempt int) time.Duration {
	if len(p.Backoff) == 0 {
		return 0
	}
	idx := attempt - 1
	if idx >= len(p.Backoff) {
		idx = len(p.Backoff) - 1
	}
	return p.Backoff[idx]
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
