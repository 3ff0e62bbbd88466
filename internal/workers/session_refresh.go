// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-ramp-client/internal/logger"
)

// checkTimeout bounds one session probe so a hung refresh cannot wedge the
// ticker loop.
const checkTimeout = 10 * time.Second

// SessionRefreshWorker keeps the stored session alive by probing the adapter
// on a ticker. The adapter refreshes the access token whenever it is about to
// expire, so an idle client never has to re-authenticate mid-session.
//
// The worker is idle until Run is called and safe to Stop at any point.
type SessionRefreshWorker struct {
	checker  SessionChecker
	log      *logger.Logger
	interval time.Duration

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewSessionRefreshWorker creates a worker probing the session every
// interval. A zero or negative interval defaults to one minute.
func NewSessionRefreshWorker(checker SessionChecker, log *logger.Logger, interval time.Duration) *SessionRefreshWorker {
	if interval <= 0 {
		interval = time.Minute
	}
	return &SessionRefreshWorker{checker: checker, log: log, interval: interval}
}

// Run implements Worker. It stops any previously running loop, then launches
// a background goroutine that probes the session every interval. The
// goroutine exits when Stop is called.
func (w *SessionRefreshWorker) Run() {
	w.Stop()

	w.mu.Lock()
	jobCtx, cancel := context.WithCancel(context.Background())
	w.cancel = cancel
	w.wg.Add(1)
	w.mu.Unlock()

	go func() {
		defer w.wg.Done()
		t := time.NewTicker(w.interval)
		defer t.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				w.check(jobCtx)
			}
		}
	}()
}

func (w *SessionRefreshWorker) check(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()

	if err := w.checker.CheckSession(ctx); err != nil {
		w.log.Warn().Err(err).Msg("session refresh probe failed")
	}
}

// Stop cancels the background goroutine and blocks until it has fully
// exited. Safe to call when the worker is not running (no-op in that case).
func (w *SessionRefreshWorker) Stop() {
	w.mu.Lock()
	cancel := w.cancel
	w.cancel = nil
	w.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	w.wg.Wait()
}
