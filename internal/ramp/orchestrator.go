// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package ramp

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/MKhiriev/go-ramp-client/internal/adapter"
	"github.com/MKhiriev/go-ramp-client/internal/logger"
	"github.com/MKhiriev/go-ramp-client/internal/store"
	"github.com/MKhiriev/go-ramp-client/models"
)

// settledCountdown is the post-settlement window before the order is
// presumed abandoned and the flow force-closes.
const settledCountdown = 15 * time.Second

// Orchestrator drives the two-step sell order through the ramp adapter,
// persisting a recovery snapshot after every state-changing event. All
// transitions run under one mutex; the exported surface is safe for
// concurrent use from UI goroutines and timers.
type Orchestrator struct {
	adapter adapter.RampAdapter
	records store.RecordStore
	log     *logger.Logger
	retry   RetryPolicy

	// clock and countdown are swapped in tests.
	clock     func() time.Time
	countdown time.Duration

	// onChange, when set, is invoked (outside the lock) after every
	// transition with the new state snapshot.
	onChange func(State)

	mu         sync.Mutex
	kind       StateKind
	quote      *models.Quote
	settlement *models.Settlement
	fields     map[string]string

	// submitting is the per-step submission lock: one request on the wire
	// at a time, no racing a user-triggered retry.
	submitting bool

	deadline    time.Time
	expiryTimer *time.Timer
}

// NewOrchestrator constructs an idle orchestrator. Call [Orchestrator.Open]
// to begin (or restore) a flow.
func NewOrchestrator(rampAdapter adapter.RampAdapter, records store.RecordStore, log *logger.Logger) *Orchestrator {
	return &Orchestrator{
		adapter:   rampAdapter,
		records:   records,
		log:       log,
		retry:     DefaultRetryPolicy(),
		clock:     time.Now,
		countdown: settledCountdown,
		kind:      StateIdle,
		fields:    make(map[string]string),
	}
}

// SetOnChange registers the state listener. Must be called before Open.
func (o *Orchestrator) SetOnChange(fn func(State)) {
	o.onChange = fn
}

// State returns a snapshot of the current flow state.
func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.stateLocked()
}

func (o *Orchestrator) stateLocked() State {
	return State{
		Kind:       o.kind,
		Quote:      o.quote,
		Settlement: o.settlement,
		Fields:     copyFields(o.fields),
		Deadline:   o.deadline,
	}
}

func (o *Orchestrator) stepLocked() int {
	if o.kind == StateStep1Collecting || o.kind == StateStep1Submitting {
		return 1
	}
	return 2
}

// notify invokes the listener outside the lock.
func (o *Orchestrator) notify() {
	if o.onChange == nil {
		return
	}
	o.onChange(o.State())
}

// Open starts a new flow, first attempting snapshot recovery. A restorable
// snapshot rehydrates the exact step it was written in without any network
// call; otherwise the flow starts collecting step 1.
func (o *Orchestrator) Open(ctx context.Context) {
	if o.restoreSnapshot(ctx) {
		o.notify()
		return
	}

	o.mu.Lock()
	o.kind = StateStep1Collecting
	o.quote = nil
	o.settlement = nil
	o.fields = make(map[string]string)
	o.deadline = time.Time{}
	o.mu.Unlock()

	o.notify()
}

// restoreSnapshot loads the persisted snapshot if one exists and is younger
// than the staleness window. Stale or undecodable snapshots are deleted.
func (o *Orchestrator) restoreSnapshot(ctx context.Context) bool {
	blob, ok, err := o.records.Get(ctx, store.RecordOrderSnapshot)
	if err != nil {
		o.log.Err(err).Msg("error reading order snapshot")
		return false
	}
	if !ok {
		return false
	}

	snap, ok := decodeSnapshot(blob)
	if !ok || snap.Age(o.clock()) >= snapshotTTL {
		o.deleteSnapshot(ctx)
		return false
	}

	o.mu.Lock()
	o.quote = snap.Quote
	o.settlement = snap.Settlement
	o.fields = snap.FormFields
	if o.fields == nil {
		o.fields = make(map[string]string)
	}

	switch {
	case snap.Settlement.Valid():
		// The original countdown has necessarily elapsed; restart it fresh
		// rather than expiring the restored order on arrival.
		o.kind = StateSettled
		o.startCountdownLocked()
	case snap.Step == 2 && snap.Quote != nil:
		o.kind = StateStep2Collecting
	default:
		o.kind = StateStep1Collecting
		o.quote = nil
		o.settlement = nil
	}
	kind := o.kind
	o.mu.Unlock()

	o.log.Debug().Str("state", kind.String()).Msg("order snapshot restored")
	return true
}

// SetField records one user-entered form field and persists the snapshot so
// a reload never loses typed input.
func (o *Orchestrator) SetField(ctx context.Context, key, value string) {
	o.mu.Lock()
	if o.kind.Terminal() || o.kind == StateIdle {
		o.mu.Unlock()
		return
	}
	o.fields[key] = value
	o.mu.Unlock()

	o.persistSnapshot(ctx)
}

// ── step 1: sell initiation ─────────────────────────────────────────────────

// SubmitStep1 validates the amount form locally, then submits the sell
// initiation with retry. On success the flow advances to collecting payout
// details; on terminal failure it returns to collecting with fields intact.
func (o *Orchestrator) SubmitStep1(ctx context.Context) error {
	o.mu.Lock()
	if o.submitting {
		o.mu.Unlock()
		return ErrSubmissionInFlight
	}
	if o.kind != StateStep1Collecting {
		o.mu.Unlock()
		return ErrWrongState
	}

	req, verr := o.buildInitiateRequestLocked()
	if verr != nil {
		o.mu.Unlock()
		return verr
	}

	o.kind = StateStep1Submitting
	o.submitting = true
	o.mu.Unlock()
	o.notify()

	var quote models.Quote
	err := o.retry.Do(ctx, func(ctx context.Context) error {
		var opErr error
		quote, opErr = o.adapter.SellInitiate(ctx, req)
		return opErr
	})

	o.mu.Lock()
	o.submitting = false
	if o.kind != StateStep1Submitting {
		// the flow moved on (e.g. user closed) — discard the stale result
		o.mu.Unlock()
		return ErrWrongState
	}

	if err != nil {
		o.kind = StateStep1Collecting
		o.mu.Unlock()
		o.notify()
		return err
	}

	o.quote = &quote
	o.settlement = nil // a new quote invalidates any older settlement step
	o.kind = StateStep2Collecting
	o.mu.Unlock()

	o.persistSnapshot(ctx)
	o.notify()
	return nil
}

func (o *Orchestrator) buildInitiateRequestLocked() (models.SellInitiateRequest, error) {
	amount := strings.TrimSpace(o.fields[FieldSellAmount])
	parsed, err := strconv.ParseFloat(amount, 64)
	if err != nil || parsed <= 0 {
		return models.SellInitiateRequest{}, &ValidationError{Field: FieldSellAmount, Message: "Enter a valid amount"}
	}

	tok := strings.TrimSpace(o.fields[FieldToken])
	if tok == "" {
		return models.SellInitiateRequest{}, &ValidationError{Field: FieldToken, Message: "Select a token"}
	}
	network := strings.TrimSpace(o.fields[FieldNetwork])
	if network == "" {
		return models.SellInitiateRequest{}, &ValidationError{Field: FieldNetwork, Message: "Select a network"}
	}

	return models.SellInitiateRequest{Token: tok, Network: network, SellAmount: amount}, nil
}

// ── step 2: payout submission ───────────────────────────────────────────────

// SubmitStep2 validates the payout form locally, then submits the payout leg
// with retry. Every attempt reuses the PaymentID issued at initiation, so
// server-side replays are safe. A structurally valid settlement moves the
// flow to Settled and starts the countdown.
func (o *Orchestrator) SubmitStep2(ctx context.Context) error {
	o.mu.Lock()
	if o.submitting {
		o.mu.Unlock()
		return ErrSubmissionInFlight
	}
	if o.kind != StateStep2Collecting || o.quote == nil {
		o.mu.Unlock()
		return ErrWrongState
	}

	req, verr := o.buildPayoutRequestLocked()
	if verr != nil {
		o.mu.Unlock()
		return verr
	}

	o.kind = StateStep2Submitting
	o.submitting = true
	o.mu.Unlock()
	o.notify()

	var settlement models.Settlement
	err := o.retry.Do(ctx, func(ctx context.Context) error {
		var opErr error
		settlement, opErr = o.adapter.SellPayout(ctx, req)
		if opErr != nil {
			return opErr
		}
		if !settlement.Valid() {
			// parseable but incomplete; worth another attempt
			return errors.Join(adapter.ErrTransient, errors.New("settlement response incomplete"))
		}
		return nil
	})

	o.mu.Lock()
	o.submitting = false
	if o.kind != StateStep2Submitting {
		o.mu.Unlock()
		return ErrWrongState
	}

	if err != nil {
		o.kind = StateStep2Collecting
		o.mu.Unlock()
		o.notify()
		return err
	}

	o.settlement = &settlement
	o.kind = StateSettled
	o.startCountdownLocked()
	o.mu.Unlock()

	o.persistSnapshot(ctx)
	o.notify()
	return nil
}

func (o *Orchestrator) buildPayoutRequestLocked() (models.SellPayoutRequest, error) {
	required := []struct {
		field, message string
	}{
		{FieldBankName, "Select a bank"},
		{FieldBankCode, "Select a bank"},
		{FieldAccountNumber, "Enter an account number"},
		{FieldAccountName, "Account name not resolved"},
	}
	for _, r := range required {
		if strings.TrimSpace(o.fields[r.field]) == "" {
			return models.SellPayoutRequest{}, &ValidationError{Field: r.field, Message: r.message}
		}
	}

	return models.SellPayoutRequest{
		PaymentID:     o.quote.PaymentID,
		BankName:      o.fields[FieldBankName],
		BankCode:      o.fields[FieldBankCode],
		AccountNumber: o.fields[FieldAccountNumber],
		AccountName:   o.fields[FieldAccountName],
	}, nil
}

// ── settlement countdown ────────────────────────────────────────────────────

func (o *Orchestrator) startCountdownLocked() {
	if o.expiryTimer != nil {
		o.expiryTimer.Stop()
	}
	o.deadline = o.clock().Add(o.countdown)
	o.expiryTimer = time.AfterFunc(o.countdown, o.expire)
}

// expire fires when the settled countdown reaches zero.
func (o *Orchestrator) expire() {
	o.mu.Lock()
	if o.kind != StateSettled {
		o.mu.Unlock()
		return
	}
	o.kind = StateExpired
	o.deadline = time.Time{}
	o.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	o.deleteSnapshot(ctx)

	o.log.Debug().Msg("settled order expired")
	o.notify()
}

// ── terminal operations ─────────────────────────────────────────────────────

// Close ends the flow explicitly. Idempotent; any in-flight submission's
// result will be discarded by the state check when it lands.
func (o *Orchestrator) Close(ctx context.Context) {
	o.mu.Lock()
	if o.kind.Terminal() || o.kind == StateIdle {
		o.mu.Unlock()
		return
	}
	o.kind = StateClosed
	o.deadline = time.Time{}
	if o.expiryTimer != nil {
		o.expiryTimer.Stop()
		o.expiryTimer = nil
	}
	o.mu.Unlock()

	o.deleteSnapshot(ctx)
	o.notify()
}

// Reconcile resolves client uncertainty after a lost step-2 confirmation: it
// polls the authoritative order status and, if the server reports a
// completed settlement, transitions straight to Settled with the server's
// payload — never re-submitting.
func (o *Orchestrator) Reconcile(ctx context.Context, paymentID string) error {
	status, err := o.adapter.SellStatus(ctx, paymentID)
	if err != nil {
		if errors.Is(err, adapter.ErrNotFound) {
			return ErrReconciliationMismatch
		}
		return err
	}

	if !status.Settlement.Valid() {
		return ErrReconciliationMismatch
	}

	o.mu.Lock()
	if o.kind.Terminal() {
		o.mu.Unlock()
		return ErrWrongState
	}
	o.settlement = status.Settlement
	o.kind = StateSettled
	o.startCountdownLocked()
	o.mu.Unlock()

	o.persistSnapshot(ctx)
	o.notify()
	return nil
}

// Stop releases timers. Call on teardown so remounts do not leak.
func (o *Orchestrator) Stop() {
	o.mu.Lock()
	if o.expiryTimer != nil {
		o.expiryTimer.Stop()
		o.expiryTimer = nil
	}
	o.mu.Unlock()
}
