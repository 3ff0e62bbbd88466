package ramp

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-ramp-client/internal/adapter"
	"github.com/MKhiriev/go-ramp-client/internal/logger"
	"github.com/MKhiriev/go-ramp-client/internal/mock"
	"github.com/MKhiriev/go-ramp-client/internal/store"
	"github.com/MKhiriev/go-ramp-client/models"
)

func newTestRecords(t *testing.T) store.RecordStore {
	t.Helper()

	conn, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	rs, err := store.NewRecordStore(&store.DB{DB: conn})
	require.NoError(t, err)
	return rs
}

func newTestOrchestrator(t *testing.T, ctrl *gomock.Controller) (*Orchestrator, *mock.MockRampAdapter, store.RecordStore) {
	t.Helper()

	mockAdapter := mock.NewMockRampAdapter(ctrl)
	records := newTestRecords(t)

	o := NewOrchestrator(mockAdapter, records, logger.Nop())
	o.retry.sleep = func(ctx context.Context, d time.Duration) error { return nil }
	t.Cleanup(o.Stop)

	return o, mockAdapter, records
}

func testQuote() models.Quote {
	return models.Quote{
		PaymentID:     "p1",
		Reference:     "REF-001",
		Rate:          1500,
		SellAmount:    "100",
		ReceiveAmount: 150000,
		ExpiresAt:     time.Now().Add(10 * time.Minute),
		Deposit: models.DepositInstructions{
			Address: "TXyzDepositAddr",
			Network: "TRC20",
			Token:   "USDT",
			Amount:  "100",
		},
	}
}

func testSettlement() models.Settlement {
	return models.Settlement{
		PaymentID: "p1",
		Status:    "processing",
		Payout: models.PayoutDetails{
			BankName:      "First Bank",
			BankCode:      "011",
			AccountNumber: "0123456789",
			AccountName:   "ADA LOVELACE",
		},
	}
}

func fillStep1(ctx context.Context, o *Orchestrator) {
	o.SetField(ctx, FieldToken, "USDT")
	o.SetField(ctx, FieldNetwork, "TRC20")
	o.SetField(ctx, FieldSellAmount, "100")
}

func fillStep2(ctx context.Context, o *Orchestrator) {
	o.SetField(ctx, FieldBankName, "First Bank")
	o.SetField(ctx, FieldBankCode, "011")
	o.SetField(ctx, FieldAccountNumber, "0123456789")
	o.SetField(ctx, FieldAccountName, "ADA LOVELACE")
}

// ── validation ──────────────────────────────────────────────────────────────

func TestSubmitStep1_ZeroAmountRejectedLocally(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// no adapter expectations: validation must fail before any network call
	o, _, _ := newTestOrchestrator(t, ctrl)
	ctx := context.Background()

	o.Open(ctx)
	o.SetField(ctx, FieldToken, "USDT")
	o.SetField(ctx, FieldNetwork, "TRC20")
	o.SetField(ctx, FieldSellAmount, "0")

	err := o.SubmitStep1(ctx)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, FieldSellAmount, verr.Field)
	assert.Equal(t, "Enter a valid amount", verr.Message)
	assert.Equal(t, StateStep1Collecting, o.State().Kind)
}

func TestSubmitStep2_MissingBankRejectedLocally(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	o, mockAdapter, _ := newTestOrchestrator(t, ctrl)
	ctx := context.Background()

	mockAdapter.EXPECT().SellInitiate(ctx, gomock.Any()).Return(testQuote(), nil)

	o.Open(ctx)
	fillStep1(ctx, o)
	require.NoError(t, o.SubmitStep1(ctx))

	err := o.SubmitStep2(ctx)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, FieldBankName, verr.Field)
}

// ── retry behavior ──────────────────────────────────────────────────────────

func TestSubmitStep1_TwoTransientFailuresThenSuccess(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	o, mockAdapter, _ := newTestOrchestrator(t, ctrl)
	ctx := context.Background()

	var delays []time.Duration
	o.retry.sleep = func(ctx context.Context, d time.Duration) error {
		delays = append(delays, d)
		return nil
	}

	attempts := 0
	mockAdapter.EXPECT().SellInitiate(ctx, gomock.Any()).Times(3).DoAndReturn(
		func(_ context.Context, _ models.SellInitiateRequest) (models.Quote, error) {
			attempts++
			if attempts < 3 {
				return models.Quote{}, fmt.Errorf("%w: connection reset", adapter.ErrTransient)
			}
			return testQuote(), nil
		},
	)

	o.Open(ctx)
	fillStep1(ctx, o)
	require.NoError(t, o.SubmitStep1(ctx))

	assert.Equal(t, 3, attempts)
	require.Len(t, delays, 2)
	assert.GreaterOrEqual(t, delays[0], time.Second)
	assert.GreaterOrEqual(t, delays[1], 2*time.Second)
	assert.Equal(t, StateStep2Collecting, o.State().Kind)
}

func TestSubmitStep1_ExhaustedRetriesSurfaceAttemptCount(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	o, mockAdapter, _ := newTestOrchestrator(t, ctrl)
	ctx := context.Background()

	mockAdapter.EXPECT().SellInitiate(ctx, gomock.Any()).Times(3).
		Return(models.Quote{}, fmt.Errorf("%w: gateway timeout", adapter.ErrTransient))

	o.Open(ctx)
	fillStep1(ctx, o)
	err := o.SubmitStep1(ctx)

	var exhausted *RetryExhaustedError
	require.ErrorAs(t, err, &exhausted)
	assert.Equal(t, 3, exhausted.Attempts)

	// flow returns to collecting with user input intact
	state := o.State()
	assert.Equal(t, StateStep1Collecting, state.Kind)
	assert.Equal(t, "100", state.Fields[FieldSellAmount])
}

func TestSubmitStep1_ServerRejectionNeverRetried(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	o, mockAdapter, _ := newTestOrchestrator(t, ctrl)
	ctx := context.Background()

	mockAdapter.EXPECT().SellInitiate(ctx, gomock.Any()).Times(1).
		Return(models.Quote{}, fmt.Errorf("%w: amount below minimum", adapter.ErrServerRejection))

	o.Open(ctx)
	fillStep1(ctx, o)
	err := o.SubmitStep1(ctx)

	require.ErrorIs(t, err, adapter.ErrServerRejection)
	assert.Equal(t, StateStep1Collecting, o.State().Kind)
}

func TestSubmitStep2_RetriesReuseSamePaymentID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	o, mockAdapter, _ := newTestOrchestrator(t, ctrl)
	ctx := context.Background()

	mockAdapter.EXPECT().SellInitiate(ctx, gomock.Any()).Return(testQuote(), nil)

	var paymentIDs []string
	attempts := 0
	mockAdapter.EXPECT().SellPayout(ctx, gomock.Any()).Times(3).DoAndReturn(
		func(_ context.Context, req models.SellPayoutRequest) (models.Settlement, error) {
			paymentIDs = append(paymentIDs, req.PaymentID)
			attempts++
			if attempts < 3 {
				return models.Settlement{}, fmt.Errorf("%w: connection reset", adapter.ErrTransient)
			}
			return testSettlement(), nil
		},
	)

	o.Open(ctx)
	fillStep1(ctx, o)
	require.NoError(t, o.SubmitStep1(ctx))
	fillStep2(ctx, o)
	require.NoError(t, o.SubmitStep2(ctx))

	require.Len(t, paymentIDs, 3)
	for _, id := range paymentIDs {
		assert.Equal(t, "p1", id)
	}
}

// ── full flow and countdown ─────────────────────────────────────────────────

func TestFullFlow_SettledWithSnapshotAndCountdown(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	o, mockAdapter, records := newTestOrchestrator(t, ctrl)
	ctx := context.Background()

	mockAdapter.EXPECT().SellInitiate(ctx, gomock.Any()).Return(testQuote(), nil)
	mockAdapter.EXPECT().SellPayout(ctx, gomock.Any()).Return(testSettlement(), nil)

	o.Open(ctx)
	fillStep1(ctx, o)
	require.NoError(t, o.SubmitStep1(ctx))
	fillStep2(ctx, o)

	before := time.Now()
	require.NoError(t, o.SubmitStep2(ctx))

	state := o.State()
	assert.Equal(t, StateSettled, state.Kind)
	require.NotNil(t, state.Settlement)
	assert.Equal(t, "p1", state.Settlement.PaymentID)

	// countdown starts at 15 seconds from settlement
	remaining := state.Deadline.Sub(before)
	assert.InDelta(t, (15 * time.Second).Seconds(), remaining.Seconds(), 1)

	// persisted snapshot carries step 2 with both quote and settlement
	blob, ok, err := records.Get(ctx, store.RecordOrderSnapshot)
	require.NoError(t, err)
	require.True(t, ok)

	snap, ok := decodeSnapshot(blob)
	require.True(t, ok)
	assert.Equal(t, 2, snap.Step)
	require.NotNil(t, snap.Quote)
	require.NotNil(t, snap.Settlement)
	assert.Equal(t, "p1", snap.Quote.PaymentID)
}

func TestCountdownExpiry_TransitionsToExpiredAndDeletesSnapshot(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	o, mockAdapter, records := newTestOrchestrator(t, ctrl)
	o.countdown = 30 * time.Millisecond
	ctx := context.Background()

	mockAdapter.EXPECT().SellInitiate(ctx, gomock.Any()).Return(testQuote(), nil)
	mockAdapter.EXPECT().SellPayout(ctx, gomock.Any()).Return(testSettlement(), nil)

	o.Open(ctx)
	fillStep1(ctx, o)
	require.NoError(t, o.SubmitStep1(ctx))
	fillStep2(ctx, o)
	require.NoError(t, o.SubmitStep2(ctx))

	require.Eventually(t, func() bool {
		return o.State().Kind == StateExpired
	}, time.Second, 5*time.Millisecond)

	_, ok, err := records.Get(ctx, store.RecordOrderSnapshot)
	require.NoError(t, err)
	assert.False(t, ok, "snapshot must be deleted on expiry")
}

func TestClose_DeletesSnapshotAndStopsCountdown(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	o, mockAdapter, records := newTestOrchestrator(t, ctrl)
	ctx := context.Background()

	mockAdapter.EXPECT().SellInitiate(ctx, gomock.Any()).Return(testQuote(), nil)
	mockAdapter.EXPECT().SellPayout(ctx, gomock.Any()).Return(testSettlement(), nil)

	o.Open(ctx)
	fillStep1(ctx, o)
	require.NoError(t, o.SubmitStep1(ctx))
	fillStep2(ctx, o)
	require.NoError(t, o.SubmitStep2(ctx))

	o.Close(ctx)
	assert.Equal(t, StateClosed, o.State().Kind)

	_, ok, err := records.Get(ctx, store.RecordOrderSnapshot)
	require.NoError(t, err)
	assert.False(t, ok)

	// closing again is a no-op
	o.Close(ctx)
	assert.Equal(t, StateClosed, o.State().Kind)
}

// ── snapshot restore ────────────────────────────────────────────────────────

func writeSnapshot(t *testing.T, records store.RecordStore, snap models.OrderSnapshot) {
	t.Helper()

	blob, err := encodeSnapshot(snap)
	require.NoError(t, err)
	require.NoError(t, records.Put(context.Background(), store.RecordOrderSnapshot, blob))
}

func TestOpen_RestoresSnapshotYoungerThan30Minutes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	o, _, records := newTestOrchestrator(t, ctrl)
	ctx := context.Background()

	now := time.Now()
	o.clock = func() time.Time { return now }

	quote := testQuote()
	writeSnapshot(t, records, models.OrderSnapshot{
		Step:       2,
		Quote:      &quote,
		FormFields: map[string]string{FieldAccountNumber: "0123456789"},
		Timestamp:  now.Add(-29 * time.Minute).UnixMilli(),
	})

	o.Open(ctx)

	state := o.State()
	assert.Equal(t, StateStep2Collecting, state.Kind)
	require.NotNil(t, state.Quote)
	assert.Equal(t, "p1", state.Quote.PaymentID)
	assert.Equal(t, "0123456789", state.Fields[FieldAccountNumber])
}

func TestOpen_DiscardsSnapshotOlderThan30Minutes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	o, _, records := newTestOrchestrator(t, ctrl)
	ctx := context.Background()

	now := time.Now()
	o.clock = func() time.Time { return now }

	quote := testQuote()
	writeSnapshot(t, records, models.OrderSnapshot{
		Step:      2,
		Quote:     &quote,
		Timestamp: now.Add(-31 * time.Minute).UnixMilli(),
	})

	o.Open(ctx)

	assert.Equal(t, StateStep1Collecting, o.State().Kind)

	_, ok, err := records.Get(ctx, store.RecordOrderSnapshot)
	require.NoError(t, err)
	assert.False(t, ok, "stale snapshot must be deleted")
}

func TestOpen_RestoredSettledOrderGetsFreshCountdown(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	o, _, records := newTestOrchestrator(t, ctrl)
	ctx := context.Background()

	quote := testQuote()
	settlement := testSettlement()
	writeSnapshot(t, records, models.OrderSnapshot{
		Step:       2,
		Quote:      &quote,
		Settlement: &settlement,
		Timestamp:  time.Now().Add(-5 * time.Minute).UnixMilli(),
	})

	before := time.Now()
	o.Open(ctx)

	state := o.State()
	assert.Equal(t, StateSettled, state.Kind)
	// fresh 15s window, not the long-elapsed original one
	assert.InDelta(t, (15 * time.Second).Seconds(), state.Deadline.Sub(before).Seconds(), 1)
}

// ── reconciliation ──────────────────────────────────────────────────────────

func TestReconcile_ServerSettlementPromotesToSettled(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	o, mockAdapter, _ := newTestOrchestrator(t, ctrl)
	ctx := context.Background()

	settlement := testSettlement()
	mockAdapter.EXPECT().SellStatus(ctx, "p1").Return(models.SellStatusResponse{
		PaymentID:  "p1",
		Status:     "completed",
		Settlement: &settlement,
	}, nil)

	o.Open(ctx)
	require.NoError(t, o.Reconcile(ctx, "p1"))

	state := o.State()
	assert.Equal(t, StateSettled, state.Kind)
	require.NotNil(t, state.Settlement)
	assert.Equal(t, "ADA LOVELACE", state.Settlement.Payout.AccountName)
}

func TestReconcile_UnknownOrderIsMismatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	o, mockAdapter, _ := newTestOrchestrator(t, ctrl)
	ctx := context.Background()

	mockAdapter.EXPECT().SellStatus(ctx, "ghost").Return(models.SellStatusResponse{}, adapter.ErrNotFound)

	o.Open(ctx)
	err := o.Reconcile(ctx, "ghost")
	require.ErrorIs(t, err, ErrReconciliationMismatch)
}

func TestReconcile_IncompleteSettlementIsMismatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	o, mockAdapter, _ := newTestOrchestrator(t, ctrl)
	ctx := context.Background()

	mockAdapter.EXPECT().SellStatus(ctx, "p1").Return(models.SellStatusResponse{
		PaymentID: "p1",
		Status:    "pending",
	}, nil)

	o.Open(ctx)
	err := o.Reconcile(ctx, "p1")
	require.ErrorIs(t, err, ErrReconciliationMismatch)
}

// ── submission lock ─────────────────────────────────────────────────────────

func TestSubmitStep1_SecondSubmitWhileInFlightIsRejected(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	o, mockAdapter, _ := newTestOrchestrator(t, ctrl)
	ctx := context.Background()

	release := make(chan struct{})
	mockAdapter.EXPECT().SellInitiate(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ models.SellInitiateRequest) (models.Quote, error) {
			<-release
			return testQuote(), nil
		},
	)

	o.Open(ctx)
	fillStep1(ctx, o)

	firstDone := make(chan error, 1)
	go func() { firstDone <- o.SubmitStep1(ctx) }()

	require.Eventually(t, func() bool {
		return o.State().Kind == StateStep1Submitting
	}, time.Second, time.Millisecond)

	err := o.SubmitStep1(ctx)
	require.ErrorIs(t, err, ErrSubmissionInFlight)

	close(release)
	require.NoError(t, <-firstDone)
	assert.Equal(t, StateStep2Collecting, o.State().Kind)
}
