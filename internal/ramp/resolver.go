package ramp

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/MKhiriev/go-ramp-client/internal/adapter"
	"github.com/MKhiriev/go-ramp-client/internal/logger"
	"github.com/MKhiriev/go-ramp-client/models"
)

// resolveDebounce is how long input must be quiet before the verification
// endpoint is called.
const resolveDebounce = 500 * time.Millisecond

// resolveTimeout bounds one verification call.
const resolveTimeout = 10 * time.Second

// AccountResolver debounces bank/account input and verifies it against the
// account-name endpoint. Failures never retry automatically — the user must
// change the input to trigger another resolution.
type AccountResolver struct {
	adapter  adapter.RampAdapter
	log      *logger.Logger
	debounce time.Duration

	// onResult receives the resolved account or the verification error.
	// Called from a timer goroutine.
	onResult func(models.ResolvedAccount, error)

	mu    sync.Mutex
	timer *time.Timer
	gen   int
}

// NewAccountResolver constructs a resolver delivering outcomes to onResult.
func NewAccountResolver(rampAdapter adapter.RampAdapter, log *logger.Logger, onResult func(models.ResolvedAccount, error)) *AccountResolver {
	return &AccountResolver{
		adapter:  rampAdapter,
		log:      log,
		debounce: resolveDebounce,
		onResult: onResult,
	}
}

// Input feeds the current form values. Each call restarts the debounce
// window; only the values present when the window closes are verified.
// Incomplete input just cancels any pending resolution.
func (r *AccountResolver) Input(bankCode, accountNumber string) {
	bankCode = strings.TrimSpace(bankCode)
	accountNumber = strings.TrimSpace(accountNumber)

	r.mu.Lock()
	defer r.mu.Unlock()

	r.gen++
	gen := r.gen

	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
	if bankCode == "" || accountNumber == "" {
		return
	}

	r.timer = time.AfterFunc(r.debounce, func() {
		r.resolve(gen, bankCode, accountNumber)
	})
}

func (r *AccountResolver) resolve(gen int, bankCode, accountNumber string) {
	ctx, cancel := context.WithTimeout(context.Background(), resolveTimeout)
	defer cancel()

	resolved, err := r.adapter.ResolveAccountName(ctx, bankCode, accountNumber)

	// discard the outcome if newer input arrived while we were on the wire
	r.mu.Lock()
	stale := gen != r.gen
	r.mu.Unlock()
	if stale {
		return
	}

	if err != nil {
		r.log.Warn().Err(err).Msg("account name resolution failed")
	}
	r.onResult(resolved, err)
}

// Stop cancels any pending resolution. Call on teardown.
func (r *AccountResolver) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.gen++
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
}
