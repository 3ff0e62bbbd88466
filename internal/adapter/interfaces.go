package adapter

import (
	"context"

	"github.com/MKhiriev/go-ramp-client/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/ramp_adapter_mock.go -package=mock

// RampAdapter is the client's only door to the ramp service. Every authed
// call reads the freshest access token from the credential store at send
// time — tokens are never cached at a call site — and 401/403 responses are
// handled by the configured auth policy before the caller sees them.
type RampAdapter interface {
	// SignIn authenticates and persists the returned credential bundle.
	SignIn(ctx context.Context, req models.SignInRequest) (*models.UserProfile, error)

	// SignUp registers a new account; credentials arrive after OTP
	// verification, not here.
	SignUp(ctx context.Context, req models.SignUpRequest) error

	// VerifyOTP confirms the sign-up code and persists the returned bundle.
	VerifyOTP(ctx context.Context, req models.VerifyOTPRequest) (*models.UserProfile, error)

	// SignOut clears local credentials. The server keeps no session state.
	SignOut(ctx context.Context)

	// SellInitiate opens a sell order and returns the quote with deposit
	// instructions.
	SellInitiate(ctx context.Context, req models.SellInitiateRequest) (models.Quote, error)

	// SellPayout submits the payout leg. Retried submissions must reuse the
	// PaymentID from the original quote; the server deduplicates by it.
	SellPayout(ctx context.Context, req models.SellPayoutRequest) (models.Settlement, error)

	// SellStatus polls the authoritative order state (reconciliation path).
	SellStatus(ctx context.Context, paymentID string) (models.SellStatusResponse, error)

	// NairaBanks returns the bank directory for the payout form.
	NairaBanks(ctx context.Context) ([]models.Bank, error)

	// ResolveAccountName verifies a bank account and returns the registered
	// holder name.
	ResolveAccountName(ctx context.Context, bankCode, accountNumber string) (models.ResolvedAccount, error)

	// CheckSession is the proactive hook for the background token worker:
	// depending on policy it refreshes a near-expiry access token or logs
	// the session out once it passes the ceiling.
	CheckSession(ctx context.Context) error
}
