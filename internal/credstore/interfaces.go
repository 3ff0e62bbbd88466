package credstore

import (
	"context"

	"github.com/MKhiriev/go-ramp-client/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/credstore_mock.go -package=mock

// Store holds the current access/refresh token pair and user profile in
// memory, backed by the encrypted record store. It is a process-wide
// singleton constructed once at startup and passed by reference to every
// consumer; no other component touches the credential records directly.
//
// All methods are safe for concurrent use. Readers that arrive before the
// decrypt-on-load pass has finished share that single pass instead of
// observing a partially loaded bundle.
type Store interface {
	// GetTokens returns the current token pair. It blocks until the one-time
	// load pass completes, so it is safe to call at any point after
	// construction. The only error is ctx cancellation.
	GetTokens(ctx context.Context) (models.TokenPair, error)

	// SetTokens replaces both tokens in memory and writes the encrypted
	// records. Callers that need durability before navigating away must wait
	// for it to return.
	SetTokens(ctx context.Context, access, refresh string) error

	// GetUser returns the cached profile, or nil when absent or not yet
	// loaded. It is deliberately synchronous: profile data gates no security
	// decision, so a momentarily stale nil is acceptable.
	GetUser() *models.UserProfile

	// SetUser replaces the profile in memory and persists it encrypted.
	SetUser(ctx context.Context, user *models.UserProfile) error

	// Clear wipes the in-memory bundle and deletes all persisted credential
	// records. It is idempotent and never fails: storage errors are logged
	// and swallowed so sign-out always succeeds locally.
	Clear(ctx context.Context)
}
