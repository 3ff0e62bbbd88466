// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"

	"github.com/MKhiriev/go-ramp-client/internal/config"
	"github.com/MKhiriev/go-ramp-client/internal/credstore"
	"github.com/MKhiriev/go-ramp-client/internal/logger"
	"github.com/MKhiriev/go-ramp-client/internal/token"
	"github.com/MKhiriev/go-ramp-client/models"
)

const (
	// sessionCeiling is the absolute session lifetime measured from the
	// access token's iat claim. Past it the auto-logout policy ends the
	// session regardless of exp.
	sessionCeiling = 45 * time.Minute

	// refreshAhead is how close to expiry the proactive session check acts.
	refreshAhead = 2 * time.Minute
)

// refreshCall is one in-flight token refresh. Late callers wait on done and
// share err instead of issuing a second refresh — parallel refreshes would
// invalidate each other's refresh tokens server-side.
type refreshCall struct {
	done chan struct{}
	err  error
}

type rampHTTPAdapter struct {
	client   *resty.Client
	creds    credstore.Store
	policy   config.AuthPolicy
	log      *logger.Logger
	onLogout func()

	mu         sync.Mutex
	refreshing *refreshCall

	// banks caches the directory after the first successful fetch; it
	// changes rarely and backs a picker, not a ledger.
	banksMu sync.Mutex
	banks   []models.Bank
}

// NewRampHTTPAdapter constructs the HTTP [RampAdapter]. onLogout (optional)
// is invoked whenever the adapter terminates the session locally; the UI
// uses it to fall back to the sign-in screen.
func NewRampHTTPAdapter(cfg config.ClientAdapter, creds credstore.Store, log *logger.Logger, onLogout func()) RampAdapter {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:8080"
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 15 * time.Second
	}
	if cfg.AuthPolicy == "" {
		cfg.AuthPolicy = config.AuthPolicyRefresh
	}

	cli := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.RequestTimeout)

	return &rampHTTPAdapter{
		client:   cli,
		creds:    creds,
		policy:   cfg.AuthPolicy,
		log:      log,
		onLogout: onLogout,
	}
}

// ── auth endpoints (no bearer attached) ─────────────────────────────────────

func (h *rampHTTPAdapter) SignIn(ctx context.Context, req models.SignInRequest) (*models.UserProfile, error) {
	resp, err := h.plainRequest(ctx).SetBody(req).Post("/auth/signin")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransient, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return h.storeAuthResponse(ctx, resp)
}

func (h *rampHTTPAdapter) SignUp(ctx context.Context, req models.SignUpRequest) error {
	resp, err := h.plainRequest(ctx).SetBody(req).Post("/auth/signup")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTransient, err)
	}
	return mapHTTPError(resp)
}

func (h *rampHTTPAdapter) VerifyOTP(ctx context.Context, req models.VerifyOTPRequest) (*models.UserProfile, error) {
	resp, err := h.plainRequest(ctx).SetBody(req).Post("/auth/verify-otp")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransient, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return h.storeAuthResponse(ctx, resp)
}

func (h *rampHTTPAdapter) SignOut(ctx context.Context) {
	h.creds.Clear(ctx)
}

// storeAuthResponse decodes an [models.AuthResponse] body and persists the
// bundle through the credential store before returning the profile.
func (h *rampHTTPAdapter) storeAuthResponse(ctx context.Context, resp *resty.Response) (*models.UserProfile, error) {
	var auth models.AuthResponse
	if err := json.Unmarshal(resp.Body(), &auth); err != nil {
		return nil, fmt.Errorf("%w: decode auth response: %v", ErrTransient, err)
	}

	if err := h.creds.SetTokens(ctx, auth.AccessToken, auth.RefreshToken); err != nil {
		return nil, fmt.Errorf("persist tokens: %w", err)
	}
	if auth.User != nil {
		if err := h.creds.SetUser(ctx, auth.User); err != nil {
			return nil, fmt.Errorf("persist user: %w", err)
		}
	}

	return auth.User, nil
}

// ── sell flow endpoints ─────────────────────────────────────────────────────

func (h *rampHTTPAdapter) SellInitiate(ctx context.Context, req models.SellInitiateRequest) (models.Quote, error) {
	var quote models.Quote
	if err := h.doAuthed(ctx, http.MethodPost, "/sell/initiate", req, &quote); err != nil {
		return models.Quote{}, err
	}
	return quote, nil
}

func (h *rampHTTPAdapter) SellPayout(ctx context.Context, req models.SellPayoutRequest) (models.Settlement, error) {
	var settlement models.Settlement
	if err := h.doAuthed(ctx, http.MethodPost, "/sell/payout", req, &settlement); err != nil {
		return models.Settlement{}, err
	}
	return settlement, nil
}

func (h *rampHTTPAdapter) SellStatus(ctx context.Context, paymentID string) (models.SellStatusResponse, error) {
	var status models.SellStatusResponse
	if err := h.doAuthed(ctx, http.MethodGet, "/sell/status/"+paymentID, nil, &status); err != nil {
		return models.SellStatusResponse{}, err
	}
	return status, nil
}

func (h *rampHTTPAdapter) NairaBanks(ctx context.Context) ([]models.Bank, error) {
	h.banksMu.Lock()
	if cached := h.banks; len(cached) > 0 {
		h.banksMu.Unlock()
		return cached, nil
	}
	h.banksMu.Unlock()

	var banks models.NairaBanksResponse
	if err := h.doAuthed(ctx, http.MethodGet, "/fetchnaira/naira-accounts", nil, &banks); err != nil {
		return nil, err
	}

	h.banksMu.Lock()
	h.banks = banks.Banks
	h.banksMu.Unlock()
	return banks.Banks, nil
}

func (h *rampHTTPAdapter) ResolveAccountName(ctx context.Context, bankCode, accountNumber string) (models.ResolvedAccount, error) {
	path := fmt.Sprintf("/accountname/resolve?sortCode=%s&accountNumber=%s", bankCode, accountNumber)

	var resolved models.ResolvedAccount
	if err := h.doAuthed(ctx, http.MethodGet, path, nil, &resolved); err != nil {
		return models.ResolvedAccount{}, err
	}
	return resolved, nil
}

// ── authenticated transport core ────────────────────────────────────────────

// doAuthed issues one authenticated request. The access token is read fresh
// from the credential store at send time; a token the local check already
// knows is dead is never attached unrefreshed.
func (h *rampHTTPAdapter) doAuthed(ctx context.Context, method, path string, body, out any) error {
	pair, err := h.creds.GetTokens(ctx)
	if err != nil {
		return err
	}

	access := pair.AccessToken
	if access != "" && token.Inspect(access).Expired(time.Now()) {
		switch h.policy {
		case config.AuthPolicyRefresh:
			if rerr := h.refreshTokens(ctx); rerr != nil {
				h.logout(ctx)
				return ErrUnauthorized
			}
			if pair, err = h.creds.GetTokens(ctx); err != nil {
				return err
			}
			access = pair.AccessToken
		case config.AuthPolicyAutoLogout:
			h.logout(ctx)
			return ErrUnauthorized
		}
	}

	resp, err := h.send(ctx, method, path, body, access)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTransient, err)
	}

	if resp.StatusCode() == http.StatusUnauthorized || resp.StatusCode() == http.StatusForbidden {
		resp, err = h.handleAuthFailure(ctx, method, path, body, access, resp)
		if err != nil {
			return err
		}
	}

	if err = mapHTTPError(resp); err != nil {
		return err
	}

	if out != nil {
		if err = json.Unmarshal(resp.Body(), out); err != nil {
			// a 2xx with an undecodable body is still worth one more try
			return fmt.Errorf("%w: decode response: %v", ErrTransient, err)
		}
	}
	return nil
}

// handleAuthFailure applies the configured 401/403 policy. It returns the
// response the caller should continue with: the retried one under the
// refresh policy, the original otherwise.
func (h *rampHTTPAdapter) handleAuthFailure(ctx context.Context, method, path string, body any, access string, original *resty.Response) (*resty.Response, error) {
	switch h.policy {
	case config.AuthPolicyRefresh:
		if rerr := h.refreshTokens(ctx); rerr != nil {
			h.log.Warn().Err(rerr).Msg("token refresh failed, clearing credentials")
			h.creds.Clear(ctx)
			return original, nil
		}

		pair, err := h.creds.GetTokens(ctx)
		if err != nil {
			return nil, err
		}
		retried, err := h.send(ctx, method, path, body, pair.AccessToken)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrTransient, err)
		}
		return retried, nil

	case config.AuthPolicyAutoLogout:
		claims := token.Inspect(access)
		now := time.Now()
		if claims.Expired(now) || claims.Age(now) >= sessionCeiling {
			h.logout(ctx)
		}
		return original, nil
	}

	return original, nil
}

func (h *rampHTTPAdapter) send(ctx context.Context, method, path string, body any, access string) (*resty.Response, error) {
	req := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader("X-Request-Id", requestID())
	if access != "" {
		req.SetHeader("Authorization", "Bearer "+access)
	}
	if body != nil {
		req.SetBody(body)
	}

	return req.Execute(method, path)
}

func (h *rampHTTPAdapter) plainRequest(ctx context.Context) *resty.Request {
	return h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader("X-Request-Id", requestID())
}

func requestID() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return v7.String()
}

// ── token refresh ───────────────────────────────────────────────────────────

// refreshTokens performs at most one refresh at a time process-wide.
// Concurrent callers attach to the in-flight call and share its outcome.
func (h *rampHTTPAdapter) refreshTokens(ctx context.Context) error {
	h.mu.Lock()
	if call := h.refreshing; call != nil {
		h.mu.Unlock()
		select {
		case <-call.done:
			return call.err
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	call := &refreshCall{done: make(chan struct{})}
	h.refreshing = call
	h.mu.Unlock()

	call.err = h.doRefresh(ctx)
	close(call.done)

	h.mu.Lock()
	h.refreshing = nil
	h.mu.Unlock()

	return call.err
}

func (h *rampHTTPAdapter) doRefresh(ctx context.Context) error {
	pair, err := h.creds.GetTokens(ctx)
	if err != nil {
		return err
	}
	if pair.RefreshToken == "" || token.Inspect(pair.RefreshToken).Expired(time.Now()) {
		return ErrUnauthorized
	}

	resp, err := h.plainRequest(ctx).
		SetHeader("Authorization", "Bearer "+pair.RefreshToken).
		Post("/auth/refresh")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTransient, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return err
	}

	var auth models.AuthResponse
	if err = json.Unmarshal(resp.Body(), &auth); err != nil {
		return fmt.Errorf("%w: decode refresh response: %v", ErrTransient, err)
	}
	if auth.AccessToken == "" {
		return fmt.Errorf("%w: refresh response missing access token", ErrServerRejection)
	}

	if err = h.creds.SetTokens(ctx, auth.AccessToken, auth.RefreshToken); err != nil {
		return err
	}
	if auth.User != nil {
		if err = h.creds.SetUser(ctx, auth.User); err != nil {
			return err
		}
	}

	h.log.Debug().Msg("access token refreshed")
	return nil
}

// CheckSession implements the proactive expiry check run by the background
// worker every refresh-check interval, independent of in-flight requests.
func (h *rampHTTPAdapter) CheckSession(ctx context.Context) error {
	pair, err := h.creds.GetTokens(ctx)
	if err != nil {
		return err
	}
	if pair.AccessToken == "" {
		return nil
	}

	claims := token.Inspect(pair.AccessToken)
	now := time.Now()

	switch h.policy {
	case config.AuthPolicyRefresh:
		if claims.ExpiresWithin(now, refreshAhead) {
			if err = h.refreshTokens(ctx); err != nil {
				h.logout(ctx)
				return err
			}
		}
	case config.AuthPolicyAutoLogout:
		if claims.ExpiresWithin(now, refreshAhead) || claims.Age(now) >= sessionCeiling-refreshAhead {
			h.logout(ctx)
		}
	}
	return nil
}

func (h *rampHTTPAdapter) logout(ctx context.Context) {
	h.creds.Clear(ctx)
	if h.onLogout != nil {
		h.onLogout()
	}
}
