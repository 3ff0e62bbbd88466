// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package token reads expiry metadata out of JWTs without verifying them.
//
// The client never checks token signatures — that trust boundary is
// server-side. Claims parsed here drive only UX-level decisions: whether to
// refresh proactively, whether to log the user out locally. A token whose
// payload cannot be parsed is always treated as expired.
package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the advisory view of a token's lifetime. It makes no claim of
// cryptographic validity.
type Claims struct {
	// ExpiresAt is the "exp" claim; zero when absent.
	ExpiresAt time.Time
	// IssuedAt is the "iat" claim; zero when absent.
	IssuedAt time.Time
	// Unparsable is set when the payload could not be decoded at all.
	Unparsable bool
}

// Inspect parses the unverified payload of raw and extracts exp and iat.
// An empty or malformed token yields Claims{Unparsable: true}, which
// [Claims.Expired] always reports as expired.
func Inspect(raw string) Claims {
	if raw == "" {
		return Claims{Unparsable: true}
	}

	parsed, _, err := jwt.NewParser().ParseUnverified(raw, jwt.MapClaims{})
	if err != nil {
		return Claims{Unparsable: true}
	}

	var c Claims
	if exp, err := parsed.Claims.GetExpirationTime(); err == nil && exp != nil {
		c.ExpiresAt = exp.Time
	}
	if iat, err := parsed.Claims.GetIssuedAt(); err == nil && iat != nil {
		c.IssuedAt = iat.Time
	}
	return c
}

// Expired reports whether the token must be treated as dead at now.
// Unparsable tokens and tokens without an exp claim are always expired.
func (c Claims) Expired(now time.Time) bool {
	if c.Unparsable || c.ExpiresAt.IsZero() {
		return true
	}
	return !now.Before(c.ExpiresAt)
}

// ExpiresWithin reports whether the token is expired at now or will expire
// within d. Used by the proactive refresh worker.
func (c Claims) ExpiresWithin(now time.Time, d time.Duration) bool {
	return c.Expired(now.Add(d))
}

// Age returns how long ago the token was issued, or zero when the iat claim
// is absent. Used for the absolute session ceiling check.
func (c Claims) Age(now time.Time) time.Duration {
	if c.IssuedAt.IsZero() {
		return 0
	}
	return now.Sub(c.IssuedAt)
}
