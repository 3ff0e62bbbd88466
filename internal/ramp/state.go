// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package ramp

import (
	"time"

	"github.com/MKhiriev/go-ramp-client/models"
)

// StateKind enumerates the order flow states. Transitions happen only inside
// the orchestrator's transition methods, so contradictory combinations
// (submitting while already settled, a settlement without a quote) cannot be
// expressed.
type StateKind int

const (
	// StateIdle — no order open.
	StateIdle StateKind = iota
	// StateStep1Collecting — gathering token/network/amount.
	StateStep1Collecting
	// StateStep1Submitting — sell initiation on the wire.
	StateStep1Submitting
	// StateStep2Collecting — quote received, gathering payout details.
	StateStep2Collecting
	// StateStep2Submitting — payout submission on the wire.
	StateStep2Submitting
	// StateSettled — payout accepted; the countdown to auto-close is running.
	StateSettled
	// StateClosed — flow ended by the user.
	StateClosed
	// StateExpired — the post-settlement countdown ran out.
	StateExpired
)

func (k StateKind) String() string {
	switch k {
	case StateIdle:
		return "idle"
	case StateStep1Collecting:
		return "step1-collecting"
	case StateStep1Submitting:
		return "step1-submitting"
	case StateStep2Collecting:
		return "step2-collecting"
	case StateStep2Submitting:
		return "step2-submitting"
	case StateSettled:
		return "settled"
	case StateClosed:
		return "closed"
	case StateExpired:
		return "expired"
	}
	return "unknown"
}

// Terminal reports whether the flow is over.
func (k StateKind) Terminal() bool {
	return k == StateClosed || k == StateExpired
}

// State is an immutable snapshot of the orchestrator handed to the UI.
// Fields is a copy; mutating it does not affect the flow.
type State struct {
	Kind       StateKind
	Quote      *models.Quote
	Settlement *models.Settlement
	Fields     map[string]string

	// Deadline is when the settled order auto-expires; zero outside
	// [StateSettled].
	Deadline time.Time
}

// Form field keys shared between the orchestrator and the UI.
const (
	FieldToken         = "token"
	FieldNetwork       = "network"
	FieldSellAmount    = "sellAmount"
	FieldBankName      = "bankName"
	FieldBankCode      = "bankCode"
	FieldAccountNumber = "accountNumber"
	FieldAccountName   = "accountName"
)
