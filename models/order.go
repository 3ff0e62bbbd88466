// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// DepositInstructions tells the user where to send the crypto side of a sell
// order. All fields come verbatim from the server and are display-only.
type DepositInstructions struct {
	Address string `json:"address"`
	Network string `json:"network"`
	Token   string `json:"token"`
	Amount  string `json:"amount"`
}

// Quote is the server's answer to a sell initiation: identifiers, the
// computed exchange quote and the deposit instructions. A Quote is immutable
// once received; a new quote invalidates any payout details captured against
// the old one.
type Quote struct {
	// PaymentID identifies the order server-side and is the idempotency key
	// for every subsequent call about this order.
	PaymentID string `json:"paymentId"`

	// Reference is the human-facing order reference shown to support staff.
	Reference string `json:"reference"`

	Rate          float64   `json:"rate"`
	SellAmount    string    `json:"sellAmount"`
	ReceiveAmount float64   `json:"receiveAmount"`
	ExpiresAt     time.Time `json:"expiresAt"`

	Deposit DepositInstructions `json:"deposit"`
}

// PayoutDetails is the fiat counterparty the order settles to.
type PayoutDetails struct {
	BankName      string `json:"bankName"`
	BankCode      string `json:"bankCode"`
	AccountNumber string `json:"accountNumber"`
	AccountName   string `json:"accountName"`
}

// Settlement is created only after a successful payout submission. Its
// presence is what promotes the flow to the final summary state.
type Settlement struct {
	PaymentID string        `json:"paymentId"`
	Status    string        `json:"status"`
	Payout    PayoutDetails `json:"payout"`
}

// Valid reports whether the settlement is structurally complete: it must
// carry the order identifier and a payout object before the flow may treat
// the order as settled.
func (s *Settlement) Valid() bool {
	return s != nil && s.PaymentID != "" && s.Payout != (PayoutDetails{})
}

// OrderSnapshot is the crash/reload recovery record for an in-flight order.
// It is written after every state-changing event and restored on the next
// open if younger than the staleness window.
type OrderSnapshot struct {
	// Step is 1 while collecting/submitting the sell amount, 2 afterwards.
	Step int `json:"step"`

	Quote      *Quote      `json:"quote,omitempty"`
	Settlement *Settlement `json:"settlement,omitempty"`

	// FormFields preserves user-entered input across reloads so a failure
	// never discards what was typed.
	FormFields map[string]string `json:"formFields,omitempty"`

	// Timestamp is epoch milliseconds of the last mutation; used for the
	// staleness check on restore.
	Timestamp int64 `json:"timestamp"`
}

// Age returns how long ago the snapshot was last written.
func (s OrderSnapshot) Age(now time.Time) time.Duration {
	return now.Sub(time.UnixMilli(s.Timestamp))
}

// Bank is one entry of the naira bank directory used by the payout form.
type Bank struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

// ResolvedAccount is the result of the account-name verification sub-flow.
type ResolvedAccount struct {
	AccountNumber string `json:"accountNumber"`
	AccountName   string `json:"accountName"`
}
