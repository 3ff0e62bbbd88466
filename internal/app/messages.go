// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains shared application-layer message constants used
// across the ramp client UI and logs.
//
// All Msg* constants are human-readable strings shown to the user or written
// into log entries to describe the outcome of an operation. Keeping them in
// one place ensures consistent wording throughout the client.
package app

const (
	// MsgInvalidCredentials is shown when the supplied email/password
	// combination is rejected by the ramp service.
	MsgInvalidCredentials = "invalid email or password"

	// MsgSessionExpired is shown when the stored session can no longer be
	// refreshed and the user has to sign in again.
	MsgSessionExpired = "session expired, please sign in again"

	// MsgServerUnavailable is shown when the ramp service cannot be reached
	// at all (DNS failure, refused connection, timeout).
	MsgServerUnavailable = "network unavailable or service unreachable"

	// MsgOTPRequired is shown after sign-up while the account still awaits
	// code confirmation.
	MsgOTPRequired = "enter the verification code sent to your email"

	// MsgInvalidOTP is shown when the submitted verification code is
	// rejected.
	MsgInvalidOTP = "invalid verification code"

	// MsgCopied is the transient status shown after a value is placed on
	// the system clipboard.
	MsgCopied = "Copied!"

	// MsgOrderExpired is shown when a settled order's confirmation window
	// lapses without the user acknowledging it.
	MsgOrderExpired = "order expired"

	// MsgSubmissionInFlight is shown when the user triggers a submit while
	// the previous one is still on the wire.
	MsgSubmissionInFlight = "submission already in progress"

	// MsgTransactionNotFound is shown when reconciliation cannot find the
	// order on the server.
	MsgTransactionNotFound = "transaction not found"
)
