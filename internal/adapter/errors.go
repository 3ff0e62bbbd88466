package adapter

import "errors"

var (
	// ErrUnauthorized is returned for 401/403 responses after the configured
	// auth policy has run its course.
	ErrUnauthorized = errors.New("client unauthorized")

	// ErrTransient marks failures worth retrying: network errors, timeouts
	// and 5xx responses.
	ErrTransient = errors.New("transient network error")

	// ErrNotFound is returned for 404 responses; the reconciliation path
	// maps it to "transaction not found".
	ErrNotFound = errors.New("not found")

	// ErrServerRejection marks 4xx business errors. The server's message is
	// carried verbatim in the wrapping error and must never be retried.
	ErrServerRejection = errors.New("request rejected")
)
