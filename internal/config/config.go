// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// DevAppSecret is the fallback KDF input used when APP_SECRET is unset.
// Acceptable only outside production; validate rejects it there.
const DevAppSecret = "dev-ramp-secret"

// AuthPolicy selects how the HTTP adapter reacts to 401/403 responses.
type AuthPolicy string

const (
	// AuthPolicyRefresh attempts a token refresh and retries the original
	// request once.
	AuthPolicyRefresh AuthPolicy = "refresh"
	// AuthPolicyAutoLogout treats 401/403 plus a local expiry check as a
	// dead session and clears credentials.
	AuthPolicyAutoLogout AuthPolicy = "auto-logout"
)

// StructuredConfig is the top-level configuration container for the
// go-ramp-client application. It is populated by merging values from
// environment variables, command-line flags, and an optional JSON file.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings such as the vault secret.
	App App `envPrefix:"APP_"`

	// Storage holds configuration for the local persistence backend.
	Storage Storage `envPrefix:"STORAGE_"`

	// Adapter holds network settings for the ramp service HTTP API.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Workers holds configuration for background worker processes.
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`

	jsonFilePath string
}

// App holds application-level configuration values.
type App struct {
	// Secret is the KDF input for the encrypted credential vault.
	// Falls back to [DevAppSecret] when unset.
	// Env: APP_SECRET
	Secret string `env:"SECRET"`

	// Environment is the deployment environment name ("production",
	// "staging", "dev"). The dev secret fallback is rejected in production.
	// Env: APP_ENVIRONMENT
	Environment string `env:"ENVIRONMENT"`
}

// Storage groups the configuration for the local storage backend.
type Storage struct {
	// DB holds the local sqlite database settings.
	DB DB `envPrefix:"DB_"`
}

// DB holds connection settings for the local sqlite database.
type DB struct {
	// Path is the sqlite database file path (":memory:" for ephemeral runs).
	// Env: STORAGE_DB_PATH
	Path string `env:"PATH"`
}

// Adapter holds network settings for the outbound transport layer.
type Adapter struct {
	// BaseURL is the ramp service base URL (e.g. "https://api.example.com").
	// Env: ADAPTER_BASE_URL
	BaseURL string `env:"BASE_URL"`

	// RequestTimeout is the default timeout for outbound requests
	// (e.g. "15s").
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// AuthPolicy selects the 401/403 handling policy: "refresh" or
	// "auto-logout".
	// Env: ADAPTER_AUTH_POLICY
	AuthPolicy AuthPolicy `env:"AUTH_POLICY"`
}

// Workers holds background worker settings.
type Workers struct {
	// RefreshCheckInterval defines how often the token-refresh worker
	// inspects the access token (e.g. "60s").
	// Env: WORKERS_REFRESH_CHECK_INTERVAL
	RefreshCheckInterval time.Duration `env:"REFRESH_CHECK_INTERVAL"`
}

// GetStructuredConfig loads and merges configuration from flags, environment
// variables and an optional JSON file, in increasing order of precedence
// for values absent in earlier layers (mergo keeps the first non-zero value).
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withFlags().
		withEnv().
		withJSON().
		build()
}
