// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

// validate checks that the final merged [StructuredConfig] satisfies
// application invariants before it is used at startup. Defaults are applied
// by [GetClientConfig], so missing values are not rejected here.
func (cfg *StructuredConfig) validate() error {
	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.Adapter.BaseURL == "" || cfg.Adapter.RequestTimeout == 0 {
		return ErrInvalidAdapterConfigs
	}

	switch cfg.Adapter.AuthPolicy {
	case AuthPolicyRefresh, AuthPolicyAutoLogout:
	default:
		return ErrInvalidAdapterConfigs
	}

	// The baked-in dev secret must never reach production builds.
	if cfg.App.Environment == "production" && cfg.App.Secret == DevAppSecret {
		return ErrInvalidAppConfigs
	}

	if cfg.Workers.RefreshCheckInterval <= 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}
