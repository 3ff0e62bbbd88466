package config

import (
	"fmt"
	"time"
)

// ClientApp holds client-side application settings derived from the shared
// structured config.
type ClientApp struct {
	// Secret is the KDF input for the encrypted credential vault.
	Secret string
	// Environment is the deployment environment name.
	Environment string
}

// ClientAdapter holds network settings used by the client transport layer.
type ClientAdapter struct {
	// BaseURL is the ramp service base URL.
	BaseURL string
	// RequestTimeout is the default timeout for outbound client requests.
	RequestTimeout time.Duration
	// AuthPolicy selects the 401/403 handling policy.
	AuthPolicy AuthPolicy
}

// ClientDB contains local database connection settings for the client.
type ClientDB struct {
	// Path is the sqlite database file path used by the client.
	Path string
}

// ClientStorage groups client storage backend settings.
type ClientStorage struct {
	// DB holds local database settings.
	DB ClientDB
}

// ClientWorkers contains client background worker settings.
type ClientWorkers struct {
	// RefreshCheckInterval defines how often the token worker checks expiry.
	RefreshCheckInterval time.Duration
}

// ClientConfig is the top-level client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	// App contains application-level client settings.
	App ClientApp
	// Adapter contains client transport addresses and timeouts.
	Adapter ClientAdapter
	// Storage contains client storage settings.
	Storage ClientStorage
	// Workers contains background job settings.
	Workers ClientWorkers
}

// GetClientConfig builds and validates a client-specific config view from the
// merged structured configuration, applying client defaults for anything the
// layers left unset.
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := &ClientConfig{
		App: ClientApp{
			Secret:      cfg.App.Secret,
			Environment: cfg.App.Environment,
		},
		Adapter: ClientAdapter{
			BaseURL:        cfg.Adapter.BaseURL,
			RequestTimeout: cfg.Adapter.RequestTimeout,
			AuthPolicy:     cfg.Adapter.AuthPolicy,
		},
		Storage: ClientStorage{
			DB: ClientDB{
				Path: cfg.Storage.DB.Path,
			},
		},
		Workers: ClientWorkers{
			RefreshCheckInterval: cfg.Workers.RefreshCheckInterval,
		},
	}

	applyClientDefaults(clientCfg)

	if err = clientCfg.validate(); err != nil {
		return nil, fmt.Errorf("error validating client config: %w", err)
	}

	return clientCfg, nil
}

func applyClientDefaults(cfg *ClientConfig) {
	if cfg.App.Secret == "" {
		cfg.App.Secret = DevAppSecret
	}
	if cfg.Adapter.RequestTimeout <= 0 {
		cfg.Adapter.RequestTimeout = 15 * time.Second
	}
	if cfg.Adapter.AuthPolicy == "" {
		cfg.Adapter.AuthPolicy = AuthPolicyRefresh
	}
	if cfg.Storage.DB.Path == "" {
		cfg.Storage.DB.Path = "ramp-client.db"
	}
	if cfg.Workers.RefreshCheckInterval <= 0 {
		cfg.Workers.RefreshCheckInterval = 60 * time.Second
	}
}
