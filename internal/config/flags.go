package config

import (
	"flag"
	"time"
)

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-base-url ramp service base URL
//	-d local sqlite database path
//	-secret application vault secret
//	-environment deployment environment name
//	-auth-policy 401/403 handling policy ("refresh" or "auto-logout")
//	-request-timeout request timeout (e.g., "15s")
//	-refresh-check-interval token refresh worker interval (e.g., "60s")
//	-c/-config json file path with configs
func ParseFlags() *StructuredConfig {
	var baseURL string
	var dbPath string
	var appSecret string
	var environment string
	var authPolicy string
	var requestTimeout time.Duration
	var refreshCheckInterval time.Duration
	var jsonConfigPath string

	flag.StringVar(&baseURL, "base-url", "", "Ramp service base URL")
	flag.StringVar(&dbPath, "d", "", "Local sqlite database path")
	flag.StringVar(&appSecret, "secret", "", "Application vault secret")
	flag.StringVar(&environment, "environment", "", "Deployment environment")
	flag.StringVar(&authPolicy, "auth-policy", "", "Auth policy: refresh or auto-logout")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 15s)")
	flag.DurationVar(&refreshCheckInterval, "refresh-check-interval", 0, "Refresh worker interval (e.g., 60s)")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")

	flag.Parse()

	return &StructuredConfig{
		App: App{
			Secret:      appSecret,
			Environment: environment,
		},
		Storage: Storage{
			DB: DB{Path: dbPath},
		},
		Adapter: Adapter{
			BaseURL:        baseURL,
			RequestTimeout: requestTimeout,
			AuthPolicy:     AuthPolicy(authPolicy),
		},
		Workers: Workers{
			RefreshCheckInterval: refreshCheckInterval,
		},
		jsonFilePath: jsonConfigPath,
	}
}
