// Package config loads the client configuration from command-line flags,
// environment variables and an optional JSON file, merges the layers and
// exposes a validated client view via [GetClientConfig].
package config
