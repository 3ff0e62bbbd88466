package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Duration is a time.Duration that unmarshals from JSON strings like "15s".
type Duration time.Duration

func (d *Duration) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("duration must be a string: %w", err)
	}

	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("error parsing duration %q: %w", raw, err)
	}

	*d = Duration(parsed)
	return nil
}

type StructuredJSONConfig struct {
	App struct {
		Secret      string `json:"secret"`
		Environment string `json:"environment"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			Path string `json:"path"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	Adapter struct {
		BaseURL        string   `json:"base_url"`
		RequestTimeout Duration `json:"request_timeout"`
		AuthPolicy     string   `json:"auth_policy"`
	} `json:"adapter,omitempty"`

	Workers struct {
		RefreshCheckInterval Duration `json:"refresh_check_interval"`
	} `json:"workers,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			Secret:      jsonCfg.App.Secret,
			Environment: jsonCfg.App.Environment,
		},
		Storage: Storage{
			DB: DB{Path: jsonCfg.Storage.DB.Path},
		},
		Adapter: Adapter{
			BaseURL:        jsonCfg.Adapter.BaseURL,
			RequestTimeout: time.Duration(jsonCfg.Adapter.RequestTimeout),
			AuthPolicy:     AuthPolicy(jsonCfg.Adapter.AuthPolicy),
		},
		Workers: Workers{
			RefreshCheckInterval: time.Duration(jsonCfg.Workers.RefreshCheckInterval),
		},
	}

	return cfg, nil
}
