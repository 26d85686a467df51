package app

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultRelayURL is used when neither the config file nor a flag names one.
const DefaultRelayURL = "http://127.0.0.1:8080"

// Config holds runtime wiring options for building the app.
type Config struct {
	Home     string       // config directory, e.g. $HOME/.veil
	RelayURL string       // relay base URL, e.g. http://127.0.0.1:8080
	HTTP     *http.Client // optional; defaults to http.DefaultClient
}

// fileConfig is the subset of Config persisted in Home/config.yaml.
type fileConfig struct {
	RelayURL string `yaml:"relay_url"`
}

// LoadConfig resolves the effective configuration for home. Values from
// Home/config.yaml fill anything the caller left empty; a missing file is not
// an error. relayURL, when non-empty, wins over the file.
func LoadConfig(home, relayURL string) (Config, error) {
	cfg := Config{Home: home, RelayURL: relayURL}

	raw, err := os.ReadFile(filepath.Join(home, "config.yaml"))
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return Config{}, fmt.Errorf("read config: %w", err)
	default:
		var fc fileConfig
		if err := yaml.Unmarshal(raw, &fc); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
		if cfg.RelayURL == "" {
			cfg.RelayURL = fc.RelayURL
		}
	}

	if cfg.RelayURL == "" {
		cfg.RelayURL = DefaultRelayURL
	}
	return cfg, nil
}

// DefaultHome returns $HOME/.veil.
func DefaultHome() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".veil"), nil
}
