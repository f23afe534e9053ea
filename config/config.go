// Package config loads the YAML configuration for cmd/tn3270demo.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the demo server's listener and session defaults.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Session SessionConfig `yaml:"session"`
}

// ServerConfig holds network listener settings.
type ServerConfig struct {
	ListenAddr string `yaml:"listen_addr"`
	HealthPort int    `yaml:"health_port"`
}

// SessionConfig holds the per-connection TN3270(E) defaults offered
// during negotiation (spec §6 config fields).
type SessionConfig struct {
	Model              int           `yaml:"model"`
	Extended           bool          `yaml:"extended"`
	CodePage           string        `yaml:"code_page"`
	NegotiationTimeout time.Duration `yaml:"negotiation_timeout"`
}

// Load reads and parses a YAML config file, filling in defaults for
// anything the file omits before unmarshaling over them.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg := &Config{
		Server: ServerConfig{
			ListenAddr: ":3270",
			HealthPort: 0,
		},
		Session: SessionConfig{
			Model:              2,
			Extended:           true,
			CodePage:           "037",
			NegotiationTimeout: 30 * time.Second,
		},
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	return cfg, nil
}
