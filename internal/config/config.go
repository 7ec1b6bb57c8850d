package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the top-level moneytracker.yaml configuration.
type Config struct {
	Server ServerConfig `yaml:"server"`
	Client ClientConfig `yaml:"client"`
}

// ServerConfig configures the document server.
type ServerConfig struct {
	Addr     string `yaml:"addr"`
	MongoURI string `yaml:"mongo_uri"`
	Database string `yaml:"database"`
}

// ClientConfig configures CLI commands that talk to a running server.
type ClientConfig struct {
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// Load reads a moneytracker.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with local-development defaults.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:     ":4000",
			MongoURI: "mongodb://localhost:27017",
			Database: "moneytracker",
		},
		Client: ClientConfig{
			BaseURL:        "http://localhost:4000",
			TimeoutSeconds: 15,
		},
	}
}

// FromEnv overlays environment variables onto cfg: MONGODB_URI, PORT, and
// MONEYTRACKER_API take precedence over the file.
func FromEnv(cfg *Config) {
	if uri := os.Getenv("MONGODB_URI"); uri != "" {
		cfg.Server.MongoURI = uri
	}
	if port := os.Getenv("PORT"); port != "" {
		cfg.Server.Addr = ":" + port
	}
	if api := os.Getenv("MONEYTRACKER_API"); api != "" {
		cfg.Client.BaseURL = api
	}
}
