package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the paisabot.yaml configuration.
type Config struct {
	Storage    StorageConfig    `yaml:"storage"`
	History    HistoryConfig    `yaml:"history"`
	Classifier ClassifierConfig `yaml:"classifier"`
}

// StorageConfig selects and configures the ledger backend.
type StorageConfig struct {
	Backend string      `yaml:"backend"` // "file" or "redis"
	File    string      `yaml:"file"`    // ledger JSON path for the file backend
	Redis   RedisConfig `yaml:"redis"`
}

// RedisConfig configures the redis backend.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password,omitempty"`
	DB       int    `yaml:"db"`
}

// HistoryConfig controls the CSV mutation log. An empty file disables it.
type HistoryConfig struct {
	File string `yaml:"file,omitempty"`
}

// ClassifierConfig controls the optional trained-model snapshot. An empty
// snapshot path means the model is retrained on every start.
type ClassifierConfig struct {
	Snapshot string `yaml:"snapshot,omitempty"`
}

// Secrets holds the two credentials read from the process environment.
type Secrets struct {
	TelegramToken   string
	AlphaVantageKey string
}

const (
	BackendFile  = "file"
	BackendRedis = "redis"
)

// Load reads a paisabot.yaml file from disk. A missing file yields the
// defaults; a malformed one is an error.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
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

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		Storage: StorageConfig{
			Backend: BackendFile,
			File:    "finance.json",
			Redis: RedisConfig{
				Addr: "localhost:6379",
			},
		},
		History: HistoryConfig{
			File: "history.csv",
		},
	}
}

func (c *Config) validate() error {
	switch c.Storage.Backend {
	case BackendFile, BackendRedis:
		return nil
	default:
		return fmt.Errorf("unknown storage backend %q", c.Storage.Backend)
	}
}

// LoadSecrets reads the bot token and market-data API key from the
// environment, after loading a .env file if one exists. Either secret
// missing fails fast rather than surfacing opaquely on first use.
func LoadSecrets() (Secrets, error) {
	_ = godotenv.Load()

	s := Secrets{
		TelegramToken:   os.Getenv("TELEGRAM_BOT_TOKEN"),
		AlphaVantageKey: os.Getenv("ALPHA_VANTAGE_KEY"),
	}
	if s.TelegramToken == "" {
		return Secrets{}, errors.New("TELEGRAM_BOT_TOKEN environment variable is required")
	}
	if s.AlphaVantageKey == "" {
		return Secrets{}, errors.New("ALPHA_VANTAGE_KEY environment variable is required")
	}
	return s, nil
}
