// Package config loads TACIT settings from TOML files with TACIT_* environment
// overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds all configuration for the client, the TUI and the server.
type Config struct {
	Service ServiceConfig `toml:"service"`
	Session SessionConfig `toml:"session"`
	Server  ServerConfig  `toml:"server"`
	Logging LoggingConfig `toml:"logging"`
}

// ServiceConfig describes how to reach the sentence service.
type ServiceConfig struct {
	BaseURL   string `toml:"base_url"`
	Timeout   string `toml:"timeout"`
	RateLimit int    `toml:"rate_limit"` // requests per second
	Wake      bool   `toml:"wake"`
	WakeDelay string `toml:"wake_delay"`
}

// GetTimeout parses the request timeout, defaulting to 10s.
func (c ServiceConfig) GetTimeout() time.Duration {
	return parseDuration(c.Timeout, 10*time.Second)
}

// GetWakeDelay parses the pause between the wake ping and the first fetch.
func (c ServiceConfig) GetWakeDelay() time.Duration {
	return parseDuration(c.WakeDelay, 0)
}

// SessionConfig tunes the annotation session.
type SessionConfig struct {
	HistorySize int `toml:"history_size"`
}

// ServerConfig holds the reference sentence server settings.
type ServerConfig struct {
	Host      string `toml:"host"`
	Port      int    `toml:"port"`
	DataFile  string `toml:"data_file"`
	DBPath    string `toml:"db_path"`
	RateLimit int    `toml:"rate_limit"` // requests per second, 0 disables
	CORS      string `toml:"cors_allowed_origins"`
}

// Addr returns host:port.
func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// LoggingConfig selects log level, format and file.
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
	File   string `toml:"file"`
}

// NewDefaultConfig returns a Config with sensible defaults.
func NewDefaultConfig() *Config {
	return &Config{
		Service: ServiceConfig{
			BaseURL:   "http://127.0.0.1:5000",
			Timeout:   "10s",
			RateLimit: 5,
			Wake:      true,
			WakeDelay: "1s",
		},
		Session: SessionConfig{
			HistorySize: 20,
		},
		Server: ServerConfig{
			Host:      "127.0.0.1",
			Port:      5000,
			RateLimit: 20,
			CORS:      "*",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// LoadConfig loads configuration from files with environment overrides.
// Missing files are skipped; later files override earlier ones.
func LoadConfig(paths ...string) (*Config, error) {
	cfg := NewDefaultConfig()

	for _, path := range paths {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings that cannot work.
func (c *Config) Validate() error {
	if c.Service.BaseURL == "" {
		return fmt.Errorf("service.base_url is required")
	}
	if c.Service.RateLimit < 0 {
		return fmt.Errorf("service.rate_limit must not be negative")
	}
	if c.Session.HistorySize < 0 {
		return fmt.Errorf("session.history_size must not be negative")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}
	return nil
}

// DefaultPath resolves the config file location:
// 1. TACIT_CONFIG environment variable
// 2. $XDG_CONFIG_HOME/tacit/config.toml
// 3. ~/.config/tacit/config.toml
func DefaultPath() string {
	if p := os.Getenv("TACIT_CONFIG"); p != "" {
		return p
	}
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "tacit", "config.toml")
}

func applyEnvOverrides(cfg *Config) {
	if u := os.Getenv("TACIT_SERVICE_URL"); u != "" {
		cfg.Service.BaseURL = u
	}
	if t := os.Getenv("TACIT_SERVICE_TIMEOUT"); t != "" {
		cfg.Service.Timeout = t
	}
	if w := os.Getenv("TACIT_SERVICE_WAKE"); w != "" {
		if b, err := strconv.ParseBool(w); err == nil {
			cfg.Service.Wake = b
		}
	}
	if n := os.Getenv("TACIT_HISTORY_SIZE"); n != "" {
		if v, err := strconv.Atoi(n); err == nil {
			cfg.Session.HistorySize = v
		}
	}
	if h := os.Getenv("TACIT_HOST"); h != "" {
		cfg.Server.Host = h
	}
	if p := os.Getenv("TACIT_PORT"); p != "" {
		if v, err := strconv.Atoi(p); err == nil {
			cfg.Server.Port = v
		}
	}
	if d := os.Getenv("TACIT_DATA_FILE"); d != "" {
		cfg.Server.DataFile = d
	}
	if d := os.Getenv("TACIT_DB"); d != "" {
		cfg.Server.DBPath = d
	}
	if l := os.Getenv("TACIT_LOG_LEVEL"); l != "" {
		cfg.Logging.Level = l
	}
	if f := os.Getenv("TACIT_LOG_FILE"); f != "" {
		cfg.Logging.File = f
	}
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	if s == "" {
		return fallback
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return fallback
	}
	return d
}
