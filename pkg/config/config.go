// Package config loads settings from the environment.
//
// Command-line flags take precedence; these values only fill in what flags
// leave unset.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds environment settings shared by the CLI and the server.
type Config struct {
	// CacheDir overrides the file cache location.
	CacheDir string        `env:"TYPST_CACHE_DIR"`
	CacheTTL time.Duration `env:"TYPST_CACHE_TTL" envDefault:"24h"`

	// RedisAddr selects the Redis cache when set.
	RedisAddr string `env:"TYPST_REDIS_ADDR"`

	// MongoURI selects the MongoDB history store when set.
	MongoURI string `env:"TYPST_MONGO_URI"`
	MongoDB  string `env:"TYPST_MONGO_DB" envDefault:"typst"`

	Lang string `env:"TYPST_LANG" envDefault:"en"`
	Addr string `env:"TYPST_ADDR" envDefault:":8080"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load parses Config from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if cfg.CacheTTL < 0 {
		return Config{}, fmt.Errorf("TYPST_CACHE_TTL must not be negative: %s", cfg.CacheTTL)
	}
	return cfg, nil
}

// ResolveCacheDir returns CacheDir, or the XDG cache directory
// (~/.cache/typst) when it is empty.
func (c Config) ResolveCacheDir() (string, error) {
	if c.CacheDir != "" {
		return c.CacheDir, nil
	}
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, "typst"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", "typst"), nil
}
