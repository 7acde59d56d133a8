package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"TYPST_CACHE_DIR", "TYPST_CACHE_TTL", "TYPST_REDIS_ADDR", "TYPST_MONGO_URI", "TYPST_MONGO_DB", "TYPST_LANG", "TYPST_ADDR"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.CacheTTL != 24*time.Hour {
		t.Errorf("CacheTTL = %s, want 24h", cfg.CacheTTL)
	}
	if cfg.MongoDB != "typst" || cfg.Lang != "en" || cfg.Addr != ":8080" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.RedisAddr != "" || cfg.MongoURI != "" {
		t.Errorf("backends should be unset by default: %+v", cfg)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("TYPST_CACHE_TTL", "90m")
	t.Setenv("TYPST_REDIS_ADDR", "localhost:6379")
	t.Setenv("TYPST_LANG", "ar")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.CacheTTL != 90*time.Minute || cfg.RedisAddr != "localhost:6379" || cfg.Lang != "ar" {
		t.Errorf("overrides not applied: %+v", cfg)
	}
}

func TestLoadErrors(t *testing.T) {
	t.Setenv("TYPST_CACHE_TTL", "soon")
	_, err := Load()
	if err == nil || !strings.Contains(err.Error(), "parse env:") {
		t.Errorf("expected parse env error, got %v", err)
	}

	t.Setenv("TYPST_CACHE_TTL", "-1h")
	if _, err := Load(); err == nil {
		t.Error("negative ttl should be rejected")
	}
}

func TestResolveCacheDir(t *testing.T) {
	dir := t.TempDir()

	got, err := Config{CacheDir: dir}.ResolveCacheDir()
	if err != nil || got != dir {
		t.Errorf("explicit dir: got %q, %v", got, err)
	}

	t.Setenv("XDG_CACHE_HOME", dir)
	got, err = Config{}.ResolveCacheDir()
	if err != nil || got != filepath.Join(dir, "typst") {
		t.Errorf("XDG dir: got %q, %v", got, err)
	}
}
