// Package cli implements the typst command-line interface.
//
// # Commands
//
//   - compile: lay out TOML documents and write text, JSON, DOT or SVG
//   - align: evaluate a single align call and show how it resolves
//   - serve: run the HTTP API
//   - cache: manage the compile cache
//   - history: list recent compilations
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. The logger
// is attached to the command context and passed to the pipeline.
package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"

	"github.com/neunenak/typst/pkg/cache"
	"github.com/neunenak/typst/pkg/config"
	"github.com/neunenak/typst/pkg/history"
	"github.com/neunenak/typst/pkg/pipeline"
)

// appName is the application name used for display.
const appName = "typst"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config config.Config
}

// New creates a CLI writing logs to w. Environment configuration is loaded
// when the root command runs.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner backed by the configured cache and
// history store. On a shared Redis cache, keys are prefixed with scope so
// that the CLI and the server never serve each other's entries.
func (c *CLI) newRunner(ctx context.Context, noCache bool, scope string) (*pipeline.Runner, error) {
	ch, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	store, err := c.newStore(ctx)
	if err != nil {
		ch.Close()
		return nil, err
	}
	r := pipeline.NewRunner(ch, store, c.Logger)
	if c.Config.CacheTTL > 0 {
		r.TTL = c.Config.CacheTTL
	}
	if c.Config.RedisAddr != "" && !noCache {
		r.Keyer = cache.NewScopedKeyer(nil, scope)
	}
	return r, nil
}

// newCache selects Redis when TYPST_REDIS_ADDR is set and the file cache
// otherwise.
func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	if c.Config.RedisAddr != "" {
		rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{Addr: c.Config.RedisAddr})
		if err != nil {
			return nil, err
		}
		c.Logger.Debug("using redis cache", "addr", c.Config.RedisAddr)
		return rc, nil
	}
	dir, err := c.Config.ResolveCacheDir()
	if err != nil {
		c.Logger.Warn("no cache directory, caching disabled", "err", err)
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// newStore selects MongoDB when TYPST_MONGO_URI is set and the file store
// otherwise.
func (c *CLI) newStore(ctx context.Context) (history.Store, error) {
	if c.Config.MongoURI != "" {
		s, err := history.NewMongoStore(ctx, c.Config.MongoURI, c.Config.MongoDB)
		if err != nil {
			return nil, err
		}
		c.Logger.Debug("using mongo history", "db", c.Config.MongoDB)
		return s, nil
	}
	s, err := history.NewFileStore("")
	if err != nil {
		c.Logger.Warn("no history directory, history disabled", "err", err)
		return history.NullStore{}, nil
	}
	return s, nil
}
