package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/neunenak/typst/pkg/cache"
	"github.com/neunenak/typst/pkg/diag"
	"github.com/neunenak/typst/pkg/document"
	"github.com/neunenak/typst/pkg/history"
	"github.com/neunenak/typst/pkg/layout"
	"github.com/neunenak/typst/pkg/library"
	"github.com/neunenak/typst/pkg/observability"
	"github.com/neunenak/typst/pkg/render"
)

// keyType labels compile entries in cache hooks.
const keyType = "compile"

// Runner executes compilations with caching and history.
//
// The Runner holds no per-compilation state; multiple goroutines can use
// the same Runner concurrently.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Store  history.Store
	Logger *log.Logger

	// TTL is how long compiled results stay cached.
	TTL time.Duration
}

// NewRunner creates a runner. A nil cache disables caching, a nil store
// disables history and a nil logger uses the default logger.
func NewRunner(c cache.Cache, store history.Store, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if store == nil {
		store = history.NullStore{}
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  cache.NewDefaultKeyer(),
		Store:  store,
		Logger: logger,
		TTL:    cache.DefaultTTL,
	}
}

// cached is the cache entry for a compilation.
type cached struct {
	Output    render.Output     `json:"output"`
	Artifacts map[string][]byte `json:"artifacts"`
	Stats     Stats             `json:"stats"`
}

// Execute compiles src. Diagnostics never fail a compilation; an error is
// returned for invalid options, malformed documents, render failures and
// cancellation.
func (r *Runner) Execute(ctx context.Context, src []byte, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	hooks := observability.Compile()
	start := time.Now()
	hooks.OnCompileStart(ctx, opts.Path)

	result, err := r.execute(ctx, src, opts)

	diagnostics := 0
	if result != nil {
		diagnostics = len(result.Diagnostics)
	}
	hooks.OnCompileComplete(ctx, opts.Path, diagnostics, time.Since(start), err)
	if err != nil {
		return nil, err
	}

	rec := history.NewRecord(result.DocHash, opts.Path, opts.Lang, result.Final, result.Diagnostics)
	if err := r.Store.Append(ctx, rec); err != nil {
		r.Logger.Warn("record history", "err", err)
	}
	return result, nil
}

func (r *Runner) execute(ctx context.Context, src []byte, opts Options) (*Result, error) {
	docHash := cache.Hash(src)
	key := r.Keyer.CompileKey(docHash, opts.KeyOpts())

	if !opts.Refresh {
		if res, ok := r.lookup(ctx, key); ok {
			res.DocHash = docHash
			opts.Logger.Debug("cache hit", "doc", docHash[:12])
			return res, nil
		}
	}

	result := &Result{DocHash: docHash}

	loadStart := time.Now()
	tree, err := document.LoadBytes(src)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.Nodes = tree.Count()

	layoutStart := time.Now()
	feedback := &diag.Feedback{}
	state := layout.State{Align: layout.DefaultState.Align, Sys: opts.System}
	l := layout.NewLayouter(library.Std(), state, feedback, opts.Logger)
	if err := l.Layout(ctx, tree); err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Stats.Calls = l.Calls()
	result.Output = render.Output{
		System:      opts.System,
		Final:       l.State().Align,
		Fragments:   l.Fragments(),
		Regions:     l.Regions(),
		Trace:       l.Trace(),
		Diagnostics: feedback.Sorted(),
	}

	opts.Logger.Info("laid out document",
		"nodes", result.Stats.Nodes,
		"calls", result.Stats.Calls,
		"diagnostics", len(result.Diagnostics),
		"duration", result.Stats.LayoutTime)

	renderStart := time.Now()
	artifacts, err := render.Render(ctx, result.Output, opts.Formats)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)

	opts.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	r.store(ctx, key, result)
	return result, nil
}

// lookup returns a cached result. Undecodable entries count as misses.
func (r *Runner) lookup(ctx context.Context, key string) (*Result, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache get", "err", err)
	}
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, keyType)
		return nil, false
	}

	var entry cached
	if err := json.Unmarshal(data, &entry); err != nil {
		observability.Cache().OnCacheMiss(ctx, keyType)
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, keyType)
	return &Result{
		Output:    entry.Output,
		Artifacts: entry.Artifacts,
		Stats:     entry.Stats,
		CacheHit:  true,
	}, true
}

func (r *Runner) store(ctx context.Context, key string, res *Result) {
	data, err := json.Marshal(cached{Output: res.Output, Artifacts: res.Artifacts, Stats: res.Stats})
	if err != nil {
		r.Logger.Warn("encode cache entry", "err", err)
		return
	}
	if err := r.Cache.Set(ctx, key, data, r.TTL); err != nil {
		r.Logger.Warn("cache set", "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}

// Recent returns the most recent history records.
func (r *Runner) Recent(ctx context.Context, limit int) ([]history.Record, error) {
	return r.Store.Recent(ctx, limit)
}

// Close releases the cache and the history store.
func (r *Runner) Close() error {
	var firstErr error
	if r.Cache != nil {
		firstErr = r.Cache.Close()
	}
	if r.Store != nil {
		if err := r.Store.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
