// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers register hooks at startup
// to receive events about compilations, directive evaluation and cache
// operations.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetCompileHooks(&myCompileHooks{})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Compile().OnCompileStart(ctx, path)
//	// ... lay out the document ...
//	observability.Compile().OnCompileComplete(ctx, path, diagnostics, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Compile Hooks
// =============================================================================

// CompileHooks receives events from the compile pipeline.
type CompileHooks interface {
	// OnCompileStart records the start of a document compilation.
	OnCompileStart(ctx context.Context, path string)

	// OnCompileComplete records the end of a compilation with the number of
	// diagnostics it produced.
	OnCompileComplete(ctx context.Context, path string, diagnostics int, duration time.Duration, err error)

	// OnDirective records the evaluation of one function call.
	OnDirective(ctx context.Context, name string, commands int)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopCompileHooks is a no-op implementation of CompileHooks.
type NoopCompileHooks struct{}

func (NoopCompileHooks) OnCompileStart(context.Context, string) {}
func (NoopCompileHooks) OnCompileComplete(context.Context, string, int, time.Duration, error) {
}
func (NoopCompileHooks) OnDirective(context.Context, string, int) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	compileHooks CompileHooks = NoopCompileHooks{}
	cacheHooks   CacheHooks   = NoopCacheHooks{}
	hooksMu      sync.RWMutex
)

// SetCompileHooks registers custom compile hooks.
// This should be called once at application startup before any compilation.
func SetCompileHooks(h CompileHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		compileHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
// This should be called once at application startup before any cache operations.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// Compile returns the registered compile hooks.
func Compile() CompileHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return compileHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	compileHooks = NoopCompileHooks{}
	cacheHooks = NoopCacheHooks{}
}
