// Package pipeline compiles documents: load → layout → render.
//
// The CLI and the HTTP server share this code so that both apply the same
// defaults, cache keys and history records.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, store, logger)
//	result, err := runner.Execute(ctx, src, pipeline.Options{
//	    Lang:    "ar",
//	    Formats: []string{"text", "svg"},
//	})
//	if err != nil {
//	    return err
//	}
//	for _, d := range result.Diagnostics {
//	    fmt.Println(d)
//	}
//	svg := result.Artifacts["svg"]
//
// Single directives can be evaluated without a document:
//
//	res, err := runner.EvaluateAlign(ctx, pipeline.AlignRequest{
//	    Values: []string{"center", "top"},
//	})
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/neunenak/typst/pkg/cache"
	"github.com/neunenak/typst/pkg/errors"
	"github.com/neunenak/typst/pkg/geom"
	"github.com/neunenak/typst/pkg/render"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and server
// =============================================================================

const (
	// DefaultLang is the document language when none is given.
	DefaultLang = "en"

	// DefaultFormat is the output format when none is given.
	DefaultFormat = render.FormatText
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options configures a compilation. It supports JSON for API requests.
type Options struct {
	// Lang is a BCP 47 tag selecting the writing system.
	Lang string `json:"lang,omitempty"`

	// Primary and Secondary override the directions derived from Lang.
	Primary   string `json:"primary,omitempty"`
	Secondary string `json:"secondary,omitempty"`

	Formats []string `json:"formats,omitempty"`

	// Path is the document path, recorded in history. May be empty.
	Path string `json:"path,omitempty"`

	// Refresh bypasses the cache lookup. The result is still stored.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// System is the resolved writing system, set by ValidateAndSetDefaults.
	System geom.LayoutSystem `json:"-"`

	validated bool
}

// Result contains the outputs of a compilation.
type Result struct {
	// DocHash is the SHA-256 of the document source.
	DocHash string `json:"doc_hash"`

	render.Output

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte `json:"artifacts"`

	Stats Stats `json:"stats"`

	// CacheHit reports whether the result came from the cache.
	CacheHit bool `json:"cache_hit"`
}

// Stats contains compilation statistics.
type Stats struct {
	Nodes      int           `json:"nodes"`
	Calls      int           `json:"calls"`
	LoadTime   time.Duration `json:"load_time"`
	LayoutTime time.Duration `json:"layout_time"`
	RenderTime time.Duration `json:"render_time"`
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks the options, applies defaults and resolves
// the writing system. It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Lang == "" {
		o.Lang = DefaultLang
	}
	sys, err := ResolveSystem(o.Lang, o.Primary, o.Secondary)
	if err != nil {
		return err
	}
	o.System = sys

	if len(o.Formats) == 0 {
		o.Formats = []string{DefaultFormat}
	}
	if err := render.ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Path != "" {
		if err := errors.ValidatePath(o.Path); err != nil {
			return err
		}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// KeyOpts returns the cache key options for these options.
func (o *Options) KeyOpts() cache.CompileKeyOpts {
	return cache.CompileKeyOpts{
		Lang:      o.Lang,
		Primary:   o.System.Primary.String(),
		Secondary: o.System.Secondary.String(),
		Formats:   o.Formats,
	}
}

// ResolveSystem derives the writing system from lang and applies explicit
// direction overrides. Empty overrides keep the language's directions.
func ResolveSystem(lang, primary, secondary string) (geom.LayoutSystem, error) {
	if lang == "" {
		lang = DefaultLang
	}
	_, sys, err := geom.ParseLanguage(lang)
	if err != nil {
		return sys, err
	}
	if primary != "" {
		if sys.Primary, err = geom.ParseDir(primary); err != nil {
			return sys, err
		}
	}
	if secondary != "" {
		if sys.Secondary, err = geom.ParseDir(secondary); err != nil {
			return sys, err
		}
	}
	if err := sys.Validate(); err != nil {
		return sys, err
	}
	return sys, nil
}
