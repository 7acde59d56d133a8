package cache

import (
	"sort"
	"strings"
)

// CompileKeyOpts holds the options that change a compilation's output.
type CompileKeyOpts struct {
	Lang      string   `json:"lang"`
	Primary   string   `json:"primary"`
	Secondary string   `json:"secondary"`
	Formats   []string `json:"formats"`
}

// Keyer builds cache keys.
type Keyer interface {
	// CompileKey returns the key for a compiled document.
	CompileKey(docHash string, opts CompileKeyOpts) string
}

// DefaultKeyer produces unprefixed keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// CompileKey hashes the document hash together with the options.
// Format order does not affect the key.
func (DefaultKeyer) CompileKey(docHash string, opts CompileKeyOpts) string {
	formats := append([]string(nil), opts.Formats...)
	sort.Strings(formats)
	opts.Formats = formats
	return hashKey("compile", docHash, opts)
}

// ScopedKeyer prefixes every key of an inner Keyer, isolating callers
// that share a backend (for example the CLI and the HTTP server sharing
// one Redis instance).
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix. A nil inner keyer means
// the default keyer.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	if prefix != "" && !strings.HasSuffix(prefix, ":") {
		prefix += ":"
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// CompileKey returns the prefixed key.
func (k *ScopedKeyer) CompileKey(docHash string, opts CompileKeyOpts) string {
	return k.prefix + k.inner.CompileKey(docHash, opts)
}
