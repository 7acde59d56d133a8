// Package pkg provides the libraries behind typst's alignment evaluator.
//
// # Overview
//
// A document is a tree of text, paragraph breaks and function calls. The
// only function the standard library defines is align, which changes where
// content sits within its region. Alignments are written in absolute terms
// (left, right, top, bottom) and resolved against the writing system of
// the document language, so "left" in an English paragraph is the start of
// the line while in Arabic it is the end.
//
// # Architecture
//
// The data flow through a compilation:
//
//	TOML document
//	     ↓
//	[document] (build a [syntax] tree)
//	     ↓
//	[layout] (walk the tree, dispatch calls from a [library] scope)
//	     ↓
//	[align] (resolve arguments collected by [args] against a [geom] system)
//	     ↓
//	[render] (text, JSON, DOT or SVG)
//
// Problems in the document never abort a compilation. They are reported as
// [diag] diagnostics and evaluation continues with a fallback value.
//
// # Main Packages
//
// ## Core
//
// [geom] - Axes, directions, writing systems and the three alignment
// vocabularies: specific (left, top), generic (start, center, end) and the
// resolved per-axis pair.
//
// [syntax] - Tree nodes, argument expressions and source spans.
//
// [args] - Typed extraction of positional and keyword arguments.
//
// [align] - The alignment resolution algorithm.
//
// [layout] - The layouter: state, scope, commands, regions and fragments.
//
// [library] - Built-in functions.
//
// ## Infrastructure
//
// [pipeline] - Load, lay out and render with caching and history. Used by the
// CLI and the HTTP server alike.
//
// [cache] - Compile cache with file, Redis and null backends.
//
// [history] - Compilation records with file, MongoDB and null backends.
//
// [config] - Environment configuration.
//
// [observability] - Hooks for compilation and cache events.
//
// [errors] - Error codes shared by errors and diagnostics.
//
// # Quick Start
//
//	runner := pipeline.NewRunner(nil, nil, nil)
//	res, err := runner.Execute(ctx, src, pipeline.Options{Lang: "ar"})
//	if err != nil {
//	    return err
//	}
//	for _, d := range res.Diagnostics {
//	    fmt.Println(d)
//	}
//
// [geom]: https://pkg.go.dev/github.com/neunenak/typst/pkg/geom
// [syntax]: https://pkg.go.dev/github.com/neunenak/typst/pkg/syntax
// [args]: https://pkg.go.dev/github.com/neunenak/typst/pkg/args
// [align]: https://pkg.go.dev/github.com/neunenak/typst/pkg/align
// [layout]: https://pkg.go.dev/github.com/neunenak/typst/pkg/layout
// [library]: https://pkg.go.dev/github.com/neunenak/typst/pkg/library
// [diag]: https://pkg.go.dev/github.com/neunenak/typst/pkg/diag
// [pipeline]: https://pkg.go.dev/github.com/neunenak/typst/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/neunenak/typst/pkg/cache
// [history]: https://pkg.go.dev/github.com/neunenak/typst/pkg/history
// [config]: https://pkg.go.dev/github.com/neunenak/typst/pkg/config
// [observability]: https://pkg.go.dev/github.com/neunenak/typst/pkg/observability
// [errors]: https://pkg.go.dev/github.com/neunenak/typst/pkg/errors
package pkg
