// Package render turns a laid out document into output artifacts.
//
// Formats:
//   - text: fragments grouped by paragraph, then diagnostics
//   - json: the full [Output] as indented JSON
//   - dot: the region tree as Graphviz DOT source
//   - svg: the DOT graph rendered in-process with go-graphviz
//
// Usage:
//
//	artifacts, err := render.Render(ctx, out, []string{render.FormatText, render.FormatSVG})
package render
