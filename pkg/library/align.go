package library

import (
	"github.com/neunenak/typst/pkg/align"
	"github.com/neunenak/typst/pkg/args"
	"github.com/neunenak/typst/pkg/geom"
	"github.com/neunenak/typst/pkg/layout"
	"github.com/neunenak/typst/pkg/syntax"
)

// Align evaluates the align directive.
//
// Positional arguments: at most two of left, right, top, bottom and center.
// A positional center is applied to whichever axis the other arguments
// leave open, defaulting to the axis text flows along.
//
// Keyword arguments: horizontal (left, right or center) and vertical (top,
// bottom or center).
//
// With a body the alignment holds for the body only:
// set → layout body → restore. Without one it stays in effect for the rest
// of the enclosing scope.
func Align(a *args.Args, lctx *layout.Context) layout.Commands {
	body, hasBody := a.FindTree()
	first := opt(a.TakeAlign(lctx.Sink, args.Index(0)))
	second := opt(a.TakeAlign(lctx.Sink, args.Index(1)))
	hor := opt(a.TakeAlign(lctx.Sink, args.Name("horizontal")))
	ver := opt(a.TakeAlign(lctx.Sink, args.Name("vertical")))
	a.Done(lctx.Sink)

	prev := lctx.State.Align
	reqs := align.Collect(first, second, hor, ver)
	next := align.Resolve(prev, reqs, lctx.State.Sys, lctx.Sink)

	if !hasBody {
		return layout.Commands{layout.SetAlignment{Align: next}}
	}
	return layout.Commands{
		layout.SetAlignment{Align: next},
		layout.LayoutTree{Tree: body.V, At: body.Span},
		layout.RestoreAlignment{Align: prev},
	}
}

func opt(v syntax.Spanned[geom.SpecAlign], ok bool) *syntax.Spanned[geom.SpecAlign] {
	if !ok {
		return nil
	}
	return &v
}
