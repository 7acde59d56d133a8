// Package library holds the functions callable from documents.
package library

import (
	"context"

	"github.com/neunenak/typst/pkg/args"
	"github.com/neunenak/typst/pkg/layout"
)

// Std returns a scope with the standard library defined.
func Std() *layout.Scope {
	s := layout.NewScope()
	// Names are constant and valid.
	_ = s.Define("align", wrap(Align))
	return s
}

// wrap adapts an evaluator that cannot fail hard to a layout.Func.
func wrap(f func(*args.Args, *layout.Context) layout.Commands) layout.Func {
	return func(ctx context.Context, a *args.Args, lctx *layout.Context) (layout.Commands, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return f(a, lctx), nil
	}
}
