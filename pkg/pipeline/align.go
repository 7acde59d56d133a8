package pipeline

import (
	"context"
	"fmt"

	"github.com/neunenak/typst/pkg/args"
	"github.com/neunenak/typst/pkg/diag"
	"github.com/neunenak/typst/pkg/errors"
	"github.com/neunenak/typst/pkg/geom"
	"github.com/neunenak/typst/pkg/layout"
	"github.com/neunenak/typst/pkg/library"
	"github.com/neunenak/typst/pkg/syntax"
)

// AlignRequest describes a single align call evaluated outside a document.
type AlignRequest struct {
	// Values are the positional arguments. Strings that are not
	// identifiers are passed as string literals.
	Values     []string `json:"values,omitempty"`
	Horizontal string   `json:"horizontal,omitempty"`
	Vertical   string   `json:"vertical,omitempty"`

	Lang      string `json:"lang,omitempty"`
	Primary   string `json:"primary,omitempty"`
	Secondary string `json:"secondary,omitempty"`

	// Previous is the alignment in effect before the call, as
	// "primary,secondary". Empty means start,start.
	Previous string `json:"previous,omitempty"`

	// Body attaches an empty body so the call is scoped.
	Body bool `json:"body,omitempty"`
}

// AlignResult is the outcome of EvaluateAlign.
type AlignResult struct {
	System      geom.LayoutSystem `json:"system"`
	Previous    geom.LayoutAlign  `json:"previous"`
	Resolved    geom.LayoutAlign  `json:"resolved"`
	Commands    layout.Commands   `json:"commands"`
	Diagnostics []diag.Diagnostic `json:"diagnostics"`
}

// EvaluateAlign runs the align function on req. Argument problems become
// diagnostics; an error means the request itself was unusable.
func (r *Runner) EvaluateAlign(ctx context.Context, req AlignRequest) (*AlignResult, error) {
	sys, err := ResolveSystem(req.Lang, req.Primary, req.Secondary)
	if err != nil {
		return nil, err
	}
	prev := layout.DefaultState.Align
	if req.Previous != "" {
		if prev, err = geom.ParseLayoutAlign(req.Previous); err != nil {
			return nil, err
		}
	}
	if len(req.Values) > 8 {
		return nil, errors.New(errors.ErrCodeInvalidArgument, "too many values: %d", len(req.Values))
	}

	f, ok := library.Std().Get("align")
	if !ok {
		return nil, errors.New(errors.ErrCodeInternal, "align is not defined")
	}

	feedback := &diag.Feedback{}
	lctx := &layout.Context{State: layout.State{Align: prev, Sys: sys}, Sink: feedback}
	cmds, err := f(ctx, args.New(syntax.SpanAt(1, 0), requestArgs(req)), lctx)
	if err != nil {
		return nil, fmt.Errorf("evaluate align: %w", err)
	}

	resolved := prev
	if len(cmds) > 0 {
		if set, ok := cmds[0].(layout.SetAlignment); ok {
			resolved = set.Align
		}
	}
	r.Logger.Debug("evaluated align", "request", req.Values, "resolved", resolved, "commands", cmds)

	return &AlignResult{
		System:      sys,
		Previous:    prev,
		Resolved:    resolved,
		Commands:    cmds,
		Diagnostics: feedback.Sorted(),
	}, nil
}

// requestArgs builds the argument list with one column per argument, in
// the order positional, horizontal, vertical, body.
func requestArgs(req AlignRequest) []syntax.Arg {
	var list []syntax.Arg
	col := 0
	next := func() syntax.Span {
		col++
		return syntax.SpanAt(1, col)
	}

	for _, v := range req.Values {
		list = append(list, syntax.Arg{Value: syntax.NewSpanned(expr(v), next())})
	}
	for _, kv := range [][2]string{{"horizontal", req.Horizontal}, {"vertical", req.Vertical}} {
		if kv[1] == "" {
			continue
		}
		at := next()
		key := syntax.NewSpanned(kv[0], at)
		list = append(list, syntax.Arg{Key: &key, Value: syntax.NewSpanned(expr(kv[1]), at)})
	}
	if req.Body {
		list = append(list, syntax.Arg{Value: syntax.NewSpanned[syntax.Expr](syntax.TreeExpr{}, next())})
	}
	return list
}

func expr(v string) syntax.Expr {
	if errors.IsIdent(v) {
		return syntax.Ident(v)
	}
	return syntax.Str(v)
}
