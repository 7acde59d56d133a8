package library

import (
	"context"
	"reflect"
	"testing"

	"github.com/neunenak/typst/pkg/args"
	"github.com/neunenak/typst/pkg/diag"
	"github.com/neunenak/typst/pkg/errors"
	"github.com/neunenak/typst/pkg/geom"
	"github.com/neunenak/typst/pkg/layout"
	"github.com/neunenak/typst/pkg/syntax"
)

func ident(col int, name string) syntax.Arg {
	return syntax.Arg{Value: syntax.NewSpanned[syntax.Expr](syntax.Ident(name), syntax.SpanAt(1, col))}
}

func kw(col int, key, name string) syntax.Arg {
	k := syntax.NewSpanned(key, syntax.SpanAt(1, col))
	return syntax.Arg{Key: &k, Value: syntax.NewSpanned[syntax.Expr](syntax.Ident(name), syntax.SpanAt(1, col))}
}

func body(col int, nodes ...syntax.Node) syntax.Arg {
	return syntax.Arg{Value: syntax.NewSpanned[syntax.Expr](syntax.TreeExpr(nodes), syntax.SpanAt(1, col))}
}

func eval(t *testing.T, state layout.State, list ...syntax.Arg) (layout.Commands, *diag.Feedback) {
	t.Helper()
	fb := &diag.Feedback{}
	lctx := &layout.Context{State: state, Sink: fb}
	return Align(args.New(syntax.SpanAt(1, 0), list), lctx), fb
}

func TestAlignNoArgumentsNoBody(t *testing.T) {
	prev := layout.State{Align: geom.NewLayoutAlign(geom.GenEnd, geom.GenCenter), Sys: geom.DefaultSystem}

	cmds, fb := eval(t, prev)
	want := layout.Commands{layout.SetAlignment{Align: prev.Align}}
	if !reflect.DeepEqual(cmds, want) {
		t.Errorf("commands = %v, want %v", cmds, want)
	}
	if fb.Len() != 0 {
		t.Errorf("unexpected diagnostics: %v", fb.All())
	}
}

func TestAlignNoArgumentsWithBody(t *testing.T) {
	prev := layout.DefaultState
	text := syntax.Text{Value: "inside", At: syntax.SpanAt(2, 0)}

	cmds, _ := eval(t, prev, body(1, text))
	if len(cmds) != 3 {
		t.Fatalf("got %d commands, want 3: %v", len(cmds), cmds)
	}
	if set, ok := cmds[0].(layout.SetAlignment); !ok || set.Align != prev.Align {
		t.Errorf("cmds[0] = %v, want set-alignment(%s)", cmds[0], prev.Align)
	}
	if lt, ok := cmds[1].(layout.LayoutTree); !ok || len(lt.Tree) != 1 || lt.At != syntax.SpanAt(1, 1) {
		t.Errorf("cmds[1] = %v, want the body", cmds[1])
	}
	if restore, ok := cmds[2].(layout.RestoreAlignment); !ok || restore.Align != prev.Align {
		t.Errorf("cmds[2] = %v, want restore-alignment(%s)", cmds[2], prev.Align)
	}
}

func TestAlignResolution(t *testing.T) {
	endEnd := layout.State{Align: geom.NewLayoutAlign(geom.GenEnd, geom.GenEnd), Sys: geom.DefaultSystem}
	rtl := layout.State{Align: geom.NewLayoutAlign(geom.GenStart, geom.GenStart), Sys: geom.LayoutSystem{Primary: geom.RTL, Secondary: geom.TTB}}

	tests := []struct {
		name  string
		state layout.State
		args  []syntax.Arg
		want  geom.LayoutAlign
		diags []errors.Code
	}{
		{
			name:  "single center",
			state: endEnd,
			args:  []syntax.Arg{ident(1, "center")},
			want:  geom.NewLayoutAlign(geom.GenCenter, geom.GenEnd),
		},
		{
			name:  "center center",
			state: endEnd,
			args:  []syntax.Arg{ident(1, "center"), ident(2, "center")},
			want:  geom.NewLayoutAlign(geom.GenCenter, geom.GenCenter),
		},
		{
			name:  "center with vertical top",
			state: endEnd,
			args:  []syntax.Arg{ident(1, "center"), kw(2, "vertical", "top")},
			want:  geom.NewLayoutAlign(geom.GenCenter, geom.GenStart),
		},
		{
			name:  "keyword before positional in source",
			state: endEnd,
			args:  []syntax.Arg{kw(1, "vertical", "top"), ident(2, "center")},
			want:  geom.NewLayoutAlign(geom.GenCenter, geom.GenStart),
		},
		{
			name:  "left and horizontal right",
			state: endEnd,
			args:  []syntax.Arg{ident(1, "left"), kw(2, "horizontal", "right")},
			want:  geom.NewLayoutAlign(geom.GenStart, geom.GenEnd),
			diags: []errors.Code{errors.ErrCodeDuplicateAxis},
		},
		{
			name:  "left and horizontal right in rtl",
			state: rtl,
			args:  []syntax.Arg{ident(1, "left"), kw(2, "horizontal", "right")},
			want:  geom.NewLayoutAlign(geom.GenEnd, geom.GenStart),
			diags: []errors.Code{errors.ErrCodeDuplicateAxis},
		},
		{
			name:  "vertical left",
			state: endEnd,
			args:  []syntax.Arg{kw(1, "vertical", "left")},
			want:  endEnd.Align,
			diags: []errors.Code{errors.ErrCodeAxisMismatch},
		},
		{
			name:  "third positional is unexpected",
			state: endEnd,
			args:  []syntax.Arg{ident(1, "left"), ident(2, "top"), ident(3, "center")},
			want:  geom.NewLayoutAlign(geom.GenStart, geom.GenStart),
			diags: []errors.Code{errors.ErrCodeArgUnexpected},
		},
		{
			name:  "unknown keyword",
			state: endEnd,
			args:  []syntax.Arg{kw(1, "diagonal", "left")},
			want:  endEnd.Align,
			diags: []errors.Code{errors.ErrCodeArgUnexpected},
		},
		{
			name:  "not an alignment",
			state: endEnd,
			args:  []syntax.Arg{ident(1, "middle"), ident(2, "bottom")},
			want:  geom.NewLayoutAlign(geom.GenEnd, geom.GenEnd),
			diags: []errors.Code{errors.ErrCodeArgType},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmds, fb := eval(t, tt.state, tt.args...)
			if len(cmds) != 1 {
				t.Fatalf("got %d commands, want 1", len(cmds))
			}
			set, ok := cmds[0].(layout.SetAlignment)
			if !ok {
				t.Fatalf("cmds[0] = %T, want SetAlignment", cmds[0])
			}
			if set.Align != tt.want {
				t.Errorf("align = %v, want %v", set.Align, tt.want)
			}

			var got []errors.Code
			for _, d := range fb.All() {
				got = append(got, d.Code)
			}
			if !reflect.DeepEqual(got, tt.diags) {
				t.Errorf("diagnostics = %v, want %v", got, tt.diags)
			}
		})
	}
}

func TestAlignDoesNotMutateContext(t *testing.T) {
	state := layout.DefaultState
	fb := &diag.Feedback{}
	lctx := &layout.Context{State: state, Sink: fb}

	Align(args.New(syntax.Span{}, []syntax.Arg{ident(1, "center"), ident(2, "center")}), lctx)
	if lctx.State != state {
		t.Errorf("context state changed to %v", lctx.State)
	}
}

func TestAlignIdempotent(t *testing.T) {
	list := []syntax.Arg{ident(1, "right"), kw(2, "vertical", "center")}
	first, _ := eval(t, layout.DefaultState, list...)
	second, _ := eval(t, layout.DefaultState, list...)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("results differ: %v vs %v", first, second)
	}
}

func TestStdScope(t *testing.T) {
	s := Std()
	if _, ok := s.Get("align"); !ok {
		t.Fatal("std scope must define align")
	}
	if names := s.Names(); !reflect.DeepEqual(names, []string{"align"}) {
		t.Errorf("Names() = %v", names)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	f, _ := s.Get("align")
	if _, err := f(ctx, args.New(syntax.Span{}, nil), &layout.Context{State: layout.DefaultState, Sink: diag.Discard}); err == nil {
		t.Error("cancelled context should abort evaluation")
	}
}
