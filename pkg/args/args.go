// Package args binds call arguments to typed values.
//
// An [Args] value holds the arguments of one call keyed by position or
// name. Functions take out the arguments they understand and finally call
// [Args.Done], which reports everything left over. Type mismatches and
// leftovers are reported as diagnostics; binding itself never fails.
package args

import (
	"fmt"

	"github.com/neunenak/typst/pkg/diag"
	"github.com/neunenak/typst/pkg/errors"
	"github.com/neunenak/typst/pkg/geom"
	"github.com/neunenak/typst/pkg/syntax"
)

// Key addresses an argument by position or by name.
type Key struct {
	index int
	name  string
}

// Index addresses the i-th positional argument (0-based, counted over all
// positional arguments of the call).
func Index(i int) Key { return Key{index: i} }

// Name addresses a named argument.
func Name(name string) Key { return Key{index: -1, name: name} }

func (k Key) String() string {
	if k.name != "" {
		return k.name
	}
	return fmt.Sprintf("#%d", k.index)
}

type entry struct {
	key Key
	arg syntax.Arg
}

// Args is the mutable set of arguments of a single call.
type Args struct {
	span    syntax.Span
	entries []entry
}

// New keys the arguments of a call. Positional arguments are numbered in
// order of appearance.
func New(span syntax.Span, list []syntax.Arg) *Args {
	a := &Args{span: span, entries: make([]entry, 0, len(list))}
	pos := 0
	for _, arg := range list {
		key := Index(pos)
		if arg.IsNamed() {
			key = Name(arg.Key.V)
		} else {
			pos++
		}
		a.entries = append(a.entries, entry{key: key, arg: arg})
	}
	return a
}

// Span returns the span of the whole call.
func (a *Args) Span() syntax.Span { return a.span }

// Len returns the number of arguments not yet taken.
func (a *Args) Len() int { return len(a.entries) }

// Take removes and returns the argument addressed by key.
func (a *Args) Take(key Key) (syntax.Spanned[syntax.Expr], bool) {
	for i, e := range a.entries {
		if e.key == key {
			a.entries = append(a.entries[:i], a.entries[i+1:]...)
			return e.arg.Value, true
		}
	}
	return syntax.Spanned[syntax.Expr]{}, false
}

// FindTree removes and returns the first positional tree argument.
func (a *Args) FindTree() (syntax.Spanned[syntax.Tree], bool) {
	for i, e := range a.entries {
		if e.arg.IsNamed() {
			continue
		}
		if tree, ok := e.arg.Value.V.(syntax.TreeExpr); ok {
			a.entries = append(a.entries[:i], a.entries[i+1:]...)
			return syntax.NewSpanned(syntax.Tree(tree), e.arg.Value.Span), true
		}
	}
	return syntax.Spanned[syntax.Tree]{}, false
}

// Cast converts an expression to T and reports false when it does not fit.
type Cast[T any] func(syntax.Expr) (T, bool)

// Get takes the argument addressed by key and converts it. A present but
// unconvertible argument is reported through sink and treated as absent.
func Get[T any](a *Args, sink diag.Sink, key Key, expected string, cast Cast[T]) (syntax.Spanned[T], bool) {
	v, ok := a.Take(key)
	if !ok {
		return syntax.Spanned[T]{}, false
	}
	out, ok := cast(v.V)
	if !ok {
		diag.Errorf(sink, v.Span, errors.ErrCodeArgType, "expected %s, found %s", expected, describe(v.V))
		return syntax.Spanned[T]{}, false
	}
	return syntax.NewSpanned(out, v.Span), true
}

// TakeAlign takes a requested alignment (left, right, top, bottom, center).
func (a *Args) TakeAlign(sink diag.Sink, key Key) (syntax.Spanned[geom.SpecAlign], bool) {
	return Get(a, sink, key, "alignment", castSpecAlign)
}

// TakeBool takes a boolean.
func (a *Args) TakeBool(sink diag.Sink, key Key) (syntax.Spanned[bool], bool) {
	return Get(a, sink, key, "bool", func(e syntax.Expr) (bool, bool) {
		b, ok := e.(syntax.Bool)
		return bool(b), ok
	})
}

// Done reports every argument that was not taken.
func (a *Args) Done(sink diag.Sink) {
	for _, e := range a.entries {
		diag.Errorf(sink, e.arg.Value.Span, errors.ErrCodeArgUnexpected, "unexpected argument")
	}
	a.entries = nil
}

func castSpecAlign(e syntax.Expr) (geom.SpecAlign, bool) {
	ident, ok := e.(syntax.Ident)
	if !ok {
		return 0, false
	}
	align, err := geom.ParseSpecAlign(string(ident))
	return align, err == nil
}

func describe(e syntax.Expr) string {
	if ident, ok := e.(syntax.Ident); ok {
		return fmt.Sprintf("identifier `%s`", ident)
	}
	return e.Kind()
}
