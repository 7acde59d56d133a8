package layout

import (
	"context"
	"sort"

	"github.com/neunenak/typst/pkg/args"
	"github.com/neunenak/typst/pkg/diag"
	"github.com/neunenak/typst/pkg/errors"
	"github.com/neunenak/typst/pkg/geom"
)

// State is the ambient layout state.
type State struct {
	Align geom.LayoutAlign  `json:"align"`
	Sys   geom.LayoutSystem `json:"sys"`
}

// DefaultState is left-to-right text aligned at the start of both axes.
var DefaultState = State{
	Align: geom.NewLayoutAlign(geom.GenStart, geom.GenStart),
	Sys:   geom.DefaultSystem,
}

// Context is what a function sees while it is evaluated: a snapshot of the
// state and the diagnostic sink.
type Context struct {
	State State
	Sink  diag.Sink
}

// Func evaluates a call. It consumes the arguments it understands and
// returns the commands to execute. Problems are reported to lctx.Sink;
// a returned error aborts the compilation and is reserved for failures
// such as cancellation.
type Func func(ctx context.Context, a *args.Args, lctx *Context) (Commands, error)

// Scope maps function names to implementations.
type Scope struct {
	funcs map[string]Func
}

// NewScope returns an empty scope.
func NewScope() *Scope {
	return &Scope{funcs: make(map[string]Func)}
}

// Define registers f under name, replacing an earlier definition.
func (s *Scope) Define(name string, f Func) error {
	if err := errors.ValidateName(name); err != nil {
		return err
	}
	s.funcs[name] = f
	return nil
}

// Get looks up a function.
func (s *Scope) Get(name string) (Func, bool) {
	f, ok := s.funcs[name]
	return f, ok
}

// Names returns the defined function names in sorted order.
func (s *Scope) Names() []string {
	names := make([]string, 0, len(s.funcs))
	for name := range s.funcs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
