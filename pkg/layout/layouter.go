package layout

import (
	"context"
	"io"

	"github.com/charmbracelet/log"

	"github.com/neunenak/typst/pkg/args"
	"github.com/neunenak/typst/pkg/diag"
	"github.com/neunenak/typst/pkg/errors"
	"github.com/neunenak/typst/pkg/geom"
	"github.com/neunenak/typst/pkg/observability"
	"github.com/neunenak/typst/pkg/syntax"
)

// Fragment is a run of text positioned by the alignment active when it was
// laid out.
type Fragment struct {
	Text      string           `json:"text"`
	Span      syntax.Span      `json:"span"`
	Align     geom.LayoutAlign `json:"align"`
	Region    int              `json:"region"`
	Paragraph int              `json:"paragraph"`
}

// Region is a nested layout pass opened by a LayoutTree command. Region 0
// is the document itself.
type Region struct {
	ID     int              `json:"id"`
	Parent int              `json:"parent"`
	Origin string           `json:"origin,omitempty"`
	Span   syntax.Span      `json:"span"`
	Align  geom.LayoutAlign `json:"align"`
}

// Event records one executed command.
type Event struct {
	Region  int              `json:"region"`
	Origin  string           `json:"origin"`
	Command string           `json:"command"`
	Align   geom.LayoutAlign `json:"align"`
}

// Layouter lays out a document. It is not safe for concurrent use; create
// one per compilation.
type Layouter struct {
	scope  *Scope
	sink   diag.Sink
	logger *log.Logger

	state     State
	region    int
	paragraph int

	fragments []Fragment
	regions   []Region
	trace     []Event
	calls     int
}

// NewLayouter creates a layouter starting from state. A nil sink discards
// diagnostics and a nil logger discards log output.
func NewLayouter(scope *Scope, state State, sink diag.Sink, logger *log.Logger) *Layouter {
	if sink == nil {
		sink = diag.Discard
	}
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if scope == nil {
		scope = NewScope()
	}
	return &Layouter{
		scope:   scope,
		sink:    sink,
		logger:  logger,
		state:   state,
		regions: []Region{{ID: 0, Parent: -1, Align: state.Align}},
	}
}

// Layout lays out tree. It returns an error only when ctx is done or a
// function fails hard; diagnostics go to the sink.
func (l *Layouter) Layout(ctx context.Context, tree syntax.Tree) error {
	return l.layoutTree(ctx, tree)
}

// State returns the current layout state.
func (l *Layouter) State() State { return l.state }

// Fragments returns the laid out text in document order.
func (l *Layouter) Fragments() []Fragment { return l.fragments }

// Regions returns every layout region, the document first.
func (l *Layouter) Regions() []Region { return l.regions }

// Trace returns the executed commands in order.
func (l *Layouter) Trace() []Event { return l.trace }

// Calls returns how many function calls were evaluated.
func (l *Layouter) Calls() int { return l.calls }

func (l *Layouter) layoutTree(ctx context.Context, tree syntax.Tree) error {
	for _, node := range tree {
		if err := ctx.Err(); err != nil {
			return err
		}
		switch n := node.(type) {
		case syntax.Text:
			l.fragments = append(l.fragments, Fragment{
				Text:      n.Value,
				Span:      n.At,
				Align:     l.state.Align,
				Region:    l.region,
				Paragraph: l.paragraph,
			})
		case syntax.Parbreak:
			l.paragraph++
		case syntax.Call:
			if err := l.call(ctx, n); err != nil {
				return err
			}
		}
	}
	return nil
}

func (l *Layouter) call(ctx context.Context, n syntax.Call) error {
	f, ok := l.scope.Get(n.Name.V)
	if !ok {
		diag.Errorf(l.sink, n.Name.Span, errors.ErrCodeUnknownFunction, "unknown function `%s`", n.Name.V)
		return nil
	}
	l.calls++

	lctx := &Context{State: l.state, Sink: l.sink}
	cmds, err := f(ctx, args.New(n.At, n.Args), lctx)
	if err != nil {
		return err
	}
	observability.Compile().OnDirective(ctx, n.Name.V, len(cmds))
	l.logger.Debug("evaluated call", "func", n.Name.V, "at", n.At, "commands", cmds)

	return l.Execute(ctx, n.Name.V, cmds)
}

// Execute runs cmds in order. Once a command fails, remaining commands are
// skipped except RestoreAlignment, which always runs so that the state seen
// after Execute never holds an alignment a scope meant to undo.
func (l *Layouter) Execute(ctx context.Context, origin string, cmds Commands) error {
	var err error
	for _, c := range cmds {
		if err != nil {
			if r, ok := c.(RestoreAlignment); ok {
				l.setAlign(origin, r, r.Align)
			}
			continue
		}
		switch c := c.(type) {
		case SetAlignment:
			l.setAlign(origin, c, c.Align)
		case RestoreAlignment:
			l.setAlign(origin, c, c.Align)
		case LayoutTree:
			l.record(origin, c)
			err = l.nested(ctx, origin, c)
		}
	}
	return err
}

// nested lays out a tree in a new region. The alignment active on entry is
// reinstated on every exit path.
func (l *Layouter) nested(ctx context.Context, origin string, c LayoutTree) error {
	saved, parent := l.state.Align, l.region
	id := len(l.regions)
	l.regions = append(l.regions, Region{ID: id, Parent: parent, Origin: origin, Span: c.At, Align: saved})
	l.region = id
	defer func() {
		l.region = parent
		l.state.Align = saved
	}()
	return l.layoutTree(ctx, c.Tree)
}

func (l *Layouter) setAlign(origin string, c Command, align geom.LayoutAlign) {
	l.state.Align = align
	l.record(origin, c)
}

func (l *Layouter) record(origin string, c Command) {
	l.trace = append(l.trace, Event{
		Region:  l.region,
		Origin:  origin,
		Command: c.Name(),
		Align:   l.state.Align,
	})
}
