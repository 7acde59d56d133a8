package align

import (
	"github.com/neunenak/typst/pkg/diag"
	"github.com/neunenak/typst/pkg/errors"
	"github.com/neunenak/typst/pkg/geom"
)

// centerState tracks a positional center that does not know its axis yet.
type centerState uint8

const (
	centerSettled centerState = iota
	centerPending
)

// resolver carries the state of one Resolve call across the request
// sequence.
type resolver struct {
	m    geom.Mapping
	sink diag.Sink

	align  geom.LayoutAlign
	had    [2]bool // indexed by geom.GenAxis
	center centerState
}

// Resolve computes the alignment that results from applying reqs on top of
// prev. It never fails: conflicting requests are reported to sink and
// skipped, leaving their axis at the previous value. A nil sink discards
// diagnostics.
func Resolve(prev geom.LayoutAlign, reqs []Request, m geom.Mapping, sink diag.Sink) geom.LayoutAlign {
	if sink == nil {
		sink = diag.Discard
	}
	r := resolver{m: m, sink: sink, align: prev}
	for _, req := range reqs {
		r.step(req)
	}
	return r.finish()
}

func (r *resolver) step(req Request) {
	if req.HasAxis {
		r.explicit(req)
	} else {
		r.bare(req)
	}

	// Once one axis is fixed, a pending center belongs to the other one.
	if r.center == centerPending && r.had[geom.Primary] != r.had[geom.Secondary] {
		open := geom.Primary
		if r.had[geom.Primary] {
			open = geom.Secondary
		}
		r.confirm(open, geom.GenCenter)
		r.center = centerSettled
	}
}

func (r *resolver) explicit(req Request) {
	value, span := req.Value.V, req.Value.Span
	axis := r.m.GenAxis(req.Axis)

	switch {
	case !value.Fits(req.Axis):
		diag.Errorf(r.sink, span, errors.ErrCodeAxisMismatch,
			"invalid alignment `%s` for %s axis", value, req.Axis)
	case r.had[axis]:
		diag.Errorf(r.sink, span, errors.ErrCodeDuplicateAxis,
			"duplicate alignment for %s axis", req.Axis)
	default:
		r.confirm(axis, r.m.GenAlign(value))
	}
}

func (r *resolver) bare(req Request) {
	switch {
	case r.had[geom.Primary] && r.had[geom.Secondary]:
		diag.Errorf(r.sink, req.Value.Span, errors.ErrCodeOverSpecified, "duplicate alignment")
	case r.center == centerPending:
		// Two centers without an axis: center both.
		r.confirm(geom.Primary, geom.GenCenter)
		r.confirm(geom.Secondary, geom.GenCenter)
		r.center = centerSettled
	default:
		r.center = centerPending
	}
}

func (r *resolver) confirm(axis geom.GenAxis, align geom.GenAlign) {
	r.align.Set(axis, align)
	r.had[axis] = true
}

// finish applies a center that never learned its axis to the primary axis.
func (r *resolver) finish() geom.LayoutAlign {
	if r.center == centerPending {
		r.align.Primary = geom.GenCenter
		r.center = centerSettled
	}
	return r.align
}
