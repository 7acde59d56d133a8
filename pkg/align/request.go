package align

import (
	"fmt"

	"github.com/neunenak/typst/pkg/geom"
	"github.com/neunenak/typst/pkg/syntax"
)

// Request is a single alignment request. HasAxis is false only for a
// positional center whose axis is not known yet.
type Request struct {
	Axis    geom.Axis
	HasAxis bool
	Value   syntax.Spanned[geom.SpecAlign]
}

// Positional builds a request for a positional value. Its axis is the
// value's own axis, if it has one.
func Positional(v syntax.Spanned[geom.SpecAlign]) Request {
	axis, ok := v.V.Axis()
	return Request{Axis: axis, HasAxis: ok, Value: v}
}

// Keyword builds a request for a value passed for an explicit axis.
func Keyword(axis geom.Axis, v syntax.Spanned[geom.SpecAlign]) Request {
	return Request{Axis: axis, HasAxis: true, Value: v}
}

// Collect orders the extracted arguments into the request sequence: first
// positional, second positional, horizontal keyword, vertical keyword. Nil
// arguments are skipped.
func Collect(first, second, hor, ver *syntax.Spanned[geom.SpecAlign]) []Request {
	reqs := make([]Request, 0, 4)
	if first != nil {
		reqs = append(reqs, Positional(*first))
	}
	if second != nil {
		reqs = append(reqs, Positional(*second))
	}
	if hor != nil {
		reqs = append(reqs, Keyword(geom.Horizontal, *hor))
	}
	if ver != nil {
		reqs = append(reqs, Keyword(geom.Vertical, *ver))
	}
	return reqs
}

func (r Request) String() string {
	if !r.HasAxis {
		return r.Value.V.String()
	}
	return fmt.Sprintf("%s: %s", r.Axis, r.Value.V)
}
