package syntax

import "fmt"

// Pos is a position in a source document. Line and Column are 1-based for
// real positions; the zero Pos means "unknown".
type Pos struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// String formats the position as "line:column".
func (p Pos) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Before reports whether p comes strictly before q.
func (p Pos) Before(q Pos) bool {
	if p.Line != q.Line {
		return p.Line < q.Line
	}
	return p.Column < q.Column
}

// Span is a half-open range [Start, End) in a source document.
type Span struct {
	Start Pos `json:"start"`
	End   Pos `json:"end"`
}

// SpanAt returns a span covering a single position.
func SpanAt(line, column int) Span {
	return Span{Start: Pos{Line: line, Column: column}, End: Pos{Line: line, Column: column + 1}}
}

// IsZero reports whether s is the zero span.
func (s Span) IsZero() bool {
	return s == Span{}
}

// Join returns the smallest span covering both s and o.
func (s Span) Join(o Span) Span {
	if s.IsZero() {
		return o
	}
	if o.IsZero() {
		return s
	}
	out := s
	if o.Start.Before(out.Start) {
		out.Start = o.Start
	}
	if out.End.Before(o.End) {
		out.End = o.End
	}
	return out
}

// String formats the span by its start position.
func (s Span) String() string {
	return s.Start.String()
}

// Spanned pairs a value with the span it was written at.
type Spanned[T any] struct {
	V    T    `json:"value"`
	Span Span `json:"span"`
}

// NewSpanned wraps v with span.
func NewSpanned[T any](v T, span Span) Spanned[T] {
	return Spanned[T]{V: v, Span: span}
}

// Map converts the value of s while keeping its span.
func Map[T, U any](s Spanned[T], f func(T) U) Spanned[U] {
	return Spanned[U]{V: f(s.V), Span: s.Span}
}
