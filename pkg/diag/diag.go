// Package diag collects non-fatal diagnostics raised while evaluating a
// document.
//
// Diagnostics are data, not control flow: producers report into a [Sink]
// and carry on with a fallback value. The compilation pass owns a
// [Feedback] collector and renders its contents once evaluation finishes.
package diag

import (
	"fmt"
	"slices"
	"sync"

	"github.com/neunenak/typst/pkg/errors"
	"github.com/neunenak/typst/pkg/syntax"
)

// Level is the severity of a diagnostic.
type Level uint8

const (
	LevelWarning Level = iota
	LevelError
)

func (l Level) String() string {
	if l == LevelError {
		return "error"
	}
	return "warning"
}

func (l Level) MarshalText() ([]byte, error) { return []byte(l.String()), nil }

func (l *Level) UnmarshalText(b []byte) error {
	switch string(b) {
	case "error":
		*l = LevelError
	case "warning":
		*l = LevelWarning
	default:
		return fmt.Errorf("unknown diagnostic level: %q", b)
	}
	return nil
}

// Diagnostic is a single message attached to a source span.
type Diagnostic struct {
	Level   Level       `json:"level"`
	Code    errors.Code `json:"code"`
	Span    syntax.Span `json:"span"`
	Message string      `json:"message"`
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s: %s", d.Span, d.Level, d.Message)
}

// Sink receives diagnostics.
type Sink interface {
	Report(d Diagnostic)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(d Diagnostic)

// Report calls f(d).
func (f SinkFunc) Report(d Diagnostic) { f(d) }

// Discard drops every diagnostic.
var Discard Sink = SinkFunc(func(Diagnostic) {})

// Errorf reports an error-level diagnostic.
func Errorf(s Sink, span syntax.Span, code errors.Code, format string, args ...any) {
	s.Report(Diagnostic{
		Level:   LevelError,
		Code:    code,
		Span:    span,
		Message: fmt.Sprintf(format, args...),
	})
}

// Warnf reports a warning-level diagnostic.
func Warnf(s Sink, span syntax.Span, code errors.Code, format string, args ...any) {
	s.Report(Diagnostic{
		Level:   LevelWarning,
		Code:    code,
		Span:    span,
		Message: fmt.Sprintf(format, args...),
	})
}

// Feedback accumulates diagnostics in report order. It is safe for
// concurrent use.
type Feedback struct {
	mu    sync.Mutex
	diags []Diagnostic
}

// Report appends d.
func (f *Feedback) Report(d Diagnostic) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.diags = append(f.diags, d)
}

// All returns a copy of the collected diagnostics in report order.
func (f *Feedback) All() []Diagnostic {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.diags)
}

// Sorted returns the diagnostics ordered by span start. Diagnostics at the
// same position keep their report order.
func (f *Feedback) Sorted() []Diagnostic {
	out := f.All()
	slices.SortStableFunc(out, func(a, b Diagnostic) int {
		switch {
		case a.Span.Start.Before(b.Span.Start):
			return -1
		case b.Span.Start.Before(a.Span.Start):
			return 1
		}
		return 0
	})
	return out
}

// Len returns the number of collected diagnostics.
func (f *Feedback) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.diags)
}

// HasErrors reports whether any error-level diagnostic was collected.
func (f *Feedback) HasErrors() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, d := range f.diags {
		if d.Level == LevelError {
			return true
		}
	}
	return false
}

// Count returns how many diagnostics carry code.
func (f *Feedback) Count(code errors.Code) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, d := range f.diags {
		if d.Code == code {
			n++
		}
	}
	return n
}

// Ensure Feedback implements Sink.
var _ Sink = (*Feedback)(nil)
