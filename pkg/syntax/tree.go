package syntax

import (
	"fmt"
	"strconv"
)

// Tree is a sequence of nodes laid out one after another.
type Tree []Node

// Node is a single element of a [Tree].
type Node interface {
	Span() Span
	node()
}

// Text is a run of literal text.
type Text struct {
	Value string
	At    Span
}

// Parbreak separates paragraphs.
type Parbreak struct {
	At Span
}

// Call invokes a named function, e.g. the align directive.
type Call struct {
	Name Spanned[string]
	Args []Arg
	At   Span
}

func (n Text) Span() Span     { return n.At }
func (n Parbreak) Span() Span { return n.At }
func (n Call) Span() Span     { return n.At }

func (Text) node()     {}
func (Parbreak) node() {}
func (Call) node()     {}

// Arg is a single call argument. Key is nil for positional arguments.
type Arg struct {
	Key   *Spanned[string]
	Value Spanned[Expr]
}

// IsNamed reports whether the argument was passed by name.
func (a Arg) IsNamed() bool {
	return a.Key != nil
}

// Expr is an argument expression.
type Expr interface {
	// Kind names the expression type for diagnostics ("identifier", "tree", ...).
	Kind() string
	expr()
}

// Ident is a bare identifier such as `center`.
type Ident string

// Str is a string literal.
type Str string

// Number is a numeric literal.
type Number float64

// Bool is a boolean literal.
type Bool bool

// TreeExpr is a nested content tree passed as an argument.
type TreeExpr Tree

func (Ident) Kind() string    { return "identifier" }
func (Str) Kind() string      { return "string" }
func (Number) Kind() string   { return "number" }
func (Bool) Kind() string     { return "bool" }
func (TreeExpr) Kind() string { return "tree" }

func (Ident) expr()    {}
func (Str) expr()      {}
func (Number) expr()   {}
func (Bool) expr()     {}
func (TreeExpr) expr() {}

func (e Ident) String() string  { return string(e) }
func (e Str) String() string    { return strconv.Quote(string(e)) }
func (e Number) String() string { return strconv.FormatFloat(float64(e), 'g', -1, 64) }
func (e Bool) String() string   { return strconv.FormatBool(bool(e)) }
func (e TreeExpr) String() string {
	return fmt.Sprintf("[tree of %d nodes]", len(e))
}

// Count returns the number of nodes in t including nodes nested inside call
// arguments.
func (t Tree) Count() int {
	n := 0
	for _, node := range t {
		n++
		if call, ok := node.(Call); ok {
			for _, arg := range call.Args {
				if sub, ok := arg.Value.V.(TreeExpr); ok {
					n += Tree(sub).Count()
				}
			}
		}
	}
	return n
}
