// Package syntax defines source locations and the syntax tree consumed by
// the layout engine.
//
// A [Tree] is a flat list of [Node] values. Function calls ([Call]) carry
// their arguments as [Arg] values whose expressions may themselves contain
// trees, so nesting is expressed through arguments rather than children.
//
// Every node and argument carries a [Span]. Spans are reported back to the
// user with diagnostics, so they only need to be stable and ordered, not
// byte-exact.
package syntax
