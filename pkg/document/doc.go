// Package document loads syntax trees from TOML documents.
//
// Markup parsing is out of scope for this module, so documents describe
// their tree directly:
//
//	[[nodes]]
//	text = "Hello"
//
//	[[nodes]]
//	call = "align"
//	args = ["center"]
//	named = { vertical = "top" }
//
//	  [[nodes.body]]
//	  text = "centered at the top"
//
//	[[nodes]]
//	parbreak = true
//
// A node is exactly one of text, parbreak or call. Call bodies become the
// last positional argument. String values that look like identifiers
// (`center`, `top`) are identifiers, any other string is a string literal.
//
// Spans are locators rather than byte offsets: the line is the 1-based
// position of the node in document order (bodies included) and the column
// is the 1-based position of the argument within its call, 0 for the node
// itself.
package document
