// Package ast defines the compiled message tree and its two encodings.
//
// The compact ("keyless") form is what the message compiler emits into
// per-locale assets: literals are bare strings and every other node is an
// array whose first element is the node kind.
//
//	["Hello, ", [1, "name"], "! You have ", [6, "count", {"one": [[7], " message"], "other": [[7], " messages"]}, 0, "cardinal"], "."]
//
// The full form spells the same tree out as objects, matching the trees used
// by standard ICU message format tooling:
//
//	{"type": 1, "value": "name"}
//
// Compress and Hydrate convert between the two and are mutual inverses.
// Decoders auto-detect the form of every node, so assets may mix both.
//
// # Node kinds
//
//	0 literal   1 argument  2 number  3 date  4 time
//	5 select    6 plural    7 pound   8 tag
//
// Tags whose name starts with "$" are built-in rich-text tags ($b, $i,
// $link, ...). Any other tag name refers to a caller-supplied hook.
package ast
