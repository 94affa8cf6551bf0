// Package format binds values into compiled message ASTs.
//
// Bind walks a message and drives a Builder, which decides the output type:
// NewStringBuilder renders plain text, NewMarkdownBuilder renders Markdown and
// NewASTBuilder returns a bound AST for renderers that keep rich-text
// structure.
//
//	nodes, _ := ast.Decode(data)
//	out, err := format.Text(nodes, "en", nil, format.DefaultConfig(), format.Values{
//		"name":  "Ada",
//		"count": 3,
//	})
//
// # Styles
//
// {n, number, style}, {d, date, style} and {t, time, style} resolve style as
// a named style from Config, then as an ICU skeleton ("::percent",
// "::currency/EUR .00", "::yyyy-MM-dd"), then fall back to a decimal number
// or the medium date/time width.
//
// Number formatting uses golang.org/x/text, plural categories come from the
// CLDR rules in golang.org/x/text/feature/plural. Formatters are cached per
// locale and style in Formatters, which is safe for concurrent use.
//
// # Errors
//
// Binding fails with ErrMissingRequiredValue, ErrInvalidSelectorValue,
// ErrInvalidPluralValue, ErrInvalidHookValue or ErrUnknownRichTextTag when a
// message and its call site disagree.
package format
