package message

import (
	"strconv"
	"strings"

	"github.com/dmitrymomot/intl/pkg/ast"
	"github.com/dmitrymomot/intl/pkg/format"
)

// Reserialize renders the message back into canonical ICU MessageFormat
// with Markdown rich text, without substituting any values. The output is
// deterministic: option arms keep their order, ICU syntax characters in text
// are quoted with apostrophes and Markdown control characters are
// backslash-escaped.
func (m *Message) Reserialize() string {
	var w serializer
	w.nodes(m.ast, false)
	return w.buf.String()
}

// Reserialize renders nodes the same way Message.Reserialize does.
func Reserialize(nodes []ast.Node) string {
	var w serializer
	w.nodes(nodes, false)
	return w.buf.String()
}

type serializer struct {
	buf strings.Builder
}

// nodes writes a node list. inPlural is true inside a plural arm, where a
// bare # refers to the plural value and must be quoted in text.
func (w *serializer) nodes(nodes []ast.Node, inPlural bool) {
	for _, n := range nodes {
		w.node(n, inPlural)
	}
}

func (w *serializer) node(node ast.Node, inPlural bool) {
	switch n := node.(type) {
	case ast.Literal:
		w.literal(string(n), inPlural, true)
	case ast.Argument:
		w.buf.WriteString("{" + n.Name + "}")
	case ast.Number:
		w.styled(n.Name, "number", n.Style)
	case ast.Date:
		w.styled(n.Name, "date", n.Style)
	case ast.Time:
		w.styled(n.Name, "time", n.Style)
	case ast.Select:
		w.buf.WriteString("{" + n.Name + ", select,")
		w.options(n.Options, inPlural)
		w.buf.WriteByte('}')
	case ast.Plural:
		kind := "plural"
		if n.Type == ast.Ordinal {
			kind = "selectordinal"
		}
		w.buf.WriteString("{" + n.Name + ", " + kind + ",")
		if n.Offset != 0 {
			w.buf.WriteString(" offset:" + strconv.Itoa(n.Offset))
		}
		w.options(n.Options, true)
		w.buf.WriteByte('}')
	case ast.Pound:
		w.buf.WriteByte('#')
	case ast.Tag:
		w.tag(n, inPlural)
	}
}

func (w *serializer) styled(name, kind, style string) {
	w.buf.WriteString("{" + name + ", " + kind)
	if style != "" {
		w.buf.WriteString(", " + style)
	}
	w.buf.WriteByte('}')
}

func (w *serializer) options(opts ast.Options, inPlural bool) {
	for _, opt := range opts {
		w.buf.WriteString(" " + opt.Key + " {")
		w.nodes(opt.Value, inPlural)
		w.buf.WriteByte('}')
	}
}

func (w *serializer) tag(t ast.Tag, inPlural bool) {
	switch t.Name {
	case format.TagBold:
		w.wrap("**", t.Children, "**", inPlural)
	case format.TagItalic:
		w.wrap("*", t.Children, "*", inPlural)
	case format.TagStrike:
		w.wrap("~~", t.Children, "~~", inPlural)
	case format.TagCode:
		w.wrap("`", t.Children, "`", inPlural)
	case format.TagParagraph:
		w.wrap("", t.Children, "\n\n", inPlural)
	case format.TagLineBreak:
		w.buf.WriteString("\\\n")
	case format.TagLink:
		w.wrap("[", t.Children, "](", inPlural)
		w.target(t.Control, inPlural)
		w.buf.WriteByte(')')
	default:
		w.wrap("$[", t.Children, "]("+t.Name+")", inPlural)
	}
}

func (w *serializer) wrap(open string, children []ast.Node, closing string, inPlural bool) {
	w.buf.WriteString(open)
	w.nodes(children, inPlural)
	w.buf.WriteString(closing)
}

// target writes a link destination; literal parts keep Markdown characters.
func (w *serializer) target(nodes []ast.Node, inPlural bool) {
	for _, n := range nodes {
		if lit, ok := n.(ast.Literal); ok {
			w.literal(string(lit), inPlural, false)
			continue
		}
		w.node(n, inPlural)
	}
}

// literal writes text with ICU syntax characters quoted. Runs of syntax
// characters share one quoted section; apostrophes are always doubled.
func (w *serializer) literal(s string, inPlural, markdown bool) {
	if markdown {
		s = format.EscapeMarkdown(s)
	}

	quoting := false
	for _, r := range s {
		syntax := r == '{' || r == '}' || (inPlural && r == '#')
		switch {
		case syntax && !quoting:
			w.buf.WriteByte('\'')
			quoting = true
		case !syntax && quoting:
			w.buf.WriteByte('\'')
			quoting = false
		}
		if r == '\'' {
			w.buf.WriteString("''")
			continue
		}
		w.buf.WriteRune(r)
	}
	if quoting {
		w.buf.WriteByte('\'')
	}
}
