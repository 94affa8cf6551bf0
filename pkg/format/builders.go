package format

import (
	"fmt"
	"strings"

	"github.com/dmitrymomot/intl/pkg/ast"
)

// NewStringBuilder returns a Builder producing plain text. Rich-text tags
// render their children only; paragraphs end with a blank line.
func NewStringBuilder() Builder[string] {
	return &stringBuilder{}
}

type stringBuilder struct {
	buf strings.Builder
}

func (b *stringBuilder) PushLiteralText(text string) { b.buf.WriteString(text) }

func (b *stringBuilder) PushObject(value any) { fmt.Fprint(&b.buf, value) }

func (b *stringBuilder) PushRichTextTag(tag string, children, _ []string) error {
	switch tag {
	case TagBold, TagItalic, TagStrike, TagCode, TagLink:
		b.buf.WriteString(strings.Join(children, ""))
	case TagParagraph:
		b.buf.WriteString(strings.Join(children, ""))
		b.buf.WriteString("\n\n")
	case TagLineBreak:
		b.buf.WriteByte('\n')
	default:
		return fmt.Errorf("%w: %q", ErrUnknownRichTextTag, tag)
	}
	return nil
}

func (b *stringBuilder) Finish() []string {
	return []string{b.buf.String()}
}

// NewMarkdownBuilder returns a Builder producing Markdown. Literal text is
// escaped so only rich-text tags produce Markdown syntax.
func NewMarkdownBuilder() Builder[string] {
	return &markdownBuilder{}
}

type markdownBuilder struct {
	buf strings.Builder
}

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	"*", `\*`,
	"_", `\_`,
	"~", `\~`,
	"`", "\\`",
	"[", `\[`,
	"]", `\]`,
)

// EscapeMarkdown backslash-escapes the Markdown control characters in s.
func EscapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}

func (b *markdownBuilder) PushLiteralText(text string) { b.buf.WriteString(EscapeMarkdown(text)) }

func (b *markdownBuilder) PushObject(value any) { b.buf.WriteString(EscapeMarkdown(fmt.Sprint(value))) }

func (b *markdownBuilder) PushRichTextTag(tag string, children, control []string) error {
	inner := strings.Join(children, "")
	switch tag {
	case TagBold:
		b.buf.WriteString("**" + inner + "**")
	case TagItalic:
		b.buf.WriteString("*" + inner + "*")
	case TagStrike:
		b.buf.WriteString("~~" + inner + "~~")
	case TagCode:
		b.buf.WriteString("`" + inner + "`")
	case TagLink:
		b.buf.WriteString("[" + inner + "](" + strings.Join(control, "") + ")")
	case TagParagraph:
		b.buf.WriteString(inner + "\n\n")
	case TagLineBreak:
		b.buf.WriteString("  \n")
	default:
		return fmt.Errorf("%w: %q", ErrUnknownRichTextTag, tag)
	}
	return nil
}

func (b *markdownBuilder) Finish() []string {
	return []string{b.buf.String()}
}

// NewASTBuilder returns a Builder producing a bound AST: values are
// substituted, rich-text tags are kept as tags. Objects that are nodes are
// inserted as is, others become literal text.
func NewASTBuilder() Builder[ast.Node] {
	return &astBuilder{}
}

type astBuilder struct {
	nodes []ast.Node
}

func (b *astBuilder) PushLiteralText(text string) {
	if text == "" {
		return
	}
	if n := len(b.nodes); n > 0 {
		if prev, ok := b.nodes[n-1].(ast.Literal); ok {
			b.nodes[n-1] = prev + ast.Literal(text)
			return
		}
	}
	b.nodes = append(b.nodes, ast.Literal(text))
}

func (b *astBuilder) PushObject(value any) {
	switch v := value.(type) {
	case ast.Literal:
		b.PushLiteralText(string(v))
	case ast.Node:
		b.nodes = append(b.nodes, v)
	case []ast.Node:
		for _, n := range v {
			b.PushObject(n)
		}
	default:
		b.PushLiteralText(fmt.Sprint(v))
	}
}

func (b *astBuilder) PushRichTextTag(tag string, children, control []ast.Node) error {
	if !ast.IsRichTextName(tag) {
		return fmt.Errorf("%w: %q", ErrUnknownRichTextTag, tag)
	}
	b.nodes = append(b.nodes, ast.Tag{Name: tag, Children: children, Control: control})
	return nil
}

func (b *astBuilder) Finish() []ast.Node {
	return b.nodes
}

// Text binds nodes with the string builder and joins the result.
func Text(nodes []ast.Node, locale string, formatters *Formatters, cfg Config, values Values) (string, error) {
	parts, err := Bind(NewStringBuilder, nodes, locale, formatters, cfg, values)
	if err != nil {
		return "", err
	}
	return strings.Join(parts, ""), nil
}

// Markdown binds nodes with the Markdown builder and joins the result.
func Markdown(nodes []ast.Node, locale string, formatters *Formatters, cfg Config, values Values) (string, error) {
	parts, err := Bind(NewMarkdownBuilder, nodes, locale, formatters, cfg, values)
	if err != nil {
		return "", err
	}
	return strings.Join(parts, ""), nil
}
