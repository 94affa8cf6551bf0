package message

import (
	"encoding/json"
	"fmt"
	"slices"

	"github.com/dmitrymomot/intl/pkg/ast"
)

// Message is a compiled message for one locale. Its AST is always in compact
// form and never changes after construction.
type Message struct {
	locale string
	ast    []ast.Node
}

// New builds a Message from any accepted AST form: compact nodes
// ([]ast.Node, ast.Nodes, ast.Node), full nodes ([]ast.FullNode,
// ast.FullNode), raw JSON (json.RawMessage, []byte), a bare string, or a
// generic decoded tree (YAML, CBOR, JSON any).
func New(locale string, src any) (*Message, error) {
	var (
		nodes []ast.Node
		err   error
	)

	switch v := src.(type) {
	case *Message:
		return FromNodes(locale, v.ast), nil
	case json.RawMessage:
		nodes, err = ast.Decode(v)
	case []byte:
		nodes, err = ast.Decode(v)
	default:
		nodes, err = ast.FromValue(src)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidMessage, locale, err)
	}

	return &Message{locale: locale, ast: nodes}, nil
}

// MustNew is like New but panics on error.
func MustNew(locale string, src any) *Message {
	m, err := New(locale, src)
	if err != nil {
		panic(err)
	}
	return m
}

// FromNodes wraps compact nodes without validation.
func FromNodes(locale string, nodes []ast.Node) *Message {
	return &Message{locale: locale, ast: slices.Clone(nodes)}
}

// Locale returns the locale the message was loaded for.
func (m *Message) Locale() string {
	return m.locale
}

// AST returns the compact nodes. The slice is a copy; nodes are shared.
func (m *Message) AST() []ast.Node {
	return slices.Clone(m.ast)
}

// IsPlain reports whether the message is plain text without placeholders.
func (m *Message) IsPlain() bool {
	switch len(m.ast) {
	case 0:
		return true
	case 1:
		_, ok := m.ast[0].(ast.Literal)
		return ok
	default:
		return false
	}
}

// Text returns the text of a plain message and false otherwise.
func (m *Message) Text() (string, bool) {
	if !m.IsPlain() {
		return "", false
	}
	if len(m.ast) == 0 {
		return "", true
	}
	return string(m.ast[0].(ast.Literal)), true
}

// String returns the canonical source of the message.
func (m *Message) String() string {
	return m.Reserialize()
}

// MarshalJSON encodes the message AST in compact form.
func (m *Message) MarshalJSON() ([]byte, error) {
	return ast.Nodes(m.ast).MarshalJSON()
}
