package message_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/intl/pkg/ast"
	"github.com/dmitrymomot/intl/pkg/message"
)

func greeting() []ast.Node {
	return []ast.Node{ast.Literal("Hello, "), ast.Argument{Name: "name"}}
}

func TestNew(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  any
	}{
		{name: "compact nodes", src: greeting()},
		{name: "nodes type", src: ast.Nodes(greeting())},
		{name: "compact json", src: json.RawMessage(`["Hello, ",[1,"name"]]`)},
		{name: "full json", src: []byte(`[{"type":0,"value":"Hello, "},{"type":1,"value":"name"}]`)},
		{name: "generic value", src: []any{"Hello, ", []any{1, "name"}}},
		{name: "full nodes", src: []ast.FullNode{
			{Type: ast.KindLiteral, Value: "Hello, "},
			{Type: ast.KindArgument, Value: "name"},
		}},
		{name: "message", src: message.FromNodes("fr", greeting())},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m, err := message.New("en", tt.src)
			require.NoError(t, err)
			require.Equal(t, "en", m.Locale())
			require.Equal(t, greeting(), m.AST())
		})
	}

	t.Run("bare string", func(t *testing.T) {
		t.Parallel()

		m, err := message.New("en", "Just text")
		require.NoError(t, err)
		require.True(t, m.IsPlain())

		s, ok := m.Text()
		require.True(t, ok)
		require.Equal(t, "Just text", s)
	})

	t.Run("invalid", func(t *testing.T) {
		t.Parallel()

		_, err := message.New("en", []byte(`[[42,"x"]]`))
		require.ErrorIs(t, err, message.ErrInvalidMessage)
		require.ErrorIs(t, err, ast.ErrUnknownKind)

		require.Panics(t, func() { message.MustNew("en", 42) })
	})
}

func TestMessage_AST(t *testing.T) {
	t.Parallel()

	m := message.FromNodes("en", greeting())
	nodes := m.AST()
	nodes[0] = ast.Literal("Bye, ")

	require.Equal(t, greeting(), m.AST())
	require.False(t, m.IsPlain())

	_, ok := m.Text()
	require.False(t, ok)
}

func TestMessage_MarshalJSON(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(message.FromNodes("en", greeting()))
	require.NoError(t, err)
	require.JSONEq(t, `["Hello, ",[1,"name"]]`, string(data))
}

func TestMessage_Reserialize(t *testing.T) {
	t.Parallel()

	inbox := []ast.Node{
		ast.Literal("Hello, "),
		ast.Argument{Name: "name"},
		ast.Literal("! You have "),
		ast.Plural{
			Name: "count",
			Options: ast.Options{
				{Key: "=0", Value: []ast.Node{ast.Literal("no messages")}},
				{Key: "one", Value: []ast.Node{ast.Pound{}, ast.Literal(" message")}},
				{Key: "other", Value: []ast.Node{ast.Pound{}, ast.Literal(" messages")}},
			},
			Type: ast.Cardinal,
		},
		ast.Literal("."),
	}

	tests := []struct {
		name  string
		nodes []ast.Node
		want  string
	}{
		{
			name:  "plural",
			nodes: inbox,
			want:  "Hello, {name}! You have {count, plural, =0 {no messages} one {# message} other {# messages}}.",
		},
		{
			name: "selectordinal with offset",
			nodes: []ast.Node{ast.Plural{
				Name:    "n",
				Options: ast.Options{{Key: "other", Value: []ast.Node{ast.Pound{}}}},
				Offset:  1,
				Type:    ast.Ordinal,
			}},
			want: "{n, selectordinal, offset:1 other {#}}",
		},
		{
			name: "select",
			nodes: []ast.Node{ast.Select{Name: "g", Options: ast.Options{
				{Key: "female", Value: []ast.Node{ast.Literal("her")}},
				{Key: "other", Value: []ast.Node{ast.Literal("their")}},
			}}},
			want: "{g, select, female {her} other {their}}",
		},
		{
			name: "formatted arguments",
			nodes: []ast.Node{
				ast.Number{Name: "n", Style: "::percent"},
				ast.Literal(" "),
				ast.Date{Name: "d"},
				ast.Literal(" "),
				ast.Time{Name: "t", Style: "short"},
			},
			want: "{n, number, ::percent} {d, date} {t, time, short}",
		},
		{
			name: "rich text",
			nodes: []ast.Node{
				ast.Tag{Name: "$b", Children: []ast.Node{ast.Literal("hi")}},
				ast.Literal(" "),
				ast.Tag{Name: "$i", Children: []ast.Node{ast.Literal("there")}},
				ast.Literal(" "),
				ast.Tag{Name: "$del", Children: []ast.Node{ast.Literal("old")}},
				ast.Literal(" "),
				ast.Tag{Name: "$code", Children: []ast.Node{ast.Literal("x")}},
				ast.Literal(" "),
				ast.Tag{Name: "$link", Children: []ast.Node{ast.Literal("docs")}, Control: []ast.Node{ast.Argument{Name: "url"}}},
				ast.Literal(" "),
				ast.Tag{Name: "profile", Children: []ast.Node{ast.Argument{Name: "name"}}},
			},
			want: "**hi** *there* ~~old~~ `x` [docs]({url}) $[{name}](profile)",
		},
		{
			name: "link target keeps markdown characters",
			nodes: []ast.Node{ast.Tag{
				Name:     "$link",
				Children: []ast.Node{ast.Literal("a_b")},
				Control:  []ast.Node{ast.Literal("https://example.com/a_b")},
			}},
			want: `[a\_b](https://example.com/a_b)`,
		},
		{
			name: "paragraphs and breaks",
			nodes: []ast.Node{
				ast.Tag{Name: "$p", Children: []ast.Node{ast.Literal("one")}},
				ast.Literal("two"),
				ast.Tag{Name: "$br"},
				ast.Literal("three"),
			},
			want: "one\n\ntwo\\\nthree",
		},
		{
			name:  "escapes text",
			nodes: []ast.Node{ast.Literal("Price {5} #1 it's *hot*")},
			want:  `Price '{'5'}' #1 it''s \*hot\*`,
		},
		{
			name:  "adjacent syntax characters share a quote",
			nodes: []ast.Node{ast.Literal("{}")},
			want:  "'{}'",
		},
		{
			name: "quotes pound inside plural",
			nodes: []ast.Node{ast.Plural{
				Name:    "n",
				Options: ast.Options{{Key: "other", Value: []ast.Node{ast.Literal("#1 "), ast.Pound{}}}},
				Type:    ast.Cardinal,
			}},
			want: "{n, plural, other {'#'1 #}}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m := message.FromNodes("en", tt.nodes)
			got := m.Reserialize()
			require.Equal(t, tt.want, got)
			require.Equal(t, got, m.Reserialize(), "must be deterministic")
			require.Equal(t, got, message.Reserialize(tt.nodes))
		})
	}
}
