package format_test

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/intl/pkg/ast"
	"github.com/dmitrymomot/intl/pkg/format"
)

func inboxMessage() []ast.Node {
	return []ast.Node{
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
}

func text(t *testing.T, nodes []ast.Node, locale string, values format.Values) string {
	t.Helper()

	out, err := format.Text(nodes, locale, nil, format.DefaultConfig(), values)
	require.NoError(t, err)
	return out
}

func TestBind_EndToEnd(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		count any
		want  string
	}{
		{name: "other", count: 3, want: "Hello, Ada! You have 3 messages."},
		{name: "exact zero", count: 0, want: "Hello, Ada! You have no messages."},
		{name: "one", count: 1, want: "Hello, Ada! You have 1 message."},
		{name: "float", count: 2.0, want: "Hello, Ada! You have 2 messages."},
		{name: "numeric string", count: "7", want: "Hello, Ada! You have 7 messages."},
		{name: "grouped", count: 1200, want: "Hello, Ada! You have 1,200 messages."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := text(t, inboxMessage(), "en", format.Values{"name": "Ada", "count": tt.count})
			require.Equal(t, tt.want, got)
		})
	}
}

func TestBind_FastPath(t *testing.T) {
	t.Parallel()

	out, err := format.Bind(format.NewStringBuilder, []ast.Node{ast.Literal("plain")}, "en", nil, format.Config{}, nil)
	require.NoError(t, err)
	require.Equal(t, []string{"plain"}, out)
}

func TestBind_Plural(t *testing.T) {
	t.Parallel()

	nodes := []ast.Node{ast.Plural{
		Name: "count",
		Options: ast.Options{
			{Key: "=0", Value: []ast.Node{ast.Literal("none")}},
			{Key: "one", Value: []ast.Node{ast.Literal("single")}},
			{Key: "other", Value: []ast.Node{ast.Literal("many")}},
		},
		Type: ast.Cardinal,
	}}

	t.Run("exact match wins", func(t *testing.T) {
		t.Parallel()
		require.Equal(t, "none", text(t, nodes, "en", format.Values{"count": 0}))
	})

	t.Run("category", func(t *testing.T) {
		t.Parallel()
		require.Equal(t, "single", text(t, nodes, "en", format.Values{"count": 1}))
	})

	t.Run("other", func(t *testing.T) {
		t.Parallel()
		require.Equal(t, "many", text(t, nodes, "en", format.Values{"count": 5}))
	})

	t.Run("fraction is other in english", func(t *testing.T) {
		t.Parallel()
		require.Equal(t, "many", text(t, nodes, "en", format.Values{"count": 1.5}))
	})

	t.Run("missing value", func(t *testing.T) {
		t.Parallel()

		_, err := format.Text(nodes, "en", nil, format.Config{}, format.Values{})
		require.ErrorIs(t, err, format.ErrMissingRequiredValue)
		require.Contains(t, err.Error(), `"count"`)
	})

	t.Run("non-numeric value", func(t *testing.T) {
		t.Parallel()

		_, err := format.Text(nodes, "en", nil, format.Config{}, format.Values{"count": "lots"})
		require.ErrorIs(t, err, format.ErrInvalidPluralValue)
	})

	t.Run("no matching arm", func(t *testing.T) {
		t.Parallel()

		onlyOne := []ast.Node{ast.Plural{
			Name:    "count",
			Options: ast.Options{{Key: "one", Value: []ast.Node{ast.Literal("single")}}},
			Type:    ast.Cardinal,
		}}
		_, err := format.Text(onlyOne, "en", nil, format.Config{}, format.Values{"count": 4})
		require.ErrorIs(t, err, format.ErrInvalidPluralValue)
		require.Contains(t, err.Error(), "one")
	})
}

func TestBind_PluralOffset(t *testing.T) {
	t.Parallel()

	nodes := []ast.Node{ast.Plural{
		Name: "guests",
		Options: ast.Options{
			{Key: "=0", Value: []ast.Node{ast.Literal("nobody")}},
			{Key: "=1", Value: []ast.Node{ast.Literal("just you")}},
			{Key: "one", Value: []ast.Node{ast.Literal("you and one other")}},
			{Key: "other", Value: []ast.Node{ast.Literal("you and "), ast.Pound{}, ast.Literal(" others")}},
		},
		Offset: 1,
		Type:   ast.Cardinal,
	}}

	tests := []struct {
		guests int
		want   string
	}{
		{0, "nobody"},
		{1, "just you"},
		{2, "you and one other"},
		{5, "you and 4 others"},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, text(t, nodes, "en", format.Values{"guests": tt.guests}))
	}
}

func TestBind_Ordinal(t *testing.T) {
	t.Parallel()

	nodes := []ast.Node{ast.Plural{
		Name: "place",
		Options: ast.Options{
			{Key: "one", Value: []ast.Node{ast.Pound{}, ast.Literal("st")}},
			{Key: "two", Value: []ast.Node{ast.Pound{}, ast.Literal("nd")}},
			{Key: "few", Value: []ast.Node{ast.Pound{}, ast.Literal("rd")}},
			{Key: "other", Value: []ast.Node{ast.Pound{}, ast.Literal("th")}},
		},
		Type: ast.Ordinal,
	}}

	tests := map[int]string{1: "1st", 2: "2nd", 3: "3rd", 4: "4th", 11: "11th", 21: "21st", 112: "112th"}
	for place, want := range tests {
		require.Equal(t, want, text(t, nodes, "en", format.Values{"place": place}), "place %d", place)
	}
}

func TestPluralCategory(t *testing.T) {
	t.Parallel()

	tests := []struct {
		locale string
		kind   ast.PluralType
		n      float64
		want   string
	}{
		{"en", ast.Cardinal, 1, format.PluralOne},
		{"en", ast.Cardinal, 0, format.PluralOther},
		{"en", ast.Cardinal, 1.5, format.PluralOther},
		{"en", ast.Ordinal, 22, format.PluralTwo},
		{"pl", ast.Cardinal, 1, format.PluralOne},
		{"pl", ast.Cardinal, 3, format.PluralFew},
		{"pl", ast.Cardinal, 5, format.PluralMany},
		{"pl", ast.Cardinal, 12, format.PluralMany},
		{"pl", ast.Cardinal, 22, format.PluralFew},
		{"ar", ast.Cardinal, 0, format.PluralZero},
		{"ar", ast.Cardinal, 2, format.PluralTwo},
		{"ja", ast.Cardinal, 1, format.PluralOther},
	}

	for _, tt := range tests {
		got := format.PluralCategory(tt.locale, tt.kind, tt.n)
		assert.Equal(t, tt.want, got, "%s %s %v", tt.locale, tt.kind, tt.n)
	}
}

func TestBind_Select(t *testing.T) {
	t.Parallel()

	nodes := []ast.Node{ast.Select{
		Name: "gender",
		Options: ast.Options{
			{Key: "female", Value: []ast.Node{ast.Literal("her")}},
			{Key: "male", Value: []ast.Node{ast.Literal("his")}},
			{Key: "other", Value: []ast.Node{ast.Literal("their")}},
		},
	}}

	require.Equal(t, "her", text(t, nodes, "en", format.Values{"gender": "female"}))
	require.Equal(t, "their", text(t, nodes, "en", format.Values{"gender": "robot"}))
	require.Equal(t, "their", text(t, nodes, "en", format.Values{"gender": nil}))

	t.Run("missing value", func(t *testing.T) {
		t.Parallel()

		_, err := format.Text(nodes, "en", nil, format.Config{}, format.Values{})
		require.ErrorIs(t, err, format.ErrMissingRequiredValue)
		require.Contains(t, err.Error(), `"gender"`)
	})

	t.Run("no other arm", func(t *testing.T) {
		t.Parallel()

		strict := []ast.Node{ast.Select{
			Name: "gender",
			Options: ast.Options{
				{Key: "female", Value: []ast.Node{ast.Literal("her")}},
				{Key: "male", Value: []ast.Node{ast.Literal("his")}},
			},
		}}
		_, err := format.Text(strict, "en", nil, format.Config{}, format.Values{"gender": "robot"})
		require.ErrorIs(t, err, format.ErrInvalidSelectorValue)
		require.Contains(t, err.Error(), "female, male")
	})

	t.Run("non-string selector", func(t *testing.T) {
		t.Parallel()

		flags := []ast.Node{ast.Select{
			Name: "admin",
			Options: ast.Options{
				{Key: "true", Value: []ast.Node{ast.Literal("yes")}},
				{Key: "other", Value: []ast.Node{ast.Literal("no")}},
			},
		}}
		require.Equal(t, "yes", text(t, flags, "en", format.Values{"admin": true}))
		require.Equal(t, "no", text(t, flags, "en", format.Values{"admin": false}))
	})
}

func TestBind_SelectInsidePlural(t *testing.T) {
	t.Parallel()

	nodes := []ast.Node{ast.Plural{
		Name: "count",
		Options: ast.Options{{Key: "other", Value: []ast.Node{
			ast.Select{Name: "kind", Options: ast.Options{
				{Key: "cat", Value: []ast.Node{ast.Pound{}, ast.Literal(" cats")}},
				{Key: "other", Value: []ast.Node{ast.Pound{}, ast.Literal(" pets")}},
			}},
		}}},
		Type: ast.Cardinal,
	}}

	require.Equal(t, "4 cats", text(t, nodes, "en", format.Values{"count": 4, "kind": "cat"}))
	require.Equal(t, "4 pets", text(t, nodes, "en", format.Values{"count": 4, "kind": "dog"}))
}

func TestBind_Arguments(t *testing.T) {
	t.Parallel()

	t.Run("missing value", func(t *testing.T) {
		t.Parallel()

		_, err := format.Text([]ast.Node{ast.Literal("Hi "), ast.Argument{Name: "name"}}, "en", nil, format.Config{}, nil)
		require.ErrorIs(t, err, format.ErrMissingRequiredValue)
		require.Contains(t, err.Error(), `"name"`)
	})

	t.Run("missing rich text sentinel is ignored", func(t *testing.T) {
		t.Parallel()
		require.Equal(t, "Hi", text(t, []ast.Node{ast.Literal("Hi"), ast.Argument{Name: "$sep"}}, "en", nil))
	})

	t.Run("nil value renders nothing", func(t *testing.T) {
		t.Parallel()
		require.Equal(t, "Hi ", text(t, []ast.Node{ast.Literal("Hi "), ast.Argument{Name: "name"}}, "en", format.Values{"name": nil}))
	})

	t.Run("scalars", func(t *testing.T) {
		t.Parallel()

		nodes := []ast.Node{ast.Argument{Name: "a"}, ast.Literal("|"), ast.Argument{Name: "b"}, ast.Literal("|"), ast.Argument{Name: "c"}}
		require.Equal(t, "42|true|1.5", text(t, nodes, "en", format.Values{"a": 42, "b": true, "c": 1.5}))
	})

	t.Run("pound outside plural is ignored", func(t *testing.T) {
		t.Parallel()
		require.Equal(t, "a", text(t, []ast.Node{ast.Pound{}, ast.Literal("a")}, "en", nil))
	})
}

func TestBind_Numbers(t *testing.T) {
	t.Parallel()

	cfg := format.DefaultConfig()
	cfg.Number["money"] = format.NumberStyle{Kind: format.Currency, Currency: "EUR"}

	tests := []struct {
		name   string
		locale string
		style  string
		value  any
		want   string
	}{
		{name: "decimal", locale: "en", value: 1234.5, want: "1,234.5"},
		{name: "decimal german", locale: "de", value: 1234.5, want: "1.234,5"},
		{name: "integer", locale: "en", style: "integer", value: 1234.6, want: "1,235"},
		{name: "percent", locale: "en", style: "percent", value: 0.25, want: "25%"},
		{name: "currency", locale: "en", style: "currency", value: 1234.5, want: "$1,234.50"},
		{name: "negative currency", locale: "en", style: "currency", value: -5, want: "-$5.00"},
		{name: "named style", locale: "en", style: "money", value: 1234.5, want: "€1,234.50"},
		{name: "named style german", locale: "de-DE", style: "money", value: 1234.5, want: "1.234,50 €"},
		{name: "skeleton currency", locale: "en", style: "::currency/GBP", value: 3, want: "£3.00"},
		{name: "skeleton yen", locale: "en", style: "::currency/JPY", value: 300, want: "¥300"},
		{name: "skeleton scale", locale: "en", style: "::scale/100", value: 0.5, want: "50"},
		{name: "skeleton precision", locale: "en", style: "::.00", value: 2, want: "2.00"},
		{name: "skeleton group off", locale: "en", style: "::group-off", value: 12345, want: "12345"},
		{name: "unknown style is decimal", locale: "en", style: "fancy", value: 7, want: "7"},
		{name: "json style number", locale: "en", value: "12", want: "12"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			nodes := []ast.Node{ast.Number{Name: "n", Style: tt.style}}
			got, err := format.Text(nodes, tt.locale, nil, cfg, format.Values{"n": tt.value})
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}

	t.Run("missing value", func(t *testing.T) {
		t.Parallel()

		_, err := format.Text([]ast.Node{ast.Number{Name: "n"}}, "en", nil, cfg, nil)
		require.ErrorIs(t, err, format.ErrMissingRequiredValue)
	})

	t.Run("invalid value", func(t *testing.T) {
		t.Parallel()

		_, err := format.Text([]ast.Node{ast.Number{Name: "n"}}, "en", nil, cfg, format.Values{"n": struct{}{}})
		require.ErrorIs(t, err, format.ErrInvalidFormatValue)
	})

	t.Run("invalid currency", func(t *testing.T) {
		t.Parallel()

		bad := format.Config{Number: map[string]format.NumberStyle{"bad": {Kind: format.Currency, Currency: "ZZ"}}}
		_, err := format.Text([]ast.Node{ast.Number{Name: "n", Style: "bad"}}, "en", nil, bad, format.Values{"n": 1})
		require.ErrorIs(t, err, format.ErrInvalidFormatStyle)
	})
}

func TestBind_CurrencySymbols(t *testing.T) {
	t.Parallel()

	tests := []struct {
		locale string
		code   string
	}{
		{locale: "en", code: "MXN"},
		{locale: "en-CA", code: "CAD"},
		{locale: "en", code: "CAD"},
		{locale: "sv-SE", code: "SEK"},
		{locale: "ja-JP", code: "CNY"},
		{locale: "en", code: "CHF"},
	}

	for _, tt := range tests {
		t.Run(tt.locale+" "+tt.code, func(t *testing.T) {
			t.Parallel()

			want := message.NewPrinter(language.Make(tt.locale)).Sprint(currency.Symbol(currency.MustParseISO(tt.code)))
			nodes := []ast.Node{ast.Number{Name: "n", Style: "::currency/" + tt.code}}
			got, err := format.Text(nodes, tt.locale, nil, format.DefaultConfig(), format.Values{"n": 12.5})
			require.NoError(t, err)
			assert.Contains(t, got, want)
		})
	}

	t.Run("dollar variants stay tight", func(t *testing.T) {
		t.Parallel()
		require.Equal(t, "MX$12.50", text(t, []ast.Node{ast.Number{Name: "n", Style: "::currency/MXN"}}, "en", format.Values{"n": 12.5}))
	})
}

func TestBind_DatesAndTimes(t *testing.T) {
	t.Parallel()

	when := time.Date(2024, time.March, 15, 14, 30, 5, 0, time.UTC)

	tests := []struct {
		name   string
		locale string
		node   ast.Node
		value  any
		want   string
	}{
		{name: "date default", locale: "en", node: ast.Date{Name: "d"}, value: when, want: "Mar 15, 2024"},
		{name: "date short", locale: "en", node: ast.Date{Name: "d", Style: "short"}, value: when, want: "3/15/24"},
		{name: "date long", locale: "en-US", node: ast.Date{Name: "d", Style: "long"}, value: when, want: "March 15, 2024"},
		{name: "date german", locale: "de", node: ast.Date{Name: "d"}, value: when, want: "15.03.2024"},
		{name: "date skeleton", locale: "en", node: ast.Date{Name: "d", Style: "::yyyy-MM-dd"}, value: when, want: "2024-03-15"},
		{name: "date quoted skeleton", locale: "en", node: ast.Date{Name: "d", Style: "d 'of' MMMM"}, value: when, want: "15 of March"},
		{name: "date unix millis", locale: "en", node: ast.Date{Name: "d", Style: "::yyyy-MM-dd"}, value: when.UnixMilli(), want: "2024-03-15"},
		{name: "time default", locale: "en", node: ast.Time{Name: "t"}, value: when, want: "2:30:05 PM"},
		{name: "time short", locale: "en", node: ast.Time{Name: "t", Style: "short"}, value: when, want: "2:30 PM"},
		{name: "time german", locale: "de", node: ast.Time{Name: "t", Style: "short"}, value: when, want: "14:30"},
		{name: "time rfc3339", locale: "en-GB", node: ast.Time{Name: "t", Style: "short"}, value: "2024-03-15T09:05:00Z", want: "09:05"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := text(t, []ast.Node{tt.node}, tt.locale, format.Values{"d": tt.value, "t": tt.value})
			require.Equal(t, tt.want, got)
		})
	}

	t.Run("configured location", func(t *testing.T) {
		t.Parallel()

		cfg := format.DefaultConfig()
		cfg.Location = time.FixedZone("UTC+2", 2*60*60)
		got, err := format.Text([]ast.Node{ast.Time{Name: "t", Style: "short"}}, "en", nil, cfg, format.Values{"t": when})
		require.NoError(t, err)
		require.Equal(t, "4:30 PM", got)
	})

	t.Run("named style", func(t *testing.T) {
		t.Parallel()

		cfg := format.Config{Date: map[string]format.DateStyle{"iso": {Layout: "2006-01-02"}}}
		got, err := format.Text([]ast.Node{ast.Date{Name: "d", Style: "iso"}}, "en", nil, cfg, format.Values{"d": when})
		require.NoError(t, err)
		require.Equal(t, "2024-03-15", got)
	})

	t.Run("invalid value", func(t *testing.T) {
		t.Parallel()

		_, err := format.Text([]ast.Node{ast.Date{Name: "d"}}, "en", nil, format.Config{}, format.Values{"d": "yesterday"})
		require.ErrorIs(t, err, format.ErrInvalidFormatValue)
	})
}

func TestBind_Tags(t *testing.T) {
	t.Parallel()

	nodes := []ast.Node{
		ast.Literal("Read "),
		ast.Tag{
			Name:     "$link",
			Children: []ast.Node{ast.Literal("the "), ast.Tag{Name: "$b", Children: []ast.Node{ast.Argument{Name: "doc"}}}},
			Control:  []ast.Node{ast.Argument{Name: "url"}},
		},
		ast.Literal(" first."),
	}
	values := format.Values{"doc": "guide", "url": "https://example.com/guide"}

	t.Run("string builder keeps text", func(t *testing.T) {
		t.Parallel()
		require.Equal(t, "Read the guide first.", text(t, nodes, "en", values))
	})

	t.Run("markdown builder", func(t *testing.T) {
		t.Parallel()

		got, err := format.Markdown(nodes, "en", nil, format.Config{}, values)
		require.NoError(t, err)
		require.Equal(t, "Read [the **guide**](https://example.com/guide) first.", got)
	})

	t.Run("paragraphs and breaks", func(t *testing.T) {
		t.Parallel()

		para := []ast.Node{
			ast.Tag{Name: "$p", Children: []ast.Node{ast.Literal("one")}},
			ast.Literal("two"),
			ast.Tag{Name: "$br"},
			ast.Literal("three"),
		}
		require.Equal(t, "one\n\ntwo\nthree", text(t, para, "en", nil))
	})

	t.Run("unknown rich text tag", func(t *testing.T) {
		t.Parallel()

		_, err := format.Text([]ast.Node{ast.Tag{Name: "$blink"}}, "en", nil, format.Config{}, nil)
		require.ErrorIs(t, err, format.ErrUnknownRichTextTag)
	})
}

func TestBind_Hooks(t *testing.T) {
	t.Parallel()

	nodes := []ast.Node{
		ast.Literal("See "),
		ast.Tag{Name: "profile", Children: []ast.Node{ast.Argument{Name: "name"}}},
	}

	t.Run("function returning any", func(t *testing.T) {
		t.Parallel()

		got := text(t, nodes, "en", format.Values{
			"name": "Ada",
			"profile": func(children []string) any {
				return "<a>" + strings.Join(children, "") + "</a>"
			},
		})
		require.Equal(t, "See <a>Ada</a>", got)
	})

	t.Run("typed hook returning chunks", func(t *testing.T) {
		t.Parallel()

		got := text(t, nodes, "en", format.Values{
			"name": "Ada",
			"profile": format.Hook[string](func(children []string) any {
				return []any{"@", strings.Join(children, ""), 1}
			}),
		})
		require.Equal(t, "See @Ada1", got)
	})

	t.Run("function returning slice", func(t *testing.T) {
		t.Parallel()

		got := text(t, nodes, "en", format.Values{
			"name":    "Ada",
			"profile": func(children []string) []string { return append(children, "!") },
		})
		require.Equal(t, "See Ada!", got)
	})

	t.Run("not callable", func(t *testing.T) {
		t.Parallel()

		_, err := format.Text(nodes, "en", nil, format.Config{}, format.Values{"name": "Ada", "profile": "x"})
		require.ErrorIs(t, err, format.ErrInvalidHookValue)
	})

	t.Run("missing", func(t *testing.T) {
		t.Parallel()

		_, err := format.Text(nodes, "en", nil, format.Config{}, format.Values{"name": "Ada"})
		require.ErrorIs(t, err, format.ErrMissingRequiredValue)
		require.NotErrorIs(t, err, format.ErrInvalidHookValue)
	})

	t.Run("children errors propagate", func(t *testing.T) {
		t.Parallel()

		_, err := format.Text(nodes, "en", nil, format.Config{}, format.Values{"profile": func([]string) any { return nil }})
		require.ErrorIs(t, err, format.ErrMissingRequiredValue)
	})
}

func TestMarkdownBuilder_Escapes(t *testing.T) {
	t.Parallel()

	nodes := []ast.Node{
		ast.Literal("2*3 = "),
		ast.Argument{Name: "v"},
		ast.Tag{Name: "$i", Children: []ast.Node{ast.Literal("[x]")}},
	}
	got, err := format.Markdown(nodes, "en", nil, format.Config{}, format.Values{"v": "a_b"})
	require.NoError(t, err)
	require.Equal(t, `2\*3 = a\_b*\[x\]*`, got)
}

func TestASTBuilder(t *testing.T) {
	t.Parallel()

	nodes := []ast.Node{
		ast.Literal("Hello, "),
		ast.Argument{Name: "name"},
		ast.Literal("! "),
		ast.Tag{Name: "$b", Children: []ast.Node{ast.Plural{
			Name:    "count",
			Options: ast.Options{{Key: "other", Value: []ast.Node{ast.Pound{}, ast.Literal(" new")}}},
			Type:    ast.Cardinal,
		}}},
		ast.Argument{Name: "badge"},
	}

	got, err := format.Bind(format.NewASTBuilder, nodes, "en", nil, format.Config{}, format.Values{
		"name":  "Ada",
		"count": 3,
		"badge": ast.Tag{Name: "$code", Children: []ast.Node{ast.Literal("beta")}},
	})
	require.NoError(t, err)
	require.Equal(t, []ast.Node{
		ast.Literal("Hello, Ada! "),
		ast.Tag{Name: "$b", Children: []ast.Node{ast.Literal("3 new")}},
		ast.Tag{Name: "$code", Children: []ast.Node{ast.Literal("beta")}},
	}, got)

	t.Run("user hook returning nodes", func(t *testing.T) {
		t.Parallel()

		hooked := []ast.Node{ast.Tag{Name: "em", Children: []ast.Node{ast.Literal("hi")}}}
		got, err := format.Bind(format.NewASTBuilder, hooked, "en", nil, format.Config{}, format.Values{
			"em": func(children []ast.Node) []ast.Node {
				return []ast.Node{ast.Tag{Name: "$i", Children: children}}
			},
		})
		require.NoError(t, err)
		require.Equal(t, []ast.Node{ast.Tag{Name: "$i", Children: []ast.Node{ast.Literal("hi")}}}, got)
	})
}

func TestFormatters(t *testing.T) {
	t.Parallel()

	t.Run("reuses cached formatters", func(t *testing.T) {
		t.Parallel()

		f := format.NewFormatters()
		for range 3 {
			s, err := f.FormatNumber("en", format.NumberStyle{Kind: format.Percent}, 0.5)
			require.NoError(t, err)
			require.Equal(t, "50%", s)
		}
		require.Equal(t, 1, f.Len())

		_, err := f.FormatNumber("de", format.NumberStyle{Kind: format.Percent}, 0.5)
		require.NoError(t, err)
		require.Equal(t, 2, f.Len())

		f.Clear()
		require.Zero(t, f.Len())
	})

	t.Run("bounded", func(t *testing.T) {
		t.Parallel()

		f := format.NewFormatters(format.WithMaxEntries(1))
		_, err := f.FormatNumber("en", format.NumberStyle{}, 1)
		require.NoError(t, err)
		_, err = f.FormatNumber("fr", format.NumberStyle{}, 1)
		require.NoError(t, err)
		require.Equal(t, 1, f.Len())
	})

	t.Run("locale format override", func(t *testing.T) {
		t.Parallel()

		iso := format.NewLocaleFormat(format.WithDateLayouts("2006-01-02", "2006-01-02", "2006-01-02", "2006-01-02"))
		f := format.NewFormatters(format.WithLocaleFormat("en", iso))

		when := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)
		require.Equal(t, "2024-03-15", f.FormatDate("en-US", format.DateStyle{Length: format.Short}, nil, when))
		require.Equal(t, "15/03/2024", f.FormatDate("en-GB", format.DateStyle{Length: format.Short}, nil, when))
	})

	t.Run("concurrent use", func(t *testing.T) {
		t.Parallel()

		f := format.NewFormatters()
		var wg sync.WaitGroup
		for range 16 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				s, err := f.FormatNumber("en", format.NumberStyle{Kind: format.Integer}, 1234.4)
				assert.NoError(t, err)
				assert.Equal(t, "1,234", s)
			}()
		}
		wg.Wait()
		require.Equal(t, 1, f.Len())
	})
}
