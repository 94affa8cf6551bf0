package render_test

import (
	"testing"

	"github.com/microcosm-cc/bluemonday"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/intl/pkg/render"
)

func TestHTML(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "plain text",
			input:    "Hello, world",
			expected: "<p>Hello, world</p>",
		},
		{
			name:     "emphasis",
			input:    "**Hi** *there*",
			expected: "<p><strong>Hi</strong> <em>there</em></p>",
		},
		{
			name:     "strikethrough",
			input:    "~~old~~ new",
			expected: "<p><del>old</del> new</p>",
		},
		{
			name:     "code",
			input:    "run `make`",
			expected: "<p>run <code>make</code></p>",
		},
		{
			name:     "link gets nofollow",
			input:    "[docs](https://example.com)",
			expected: `<p><a href="https://example.com" rel="nofollow">docs</a></p>`,
		},
		{
			name:     "escaped markdown stays literal",
			input:    `\*not bold\*`,
			expected: "<p>*not bold*</p>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := render.HTML(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestHTML_Unsafe(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		input     string
		forbidden string
		kept      string
	}{
		{
			name:      "raw script",
			input:     "Hi <script>alert('xss')</script>",
			forbidden: "<script",
			kept:      "Hi",
		},
		{
			name:      "javascript link",
			input:     "[click](javascript:alert(1))",
			forbidden: "javascript",
			kept:      "click",
		},
		{
			name:      "event handler",
			input:     `<img src="x" onerror="alert(1)">`,
			forbidden: "onerror",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := render.HTML(tt.input)
			require.NoError(t, err)
			assert.NotContains(t, got, tt.forbidden)
			assert.Contains(t, got, tt.kept)
		})
	}
}

func TestHTML_LineBreak(t *testing.T) {
	t.Parallel()

	got, err := render.HTML("first  \nsecond")
	require.NoError(t, err)
	assert.Contains(t, got, "<br")
	assert.Contains(t, got, "second")
}

func TestHTMLWithPolicy(t *testing.T) {
	t.Parallel()

	got, err := render.HTMLWithPolicy("**Hi**", bluemonday.StrictPolicy())
	require.NoError(t, err)
	assert.Equal(t, "Hi", got)
}

func TestInlineHTML(t *testing.T) {
	t.Parallel()

	got, err := render.InlineHTML("**Hi**")
	require.NoError(t, err)
	assert.Equal(t, "<strong>Hi</strong>", got)

	got, err = render.InlineHTML("one\n\ntwo")
	require.NoError(t, err)
	assert.Equal(t, "<p>one</p>\n<p>two</p>", got)
}

func TestText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "strips markup", input: "**Hi** *there*", expected: "Hi there"},
		{name: "keeps entities readable", input: "Tom & Jerry", expected: "Tom & Jerry"},
		{name: "link text", input: "[docs](https://example.com)", expected: "docs"},
		{name: "drops raw html", input: "a <b>b</b>", expected: "a b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := render.Text(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}
