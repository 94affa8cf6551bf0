package render

import (
	"bytes"
	"fmt"
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var (
	md           goldmark.Markdown
	strictPolicy *bluemonday.Policy
	safePolicy   *bluemonday.Policy
	initOnce     sync.Once
)

func initRenderer() {
	initOnce.Do(func() {
		md = goldmark.New(goldmark.WithExtensions(extension.Strikethrough))

		strictPolicy = bluemonday.StrictPolicy()

		// Only what the markdown builder can produce.
		safePolicy = bluemonday.NewPolicy()
		safePolicy.AllowStandardURLs()
		safePolicy.AllowElements("p", "br", "strong", "em", "del", "code")
		safePolicy.AllowAttrs("href").OnElements("a")
		safePolicy.RequireNoFollowOnLinks(true)
	})
}

// HTML converts formatted markdown to sanitized HTML.
// Raw HTML in the input is dropped, links get rel="nofollow".
func HTML(markdown string) (string, error) {
	return HTMLWithPolicy(markdown, nil)
}

// HTMLWithPolicy converts markdown and sanitizes the result with policy.
// A nil policy uses the built-in one.
func HTMLWithPolicy(markdown string, policy *bluemonday.Policy) (string, error) {
	initRenderer()
	if policy == nil {
		policy = safePolicy
	}

	var buf bytes.Buffer
	if err := md.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("render: %w", err)
	}
	return strings.TrimSpace(policy.Sanitize(buf.String())), nil
}

// InlineHTML is HTML without the wrapping paragraph of single-paragraph
// messages, for use inside existing markup.
func InlineHTML(markdown string) (string, error) {
	out, err := HTML(markdown)
	if err != nil {
		return "", err
	}
	if strings.HasPrefix(out, "<p>") && strings.HasSuffix(out, "</p>") && strings.Count(out, "<p>") == 1 {
		out = strings.TrimSuffix(strings.TrimPrefix(out, "<p>"), "</p>")
	}
	return out, nil
}

// Text converts formatted markdown to plain text, dropping all markup.
func Text(markdown string) (string, error) {
	initRenderer()

	var buf bytes.Buffer
	if err := md.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("render: %w", err)
	}
	return strings.TrimSpace(html.UnescapeString(strictPolicy.Sanitize(buf.String()))), nil
}
