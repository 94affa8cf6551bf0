package format

// Builder accumulates the output of a bound message.
// A fresh Builder is created for every nested scope (message root, tag
// children, tag control), so implementations hold no shared state.
type Builder[R any] interface {
	// PushRichTextTag receives a built-in $ tag with its bound children and control.
	PushRichTextTag(tag string, children, control []R) error
	PushLiteralText(text string)
	PushObject(value any)
	Finish() []R
}

// BuilderFactory creates an empty Builder.
type BuilderFactory[R any] func() Builder[R]

// Hook renders a user placeholder tag such as <link>...</link>. It receives
// the bound children and returns one chunk or a slice of chunks; string
// chunks are pushed as literal text, anything else as an object.
type Hook[R any] func(children []R) any

// Values maps argument names to the values bound into a message.
type Values map[string]any

// Rich-text tags understood by the reference builders.
const (
	TagBold      = "$b"
	TagItalic    = "$i"
	TagStrike    = "$del"
	TagCode      = "$code"
	TagLink      = "$link"
	TagParagraph = "$p"
	TagLineBreak = "$br"
)
