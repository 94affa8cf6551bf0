package ast

// Kind identifies a node variant. The integer values match the discriminants
// emitted by the message compiler, so compact assets stay binary compatible.
type Kind int

const (
	KindLiteral Kind = iota
	KindArgument
	KindNumber
	KindDate
	KindTime
	KindSelect
	KindPlural
	KindPound
	KindTag
)

var kindNames = [...]string{
	KindLiteral:  "literal",
	KindArgument: "argument",
	KindNumber:   "number",
	KindDate:     "date",
	KindTime:     "time",
	KindSelect:   "select",
	KindPlural:   "plural",
	KindPound:    "pound",
	KindTag:      "tag",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// Valid reports whether k is a known node kind.
func (k Kind) Valid() bool {
	return k >= KindLiteral && k <= KindTag
}

// Node is a compact message tree node.
type Node interface {
	Kind() Kind
}

// Literal is plain text. In compact form it is encoded as a bare string.
type Literal string

// Argument interpolates the value bound to Name.
type Argument struct {
	Name string
}

// Number formats the numeric value bound to Name using Style.
type Number struct {
	Name  string
	Style string
}

// Date formats the date value bound to Name using Style.
type Date struct {
	Name  string
	Style string
}

// Time formats the time-of-day of the value bound to Name using Style.
type Time struct {
	Name  string
	Style string
}

// Option is one arm of a Select or Plural node.
type Option struct {
	Key   string
	Value []Node
}

// Options is an ordered list of arms.
type Options []Option

// Get returns the arm for key.
func (o Options) Get(key string) ([]Node, bool) {
	for _, opt := range o {
		if opt.Key == key {
			return opt.Value, true
		}
	}
	return nil, false
}

// Keys returns the arm keys in order.
func (o Options) Keys() []string {
	keys := make([]string, len(o))
	for i, opt := range o {
		keys[i] = opt.Key
	}
	return keys
}

// Select chooses an arm by exact string match on the value bound to Name.
type Select struct {
	Name    string
	Options Options
}

// PluralType distinguishes cardinal from ordinal plural rules.
type PluralType string

const (
	Cardinal PluralType = "cardinal"
	Ordinal  PluralType = "ordinal"
)

// Plural chooses an arm by exact "=N" match or by CLDR plural category of
// the value bound to Name, minus Offset.
type Plural struct {
	Name    string
	Options Options
	Offset  int
	Type    PluralType
}

// Pound refers to the numeric value of the nearest enclosing Plural.
// It carries no payload; every occurrence shares the zero value.
type Pound struct{}

// Tag is a rich-text tag ($-prefixed name) or a user hook placeholder.
type Tag struct {
	Name     string
	Children []Node
	Control  []Node
}

// IsRichText reports whether the tag is a built-in rich-text tag.
func (t Tag) IsRichText() bool {
	return IsRichTextName(t.Name)
}

// IsRichTextName reports whether name marks a built-in rich-text tag or sentinel.
func IsRichTextName(name string) bool {
	return len(name) > 0 && name[0] == '$'
}

func (Literal) Kind() Kind  { return KindLiteral }
func (Argument) Kind() Kind { return KindArgument }
func (Number) Kind() Kind   { return KindNumber }
func (Date) Kind() Kind     { return KindDate }
func (Time) Kind() Kind     { return KindTime }
func (Select) Kind() Kind   { return KindSelect }
func (Plural) Kind() Kind   { return KindPlural }
func (Pound) Kind() Kind    { return KindPound }
func (Tag) Kind() Kind      { return KindTag }
