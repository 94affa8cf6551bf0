package format

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"

	"github.com/dmitrymomot/intl/pkg/ast"
)

// Bind walks nodes, substitutes values and drives builders created by
// newBuilder. Nested scopes (tag children and control) get their own builder
// from the same factory, so the output type is preserved through nesting.
// A nil formatters uses DefaultFormatters.
//
// Binding errors are fatal and indicate a mismatch between the message and
// the values supplied by the caller.
func Bind[R any](newBuilder BuilderFactory[R], nodes []ast.Node, locale string, formatters *Formatters, cfg Config, values Values) ([]R, error) {
	if len(nodes) == 1 {
		if lit, ok := nodes[0].(ast.Literal); ok {
			b := newBuilder()
			b.PushLiteralText(string(lit))
			return b.Finish(), nil
		}
	}

	if formatters == nil {
		formatters = defaultFormatters
	}

	bd := &binder[R]{
		newBuilder: newBuilder,
		locale:     locale,
		tag:        language.Make(locale),
		formatters: formatters,
		cfg:        cfg,
		values:     values,
	}
	return bd.bind(nodes, nil)
}

type binder[R any] struct {
	newBuilder BuilderFactory[R]
	formatters *Formatters
	values     Values
	cfg        Config
	locale     string
	tag        language.Tag
}

func (b *binder[R]) bind(nodes []ast.Node, pluralValue *float64) ([]R, error) {
	out := b.newBuilder()
	if err := b.walk(out, nodes, pluralValue); err != nil {
		return nil, err
	}
	return out.Finish(), nil
}

func (b *binder[R]) walk(out Builder[R], nodes []ast.Node, pluralValue *float64) error {
	for _, node := range nodes {
		var err error
		switch n := node.(type) {
		case ast.Literal:
			out.PushLiteralText(string(n))
		case ast.Pound:
			err = b.pound(out, pluralValue)
		case ast.Argument:
			err = b.argument(out, n)
		case ast.Number:
			err = b.number(out, n)
		case ast.Date:
			err = b.dateTime(out, n.Name, n.Style, false)
		case ast.Time:
			err = b.dateTime(out, n.Name, n.Style, true)
		case ast.Select:
			err = b.selectArm(out, n, pluralValue)
		case ast.Plural:
			err = b.pluralArm(out, n)
		case ast.Tag:
			err = b.bindTag(out, n, pluralValue)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// pound is a no-op outside of a plural arm.
func (b *binder[R]) pound(out Builder[R], pluralValue *float64) error {
	if pluralValue == nil {
		return nil
	}
	s, err := b.formatters.FormatNumber(b.locale, NumberStyle{}, *pluralValue)
	if err != nil {
		return err
	}
	out.PushLiteralText(s)
	return nil
}

func (b *binder[R]) argument(out Builder[R], n ast.Argument) error {
	v, ok := b.values[n.Name]
	if !ok {
		if ast.IsRichTextName(n.Name) {
			return nil
		}
		return fmt.Errorf("%w: %q", ErrMissingRequiredValue, n.Name)
	}
	pushValue(out, v)
	return nil
}

func (b *binder[R]) number(out Builder[R], n ast.Number) error {
	v, ok := b.values[n.Name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrMissingRequiredValue, n.Name)
	}
	f, ok := toFloat(v)
	if !ok {
		return fmt.Errorf("%w: %q is %T, expected a number", ErrInvalidFormatValue, n.Name, v)
	}
	s, err := b.formatters.FormatNumber(b.locale, b.cfg.resolveNumberStyle(n.Style), f)
	if err != nil {
		return fmt.Errorf("format %q: %w", n.Name, err)
	}
	out.PushLiteralText(s)
	return nil
}

func (b *binder[R]) dateTime(out Builder[R], name, style string, isTime bool) error {
	v, ok := b.values[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrMissingRequiredValue, name)
	}
	t, ok := toTime(v)
	if !ok {
		return fmt.Errorf("%w: %q is %T, expected a time", ErrInvalidFormatValue, name, v)
	}

	if isTime {
		out.PushLiteralText(b.formatters.FormatTime(b.locale, resolveDateStyle(b.cfg.Time, style), b.cfg.location(), t))
	} else {
		out.PushLiteralText(b.formatters.FormatDate(b.locale, resolveDateStyle(b.cfg.Date, style), b.cfg.location(), t))
	}
	return nil
}

// selectArm matches the value exactly against the option keys, then falls
// back to "other". A nil value selects "other"; an absent one is an error.
func (b *binder[R]) selectArm(out Builder[R], n ast.Select, pluralValue *float64) error {
	v, ok := b.values[n.Name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrMissingRequiredValue, n.Name)
	}
	key := selectorKey(v)
	arm, ok := n.Options.Get(key)
	if !ok {
		arm, ok = n.Options.Get(PluralOther)
	}
	if !ok {
		return fmt.Errorf("%w: %q for %q, expected one of: %s",
			ErrInvalidSelectorValue, key, n.Name, strings.Join(n.Options.Keys(), ", "))
	}
	return b.walk(out, arm, pluralValue)
}

// pluralArm prefers the exact "=N" key over the CLDR category of the value
// minus the offset. The arm is bound with that relative value so # renders it.
func (b *binder[R]) pluralArm(out Builder[R], n ast.Plural) error {
	v, ok := b.values[n.Name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrMissingRequiredValue, n.Name)
	}
	f, ok := toFloat(v)
	if !ok {
		return fmt.Errorf("%w: %q is %T, expected a number", ErrInvalidPluralValue, n.Name, v)
	}
	rel := f - float64(n.Offset)

	arm, ok := n.Options.Get("=" + strconv.FormatFloat(f, 'f', -1, 64))
	if !ok {
		arm, ok = n.Options.Get(pluralCategory(b.tag, n.Type, rel))
	}
	if !ok {
		arm, ok = n.Options.Get(PluralOther)
	}
	if !ok {
		return fmt.Errorf("%w: %v for %q, expected one of: %s",
			ErrInvalidPluralValue, f, n.Name, strings.Join(n.Options.Keys(), ", "))
	}
	return b.walk(out, arm, &rel)
}

func (b *binder[R]) bindTag(out Builder[R], n ast.Tag, pluralValue *float64) error {
	children, err := b.bind(n.Children, pluralValue)
	if err != nil {
		return err
	}
	control, err := b.bind(n.Control, pluralValue)
	if err != nil {
		return err
	}

	if n.IsRichText() {
		return out.PushRichTextTag(n.Name, children, control)
	}

	v, ok := b.values[n.Name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrMissingRequiredValue, n.Name)
	}
	chunks, ok := callHook(v, children)
	if !ok {
		return fmt.Errorf("%w: %q is %T, expected a function", ErrInvalidHookValue, n.Name, v)
	}
	pushChunks(out, chunks)
	return nil
}

// callHook invokes v when it is one of the accepted hook signatures.
func callHook[R any](v any, children []R) (any, bool) {
	switch fn := v.(type) {
	case Hook[R]:
		return fn(children), true
	case func([]R) any:
		return fn(children), true
	case func([]R) []R:
		return fn(children), true
	case func([]R) R:
		return fn(children), true
	case func([]R) string:
		return fn(children), true
	default:
		return nil, false
	}
}

func pushChunks[R any](out Builder[R], chunks any) {
	switch c := chunks.(type) {
	case nil:
	case []R:
		for _, chunk := range c {
			pushChunk(out, chunk)
		}
	case []string:
		for _, s := range c {
			out.PushLiteralText(s)
		}
	case []any:
		for _, chunk := range c {
			pushChunk(out, chunk)
		}
	default:
		pushChunk(out, c)
	}
}

func pushChunk[R any](out Builder[R], chunk any) {
	switch c := chunk.(type) {
	case nil:
	case string:
		out.PushLiteralText(c)
	default:
		out.PushObject(c)
	}
}

// pushValue pushes scalars as text and everything else as an object.
// A nil value renders nothing.
func pushValue[R any](out Builder[R], v any) {
	switch x := v.(type) {
	case nil:
	case string:
		out.PushLiteralText(x)
	case bool, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64, json.Number:
		out.PushLiteralText(fmt.Sprint(x))
	case ast.Node:
		out.PushObject(x)
	case fmt.Stringer:
		out.PushLiteralText(x.String())
	default:
		out.PushObject(x)
	}
}

func selectorKey(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case fmt.Stringer:
		return x.String()
	}
	if f, ok := toFloat(v); ok {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return fmt.Sprint(v)
}

func toFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case int:
		return float64(x), true
	case int8:
		return float64(x), true
	case int16:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case uint:
		return float64(x), true
	case uint8:
		return float64(x), true
	case uint16:
		return float64(x), true
	case uint32:
		return float64(x), true
	case uint64:
		return float64(x), true
	case float32:
		return float64(x), true
	case float64:
		return x, !math.IsNaN(x)
	case json.Number:
		f, err := x.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		return f, err == nil && !math.IsNaN(f)
	default:
		return 0, false
	}
}

// toTime accepts time values, Unix milliseconds and RFC 3339 strings.
func toTime(v any) (time.Time, bool) {
	switch x := v.(type) {
	case time.Time:
		return x, true
	case *time.Time:
		if x == nil {
			return time.Time{}, false
		}
		return *x, true
	case string:
		t, err := time.Parse(time.RFC3339, x)
		return t, err == nil
	}
	f, ok := toFloat(v)
	if !ok || math.IsInf(f, 0) {
		return time.Time{}, false
	}
	return time.UnixMilli(int64(f)), true
}
