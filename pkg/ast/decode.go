package ast

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"slices"
	"strconv"
	"strings"
)

// object is a decoded JSON object that remembers its key order.
type object struct {
	values map[string]any
	keys   []string
}

func (o *object) get(key string) (any, bool) {
	v, ok := o.values[key]
	return v, ok
}

// MarshalJSON writes the object's members in their original order.
func (o *object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range o.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		v, err := json.Marshal(o.values[key])
		if err != nil {
			return nil, err
		}
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Decode parses a JSON message tree in compact or full form.
// Option order is preserved as written.
func Decode(data []byte) ([]Node, error) {
	raw, err := readJSON(data)
	if err != nil {
		return nil, err
	}
	return FromValue(raw)
}

// FromValue converts a generically decoded tree (from JSON, YAML, CBOR or
// hand-built []any values) into compact nodes. Compact and full-form nodes
// may be mixed freely. Options decoded from plain maps are sorted
// canonically since the source order is lost.
func FromValue(v any) ([]Node, error) {
	switch t := v.(type) {
	case nil:
		return nil, nil
	case string:
		return []Node{Literal(t)}, nil
	case []Node:
		return t, nil
	case Nodes:
		return []Node(t), nil
	case []FullNode:
		return CompressAll(t)
	case []any:
		return decodeList(t)
	default:
		// A single node outside of a list.
		n, err := decodeNode(v)
		if err != nil {
			return nil, err
		}
		return []Node{n}, nil
	}
}

func readJSON(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	v, err := readValue(dec)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedNode, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: trailing data after message", ErrMalformedNode)
	}
	return v, nil
}

func readValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	delim, ok := tok.(json.Delim)
	if !ok {
		return tok, nil
	}

	switch delim {
	case '[':
		arr := []any{}
		for dec.More() {
			v, err := readValue(dec)
			if err != nil {
				return nil, err
			}
			arr = append(arr, v)
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return arr, nil
	case '{':
		obj := &object{values: make(map[string]any)}
		for dec.More() {
			keyTok, err := dec.Token()
			if err != nil {
				return nil, err
			}
			key, ok := keyTok.(string)
			if !ok {
				return nil, fmt.Errorf("unexpected object key %v", keyTok)
			}
			v, err := readValue(dec)
			if err != nil {
				return nil, err
			}
			if _, dup := obj.values[key]; !dup {
				obj.keys = append(obj.keys, key)
			}
			obj.values[key] = v
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return obj, nil
	default:
		return nil, fmt.Errorf("unexpected delimiter %q", delim)
	}
}

func decodeList(items []any) ([]Node, error) {
	if len(items) == 0 {
		return nil, nil
	}
	nodes := make([]Node, len(items))
	for i, item := range items {
		n, err := decodeNode(item)
		if err != nil {
			return nil, fmt.Errorf("node %d: %w", i, err)
		}
		nodes[i] = n
	}
	return nodes, nil
}

func decodeNode(v any) (Node, error) {
	switch t := v.(type) {
	case string:
		return Literal(t), nil
	case Node:
		return t, nil
	case FullNode:
		return Compress(t)
	case []any:
		return decodeCompact(t)
	case *object, map[string]any, map[any]any:
		return decodeFull(asObject(t))
	default:
		return nil, fmt.Errorf("%w: unexpected %T", ErrMalformedNode, v)
	}
}

func decodeCompact(arr []any) (Node, error) {
	if len(arr) == 0 {
		return nil, fmt.Errorf("%w: empty node array", ErrMalformedNode)
	}
	k, ok := toInt(arr[0])
	if !ok {
		return nil, fmt.Errorf("%w: node kind must be an integer, got %T", ErrMalformedNode, arr[0])
	}
	kind := Kind(k)
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownKind, k)
	}
	if kind == KindPound {
		return Pound{}, nil
	}

	name, err := stringAt(arr, 1, true)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", kind, err)
	}

	switch kind {
	case KindLiteral:
		return Literal(name), nil
	case KindArgument:
		return Argument{Name: name}, nil
	case KindNumber, KindDate, KindTime:
		style, err := stringAt(arr, 2, false)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", kind, err)
		}
		switch kind {
		case KindNumber:
			return Number{Name: name, Style: style}, nil
		case KindDate:
			return Date{Name: name, Style: style}, nil
		default:
			return Time{Name: name, Style: style}, nil
		}
	case KindSelect:
		opts, err := decodeOptions(at(arr, 2))
		if err != nil {
			return nil, fmt.Errorf("select %q: %w", name, err)
		}
		return Select{Name: name, Options: opts}, nil
	case KindPlural:
		opts, err := decodeOptions(at(arr, 2))
		if err != nil {
			return nil, fmt.Errorf("plural %q: %w", name, err)
		}
		offset := 0
		if raw := at(arr, 3); raw != nil {
			if offset, ok = toInt(raw); !ok {
				return nil, fmt.Errorf("%w: plural %q offset must be an integer", ErrMalformedNode, name)
			}
		}
		pluralType, err := decodePluralType(at(arr, 4))
		if err != nil {
			return nil, fmt.Errorf("plural %q: %w", name, err)
		}
		return Plural{Name: name, Options: opts, Offset: offset, Type: pluralType}, nil
	default:
		children, err := decodeArm(at(arr, 2))
		if err != nil {
			return nil, fmt.Errorf("tag %q children: %w", name, err)
		}
		control, err := decodeArm(at(arr, 3))
		if err != nil {
			return nil, fmt.Errorf("tag %q control: %w", name, err)
		}
		return Tag{Name: name, Children: children, Control: control}, nil
	}
}

func decodeFull(obj *object) (Node, error) {
	rawType, ok := obj.get("type")
	if !ok {
		return nil, fmt.Errorf("%w: full-form node without type", ErrMalformedNode)
	}
	k, ok := toInt(rawType)
	if !ok {
		return nil, fmt.Errorf("%w: node type must be an integer, got %T", ErrMalformedNode, rawType)
	}
	kind := Kind(k)
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownKind, k)
	}

	value, _ := obj.get("value")
	name, _ := value.(string)
	styleRaw, _ := obj.get("style")
	style, _ := styleRaw.(string)

	switch kind {
	case KindLiteral:
		return Literal(name), nil
	case KindArgument:
		return Argument{Name: name}, nil
	case KindNumber:
		return Number{Name: name, Style: style}, nil
	case KindDate:
		return Date{Name: name, Style: style}, nil
	case KindTime:
		return Time{Name: name, Style: style}, nil
	case KindSelect, KindPlural:
		rawOpts, _ := obj.get("options")
		opts, err := decodeOptions(rawOpts)
		if err != nil {
			return nil, fmt.Errorf("%s %q: %w", kind, name, err)
		}
		if kind == KindSelect {
			return Select{Name: name, Options: opts}, nil
		}
		offset := 0
		if raw, ok := obj.get("offset"); ok && raw != nil {
			if offset, ok = toInt(raw); !ok {
				return nil, fmt.Errorf("%w: plural %q offset must be an integer", ErrMalformedNode, name)
			}
		}
		rawType, _ := obj.get("pluralType")
		pluralType, err := decodePluralType(rawType)
		if err != nil {
			return nil, fmt.Errorf("plural %q: %w", name, err)
		}
		return Plural{Name: name, Options: opts, Offset: offset, Type: pluralType}, nil
	case KindPound:
		return Pound{}, nil
	default:
		rawChildren, _ := obj.get("children")
		children, err := decodeArm(rawChildren)
		if err != nil {
			return nil, fmt.Errorf("tag %q children: %w", name, err)
		}
		rawControl, _ := obj.get("control")
		control, err := decodeArm(rawControl)
		if err != nil {
			return nil, fmt.Errorf("tag %q control: %w", name, err)
		}
		return Tag{Name: name, Children: children, Control: control}, nil
	}
}

func decodeOptions(v any) (Options, error) {
	if v == nil {
		return nil, nil
	}
	switch v.(type) {
	case *object, map[string]any, map[any]any:
	default:
		return nil, fmt.Errorf("%w: options must be an object, got %T", ErrMalformedNode, v)
	}
	obj := asObject(v)
	if len(obj.keys) == 0 {
		return nil, nil
	}
	opts := make(Options, 0, len(obj.keys))
	for _, key := range obj.keys {
		arm, err := decodeArm(obj.values[key])
		if err != nil {
			return nil, fmt.Errorf("option %q: %w", key, err)
		}
		opts = append(opts, Option{Key: key, Value: arm})
	}
	return opts, nil
}

// decodeArm accepts a node list, or a full-form arm wrapper {"value": [...]}.
func decodeArm(v any) ([]Node, error) {
	switch t := v.(type) {
	case nil:
		return nil, nil
	case string:
		return []Node{Literal(t)}, nil
	case []any:
		return decodeList(t)
	case *object, map[string]any, map[any]any:
		obj := asObject(t)
		inner, ok := obj.get("value")
		if !ok {
			return nil, fmt.Errorf("%w: arm object without value", ErrMalformedNode)
		}
		return decodeArm(inner)
	default:
		return nil, fmt.Errorf("%w: unexpected arm %T", ErrMalformedNode, v)
	}
}

func decodePluralType(v any) (PluralType, error) {
	switch t := v.(type) {
	case nil:
		return Cardinal, nil
	case string:
		switch PluralType(t) {
		case Cardinal, "":
			return Cardinal, nil
		case Ordinal:
			return Ordinal, nil
		}
	default:
		// Numeric encodings: 0 = cardinal, 1 = ordinal.
		if n, ok := toInt(v); ok {
			switch n {
			case 0:
				return Cardinal, nil
			case 1:
				return Ordinal, nil
			}
		}
	}
	return "", fmt.Errorf("%w: invalid plural type %v", ErrMalformedNode, v)
}

// asObject normalizes any supported map representation. Maps without a
// recorded order get canonical option ordering.
func asObject(v any) *object {
	switch t := v.(type) {
	case *object:
		return t
	case map[string]any:
		obj := &object{values: t, keys: make([]string, 0, len(t))}
		for k := range t {
			obj.keys = append(obj.keys, k)
		}
		SortOptionKeys(obj.keys)
		return obj
	case map[any]any:
		values := make(map[string]any, len(t))
		for k, val := range t {
			values[fmt.Sprint(k)] = val
		}
		return asObject(values)
	default:
		return &object{values: map[string]any{}}
	}
}

func at(arr []any, i int) any {
	if i < len(arr) {
		return arr[i]
	}
	return nil
}

func stringAt(arr []any, i int, required bool) (string, error) {
	v := at(arr, i)
	if v == nil {
		if required {
			return "", fmt.Errorf("%w: missing element %d", ErrMalformedNode, i)
		}
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: element %d must be a string, got %T", ErrMalformedNode, i, v)
	}
	return s, nil
}

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int8:
		return int(n), true
	case int16:
		return int(n), true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case uint:
		return int(n), true
	case uint8:
		return int(n), true
	case uint16:
		return int(n), true
	case uint32:
		return int(n), true
	case uint64:
		return int(n), true
	case float32:
		return floatToInt(float64(n))
	case float64:
		return floatToInt(n)
	case Kind:
		return int(n), true
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return int(i), true
		}
		if f, err := strconv.ParseFloat(string(n), 64); err == nil {
			return floatToInt(f)
		}
	}
	return 0, false
}

func floatToInt(f float64) (int, bool) {
	if f != math.Trunc(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return int(f), true
}

var categoryOrder = map[string]int{
	"zero": 0,
	"one":  1,
	"two":  2,
	"few":  3,
	"many": 4,
}

// SortOptionKeys orders arm keys canonically: exact "=N" keys ascending,
// then CLDR categories zero..many, then remaining keys alphabetically,
// with "other" last.
func SortOptionKeys(keys []string) {
	slices.SortFunc(keys, compareOptionKeys)
}

func compareOptionKeys(a, b string) int {
	ra, rb := keyRank(a), keyRank(b)
	if ra != rb {
		return ra - rb
	}
	if ra == 0 {
		fa, errA := strconv.ParseFloat(a[1:], 64)
		fb, errB := strconv.ParseFloat(b[1:], 64)
		if errA == nil && errB == nil && fa != fb {
			if fa < fb {
				return -1
			}
			return 1
		}
	}
	if ra == 1 {
		return categoryOrder[a] - categoryOrder[b]
	}
	return strings.Compare(a, b)
}

func keyRank(key string) int {
	switch {
	case strings.HasPrefix(key, "="):
		return 0
	case key == "other":
		return 3
	default:
		if _, ok := categoryOrder[key]; ok {
			return 1
		}
		return 2
	}
}
