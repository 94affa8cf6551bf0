package ast

import "fmt"

// Compress converts a full-form node into its compact equivalent.
func Compress(full FullNode) (Node, error) {
	switch full.Type {
	case KindLiteral:
		return Literal(full.Value), nil
	case KindArgument:
		return Argument{Name: full.Value}, nil
	case KindNumber:
		return Number{Name: full.Value, Style: full.Style}, nil
	case KindDate:
		return Date{Name: full.Value, Style: full.Style}, nil
	case KindTime:
		return Time{Name: full.Value, Style: full.Style}, nil
	case KindSelect:
		opts, err := compressOptions(full.Options)
		if err != nil {
			return nil, err
		}
		return Select{Name: full.Value, Options: opts}, nil
	case KindPlural:
		opts, err := compressOptions(full.Options)
		if err != nil {
			return nil, err
		}
		pluralType := full.PluralType
		if pluralType == "" {
			pluralType = Cardinal
		}
		return Plural{Name: full.Value, Options: opts, Offset: full.Offset, Type: pluralType}, nil
	case KindPound:
		return Pound{}, nil
	case KindTag:
		children, err := CompressAll(full.Children)
		if err != nil {
			return nil, err
		}
		control, err := CompressAll(full.Control)
		if err != nil {
			return nil, err
		}
		return Tag{Name: full.Value, Children: children, Control: control}, nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownKind, full.Type)
	}
}

// CompressAll compresses a list of full-form nodes.
func CompressAll(full []FullNode) ([]Node, error) {
	if len(full) == 0 {
		return nil, nil
	}
	nodes := make([]Node, len(full))
	for i, f := range full {
		n, err := Compress(f)
		if err != nil {
			return nil, err
		}
		nodes[i] = n
	}
	return nodes, nil
}

func compressOptions(full FullOptions) (Options, error) {
	if len(full) == 0 {
		return nil, nil
	}
	opts := make(Options, len(full))
	for i, f := range full {
		value, err := CompressAll(f.Value)
		if err != nil {
			return nil, fmt.Errorf("option %q: %w", f.Key, err)
		}
		opts[i] = Option{Key: f.Key, Value: value}
	}
	return opts, nil
}

// Hydrate converts a compact node into its full-form equivalent.
// Node implementations from outside this package hydrate to an empty literal.
func Hydrate(node Node) FullNode {
	switch n := node.(type) {
	case Literal:
		return FullNode{Type: KindLiteral, Value: string(n)}
	case Argument:
		return FullNode{Type: KindArgument, Value: n.Name}
	case Number:
		return FullNode{Type: KindNumber, Value: n.Name, Style: n.Style}
	case Date:
		return FullNode{Type: KindDate, Value: n.Name, Style: n.Style}
	case Time:
		return FullNode{Type: KindTime, Value: n.Name, Style: n.Style}
	case Select:
		return FullNode{Type: KindSelect, Value: n.Name, Options: hydrateOptions(n.Options)}
	case Plural:
		return FullNode{
			Type:       KindPlural,
			Value:      n.Name,
			Options:    hydrateOptions(n.Options),
			Offset:     n.Offset,
			PluralType: n.Type,
		}
	case Pound:
		return FullNode{Type: KindPound}
	case Tag:
		return FullNode{
			Type:     KindTag,
			Value:    n.Name,
			Children: HydrateAll(n.Children),
			Control:  HydrateAll(n.Control),
		}
	default:
		return FullNode{Type: KindLiteral}
	}
}

// HydrateAll hydrates a list of compact nodes.
func HydrateAll(nodes []Node) []FullNode {
	if len(nodes) == 0 {
		return nil
	}
	full := make([]FullNode, len(nodes))
	for i, n := range nodes {
		full[i] = Hydrate(n)
	}
	return full
}

func hydrateOptions(opts Options) FullOptions {
	if len(opts) == 0 {
		return nil
	}
	full := make(FullOptions, len(opts))
	for i, o := range opts {
		full[i] = FullOption{Key: o.Key, Value: HydrateAll(o.Value)}
	}
	return full
}

// IsCompressed reports whether v holds a message tree in compact form.
// A bare string is always a compact literal and an object is always full
// form; an array is compact unless its first element is an object.
func IsCompressed(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string, Node, []Node, Nodes:
		return true
	case FullNode, []FullNode, *object, map[string]any, map[any]any:
		return false
	case []any:
		if len(t) == 0 {
			return true
		}
		switch t[0].(type) {
		case []any, string:
			return true
		default:
			return false
		}
	default:
		return false
	}
}
