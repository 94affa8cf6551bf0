package ast

import "encoding/json"

// Nodes is a message tree that encodes to compact JSON and decodes from
// either compact or full form.
type Nodes []Node

// MarshalJSON encodes the tree in compact form.
func (n Nodes) MarshalJSON() ([]byte, error) {
	return json.Marshal(ToValue(n))
}

// UnmarshalJSON decodes a tree in compact or full form, auto-detected per node.
func (n *Nodes) UnmarshalJSON(data []byte) error {
	nodes, err := Decode(data)
	if err != nil {
		return err
	}
	*n = nodes
	return nil
}

// ToValue converts nodes into their compact generic representation: bare
// strings for literals and []any arrays for everything else.
func ToValue(nodes []Node) []any {
	out := make([]any, len(nodes))
	for i, n := range nodes {
		out[i] = nodeValue(n)
	}
	return out
}

func nodeValue(node Node) any {
	switch n := node.(type) {
	case Literal:
		return string(n)
	case Argument:
		return []any{int(KindArgument), n.Name}
	case Number:
		return styledValue(KindNumber, n.Name, n.Style)
	case Date:
		return styledValue(KindDate, n.Name, n.Style)
	case Time:
		return styledValue(KindTime, n.Name, n.Style)
	case Select:
		return []any{int(KindSelect), n.Name, optionsValue(n.Options)}
	case Plural:
		pluralType := n.Type
		if pluralType == "" {
			pluralType = Cardinal
		}
		return []any{int(KindPlural), n.Name, optionsValue(n.Options), n.Offset, string(pluralType)}
	case Pound:
		return []any{int(KindPound)}
	case Tag:
		return []any{int(KindTag), n.Name, ToValue(n.Children), ToValue(n.Control)}
	default:
		return ""
	}
}

func styledValue(kind Kind, name, style string) []any {
	if style == "" {
		return []any{int(kind), name}
	}
	return []any{int(kind), name, style}
}

func optionsValue(opts Options) *object {
	obj := &object{values: make(map[string]any, len(opts)), keys: make([]string, 0, len(opts))}
	for _, o := range opts {
		if _, dup := obj.values[o.Key]; !dup {
			obj.keys = append(obj.keys, o.Key)
		}
		obj.values[o.Key] = ToValue(o.Value)
	}
	return obj
}
