package ast

import (
	"bytes"
	"encoding/json"
)

// FullNode is the object form of a node, isomorphic to Node and compatible
// with the trees produced by standard ICU message format tooling.
//
// Value holds the literal text for literals and the argument name for every
// other kind except Pound.
type FullNode struct {
	Value      string      `json:"value,omitempty"`
	Style      string      `json:"style,omitempty"`
	PluralType PluralType  `json:"pluralType,omitempty"`
	Options    FullOptions `json:"options,omitempty"`
	Children   []FullNode  `json:"children,omitempty"`
	Control    []FullNode  `json:"control,omitempty"`
	Type       Kind        `json:"type"`
	Offset     int         `json:"offset,omitempty"`
}

// FullOption is one arm of a full-form Select or Plural.
type FullOption struct {
	Key   string
	Value []FullNode
}

// FullOptions is an ordered list of full-form arms.
// It encodes as {"key": {"value": [...]}, ...} in declaration order.
type FullOptions []FullOption

// MarshalJSON encodes the arms as an object, preserving their order.
func (o FullOptions) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, opt := range o {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(opt.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteString(`:{"value":`)

		value := opt.Value
		if value == nil {
			value = []FullNode{}
		}
		arm, err := json.Marshal(value)
		if err != nil {
			return nil, err
		}
		buf.Write(arm)
		buf.WriteByte('}')
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a node in either full or compact form.
func (n *FullNode) UnmarshalJSON(data []byte) error {
	raw, err := readJSON(data)
	if err != nil {
		return err
	}
	node, err := decodeNode(raw)
	if err != nil {
		return err
	}
	*n = Hydrate(node)
	return nil
}
