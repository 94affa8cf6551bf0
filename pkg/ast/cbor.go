package ast

import (
	"reflect"

	"github.com/fxamacker/cbor/v2"
)

// encMode uses Core Deterministic Encoding: the same tree always produces
// identical bytes. Map keys are sorted, so option order in CBOR assets is
// canonical rather than source order.
var encMode cbor.EncMode

// decMode decodes any-typed maps as map[string]any so decoded trees can be
// handed straight to FromValue.
var decMode cbor.DecMode

func init() {
	var err error

	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("ast: CBOR encoder initialization failed: " + err.Error())
	}

	decMode, err = cbor.DecOptions{
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
	}.DecMode()
	if err != nil {
		panic("ast: CBOR decoder initialization failed: " + err.Error())
	}
}

// MarshalCBOR writes the object as a CBOR map.
func (o *object) MarshalCBOR() ([]byte, error) {
	return encMode.Marshal(o.values)
}

// EncodeCBOR encodes a message tree in compact form as CBOR.
func EncodeCBOR(nodes []Node) ([]byte, error) {
	return encMode.Marshal(ToValue(nodes))
}

// EncodeDictionaryCBOR encodes a key -> message dictionary as a CBOR map.
func EncodeDictionaryCBOR(dict map[string][]Node) ([]byte, error) {
	values := make(map[string]any, len(dict))
	for key, nodes := range dict {
		values[key] = ToValue(nodes)
	}
	return encMode.Marshal(values)
}

// DecodeCBOR decodes a CBOR message tree in compact or full form.
func DecodeCBOR(data []byte) ([]Node, error) {
	var v any
	if err := decMode.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return FromValue(v)
}

// UnmarshalCBOR decodes CBOR data into v using the package decoder settings.
func UnmarshalCBOR(data []byte, v any) error {
	return decMode.Unmarshal(data, v)
}
