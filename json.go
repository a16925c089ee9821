package nest

import (
	"bytes"
	"fmt"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
)

// Unmarshal decodes JSON into the ordered model: objects become Documents,
// arrays become Arrays, primitives decode as json/v2 decodes them into any.
// Empty objects ({}) produce an empty Document; empty arrays ([]) an empty
// Array.
func Unmarshal(data []byte) (any, error) {
	dec := jsontext.NewDecoder(bytes.NewReader(data))
	return decodeValue(dec)
}

// Marshal encodes v back to JSON. Document and Array implement the json/v2
// marshaler interfaces, so key order survives the round trip.
func Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

// Unmarshalers returns json/v2 unmarshalers that decode into the ordered
// model whenever the target is any, for callers composing their own
// json.Unmarshal options:
//
//	var v any
//	err := json.Unmarshal(data, &v, json.WithUnmarshalers(nest.Unmarshalers()))
func Unmarshalers() *json.Unmarshalers {
	return json.UnmarshalFromFunc(func(dec *jsontext.Decoder, v *any) error {
		switch dec.PeekKind() {
		case '{', '[':
			val, err := decodeValue(dec)
			if err != nil {
				return err
			}
			*v = val
			return nil
		default:
			return json.SkipFunc
		}
	})
}

func decodeValue(dec *jsontext.Decoder) (any, error) {
	switch dec.PeekKind() {
	case '{':
		var d Document
		if err := d.UnmarshalJSONFrom(dec); err != nil {
			return nil, err
		}
		return d, nil
	case '[':
		var a Array
		if err := a.UnmarshalJSONFrom(dec); err != nil {
			return nil, err
		}
		return a, nil
	default:
		var v any
		if err := json.UnmarshalDecode(dec, &v); err != nil {
			return nil, fmt.Errorf("read value: %w", err)
		}
		return v, nil
	}
}

// UnmarshalJSONFrom decodes a JSON object into d, preserving key order.
func (d *Document) UnmarshalJSONFrom(dec *jsontext.Decoder) error {
	if k := dec.PeekKind(); k != '{' {
		return fmt.Errorf("document: unexpected kind %q", k)
	}
	if _, err := dec.ReadToken(); err != nil { // '{'
		return fmt.Errorf("read object open: %w", err)
	}
	res := Document{}
	for dec.PeekKind() != '}' {
		var key string
		if err := json.UnmarshalDecode(dec, &key); err != nil {
			return fmt.Errorf("read object key: %w", err)
		}
		val, err := decodeValue(dec)
		if err != nil {
			return fmt.Errorf("read object value for key %q: %w", key, err)
		}
		res = append(res, Entry{Key: key, Value: val})
	}
	if _, err := dec.ReadToken(); err != nil { // '}'
		return fmt.Errorf("read object close: %w", err)
	}
	*d = res
	return nil
}

// UnmarshalJSONFrom decodes a JSON array into a.
func (a *Array) UnmarshalJSONFrom(dec *jsontext.Decoder) error {
	if k := dec.PeekKind(); k != '[' {
		return fmt.Errorf("array: unexpected kind %q", k)
	}
	if _, err := dec.ReadToken(); err != nil { // '['
		return fmt.Errorf("read array open: %w", err)
	}
	res := Array{}
	for dec.PeekKind() != ']' {
		elem, err := decodeValue(dec)
		if err != nil {
			return fmt.Errorf("read array element: %w", err)
		}
		res = append(res, elem)
	}
	if _, err := dec.ReadToken(); err != nil { // ']'
		return fmt.Errorf("read array close: %w", err)
	}
	*a = res
	return nil
}

// MarshalJSONTo encodes d as a JSON object in entry order.
func (d Document) MarshalJSONTo(enc *jsontext.Encoder) error {
	if err := enc.WriteToken(jsontext.BeginObject); err != nil {
		return fmt.Errorf("write object open: %w", err)
	}
	for _, e := range d {
		if err := enc.WriteToken(jsontext.String(e.Key)); err != nil {
			return fmt.Errorf("write object key %q: %w", e.Key, err)
		}
		if err := json.MarshalEncode(enc, e.Value); err != nil {
			return fmt.Errorf("write object value for key %q: %w", e.Key, err)
		}
	}
	if err := enc.WriteToken(jsontext.EndObject); err != nil {
		return fmt.Errorf("write object close: %w", err)
	}
	return nil
}

// MarshalJSONTo encodes a as a JSON array.
func (a Array) MarshalJSONTo(enc *jsontext.Encoder) error {
	if err := enc.WriteToken(jsontext.BeginArray); err != nil {
		return fmt.Errorf("write array open: %w", err)
	}
	for i, elem := range a {
		if err := json.MarshalEncode(enc, elem); err != nil {
			return fmt.Errorf("write array element %d: %w", i, err)
		}
	}
	if err := enc.WriteToken(jsontext.EndArray); err != nil {
		return fmt.Errorf("write array close: %w", err)
	}
	return nil
}
