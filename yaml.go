package nest

import (
	"fmt"

	"github.com/goccy/go-yaml"
)

// UnmarshalYAML decodes YAML into the ordered model: mappings become
// Documents, sequences become Arrays. Mapping keys are rendered as strings.
func UnmarshalYAML(data []byte) (any, error) {
	var v any
	if err := yaml.UnmarshalWithOptions(data, &v, yaml.UseOrderedMap()); err != nil {
		return nil, fmt.Errorf("unmarshal yaml: %w", err)
	}
	return fromYAML(v), nil
}

// MarshalYAML encodes v as YAML, preserving Document key order.
func MarshalYAML(v any) ([]byte, error) {
	out, err := yaml.Marshal(toYAML(v))
	if err != nil {
		return nil, fmt.Errorf("marshal yaml: %w", err)
	}
	return out, nil
}

func fromYAML(v any) any {
	switch t := v.(type) {
	case yaml.MapSlice:
		d := make(Document, 0, len(t))
		for _, item := range t {
			d = append(d, Entry{Key: fmt.Sprint(item.Key), Value: fromYAML(item.Value)})
		}
		return d
	case []any:
		a := make(Array, 0, len(t))
		for _, elem := range t {
			a = append(a, fromYAML(elem))
		}
		return a
	default:
		return v
	}
}

func toYAML(v any) any {
	switch t := deref(v).(type) {
	case Document:
		m := make(yaml.MapSlice, 0, len(t))
		for _, e := range t {
			m = append(m, yaml.MapItem{Key: e.Key, Value: toYAML(e.Value)})
		}
		return m
	case Array:
		a := make([]any, 0, len(t))
		for _, elem := range t {
			a = append(a, toYAML(elem))
		}
		return a
	default:
		return v
	}
}
