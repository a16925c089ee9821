// Package form converts between nested structures and urlencoded form
// payloads: population walks every leaf into a field, submission parsing
// rebuilds the nested shape from field names.
package form

import (
	"fmt"
	"net/url"
	"sort"

	"github.com/calumari/nest"
)

// Encode flattens source into url.Values, one field per leaf. Arrays are
// traversed, so list elements become individually addressable fields like
// "tags[0]". A nil leaf encodes as the empty string.
func Encode(source any) url.Values {
	values := url.Values{}
	nest.Walk(source, func(v any, path string) {
		if v == nil {
			values.Add(path, "")
			return
		}
		values.Add(path, fmt.Sprint(v))
	}, nest.TraverseArrays())
	return values
}

// Decode rebuilds a nested structure from submitted form fields, treating
// each field name as a bracket-aware path. The first value wins for repeated
// fields. Field names are applied in sorted order so the result does not
// depend on map iteration.
func Decode(values url.Values) (nest.Document, error) {
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	doc := nest.Document{}
	for _, name := range names {
		if err := nest.Set(&doc, name, values.Get(name)); err != nil {
			return nil, fmt.Errorf("decode field %q: %w", name, err)
		}
	}
	return doc, nil
}
