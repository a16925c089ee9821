package nest

import "fmt"

// Flatten converts source into a single-level ordered mapping from path
// string to leaf value. Arrays are treated as terminal values, not traversed
// into; callers that want per-element entries should use Walk with
// TraverseArrays directly. The result's order is the traversal order of
// source, which makes Hierarchize(Flatten(x)) deterministic.
func Flatten(source any) Document {
	flat := Document{}
	Walk(source, func(value any, path string) {
		flat = append(flat, Entry{Key: path, Value: value})
	})
	return flat
}

// Hierarchize rebuilds a nested structure from a flat path-to-value mapping,
// applying Set for every entry in the mapping's own order. Because Set
// interprets index-looking segments as array indices when creating
// intermediates, flat keys like "a[0].b" or "a.0.b" reconstruct "a" as an
// Array.
//
// For any structure x containing no arrays, Hierarchize(Flatten(x)) is
// structurally equal to x.
func Hierarchize(flat Document) (Document, error) {
	result := Document{}
	for _, e := range flat {
		if err := Set(&result, e.Key, e.Value); err != nil {
			return nil, fmt.Errorf("hierarchize %q: %w", e.Key, err)
		}
	}
	return result, nil
}
