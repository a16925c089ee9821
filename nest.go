// Package nest provides access to arbitrarily nested key-value structures:
// reading, writing, deleting, walking, flattening and reconstructing values
// addressed by dotted/bracketed path strings or pre-split path segments.
//
// Unlike map[string]any, the composite types here preserve insertion order,
// so walking a structure, flattening it and rebuilding it are all
// deterministic.
package nest

// Document represents an ordered string-keyed map, defined as an ordered
// collection of key-value pairs. Each pair is represented by an Entry. No
// operation in this package produces duplicate keys; when a Document is built
// by hand with duplicates, the first occurrence of a key wins.
type Document []Entry

// Array represents an ordered list, defined as a slice of values of any type.
type Array []any

// Entry represents a single entry in a Document. It consists of a string key
// and an associated value of any type.
type Entry struct {
	Key   string
	Value any
}

// index returns the position of key in d, or -1 when absent.
func (d Document) index(key string) int {
	for i, e := range d {
		if e.Key == key {
			return i
		}
	}
	return -1
}

// Value returns the value stored under key. The second return reports whether
// the key is present; a stored nil is present and distinct from absence.
func (d Document) Value(key string) (any, bool) {
	if i := d.index(key); i >= 0 {
		return d[i].Value, true
	}
	return nil, false
}

// Keys returns the document's keys in order.
func (d Document) Keys() []string {
	keys := make([]string, len(d))
	for i, e := range d {
		keys[i] = e.Key
	}
	return keys
}

// Put assigns value under key, overwriting an existing entry in place or
// appending a new one.
func (d *Document) Put(key string, value any) {
	if i := d.index(key); i >= 0 {
		(*d)[i].Value = value
		return
	}
	*d = append(*d, Entry{Key: key, Value: value})
}

// Remove deletes key from the document, returning the removed value and
// whether the key was present.
func (d *Document) Remove(key string) (any, bool) {
	i := d.index(key)
	if i < 0 {
		return nil, false
	}
	removed := (*d)[i].Value
	*d = append((*d)[:i], (*d)[i+1:]...)
	return removed, true
}

// deref unwraps pointer forms of the composite types so traversal code can
// treat *Document and Document (and *Array and Array) uniformly.
func deref(v any) any {
	switch p := v.(type) {
	case *Document:
		if p != nil {
			return *p
		}
	case *Array:
		if p != nil {
			return *p
		}
	}
	return v
}
