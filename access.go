package nest

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrInvalidPath is returned by Set and Delete when the supplied path parses
// to zero segments.
var ErrInvalidPath = errors.New("path has no segments")

// Has reports whether path is present in source. The path string is split on
// '.' only (SplitKeys). A stored nil counts as present; Has is false only
// when a segment is absent or a non-composite value is reached while segments
// remain.
func Has(source any, path string) bool {
	return HasPath(source, SplitKeys(path))
}

// HasPath is Has for a pre-split path.
func HasPath(source any, path Path) bool {
	_, ok := fetch(source, path)
	return ok
}

// Get returns the value at path, or nil when the path is absent. The path
// string is split on '.' only (SplitKeys).
func Get(source any, path string) any {
	return GetPathOr(source, SplitKeys(path), nil)
}

// GetOr returns the value at path, or fallback when the path is absent.
// A stored nil is a present value and is returned as-is, not replaced by
// fallback.
func GetOr(source any, path string, fallback any) any {
	return GetPathOr(source, SplitKeys(path), fallback)
}

// GetPath is Get for a pre-split path.
func GetPath(source any, path Path) any {
	return GetPathOr(source, path, nil)
}

// GetPathOr is GetOr for a pre-split path.
func GetPathOr(source any, path Path, fallback any) any {
	if v, ok := fetch(source, path); ok {
		return v
	}
	return fallback
}

// fetch walks source one segment at a time. The second return distinguishes
// absence from a present nil. Reaching a non-composite value with segments
// remaining is a miss, never an error.
func fetch(v any, path Path) (any, bool) {
	for _, seg := range path {
		switch c := deref(v).(type) {
		case Document:
			var ok bool
			if v, ok = c.Value(seg); !ok {
				return nil, false
			}
		case Array:
			if !isIndex(seg) {
				return nil, false
			}
			i, _ := strconv.Atoi(seg)
			if i >= len(c) {
				return nil, false
			}
			v = c[i]
		default:
			return nil, false
		}
	}
	return v, true
}

// Set assigns value at path inside destination, creating intermediate
// containers on demand. The path string is bracket-aware (SplitPath), so
// "a[0].b" and "a.0.b" address the same location. destination must be a
// *Document or *Array.
//
// When a segment is absent, the intermediate created for it is an Array if
// the next segment looks like a non-negative integer and a Document
// otherwise, so a single call can materialize arbitrarily deep structures
// mixing both. A scalar (or wrong-shaped composite) in the middle of the path
// is overwritten by a freshly created container; the final segment always
// overwrites whatever value is there. Assigning past the end of an Array
// grows it with nil holes.
func Set(destination any, path string, value any) error {
	return SetPath(destination, SplitPath(path), value)
}

// SetPath is Set for a pre-split path.
func SetPath(destination any, path Path, value any) error {
	if len(path) == 0 {
		return fmt.Errorf("set: %w", ErrInvalidPath)
	}
	switch d := destination.(type) {
	case *Document:
		*d = setDocument(*d, path, value)
		return nil
	case *Array:
		if !isIndex(path[0]) {
			return fmt.Errorf("set: segment %q is not an index into the root array", path[0])
		}
		*d = setArray(*d, path, value)
		return nil
	default:
		return fmt.Errorf("set: destination must be *nest.Document or *nest.Array, got %T", destination)
	}
}

// place routes a set step into current, replacing it with a new container
// chosen by the head segment when current is not a composite of the right
// shape.
func place(current any, path Path, value any) any {
	switch c := deref(current).(type) {
	case Document:
		return setDocument(c, path, value)
	case Array:
		if isIndex(path[0]) {
			return setArray(c, path, value)
		}
	}
	if isIndex(path[0]) {
		return setArray(Array{}, path, value)
	}
	return setDocument(Document{}, path, value)
}

func setDocument(d Document, path Path, value any) Document {
	seg := path[0]
	if len(path) == 1 {
		d.Put(seg, value)
		return d
	}
	child, _ := d.Value(seg)
	d.Put(seg, place(child, path[1:], value))
	return d
}

func setArray(a Array, path Path, value any) Array {
	i, _ := strconv.Atoi(path[0])
	for len(a) <= i {
		a = append(a, nil)
	}
	if len(path) == 1 {
		a[i] = value
		return a
	}
	a[i] = place(a[i], path[1:], value)
	return a
}

// Delete removes the value at path from destination and returns it. An
// absent path returns nil without error; absence is a normal outcome. The
// path string is bracket-aware (SplitPath). Deleting an Array element splices
// it out. destination must be a *Document or *Array.
func Delete(destination any, path string) (any, error) {
	return DeletePath(destination, SplitPath(path))
}

// DeletePath is Delete for a pre-split path.
func DeletePath(destination any, path Path) (any, error) {
	if len(path) == 0 {
		return nil, fmt.Errorf("delete: %w", ErrInvalidPath)
	}
	switch d := destination.(type) {
	case *Document:
		removed, doc := deleteDocument(*d, path)
		*d = doc
		return removed, nil
	case *Array:
		removed, arr := deleteArray(*d, path)
		*d = arr
		return removed, nil
	default:
		return nil, fmt.Errorf("delete: destination must be *nest.Document or *nest.Array, got %T", destination)
	}
}

func deleteDocument(d Document, path Path) (any, Document) {
	seg := path[0]
	if len(path) == 1 {
		removed, _ := d.Remove(seg)
		return removed, d
	}
	child, ok := d.Value(seg)
	if !ok {
		return nil, d
	}
	removed, child := deleteChild(child, path[1:])
	d.Put(seg, child)
	return removed, d
}

func deleteArray(a Array, path Path) (any, Array) {
	if !isIndex(path[0]) {
		return nil, a
	}
	i, _ := strconv.Atoi(path[0])
	if i >= len(a) {
		return nil, a
	}
	if len(path) == 1 {
		removed := a[i]
		return removed, append(a[:i], a[i+1:]...)
	}
	removed, child := deleteChild(a[i], path[1:])
	a[i] = child
	return removed, a
}

// deleteChild recurses into a nested container; a non-composite child means
// the path is absent.
func deleteChild(child any, rest Path) (any, any) {
	switch c := deref(child).(type) {
	case Document:
		removed, doc := deleteDocument(c, rest)
		return removed, doc
	case Array:
		removed, arr := deleteArray(c, rest)
		return removed, arr
	default:
		return nil, child
	}
}

// Ensure makes path present in destination: when Has reports it absent, the
// fallback is stored there first. It returns the value at path afterwards,
// which is either its prior value or fallback. A second call with the same
// arguments performs no further mutation.
//
// Ensure composes Has, Set and Get, so it inherits their split grammars: the
// presence check splits on '.' only while the store is bracket-aware.
func Ensure(destination any, path string, fallback any) (any, error) {
	if !Has(destination, path) {
		if err := Set(destination, path, fallback); err != nil {
			return nil, fmt.Errorf("ensure: %w", err)
		}
	}
	return Get(destination, path), nil
}
