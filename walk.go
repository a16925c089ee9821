package nest

import "strconv"

// WalkFunc is invoked by Walk once per terminal value, with the value and its
// fully-qualified path from the root: property segments joined with '.',
// array indices rendered as "[i]".
type WalkFunc func(value any, path string)

type walkConfig struct {
	traverseArrays bool
}

// WalkOption configures a Walk call.
type WalkOption func(*walkConfig)

// TraverseArrays makes Walk descend into Array values instead of treating
// them as terminal leaves.
func TraverseArrays() WalkOption {
	return func(c *walkConfig) {
		c.traverseArrays = true
	}
}

// Walk performs a depth-first traversal over source, invoking visit for every
// terminal value reachable from it. Document values are always descended
// into; Array values only when TraverseArrays is given, and are otherwise
// visited whole, as leaves. Traversal follows each composite's own order:
// insertion order for Documents, index order for Arrays.
//
// There is no cycle detection: a self-referential structure does not
// terminate.
func Walk(source any, visit WalkFunc, opts ...WalkOption) {
	var cfg walkConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	switch c := deref(source).(type) {
	case Document:
		walkDocument(c, "", visit, cfg)
	case Array:
		if cfg.traverseArrays {
			walkArray(c, "", visit, cfg)
		} else {
			visit(c, "")
		}
	}
}

func walkDocument(d Document, prefix string, visit WalkFunc, cfg walkConfig) {
	for _, e := range d {
		p := joinKey(prefix, e.Key)
		switch v := deref(e.Value).(type) {
		case Document:
			walkDocument(v, p, visit, cfg)
		case Array:
			if cfg.traverseArrays {
				walkArray(v, p, visit, cfg)
			} else {
				visit(v, p)
			}
		default:
			visit(v, p)
		}
	}
}

// walkArray is only reached with array traversal enabled, so nested arrays
// are descended into unconditionally.
func walkArray(a Array, prefix string, visit WalkFunc, cfg walkConfig) {
	for i, elem := range a {
		p := prefix + "[" + strconv.Itoa(i) + "]"
		switch v := deref(elem).(type) {
		case Document:
			walkDocument(v, p, visit, cfg)
		case Array:
			walkArray(v, p, visit, cfg)
		default:
			visit(v, p)
		}
	}
}

func joinKey(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}
