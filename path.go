package nest

import (
	"regexp"
	"strings"
)

// Path is an ordered sequence of segments identifying a location in a nested
// structure. Each segment is either a property name or a decimal string
// denoting an array index. Traversal never mutates a Path; recursive steps
// advance over sub-slices, so a caller-supplied Path can be reused.
type Path []string

var segmentPattern = regexp.MustCompile(`[^.\[\]]+`)

// SplitKeys splits a path string strictly on '.'. No bracket syntax is
// interpreted: "a[0]" yields the single segment "a[0]". Empty segments are
// dropped, so an empty or all-separator string yields a zero-length Path.
// This is the grammar used by Has and Get.
func SplitKeys(s string) Path {
	parts := strings.Split(s, ".")
	path := make(Path, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			path = append(path, p)
		}
	}
	return path
}

// SplitPath splits a path string on both '.' and bracket delimiters: every
// maximal run of characters excluding '.', '[' and ']' becomes a segment, so
// "a[0].b" yields ["a", "0", "b"]. An empty or all-separator string yields a
// zero-length Path. This is the grammar used by Set and Delete.
func SplitPath(s string) Path {
	return Path(segmentPattern.FindAllString(s, -1))
}

// isIndex reports whether seg looks like a non-negative integer, i.e. a run
// of decimal digits. Segments that pass are treated as array indices when Set
// creates intermediate containers.
func isIndex(seg string) bool {
	if seg == "" {
		return false
	}
	for i := 0; i < len(seg); i++ {
		if seg[i] < '0' || seg[i] > '9' {
			return false
		}
	}
	return true
}
