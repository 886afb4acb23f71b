// Package metadata holds the flat document metadata map, the pipeline that normalizes it, and the
// errors returned while extracting and processing it.
package metadata

import (
	"sort"
	"strings"
)

// Metadata is the flattened front matter of a document. Keys are dotted paths into the original
// (possibly nested) front matter, such as "author.name"; values are always strings. Lists are
// stored as a single value of the form "[a, b, c]".
type Metadata map[string]string

// Get returns the value for key and whether it was present.
func (m Metadata) Get(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

// Has reports whether key is present.
func (m Metadata) Has(key string) bool {
	_, ok := m[key]
	return ok
}

// Clone returns a copy of m. The copy is never nil.
func (m Metadata) Clone() Metadata {
	c := make(Metadata, len(m))
	for k, v := range m {
		c[k] = v
	}
	return c
}

// Keys returns the keys of m in lexical order.
func (m Metadata) Keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Keywords splits the "keywords" value on commas and trims the whitespace around each piece.
// Escaped or quoted commas are not special. It returns nil if there is no "keywords" value.
func Keywords(m Metadata) []string {
	v, ok := m["keywords"]
	if !ok {
		return nil
	}
	parts := strings.Split(v, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}
