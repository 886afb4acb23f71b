package frontmatter

import (
	"strings"

	"github.com/sourcegraph/metagen/metadata"
)

// NodeKind is the kind of a Node.
type NodeKind int

const (
	ScalarNode NodeKind = iota
	SequenceNode
	MappingNode
)

// Node is a decoded front matter value. The YAML and TOML decoders both produce Node trees so that
// a single Flatten handles them.
type Node struct {
	Kind NodeKind

	// Value is the string form of a scalar.
	Value string

	// Items are the elements of a sequence.
	Items []*Node

	// Fields are the entries of a mapping in document order.
	Fields []Field
}

// Field is a single key/value entry of a mapping node.
type Field struct {
	Key   string
	Value *Node
}

// Flatten converts a tree into flat metadata. Nested mappings contribute dotted keys
// ("author.name"). A sequence ends the recursion and is stored as "[a, b, c]", made of the string
// form of its scalar items; mappings and sequences nested inside a sequence are left out. Fields
// with empty keys are skipped, so the resulting keys are never empty.
func Flatten(root *Node) metadata.Metadata {
	m := metadata.Metadata{}
	if root != nil && root.Kind == MappingNode {
		flatten(root, "", m)
	}
	return m
}

func flatten(n *Node, path string, m metadata.Metadata) {
	switch n.Kind {
	case MappingNode:
		for _, f := range n.Fields {
			if f.Key == "" || f.Value == nil {
				continue
			}
			key := f.Key
			if path != "" {
				key = path + "." + f.Key
			}
			flatten(f.Value, key, m)
		}
	case SequenceNode:
		items := make([]string, 0, len(n.Items))
		for _, item := range n.Items {
			if item != nil && item.Kind == ScalarNode {
				items = append(items, item.Value)
			}
		}
		m[path] = "[" + strings.Join(items, ", ") + "]"
	default:
		m[path] = n.Value
	}
}
