package frontmatter

import (
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/sourcegraph/metagen/metadata"
)

// maxYAMLDepth bounds alias expansion so that self-referencing anchors terminate.
const maxYAMLDepth = 64

func decodeYAML(block string) (*Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(block), &doc); err != nil {
		return nil, metadata.YAMLError(err)
	}

	root := &doc
	if root.Kind == yaml.DocumentNode {
		if len(root.Content) == 0 {
			return &Node{Kind: MappingNode}, nil
		}
		root = root.Content[0]
	}
	if root.Kind == 0 {
		// Empty or whitespace-only block.
		return &Node{Kind: MappingNode}, nil
	}

	n := fromYAML(root, 0)
	if n.Kind != MappingNode {
		return nil, metadata.YAMLError(errors.Errorf("front matter must be a mapping (line %d)", root.Line))
	}
	return n, nil
}

func fromYAML(n *yaml.Node, depth int) *Node {
	for n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	if depth > maxYAMLDepth {
		return &Node{Kind: ScalarNode}
	}

	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return &Node{Kind: ScalarNode}
		}
		return fromYAML(n.Content[0], depth+1)

	case yaml.MappingNode:
		// Fields merged in with "<<: *base" come first so that explicit keys override them.
		var merged, fields []Field
		for i := 0; i+1 < len(n.Content); i += 2 {
			k, v := n.Content[i], n.Content[i+1]
			if k.Kind != yaml.ScalarNode {
				continue
			}
			if k.Tag == "!!merge" {
				if base := fromYAML(v, depth+1); base.Kind == MappingNode {
					merged = append(merged, base.Fields...)
				}
				continue
			}
			fields = append(fields, Field{Key: k.Value, Value: fromYAML(v, depth+1)})
		}
		return &Node{Kind: MappingNode, Fields: append(merged, fields...)}

	case yaml.SequenceNode:
		out := &Node{Kind: SequenceNode, Items: make([]*Node, 0, len(n.Content))}
		for _, item := range n.Content {
			out.Items = append(out.Items, fromYAML(item, depth+1))
		}
		return out

	default:
		if n.Tag == "!!null" {
			return &Node{Kind: ScalarNode}
		}
		return &Node{Kind: ScalarNode, Value: n.Value}
	}
}
