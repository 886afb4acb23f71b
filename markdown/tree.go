package markdown

import (
	"strings"

	"github.com/yuin/goldmark/ast"
)

// SectionNode is a section and its children.
type SectionNode struct {
	Title    string         // section title
	URL      string         // section URL (usually an anchor link)
	Level    int            // heading level (1-6)
	Children []*SectionNode // subsections
}

// treeBuilder nests sections by heading level. open holds the chain of sections that a new
// heading may become a child of, outermost first; open[0] is a level-0 root.
type treeBuilder struct {
	open []*SectionNode
}

func (b *treeBuilder) add(sn *SectionNode) {
	for len(b.open) > 1 && b.open[len(b.open)-1].Level >= sn.Level {
		b.open = b.open[:len(b.open)-1]
	}
	parent := b.open[len(b.open)-1]
	parent.Children = append(parent.Children, sn)
	b.open = append(b.open, sn)
}

func newTree(root ast.Node, source []byte) []*SectionNode {
	b := treeBuilder{open: []*SectionNode{{}}}
	_ = ast.Walk(root, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		h, ok := node.(*ast.Heading)
		if !entering || !ok {
			return ast.WalkContinue, nil
		}
		b.add(&SectionNode{
			Title: strings.TrimSpace(string(RenderText(h, source))),
			URL:   sectionURL(h),
			Level: h.Level,
		})
		return ast.WalkSkipChildren, nil
	})
	return b.open[0].Children
}

// sectionURL is the heading's anchor, or the link destination for a heading that is only a link.
func sectionURL(h *ast.Heading) string {
	if hasSingleChildOfLink(h) {
		for child := h.FirstChild(); child != nil; child = child.NextSibling() {
			if link, ok := child.(*ast.Link); ok && len(link.Destination) > 0 {
				return string(link.Destination)
			}
		}
	}
	return "#" + GetAttributeID(h)
}
