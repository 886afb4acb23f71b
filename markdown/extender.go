package markdown

import (
	"bytes"
	"fmt"
	"net/url"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	goldmarkhtml "github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// extender adds site-specific behavior to goldmark: link and image destinations are resolved to
// site URLs, headings get anchor links, and URLs in raw HTML are resolved against the base URL.
type extender struct {
	Options
}

var _ goldmark.Extender = (*extender)(nil)

func (e *extender) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(parser.WithASTTransformers(
		util.Prioritized(&linkResolver{e.Options}, 100),
	))
	m.Renderer().AddOptions(renderer.WithNodeRenderers(
		util.Prioritized(&nodeRenderer{e.Options}, 10),
	))
}

// linkResolver rewrites link and image destinations in the parsed document.
type linkResolver struct {
	Options
}

func (t *linkResolver) Transform(doc *ast.Document, reader text.Reader, pc parser.Context) {
	_ = ast.Walk(doc, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n := node.(type) {
		case *ast.Link:
			n.Destination = t.resolve(n.Destination)
		case *ast.Image:
			n.Destination = t.resolve(n.Destination)
		}
		return ast.WalkContinue, nil
	})
}

// resolve maps a relative destination (usually the file path of another content file) to its URL.
// Absolute URLs and fragment-only destinations are returned unchanged.
func (t *linkResolver) resolve(dest []byte) []byte {
	u, err := url.Parse(string(dest))
	if err != nil || u.IsAbs() || u.Path == "" {
		return dest
	}
	if t.ContentFilePathToLinkPath != nil {
		u.Path = t.ContentFilePathToLinkPath(u.Path)
	}
	if t.Base != nil {
		u = t.Base.ResolveReference(u)
	}
	return []byte(u.String())
}

type nodeRenderer struct {
	Options
}

var _ renderer.NodeRenderer = (*nodeRenderer)(nil)

func (r *nodeRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(ast.KindHeading, r.renderHeading)
	reg.Register(ast.KindHTMLBlock, r.renderHTMLBlock)
	reg.Register(ast.KindRawHTML, r.renderRawHTML)
}

const (
	headingAnchor     = `<a name="%[1]s" class="anchor" href="#%[1]s" rel="nofollow" aria-hidden="true" title="#%[1]s"></a>`
	headingAnchorOnly = `<a name="%s" aria-hidden="true"></a>`
)

func (r *nodeRenderer) renderHeading(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	n := node.(*ast.Heading)
	if !entering {
		fmt.Fprintf(w, "</h%d>\n", n.Level)
		return ast.WalkContinue, nil
	}

	fmt.Fprintf(w, "<h%d", n.Level)
	if n.Attributes() != nil {
		goldmarkhtml.RenderAttributes(w, node, goldmarkhtml.HeadingAttributeFilter)
	}
	_ = w.WriteByte('>')
	if id := GetAttributeID(n); hasSingleChildOfLink(n) {
		// Headings that are links already have somewhere to go.
		fmt.Fprintf(w, headingAnchorOnly, id)
	} else {
		fmt.Fprintf(w, headingAnchor, id)
	}
	return ast.WalkContinue, nil
}

func (r *nodeRenderer) renderHTMLBlock(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	n := node.(*ast.HTMLBlock)
	if entering {
		_, _ = w.Write(r.rewriteHTML(segmentsValue(n.Lines(), source)))
		return ast.WalkContinue, nil
	}
	// The closing "-->" of a comment block is already part of its lines.
	if n.HasClosure() {
		if closure := n.ClosureLine.Value(source); !bytes.Contains(closure, []byte("-->")) {
			_, _ = w.Write(closure)
		}
	}
	return ast.WalkContinue, nil
}

func (r *nodeRenderer) renderRawHTML(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if entering {
		_, _ = w.Write(r.rewriteHTML(segmentsValue(node.(*ast.RawHTML).Segments, source)))
	}
	return ast.WalkSkipChildren, nil
}

func segmentsValue(segments *text.Segments, source []byte) []byte {
	var val []byte
	for i := 0; i < segments.Len(); i++ {
		s := segments.At(i)
		val = append(val, s.Value(source)...)
	}
	return val
}

// rewriteHTML resolves relative URLs in raw HTML against the base URL. Without a base URL, or if
// the HTML can't be tokenized, it is returned unchanged.
func (r *nodeRenderer) rewriteHTML(val []byte) []byte {
	if r.Base == nil {
		return val
	}
	if v, err := rewriteRelativeURLsInHTML(val, r.Options); err == nil {
		return v
	}
	return val
}

// GetAttributeID returns the id attribute of node, or "" if it has none.
func GetAttributeID(node ast.Node) string {
	if attr, ok := node.AttributeString("id"); ok {
		if v, ok := attr.([]byte); ok {
			return string(v)
		}
	}
	return ""
}

// hasSingleChildOfLink reports whether the only content of node (ignoring empty text) is a link.
func hasSingleChildOfLink(node ast.Node) bool {
	var links int
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		switch c := child.(type) {
		case *ast.Text:
			if c.Segment.Len() != 0 {
				return false
			}
		case *ast.Link:
			links++
		default:
			return false
		}
	}
	return links == 1
}
