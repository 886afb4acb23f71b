package markdown

import (
	"bytes"
	"net/url"

	chromahtml "github.com/alecthomas/chroma/formatters/html"
	"github.com/pkg/errors"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"

	"github.com/sourcegraph/metagen/frontmatter"
	"github.com/sourcegraph/metagen/metadata"
)

// Document is a parsed and HTML-rendered Markdown document.
type Document struct {
	// Meta is the document's flattened front matter, or an empty map if it has none.
	Meta metadata.Metadata

	// Format is the front matter format, or 0 if the document has no front matter.
	Format frontmatter.Format

	// Title is taken from the metadata (if it exists) or else from the text content of the first
	// level-1 heading.
	Title string

	// HTML is the rendered Markdown content.
	HTML []byte

	// Tree is the tree of sections (used to show a table of contents).
	Tree []*SectionNode
}

// Options customize how Run parses and HTML-renders the Markdown document.
type Options struct {
	// Base is the base URL (typically including only the path, such as "/" or "/help/") to use when
	// resolving relative links.
	Base *url.URL

	// ContentFilePathToLinkPath converts references to file paths of other content files to the URL
	// path to use in links. For example, ContentFilePathToLinkPath("a/index.md") == "a".
	ContentFilePathToLinkPath func(string) string
}

// New creates a new Markdown converter (the same one used by Run). Code blocks are highlighted
// with CSS classes, so pages need a chroma stylesheet.
func New(opt Options) goldmark.Markdown {
	return goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithFormatOptions(chromahtml.WithClasses(true)),
			),
			&extender{Options: opt},
		),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		goldmark.WithRendererOptions(html.WithUnsafe()),
	)
}

// Run parses and HTML-renders a Markdown document (with optional metadata in the front matter).
// A document that starts with a front matter block that cannot be decoded is an error.
func Run(input []byte, opt Options) (*Document, error) {
	doc := Document{Meta: metadata.Metadata{}}
	source := input
	if frontmatter.HasFrontMatter(string(input)) {
		fm, err := frontmatter.Parse(string(input))
		if err != nil {
			return nil, err
		}
		doc.Meta = fm.Metadata
		doc.Format = fm.Format
		source = []byte(fm.Body)
	}

	md := New(opt)
	root := md.Parser().Parse(text.NewReader(source))
	var buf bytes.Buffer
	if err := md.Renderer().Render(&buf, source, root); err != nil {
		return nil, errors.WithMessage(err, "render Markdown")
	}

	doc.HTML = buf.Bytes()
	doc.Tree = newTree(root, source)
	if title := doc.Meta["title"]; title != "" {
		doc.Title = title
	} else {
		doc.Title = getTitle(root, source)
	}
	return &doc, nil
}

func getTitle(root ast.Node, source []byte) string {
	var title string
	_ = ast.Walk(root, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if entering && node.Kind() == ast.KindHeading && node.(*ast.Heading).Level == 1 {
			title = string(RenderText(node, source))
			return ast.WalkStop, nil
		}
		return ast.WalkContinue, nil
	})
	return title
}

// RenderText returns the text content of node and its descendants.
func RenderText(node ast.Node, source []byte) []byte {
	var buf bytes.Buffer
	_ = ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n := n.(type) {
		case *ast.Text:
			buf.Write(n.Segment.Value(source))
			if n.SoftLineBreak() {
				buf.WriteByte(' ')
			}
		case *ast.String:
			buf.Write(n.Value)
		}
		return ast.WalkContinue, nil
	})
	return buf.Bytes()
}
