package metatags

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/sourcegraph/metagen/metadata"
)

// Extract returns the meta elements of an HTML document in document order. The name of an element
// is the first present of its name, property and http-equiv attributes. Elements without a name
// or without a content attribute are skipped. Duplicates are kept.
func Extract(htmlContent string) ([]MetaTag, error) {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return nil, metadata.ExtractionError("failed to parse HTML: " + err.Error())
	}
	return ExtractNode(doc), nil
}

// ExtractNode is like Extract, for an already parsed document.
func ExtractNode(doc *html.Node) []MetaTag {
	var tags []MetaTag
	walkMetaElements(doc, func(n *html.Node) {
		name, ok := getAttribute(n, "name")
		if !ok {
			name, ok = getAttribute(n, "property")
		}
		if !ok {
			name, ok = getAttribute(n, "http-equiv")
		}
		content, hasContent := getAttribute(n, "content")
		if ok && hasContent {
			tags = append(tags, MetaTag{Name: name, Content: content})
		}
	})
	return tags
}

// ToMap returns the tags as a name to content map. Later tags with the same name win.
func ToMap(tags []MetaTag) map[string]string {
	m := make(map[string]string, len(tags))
	for _, tag := range tags {
		m[tag.Name] = tag.Content
	}
	return m
}

func walkMetaElements(node *html.Node, fn func(*html.Node)) {
	if node.Type == html.ElementNode && node.DataAtom == atom.Meta {
		fn(node)
	}
	for c := node.FirstChild; c != nil; c = c.NextSibling {
		walkMetaElements(c, fn)
	}
}

func getAttribute(n *html.Node, key string) (string, bool) {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val, true
		}
	}
	return "", false
}
