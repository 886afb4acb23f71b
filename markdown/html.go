package markdown

import (
	"bytes"
	"io"
	"net/url"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// urlAttributes lists the attribute holding a URL for each element whose URLs are rewritten.
var urlAttributes = map[atom.Atom]string{
	atom.A:      "href",
	atom.Img:    "src",
	atom.Source: "src",
}

// rewriteRelativeURLsInHTML resolves relative URLs in an HTML fragment against opt.Base. The
// fragment is tokenized rather than parsed, so that inline fragments (such as a lone start tag)
// are not closed or otherwise restructured. Tokens without URLs are written unchanged.
func rewriteRelativeURLsInHTML(htmlSource []byte, opt Options) ([]byte, error) {
	resolveURL := func(urlStr string) string {
		u, err := url.Parse(urlStr)
		if err != nil || u.IsAbs() || opt.Base == nil {
			return urlStr
		}
		return opt.Base.ResolveReference(u).String()
	}

	z := html.NewTokenizer(bytes.NewReader(htmlSource))
	var buf bytes.Buffer
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			if z.Err() == io.EOF {
				break
			}
			return nil, z.Err()
		}
		raw := append([]byte(nil), z.Raw()...)
		if tt != html.StartTagToken && tt != html.SelfClosingTagToken {
			buf.Write(raw)
			continue
		}

		tok := z.Token()
		key, ok := urlAttributes[tok.DataAtom]
		if !ok {
			buf.Write(raw)
			continue
		}
		for i, attr := range tok.Attr {
			if attr.Key == key {
				tok.Attr[i].Val = resolveURL(attr.Val)
			}
		}
		buf.WriteString(tok.String())
	}
	return buf.Bytes(), nil
}
