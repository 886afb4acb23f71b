package metagen

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"strings"
	"sync"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/sourcegraph/metagen/metatags"
)

// Check checks the site content for common problems: metadata that fails processing or the schema,
// pages whose rendered HTML lacks the meta tags generated for them or repeats a meta name, broken
// links, and slugs shared by several pages. Each problem is prefixed with the file path of the
// page it was found in, except for site-wide problems.
func (s *Site) Check(ctx context.Context) (problems []string, err error) {
	pages, err := s.AllPages(ctx)
	if err != nil {
		return nil, err
	}

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		handler = s.Handler()
	)
	for _, page := range pages {
		wg.Add(1)
		go func(page *Page) {
			defer wg.Done()
			pageProblems := s.checkPage(page, handler)
			mu.Lock()
			defer mu.Unlock()
			for _, p := range pageProblems {
				problems = append(problems, page.FilePath+": "+p)
			}
		}(page)
	}
	wg.Wait()

	return append(problems, s.checkSite(pages)...), nil
}

// checkPage renders page and returns the problems found in its metadata and its HTML. Links are
// checked by requesting them from handler.
func (s *Site) checkPage(page *Page, handler http.Handler) (problems []string) {
	if page.ProcessError != nil {
		problems = append(problems, page.ProcessError.Error())
	}
	for _, e := range s.Schema.Validate(page.Metadata) {
		problems = append(problems, e.Error())
	}

	data, err := s.RenderPage(&PageData{PagePath: page.Path, Content: page})
	if err != nil {
		return append(problems, err.Error())
	}
	doc, err := html.Parse(bytes.NewReader(data))
	if err != nil {
		return append(problems, err.Error())
	}
	problems = append(problems, checkMetaTags(page.Tags, metatags.ExtractNode(doc))...)

	walkHTMLDocument(doc, walkHTMLDocumentOptions{
		url: func(urlStr string) {
			if problem := checkLink(urlStr, handler); problem != "" {
				problems = append(problems, problem)
			}
		},
	})
	return problems
}

// checkMetaTags compares the tags generated for a page with those found in its rendered HTML.
func checkMetaTags(want metatags.Groups, rendered []metatags.MetaTag) (problems []string) {
	contents := map[string][]string{}
	for _, tag := range rendered {
		contents[tag.Name] = append(contents[tag.Name], tag.Content)
	}

	generated, err := metatags.Extract(want.String())
	if err != nil {
		return []string{err.Error()}
	}
	for _, tag := range generated {
		if !containsString(contents[tag.Name], tag.Content) {
			problems = append(problems, fmt.Sprintf("missing meta tag %s", tag.Name))
		}
	}

	names := make([]string, 0, len(contents))
	for name := range contents {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if n := len(contents[name]); n > 1 {
			problems = append(problems, fmt.Sprintf("duplicate meta tag %s (%d occurrences)", name, n))
		}
	}
	return problems
}

// checkLink returns a problem if urlStr is a link to a site page or asset that handler does not
// serve. External and same-page links are not checked.
func checkLink(urlStr string, handler http.Handler) string {
	u, err := url.Parse(urlStr)
	if err != nil {
		return fmt.Sprintf("invalid URL %q", urlStr)
	}
	if u.Scheme != "" || u.Host != "" || u.Path == "" {
		return ""
	}
	req, err := http.NewRequest("HEAD", u.Path, nil)
	if err != nil {
		return fmt.Sprintf("invalid request URI %q", urlStr)
	}
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		return fmt.Sprintf("broken link to %s", urlStr)
	}
	return ""
}

func (s *Site) checkSite(pages []*Page) (problems []string) {
	bySlug := map[string][]string{}
	for _, page := range pages {
		slug := page.Slug()
		if slug == "" || (s.CheckIgnoreSlugPattern != nil && s.CheckIgnoreSlugPattern.MatchString(slug)) {
			continue
		}
		bySlug[slug] = append(bySlug[slug], page.FilePath)
	}

	slugs := make([]string, 0, len(bySlug))
	for slug, filePaths := range bySlug {
		if len(filePaths) > 1 {
			slugs = append(slugs, slug)
		}
	}
	sort.Strings(slugs)
	for _, slug := range slugs {
		filePaths := bySlug[slug]
		sort.Strings(filePaths)
		problems = append(problems, fmt.Sprintf("duplicate slug %q (%s)", slug, strings.Join(filePaths, ", ")))
	}
	return problems
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

type walkHTMLDocumentOptions struct {
	url func(url string) // called for each URL encountered
}

func walkHTMLDocument(node *html.Node, opt walkHTMLDocumentOptions) {
	if node.Type == html.ElementNode {
		switch node.DataAtom {
		case atom.A:
			if href, ok := getAttribute(node, "href"); ok {
				opt.url(href)
			}
		case atom.Img:
			if src, ok := getAttribute(node, "src"); ok {
				opt.url(src)
			}
		}
	}

	for c := node.FirstChild; c != nil; c = c.NextSibling {
		walkHTMLDocument(c, opt)
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
