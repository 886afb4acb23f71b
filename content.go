package metagen

import (
	"net/http"
	"net/url"
	"os"
	pathpkg "path"
	"path/filepath"
	"strings"

	"github.com/sourcegraph/metagen/markdown"
	"github.com/sourcegraph/metagen/metadata"
	"github.com/sourcegraph/metagen/metatags"
)

// Page is a Markdown document with front matter. To create a Page, use one of the Site methods.
type Page struct {
	Path        string            // the canonical URL path (without ".md" or "/index.md")
	FilePath    string            // the filename on disk
	Data        []byte            // the page's file contents
	Doc         markdown.Document // the Markdown doc
	Breadcrumbs []Breadcrumb      // trail from the site root to this page

	// Metadata is the page's metadata. If the site processes metadata and processing succeeded, it
	// is the processed metadata; otherwise it is the front matter as extracted.
	Metadata metadata.Metadata
	Keywords []string
	Tags     metatags.Groups

	// ProcessError is the error from processing the metadata, if any. The page is still usable.
	ProcessError error
}

// Result returns the page's metadata, keywords and meta tags.
func (p *Page) Result() *Result {
	return &Result{Metadata: p.Metadata, Keywords: p.Keywords, Tags: p.Tags}
}

// Slug returns the page's slug: the "slug" metadata value if set, or else the slug derived from
// its title. It returns "" if the page has neither.
func (p *Page) Slug() string {
	if slug := p.Metadata["slug"]; slug != "" {
		return slug
	}
	if title := p.Metadata["title"]; title != "" {
		return metadata.Slug(title)
	}
	return ""
}

// contentFilePathToPath maps a content file path to the URL path of its page: "a/b.md" and
// "a/b/index.md" are both "a/b" (relative to the site base), and "index.md" is "".
func contentFilePathToPath(filePath string) string {
	p := strings.TrimSuffix(filePath, ".md")
	switch {
	case p == "index":
		return ""
	case strings.HasSuffix(p, "/index"):
		return p[:len(p)-len("/index")]
	}
	return p
}

// resolveAndReadAll finds the content file for a URL path and reads it. The path names either a
// Markdown file (without its extension) or a directory with an index.md file.
func resolveAndReadAll(fs http.FileSystem, path string) (filePath string, data []byte, err error) {
	candidates := []string{path + ".md"}
	if pathpkg.Base(path) != "index" {
		candidates = append(candidates, pathpkg.Join(path, "index.md"))
	}
	err = &os.PathError{Op: "resolve", Path: path, Err: os.ErrNotExist}
	for _, filePath = range candidates {
		if isDir(fs, filePath) {
			continue
		}
		data, err = ReadFile(fs, filePath)
		if !os.IsNotExist(err) {
			break
		}
	}
	return filePath, data, err
}

// Breadcrumb is one entry in the trail of links from the site root to a page.
type Breadcrumb struct {
	Label    string
	URL      string
	IsActive bool // whether this is the page itself
}

// makeBreadcrumbs returns the breadcrumbs for the page at path: the site root, then one entry per
// path segment. The page's own entry is labeled with its title, if it has one. The root page has
// no breadcrumbs.
func makeBreadcrumbs(base *url.URL, path, title string) []Breadcrumb {
	if path == "" {
		return nil
	}
	crumbs := []Breadcrumb{{Label: "Home", URL: base.Path}}
	segments := strings.Split(path, "/")
	for i, segment := range segments {
		crumbs = append(crumbs, Breadcrumb{
			Label: segment,
			URL:   base.ResolveReference(&url.URL{Path: strings.Join(segments[:i+1], "/")}).Path,
		})
	}
	last := &crumbs[len(crumbs)-1]
	last.IsActive = true
	if title != "" {
		last.Label = title
	}
	return crumbs
}

func isContentPage(path string) bool {
	return filepath.Ext(path) == ".md"
}

// IsContentAsset reports whether the file in the site contents file system is a content asset
// (i.e., not a Markdown file). It typically matches .png, .gif, and .svg files.
func IsContentAsset(urlPath string) bool {
	return filepath.Ext(urlPath) != "" && !isContentPage(urlPath)
}
