package metagen

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	pathpkg "path"
	"regexp"
	"strings"

	"github.com/pkg/errors"

	"github.com/sourcegraph/metagen/markdown"
	"github.com/sourcegraph/metagen/metadata"
	"github.com/sourcegraph/metagen/metatags"
)

// Site is a set of Markdown documents with front matter, rendered into HTML pages whose heads carry
// the meta tags generated from that front matter.
type Site struct {
	// Content is the file system containing the Markdown files and assets (e.g., images) embedded
	// in them.
	Content http.FileSystem

	// Templates is the file system containing the Go html/template templates used to render site
	// pages.
	Templates http.FileSystem

	// Base is the base URL (typically including only the path, such as "/" or "/help/") where the
	// site is available.
	Base *url.URL

	// Schema, if set, is the JSON Schema that the metadata of every page is checked against.
	Schema *metadata.Schema

	// CheckIgnoreSlugPattern is a regexp matching slugs that may be shared by several pages.
	CheckIgnoreSlugPattern *regexp.Regexp

	// Process is whether page metadata is run through metadata.Process.
	Process bool
}

// newPage creates a new Page in the site.
func (s *Site) newPage(filePath string, data []byte) (*Page, error) {
	urlPathPrefix := strings.TrimPrefix(pathpkg.Dir(filePath)+"/", "/")
	if urlPathPrefix == "./" {
		urlPathPrefix = ""
	}

	doc, err := markdown.Run(data, markdown.Options{
		Base:                      s.base().ResolveReference(&url.URL{Path: urlPathPrefix}),
		ContentFilePathToLinkPath: contentFilePathToPath,
	})
	if err != nil {
		return nil, errors.WithMessage(err, fmt.Sprintf("run Markdown for %s", filePath))
	}

	page := &Page{
		Path:     contentFilePathToPath(filePath),
		FilePath: filePath,
		Data:     data,
		Doc:      *doc,
		Metadata: doc.Meta,
	}
	if s.Process {
		if processed, err := metadata.Process(doc.Meta); err != nil {
			page.ProcessError = err
		} else {
			page.Metadata = processed
		}
	}
	page.Keywords = metadata.Keywords(page.Metadata)
	page.Tags = metatags.Generate(page.Metadata)
	page.Breadcrumbs = makeBreadcrumbs(s.base(), page.Path, doc.Title)
	return page, nil
}

func (s *Site) base() *url.URL {
	if s.Base == nil {
		return &url.URL{Path: "/"}
	}
	return s.Base
}

// AllPages returns a list of all pages in the site, in breadth-first file system order.
func (s *Site) AllPages(ctx context.Context) ([]*Page, error) {
	var pages []*Page
	err := WalkFileSystem(s.Content, isContentPage, func(path string) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		data, err := ReadFile(s.Content, path)
		if err != nil {
			return err
		}
		page, err := s.newPage(path, data)
		if err != nil {
			return err
		}
		pages = append(pages, page)
		return nil
	})
	return pages, err
}

// ResolvePage looks up the page at the given path (which generally comes from a URL). The path may
// omit the ".md" file extension and the "/index" or "/index.md" suffix.
//
// If the resulting Page's path differs from the path argument, the caller should (if possible)
// communicate a redirect.
func (s *Site) ResolvePage(ctx context.Context, path string) (*Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	filePath, data, err := resolveAndReadAll(s.Content, path)
	if err != nil {
		return nil, err
	}
	return s.newPage(filePath, data)
}

// PageData is the data available to the HTML template used to render a page.
type PageData struct {
	PagePath string // page path requested

	PageNotFoundError bool // whether the requested page was not found

	// Content is the page, when it is found.
	Content *Page
}

// RenderPage renders a page using the templates.
func (s *Site) RenderPage(data *PageData) ([]byte, error) {
	tmpl, err := s.getTemplate(s.Templates, documentTemplateName, template.FuncMap{
		"markdown": func(page *Page) template.HTML {
			return template.HTML(page.Doc.HTML)
		},
		"metatags": func(page *Page) template.HTML {
			return page.Tags.HTML()
		},
		"keywords": func(page *Page) string {
			return strings.Join(page.Keywords, ", ")
		},
	})
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
