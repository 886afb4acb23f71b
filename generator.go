package metagen

import (
	"context"
	"fmt"
	pathpkg "path"
	"strings"

	"github.com/mozillazg/go-slugify"
	"github.com/pkg/errors"
)

// Generate renders every page of the site and passes the result to write, along with the page's
// output file path (see OutputPath).
func (s *Site) Generate(ctx context.Context, write func(outputPath string, page *Page, data []byte) error) error {
	pages, err := s.AllPages(ctx)
	if err != nil {
		return err
	}
	seen := make(map[string]string, len(pages))
	for _, page := range pages {
		if err := ctx.Err(); err != nil {
			return err
		}
		outputPath := OutputPath(page.Path)
		if other, ok := seen[outputPath]; ok {
			return fmt.Errorf("%s and %s both generate %s", other, page.FilePath, outputPath)
		}
		seen[outputPath] = page.FilePath

		data, err := s.RenderPage(&PageData{PagePath: page.Path, Content: page})
		if err != nil {
			return errors.WithMessage(err, fmt.Sprintf("render %s", page.FilePath))
		}
		if err := write(outputPath, page, data); err != nil {
			return errors.WithMessage(err, fmt.Sprintf("write %s", outputPath))
		}
	}
	return nil
}

// OutputPath returns the relative file path that the page at the given URL path is generated to.
// Each path segment is slugified, and the page becomes the index.html file of its directory, so
// that links to the page keep working when the output is served statically.
func OutputPath(pagePath string) string {
	if pagePath == "" {
		return "index.html"
	}
	parts := strings.Split(pagePath, "/")
	for i, part := range parts {
		if slug := slugify.Slugify(part); slug != "" {
			parts[i] = slug
		}
	}
	return pathpkg.Join(pathpkg.Join(parts...), "index.html")
}
