package metagen

import (
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/pkg/errors"
)

// Page templates. The root template is optional; when present, the document template usually
// only defines the blocks that root.html declares.
const (
	rootTemplateName     = "root"
	documentTemplateName = "document"
)

// templateFuncs are available to every template. Page-specific funcs are added by the caller.
func (s *Site) templateFuncs() template.FuncMap {
	return template.FuncMap{
		"url": func(path string) string {
			return s.base().ResolveReference(&url.URL{Path: strings.TrimPrefix(path, "/")}).String()
		},
		"meta": func(page *Page, key string) string {
			return page.Metadata[key]
		},
		"replace":    strings.Replace,
		"trimPrefix": strings.TrimPrefix,
	}
}

// getTemplate parses root.html (if it exists) and then the named template from templatesFS into a
// single template named "root".
func (s *Site) getTemplate(templatesFS http.FileSystem, name string, extraFuncs template.FuncMap) (*template.Template, error) {
	tmpl := template.New(rootTemplateName).Funcs(s.templateFuncs()).Funcs(extraFuncs)
	for _, name := range []string{rootTemplateName, name} {
		path := "/" + name + ".html"
		data, err := ReadFile(templatesFS, path)
		if os.IsNotExist(err) && name == rootTemplateName {
			continue
		} else if err != nil {
			return nil, errors.WithMessage(err, fmt.Sprintf("read template %s", path))
		}
		if tmpl, err = tmpl.Parse(string(data)); err != nil {
			return nil, errors.WithMessage(err, fmt.Sprintf("parse template %s", path))
		}
	}
	return tmpl, nil
}
