// Package metatags generates HTML meta elements from document metadata and extracts them from
// existing HTML.
package metatags

import (
	"html/template"
	"strings"
)

// MetaTag is a single HTML meta element.
type MetaTag struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

// Groups holds rendered meta elements grouped by the platform they are meant for. Each field is
// the concatenation of the elements routed to it, in the order they were added.
type Groups struct {
	Apple   string `json:"apple"`
	Primary string `json:"primary"`
	OG      string `json:"og"`
	MS      string `json:"ms"`
	Twitter string `json:"twitter"`
}

// Recognized meta names, per group, in the order Generate emits them.
var (
	AppleTags   = []string{"apple-mobile-web-app-capable", "apple-mobile-web-app-status-bar-style", "apple-mobile-web-app-title"}
	PrimaryTags = []string{"author", "description", "keywords", "viewport"}
	OGTags      = []string{"og:title", "og:description", "og:image", "og:url", "og:type"}
	MSTags      = []string{"msapplication-TileColor", "msapplication-TileImage"}
	TwitterTags = []string{"twitter:card", "twitter:site", "twitter:title", "twitter:description", "twitter:image"}
)

// Render formats a meta element. Only double quotes in content are escaped (as &quot;); name is
// written as is.
func Render(name, content string) string {
	return `<meta name="` + name + `" content="` + strings.ReplaceAll(content, `"`, "&quot;") + `">`
}

// Generate renders the recognized meta names present in m. Within a group, elements follow the
// order of the group's tag list and are separated by newlines.
func Generate(m map[string]string) Groups {
	var g Groups
	g.Apple = generateTags(m, AppleTags)
	g.Primary = generateTags(m, PrimaryTags)
	g.OG = generateTags(m, OGTags)
	g.MS = generateTags(m, MSTags)
	g.Twitter = generateTags(m, TwitterTags)
	return g
}

func generateTags(m map[string]string, names []string) string {
	var tags []string
	for _, name := range names {
		if content, ok := m[name]; ok {
			tags = append(tags, Render(name, content))
		}
	}
	return strings.Join(tags, "\n")
}

// AddCustomTag renders a meta element and appends it to the group its name belongs to: names
// starting with "apple" go to Apple, "msapplication" to MS, "og:" to OG, "twitter:" to Twitter and
// everything else to Primary. No separator is added and repeated tags are kept.
func (g *Groups) AddCustomTag(name, content string) {
	tag := Render(name, content)
	switch {
	case strings.HasPrefix(name, "apple"):
		g.Apple += tag
	case strings.HasPrefix(name, "msapplication"):
		g.MS += tag
	case strings.HasPrefix(name, "og:"):
		g.OG += tag
	case strings.HasPrefix(name, "twitter:"):
		g.Twitter += tag
	default:
		g.Primary += tag
	}
}

// String returns all groups separated by newlines, in the order apple, primary, og, ms, twitter.
func (g Groups) String() string {
	return strings.Join([]string{g.Apple, g.Primary, g.OG, g.MS, g.Twitter}, "\n")
}

// HTML is like String, but skips empty groups and returns the result as template.HTML for use in
// page templates.
func (g Groups) HTML() template.HTML {
	var parts []string
	for _, s := range []string{g.Apple, g.Primary, g.OG, g.MS, g.Twitter} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return template.HTML(strings.Join(parts, "\n"))
}

// IsEmpty reports whether no group has any content.
func (g Groups) IsEmpty() bool {
	return g == Groups{}
}
