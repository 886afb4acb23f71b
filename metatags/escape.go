package metatags

import "strings"

var (
	htmlEscaper = strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&#x27;",
	)
	htmlUnescaper = strings.NewReplacer(
		"&amp;", "&",
		"&lt;", "<",
		"&gt;", ">",
		"&quot;", `"`,
		"&#x27;", "'",
		"&#39;", "'",
		"&#x2F;", "/",
		"&#x2f;", "/",
	)
)

// EscapeHTML escapes the characters &, <, >, " and ' as HTML entities.
func EscapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}

// UnescapeHTML reverses EscapeHTML. It also decodes &#39; and &#x2F; (in either case). Other
// entities are left as is.
func UnescapeHTML(s string) string {
	return htmlUnescaper.Replace(s)
}
