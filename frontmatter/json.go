package frontmatter

import (
	"encoding/json"
	"strings"

	"github.com/sourcegraph/metagen/metadata"
)

// jsonObject returns the leading JSON object of content (after any leading whitespace) and the
// text after it. The end of the object is found by matching braces, ignoring braces inside string
// literals.
func jsonObject(content string) (object, rest string, ok bool) {
	s := strings.TrimLeft(content, " \t\r\n")
	if !strings.HasPrefix(s, "{") {
		return "", "", false
	}

	var (
		depth    int
		inString bool
		escaped  bool
	)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[:i+1], s[i+1:], true
			}
		}
	}
	return "", "", false
}

// decodeJSON decodes a JSON front matter object. Only top-level fields with string values are
// kept: numbers, booleans, arrays, nested objects and nulls are dropped, and nothing is flattened.
func decodeJSON(object string) (metadata.Metadata, error) {
	var fields map[string]interface{}
	if err := json.Unmarshal([]byte(object), &fields); err != nil {
		return nil, metadata.JSONError(err)
	}
	m := make(metadata.Metadata, len(fields))
	for k, v := range fields {
		if s, ok := v.(string); ok && k != "" {
			m[k] = s
		}
	}
	return m, nil
}
