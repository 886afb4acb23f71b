// Package frontmatter extracts the metadata block at the start of a document.
//
// Three formats are recognized, tried in this order:
//
//	---            +++              {
//	title: YAML    title = "TOML"     "title": "JSON"
//	---            +++              }
//
// The first format whose block is present and decodes wins; blocks of different formats are never
// merged. YAML and TOML blocks are flattened into dotted keys. JSON blocks keep only their
// top-level string fields.
package frontmatter

import (
	"strings"

	adrg "github.com/adrg/frontmatter"

	"github.com/sourcegraph/metagen/metadata"
)

// Format identifies a front matter format.
type Format int

const (
	YAML Format = iota + 1
	TOML
	JSON
)

func (f Format) String() string {
	switch f {
	case YAML:
		return "yaml"
	case TOML:
		return "toml"
	case JSON:
		return "json"
	default:
		return "unknown"
	}
}

const (
	yamlDelimiter = "---"
	tomlDelimiter = "+++"
)

// errNoFrontMatter is the message of the extraction error returned when no format matches.
const errNoFrontMatter = "no valid front matter found"

// Document is a document split into its front matter and the remaining body.
type Document struct {
	Format   Format
	Metadata metadata.Metadata
	Body     string
}

// Extract returns the flattened front matter of content.
func Extract(content string) (metadata.Metadata, error) {
	doc, err := Parse(content)
	if err != nil {
		return nil, err
	}
	return doc.Metadata, nil
}

// Parse splits content into its front matter and body. If no format yields a block that decodes,
// it returns an extraction error. A present but empty block yields empty metadata.
func Parse(content string) (*Document, error) {
	if block, body, ok := delimitedBlock(content, yamlDelimiter); ok {
		if n, err := decodeYAML(block); err == nil {
			return &Document{Format: YAML, Metadata: Flatten(n), Body: body}, nil
		}
	}
	if block, body, ok := delimitedBlock(content, tomlDelimiter); ok {
		if n, err := decodeTOML(block); err == nil {
			return &Document{Format: TOML, Metadata: Flatten(n), Body: body}, nil
		}
	}
	if object, body, ok := jsonObject(content); ok {
		if m, err := decodeJSON(object); err == nil {
			return &Document{Format: JSON, Metadata: m, Body: trimLeadingNewline(body)}, nil
		}
	}
	return nil, metadata.ExtractionError(errNoFrontMatter)
}

// HasFrontMatter reports whether content starts with something that looks like a front matter
// block of any format, whether or not it decodes.
func HasFrontMatter(content string) bool {
	if _, _, ok := delimitedBlock(content, yamlDelimiter); ok {
		return true
	}
	if _, _, ok := delimitedBlock(content, tomlDelimiter); ok {
		return true
	}
	_, _, ok := jsonObject(content)
	return ok
}

// delimitedBlock returns the lines between the opening delimiter line, which must be the first
// non-blank line of content, and the next line consisting only of the delimiter. Whitespace around
// the delimiter is ignored.
func delimitedBlock(content, delim string) (block, body string, ok bool) {
	var raw []byte
	capture := func(data []byte, v interface{}) error {
		*v.(*[]byte) = append([]byte(nil), data...)
		return nil
	}
	rest, err := adrg.Parse(strings.NewReader(content), &raw, adrg.NewFormat(delim, delim, capture))
	// Without a complete block the whole input comes back as the body.
	if err != nil || len(rest) == len(content) {
		return "", "", false
	}
	block = strings.TrimSuffix(strings.ReplaceAll(string(raw), "\r\n", "\n"), "\n")
	return block, string(rest), true
}

func trimLeadingNewline(s string) string {
	if strings.HasPrefix(s, "\r\n") {
		return s[2:]
	}
	return strings.TrimPrefix(s, "\n")
}
