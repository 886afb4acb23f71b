// Package metagen extracts metadata from the front matter of documents and turns it into HTML meta
// tags. It also serves and checks sites made of Markdown documents with front matter.
package metagen

import (
	"context"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"

	"github.com/sourcegraph/metagen/frontmatter"
	"github.com/sourcegraph/metagen/metadata"
	"github.com/sourcegraph/metagen/metatags"
)

// Result is the metadata of a document together with what is derived from it.
type Result struct {
	Metadata metadata.Metadata `json:"metadata"`
	Keywords []string          `json:"keywords"`
	Tags     metatags.Groups   `json:"tags"`
}

func newResult(m metadata.Metadata) *Result {
	return &Result{
		Metadata: m,
		Keywords: metadata.Keywords(m),
		Tags:     metatags.Generate(m),
	}
}

// ExtractAndPrepare extracts the front matter of content and derives keywords and meta tags from
// it. The metadata is returned as extracted: required fields are not checked and dates are not
// normalized (see ProcessAndPrepare).
func ExtractAndPrepare(content string) (*Result, error) {
	m, err := frontmatter.Extract(content)
	if err != nil {
		return nil, err
	}
	return newResult(m), nil
}

// ProcessAndPrepare is like ExtractAndPrepare, but runs the extracted metadata through
// metadata.Process first.
func ProcessAndPrepare(content string) (*Result, error) {
	m, err := frontmatter.Extract(content)
	if err != nil {
		return nil, err
	}
	processed, err := metadata.Process(m)
	if err != nil {
		return nil, err
	}
	return newResult(processed), nil
}

// ReadAndPrepare reads the file at path and calls ExtractAndPrepare on its contents. A file that is
// empty or contains only whitespace yields an empty result and no error.
func ReadAndPrepare(ctx context.Context, fs http.FileSystem, path string) (*Result, error) {
	return readAndPrepare(ctx, fs, path, ExtractAndPrepare)
}

// ReadAndProcess is like ReadAndPrepare, but calls ProcessAndPrepare.
func ReadAndProcess(ctx context.Context, fs http.FileSystem, path string) (*Result, error) {
	return readAndPrepare(ctx, fs, path, ProcessAndPrepare)
}

func readAndPrepare(ctx context.Context, fs http.FileSystem, path string, prepare func(string) (*Result, error)) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := ReadFile(fs, path)
	if err != nil {
		return nil, metadata.IOError(err)
	}
	if !utf8.Valid(data) {
		return nil, metadata.UTF8Error(errors.Errorf("%s is not valid UTF-8", path))
	}
	content := string(data)
	if strings.TrimSpace(content) == "" {
		return newResult(metadata.Metadata{}), nil
	}
	return prepare(content)
}
