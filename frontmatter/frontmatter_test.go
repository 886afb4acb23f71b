package frontmatter

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/sourcegraph/metagen/metadata"
)

func TestExtract(t *testing.T) {
	tests := map[string]struct {
		input string
		want  metadata.Metadata
	}{
		"yaml": {
			input: "---\ntitle: YAML Test\ndate: 2023-05-20\n---\nContent here",
			want:  metadata.Metadata{"title": "YAML Test", "date": "2023-05-20"},
		},
		"yaml leading whitespace": {
			input: "\n\n  ---  \ntitle: T\n  ---\nbody",
			want:  metadata.Metadata{"title": "T"},
		},
		"yaml crlf": {
			input: "---\r\ntitle: T\r\n---\r\nbody",
			want:  metadata.Metadata{"title": "T"},
		},
		"yaml nested": {
			input: `---
title: Nested
author:
  name: Jane
  contact:
    email: jane@example.com
tags:
  - go
  - yaml
count: 3
draft: false
empty:
---
`,
			want: metadata.Metadata{
				"title":                "Nested",
				"author.name":          "Jane",
				"author.contact.email": "jane@example.com",
				"tags":                 "[go, yaml]",
				"count":                "3",
				"draft":                "false",
				"empty":                "",
			},
		},
		"yaml sequence ignores nested containers": {
			input: "---\nitems:\n  - a\n  - {b: c}\n  - [d]\n  - 4\n---\n",
			want:  metadata.Metadata{"items": "[a, 4]"},
		},
		"yaml flow sequence": {
			input: "---\nkeywords: [one, two]\n---\n",
			want:  metadata.Metadata{"keywords": "[one, two]"},
		},
		"yaml merge key": {
			input: "---\nbase: &base\n  a: 1\n  b: 2\nchild:\n  <<: *base\n  b: 3\n---\n",
			want:  metadata.Metadata{"base.a": "1", "base.b": "2", "child.a": "1", "child.b": "3"},
		},
		"yaml empty block": {
			input: "---\n---\nbody",
			want:  metadata.Metadata{},
		},
		"yaml whitespace block": {
			input: "---\n   \n\n---\nbody",
			want:  metadata.Metadata{},
		},
		"toml": {
			input: "+++\ntitle = \"TOML Test\"\ndate = \"2023-05-20\"\n+++\nContent here",
			want:  metadata.Metadata{"title": "TOML Test", "date": "2023-05-20"},
		},
		"toml nested": {
			input: `+++
title = "Nested"
tags = ["go", "toml"]
numbers = [1, 2]
published = 2023-05-20
updated = 1979-05-27T07:32:00Z
ratio = 1.5
whole = 2.0
draft = true

[author]
name = "Jane"

[author.contact]
email = "jane@example.com"
+++
`,
			want: metadata.Metadata{
				"title":                "Nested",
				"tags":                 "[go, toml]",
				"numbers":              "[1, 2]",
				"published":            "2023-05-20",
				"updated":              "1979-05-27T07:32:00Z",
				"ratio":                "1.5",
				"whole":                "2.0",
				"draft":                "true",
				"author.name":          "Jane",
				"author.contact.email": "jane@example.com",
			},
		},
		"toml empty block": {
			input: "+++\n+++\n",
			want:  metadata.Metadata{},
		},
		"json": {
			input: "{\n\"title\": \"JSON Test\",\n\"date\": \"2023-05-20\"\n}\nContent here",
			want:  metadata.Metadata{"title": "JSON Test", "date": "2023-05-20"},
		},
		"json keeps only top-level strings": {
			input: `{"title": "T", "count": 3, "draft": true, "tags": ["a"], "author": {"name": "Jane"}, "none": null}`,
			want:  metadata.Metadata{"title": "T"},
		},
		"json braces inside strings": {
			input: `{"title": "a } b", "description": "{not} \"nested\""} rest`,
			want:  metadata.Metadata{"title": "a } b", "description": `{not} "nested"`},
		},
		"json empty object": {
			input: "{}",
			want:  metadata.Metadata{},
		},
	}
	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := Extract(test.input)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(test.want, got); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestExtract_priority(t *testing.T) {
	input := "---\ntitle: from yaml\n---\n+++\ntitle = \"from toml\"\nextra = \"x\"\n+++\n"
	doc, err := Parse(input)
	if err != nil {
		t.Fatal(err)
	}
	if doc.Format != YAML {
		t.Errorf("got format %v, want %v", doc.Format, YAML)
	}
	if diff := cmp.Diff(metadata.Metadata{"title": "from yaml"}, doc.Metadata); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestExtract_errors(t *testing.T) {
	tests := map[string]string{
		"no front matter":          "This content has no metadata",
		"empty":                    "",
		"unterminated yaml":        "---\ntitle: T\n",
		"unterminated toml":        "+++\ntitle = \"T\"\n",
		"invalid yaml":             "---\ntitle: [unclosed\n---\n",
		"yaml scalar root":         "---\njust some text\n---\n",
		"invalid toml":             "+++\ntitle = \n+++\n",
		"invalid json":             "{title: T}",
		"unbalanced json":          `{"title": "T"`,
		"json array":               `["a"]`,
		"delimiter not first line": "intro\n---\ntitle: T\n---\n",
	}
	for name, input := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Extract(input)
			if err == nil {
				t.Fatal("got nil error, want error")
			}
			if !metadata.IsKind(err, metadata.KindExtraction) {
				t.Errorf("got %v, want extraction error", err)
			}
			if want := "failed to extract metadata: no valid front matter found"; err.Error() != want {
				t.Errorf("got %q, want %q", err.Error(), want)
			}
		})
	}
}

func TestParse_body(t *testing.T) {
	tests := map[string]struct {
		input      string
		wantFormat Format
		wantBody   string
	}{
		"yaml": {input: "---\ntitle: T\n---\n# Body\n", wantFormat: YAML, wantBody: "# Body\n"},
		"toml": {input: "+++\ntitle = \"T\"\n+++\n# Body\n", wantFormat: TOML, wantBody: "# Body\n"},
		"json": {input: "{\"title\": \"T\"}\n# Body\n", wantFormat: JSON, wantBody: "# Body\n"},
		"eof":  {input: "---\ntitle: T\n---", wantFormat: YAML, wantBody: ""},
	}
	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			doc, err := Parse(test.input)
			if err != nil {
				t.Fatal(err)
			}
			if doc.Format != test.wantFormat {
				t.Errorf("got format %v, want %v", doc.Format, test.wantFormat)
			}
			if doc.Body != test.wantBody {
				t.Errorf("got body %q, want %q", doc.Body, test.wantBody)
			}
		})
	}
}

func TestHasFrontMatter(t *testing.T) {
	tests := map[string]bool{
		"---\ntitle: [broken\n---\n": true,
		"+++\n+++\n":                 true,
		`{"a": 1}`:                   true,
		"# Just a heading":           false,
		"---\nno end":                false,
	}
	for input, want := range tests {
		if got := HasFrontMatter(input); got != want {
			t.Errorf("%q: got %v, want %v", input, got, want)
		}
	}
}

func TestDelimitedBlock(t *testing.T) {
	tests := map[string]struct {
		input     string
		wantBlock string
		wantBody  string
		wantOK    bool
	}{
		"block":          {input: "---\na: 1\nb: 2\n---\nbody", wantBlock: "a: 1\nb: 2", wantBody: "body", wantOK: true},
		"crlf":           {input: "---\r\na: 1\r\n---\r\nbody", wantBlock: "a: 1", wantBody: "body", wantOK: true},
		"padded":         {input: "\n  ---  \na: 1\n ---\n", wantBlock: "a: 1", wantOK: true},
		"empty":          {input: "---\n---\nbody", wantBody: "body", wantOK: true},
		"unterminated":   {input: "---\na: 1\n"},
		"not delimiter":  {input: "---x\na: 1\n---\n"},
		"other format":   {input: "+++\na = 1\n+++\n"},
		"empty document": {input: ""},
	}
	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			block, body, ok := delimitedBlock(test.input, yamlDelimiter)
			if ok != test.wantOK {
				t.Fatalf("got ok %v, want %v", ok, test.wantOK)
			}
			if block != test.wantBlock {
				t.Errorf("got block %q, want %q", block, test.wantBlock)
			}
			if body != test.wantBody {
				t.Errorf("got body %q, want %q", body, test.wantBody)
			}
		})
	}
}
