package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"io/ioutil"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
	"golang.org/x/tools/godoc/vfs/httpfs"
	"golang.org/x/tools/godoc/vfs/mapfs"

	"github.com/sourcegraph/metagen"
)

// runCommand runs the named subcommand with args and returns what it printed.
func runCommand(t *testing.T, name string, args ...string) (string, error) {
	t.Helper()
	cmd := commands.lookup(name)
	if cmd == nil {
		t.Fatalf("no command %q", name)
	}
	if err := cmd.FlagSet.Parse(args); err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	stdout, colorize = &buf, false
	err := cmd.handler(context.Background(), cmd.FlagSet.Args())
	return buf.String(), err
}

const page = `---
title: Hello World
date: 20/05/2023
description: A page
og:title: Hello
---
# Hello
`

func TestExtract(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hello.md")
	writeFile(t, path, page)

	out, err := runCommand(t, "extract", "-process", path)
	if err != nil {
		t.Fatal(err)
	}
	var result metagen.Result
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatal(err)
	}
	if want := "2023-05-20"; result.Metadata["date"] != want {
		t.Errorf("got date %q, want %q", result.Metadata["date"], want)
	}
	if want := "hello-world"; result.Metadata["slug"] != want {
		t.Errorf("got slug %q, want %q", result.Metadata["slug"], want)
	}
}

func TestTags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hello.md")
	writeFile(t, path, page)

	out, err := runCommand(t, "tags", "-tag", "twitter:card=summary", path)
	if err != nil {
		t.Fatal(err)
	}
	want := `<meta name="description" content="A page">
<meta name="og:title" content="Hello">
<meta name="twitter:card" content="summary">
`
	if diff := cmp.Diff(want, out); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestScrape(t *testing.T) {
	path := filepath.Join(t.TempDir(), "page.html")
	writeFile(t, path, `<html><head><meta name="description" content="d"><meta property="og:title" content="T"></head></html>`)

	out, err := runCommand(t, "scrape", "-map", path)
	if err != nil {
		t.Fatal(err)
	}
	var got map[string]string
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(map[string]string{"description": "d", "og:title": "T"}, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestTagFlag(t *testing.T) {
	var f tagFlag
	if err := f.Set("a=b=c"); err != nil {
		t.Fatal(err)
	}
	if err := f.Set("=x"); err == nil {
		t.Error("got nil error for empty name")
	}
	if want := "a=b=c"; f.String() != want {
		t.Errorf("got %q, want %q", f.String(), want)
	}
}

func TestGenerateSite(t *testing.T) {
	site := &metagen.Site{
		Content: httpfs.New(mapfs.New(map[string]string{
			"index.md":           "---\ntitle: Home\n---\nz",
			"Getting Started.md": "---\ntitle: Start\n---\ns",
			"img/a.png":          "png",
		})),
		Templates: httpfs.New(mapfs.New(map[string]string{
			"document.html": `{{markdown .Content}}`,
		})),
	}
	outDir := t.TempDir()
	n, err := generateSite(context.Background(), site, outDir)
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Errorf("got %d pages, want 2", n)
	}
	for path, want := range map[string]string{
		"index.html":                 "<p>z</p>\n",
		"getting-started/index.html": "<p>s</p>\n",
		"img/a.png":                  "png",
	} {
		data, err := ioutil.ReadFile(filepath.Join(outDir, filepath.FromSlash(path)))
		if err != nil {
			t.Error(err)
			continue
		}
		if string(data) != want {
			t.Errorf("%s: got %q, want %q", path, data, want)
		}
	}
}

func TestPrintJSON_highlightError(t *testing.T) {
	var buf bytes.Buffer
	defer func(h func(io.Writer, string, string, string, string) error) { highlight = h }(highlight)
	stdout, colorize = &buf, true
	defer func() { colorize = false }()
	highlight = func(w io.Writer, source, lexer, formatter, style string) error {
		_, _ = io.WriteString(w, "partial")
		return errors.New("formatter failed")
	}

	if err := printJSON(map[string]string{"a": "b"}); err != nil {
		t.Fatal(err)
	}
	if want := "{\n  \"a\": \"b\"\n}\n"; buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
}
