package metagen

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/tools/godoc/vfs/httpfs"
	"golang.org/x/tools/godoc/vfs/mapfs"

	"github.com/sourcegraph/metagen/metadata"
)

// gifData is GIF image data for a 1x1 transparent pixel.
var gifData, _ = base64.RawStdEncoding.DecodeString("R0lGODlhAQABAIAAAP///wAAACH5BAEAAAAALAAAAAABAAEAAAICRAEAOw")

func TestSite_Handler(t *testing.T) {
	checkResponseStatus := func(t *testing.T, rr *httptest.ResponseRecorder, want int) {
		t.Helper()
		if rr.Code != want {
			t.Errorf("got HTTP status %d, want %d", rr.Code, want)
		}
	}
	checkResponseHTTPOK := func(t *testing.T, rr *httptest.ResponseRecorder) {
		t.Helper()
		checkResponseStatus(t, rr, http.StatusOK)
	}
	checkPageResponse := func(t *testing.T, rr *httptest.ResponseRecorder) {
		t.Helper()
		if got, want := rr.Header().Get("Content-Type"), "text/html; charset=utf-8"; got != want {
			t.Errorf("got Content-Type %q, want %q", got, want)
		}
	}

	site := Site{
		Content: httpfs.New(mapfs.New(map[string]string{
			"index.md":      "---\ntitle: Home\ndescription: The home page\n---\nz [a/b](a/b/index.md)",
			"a/b/index.md":  "---\ntitle: B\n---\ne",
			"a/b/c.md":      "---\ntitle: C\ndate: 2023-05-20\nkeywords: x, y\n---\nd",
			"a/b/img/f.gif": string(gifData),
			"broken.md":     "---\ntitle: [x\n---\n",
		})),
		Base:    &url.URL{Path: "/"},
		Process: true,
		Templates: httpfs.New(mapfs.New(map[string]string{
			"root.html": `<html><head>{{block "head" .}}{{end}}</head><body>{{block "content" .}}empty{{end}}</body></html>`,
			"document.html": `
{{define "head"}}{{with .Content}}<title>{{.Doc.Title}}</title>{{metatags .}}{{end}}{{end}}
{{define "content" -}}
{{with .Content}}
	{{range .Breadcrumbs}}{{.Label}} ({{.URL}}){{if not .IsActive}} / {{end}}{{end}}
	{{markdown .}}
{{else}}
	{{if .PageNotFoundError}}page not found{{end}}
{{end}}
{{- end}}`,
		})),
	}
	handler := site.Handler()

	get := func(t *testing.T, method, path string) *httptest.ResponseRecorder {
		t.Helper()
		rr := httptest.NewRecorder()
		rr.Body = new(bytes.Buffer)
		req, _ := http.NewRequest(method, path, nil)
		handler.ServeHTTP(rr, req)
		return rr
	}

	t.Run("root", func(t *testing.T) {
		rr := get(t, "GET", "/")
		checkResponseHTTPOK(t, rr)
		checkPageResponse(t, rr)
		for _, want := range []string{
			`z <a href="/a/b">a/b</a>`,
			`<title>Home</title>`,
			`<meta name="description" content="The home page">`,
		} {
			if !strings.Contains(rr.Body.String(), want) {
				t.Errorf("got body %q, want contains %q", rr.Body.String(), want)
			}
		}
		if got, want := rr.Header().Get("Cache-Control"), "max-age=60"; got != want {
			t.Errorf("got Cache-Control %q, want %q", got, want)
		}
	})

	t.Run("page", func(t *testing.T) {
		rr := get(t, "GET", "/a/b/c")
		checkResponseHTTPOK(t, rr)
		checkPageResponse(t, rr)
		if want := "Home (/) / a (/a) / b (/a/b) / C (/a/b/c)"; !strings.Contains(rr.Body.String(), want) {
			t.Errorf("got body %q, want contains %q", rr.Body.String(), want)
		}
	})

	t.Run("HEAD", func(t *testing.T) {
		rr := get(t, "HEAD", "/a/b")
		checkResponseHTTPOK(t, rr)
		if rr.Body.Len() != 0 {
			t.Errorf("got body %q, want empty", rr.Body.String())
		}
	})

	t.Run("method not allowed", func(t *testing.T) {
		checkResponseStatus(t, get(t, "POST", "/a/b"), http.StatusMethodNotAllowed)
	})

	t.Run("no cache", func(t *testing.T) {
		rr := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/a/b", nil)
		req.Header.Set("Cache-Control", "no-cache")
		handler.ServeHTTP(rr, req)
		if got, want := rr.Header().Get("Cache-Control"), "max-age=0"; got != want {
			t.Errorf("got Cache-Control %q, want %q", got, want)
		}
	})

	t.Run("index page with trailing slash", func(t *testing.T) {
		rr := get(t, "GET", "/a/b/")
		checkResponseStatus(t, rr, http.StatusMovedPermanently)
		if got, want := rr.Header().Get("Location"), "/a/b"; got != want {
			t.Errorf("got Location %q, want %q", got, want)
		}
	})

	t.Run("non-existent page with trailing slash", func(t *testing.T) {
		checkResponseStatus(t, get(t, "GET", "/a/b/d/"), http.StatusNotFound)
	})

	t.Run("page not found", func(t *testing.T) {
		rr := get(t, "GET", "/doesntexist")
		checkResponseStatus(t, rr, http.StatusNotFound)
		checkPageResponse(t, rr)
		if want := "page not found"; !strings.Contains(rr.Body.String(), want) {
			t.Errorf("got body %q, want contains %q", rr.Body.String(), want)
		}
	})

	t.Run("broken front matter", func(t *testing.T) {
		checkResponseStatus(t, get(t, "GET", "/broken"), http.StatusInternalServerError)
	})

	t.Run("asset", func(t *testing.T) {
		rr := get(t, "GET", "/a/b/img/f.gif")
		checkResponseHTTPOK(t, rr)
		if got, want := rr.Header().Get("Content-Type"), "image/gif"; got != want {
			t.Errorf("got Content-Type %q, want %q", got, want)
		}
	})

	t.Run("json", func(t *testing.T) {
		rr := get(t, "GET", "/a/b/c?format=json")
		checkResponseHTTPOK(t, rr)
		if got, want := rr.Header().Get("Content-Type"), "application/json; charset=utf-8"; got != want {
			t.Errorf("got Content-Type %q, want %q", got, want)
		}
		var result Result
		if err := json.Unmarshal(rr.Body.Bytes(), &result); err != nil {
			t.Fatal(err)
		}
		wantMeta := metadata.Metadata{"title": "C", "date": "2023-05-20", "keywords": "x, y", "slug": "c"}
		if diff := cmp.Diff(wantMeta, result.Metadata); diff != "" {
			t.Errorf("metadata mismatch (-want +got):\n%s", diff)
		}
		if diff := cmp.Diff([]string{"x", "y"}, result.Keywords); diff != "" {
			t.Errorf("keywords mismatch (-want +got):\n%s", diff)
		}
		if want := `<meta name="keywords" content="x, y">`; result.Tags.Primary != want {
			t.Errorf("got tags %q, want %q", result.Tags.Primary, want)
		}
	})

	t.Run("json page not found", func(t *testing.T) {
		checkResponseStatus(t, get(t, "GET", "/doesntexist?format=json"), http.StatusNotFound)
	})
}
