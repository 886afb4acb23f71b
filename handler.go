package metagen

import (
	"encoding/json"
	"net/http"
	"os"
	pathpkg "path"
	"strings"
)

const (
	cacheMaxAge0     = "max-age=0"
	cacheMaxAgeShort = "max-age=60"
	cacheMaxAgeLong  = "max-age=300"
)

// Handler returns an http.Handler that serves the site under its base path. Pages are rendered
// with the site templates, or returned as JSON (their metadata, keywords and meta tags) when the
// "format" query parameter is "json". Other content files, such as images, are served as is.
func (s *Site) Handler() http.Handler {
	basePath := s.base().Path
	if !strings.HasSuffix(basePath, "/") {
		basePath += "/"
	}
	h := &siteHandler{site: s, basePath: basePath, assets: http.FileServer(s.Content)}

	mux := http.NewServeMux()
	mux.Handle(basePath, http.StripPrefix(basePath, h))
	return mux
}

type siteHandler struct {
	site     *Site
	basePath string
	assets   http.Handler
}

// setCacheControl sets the Cache-Control response header, unless the client asked for a fresh
// copy.
func setCacheControl(w http.ResponseWriter, r *http.Request, cacheControl string) {
	if r.Header.Get("Cache-Control") == "no-cache" {
		cacheControl = cacheMaxAge0
	}
	w.Header().Set("Cache-Control", cacheControl)
}

func (h *siteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" && r.Method != "HEAD" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	if IsContentAsset(r.URL.Path) {
		setCacheControl(w, r, cacheMaxAgeLong)
		h.assets.ServeHTTP(w, requestWithURLPath(r, "/"+r.URL.Path))
		return
	}

	data := &PageData{PagePath: r.URL.Path}
	page, err := h.site.ResolvePage(r.Context(), r.URL.Path)
	switch {
	case err == nil && strings.HasSuffix(r.URL.Path, "/"):
		http.Redirect(w, r, pathpkg.Join(h.basePath, strings.TrimSuffix(r.URL.Path, "/")), http.StatusMovedPermanently)
		return
	case err == nil:
		data.Content = page
	case os.IsNotExist(err):
		data.PageNotFoundError = true
	default:
		w.Header().Set("Cache-Control", cacheMaxAge0)
		http.Error(w, "content error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	if r.URL.Query().Get("format") == "json" {
		h.serveJSON(w, r, data)
	} else {
		h.serveHTML(w, r, data)
	}
}

func (h *siteHandler) serveJSON(w http.ResponseWriter, r *http.Request, data *PageData) {
	if data.Content == nil {
		w.Header().Set("Cache-Control", cacheMaxAge0)
		http.Error(w, "page not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	setCacheControl(w, r, cacheMaxAgeShort)
	if r.Method == "GET" {
		_ = json.NewEncoder(w).Encode(data.Content.Result())
	}
}

func (h *siteHandler) serveHTML(w http.ResponseWriter, r *http.Request, data *PageData) {
	var body []byte
	if r.Method == "GET" {
		var err error
		if body, err = h.site.RenderPage(data); err != nil {
			w.Header().Set("Cache-Control", cacheMaxAge0)
			http.Error(w, "template error: "+err.Error(), http.StatusInternalServerError)
			return
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if data.Content == nil {
		// Not found pages are not cached.
		w.Header().Set("Cache-Control", cacheMaxAge0)
		w.WriteHeader(http.StatusNotFound)
	} else {
		setCacheControl(w, r, cacheMaxAgeShort)
	}
	if r.Method == "GET" {
		_, _ = w.Write(body)
	}
}

func requestWithURLPath(r *http.Request, path string) *http.Request {
	r2 := r.Clone(r.Context())
	r2.URL.Path = path
	return r2
}
