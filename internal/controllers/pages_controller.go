package controllers

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"weddingsite/internal/providers"
	"weddingsite/internal/structures"
)

const (
	indexPage = "index.html"
	adminPage = "admin.html"
)

// PublicPages maps the site's page routes to their HTML files.
var PublicPages = map[string]string{
	"/rsvp":     "rsvp.html",
	"/playlist": "playlist.html",
	"/gallery":  "gallery.html",
	"/location": "location.html",
	"/program":  "program.html",
	"/wishlist": "wishlist.html",
	"/pricing":  "pricing.html",
}

// PagesController serves the HTML pages, the public assets and the read-only
// upload roots.
type PagesController struct {
	*ApiController
	publicDir string
}

func NewPagesController(api *ApiController, conf *structures.Config) *PagesController {
	return &PagesController{ApiController: api, publicDir: conf.Site.PublicDir}
}

// Page returns a handler serving one file of the public dir.
func (pc *PagesController) Page(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pc.serveFile(w, r, name, http.StatusOK)
	}
}

func (pc *PagesController) Admin(w http.ResponseWriter, r *http.Request) {
	pc.serveFile(w, r, adminPage, http.StatusOK)
}

// Fallback handles everything no other route claimed: the index at "/",
// existing public assets, and a 404 carrying the index page otherwise. The
// admin page is never reachable through it.
func (pc *PagesController) Fallback(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path == "/" {
		pc.serveFile(w, r, indexPage, http.StatusOK)
		return
	}
	if r.Method == http.MethodGet || r.Method == http.MethodHead {
		rel := strings.TrimPrefix(path.Clean(r.URL.Path), "/")
		if rel != adminPage && filepath.IsLocal(rel) && isFile(filepath.Join(pc.publicDir, rel)) {
			http.ServeFile(w, r, filepath.Join(pc.publicDir, rel))
			return
		}
	}
	pc.notFound(w, r)
}

func (pc *PagesController) serveFile(w http.ResponseWriter, r *http.Request, name string, status int) {
	full := filepath.Join(pc.publicDir, name)
	if !isFile(full) {
		pc.notFound(w, r)
		return
	}
	if status == http.StatusOK {
		http.ServeFile(w, r, full)
		return
	}
	body, err := os.ReadFile(full)
	if err != nil {
		pc.logger.Errorf(providers.TypeApp, "Unable to read page %s: %s", name, err)
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func (pc *PagesController) notFound(w http.ResponseWriter, r *http.Request) {
	index := filepath.Join(pc.publicDir, indexPage)
	if !isFile(index) {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}
	pc.serveFile(w, r, indexPage, http.StatusNotFound)
}

// Static serves files below dir under prefix. Directory listings are refused.
func (pc *PagesController) Static(prefix, dir string) http.Handler {
	files := http.StripPrefix(prefix, http.FileServer(http.Dir(dir)))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rel := strings.TrimPrefix(r.URL.Path, prefix)
		if rel == "" || strings.HasSuffix(rel, "/") || !isFile(filepath.Join(dir, filepath.FromSlash(path.Clean("/"+rel)))) {
			http.NotFound(w, r)
			return
		}
		files.ServeHTTP(w, r)
	})
}

func isFile(name string) bool {
	info, err := os.Stat(name)
	return err == nil && !info.IsDir()
}
