// Package web serves the documentation navigation over HTTP: pages carrying
// the rendered side navigation, a JSON navigation API and reference search.
package web

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/mchmarny/sidenav/pkg/level"
	"github.com/mchmarny/sidenav/pkg/menu"
	"github.com/mchmarny/sidenav/pkg/metric"
	"github.com/mchmarny/sidenav/pkg/navigation"
	"github.com/mchmarny/sidenav/pkg/search"
	"github.com/mchmarny/sidenav/pkg/sidenav"
)

// DefaultSessionLimit bounds the number of live navigation sessions.
const DefaultSessionLimit = 10000

// App holds the HTTP handlers and their shared state.
type App struct {
	site     *sidenav.Site
	index    *search.Index
	sessions *sessions

	registry        *prometheus.Registry
	renders         metric.IncrementalCounter
	classifications metric.IncrementalCounter
}

// New prepares the handlers for site. A sessionLimit below one uses DefaultSessionLimit.
func New(site *sidenav.Site, sessionLimit int) (*App, error) {
	if sessionLimit < 1 {
		sessionLimit = DefaultSessionLimit
	}

	index, err := search.Build(site.Assembler.Lists())
	if err != nil {
		return nil, err
	}

	reg := prometheus.NewRegistry()
	a := &App{
		site:     site,
		index:    index,
		registry: reg,
		renders: metric.NewCounterWithRegistry(reg, "renders_total",
			"Side navigation menus rendered, by output format.", "format"),
		classifications: metric.NewCounterWithRegistry(reg, "classifications_total",
			"Menu levels set by route classification.", "level"),
	}

	a.sessions, err = newSessions(site, sessionLimit, func(l level.Level) {
		a.classifications.Increment(l.String())
	})
	if err != nil {
		_ = index.Close()
		return nil, err
	}

	return a, nil
}

// Registry returns the Prometheus registry holding the app's counters.
func (a *App) Registry() *prometheus.Registry {
	return a.registry
}

// Ready reports whether the app can serve navigation.
func (a *App) Ready(context.Context) error {
	if a.site == nil || a.index == nil {
		return errors.New("navigation not loaded")
	}
	return nil
}

// Close unmounts all sessions and releases the search index.
func (a *App) Close() error {
	a.sessions.purge()
	return a.index.Close()
}

// RegisterHandlers registers every route with register.
func (a *App) RegisterHandlers(register func(pattern string, handler http.Handler)) {
	base := a.site.BasePath
	page := http.HandlerFunc(a.handlePage)

	if base != "" {
		register("GET "+base, page)
	}
	register("GET "+base+"/", page)
	register("GET /api/nav", http.HandlerFunc(a.handleNav))
	register("GET /api/surfaces", http.HandlerFunc(a.handleSurfaces))
	register("GET /api/surfaces/{id}/keys", http.HandlerFunc(a.handleKeys))
	register("GET /api/surfaces/{id}/search", http.HandlerFunc(a.handleSearch))
}

const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head><meta charset="utf-8"><title>{{.Title}}</title></head>
<body>
<aside>{{.Nav}}</aside>
<main data-path="{{.Path}}"><h1>{{.Title}}</h1></main>
</body>
</html>
`

var pageTmpl = template.Must(template.New("page").Parse(pageTemplate))

type pageData struct {
	Title string
	Path  string
	Nav   template.HTML
}

func (a *App) handlePage(w http.ResponseWriter, r *http.Request) {
	asPath := navigation.Relative(a.site.BasePath, r.URL.Path)
	s := a.sessions.navigate(w, r, asPath)

	m := s.nav.Render()
	nav, err := m.HTML()
	if err != nil {
		slog.Error("failed to render navigation", "error", err, "path", r.URL.Path)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	a.renders.Increment("html")

	title := "Documentation"
	if l, ok := m.ActiveList(); ok && l.Title != "" {
		title = l.Title
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTmpl.Execute(w, pageData{Title: title, Path: r.URL.Path, Nav: nav}); err != nil {
		slog.Error("failed to write page", "error", err, "path", r.URL.Path)
	}
}

func (a *App) handleNav(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	if path == "" {
		writeError(w, http.StatusBadRequest, "missing path parameter")
		return
	}

	a.renders.Increment("json")
	a.site.MenuFor(path).Handler().ServeHTTP(w, r)
}

type surfaceInfo struct {
	ID        level.Level `json:"id"`
	Title     string      `json:"title,omitempty"`
	Lib       string      `json:"lib,omitempty"`
	Kind      menu.Kind   `json:"kind"`
	Versioned bool        `json:"versioned"`
	Entries   int         `json:"entries"`
}

func (a *App) handleSurfaces(w http.ResponseWriter, _ *http.Request) {
	lists := a.site.Assembler.Lists()
	out := make([]surfaceInfo, 0, len(lists))
	for _, l := range lists {
		out = append(out, surfaceInfo{
			ID:        l.ID,
			Title:     l.Title,
			Lib:       l.Lib,
			Kind:      l.Kind,
			Versioned: l.Versioned,
			Entries:   menu.Count(l.Items),
		})
	}
	writeJSON(w, http.StatusOK, out)
}

type keysResponse struct {
	ID          level.Level `json:"id"`
	Versioned   bool        `json:"versioned"`
	AllowedKeys []string    `json:"allowed_keys"`
}

func (a *App) handleKeys(w http.ResponseWriter, r *http.Request) {
	id := level.Level(r.PathValue("id"))

	keys, err := a.site.Assembler.AllowedKeys(id)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, keysResponse{ID: id, Versioned: keys != nil, AllowedKeys: keys})
}

type searchResponse struct {
	ID    level.Level  `json:"id"`
	Query string       `json:"query"`
	Hits  []search.Hit `json:"hits"`
}

func (a *App) handleSearch(w http.ResponseWriter, r *http.Request) {
	id := level.Level(r.PathValue("id"))
	q := r.URL.Query().Get("q")
	if q == "" {
		writeError(w, http.StatusBadRequest, "missing q parameter")
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("max"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid max parameter: %q", raw))
			return
		}
		limit = n
	}

	if _, err := a.site.Assembler.Surface(id); err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	hits, err := a.index.Search(r.Context(), id, q, limit)
	if errors.Is(err, search.ErrNotIndexed) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		slog.Error("search failed", "error", err, "surface", id)
		writeError(w, http.StatusInternalServerError, "search failed")
		return
	}

	writeJSON(w, http.StatusOK, searchResponse{ID: id, Query: q, Hits: hits})
}
