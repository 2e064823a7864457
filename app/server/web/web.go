// Package web provides the login and map pages, the province data endpoints and the static assets.
package web

import (
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"

	log "github.com/go-pkgz/lgr"
	"github.com/go-pkgz/routegroup"

	"github.com/umputun/thaimap/app/provinces"
	"github.com/umputun/thaimap/app/server/auth"
)

//go:generate moq -out mocks/validator.go -pkg mocks -skip-ensure -fmt goimports . Validator

//go:embed templates/*.html
var templatesFS embed.FS

//go:embed static
var staticFS embed.FS

// pages are rendered on top of templates/base.html.
var pages = []string{"login.html", "map.html"}

// StaticFS returns the embedded static files rooted at static/.
func StaticFS() (fs.FS, error) {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		return nil, fmt.Errorf("failed to get static sub-filesystem: %w", err)
	}
	return sub, nil
}

// Validator checks a submitted username and password.
type Validator interface {
	Validate(username, password string) bool
}

// SessionGate issues and revokes the session marker.
type SessionGate interface {
	Issue(w http.ResponseWriter) auth.Marker
	Revoke(w http.ResponseWriter)
}

// Deps holds web handler dependencies.
type Deps struct {
	Auth  Validator
	Gate  SessionGate
	Atlas *provinces.Atlas
}

// Config holds web handler configuration.
type Config struct {
	BaseURL      string // base URL path for reverse proxy (e.g., /thaimap)
	AuditEnabled bool   // show the audit link on the map page
}

// Handler serves pages and province data.
type Handler struct {
	Deps
	Config
	pages map[string]*template.Template
}

// New creates a web handler and parses the embedded templates.
func New(deps Deps, cfg Config) (*Handler, error) {
	if deps.Auth == nil || deps.Gate == nil || deps.Atlas == nil {
		return nil, errors.New("web handler requires auth, gate and atlas")
	}
	tmpls, err := parseTemplates()
	if err != nil {
		return nil, err
	}
	return &Handler{Deps: deps, Config: cfg, pages: tmpls}, nil
}

// Register registers the map page, the root redirect and province data routes.
func (h *Handler) Register(r *routegroup.Bundle) {
	r.HandleFunc("GET /{$}", h.handleRoot)
	r.HandleFunc("GET /map", h.handleMapPage)
	r.HandleFunc("GET /data/thailand-provinces.json", h.handleGeoJSON)
	r.HandleFunc("GET /api/provinces", h.handleProvinces)
	r.HandleFunc("GET /api/provinces/{name}", h.handleProvince)
}

// RegisterLogin registers the login routes. Extra middleware (e.g. throttle, audit) wraps
// the credential submission only, the form itself is served without it.
func (h *Handler) RegisterLogin(r *routegroup.Bundle, middlewares ...func(http.Handler) http.Handler) {
	r.HandleFunc("GET /login", h.handleLoginForm)
	r.Group().Route(func(submit *routegroup.Bundle) {
		for _, mw := range middlewares {
			submit.Use(mw)
		}
		submit.HandleFunc("POST /login", h.handleLogin)
	})
}

// RegisterLogout registers the logout route with optional extra middleware.
func (h *Handler) RegisterLogout(r *routegroup.Bundle, middlewares ...func(http.Handler) http.Handler) {
	r.Group().Route(func(logout *routegroup.Bundle) {
		for _, mw := range middlewares {
			logout.Use(mw)
		}
		logout.HandleFunc("POST /logout", h.handleLogout)
	})
}

// parseTemplates parses every page on top of its own copy of the base layout.
func parseTemplates() (map[string]*template.Template, error) {
	base, err := template.New("base.html").ParseFS(templatesFS, "templates/base.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse base template: %w", err)
	}

	result := make(map[string]*template.Template, len(pages))
	for _, page := range pages {
		tmpl, err := base.Clone()
		if err != nil {
			return nil, fmt.Errorf("failed to clone base template for %s: %w", page, err)
		}
		if _, err := tmpl.ParseFS(templatesFS, "templates/"+page); err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", page, err)
		}
		result[page] = tmpl
	}
	return result, nil
}

// render executes a page with the given status code.
func (h *Handler) render(w http.ResponseWriter, page string, status int, data any) {
	tmpl, ok := h.pages[page]
	if !ok {
		log.Printf("[ERROR] template %s not found", page)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := tmpl.ExecuteTemplate(w, "base.html", data); err != nil {
		log.Printf("[ERROR] failed to execute template %s: %v", page, err)
	}
}

// url returns a URL path with the base URL prefix.
func (h *Handler) url(path string) string {
	return h.BaseURL + path
}

// isHTMX reports whether the request was sent by HTMX.
func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}
