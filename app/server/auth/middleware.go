package auth

import (
	"net/http"
	"strings"

	log "github.com/go-pkgz/lgr"

	"github.com/umputun/thaimap/app/enum"
)

const (
	protectedPrefix = "/map"
	loginPrefix     = "/login"
)

// Classify maps a request path to its route class by prefix.
// Paths under /map are protected, paths under /login are the login entry, the rest is unrestricted.
func Classify(path string) enum.Route {
	switch {
	case strings.HasPrefix(path, protectedPrefix):
		return enum.RouteProtected
	case strings.HasPrefix(path, loginPrefix):
		return enum.RouteLogin
	default:
		return enum.RouteUnrestricted
	}
}

// Decide is the gate policy: protected routes need a marker, the login entry is pointless with one.
func Decide(route enum.Route, authenticated bool) enum.Decision {
	switch {
	case route == enum.RouteProtected && !authenticated:
		return enum.DecisionRedirectLogin
	case route == enum.RouteLogin && authenticated:
		return enum.DecisionRedirectProtected
	default:
		return enum.DecisionAllow
	}
}

// Middleware intercepts every request before any page content is produced and applies Decide.
// For HTMX requests, uses HX-Redirect header to trigger full page navigation.
func (g *Gate) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		route := Classify(r.URL.Path)
		if !route.Gated() {
			next.ServeHTTP(w, r)
			return
		}

		_, authenticated := g.Read(r)
		decision := Decide(route, authenticated)
		if !decision.Redirects() {
			next.ServeHTTP(w, r)
			return
		}

		if decision == enum.DecisionRedirectLogin {
			log.Printf("[DEBUG] no session marker for %s, redirect to %s", r.URL.Path, g.loginURL)
			g.redirect(w, r, g.loginURL, http.StatusUnauthorized)
			return
		}
		g.redirect(w, r, g.protectedURL, http.StatusOK)
	})
}

// redirect sends the client to url. HTMX requests get HX-Redirect with hxStatus instead of
// a regular redirect, so the target page is not swapped into a fragment.
func (g *Gate) redirect(w http.ResponseWriter, r *http.Request, url string, hxStatus int) {
	if r.Header.Get("HX-Request") == "true" {
		w.Header().Set("HX-Redirect", url)
		w.WriteHeader(hxStatus)
		return
	}
	http.Redirect(w, r, url, http.StatusSeeOther)
}
