package auth

import (
	"net/http"
	"time"

	"github.com/umputun/thaimap/app/server/internal/cookie"
)

// Marker is the session marker carried by the auth cookie.
type Marker struct {
	Value     string
	ExpiresAt time.Time // known only for issued markers, browsers don't send expiry back
}

// Valid reports whether the marker denotes an authenticated client.
func (m Marker) Valid() bool {
	return m.Value == cookie.Value
}

// Equal compares markers by value, expiry is not part of the identity.
func (m Marker) Equal(other Marker) bool {
	return m.Value == other.Value
}

// Gate issues, reads and revokes the session marker and guards routes with it, see Middleware.
// Gate is stateless and safe for concurrent use.
type Gate struct {
	secure       bool
	loginURL     string
	protectedURL string
	now          func() time.Time
}

// GateOpts configures a Gate.
type GateOpts struct {
	Secure       bool   // restrict cookie to encrypted transport, set in production mode
	LoginURL     string // login entry point, defaults to /login
	ProtectedURL string // protected page, defaults to /map
}

// NewGate makes a Gate with the given options.
func NewGate(opts GateOpts) *Gate {
	g := &Gate{secure: opts.Secure, loginURL: opts.LoginURL, protectedURL: opts.ProtectedURL, now: time.Now}
	if g.loginURL == "" {
		g.loginURL = loginPrefix
	}
	if g.protectedURL == "" {
		g.protectedURL = protectedPrefix
	}
	return g
}

// Issue writes the session marker cookie. Re-issuing overwrites it with the same value
// and restarts the expiry window.
func (g *Gate) Issue(w http.ResponseWriter) Marker {
	m := Marker{Value: cookie.Value, ExpiresAt: g.now().Add(cookie.TTL)}
	http.SetCookie(w, &http.Cookie{
		Name:     cookie.Name,
		Value:    m.Value,
		Path:     cookie.Path,
		MaxAge:   int(cookie.TTL.Seconds()),
		Expires:  m.ExpiresAt,
		HttpOnly: true,
		Secure:   g.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return m
}

// Read returns the session marker presented with the request.
// Missing cookies and any value other than the authenticated literal are reported as absent.
func (g *Gate) Read(r *http.Request) (Marker, bool) {
	c, err := r.Cookie(cookie.Name)
	if err != nil {
		return Marker{}, false
	}
	m := Marker{Value: c.Value}
	if !m.Valid() {
		return Marker{}, false
	}
	return m, true
}

// Revoke deletes the session marker cookie.
func (g *Gate) Revoke(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     cookie.Name,
		Value:    "",
		Path:     cookie.Path,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   g.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// LoginURL returns the login entry point the gate redirects to.
func (g *Gate) LoginURL() string { return g.loginURL }

// ProtectedURL returns the protected page the gate redirects authenticated clients to.
func (g *Gate) ProtectedURL() string { return g.protectedURL }
