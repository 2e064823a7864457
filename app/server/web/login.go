package web

import (
	"encoding/json"
	"mime"
	"net/http"

	log "github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"

	"github.com/umputun/thaimap/app/server/audit"
)

const invalidCredentials = "Invalid credentials"

// loginRequest is the JSON body accepted by POST /login.
type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// loginData is passed to the login template.
type loginData struct {
	BaseURL  string
	Title    string
	Username string
	Error    string
}

// handleLoginForm renders the login form.
func (h *Handler) handleLoginForm(w http.ResponseWriter, _ *http.Request) {
	h.render(w, "login.html", http.StatusOK, loginData{BaseURL: h.BaseURL, Title: "Login"})
}

// handleLogin checks submitted credentials. On success issues the session marker and sends the
// client to the map. On failure re-renders the form with an error and no redirect.
func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	jsonReq := isJSON(r)
	req, err := h.parseLogin(r, jsonReq)
	if err != nil {
		log.Printf("[DEBUG] can't parse login request: %v", err)
		if jsonReq {
			rest.SendErrorJSON(w, r, log.Default(), http.StatusBadRequest, err, "invalid request body")
			return
		}
	}
	audit.SetActor(r.Context(), req.Username)

	if !h.Auth.Validate(req.Username, req.Password) {
		log.Printf("[WARN] failed login attempt for %q", req.Username)
		if jsonReq {
			rest.SendErrorJSON(w, r, log.Default(), http.StatusUnauthorized, nil, invalidCredentials)
			return
		}
		h.render(w, "login.html", http.StatusUnauthorized,
			loginData{BaseURL: h.BaseURL, Title: "Login", Username: req.Username, Error: invalidCredentials})
		return
	}

	h.Gate.Issue(w)
	log.Printf("[INFO] user %q logged in", req.Username)

	target := h.url("/map")
	switch {
	case jsonReq:
		rest.RenderJSON(w, rest.JSON{"status": "ok", "redirect": target})
	case isHTMX(r):
		w.Header().Set("HX-Redirect", target)
		w.WriteHeader(http.StatusOK)
	default:
		http.Redirect(w, r, target, http.StatusSeeOther)
	}
}

// handleLogout revokes the session marker and sends the client to the login page.
func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	h.Gate.Revoke(w)
	log.Printf("[INFO] logged out")

	target := h.url("/login")
	if isHTMX(r) {
		w.Header().Set("HX-Redirect", target)
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// parseLogin extracts credentials from a JSON body or a form.
// Partial results are returned on error, so a broken form still counts as a failed attempt.
func (h *Handler) parseLogin(r *http.Request, jsonReq bool) (loginRequest, error) {
	var req loginRequest
	if jsonReq {
		err := json.NewDecoder(r.Body).Decode(&req)
		return req, err
	}
	err := r.ParseForm()
	req.Username, req.Password = r.PostFormValue("username"), r.PostFormValue("password")
	return req, err
}

// isJSON reports whether the request body is JSON.
func isJSON(r *http.Request) bool {
	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mt == "application/json"
}
