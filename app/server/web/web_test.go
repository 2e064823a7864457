package web

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-pkgz/routegroup"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/thaimap/app/provinces"
	"github.com/umputun/thaimap/app/server/auth"
	"github.com/umputun/thaimap/app/server/web/mocks"
)

func TestNew(t *testing.T) {
	atlas, err := provinces.Embedded()
	require.NoError(t, err)

	t.Run("all deps", func(t *testing.T) {
		h, err := New(Deps{Auth: &mocks.ValidatorMock{}, Gate: auth.NewGate(auth.GateOpts{}), Atlas: atlas}, Config{})
		require.NoError(t, err)
		assert.Len(t, h.pages, 2)
	})

	t.Run("missing deps", func(t *testing.T) {
		_, err := New(Deps{Atlas: atlas}, Config{})
		require.EqualError(t, err, "web handler requires auth, gate and atlas")
	})
}

func TestStaticFS(t *testing.T) {
	sfs, err := StaticFS()
	require.NoError(t, err)

	for _, name := range []string{"map.js", "style.css"} {
		f, err := sfs.Open(name)
		require.NoError(t, err, name)
		data, err := io.ReadAll(f)
		require.NoError(t, err)
		assert.NotEmpty(t, data)
		require.NoError(t, f.Close())
	}
}

func TestHandler_Register(t *testing.T) {
	h := newTestHandler(t, nil, Config{})
	router := routegroup.New(http.NewServeMux())
	h.Register(router)
	h.RegisterLogin(router)
	h.RegisterLogout(router)

	tests := []struct {
		method string
		path   string
		code   int
	}{
		{http.MethodGet, "/", http.StatusSeeOther},
		{http.MethodGet, "/map", http.StatusOK},
		{http.MethodGet, "/login", http.StatusOK},
		{http.MethodPost, "/logout", http.StatusSeeOther},
		{http.MethodGet, "/data/thailand-provinces.json", http.StatusOK},
		{http.MethodGet, "/api/provinces", http.StatusOK},
		{http.MethodGet, "/api/provinces/bangkok", http.StatusOK},
		{http.MethodGet, "/unknown", http.StatusNotFound},
	}

	for _, tc := range tests {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(tc.method, tc.path, http.NoBody))
			assert.Equal(t, tc.code, rec.Code)
		})
	}
}

func TestHandler_RegisterLoginMiddleware(t *testing.T) {
	h := newTestHandler(t, nil, Config{})
	router := routegroup.New(http.NewServeMux())

	var hits int
	mw := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hits++
			next.ServeHTTP(w, r)
		})
	}
	h.Register(router)
	h.RegisterLogin(router, mw)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/login", http.NoBody))
	assert.Equal(t, http.StatusOK, rec.Code)
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/map", http.NoBody))
	assert.Equal(t, 0, hits, "login form and pages are served without login middleware")

	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader("username=tester&password=abc123"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	router.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, 1, hits, "middleware applies to login submission")
}

func TestHandler_RegisterLoginThrottle(t *testing.T) {
	h := newTestHandler(t, nil, Config{})
	router := routegroup.New(http.NewServeMux())

	// a submission throttle with no free slots rejects posts but leaves the form reachable
	full := func(http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	h.RegisterLogin(router, full)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/login", http.NoBody))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "login-button")

	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader("username=tester&password=abc123"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestHandler_URL(t *testing.T) {
	h := newTestHandler(t, nil, Config{BaseURL: "/thaimap"})
	assert.Equal(t, "/thaimap/map", h.url("/map"))

	h = newTestHandler(t, nil, Config{})
	assert.Equal(t, "/login", h.url("/login"))
}

// newTestHandler creates a handler with the embedded atlas, a real gate and the given validator.
// nil validator accepts tester/abc123 only.
func newTestHandler(t *testing.T, validator Validator, cfg Config) *Handler {
	t.Helper()
	atlas, err := provinces.Embedded()
	require.NoError(t, err)
	if validator == nil {
		validator = &mocks.ValidatorMock{ValidateFunc: func(username, password string) bool {
			return username == "tester" && password == "abc123"
		}}
	}
	h, err := New(Deps{Auth: validator, Gate: auth.NewGate(auth.GateOpts{}), Atlas: atlas}, cfg)
	require.NoError(t, err)
	return h
}
