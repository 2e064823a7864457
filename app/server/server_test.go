package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/thaimap/app/enum"
	"github.com/umputun/thaimap/app/provinces"
	"github.com/umputun/thaimap/app/server/audit"
	"github.com/umputun/thaimap/app/server/auth"
	"github.com/umputun/thaimap/app/store"
)

func TestServer_New(t *testing.T) {
	t.Run("missing deps", func(t *testing.T) {
		_, err := New(Deps{}, Config{})
		require.Error(t, err)
	})

	t.Run("audit disabled without store", func(t *testing.T) {
		srv := newTestServer(t, Config{AuditEnabled: true}, nil)
		assert.Nil(t, srv.auditHandler)
	})
}

func TestServer_Scenarios(t *testing.T) {
	srv := newTestServer(t, Config{}, nil)
	h := srv.handler()

	t.Run("no cookie on protected path goes to login", func(t *testing.T) {
		rec := do(h, http.MethodGet, "/map", nil, nil)
		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/login", rec.Header().Get("Location"))
		assert.NotContains(t, rec.Body.String(), "Thailand Province Population")
	})

	t.Run("root goes to map", func(t *testing.T) {
		rec := do(h, http.MethodGet, "/", nil, nil)
		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/map", rec.Header().Get("Location"))
	})

	t.Run("login form is open", func(t *testing.T) {
		rec := do(h, http.MethodGet, "/login", nil, nil)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `data-testid="login-button"`)
	})

	t.Run("configured pair reaches the map", func(t *testing.T) {
		rec := login(h, "tester", "abc123")
		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/map", rec.Header().Get("Location"))
		marker := authCookie(t, rec)
		assert.Equal(t, "authenticated", marker.Value)

		rec = do(h, http.MethodGet, "/map", marker, nil)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Thailand Province Population")
		assert.Contains(t, rec.Body.String(), `data-testid="thailand-map"`)
	})

	t.Run("wrong pair stays on login", func(t *testing.T) {
		rec := login(h, "wrong", "wrong")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Empty(t, rec.Header().Get("Location"))
		assert.Empty(t, rec.Result().Cookies())
		assert.Contains(t, rec.Body.String(), "Invalid credentials")
	})

	t.Run("marker on login goes to map", func(t *testing.T) {
		marker := &http.Cookie{Name: "thailand-map-auth", Value: "authenticated"}
		rec := do(h, http.MethodGet, "/login", marker, nil)
		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/map", rec.Header().Get("Location"))
	})

	t.Run("malformed marker is absent", func(t *testing.T) {
		for _, v := range []string{"", "yes", "AUTHENTICATED", "authenticated "} {
			rec := do(h, http.MethodGet, "/map", &http.Cookie{Name: "thailand-map-auth", Value: v}, nil)
			assert.Equal(t, http.StatusSeeOther, rec.Code, "value %q", v)
			assert.Equal(t, "/login", rec.Header().Get("Location"))
		}
	})

	t.Run("logout revokes marker", func(t *testing.T) {
		marker := authCookie(t, login(h, "tester", "abc123"))
		rec := do(h, http.MethodPost, "/logout", marker, nil)
		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/login", rec.Header().Get("Location"))
		cleared := authCookie(t, rec)
		assert.Empty(t, cleared.Value)
		assert.Negative(t, cleared.MaxAge)

		rec = do(h, http.MethodGet, "/map", nil, nil)
		assert.Equal(t, "/login", rec.Header().Get("Location"))
	})

	t.Run("htmx request without marker", func(t *testing.T) {
		rec := do(h, http.MethodGet, "/map", nil, map[string]string{"HX-Request": "true"})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "/login", rec.Header().Get("HX-Redirect"))
	})
}

func TestServer_UnrestrictedRoutes(t *testing.T) {
	srv := newTestServer(t, Config{Version: "test"}, nil)
	h := srv.handler()

	tests := []struct {
		path     string
		code     int
		contains string
	}{
		{path: "/ping", code: http.StatusOK, contains: "pong"},
		{path: "/static/map.js", code: http.StatusOK, contains: "thailand-provinces.json"},
		{path: "/static/style.css", code: http.StatusOK, contains: ".map-panel"},
		{path: "/data/thailand-provinces.json", code: http.StatusOK, contains: "FeatureCollection"},
		{path: "/api/provinces", code: http.StatusOK, contains: "Bangkok"},
		{path: "/api/provinces/phuket", code: http.StatusOK, contains: "Phuket"},
		{path: "/api/provinces/nowhere", code: http.StatusNotFound, contains: "province not found"},
	}

	for _, tc := range tests {
		t.Run(tc.path, func(t *testing.T) {
			rec := do(h, http.MethodGet, tc.path, nil, nil)
			assert.Equal(t, tc.code, rec.Code)
			assert.Contains(t, rec.Body.String(), tc.contains)
		})
	}

	t.Run("app info headers", func(t *testing.T) {
		rec := do(h, http.MethodGet, "/ping", nil, nil)
		assert.Equal(t, "thaimap", rec.Header().Get("App-Name"))
		assert.Equal(t, "test", rec.Header().Get("App-Version"))
	})
}

func TestServer_BaseURL(t *testing.T) {
	srv := newTestServerWithGate(t, Config{BaseURL: "/thaimap"}, nil,
		auth.NewGate(auth.GateOpts{LoginURL: "/thaimap/login", ProtectedURL: "/thaimap/map"}))
	h := srv.handler()

	rec := do(h, http.MethodGet, "/thaimap", nil, nil)
	assert.Equal(t, http.StatusMovedPermanently, rec.Code)
	assert.Equal(t, "/thaimap/", rec.Header().Get("Location"))

	rec = do(h, http.MethodGet, "/thaimap/map", nil, nil)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/thaimap/login", rec.Header().Get("Location"))

	rec = loginAt(h, "/thaimap/login", "tester", "abc123")
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/thaimap/map", rec.Header().Get("Location"))

	rec = do(h, http.MethodGet, "/thaimap/map", authCookie(t, rec), nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `src="/thaimap/static/map.js"`)

	rec = do(h, http.MethodGet, "/map", nil, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code, "routes live under base url only")
}

func TestServer_Audit(t *testing.T) {
	auditStore, err := store.New(filepath.Join(t.TempDir(), "audit.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = auditStore.Close() })

	srv := newTestServer(t, Config{AuditEnabled: true}, auditStore)
	require.NotNil(t, srv.auditHandler)
	h := srv.handler()

	assert.Equal(t, http.StatusUnauthorized, login(h, "wrong", "wrong").Code)
	marker := authCookie(t, login(h, "tester", "abc123"))

	t.Run("audit listing is protected", func(t *testing.T) {
		rec := do(h, http.MethodGet, "/map/audit", nil, nil)
		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/login", rec.Header().Get("Location"))
	})

	t.Run("audit listing with marker", func(t *testing.T) {
		rec := do(h, http.MethodGet, "/map/audit", marker, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp audit.QueryResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, 2, resp.Total)
		results := map[string]enum.AuditResult{}
		for _, e := range resp.Entries {
			assert.Equal(t, enum.AuditActionLogin, e.Action)
			assert.NotEmpty(t, e.RequestID)
			results[e.Actor] = e.Result
		}
		assert.Equal(t, map[string]enum.AuditResult{"tester": enum.AuditResultSuccess, "wrong": enum.AuditResultDenied}, results)
	})

	t.Run("filter by result", func(t *testing.T) {
		rec := do(h, http.MethodGet, "/map/audit?result=denied", marker, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		var resp audit.QueryResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Len(t, resp.Entries, 1)
		assert.Equal(t, "wrong", resp.Entries[0].Actor)
	})

	t.Run("logout recorded", func(t *testing.T) {
		do(h, http.MethodPost, "/logout", marker, nil)
		rec := do(h, http.MethodGet, "/map/audit?action=logout", marker, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		var resp audit.QueryResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, 1, resp.Total)
	})

	t.Run("audit link on map page", func(t *testing.T) {
		rec := do(h, http.MethodGet, "/map", marker, nil)
		assert.Contains(t, rec.Body.String(), `data-testid="audit-link"`)
	})
}

func TestServer_Defaults(t *testing.T) {
	srv := &Server{}
	assert.Equal(t, int64(64*1024), srv.bodySizeLimit())
	assert.InDelta(t, 100.0, srv.requestsPerSec(), 0.001)
	assert.Equal(t, int64(1000), srv.maxConcurrent())
	assert.Equal(t, int64(5), srv.loginConcurrency())
	assert.Equal(t, "10s", srv.shutdownTimeout().String())

	srv = &Server{Config: Config{BodySizeLimit: 10, RequestsPerSec: 2, MaxConcurrent: 3, LoginConcurrency: 4}}
	assert.Equal(t, int64(10), srv.bodySizeLimit())
	assert.InDelta(t, 2.0, srv.requestsPerSec(), 0.001)
	assert.Equal(t, int64(3), srv.maxConcurrent())
	assert.Equal(t, int64(4), srv.loginConcurrency())
}

func TestServer_DebugLogging(t *testing.T) {
	srv := newTestServer(t, Config{Debug: true}, nil)
	rec := do(srv.handler(), http.MethodGet, "/ping", nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func newTestServer(t *testing.T, cfg Config, auditStore *store.Store) *Server {
	t.Helper()
	return newTestServerWithGate(t, cfg, auditStore, auth.NewGate(auth.GateOpts{}))
}

func newTestServerWithGate(t *testing.T, cfg Config, auditStore *store.Store, gate *auth.Gate) *Server {
	t.Helper()
	svc, err := auth.New(auth.Credentials{Username: "tester", Password: "abc123"})
	require.NoError(t, err)
	atlas, err := provinces.Embedded()
	require.NoError(t, err)

	srv, err := New(Deps{Auth: svc, Gate: gate, Atlas: atlas, AuditStore: auditStore}, cfg)
	require.NoError(t, err)
	return srv
}

func do(h http.Handler, method, path string, c *http.Cookie, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, http.NoBody)
	if c != nil {
		req.AddCookie(c)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func login(h http.Handler, username, password string) *httptest.ResponseRecorder {
	return loginAt(h, "/login", username, password)
}

func loginAt(h http.Handler, path, username, password string) *httptest.ResponseRecorder {
	form := url.Values{"username": {username}, "password": {password}}
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

// authCookie returns the session marker cookie set by the response.
func authCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == "thailand-map-auth" {
			return c
		}
	}
	require.FailNow(t, "no session marker in response")
	return nil
}
