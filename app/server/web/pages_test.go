package web

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHandler_MapPage(t *testing.T) {
	t.Run("default", func(t *testing.T) {
		h := newTestHandler(t, nil, Config{})
		rec := httptest.NewRecorder()
		h.handleMapPage(rec, httptest.NewRequest(http.MethodGet, "/map", http.NoBody))

		assert.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		assert.Contains(t, body, "<title>Thailand Province Population</title>")
		assert.Contains(t, body, "Hover over provinces to see population data")
		assert.Contains(t, body, `data-testid="thailand-map"`)
		assert.Contains(t, body, `data-testid="logout-button"`)
		assert.Contains(t, body, `src="/static/map.js"`)
		assert.Contains(t, body, "15 provinces")
		for _, label := range []string{"8M+", "4M-8M", "2M-4M", "1M-2M", "&lt;1M"} {
			assert.Contains(t, body, label)
		}
		assert.Contains(t, body, "#800026")
		assert.NotContains(t, body, `data-testid="audit-link"`)
	})

	t.Run("audit enabled with base url", func(t *testing.T) {
		h := newTestHandler(t, nil, Config{BaseURL: "/thaimap", AuditEnabled: true})
		rec := httptest.NewRecorder()
		h.handleMapPage(rec, httptest.NewRequest(http.MethodGet, "/map", http.NoBody))

		body := rec.Body.String()
		assert.Contains(t, body, `href="/thaimap/map/audit"`)
		assert.Contains(t, body, `data-base-url="/thaimap"`)
		assert.Contains(t, body, `action="/thaimap/logout"`)
	})
}

func TestHandler_Root(t *testing.T) {
	h := newTestHandler(t, nil, Config{BaseURL: "/thaimap"})
	rec := httptest.NewRecorder()
	h.handleRoot(rec, httptest.NewRequest(http.MethodGet, "/", http.NoBody))
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/thaimap/map", rec.Header().Get("Location"))
}

func TestHandler_RenderUnknownPage(t *testing.T) {
	h := newTestHandler(t, nil, Config{})
	rec := httptest.NewRecorder()
	h.render(rec, "nope.html", http.StatusOK, nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
