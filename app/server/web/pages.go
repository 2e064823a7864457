package web

import (
	"net/http"

	"github.com/umputun/thaimap/app/provinces"
)

// mapData is passed to the map template.
type mapData struct {
	BaseURL      string
	Title        string
	Legend       []provinces.LegendItem
	Provinces    int
	AuditEnabled bool
}

// handleRoot sends the client to the map, the gate decides from there.
func (h *Handler) handleRoot(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, h.url("/map"), http.StatusSeeOther)
}

// handleMapPage renders the map page. Only reachable with a valid session marker.
func (h *Handler) handleMapPage(w http.ResponseWriter, _ *http.Request) {
	h.render(w, "map.html", http.StatusOK, mapData{
		BaseURL:      h.BaseURL,
		Title:        "Thailand Province Population",
		Legend:       provinces.Legend(),
		Provinces:    len(h.Atlas.Provinces()),
		AuditEnabled: h.AuditEnabled,
	})
}
