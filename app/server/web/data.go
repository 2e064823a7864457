package web

import (
	"errors"
	"net/http"

	log "github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"

	"github.com/umputun/thaimap/app/provinces"
)

// handleGeoJSON serves the province feature collection with computed colors.
func (h *Handler) handleGeoJSON(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/geo+json")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	if _, err := w.Write(h.Atlas.GeoJSON()); err != nil {
		log.Printf("[WARN] failed to write province data: %v", err)
	}
}

// handleProvinces lists province summaries, most populated first.
func (h *Handler) handleProvinces(w http.ResponseWriter, _ *http.Request) {
	rest.RenderJSON(w, h.Atlas.Provinces())
}

// handleProvince returns a single province by name or slug.
func (h *Handler) handleProvince(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	p, err := h.Atlas.Find(name)
	if err != nil {
		if errors.Is(err, provinces.ErrNotFound) {
			rest.SendErrorJSON(w, r, log.Default(), http.StatusNotFound, err, "province not found")
			return
		}
		rest.SendErrorJSON(w, r, log.Default(), http.StatusInternalServerError, err, "failed to get province")
		return
	}
	rest.RenderJSON(w, p)
}
