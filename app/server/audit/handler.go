package audit

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	log "github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"

	"github.com/umputun/thaimap/app/enum"
	"github.com/umputun/thaimap/app/store"
)

// Handler serves the recorded audit history.
type Handler struct {
	store    Store
	maxLimit int
}

// NewHandler creates a new audit handler.
func NewHandler(auditStore Store, maxLimit int) *Handler {
	if maxLimit <= 0 {
		maxLimit = 1000
	}
	return &Handler{store: auditStore, maxLimit: maxLimit}
}

// QueryResponse represents the JSON response for audit query.
type QueryResponse struct {
	Entries []store.AuditEntry `json:"entries"`
	Total   int                `json:"total"`
	Limit   int                `json:"limit"`
}

// HandleQuery handles GET /map/audit requests. Filters come from query parameters:
// actor, action (login, logout), result (success, denied), from and to (RFC3339), limit and offset.
// Access is restricted by the session gate, the handler itself does no auth checks.
func (h *Handler) HandleQuery(w http.ResponseWriter, r *http.Request) {
	query, err := h.buildQuery(r)
	if err != nil {
		rest.SendErrorJSON(w, r, log.Default(), http.StatusBadRequest, err, "invalid query parameters")
		return
	}

	entries, total, err := h.store.QueryAudit(r.Context(), query)
	if err != nil {
		rest.SendErrorJSON(w, r, log.Default(), http.StatusInternalServerError, err, "failed to query audit log")
		return
	}

	// ensure entries is never nil in response
	if entries == nil {
		entries = []store.AuditEntry{}
	}

	rest.RenderJSON(w, QueryResponse{Entries: entries, Total: total, Limit: query.Limit})
}

// buildQuery converts query parameters to store.AuditQuery.
func (h *Handler) buildQuery(r *http.Request) (store.AuditQuery, error) {
	params := r.URL.Query()
	q := store.AuditQuery{Actor: params.Get("actor")}

	if v := params.Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil {
			return store.AuditQuery{}, fmt.Errorf("invalid limit: %w", err)
		}
		q.Limit = limit
	}
	if q.Limit <= 0 || q.Limit > h.maxLimit {
		q.Limit = h.maxLimit
	}

	if v := params.Get("offset"); v != "" {
		offset, err := strconv.Atoi(v)
		if err != nil || offset < 0 {
			return store.AuditQuery{}, fmt.Errorf("invalid offset %q", v)
		}
		q.Offset = offset
	}

	if v := params.Get("action"); v != "" {
		action, err := enum.ParseAuditAction(v)
		if err != nil {
			return store.AuditQuery{}, fmt.Errorf("invalid action: %w", err)
		}
		q.Action = action
	}

	if v := params.Get("result"); v != "" {
		result, err := enum.ParseAuditResult(v)
		if err != nil {
			return store.AuditQuery{}, fmt.Errorf("invalid result: %w", err)
		}
		q.Result = result
	}

	if v := params.Get("from"); v != "" {
		from, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return store.AuditQuery{}, fmt.Errorf("invalid from timestamp: %w", err)
		}
		q.From = from
	}

	if v := params.Get("to"); v != "" {
		to, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return store.AuditQuery{}, fmt.Errorf("invalid to timestamp: %w", err)
		}
		q.To = to
	}

	return q, nil
}
