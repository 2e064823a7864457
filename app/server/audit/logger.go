package audit

import (
	"net/http"
	"strings"
	"time"

	log "github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest/realip"
	"github.com/google/uuid"

	"github.com/umputun/thaimap/app/enum"
	"github.com/umputun/thaimap/app/store"
)

// logger handles building and logging audit entries.
type logger struct {
	store Store
	now   func() time.Time
}

func newLogger(auditStore Store) *logger {
	return &logger{store: auditStore, now: time.Now}
}

// middleware logs an audit entry after the handler completes.
// Applies only to POST submissions to /login and /logout, everything else passes through.
func (a *logger) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		action, ok := a.mapAction(r)
		if !ok {
			next.ServeHTTP(w, r)
			return
		}

		ctx, actor := withActorHolder(r.Context())
		r = r.WithContext(ctx)

		rc := newResponseCapture(w)
		next.ServeHTTP(rc, r)

		entry := a.buildEntry(r, rc, action, *actor)
		if err := a.store.LogAudit(r.Context(), entry); err != nil {
			log.Printf("[WARN] failed to log audit entry: %v", err)
		}
	})
}

// buildEntry creates an audit entry from request and response data.
func (a *logger) buildEntry(r *http.Request, rc *responseCapture, action enum.AuditAction, actor string) store.AuditEntry {
	ip, _ := realip.Get(r) // ignore error, fallback to empty string

	return store.AuditEntry{
		Timestamp: a.now(),
		Action:    action,
		Actor:     actor,
		Result:    a.mapStatus(rc.status),
		IP:        ip,
		UserAgent: r.UserAgent(),
		RequestID: a.requestID(r, rc),
	}
}

// mapAction maps a request to its audit action, false if the request is not audited.
func (a *logger) mapAction(r *http.Request) (enum.AuditAction, bool) {
	if r.Method != http.MethodPost {
		return enum.AuditAction{}, false
	}
	switch strings.TrimSuffix(r.URL.Path, "/") {
	case "/login":
		return enum.AuditActionLogin, true
	case "/logout":
		return enum.AuditActionLogout, true
	default:
		return enum.AuditAction{}, false
	}
}

// mapStatus maps HTTP status code to audit result. Redirects count as success.
func (a *logger) mapStatus(status int) enum.AuditResult {
	if status >= 200 && status < 400 {
		return enum.AuditResultSuccess
	}
	return enum.AuditResultDenied
}

// requestID returns the trace id set by rest.Trace or supplied by the client, generates one if missing.
func (a *logger) requestID(r *http.Request, rc *responseCapture) string {
	if id := r.Header.Get("X-Request-ID"); id != "" {
		return id
	}
	if id := rc.Header().Get("X-Request-ID"); id != "" {
		return id
	}
	return uuid.NewString()
}
