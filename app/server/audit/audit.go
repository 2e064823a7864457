// Package audit records login and logout attempts and serves the recorded history.
package audit

import (
	"context"
	"fmt"
	"net/http"

	"github.com/umputun/thaimap/app/store"
)

//go:generate moq -out mocks/store.go -pkg mocks -skip-ensure -fmt goimports . Store

// Store defines the interface for audit log storage.
type Store interface {
	LogAudit(ctx context.Context, entry store.AuditEntry) error
	QueryAudit(ctx context.Context, q store.AuditQuery) ([]store.AuditEntry, int, error)
}

// responseCapture wraps http.ResponseWriter to capture the status code of the wrapped handler.
type responseCapture struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func newResponseCapture(w http.ResponseWriter) *responseCapture {
	return &responseCapture{ResponseWriter: w, status: http.StatusOK}
}

// WriteHeader captures the first status code and delegates to wrapped writer.
func (rc *responseCapture) WriteHeader(code int) {
	if !rc.wroteHeader {
		rc.status = code
		rc.wroteHeader = true
	}
	rc.ResponseWriter.WriteHeader(code)
}

// Write delegates to wrapped writer, implicit status stays 200.
func (rc *responseCapture) Write(b []byte) (int, error) {
	rc.wroteHeader = true
	n, err := rc.ResponseWriter.Write(b)
	if err != nil {
		return n, fmt.Errorf("write: %w", err)
	}
	return n, nil
}

// Unwrap returns the underlying ResponseWriter (for http.ResponseController).
func (rc *responseCapture) Unwrap() http.ResponseWriter {
	return rc.ResponseWriter
}

// actorKey is the context key for the actor holder installed by the middleware.
type actorKey struct{}

// SetActor records the username submitted with the current request.
// Does nothing if the request is not wrapped by the audit middleware.
func SetActor(ctx context.Context, username string) {
	if holder, ok := ctx.Value(actorKey{}).(*string); ok {
		*holder = username
	}
}

// withActorHolder returns a context carrying an empty actor holder.
func withActorHolder(ctx context.Context) (context.Context, *string) {
	holder := new(string)
	return context.WithValue(ctx, actorKey{}, holder), holder
}

// Middleware creates middleware recording an audit entry for every login and logout request.
func Middleware(auditStore Store) func(http.Handler) http.Handler {
	l := newLogger(auditStore)
	return l.middleware
}

// NoopMiddleware returns a pass-through middleware (used when audit is disabled).
func NoopMiddleware(next http.Handler) http.Handler {
	return next
}
