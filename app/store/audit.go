package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	log "github.com/go-pkgz/lgr"

	"github.com/umputun/thaimap/app/enum"
)

// AuditEntry represents a single authentication event.
type AuditEntry struct {
	ID        int64            `json:"id" db:"id"`
	Timestamp time.Time        `json:"timestamp" db:"timestamp"`
	Action    enum.AuditAction `json:"action" db:"action"`
	Actor     string           `json:"actor,omitempty" db:"actor"` // submitted username, may be empty
	Result    enum.AuditResult `json:"result" db:"result"`
	IP        string           `json:"ip,omitempty" db:"ip"`
	UserAgent string           `json:"user_agent,omitempty" db:"user_agent"`
	RequestID string           `json:"request_id,omitempty" db:"request_id"`
}

// AuditQuery defines filters for querying audit logs.
type AuditQuery struct {
	Actor  string           // exact match
	Action enum.AuditAction // exact match (zero value = any)
	Result enum.AuditResult // exact match (zero value = any)
	From   time.Time        // inclusive
	To     time.Time        // inclusive
	Limit  int              // max entries to return
	Offset int              // skip entries for pagination
}

// LogAudit inserts an audit entry into the audit_log table.
// Timestamps are stored in UTC so text ordering matches time ordering.
func (s *Store) LogAudit(ctx context.Context, entry AuditEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}

	query := s.adoptQuery(`
		INSERT INTO audit_log (timestamp, action, actor, result, ip, user_agent, request_id)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)

	_, err := s.db.ExecContext(ctx, query,
		entry.Timestamp.UTC().Format(time.RFC3339),
		entry.Action.String(),
		entry.Actor,
		entry.Result.String(),
		entry.IP,
		entry.UserAgent,
		entry.RequestID,
	)
	if err != nil {
		return fmt.Errorf("failed to insert audit entry: %w", err)
	}
	return nil
}

// QueryAudit retrieves audit entries matching the given filters.
// Returns entries ordered by timestamp descending (newest first) and the total match count.
func (s *Store) QueryAudit(ctx context.Context, q AuditQuery) ([]AuditEntry, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	where, args := q.where()

	var total int
	if err := s.db.GetContext(ctx, &total, s.adoptQuery("SELECT COUNT(*) FROM audit_log"+where), args...); err != nil {
		return nil, 0, fmt.Errorf("failed to count audit entries: %w", err)
	}
	if total == 0 {
		return nil, 0, nil
	}

	limit := q.Limit
	if limit <= 0 {
		limit = 1000
	}

	var rows []auditRow
	query := s.adoptQuery("SELECT id, timestamp, action, actor, result, ip, user_agent, request_id FROM audit_log" +
		where + " ORDER BY timestamp DESC, id DESC LIMIT ? OFFSET ?")
	if err := s.db.SelectContext(ctx, &rows, query, append(args, limit, q.Offset)...); err != nil {
		return nil, 0, fmt.Errorf("failed to query audit entries: %w", err)
	}

	entries := make([]AuditEntry, 0, len(rows))
	for _, r := range rows {
		entries = append(entries, r.entry())
	}
	return entries, total, nil
}

// where renders the query filters as a WHERE clause with positional arguments.
// Zero-value filters are skipped.
func (q AuditQuery) where() (clause string, args []any) {
	filters := []struct {
		set  bool
		cond string
		arg  any
	}{
		{q.Actor != "", "actor = ?", q.Actor},
		{q.Action != (enum.AuditAction{}), "action = ?", q.Action.String()},
		{q.Result != (enum.AuditResult{}), "result = ?", q.Result.String()},
		{!q.From.IsZero(), "timestamp >= ?", q.From.UTC().Format(time.RFC3339)},
		{!q.To.IsZero(), "timestamp <= ?", q.To.UTC().Format(time.RFC3339)},
	}

	conds := make([]string, 0, len(filters))
	for _, f := range filters {
		if !f.set {
			continue
		}
		conds = append(conds, f.cond)
		args = append(args, f.arg)
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// auditRow is the storage shape of an audit entry, nullable columns kept as sql.NullString.
type auditRow struct {
	ID        int64          `db:"id"`
	Timestamp string         `db:"timestamp"`
	Action    string         `db:"action"`
	Actor     string         `db:"actor"`
	Result    string         `db:"result"`
	IP        sql.NullString `db:"ip"`
	UserAgent sql.NullString `db:"user_agent"`
	RequestID sql.NullString `db:"request_id"`
}

// entry decodes the row. Unparsable columns are logged and left as zero values.
func (r auditRow) entry() AuditEntry {
	ts, err := time.Parse(time.RFC3339, r.Timestamp)
	if err != nil {
		log.Printf("[WARN] bad audit timestamp %q in row %d: %v", r.Timestamp, r.ID, err)
	}
	action, err := enum.ParseAuditAction(r.Action)
	if err != nil {
		log.Printf("[WARN] bad audit action %q in row %d: %v", r.Action, r.ID, err)
	}
	result, err := enum.ParseAuditResult(r.Result)
	if err != nil {
		log.Printf("[WARN] bad audit result %q in row %d: %v", r.Result, r.ID, err)
	}

	return AuditEntry{
		ID:        r.ID,
		Timestamp: ts,
		Action:    action,
		Actor:     r.Actor,
		Result:    result,
		IP:        r.IP.String,
		UserAgent: r.UserAgent.String,
		RequestID: r.RequestID.String,
	}
}

// DeleteAuditOlderThan removes audit entries older than the given time.
// Returns the number of deleted entries.
func (s *Store) DeleteAuditOlderThan(ctx context.Context, olderThan time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := s.adoptQuery("DELETE FROM audit_log WHERE timestamp < ?")
	result, err := s.db.ExecContext(ctx, query, olderThan.UTC().Format(time.RFC3339))
	if err != nil {
		return 0, fmt.Errorf("failed to delete old audit entries: %w", err)
	}

	count, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get affected rows: %w", err)
	}
	if count > 0 {
		log.Printf("[DEBUG] deleted %d audit entries older than %s", count, olderThan.Format(time.RFC3339))
	}
	return count, nil
}
