package shared

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/ledgerdesk/backoffice/internal/platform/db"
)

// AuditLog represents a record stored in audit_logs.
type AuditLog struct {
	ActorID  int64
	Role     string
	Action   string
	Entity   string
	EntityID int64
	Meta     map[string]any
	At       time.Time
}

// AuditRecorder persists audit entries.
type AuditRecorder interface {
	Record(ctx context.Context, log AuditLog) error
}

// AuditLogger writes records into audit_logs.
type AuditLogger struct {
	db db.Querier
}

// NewAuditLogger returns a new AuditLogger.
func NewAuditLogger(q db.Querier) *AuditLogger {
	return &AuditLogger{db: q}
}

// Record persists the log entry.
func (l *AuditLogger) Record(ctx context.Context, log AuditLog) error {
	if l == nil || l.db == nil {
		return errors.New("audit logger not initialised")
	}
	if log.Action == "" || log.Entity == "" || log.EntityID == 0 {
		return errors.New("audit log requires action/entity/entity_id")
	}
	metaJSON, err := json.Marshal(log.Meta)
	if err != nil {
		return err
	}
	var at *time.Time
	if !log.At.IsZero() {
		at = &log.At
	}
	_, err = l.db.Exec(ctx, `INSERT INTO audit_logs (actor_id, actor_role, action, entity, entity_id, meta, occurred_at) VALUES ($1, $2, $3, $4, $5, $6, COALESCE($7, NOW()))`,
		log.ActorID, log.Role, log.Action, log.Entity, strconv.FormatInt(log.EntityID, 10), metaJSON, at)
	return err
}

// RecordQuietly records the entry and logs instead of failing when the
// audit write does not succeed; the audited change has already committed.
func RecordQuietly(ctx context.Context, rec AuditRecorder, logger *slog.Logger, log AuditLog) {
	if rec == nil {
		return
	}
	if err := rec.Record(ctx, log); err != nil && logger != nil {
		logger.Warn("audit record failed",
			slog.String("entity", log.Entity),
			slog.Int64("entity_id", log.EntityID),
			slog.String("action", log.Action),
			slog.Any("error", err))
	}
}
