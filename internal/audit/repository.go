package audit

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/ledgerdesk/backoffice/internal/platform/db"
)

// Repository reads audit_logs.
type Repository interface {
	TimelineWindow(ctx context.Context, filters TimelineFilters, offset, limit int) ([]TimelineRow, error)
	TimelineAll(ctx context.Context, filters TimelineFilters, limit int) ([]TimelineRow, error)
}

// PGRepository is the Postgres-backed Repository.
type PGRepository struct {
	db db.Querier
}

// NewRepository constructs a repository over q.
func NewRepository(q db.Querier) *PGRepository {
	return &PGRepository{db: q}
}

const timelineColumns = `id, occurred_at, actor_id, actor_role, action, entity, entity_id, meta`

// TimelineWindow returns up to limit rows after skipping offset, newest first.
func (r *PGRepository) TimelineWindow(ctx context.Context, filters TimelineFilters, offset, limit int) ([]TimelineRow, error) {
	where, args := timelineWhere(filters)
	query, args := db.Paginate(`SELECT `+timelineColumns+` FROM audit_logs`+where+` ORDER BY occurred_at DESC, id DESC`, args, limit, offset)
	return r.query(ctx, query, args)
}

// TimelineAll returns every matching row up to limit, newest first.
func (r *PGRepository) TimelineAll(ctx context.Context, filters TimelineFilters, limit int) ([]TimelineRow, error) {
	where, args := timelineWhere(filters)
	query, args := db.Paginate(`SELECT `+timelineColumns+` FROM audit_logs`+where+` ORDER BY occurred_at DESC, id DESC`, args, limit, 0)
	return r.query(ctx, query, args)
}

func (r *PGRepository) query(ctx context.Context, query string, args []any) ([]TimelineRow, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list audit logs: %w", err)
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (TimelineRow, error) {
		var t TimelineRow
		err := row.Scan(&t.ID, &t.At, &t.ActorID, &t.ActorRole, &t.Action, &t.Entity, &t.EntityID, &t.Meta)
		return t, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan audit logs: %w", err)
	}
	return out, nil
}

// timelineWhere builds the filter clause; the upper bound is exclusive of the
// day after To.
func timelineWhere(f TimelineFilters) (string, []any) {
	var (
		conds []string
		args  []any
	)
	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, strings.ReplaceAll(cond, "?", "$"+strconv.Itoa(len(args))))
	}
	if !f.From.IsZero() {
		add("occurred_at >= ?", f.From)
	}
	if !f.To.IsZero() {
		add("occurred_at < ?", f.To.AddDate(0, 0, 1))
	}
	if f.ActorID > 0 {
		add("actor_id = ?", f.ActorID)
	}
	if f.Entity != "" {
		add("entity = ?", f.Entity)
	}
	if f.Action != "" {
		add("action = ?", f.Action)
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}
