package payroll

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/ledgerdesk/backoffice/internal/platform/db"
	"github.com/ledgerdesk/backoffice/internal/rbac"
	"github.com/ledgerdesk/backoffice/internal/shared"
)

// Repository persists payroll entries.
type Repository interface {
	List(ctx context.Context, filter rbac.RowFilter, page shared.PageRequest) ([]Entry, int, error)
	Create(ctx context.Context, e Entry) (int64, error)
	Update(ctx context.Context, filter rbac.RowFilter, id int64, req UpdateEntryRequest) (bool, error)
	Delete(ctx context.Context, filter rbac.RowFilter, id int64) (bool, error)
}

// PGRepository implements Repository using PostgreSQL.
type PGRepository struct {
	db db.Querier
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(q db.Querier) *PGRepository {
	return &PGRepository{db: q}
}

// List returns one page of entries visible through filter.
func (r *PGRepository) List(ctx context.Context, filter rbac.RowFilter, page shared.PageRequest) ([]Entry, int, error) {
	where, args := filter.Where(1)
	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM payroll`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count payroll: %w", err)
	}
	query, args := db.Paginate(`SELECT id, staff_id, month, salary_amount, payment_date::text, status, recorded_by_user_id, created_at
FROM payroll`+where+` ORDER BY month DESC, id DESC`, args, page.Limit, page.Offset())
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list payroll: %w", err)
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Entry, error) {
		var e Entry
		err := row.Scan(&e.ID, &e.StaffID, &e.Month, &e.SalaryAmount, &e.PaymentDate, &e.Status, &e.RecordedByUserID, &e.CreatedAt)
		return e, err
	})
	if err != nil {
		return nil, 0, fmt.Errorf("scan payroll: %w", err)
	}
	return out, total, nil
}

// Create inserts an entry.
func (r *PGRepository) Create(ctx context.Context, e Entry) (int64, error) {
	const query = `INSERT INTO payroll (staff_id, month, salary_amount, payment_date, status, recorded_by_user_id)
VALUES ($1, $2, $3, $4::date, $5, $6) RETURNING id`
	var id int64
	if err := r.db.QueryRow(ctx, query, e.StaffID, e.Month, e.SalaryAmount, e.PaymentDate, e.Status, e.RecordedByUserID).Scan(&id); err != nil {
		return 0, fmt.Errorf("insert payroll: %w", err)
	}
	return id, nil
}

// Update applies the present fields of req.
func (r *PGRepository) Update(ctx context.Context, filter rbac.RowFilter, id int64, req UpdateEntryRequest) (bool, error) {
	and, args := filter.And(6)
	query := `UPDATE payroll SET
	month = COALESCE($1, month),
	salary_amount = COALESCE($2, salary_amount),
	payment_date = COALESCE($3::date, payment_date),
	status = COALESCE($4, status)
WHERE id = $5` + and
	tag, err := r.db.Exec(ctx, query, append([]any{req.Month, req.SalaryAmount, req.PaymentDate, req.Status, id}, args...)...)
	if err != nil {
		return false, fmt.Errorf("update payroll: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// Delete removes an entry within filter.
func (r *PGRepository) Delete(ctx context.Context, filter rbac.RowFilter, id int64) (bool, error) {
	and, args := filter.And(2)
	tag, err := r.db.Exec(ctx, `DELETE FROM payroll WHERE id = $1`+and, append([]any{id}, args...)...)
	if err != nil {
		return false, fmt.Errorf("delete payroll: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

var _ Repository = (*PGRepository)(nil)
