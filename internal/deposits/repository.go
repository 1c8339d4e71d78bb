package deposits

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/ledgerdesk/backoffice/internal/platform/db"
	"github.com/ledgerdesk/backoffice/internal/rbac"
)

// Repository persists bank deposits.
type Repository interface {
	List(ctx context.Context, filter rbac.RowFilter) ([]Deposit, error)
	Create(ctx context.Context, d Deposit) (int64, error)
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

// List returns every deposit visible through filter, newest first.
func (r *PGRepository) List(ctx context.Context, filter rbac.RowFilter) ([]Deposit, error) {
	where, args := filter.Where(1)
	rows, err := r.db.Query(ctx, `SELECT id, amount, description, initiated_at, staff_id FROM bank_deposits`+where+` ORDER BY initiated_at DESC, id DESC`, args...)
	if err != nil {
		return nil, fmt.Errorf("list bank deposits: %w", err)
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Deposit, error) {
		var d Deposit
		err := row.Scan(&d.ID, &d.Amount, &d.Description, &d.InitiatedAt, &d.StaffID)
		return d, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan bank deposits: %w", err)
	}
	return out, nil
}

// Create inserts a deposit.
func (r *PGRepository) Create(ctx context.Context, d Deposit) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `INSERT INTO bank_deposits (amount, description, staff_id) VALUES ($1, $2, $3) RETURNING id`,
		d.Amount, d.Description, d.StaffID).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert bank deposit: %w", err)
	}
	return id, nil
}

// Delete removes a deposit within filter.
func (r *PGRepository) Delete(ctx context.Context, filter rbac.RowFilter, id int64) (bool, error) {
	and, args := filter.And(2)
	tag, err := r.db.Exec(ctx, `DELETE FROM bank_deposits WHERE id = $1`+and, append([]any{id}, args...)...)
	if err != nil {
		return false, fmt.Errorf("delete bank deposit: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

var _ Repository = (*PGRepository)(nil)
