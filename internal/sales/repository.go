package sales

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/ledgerdesk/backoffice/internal/platform/db"
	"github.com/ledgerdesk/backoffice/internal/rbac"
	"github.com/ledgerdesk/backoffice/internal/shared"
)

// Repository persists sales.
type Repository interface {
	List(ctx context.Context, filter rbac.RowFilter, page shared.PageRequest) ([]Sale, int, error)
	Create(ctx context.Context, sale Sale) (int64, error)
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

const saleColumns = `id, customer_name, total_amount, paid_amount, payment_status, payment_method, profit, recorded_by_user_id, created_at`

// List returns one page of sales visible through filter, newest first.
func (r *PGRepository) List(ctx context.Context, filter rbac.RowFilter, page shared.PageRequest) ([]Sale, int, error) {
	where, args := filter.Where(1)

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM sales`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count sales: %w", err)
	}

	query, args := db.Paginate(`SELECT `+saleColumns+` FROM sales`+where+` ORDER BY created_at DESC, id DESC`, args, page.Limit, page.Offset())
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list sales: %w", err)
	}
	sales, err := pgx.CollectRows(rows, scanSale)
	if err != nil {
		return nil, 0, fmt.Errorf("scan sales: %w", err)
	}
	return sales, total, nil
}

// Create inserts a sale and returns its id.
func (r *PGRepository) Create(ctx context.Context, sale Sale) (int64, error) {
	const query = `INSERT INTO sales (customer_name, total_amount, paid_amount, payment_status, payment_method, profit, recorded_by_user_id)
VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	var id int64
	err := r.db.QueryRow(ctx, query,
		sale.CustomerName, sale.TotalAmount, sale.PaidAmount, sale.PaymentStatus, sale.PaymentMethod, sale.Profit, sale.RecordedByUserID,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert sale: %w", err)
	}
	return id, nil
}

// Delete removes a sale within filter and reports whether a row matched.
func (r *PGRepository) Delete(ctx context.Context, filter rbac.RowFilter, id int64) (bool, error) {
	and, args := filter.And(2)
	tag, err := r.db.Exec(ctx, `DELETE FROM sales WHERE id = $1`+and, append([]any{id}, args...)...)
	if err != nil {
		return false, fmt.Errorf("delete sale: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func scanSale(row pgx.CollectableRow) (Sale, error) {
	var s Sale
	err := row.Scan(&s.ID, &s.CustomerName, &s.TotalAmount, &s.PaidAmount, &s.PaymentStatus, &s.PaymentMethod, &s.Profit, &s.RecordedByUserID, &s.CreatedAt)
	return s, err
}

var _ Repository = (*PGRepository)(nil)
