package customers

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/ledgerdesk/backoffice/internal/masterdata/shared"
	"github.com/ledgerdesk/backoffice/internal/platform/db"
	"github.com/ledgerdesk/backoffice/internal/rbac"
)

type Repository interface {
	List(ctx context.Context, filter rbac.RowFilter, filters shared.ListFilters) ([]Customer, int, error)
	Create(ctx context.Context, customer Customer) (int64, error)
	Update(ctx context.Context, filter rbac.RowFilter, id int64, req UpdateRequest) (bool, error)
	Delete(ctx context.Context, filter rbac.RowFilter, id int64) (bool, error)
}

type repository struct {
	db db.Querier
}

func NewRepository(q db.Querier) Repository {
	return &repository{db: q}
}

var sortColumns = []string{"name", "email", "created_at"}

func (r *repository) List(ctx context.Context, filter rbac.RowFilter, filters shared.ListFilters) ([]Customer, int, error) {
	where, args := filter.Where(1)
	if filters.Search != "" {
		n := len(args) + 1
		clause := fmt.Sprintf("(name ILIKE $%d OR email ILIKE $%d OR phone ILIKE $%d)", n, n, n)
		if where == "" {
			where = " WHERE " + clause
		} else {
			where += " AND " + clause
		}
		args = append(args, filters.SearchPattern())
	}

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM customers`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count customers: %w", err)
	}

	query, args := db.Paginate(`SELECT id, name, email, phone, recorded_by_user_id, created_at, updated_at
FROM customers`+where+` ORDER BY `+filters.OrderBy(sortColumns, "name"), args, filters.Limit, filters.Offset())
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list customers: %w", err)
	}
	customers, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Customer, error) {
		var c Customer
		err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.RecordedByUserID, &c.CreatedAt, &c.UpdatedAt)
		return c, err
	})
	if err != nil {
		return nil, 0, fmt.Errorf("scan customers: %w", err)
	}
	return customers, total, nil
}

func (r *repository) Create(ctx context.Context, customer Customer) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `INSERT INTO customers (name, email, phone, recorded_by_user_id) VALUES ($1, $2, $3, $4) RETURNING id`,
		customer.Name, customer.Email, customer.Phone, customer.RecordedByUserID).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert customer: %w", err)
	}
	return id, nil
}

func (r *repository) Update(ctx context.Context, filter rbac.RowFilter, id int64, req UpdateRequest) (bool, error) {
	and, args := filter.And(5)
	query := `UPDATE customers SET
	name = COALESCE($1, name),
	email = COALESCE($2, email),
	phone = COALESCE($3, phone),
	updated_at = NOW()
WHERE id = $4` + and
	tag, err := r.db.Exec(ctx, query, append([]any{req.Name, req.Email, req.Phone, id}, args...)...)
	if err != nil {
		return false, fmt.Errorf("update customer: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *repository) Delete(ctx context.Context, filter rbac.RowFilter, id int64) (bool, error) {
	and, args := filter.And(2)
	tag, err := r.db.Exec(ctx, `DELETE FROM customers WHERE id = $1`+and, append([]any{id}, args...)...)
	if err != nil {
		return false, fmt.Errorf("delete customer: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
