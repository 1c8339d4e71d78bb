package suppliers

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/ledgerdesk/backoffice/internal/masterdata/shared"
	"github.com/ledgerdesk/backoffice/internal/platform/db"
	"github.com/ledgerdesk/backoffice/internal/rbac"
)

type Repository interface {
	List(ctx context.Context, filter rbac.RowFilter, filters shared.ListFilters) ([]Supplier, int, error)
	Create(ctx context.Context, supplier Supplier) (int64, error)
	Update(ctx context.Context, filter rbac.RowFilter, id int64, req UpdateRequest) (bool, error)
	Delete(ctx context.Context, filter rbac.RowFilter, id int64) (bool, error)
}

type repository struct {
	db db.Querier
}

func NewRepository(q db.Querier) Repository {
	return &repository{db: q}
}

var sortColumns = []string{"name", "contact_name", "email", "created_at"}

func (r *repository) List(ctx context.Context, filter rbac.RowFilter, filters shared.ListFilters) ([]Supplier, int, error) {
	where, args := filter.Where(1)
	if filters.Search != "" {
		n := len(args) + 1
		clause := fmt.Sprintf("(name ILIKE $%d OR contact_name ILIKE $%d OR email ILIKE $%d)", n, n, n)
		if where == "" {
			where = " WHERE " + clause
		} else {
			where += " AND " + clause
		}
		args = append(args, filters.SearchPattern())
	}

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM suppliers`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count suppliers: %w", err)
	}

	query, args := db.Paginate(`SELECT id, name, contact_name, email, phone, address, recorded_by_user_id, created_at, updated_at
FROM suppliers`+where+` ORDER BY `+filters.OrderBy(sortColumns, "name"), args, filters.Limit, filters.Offset())
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list suppliers: %w", err)
	}
	suppliers, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Supplier, error) {
		var s Supplier
		err := row.Scan(&s.ID, &s.Name, &s.ContactName, &s.Email, &s.Phone, &s.Address, &s.RecordedByUserID, &s.CreatedAt, &s.UpdatedAt)
		return s, err
	})
	if err != nil {
		return nil, 0, fmt.Errorf("scan suppliers: %w", err)
	}
	return suppliers, total, nil
}

func (r *repository) Create(ctx context.Context, supplier Supplier) (int64, error) {
	query := `INSERT INTO suppliers (name, contact_name, email, phone, address, recorded_by_user_id) VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	var id int64
	err := r.db.QueryRow(ctx, query, supplier.Name, supplier.ContactName, supplier.Email, supplier.Phone, supplier.Address, supplier.RecordedByUserID).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert supplier: %w", err)
	}
	return id, nil
}

func (r *repository) Update(ctx context.Context, filter rbac.RowFilter, id int64, req UpdateRequest) (bool, error) {
	and, args := filter.And(7)
	query := `UPDATE suppliers SET
	name = COALESCE($1, name),
	contact_name = COALESCE($2, contact_name),
	email = COALESCE($3, email),
	phone = COALESCE($4, phone),
	address = COALESCE($5, address),
	updated_at = NOW()
WHERE id = $6` + and
	tag, err := r.db.Exec(ctx, query, append([]any{req.Name, req.ContactName, req.Email, req.Phone, req.Address, id}, args...)...)
	if err != nil {
		return false, fmt.Errorf("update supplier: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *repository) Delete(ctx context.Context, filter rbac.RowFilter, id int64) (bool, error) {
	and, args := filter.And(2)
	tag, err := r.db.Exec(ctx, `DELETE FROM suppliers WHERE id = $1`+and, append([]any{id}, args...)...)
	if err != nil {
		return false, fmt.Errorf("delete supplier: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
