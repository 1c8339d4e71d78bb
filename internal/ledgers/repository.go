package ledgers

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/ledgerdesk/backoffice/internal/platform/db"
	"github.com/ledgerdesk/backoffice/internal/rbac"
	"github.com/ledgerdesk/backoffice/internal/shared"
)

// Repository persists both ledgers.
type Repository interface {
	ListCustomerEntries(ctx context.Context, filter rbac.RowFilter, customerID int64, page shared.PageRequest) ([]CustomerEntry, int, error)
	CreateCustomerEntry(ctx context.Context, e CustomerEntry) (int64, error)
	DeleteCustomerEntry(ctx context.Context, filter rbac.RowFilter, id int64) (bool, error)

	ListSupplierEntries(ctx context.Context, filter rbac.RowFilter, supplierID int64, page shared.PageRequest) ([]SupplierEntry, int, error)
	CreateSupplierEntry(ctx context.Context, e SupplierEntry) (int64, error)
	DeleteSupplierEntry(ctx context.Context, filter rbac.RowFilter, id int64) (bool, error)
}

// PGRepository implements Repository using PostgreSQL.
type PGRepository struct {
	db db.Querier
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(q db.Querier) *PGRepository {
	return &PGRepository{db: q}
}

// scoped extends filter's WHERE clause with an optional account id match.
func scoped(filter rbac.RowFilter, column string, accountID int64) (string, []any) {
	where, args := filter.Where(1)
	if accountID <= 0 {
		return where, args
	}
	clause := fmt.Sprintf("%s = $%d", column, len(args)+1)
	if where == "" {
		return " WHERE " + clause, []any{accountID}
	}
	return where + " AND " + clause, append(args, accountID)
}

// ListCustomerEntries returns one page of customer ledger rows, optionally
// for a single customer.
func (r *PGRepository) ListCustomerEntries(ctx context.Context, filter rbac.RowFilter, customerID int64, page shared.PageRequest) ([]CustomerEntry, int, error) {
	where, args := scoped(filter, "customer_id", customerID)
	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM customer_ledger`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count customer ledger: %w", err)
	}
	query, args := db.Paginate(`SELECT id, customer_id, description, amount, type, recorded_by_user_id, created_at
FROM customer_ledger`+where+` ORDER BY created_at DESC, id DESC`, args, page.Limit, page.Offset())
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list customer ledger: %w", err)
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (CustomerEntry, error) {
		var e CustomerEntry
		err := row.Scan(&e.ID, &e.CustomerID, &e.Description, &e.Amount, &e.Type, &e.RecordedByUserID, &e.CreatedAt)
		return e, err
	})
	if err != nil {
		return nil, 0, fmt.Errorf("scan customer ledger: %w", err)
	}
	return out, total, nil
}

// CreateCustomerEntry inserts a customer ledger row.
func (r *PGRepository) CreateCustomerEntry(ctx context.Context, e CustomerEntry) (int64, error) {
	const query = `INSERT INTO customer_ledger (customer_id, description, amount, type, recorded_by_user_id)
VALUES ($1, $2, $3, $4, $5) RETURNING id`
	var id int64
	if err := r.db.QueryRow(ctx, query, e.CustomerID, e.Description, e.Amount, e.Type, e.RecordedByUserID).Scan(&id); err != nil {
		return 0, fmt.Errorf("insert customer ledger: %w", err)
	}
	return id, nil
}

// DeleteCustomerEntry removes a customer ledger row within filter.
func (r *PGRepository) DeleteCustomerEntry(ctx context.Context, filter rbac.RowFilter, id int64) (bool, error) {
	return r.delete(ctx, "customer_ledger", filter, id)
}

// ListSupplierEntries returns one page of supplier ledger rows, optionally
// for a single supplier.
func (r *PGRepository) ListSupplierEntries(ctx context.Context, filter rbac.RowFilter, supplierID int64, page shared.PageRequest) ([]SupplierEntry, int, error) {
	where, args := scoped(filter, "supplier_id", supplierID)
	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM supplier_ledger`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count supplier ledger: %w", err)
	}
	query, args := db.Paginate(`SELECT id, supplier_id, transaction_type, amount, description, recorded_by_user_id, created_at
FROM supplier_ledger`+where+` ORDER BY created_at DESC, id DESC`, args, page.Limit, page.Offset())
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list supplier ledger: %w", err)
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (SupplierEntry, error) {
		var e SupplierEntry
		err := row.Scan(&e.ID, &e.SupplierID, &e.TransactionType, &e.Amount, &e.Description, &e.RecordedByUserID, &e.CreatedAt)
		return e, err
	})
	if err != nil {
		return nil, 0, fmt.Errorf("scan supplier ledger: %w", err)
	}
	return out, total, nil
}

// CreateSupplierEntry inserts a supplier ledger row.
func (r *PGRepository) CreateSupplierEntry(ctx context.Context, e SupplierEntry) (int64, error) {
	const query = `INSERT INTO supplier_ledger (supplier_id, transaction_type, amount, description, recorded_by_user_id)
VALUES ($1, $2, $3, $4, $5) RETURNING id`
	var id int64
	if err := r.db.QueryRow(ctx, query, e.SupplierID, e.TransactionType, e.Amount, e.Description, e.RecordedByUserID).Scan(&id); err != nil {
		return 0, fmt.Errorf("insert supplier ledger: %w", err)
	}
	return id, nil
}

// DeleteSupplierEntry removes a supplier ledger row within filter.
func (r *PGRepository) DeleteSupplierEntry(ctx context.Context, filter rbac.RowFilter, id int64) (bool, error) {
	return r.delete(ctx, "supplier_ledger", filter, id)
}

func (r *PGRepository) delete(ctx context.Context, table string, filter rbac.RowFilter, id int64) (bool, error) {
	and, args := filter.And(2)
	tag, err := r.db.Exec(ctx, `DELETE FROM `+table+` WHERE id = $1`+and, append([]any{id}, args...)...)
	if err != nil {
		return false, fmt.Errorf("delete from %s: %w", table, err)
	}
	return tag.RowsAffected() > 0, nil
}

var _ Repository = (*PGRepository)(nil)
