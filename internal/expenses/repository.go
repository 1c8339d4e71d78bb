package expenses

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/ledgerdesk/backoffice/internal/platform/db"
	"github.com/ledgerdesk/backoffice/internal/rbac"
	"github.com/ledgerdesk/backoffice/internal/shared"
)

// Repository persists expenses and company expenses.
type Repository interface {
	ListExpenses(ctx context.Context, filter rbac.RowFilter, page shared.PageRequest) ([]Expense, int, error)
	CreateExpense(ctx context.Context, e Expense) (int64, error)
	DeleteExpense(ctx context.Context, filter rbac.RowFilter, id int64) (bool, error)

	ListCompanyExpenses(ctx context.Context, filter rbac.RowFilter, page shared.PageRequest) ([]CompanyExpense, int, error)
	CreateCompanyExpense(ctx context.Context, e CompanyExpense) (int64, error)
	DeleteCompanyExpense(ctx context.Context, filter rbac.RowFilter, id int64) (bool, error)
}

// PGRepository implements Repository using PostgreSQL.
type PGRepository struct {
	db db.Querier
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(q db.Querier) *PGRepository {
	return &PGRepository{db: q}
}

// ListExpenses returns one page of expenses visible through filter.
func (r *PGRepository) ListExpenses(ctx context.Context, filter rbac.RowFilter, page shared.PageRequest) ([]Expense, int, error) {
	where, args := filter.Where(1)
	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM expenses`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count expenses: %w", err)
	}
	query, args := db.Paginate(`SELECT id, lorry_id, expense_type, amount, description, expense_date::text, recorded_by_user_id, created_at
FROM expenses`+where+` ORDER BY expense_date DESC, id DESC`, args, page.Limit, page.Offset())
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list expenses: %w", err)
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Expense, error) {
		var e Expense
		err := row.Scan(&e.ID, &e.LorryID, &e.ExpenseType, &e.Amount, &e.Description, &e.ExpenseDate, &e.RecordedByUserID, &e.CreatedAt)
		return e, err
	})
	if err != nil {
		return nil, 0, fmt.Errorf("scan expenses: %w", err)
	}
	return out, total, nil
}

// CreateExpense inserts an expense.
func (r *PGRepository) CreateExpense(ctx context.Context, e Expense) (int64, error) {
	const query = `INSERT INTO expenses (lorry_id, expense_type, amount, description, expense_date, recorded_by_user_id)
VALUES ($1, $2, $3, $4, $5::date, $6) RETURNING id`
	var id int64
	if err := r.db.QueryRow(ctx, query, e.LorryID, e.ExpenseType, e.Amount, e.Description, e.ExpenseDate, e.RecordedByUserID).Scan(&id); err != nil {
		return 0, fmt.Errorf("insert expense: %w", err)
	}
	return id, nil
}

// DeleteExpense removes an expense within filter.
func (r *PGRepository) DeleteExpense(ctx context.Context, filter rbac.RowFilter, id int64) (bool, error) {
	return r.delete(ctx, "expenses", filter, id)
}

// ListCompanyExpenses returns one page of company expenses visible through filter.
func (r *PGRepository) ListCompanyExpenses(ctx context.Context, filter rbac.RowFilter, page shared.PageRequest) ([]CompanyExpense, int, error) {
	where, args := filter.Where(1)
	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM company_expenses`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count company expenses: %w", err)
	}
	query, args := db.Paginate(`SELECT id, description, amount, initiated_by_user_id, created_at
FROM company_expenses`+where+` ORDER BY created_at DESC, id DESC`, args, page.Limit, page.Offset())
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list company expenses: %w", err)
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (CompanyExpense, error) {
		var e CompanyExpense
		err := row.Scan(&e.ID, &e.Description, &e.Amount, &e.InitiatedByUserID, &e.CreatedAt)
		return e, err
	})
	if err != nil {
		return nil, 0, fmt.Errorf("scan company expenses: %w", err)
	}
	return out, total, nil
}

// CreateCompanyExpense inserts a company expense.
func (r *PGRepository) CreateCompanyExpense(ctx context.Context, e CompanyExpense) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `INSERT INTO company_expenses (description, amount, initiated_by_user_id) VALUES ($1, $2, $3) RETURNING id`,
		e.Description, e.Amount, e.InitiatedByUserID).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert company expense: %w", err)
	}
	return id, nil
}

// DeleteCompanyExpense removes a company expense within filter.
func (r *PGRepository) DeleteCompanyExpense(ctx context.Context, filter rbac.RowFilter, id int64) (bool, error) {
	return r.delete(ctx, "company_expenses", filter, id)
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
