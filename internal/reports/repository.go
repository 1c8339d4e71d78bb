package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/ledgerdesk/backoffice/internal/platform/db"
)

// Repository runs the aggregate queries behind the reports.
type Repository interface {
	Buckets(ctx context.Context, period Period, since time.Time) ([]Bucket, error)
	Totals(ctx context.Context) (sales, expenses float64, err error)
	PaidPayroll(ctx context.Context, month string) (float64, error)
	PaymentTotals(ctx context.Context) (PaymentTotals, error)
	PaymentDays(ctx context.Context, since time.Time) ([]PaymentDayRow, error)
}

// PaymentDayRow is a raw per-day payment aggregate.
type PaymentDayRow struct {
	Day      time.Time
	Cash     float64
	Transfer float64
}

// PGRepository implements Repository using PostgreSQL.
type PGRepository struct {
	db db.Querier
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(q db.Querier) *PGRepository {
	return &PGRepository{db: q}
}

const bucketsQuery = `WITH spent AS (
	SELECT expense_date::timestamptz AS at, amount FROM expenses WHERE expense_date >= $2::date
	UNION ALL
	SELECT created_at, amount FROM company_expenses WHERE created_at >= $2
),
s AS (
	SELECT date_trunc($1, created_at) AS bucket, SUM(total_amount) AS total
	FROM sales WHERE created_at >= $2 GROUP BY 1
),
e AS (
	SELECT date_trunc($1, at) AS bucket, SUM(amount) AS total
	FROM spent GROUP BY 1
)
SELECT COALESCE(s.bucket, e.bucket) AS bucket, COALESCE(s.total, 0), COALESCE(e.total, 0)
FROM s FULL OUTER JOIN e ON s.bucket = e.bucket
ORDER BY 1 ASC`

// Buckets sums sales and expenses per period bucket from since onwards.
func (r *PGRepository) Buckets(ctx context.Context, period Period, since time.Time) ([]Bucket, error) {
	rows, err := r.db.Query(ctx, bucketsQuery, string(period), since)
	if err != nil {
		return nil, fmt.Errorf("report buckets: %w", err)
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Bucket, error) {
		var b Bucket
		err := row.Scan(&b.Start, &b.Sales, &b.Expenses)
		return b, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan report buckets: %w", err)
	}
	return out, nil
}

// Totals returns all-time sales and expense sums.
func (r *PGRepository) Totals(ctx context.Context) (float64, float64, error) {
	const query = `SELECT
	(SELECT COALESCE(SUM(total_amount), 0) FROM sales),
	(SELECT COALESCE(SUM(amount), 0) FROM expenses) + (SELECT COALESCE(SUM(amount), 0) FROM company_expenses)`
	var sales, expenses float64
	if err := r.db.QueryRow(ctx, query).Scan(&sales, &expenses); err != nil {
		return 0, 0, fmt.Errorf("report totals: %w", err)
	}
	return sales, expenses, nil
}

// PaidPayroll sums salaries marked paid for month (YYYY-MM).
func (r *PGRepository) PaidPayroll(ctx context.Context, month string) (float64, error) {
	var total float64
	err := r.db.QueryRow(ctx, `SELECT COALESCE(SUM(salary_amount), 0) FROM payroll WHERE status = 'paid' AND month = $1`, month).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("report payroll total: %w", err)
	}
	return total, nil
}

// PaymentTotals sums collected sale amounts per payment method.
func (r *PGRepository) PaymentTotals(ctx context.Context) (PaymentTotals, error) {
	const query = `SELECT
	COALESCE(SUM(paid_amount) FILTER (WHERE payment_method = 'cash'), 0),
	COALESCE(SUM(paid_amount) FILTER (WHERE payment_method = 'transfer'), 0)
FROM sales`
	var t PaymentTotals
	if err := r.db.QueryRow(ctx, query).Scan(&t.CashTotal, &t.TransferTotal); err != nil {
		return PaymentTotals{}, fmt.Errorf("report payment totals: %w", err)
	}
	return t, nil
}

// PaymentDays sums collected amounts per method and day from since onwards.
func (r *PGRepository) PaymentDays(ctx context.Context, since time.Time) ([]PaymentDayRow, error) {
	const query = `SELECT date_trunc('day', created_at) AS day,
	COALESCE(SUM(paid_amount) FILTER (WHERE payment_method = 'cash'), 0),
	COALESCE(SUM(paid_amount) FILTER (WHERE payment_method = 'transfer'), 0)
FROM sales WHERE created_at >= $1
GROUP BY 1 ORDER BY 1 ASC`
	rows, err := r.db.Query(ctx, query, since)
	if err != nil {
		return nil, fmt.Errorf("report payment days: %w", err)
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (PaymentDayRow, error) {
		var d PaymentDayRow
		err := row.Scan(&d.Day, &d.Cash, &d.Transfer)
		return d, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan report payment days: %w", err)
	}
	return out, nil
}

var _ Repository = (*PGRepository)(nil)
