package inventory

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/ledgerdesk/backoffice/internal/platform/db"
	"github.com/ledgerdesk/backoffice/internal/rbac"
	"github.com/ledgerdesk/backoffice/internal/shared"
)

// Repository persists inventory items, adjustments and movements.
type Repository interface {
	WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error

	ListItems(ctx context.Context, filter rbac.RowFilter, page shared.PageRequest) ([]Item, int, error)
	CreateItem(ctx context.Context, item Item) (int64, error)
	UpdateItem(ctx context.Context, filter rbac.RowFilter, id int64, req UpdateItemRequest) (bool, error)
	DeleteItem(ctx context.Context, filter rbac.RowFilter, id int64) (bool, error)
	ReorderCandidates(ctx context.Context) ([]Item, error)

	ListAdjustments(ctx context.Context, filter rbac.RowFilter, page shared.PageRequest) ([]Adjustment, int, error)
	DeleteAdjustment(ctx context.Context, filter rbac.RowFilter, id int64) (bool, error)

	ListMovements(ctx context.Context, filter rbac.RowFilter, page shared.PageRequest) ([]Movement, int, error)
	CreateMovement(ctx context.Context, m Movement) (int64, error)
	DeleteMovement(ctx context.Context, filter rbac.RowFilter, id int64) (bool, error)
}

// TxRepository is the statement set available inside a transaction.
type TxRepository interface {
	ApplyDelta(ctx context.Context, filter rbac.RowFilter, itemID, delta int64) (bool, error)
	InsertAdjustment(ctx context.Context, adj Adjustment) (int64, error)
}

// PGRepository implements Repository using PostgreSQL.
type PGRepository struct {
	pool *db.Pool
	db   db.Querier
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *db.Pool) *PGRepository {
	return &PGRepository{pool: pool, db: pool}
}

// WithTx runs fn in a single transaction.
func (r *PGRepository) WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		return fn(ctx, pgTx{db: tx})
	})
}

const itemColumns = `id, item_name, quantity, unit_price, total_value, reorder_level, recorded_by_user_id, created_at, updated_at`

func scanItem(row pgx.CollectableRow) (Item, error) {
	var it Item
	err := row.Scan(&it.ID, &it.ItemName, &it.Quantity, &it.UnitPrice, &it.TotalValue, &it.ReorderLevel, &it.RecordedByUserID, &it.CreatedAt, &it.UpdatedAt)
	return it, err
}

// ListItems returns one page of items visible through filter.
func (r *PGRepository) ListItems(ctx context.Context, filter rbac.RowFilter, page shared.PageRequest) ([]Item, int, error) {
	where, args := filter.Where(1)
	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM inventory`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count inventory: %w", err)
	}
	query, args := db.Paginate(`SELECT `+itemColumns+` FROM inventory`+where+` ORDER BY item_name ASC, id ASC`, args, page.Limit, page.Offset())
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list inventory: %w", err)
	}
	items, err := pgx.CollectRows(rows, scanItem)
	if err != nil {
		return nil, 0, fmt.Errorf("scan inventory: %w", err)
	}
	return items, total, nil
}

// CreateItem inserts an item.
func (r *PGRepository) CreateItem(ctx context.Context, item Item) (int64, error) {
	const query = `INSERT INTO inventory (item_name, quantity, unit_price, total_value, reorder_level, recorded_by_user_id)
VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	var id int64
	err := r.db.QueryRow(ctx, query, item.ItemName, item.Quantity, item.UnitPrice, item.TotalValue, item.ReorderLevel, item.RecordedByUserID).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert inventory item: %w", err)
	}
	return id, nil
}

// UpdateItem applies the present fields of req and recomputes total_value.
// Attribution columns are never written.
func (r *PGRepository) UpdateItem(ctx context.Context, filter rbac.RowFilter, id int64, req UpdateItemRequest) (bool, error) {
	and, args := filter.And(6)
	query := `UPDATE inventory SET
	item_name = COALESCE($1, item_name),
	quantity = COALESCE($2, quantity),
	unit_price = COALESCE($3, unit_price),
	reorder_level = COALESCE($4, reorder_level),
	total_value = COALESCE($2, quantity) * COALESCE($3, unit_price),
	updated_at = NOW()
WHERE id = $5` + and
	args = append([]any{req.ItemName, req.Quantity, req.UnitPrice, req.ReorderLevel, id}, args...)
	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("update inventory item: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// DeleteItem removes an item within filter.
func (r *PGRepository) DeleteItem(ctx context.Context, filter rbac.RowFilter, id int64) (bool, error) {
	return deleteWithin(ctx, r.db, "inventory", filter, id)
}

// ReorderCandidates lists every item at or below its reorder level.
func (r *PGRepository) ReorderCandidates(ctx context.Context) ([]Item, error) {
	rows, err := r.db.Query(ctx, `SELECT `+itemColumns+` FROM inventory WHERE quantity <= reorder_level ORDER BY quantity - reorder_level ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list reorder candidates: %w", err)
	}
	items, err := pgx.CollectRows(rows, scanItem)
	if err != nil {
		return nil, fmt.Errorf("scan reorder candidates: %w", err)
	}
	return items, nil
}

// ListAdjustments returns one page of adjustments visible through filter.
func (r *PGRepository) ListAdjustments(ctx context.Context, filter rbac.RowFilter, page shared.PageRequest) ([]Adjustment, int, error) {
	where, args := filter.Where(1)
	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM stock_adjustments`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count stock adjustments: %w", err)
	}
	query, args := db.Paginate(`SELECT id, item_id, quantity_adjusted, reason, adjustment_date, recorded_by_user_id
FROM stock_adjustments`+where+` ORDER BY adjustment_date DESC, id DESC`, args, page.Limit, page.Offset())
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list stock adjustments: %w", err)
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Adjustment, error) {
		var a Adjustment
		err := row.Scan(&a.ID, &a.ItemID, &a.QuantityAdjusted, &a.Reason, &a.AdjustmentDate, &a.RecordedByUserID)
		return a, err
	})
	if err != nil {
		return nil, 0, fmt.Errorf("scan stock adjustments: %w", err)
	}
	return out, total, nil
}

// DeleteAdjustment removes an adjustment record. The item quantity it
// changed is left as is.
func (r *PGRepository) DeleteAdjustment(ctx context.Context, filter rbac.RowFilter, id int64) (bool, error) {
	return deleteWithin(ctx, r.db, "stock_adjustments", filter, id)
}

// ListMovements returns one page of movements visible through filter.
func (r *PGRepository) ListMovements(ctx context.Context, filter rbac.RowFilter, page shared.PageRequest) ([]Movement, int, error) {
	where, args := filter.Where(1)
	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM stock_movements`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count stock movements: %w", err)
	}
	query, args := db.Paginate(`SELECT id, item_id, quantity_moved, from_location_id, to_location_id, movement_date, recorded_by_user_id
FROM stock_movements`+where+` ORDER BY movement_date DESC, id DESC`, args, page.Limit, page.Offset())
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list stock movements: %w", err)
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Movement, error) {
		var m Movement
		err := row.Scan(&m.ID, &m.ItemID, &m.QuantityMoved, &m.FromLocationID, &m.ToLocationID, &m.MovementDate, &m.RecordedByUserID)
		return m, err
	})
	if err != nil {
		return nil, 0, fmt.Errorf("scan stock movements: %w", err)
	}
	return out, total, nil
}

// CreateMovement inserts a movement.
func (r *PGRepository) CreateMovement(ctx context.Context, m Movement) (int64, error) {
	const query = `INSERT INTO stock_movements (item_id, quantity_moved, from_location_id, to_location_id, recorded_by_user_id)
VALUES ($1, $2, $3, $4, $5) RETURNING id`
	var id int64
	if err := r.db.QueryRow(ctx, query, m.ItemID, m.QuantityMoved, m.FromLocationID, m.ToLocationID, m.RecordedByUserID).Scan(&id); err != nil {
		return 0, fmt.Errorf("insert stock movement: %w", err)
	}
	return id, nil
}

// DeleteMovement removes a movement within filter.
func (r *PGRepository) DeleteMovement(ctx context.Context, filter rbac.RowFilter, id int64) (bool, error) {
	return deleteWithin(ctx, r.db, "stock_movements", filter, id)
}

type pgTx struct {
	db db.Querier
}

// ApplyDelta shifts an item's quantity by delta and recomputes its value.
func (t pgTx) ApplyDelta(ctx context.Context, filter rbac.RowFilter, itemID, delta int64) (bool, error) {
	and, args := filter.And(3)
	query := `UPDATE inventory SET quantity = quantity + $1, total_value = (quantity + $1) * unit_price, updated_at = NOW() WHERE id = $2` + and
	tag, err := t.db.Exec(ctx, query, append([]any{delta, itemID}, args...)...)
	if err != nil {
		return false, fmt.Errorf("apply stock delta: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// InsertAdjustment records the adjustment row.
func (t pgTx) InsertAdjustment(ctx context.Context, adj Adjustment) (int64, error) {
	const query = `INSERT INTO stock_adjustments (item_id, quantity_adjusted, reason, recorded_by_user_id) VALUES ($1, $2, $3, $4) RETURNING id`
	var id int64
	if err := t.db.QueryRow(ctx, query, adj.ItemID, adj.QuantityAdjusted, adj.Reason, adj.RecordedByUserID).Scan(&id); err != nil {
		return 0, fmt.Errorf("insert stock adjustment: %w", err)
	}
	return id, nil
}

func deleteWithin(ctx context.Context, q db.Querier, table string, filter rbac.RowFilter, id int64) (bool, error) {
	and, args := filter.And(2)
	tag, err := q.Exec(ctx, `DELETE FROM `+table+` WHERE id = $1`+and, append([]any{id}, args...)...)
	if err != nil {
		return false, fmt.Errorf("delete from %s: %w", table, err)
	}
	return tag.RowsAffected() > 0, nil
}

var _ Repository = (*PGRepository)(nil)
