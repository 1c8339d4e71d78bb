package inventory

import (
	"context"
	"log/slog"

	"github.com/ledgerdesk/backoffice/internal/auth"
	"github.com/ledgerdesk/backoffice/internal/platform/httpx"
	"github.com/ledgerdesk/backoffice/internal/rbac"
	"github.com/ledgerdesk/backoffice/internal/shared"
)

// Service applies the inventory access policy around the repository.
type Service struct {
	repo   Repository
	audit  shared.AuditRecorder
	logger *slog.Logger
}

// NewService constructs an inventory service.
func NewService(repo Repository, audit shared.AuditRecorder, logger *slog.Logger) *Service {
	return &Service{repo: repo, audit: audit, logger: logger}
}

// ListItems returns the items p may see.
func (s *Service) ListItems(ctx context.Context, p auth.Principal, page shared.PageRequest) ([]Item, int, error) {
	filter, err := rbac.ScopeFilter(p, rbac.OpRead, rbac.ResourceInventory)
	if err != nil {
		return nil, 0, err
	}
	return s.repo.ListItems(ctx, filter, page)
}

// CreateItem records a new item owned by p.
func (s *Service) CreateItem(ctx context.Context, p auth.Principal, req CreateItemRequest) (int64, error) {
	if _, err := rbac.ScopeFilter(p, rbac.OpCreate, rbac.ResourceInventory); err != nil {
		return 0, err
	}
	if err := rbac.CheckNonNegative(p, rbac.ResourceInventory, "quantity", float64(req.Quantity)); err != nil {
		return 0, err
	}
	return s.repo.CreateItem(ctx, Item{
		ItemName:         req.ItemName,
		Quantity:         req.Quantity,
		UnitPrice:        req.UnitPrice,
		TotalValue:       valueOf(req.Quantity, req.UnitPrice),
		ReorderLevel:     req.ReorderLevel,
		RecordedByUserID: p.ID,
	})
}

// UpdateItem changes an item. Staff may only touch their own items and may
// not change pricing fields.
func (s *Service) UpdateItem(ctx context.Context, p auth.Principal, id int64, req UpdateItemRequest) error {
	filter, err := rbac.ScopeFilter(p, rbac.OpUpdate, rbac.ResourceInventory)
	if err != nil {
		return err
	}
	fields := req.Fields()
	if len(fields) == 0 {
		return httpx.Validation("no fields to update")
	}
	if err := rbac.CheckFields(p, rbac.ResourceInventory, fields); err != nil {
		return err
	}
	if err := httpx.Validate(req); err != nil {
		return err
	}
	ok, err := s.repo.UpdateItem(ctx, filter, id, req)
	if err != nil {
		return err
	}
	if !ok {
		return httpx.NotFound("Inventory item")
	}
	if p.IsAdmin() {
		shared.RecordQuietly(ctx, s.audit, s.logger, shared.AuditLog{
			ActorID: p.ID, Role: string(p.Role), Action: "update", Entity: string(rbac.ResourceInventory), EntityID: id,
			Meta: map[string]any{"fields": fields},
		})
	}
	return nil
}

// DeleteItem removes an item.
func (s *Service) DeleteItem(ctx context.Context, p auth.Principal, id int64) error {
	return s.remove(ctx, p, rbac.ResourceInventory, "Inventory item", id, s.repo.DeleteItem)
}

// ListAdjustments returns the adjustments p may see.
func (s *Service) ListAdjustments(ctx context.Context, p auth.Principal, page shared.PageRequest) ([]Adjustment, int, error) {
	filter, err := rbac.ScopeFilter(p, rbac.OpRead, rbac.ResourceStockAdjustments)
	if err != nil {
		return nil, 0, err
	}
	return s.repo.ListAdjustments(ctx, filter, page)
}

// CreateAdjustment applies a quantity correction and records it in one
// transaction. The target item must be one p may update.
func (s *Service) CreateAdjustment(ctx context.Context, p auth.Principal, req CreateAdjustmentRequest) (int64, error) {
	if _, err := rbac.ScopeFilter(p, rbac.OpCreate, rbac.ResourceStockAdjustments); err != nil {
		return 0, err
	}
	itemFilter, err := rbac.ScopeFilter(p, rbac.OpUpdate, rbac.ResourceInventory)
	if err != nil {
		return 0, err
	}
	var id int64
	err = s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		ok, err := tx.ApplyDelta(ctx, itemFilter, req.ItemID, req.QuantityAdjusted)
		if err != nil {
			return err
		}
		if !ok {
			return httpx.NotFound("Inventory item")
		}
		id, err = tx.InsertAdjustment(ctx, Adjustment{
			ItemID:           req.ItemID,
			QuantityAdjusted: req.QuantityAdjusted,
			Reason:           req.Reason,
			RecordedByUserID: p.ID,
		})
		return err
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

// DeleteAdjustment removes an adjustment record.
func (s *Service) DeleteAdjustment(ctx context.Context, p auth.Principal, id int64) error {
	return s.remove(ctx, p, rbac.ResourceStockAdjustments, "Stock adjustment", id, s.repo.DeleteAdjustment)
}

// ListMovements returns the movements p may see.
func (s *Service) ListMovements(ctx context.Context, p auth.Principal, page shared.PageRequest) ([]Movement, int, error) {
	filter, err := rbac.ScopeFilter(p, rbac.OpRead, rbac.ResourceStockMovements)
	if err != nil {
		return nil, 0, err
	}
	return s.repo.ListMovements(ctx, filter, page)
}

// CreateMovement records a movement owned by p.
func (s *Service) CreateMovement(ctx context.Context, p auth.Principal, req CreateMovementRequest) (int64, error) {
	if _, err := rbac.ScopeFilter(p, rbac.OpCreate, rbac.ResourceStockMovements); err != nil {
		return 0, err
	}
	return s.repo.CreateMovement(ctx, Movement{
		ItemID:           req.ItemID,
		QuantityMoved:    req.QuantityMoved,
		FromLocationID:   req.FromLocationID,
		ToLocationID:     req.ToLocationID,
		RecordedByUserID: p.ID,
	})
}

// DeleteMovement removes a movement.
func (s *Service) DeleteMovement(ctx context.Context, p auth.Principal, id int64) error {
	return s.remove(ctx, p, rbac.ResourceStockMovements, "Stock movement", id, s.repo.DeleteMovement)
}

// ReorderCandidates lists items at or below their reorder level.
func (s *Service) ReorderCandidates(ctx context.Context) ([]Item, error) {
	return s.repo.ReorderCandidates(ctx)
}

type deleteFunc func(ctx context.Context, filter rbac.RowFilter, id int64) (bool, error)

func (s *Service) remove(ctx context.Context, p auth.Principal, res rbac.Resource, label string, id int64, del deleteFunc) error {
	filter, err := rbac.ScopeFilter(p, rbac.OpDelete, res)
	if err != nil {
		return err
	}
	ok, err := del(ctx, filter, id)
	if err != nil {
		return err
	}
	if !ok {
		return httpx.NotFound(label)
	}
	shared.RecordQuietly(ctx, s.audit, s.logger, shared.AuditLog{
		ActorID: p.ID, Role: string(p.Role), Action: "delete", Entity: string(res), EntityID: id,
	})
	return nil
}
