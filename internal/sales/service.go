package sales

import (
	"context"
	"log/slog"

	"github.com/ledgerdesk/backoffice/internal/auth"
	"github.com/ledgerdesk/backoffice/internal/platform/httpx"
	"github.com/ledgerdesk/backoffice/internal/rbac"
	"github.com/ledgerdesk/backoffice/internal/shared"
)

// Service applies the sales access policy around the repository.
type Service struct {
	repo    Repository
	audit   shared.AuditRecorder
	reports shared.Invalidator
	logger  *slog.Logger
}

// NewService constructs a sales service.
func NewService(repo Repository, audit shared.AuditRecorder, reports shared.Invalidator, logger *slog.Logger) *Service {
	return &Service{repo: repo, audit: audit, reports: reports, logger: logger}
}

// List returns the sales p may see.
func (s *Service) List(ctx context.Context, p auth.Principal, page shared.PageRequest) ([]Sale, int, error) {
	filter, err := rbac.ScopeFilter(p, rbac.OpRead, rbac.ResourceSales)
	if err != nil {
		return nil, 0, err
	}
	return s.repo.List(ctx, filter, page)
}

// ListByStaff returns sales recorded by one staff member. Admins choose the
// staff member with staffID (zero means everyone); staff always get their own.
func (s *Service) ListByStaff(ctx context.Context, p auth.Principal, staffID int64, page shared.PageRequest) ([]Sale, int, error) {
	filter, err := rbac.ScopeFilter(p, rbac.OpRead, rbac.ResourceSales)
	if err != nil {
		return nil, 0, err
	}
	if filter.All && staffID > 0 {
		filter = rbac.OwnerFilter(rbac.ResourceSales, staffID)
	}
	return s.repo.List(ctx, filter, page)
}

// Create records a sale owned by p.
func (s *Service) Create(ctx context.Context, p auth.Principal, req CreateSaleRequest) (int64, error) {
	if _, err := rbac.ScopeFilter(p, rbac.OpCreate, rbac.ResourceSales); err != nil {
		return 0, err
	}
	id, err := s.repo.Create(ctx, req.sale(p.ID))
	if err != nil {
		return 0, err
	}
	shared.BumpQuietly(ctx, s.reports, s.logger, "sales.create")
	return id, nil
}

// Delete removes a sale.
func (s *Service) Delete(ctx context.Context, p auth.Principal, id int64) error {
	filter, err := rbac.ScopeFilter(p, rbac.OpDelete, rbac.ResourceSales)
	if err != nil {
		return err
	}
	ok, err := s.repo.Delete(ctx, filter, id)
	if err != nil {
		return err
	}
	if !ok {
		return httpx.NotFound("Sale")
	}
	shared.RecordQuietly(ctx, s.audit, s.logger, shared.AuditLog{
		ActorID: p.ID, Role: string(p.Role), Action: "delete", Entity: string(rbac.ResourceSales), EntityID: id,
	})
	shared.BumpQuietly(ctx, s.reports, s.logger, "sales.delete")
	return nil
}
