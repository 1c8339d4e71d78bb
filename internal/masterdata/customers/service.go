package customers

import (
	"context"
	"log/slog"

	"github.com/ledgerdesk/backoffice/internal/auth"
	"github.com/ledgerdesk/backoffice/internal/masterdata/shared"
	"github.com/ledgerdesk/backoffice/internal/platform/httpx"
	"github.com/ledgerdesk/backoffice/internal/rbac"
	root "github.com/ledgerdesk/backoffice/internal/shared"
)

type Service struct {
	repo   Repository
	audit  root.AuditRecorder
	logger *slog.Logger
}

func NewService(repo Repository, audit root.AuditRecorder, logger *slog.Logger) *Service {
	return &Service{repo: repo, audit: audit, logger: logger}
}

// List returns customers. Every role sees the whole directory.
func (s *Service) List(ctx context.Context, p auth.Principal, filters shared.ListFilters) ([]Customer, int, error) {
	filter, err := rbac.ScopeFilter(p, rbac.OpRead, rbac.ResourceCustomers)
	if err != nil {
		return nil, 0, err
	}
	return s.repo.List(ctx, filter, filters)
}

func (s *Service) Create(ctx context.Context, p auth.Principal, req CreateRequest) (int64, error) {
	if _, err := rbac.ScopeFilter(p, rbac.OpCreate, rbac.ResourceCustomers); err != nil {
		return 0, err
	}
	return s.repo.Create(ctx, Customer{
		Name:             req.Name,
		Email:            req.Email,
		Phone:            req.Phone,
		RecordedByUserID: p.ID,
	})
}

func (s *Service) Update(ctx context.Context, p auth.Principal, id int64, req UpdateRequest) error {
	filter, err := rbac.ScopeFilter(p, rbac.OpUpdate, rbac.ResourceCustomers)
	if err != nil {
		return err
	}
	if req.empty() {
		return httpx.Validation("no fields to update")
	}
	ok, err := s.repo.Update(ctx, filter, id, req)
	if err != nil {
		return err
	}
	if !ok {
		return httpx.NotFound("Customer")
	}
	root.RecordQuietly(ctx, s.audit, s.logger, root.AuditLog{
		ActorID: p.ID, Role: string(p.Role), Action: "update", Entity: string(rbac.ResourceCustomers), EntityID: id,
	})
	return nil
}

func (s *Service) Delete(ctx context.Context, p auth.Principal, id int64) error {
	filter, err := rbac.ScopeFilter(p, rbac.OpDelete, rbac.ResourceCustomers)
	if err != nil {
		return err
	}
	ok, err := s.repo.Delete(ctx, filter, id)
	if err != nil {
		return err
	}
	if !ok {
		return httpx.NotFound("Customer")
	}
	root.RecordQuietly(ctx, s.audit, s.logger, root.AuditLog{
		ActorID: p.ID, Role: string(p.Role), Action: "delete", Entity: string(rbac.ResourceCustomers), EntityID: id,
	})
	return nil
}
