package payroll

import (
	"context"
	"log/slog"

	"github.com/ledgerdesk/backoffice/internal/auth"
	"github.com/ledgerdesk/backoffice/internal/platform/httpx"
	"github.com/ledgerdesk/backoffice/internal/rbac"
	"github.com/ledgerdesk/backoffice/internal/shared"
)

// Service applies the payroll access policy around the repository.
type Service struct {
	repo    Repository
	audit   shared.AuditRecorder
	reports shared.Invalidator
	logger  *slog.Logger
}

// NewService constructs a payroll service.
func NewService(repo Repository, audit shared.AuditRecorder, reports shared.Invalidator, logger *slog.Logger) *Service {
	return &Service{repo: repo, audit: audit, reports: reports, logger: logger}
}

// List returns the entries p may see. Staff only see their own salary.
func (s *Service) List(ctx context.Context, p auth.Principal, page shared.PageRequest) ([]Entry, int, error) {
	filter, err := rbac.ScopeFilter(p, rbac.OpRead, rbac.ResourcePayroll)
	if err != nil {
		return nil, 0, err
	}
	return s.repo.List(ctx, filter, page)
}

// Create records an entry for req.StaffID.
func (s *Service) Create(ctx context.Context, p auth.Principal, req CreateEntryRequest) (int64, error) {
	if _, err := rbac.ScopeFilter(p, rbac.OpCreate, rbac.ResourcePayroll); err != nil {
		return 0, err
	}
	id, err := s.repo.Create(ctx, Entry{
		StaffID:          req.StaffID,
		Month:            req.Month,
		SalaryAmount:     req.SalaryAmount,
		PaymentDate:      req.PaymentDate,
		Status:           req.Status,
		RecordedByUserID: p.ID,
	})
	if err != nil {
		return 0, err
	}
	shared.BumpQuietly(ctx, s.reports, s.logger, "payroll.create")
	return id, nil
}

// Update changes an entry.
func (s *Service) Update(ctx context.Context, p auth.Principal, id int64, req UpdateEntryRequest) error {
	filter, err := rbac.ScopeFilter(p, rbac.OpUpdate, rbac.ResourcePayroll)
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
		return httpx.NotFound("Payroll entry")
	}
	shared.RecordQuietly(ctx, s.audit, s.logger, shared.AuditLog{
		ActorID: p.ID, Role: string(p.Role), Action: "update", Entity: string(rbac.ResourcePayroll), EntityID: id,
	})
	shared.BumpQuietly(ctx, s.reports, s.logger, "payroll.update")
	return nil
}

// Delete removes an entry.
func (s *Service) Delete(ctx context.Context, p auth.Principal, id int64) error {
	filter, err := rbac.ScopeFilter(p, rbac.OpDelete, rbac.ResourcePayroll)
	if err != nil {
		return err
	}
	ok, err := s.repo.Delete(ctx, filter, id)
	if err != nil {
		return err
	}
	if !ok {
		return httpx.NotFound("Payroll entry")
	}
	shared.RecordQuietly(ctx, s.audit, s.logger, shared.AuditLog{
		ActorID: p.ID, Role: string(p.Role), Action: "delete", Entity: string(rbac.ResourcePayroll), EntityID: id,
	})
	shared.BumpQuietly(ctx, s.reports, s.logger, "payroll.delete")
	return nil
}
