package deposits

import (
	"context"
	"log/slog"

	"github.com/ledgerdesk/backoffice/internal/auth"
	"github.com/ledgerdesk/backoffice/internal/platform/httpx"
	"github.com/ledgerdesk/backoffice/internal/rbac"
	"github.com/ledgerdesk/backoffice/internal/shared"
)

// Service applies the deposit access policy around the repository.
type Service struct {
	repo   Repository
	audit  shared.AuditRecorder
	logger *slog.Logger
}

// NewService constructs a deposit service.
func NewService(repo Repository, audit shared.AuditRecorder, logger *slog.Logger) *Service {
	return &Service{repo: repo, audit: audit, logger: logger}
}

// List returns the deposits p may see and their total.
func (s *Service) List(ctx context.Context, p auth.Principal) (Listing, error) {
	filter, err := rbac.ScopeFilter(p, rbac.OpRead, rbac.ResourceBankDeposits)
	if err != nil {
		return Listing{}, err
	}
	rows, err := s.repo.List(ctx, filter)
	if err != nil {
		return Listing{}, err
	}
	out := Listing{Deposits: rows}
	if out.Deposits == nil {
		out.Deposits = []Deposit{}
	}
	for _, d := range rows {
		out.Total += d.Amount
	}
	return out, nil
}

// Create records a deposit made by p.
func (s *Service) Create(ctx context.Context, p auth.Principal, req CreateDepositRequest) (int64, error) {
	if _, err := rbac.ScopeFilter(p, rbac.OpCreate, rbac.ResourceBankDeposits); err != nil {
		return 0, err
	}
	return s.repo.Create(ctx, Deposit{Amount: req.Amount, Description: req.Description, StaffID: p.ID})
}

// Delete removes a deposit.
func (s *Service) Delete(ctx context.Context, p auth.Principal, id int64) error {
	filter, err := rbac.ScopeFilter(p, rbac.OpDelete, rbac.ResourceBankDeposits)
	if err != nil {
		return err
	}
	ok, err := s.repo.Delete(ctx, filter, id)
	if err != nil {
		return err
	}
	if !ok {
		return httpx.NotFound("Deposit")
	}
	shared.RecordQuietly(ctx, s.audit, s.logger, shared.AuditLog{
		ActorID: p.ID, Role: string(p.Role), Action: "delete", Entity: string(rbac.ResourceBankDeposits), EntityID: id,
	})
	return nil
}
