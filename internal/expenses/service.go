package expenses

import (
	"context"
	"log/slog"

	"github.com/ledgerdesk/backoffice/internal/auth"
	"github.com/ledgerdesk/backoffice/internal/platform/httpx"
	"github.com/ledgerdesk/backoffice/internal/rbac"
	"github.com/ledgerdesk/backoffice/internal/shared"
)

// Service applies the expense access policies around the repository.
type Service struct {
	repo    Repository
	audit   shared.AuditRecorder
	reports shared.Invalidator
	logger  *slog.Logger
}

// NewService constructs an expenses service.
func NewService(repo Repository, audit shared.AuditRecorder, reports shared.Invalidator, logger *slog.Logger) *Service {
	return &Service{repo: repo, audit: audit, reports: reports, logger: logger}
}

// ListExpenses returns the expenses p may see.
func (s *Service) ListExpenses(ctx context.Context, p auth.Principal, page shared.PageRequest) ([]Expense, int, error) {
	filter, err := rbac.ScopeFilter(p, rbac.OpRead, rbac.ResourceExpenses)
	if err != nil {
		return nil, 0, err
	}
	return s.repo.ListExpenses(ctx, filter, page)
}

// CreateExpense records an expense owned by p.
func (s *Service) CreateExpense(ctx context.Context, p auth.Principal, req CreateExpenseRequest) (int64, error) {
	if _, err := rbac.ScopeFilter(p, rbac.OpCreate, rbac.ResourceExpenses); err != nil {
		return 0, err
	}
	id, err := s.repo.CreateExpense(ctx, Expense{
		LorryID:          req.LorryID,
		ExpenseType:      req.ExpenseType,
		Amount:           req.Amount,
		Description:      req.Description,
		ExpenseDate:      req.ExpenseDate,
		RecordedByUserID: p.ID,
	})
	if err != nil {
		return 0, err
	}
	shared.BumpQuietly(ctx, s.reports, s.logger, "expenses.create")
	return id, nil
}

// DeleteExpense removes an expense.
func (s *Service) DeleteExpense(ctx context.Context, p auth.Principal, id int64) error {
	filter, err := rbac.ScopeFilter(p, rbac.OpDelete, rbac.ResourceExpenses)
	if err != nil {
		return err
	}
	ok, err := s.repo.DeleteExpense(ctx, filter, id)
	if err != nil {
		return err
	}
	if !ok {
		return httpx.NotFound("Expense")
	}
	s.deleted(ctx, p, rbac.ResourceExpenses, id)
	return nil
}

// ListCompanyExpenses returns the company expenses p may see.
func (s *Service) ListCompanyExpenses(ctx context.Context, p auth.Principal, page shared.PageRequest) ([]CompanyExpense, int, error) {
	filter, err := rbac.ScopeFilter(p, rbac.OpRead, rbac.ResourceCompanyExpenses)
	if err != nil {
		return nil, 0, err
	}
	return s.repo.ListCompanyExpenses(ctx, filter, page)
}

// CreateCompanyExpense records a company expense initiated by p.
func (s *Service) CreateCompanyExpense(ctx context.Context, p auth.Principal, req CreateCompanyExpenseRequest) (int64, error) {
	if _, err := rbac.ScopeFilter(p, rbac.OpCreate, rbac.ResourceCompanyExpenses); err != nil {
		return 0, err
	}
	id, err := s.repo.CreateCompanyExpense(ctx, CompanyExpense{
		Description:       req.Description,
		Amount:            req.Amount,
		InitiatedByUserID: p.ID,
	})
	if err != nil {
		return 0, err
	}
	shared.BumpQuietly(ctx, s.reports, s.logger, "company_expenses.create")
	return id, nil
}

// DeleteCompanyExpense removes a company expense.
func (s *Service) DeleteCompanyExpense(ctx context.Context, p auth.Principal, id int64) error {
	filter, err := rbac.ScopeFilter(p, rbac.OpDelete, rbac.ResourceCompanyExpenses)
	if err != nil {
		return err
	}
	ok, err := s.repo.DeleteCompanyExpense(ctx, filter, id)
	if err != nil {
		return err
	}
	if !ok {
		return httpx.NotFound("Company expense")
	}
	s.deleted(ctx, p, rbac.ResourceCompanyExpenses, id)
	return nil
}

func (s *Service) deleted(ctx context.Context, p auth.Principal, res rbac.Resource, id int64) {
	shared.RecordQuietly(ctx, s.audit, s.logger, shared.AuditLog{
		ActorID: p.ID, Role: string(p.Role), Action: "delete", Entity: string(res), EntityID: id,
	})
	shared.BumpQuietly(ctx, s.reports, s.logger, string(res)+".delete")
}
