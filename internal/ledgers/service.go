package ledgers

import (
	"context"
	"log/slog"

	"github.com/ledgerdesk/backoffice/internal/auth"
	"github.com/ledgerdesk/backoffice/internal/platform/httpx"
	"github.com/ledgerdesk/backoffice/internal/rbac"
	"github.com/ledgerdesk/backoffice/internal/shared"
)

// Service applies the ledger access policies around the repository.
type Service struct {
	repo   Repository
	audit  shared.AuditRecorder
	logger *slog.Logger
}

// NewService constructs a ledger service.
func NewService(repo Repository, audit shared.AuditRecorder, logger *slog.Logger) *Service {
	return &Service{repo: repo, audit: audit, logger: logger}
}

// ListCustomerEntries returns the customer ledger rows p may see.
func (s *Service) ListCustomerEntries(ctx context.Context, p auth.Principal, customerID int64, page shared.PageRequest) ([]CustomerEntry, int, error) {
	filter, err := rbac.ScopeFilter(p, rbac.OpRead, rbac.ResourceCustomerLedger)
	if err != nil {
		return nil, 0, err
	}
	return s.repo.ListCustomerEntries(ctx, filter, customerID, page)
}

// CreateCustomerEntry records a customer ledger row owned by p.
func (s *Service) CreateCustomerEntry(ctx context.Context, p auth.Principal, req CreateCustomerEntryRequest) (int64, error) {
	if _, err := rbac.ScopeFilter(p, rbac.OpCreate, rbac.ResourceCustomerLedger); err != nil {
		return 0, err
	}
	return s.repo.CreateCustomerEntry(ctx, CustomerEntry{
		CustomerID:       req.CustomerID,
		Description:      req.Description,
		Amount:           req.Amount,
		Type:             req.Type,
		RecordedByUserID: p.ID,
	})
}

// DeleteCustomerEntry removes a customer ledger row.
func (s *Service) DeleteCustomerEntry(ctx context.Context, p auth.Principal, id int64) error {
	return s.remove(ctx, p, rbac.ResourceCustomerLedger, "Customer ledger entry", id, s.repo.DeleteCustomerEntry)
}

// ListSupplierEntries returns the supplier ledger rows p may see.
func (s *Service) ListSupplierEntries(ctx context.Context, p auth.Principal, supplierID int64, page shared.PageRequest) ([]SupplierEntry, int, error) {
	filter, err := rbac.ScopeFilter(p, rbac.OpRead, rbac.ResourceSupplierLedger)
	if err != nil {
		return nil, 0, err
	}
	return s.repo.ListSupplierEntries(ctx, filter, supplierID, page)
}

// CreateSupplierEntry records a supplier ledger row owned by p.
func (s *Service) CreateSupplierEntry(ctx context.Context, p auth.Principal, req CreateSupplierEntryRequest) (int64, error) {
	if _, err := rbac.ScopeFilter(p, rbac.OpCreate, rbac.ResourceSupplierLedger); err != nil {
		return 0, err
	}
	return s.repo.CreateSupplierEntry(ctx, SupplierEntry{
		SupplierID:       req.SupplierID,
		TransactionType:  req.TransactionType,
		Amount:           req.Amount,
		Description:      req.Description,
		RecordedByUserID: p.ID,
	})
}

// DeleteSupplierEntry removes a supplier ledger row.
func (s *Service) DeleteSupplierEntry(ctx context.Context, p auth.Principal, id int64) error {
	return s.remove(ctx, p, rbac.ResourceSupplierLedger, "Supplier ledger entry", id, s.repo.DeleteSupplierEntry)
}

func (s *Service) remove(ctx context.Context, p auth.Principal, res rbac.Resource, label string, id int64,
	del func(context.Context, rbac.RowFilter, int64) (bool, error)) error {
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
