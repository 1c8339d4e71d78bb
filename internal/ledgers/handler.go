package ledgers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ledgerdesk/backoffice/internal/auth"
	"github.com/ledgerdesk/backoffice/internal/platform/httpx"
	"github.com/ledgerdesk/backoffice/internal/rbac"
	"github.com/ledgerdesk/backoffice/internal/shared"
)

// Handler serves /customer-ledger and /supplier-ledger.
type Handler struct {
	logger  *slog.Logger
	service *Service
	rbac    rbac.Middleware
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service, mw rbac.Middleware) *Handler {
	return &Handler{logger: logger, service: service, rbac: mw}
}

// MountCustomerRoutes registers /customer-ledger routes.
func (h *Handler) MountCustomerRoutes(r chi.Router) {
	r.With(h.rbac.Require(rbac.ResourceCustomerLedger, rbac.OpRead)).Get("/", h.listCustomer)
	r.With(h.rbac.Require(rbac.ResourceCustomerLedger, rbac.OpCreate)).Post("/", h.createCustomer)
	r.With(h.rbac.Require(rbac.ResourceCustomerLedger, rbac.OpDelete)).Delete("/", h.deleteCustomer)
}

// MountSupplierRoutes registers /supplier-ledger routes.
func (h *Handler) MountSupplierRoutes(r chi.Router) {
	r.With(h.rbac.Require(rbac.ResourceSupplierLedger, rbac.OpRead)).Get("/", h.listSupplier)
	r.With(h.rbac.Require(rbac.ResourceSupplierLedger, rbac.OpCreate)).Post("/", h.createSupplier)
	r.With(h.rbac.Require(rbac.ResourceSupplierLedger, rbac.OpDelete)).Delete("/", h.deleteSupplier)
}

func (h *Handler) listCustomer(w http.ResponseWriter, r *http.Request) {
	customerID, err := httpx.OptionalQueryID(r, "customer_id")
	if err != nil {
		httpx.Fail(w, r, h.logger, "customer_ledger.list", err)
		return
	}
	page := shared.ParsePageRequest(r.URL.Query())
	rows, total, err := h.service.ListCustomerEntries(r.Context(), auth.PrincipalFrom(r.Context()), customerID, page)
	if err != nil {
		httpx.Fail(w, r, h.logger, "customer_ledger.list", err)
		return
	}
	httpx.JSON(w, http.StatusOK, shared.NewListResponse(rows, page, total))
}

func (h *Handler) createCustomer(w http.ResponseWriter, r *http.Request) {
	var req CreateCustomerEntryRequest
	if err := httpx.Bind(r, &req); err != nil {
		httpx.Fail(w, r, h.logger, "customer_ledger.create", err)
		return
	}
	id, err := h.service.CreateCustomerEntry(r.Context(), auth.PrincipalFrom(r.Context()), req)
	if err != nil {
		httpx.Fail(w, r, h.logger, "customer_ledger.create", err)
		return
	}
	httpx.Created(w, id)
}

func (h *Handler) deleteCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.QueryID(r, "id")
	if err != nil {
		httpx.Fail(w, r, h.logger, "customer_ledger.delete", err)
		return
	}
	if err := h.service.DeleteCustomerEntry(r.Context(), auth.PrincipalFrom(r.Context()), id); err != nil {
		httpx.Fail(w, r, h.logger, "customer_ledger.delete", err)
		return
	}
	httpx.Written(w, id)
}

func (h *Handler) listSupplier(w http.ResponseWriter, r *http.Request) {
	supplierID, err := httpx.OptionalQueryID(r, "supplier_id")
	if err != nil {
		httpx.Fail(w, r, h.logger, "supplier_ledger.list", err)
		return
	}
	page := shared.ParsePageRequest(r.URL.Query())
	rows, total, err := h.service.ListSupplierEntries(r.Context(), auth.PrincipalFrom(r.Context()), supplierID, page)
	if err != nil {
		httpx.Fail(w, r, h.logger, "supplier_ledger.list", err)
		return
	}
	httpx.JSON(w, http.StatusOK, shared.NewListResponse(rows, page, total))
}

func (h *Handler) createSupplier(w http.ResponseWriter, r *http.Request) {
	var req CreateSupplierEntryRequest
	if err := httpx.Bind(r, &req); err != nil {
		httpx.Fail(w, r, h.logger, "supplier_ledger.create", err)
		return
	}
	id, err := h.service.CreateSupplierEntry(r.Context(), auth.PrincipalFrom(r.Context()), req)
	if err != nil {
		httpx.Fail(w, r, h.logger, "supplier_ledger.create", err)
		return
	}
	httpx.Created(w, id)
}

func (h *Handler) deleteSupplier(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.QueryID(r, "id")
	if err != nil {
		httpx.Fail(w, r, h.logger, "supplier_ledger.delete", err)
		return
	}
	if err := h.service.DeleteSupplierEntry(r.Context(), auth.PrincipalFrom(r.Context()), id); err != nil {
		httpx.Fail(w, r, h.logger, "supplier_ledger.delete", err)
		return
	}
	httpx.Written(w, id)
}
