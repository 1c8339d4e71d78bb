package expenses

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ledgerdesk/backoffice/internal/auth"
	"github.com/ledgerdesk/backoffice/internal/platform/httpx"
	"github.com/ledgerdesk/backoffice/internal/rbac"
	"github.com/ledgerdesk/backoffice/internal/shared"
)

// Handler serves /expenses and /company-expenses.
type Handler struct {
	logger  *slog.Logger
	service *Service
	rbac    rbac.Middleware
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service, mw rbac.Middleware) *Handler {
	return &Handler{logger: logger, service: service, rbac: mw}
}

// MountRoutes registers /expenses routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.With(h.rbac.Require(rbac.ResourceExpenses, rbac.OpRead)).Get("/", h.listExpenses)
	r.With(h.rbac.Require(rbac.ResourceExpenses, rbac.OpCreate)).Post("/", h.createExpense)
	r.With(h.rbac.Require(rbac.ResourceExpenses, rbac.OpDelete)).Delete("/", h.deleteExpense)
}

// MountCompanyRoutes registers /company-expenses routes.
func (h *Handler) MountCompanyRoutes(r chi.Router) {
	r.With(h.rbac.Require(rbac.ResourceCompanyExpenses, rbac.OpRead)).Get("/", h.listCompanyExpenses)
	r.With(h.rbac.Require(rbac.ResourceCompanyExpenses, rbac.OpCreate)).Post("/", h.createCompanyExpense)
	r.With(h.rbac.Require(rbac.ResourceCompanyExpenses, rbac.OpDelete)).Delete("/", h.deleteCompanyExpense)
}

func (h *Handler) listExpenses(w http.ResponseWriter, r *http.Request) {
	page := shared.ParsePageRequest(r.URL.Query())
	rows, total, err := h.service.ListExpenses(r.Context(), auth.PrincipalFrom(r.Context()), page)
	if err != nil {
		httpx.Fail(w, r, h.logger, "expenses.list", err)
		return
	}
	httpx.JSON(w, http.StatusOK, shared.NewListResponse(rows, page, total))
}

func (h *Handler) createExpense(w http.ResponseWriter, r *http.Request) {
	var req CreateExpenseRequest
	if err := httpx.Bind(r, &req); err != nil {
		httpx.Fail(w, r, h.logger, "expenses.create", err)
		return
	}
	id, err := h.service.CreateExpense(r.Context(), auth.PrincipalFrom(r.Context()), req)
	if err != nil {
		httpx.Fail(w, r, h.logger, "expenses.create", err)
		return
	}
	httpx.Created(w, id)
}

func (h *Handler) deleteExpense(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.QueryID(r, "id")
	if err == nil {
		err = h.service.DeleteExpense(r.Context(), auth.PrincipalFrom(r.Context()), id)
	}
	if err != nil {
		httpx.Fail(w, r, h.logger, "expenses.delete", err)
		return
	}
	httpx.Written(w, id)
}

func (h *Handler) listCompanyExpenses(w http.ResponseWriter, r *http.Request) {
	page := shared.ParsePageRequest(r.URL.Query())
	rows, total, err := h.service.ListCompanyExpenses(r.Context(), auth.PrincipalFrom(r.Context()), page)
	if err != nil {
		httpx.Fail(w, r, h.logger, "company_expenses.list", err)
		return
	}
	httpx.JSON(w, http.StatusOK, shared.NewListResponse(rows, page, total))
}

func (h *Handler) createCompanyExpense(w http.ResponseWriter, r *http.Request) {
	var req CreateCompanyExpenseRequest
	if err := httpx.Bind(r, &req); err != nil {
		httpx.Fail(w, r, h.logger, "company_expenses.create", err)
		return
	}
	id, err := h.service.CreateCompanyExpense(r.Context(), auth.PrincipalFrom(r.Context()), req)
	if err != nil {
		httpx.Fail(w, r, h.logger, "company_expenses.create", err)
		return
	}
	httpx.Created(w, id)
}

func (h *Handler) deleteCompanyExpense(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.QueryID(r, "id")
	if err == nil {
		err = h.service.DeleteCompanyExpense(r.Context(), auth.PrincipalFrom(r.Context()), id)
	}
	if err != nil {
		httpx.Fail(w, r, h.logger, "company_expenses.delete", err)
		return
	}
	httpx.Written(w, id)
}
