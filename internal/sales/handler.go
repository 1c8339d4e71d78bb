package sales

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ledgerdesk/backoffice/internal/auth"
	"github.com/ledgerdesk/backoffice/internal/platform/httpx"
	"github.com/ledgerdesk/backoffice/internal/rbac"
	"github.com/ledgerdesk/backoffice/internal/shared"
)

// Handler serves /sales and /staff-sales.
type Handler struct {
	logger  *slog.Logger
	service *Service
	rbac    rbac.Middleware
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service, mw rbac.Middleware) *Handler {
	return &Handler{logger: logger, service: service, rbac: mw}
}

// MountRoutes registers /sales routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.With(h.rbac.Require(rbac.ResourceSales, rbac.OpRead)).Get("/", h.list)
	r.With(h.rbac.Require(rbac.ResourceSales, rbac.OpCreate)).Post("/", h.create)
	r.With(h.rbac.Require(rbac.ResourceSales, rbac.OpDelete)).Delete("/", h.delete)
}

// MountStaffRoutes registers /staff-sales routes.
func (h *Handler) MountStaffRoutes(r chi.Router) {
	r.With(h.rbac.Require(rbac.ResourceSales, rbac.OpRead)).Get("/", h.listByStaff)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	page := shared.ParsePageRequest(r.URL.Query())
	rows, total, err := h.service.List(r.Context(), auth.PrincipalFrom(r.Context()), page)
	if err != nil {
		httpx.Fail(w, r, h.logger, "sales.list", err)
		return
	}
	httpx.JSON(w, http.StatusOK, shared.NewListResponse(rows, page, total))
}

func (h *Handler) listByStaff(w http.ResponseWriter, r *http.Request) {
	staffID, err := httpx.OptionalQueryID(r, "staff_id")
	if err != nil {
		httpx.Fail(w, r, h.logger, "sales.list_by_staff", err)
		return
	}
	page := shared.ParsePageRequest(r.URL.Query())
	rows, total, err := h.service.ListByStaff(r.Context(), auth.PrincipalFrom(r.Context()), staffID, page)
	if err != nil {
		httpx.Fail(w, r, h.logger, "sales.list_by_staff", err)
		return
	}
	httpx.JSON(w, http.StatusOK, shared.NewListResponse(rows, page, total))
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req CreateSaleRequest
	if err := httpx.Bind(r, &req); err != nil {
		httpx.Fail(w, r, h.logger, "sales.create", err)
		return
	}
	id, err := h.service.Create(r.Context(), auth.PrincipalFrom(r.Context()), req)
	if err != nil {
		httpx.Fail(w, r, h.logger, "sales.create", err)
		return
	}
	httpx.Created(w, id)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.QueryID(r, "id")
	if err != nil {
		httpx.Fail(w, r, h.logger, "sales.delete", err)
		return
	}
	if err := h.service.Delete(r.Context(), auth.PrincipalFrom(r.Context()), id); err != nil {
		httpx.Fail(w, r, h.logger, "sales.delete", err)
		return
	}
	httpx.Written(w, id)
}
