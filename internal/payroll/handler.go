package payroll

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ledgerdesk/backoffice/internal/auth"
	"github.com/ledgerdesk/backoffice/internal/platform/httpx"
	"github.com/ledgerdesk/backoffice/internal/rbac"
	"github.com/ledgerdesk/backoffice/internal/shared"
)

// Handler serves /payroll.
type Handler struct {
	logger  *slog.Logger
	service *Service
	rbac    rbac.Middleware
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service, mw rbac.Middleware) *Handler {
	return &Handler{logger: logger, service: service, rbac: mw}
}

// MountRoutes registers /payroll routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.With(h.rbac.Require(rbac.ResourcePayroll, rbac.OpRead)).Get("/", h.list)
	r.With(h.rbac.Require(rbac.ResourcePayroll, rbac.OpCreate)).Post("/", h.create)
	r.With(h.rbac.Require(rbac.ResourcePayroll, rbac.OpUpdate)).Put("/", h.update)
	r.With(h.rbac.Require(rbac.ResourcePayroll, rbac.OpDelete)).Delete("/", h.delete)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	page := shared.ParsePageRequest(r.URL.Query())
	rows, total, err := h.service.List(r.Context(), auth.PrincipalFrom(r.Context()), page)
	if err != nil {
		httpx.Fail(w, r, h.logger, "payroll.list", err)
		return
	}
	httpx.JSON(w, http.StatusOK, shared.NewListResponse(rows, page, total))
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req CreateEntryRequest
	if err := httpx.Bind(r, &req); err != nil {
		httpx.Fail(w, r, h.logger, "payroll.create", err)
		return
	}
	id, err := h.service.Create(r.Context(), auth.PrincipalFrom(r.Context()), req)
	if err != nil {
		httpx.Fail(w, r, h.logger, "payroll.create", err)
		return
	}
	httpx.Created(w, id)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var req UpdateEntryRequest
	if err := httpx.Bind(r, &req); err != nil {
		httpx.Fail(w, r, h.logger, "payroll.update", err)
		return
	}
	id, err := httpx.TargetID(r, req.ID)
	if err != nil {
		httpx.Fail(w, r, h.logger, "payroll.update", err)
		return
	}
	if err := h.service.Update(r.Context(), auth.PrincipalFrom(r.Context()), id, req); err != nil {
		httpx.Fail(w, r, h.logger, "payroll.update", err)
		return
	}
	httpx.Written(w, id)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.QueryID(r, "id")
	if err != nil {
		httpx.Fail(w, r, h.logger, "payroll.delete", err)
		return
	}
	if err := h.service.Delete(r.Context(), auth.PrincipalFrom(r.Context()), id); err != nil {
		httpx.Fail(w, r, h.logger, "payroll.delete", err)
		return
	}
	httpx.Written(w, id)
}
