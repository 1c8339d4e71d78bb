package customers

import (
	"log/slog"
	"net/http"

	"github.com/ledgerdesk/backoffice/internal/auth"
	"github.com/ledgerdesk/backoffice/internal/masterdata/shared"
	"github.com/ledgerdesk/backoffice/internal/platform/httpx"
	"github.com/ledgerdesk/backoffice/internal/rbac"
	root "github.com/ledgerdesk/backoffice/internal/shared"
)

type Handler struct {
	logger  *slog.Logger
	service *Service
	rbac    rbac.Middleware
}

func NewHandler(logger *slog.Logger, service *Service, rbac rbac.Middleware) *Handler {
	return &Handler{logger: logger, service: service, rbac: rbac}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	filters := shared.ParseListFilters(r.URL.Query())
	customers, total, err := h.service.List(r.Context(), auth.PrincipalFrom(r.Context()), filters)
	if err != nil {
		httpx.Fail(w, r, h.logger, "customers.list", err)
		return
	}
	httpx.JSON(w, http.StatusOK, root.NewListResponse(customers, filters.PageRequest, total))
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := httpx.Bind(r, &req); err != nil {
		httpx.Fail(w, r, h.logger, "customers.create", err)
		return
	}
	id, err := h.service.Create(r.Context(), auth.PrincipalFrom(r.Context()), req)
	if err != nil {
		httpx.Fail(w, r, h.logger, "customers.create", err)
		return
	}
	httpx.Created(w, id)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateRequest
	if err := httpx.Bind(r, &req); err != nil {
		httpx.Fail(w, r, h.logger, "customers.update", err)
		return
	}
	id, err := httpx.TargetID(r, req.ID)
	if err != nil {
		httpx.Fail(w, r, h.logger, "customers.update", err)
		return
	}
	if err := h.service.Update(r.Context(), auth.PrincipalFrom(r.Context()), id, req); err != nil {
		httpx.Fail(w, r, h.logger, "customers.update", err)
		return
	}
	httpx.Written(w, id)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.QueryID(r, "id")
	if err != nil {
		httpx.Fail(w, r, h.logger, "customers.delete", err)
		return
	}
	if err := h.service.Delete(r.Context(), auth.PrincipalFrom(r.Context()), id); err != nil {
		httpx.Fail(w, r, h.logger, "customers.delete", err)
		return
	}
	httpx.Written(w, id)
}
