package inventory

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ledgerdesk/backoffice/internal/auth"
	"github.com/ledgerdesk/backoffice/internal/platform/httpx"
	"github.com/ledgerdesk/backoffice/internal/rbac"
	"github.com/ledgerdesk/backoffice/internal/shared"
)

// Handler serves /inventory, /stock-adjustments and /stock-movements.
type Handler struct {
	logger  *slog.Logger
	service *Service
	rbac    rbac.Middleware
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service, mw rbac.Middleware) *Handler {
	return &Handler{logger: logger, service: service, rbac: mw}
}

// MountRoutes registers /inventory routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.With(h.rbac.Require(rbac.ResourceInventory, rbac.OpRead)).Get("/", h.listItems)
	r.With(h.rbac.Require(rbac.ResourceInventory, rbac.OpCreate)).Post("/", h.createItem)
	r.With(h.rbac.Require(rbac.ResourceInventory, rbac.OpUpdate)).Put("/", h.updateItem)
	r.With(h.rbac.Require(rbac.ResourceInventory, rbac.OpDelete)).Delete("/", h.deleteItem)
}

// MountAdjustmentRoutes registers /stock-adjustments routes.
func (h *Handler) MountAdjustmentRoutes(r chi.Router) {
	r.With(h.rbac.Require(rbac.ResourceStockAdjustments, rbac.OpRead)).Get("/", h.listAdjustments)
	r.With(h.rbac.Require(rbac.ResourceStockAdjustments, rbac.OpCreate)).Post("/", h.createAdjustment)
	r.With(h.rbac.Require(rbac.ResourceStockAdjustments, rbac.OpDelete)).Delete("/", h.deleteAdjustment)
}

// MountMovementRoutes registers /stock-movements routes.
func (h *Handler) MountMovementRoutes(r chi.Router) {
	r.With(h.rbac.Require(rbac.ResourceStockMovements, rbac.OpRead)).Get("/", h.listMovements)
	r.With(h.rbac.Require(rbac.ResourceStockMovements, rbac.OpCreate)).Post("/", h.createMovement)
	r.With(h.rbac.Require(rbac.ResourceStockMovements, rbac.OpDelete)).Delete("/", h.deleteMovement)
}

func (h *Handler) listItems(w http.ResponseWriter, r *http.Request) {
	page := shared.ParsePageRequest(r.URL.Query())
	rows, total, err := h.service.ListItems(r.Context(), auth.PrincipalFrom(r.Context()), page)
	if err != nil {
		httpx.Fail(w, r, h.logger, "inventory.list", err)
		return
	}
	httpx.JSON(w, http.StatusOK, shared.NewListResponse(rows, page, total))
}

func (h *Handler) createItem(w http.ResponseWriter, r *http.Request) {
	var req CreateItemRequest
	if err := httpx.Bind(r, &req); err != nil {
		httpx.Fail(w, r, h.logger, "inventory.create", err)
		return
	}
	id, err := h.service.CreateItem(r.Context(), auth.PrincipalFrom(r.Context()), req)
	if err != nil {
		httpx.Fail(w, r, h.logger, "inventory.create", err)
		return
	}
	httpx.Created(w, id)
}

func (h *Handler) updateItem(w http.ResponseWriter, r *http.Request) {
	// Field values are validated by the service once restricted fields have
	// been ruled out.
	var req UpdateItemRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Fail(w, r, h.logger, "inventory.update", err)
		return
	}
	id, err := httpx.TargetID(r, req.ID)
	if err != nil {
		httpx.Fail(w, r, h.logger, "inventory.update", err)
		return
	}
	if err := h.service.UpdateItem(r.Context(), auth.PrincipalFrom(r.Context()), id, req); err != nil {
		httpx.Fail(w, r, h.logger, "inventory.update", err)
		return
	}
	httpx.Written(w, id)
}

func (h *Handler) deleteItem(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.QueryID(r, "id")
	if err != nil {
		httpx.Fail(w, r, h.logger, "inventory.delete", err)
		return
	}
	if err := h.service.DeleteItem(r.Context(), auth.PrincipalFrom(r.Context()), id); err != nil {
		httpx.Fail(w, r, h.logger, "inventory.delete", err)
		return
	}
	httpx.Written(w, id)
}

func (h *Handler) listAdjustments(w http.ResponseWriter, r *http.Request) {
	page := shared.ParsePageRequest(r.URL.Query())
	rows, total, err := h.service.ListAdjustments(r.Context(), auth.PrincipalFrom(r.Context()), page)
	if err != nil {
		httpx.Fail(w, r, h.logger, "stock_adjustments.list", err)
		return
	}
	httpx.JSON(w, http.StatusOK, shared.NewListResponse(rows, page, total))
}

func (h *Handler) createAdjustment(w http.ResponseWriter, r *http.Request) {
	var req CreateAdjustmentRequest
	if err := httpx.Bind(r, &req); err != nil {
		httpx.Fail(w, r, h.logger, "stock_adjustments.create", err)
		return
	}
	id, err := h.service.CreateAdjustment(r.Context(), auth.PrincipalFrom(r.Context()), req)
	if err != nil {
		httpx.Fail(w, r, h.logger, "stock_adjustments.create", err)
		return
	}
	httpx.Created(w, id)
}

func (h *Handler) deleteAdjustment(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.QueryID(r, "id")
	if err != nil {
		httpx.Fail(w, r, h.logger, "stock_adjustments.delete", err)
		return
	}
	if err := h.service.DeleteAdjustment(r.Context(), auth.PrincipalFrom(r.Context()), id); err != nil {
		httpx.Fail(w, r, h.logger, "stock_adjustments.delete", err)
		return
	}
	httpx.Written(w, id)
}

func (h *Handler) listMovements(w http.ResponseWriter, r *http.Request) {
	page := shared.ParsePageRequest(r.URL.Query())
	rows, total, err := h.service.ListMovements(r.Context(), auth.PrincipalFrom(r.Context()), page)
	if err != nil {
		httpx.Fail(w, r, h.logger, "stock_movements.list", err)
		return
	}
	httpx.JSON(w, http.StatusOK, shared.NewListResponse(rows, page, total))
}

func (h *Handler) createMovement(w http.ResponseWriter, r *http.Request) {
	var req CreateMovementRequest
	if err := httpx.Bind(r, &req); err != nil {
		httpx.Fail(w, r, h.logger, "stock_movements.create", err)
		return
	}
	id, err := h.service.CreateMovement(r.Context(), auth.PrincipalFrom(r.Context()), req)
	if err != nil {
		httpx.Fail(w, r, h.logger, "stock_movements.create", err)
		return
	}
	httpx.Created(w, id)
}

func (h *Handler) deleteMovement(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.QueryID(r, "id")
	if err != nil {
		httpx.Fail(w, r, h.logger, "stock_movements.delete", err)
		return
	}
	if err := h.service.DeleteMovement(r.Context(), auth.PrincipalFrom(r.Context()), id); err != nil {
		httpx.Fail(w, r, h.logger, "stock_movements.delete", err)
		return
	}
	httpx.Written(w, id)
}
