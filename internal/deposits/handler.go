package deposits

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ledgerdesk/backoffice/internal/auth"
	"github.com/ledgerdesk/backoffice/internal/platform/httpx"
	"github.com/ledgerdesk/backoffice/internal/rbac"
)

// Handler serves /bank-deposits.
type Handler struct {
	logger  *slog.Logger
	service *Service
	rbac    rbac.Middleware
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service, mw rbac.Middleware) *Handler {
	return &Handler{logger: logger, service: service, rbac: mw}
}

// MountRoutes registers /bank-deposits routes. Deposits are immutable, so
// PUT answers 405 to any authenticated caller.
func (h *Handler) MountRoutes(r chi.Router) {
	r.With(h.rbac.Require(rbac.ResourceBankDeposits, rbac.OpRead)).Get("/", h.list)
	r.With(h.rbac.Require(rbac.ResourceBankDeposits, rbac.OpCreate)).Post("/", h.create)
	r.With(h.rbac.Require(rbac.ResourceBankDeposits, rbac.OpRead)).Put("/", h.update)
	r.With(h.rbac.Require(rbac.ResourceBankDeposits, rbac.OpDelete)).Delete("/", h.delete)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	out, err := h.service.List(r.Context(), auth.PrincipalFrom(r.Context()))
	if err != nil {
		httpx.Fail(w, r, h.logger, "bank_deposits.list", err)
		return
	}
	httpx.JSON(w, http.StatusOK, out)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req CreateDepositRequest
	if err := httpx.Bind(r, &req); err != nil {
		httpx.Fail(w, r, h.logger, "bank_deposits.create", err)
		return
	}
	id, err := h.service.Create(r.Context(), auth.PrincipalFrom(r.Context()), req)
	if err != nil {
		httpx.Fail(w, r, h.logger, "bank_deposits.create", err)
		return
	}
	httpx.Created(w, id)
}

func (h *Handler) update(w http.ResponseWriter, _ *http.Request) {
	httpx.MethodNotAllowed(w, http.MethodGet, http.MethodPost, http.MethodDelete)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.QueryID(r, "id")
	if err != nil {
		httpx.Fail(w, r, h.logger, "bank_deposits.delete", err)
		return
	}
	if err := h.service.Delete(r.Context(), auth.PrincipalFrom(r.Context()), id); err != nil {
		httpx.Fail(w, r, h.logger, "bank_deposits.delete", err)
		return
	}
	httpx.Written(w, id)
}
