package reports

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ledgerdesk/backoffice/internal/auth"
	"github.com/ledgerdesk/backoffice/internal/platform/httpx"
	"github.com/ledgerdesk/backoffice/internal/rbac"
)

// Handler serves /reports.
type Handler struct {
	logger  *slog.Logger
	service *Service
	rbac    rbac.Middleware
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service, mw rbac.Middleware) *Handler {
	return &Handler{logger: logger, service: service, rbac: mw}
}

// MountRoutes registers /reports routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.rbac.Require(rbac.ResourceReports, rbac.OpRead))
		r.Get("/summary", h.summary)
		r.Get("/payment-methods", h.paymentMethods)
	})
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	period, err := ParsePeriod(r.URL.Query().Get("period"))
	if err != nil {
		httpx.Fail(w, r, h.logger, "reports.summary", err)
		return
	}
	out, err := h.service.Summary(r.Context(), auth.PrincipalFrom(r.Context()), period)
	if err != nil {
		httpx.Fail(w, r, h.logger, "reports.summary", err)
		return
	}
	httpx.JSON(w, http.StatusOK, out)
}

func (h *Handler) paymentMethods(w http.ResponseWriter, r *http.Request) {
	out, err := h.service.PaymentMethods(r.Context(), auth.PrincipalFrom(r.Context()))
	if err != nil {
		httpx.Fail(w, r, h.logger, "reports.payment_methods", err)
		return
	}
	httpx.JSON(w, http.StatusOK, out)
}
