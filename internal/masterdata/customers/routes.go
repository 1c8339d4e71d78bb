package customers

import (
	"github.com/go-chi/chi/v5"

	"github.com/ledgerdesk/backoffice/internal/rbac"
)

func (h *Handler) MountRoutes(r chi.Router) {
	r.With(h.rbac.Require(rbac.ResourceCustomers, rbac.OpRead)).Get("/", h.List)
	r.With(h.rbac.Require(rbac.ResourceCustomers, rbac.OpCreate)).Post("/", h.Create)
	r.With(h.rbac.Require(rbac.ResourceCustomers, rbac.OpUpdate)).Put("/", h.Update)
	r.With(h.rbac.Require(rbac.ResourceCustomers, rbac.OpDelete)).Delete("/", h.Delete)
}
