package suppliers

import (
	"github.com/go-chi/chi/v5"

	"github.com/ledgerdesk/backoffice/internal/rbac"
)

func (h *Handler) MountRoutes(r chi.Router) {
	r.With(h.rbac.Require(rbac.ResourceSuppliers, rbac.OpRead)).Get("/", h.List)
	r.With(h.rbac.Require(rbac.ResourceSuppliers, rbac.OpCreate)).Post("/", h.Create)
	r.With(h.rbac.Require(rbac.ResourceSuppliers, rbac.OpUpdate)).Put("/", h.Update)
	r.With(h.rbac.Require(rbac.ResourceSuppliers, rbac.OpDelete)).Delete("/", h.Delete)
}
