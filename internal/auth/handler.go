package auth

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ledgerdesk/backoffice/internal/platform/httpx"
)

// Issuer exchanges credentials for a session.
type Issuer interface {
	Issue(ctx context.Context, email, password string) (Session, error)
}

// Handler wires HTTP endpoints for authentication flows.
type Handler struct {
	logger  *slog.Logger
	service Issuer
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service Issuer) *Handler {
	return &Handler{logger: logger, service: service}
}

// MountRoutes registers auth routes on provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/login", h.handleLogin)
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := httpx.Bind(r, &req); err != nil {
		httpx.Fail(w, r, h.logger, "auth.login", err)
		return
	}
	session, err := h.service.Issue(r.Context(), req.Email, req.Password)
	if err != nil {
		httpx.Fail(w, r, h.logger, "auth.login", err)
		return
	}
	h.logger.Info("login succeeded",
		slog.Int64("user_id", session.User.ID),
		slog.String("role", string(session.User.Role)))
	httpx.JSON(w, http.StatusOK, session)
}
