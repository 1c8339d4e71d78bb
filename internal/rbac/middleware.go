package rbac

import (
	"log/slog"
	"net/http"

	"github.com/ledgerdesk/backoffice/internal/auth"
	"github.com/ledgerdesk/backoffice/internal/platform/httpx"
)

// Middleware wires the authorization gate in front of HTTP handlers.
type Middleware struct {
	Gate   *auth.Gate
	Logger *slog.Logger
}

// Require admits requests whose bearer principal holds a role the policy
// allows for op on res and stores that principal in the request context.
func (m Middleware) Require(res Resource, op Operation) func(http.Handler) http.Handler {
	roles := AllowedRoles(res, op)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, err := m.Gate.Authorize(r.Header, roles...)
			if err != nil {
				if m.Logger != nil {
					m.Logger.Warn("authorization rejected",
						slog.String("resource", string(res)),
						slog.String("operation", string(op)),
						slog.String("path", r.URL.Path),
						slog.Int64("user_id", p.ID),
						slog.String("reason", err.Error()))
				}
				httpx.RespondError(w, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(auth.WithPrincipal(r.Context(), p)))
		})
	}
}
