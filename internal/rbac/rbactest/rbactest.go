// Package rbactest builds signed requests against handlers guarded by
// rbac.Middleware.
package rbactest

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ledgerdesk/backoffice/internal/auth"
	"github.com/ledgerdesk/backoffice/internal/rbac"
)

// Common principals used across handler tests.
var (
	Admin = auth.Principal{ID: 1, Email: "boss@shop.test", Role: auth.RoleAdmin}
	Staff = auth.Principal{ID: 7, Email: "rina@shop.test", Role: auth.RoleStaff}
	Other = auth.Principal{ID: 8, Email: "tomi@shop.test", Role: auth.RoleStaff}
)

// Harness holds a token issuer and the middleware verifying its tokens.
type Harness struct {
	Issuer     *auth.TokenIssuer
	Middleware rbac.Middleware
	Logger     *slog.Logger
}

// New returns a Harness with a throwaway signing secret.
func New(t *testing.T) *Harness {
	t.Helper()
	issuer, err := auth.NewTokenIssuer("rbactest-secret")
	require.NoError(t, err)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return &Harness{
		Issuer:     issuer,
		Middleware: rbac.Middleware{Gate: auth.NewGate(issuer), Logger: logger},
		Logger:     logger,
	}
}

// Token signs a token for p.
func (h *Harness) Token(t *testing.T, p auth.Principal) string {
	t.Helper()
	token, _, err := h.Issuer.Sign(p)
	require.NoError(t, err)
	return token
}

// Do sends a request through handler, authenticated as p unless p is nil.
func (h *Harness) Do(t *testing.T, handler http.Handler, p *auth.Principal, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if p != nil {
		req.Header.Set("Authorization", "Bearer "+h.Token(t, *p))
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}
