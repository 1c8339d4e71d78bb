package auth_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/ledgerdesk/backoffice/internal/auth"
	_ "github.com/ledgerdesk/backoffice/testing"
)

type memoryRepo struct {
	staff map[string]auth.Credential
}

func (m memoryRepo) FindAdminByEmail(context.Context, string) (auth.Credential, error) {
	return auth.Credential{}, auth.ErrCredentialNotFound
}

func (m memoryRepo) FindStaffByEmail(_ context.Context, email string) (auth.Credential, error) {
	if c, ok := m.staff[email]; ok {
		return c, nil
	}
	return auth.Credential{}, auth.ErrCredentialNotFound
}

func newLoginRouter(t *testing.T) http.Handler {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte("pa55word"), bcrypt.MinCost)
	require.NoError(t, err)
	repo := memoryRepo{staff: map[string]auth.Credential{
		"rina@shop.test": {ID: 7, Email: "rina@shop.test", PasswordHash: string(h), Role: auth.RoleStaff},
	}}
	issuer, err := auth.NewTokenIssuer("handler-secret")
	require.NoError(t, err)
	svc, err := auth.NewService(repo, issuer)
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	r := chi.NewRouter()
	r.Route("/api/auth", auth.NewHandler(logger, svc).MountRoutes)
	return r
}

func TestLoginSuccess(t *testing.T) {
	router := newLoginRouter(t)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"email":"Rina@Shop.test","password":"pa55word"}`))
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	require.Equal(t, http.StatusOK, res.Code)
	var body struct {
		User  auth.Principal `json:"user"`
		Token string         `json:"token"`
	}
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &body))
	assert.Equal(t, auth.Principal{ID: 7, Email: "rina@shop.test", Role: auth.RoleStaff}, body.User)
	assert.NotEmpty(t, body.Token)
}

func TestLoginInvalidCredentials(t *testing.T) {
	router := newLoginRouter(t)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"email":"rina@shop.test","password":"nope"}`))
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	require.Equal(t, http.StatusUnauthorized, res.Code)
	assert.JSONEq(t, `{"message":"Unauthorized"}`, res.Body.String())
}

func TestLoginMissingFields(t *testing.T) {
	router := newLoginRouter(t)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"email":"rina@shop.test"}`))
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	require.Equal(t, http.StatusBadRequest, res.Code)
	assert.JSONEq(t, `{"error":"password is required"}`, res.Body.String())
}
