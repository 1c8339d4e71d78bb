package auth

import (
	"errors"

	"github.com/ledgerdesk/backoffice/internal/platform/httpx"
)

// Rejections produced by the gate and the token issuer. All authentication
// failures map to 401 and authorization failures to 403.
var (
	ErrMissingCredential  = httpx.Unauthorized("missing bearer credential")
	ErrInvalidToken       = httpx.Unauthorized("invalid token")
	ErrExpiredToken       = httpx.Unauthorized("token expired")
	ErrMalformedPayload   = httpx.Unauthorized("malformed token payload")
	ErrInvalidCredentials = httpx.Unauthorized("invalid credentials")
	ErrForbiddenRole      = httpx.Forbidden("role not permitted for this operation")
)

var (
	// ErrSecretNotConfigured is returned when the issuer is built without a
	// signing secret.
	ErrSecretNotConfigured = errors.New("auth: signing secret not configured")
	// ErrCredentialNotFound is returned by repositories when no login matches.
	ErrCredentialNotFound = errors.New("auth: credential not found")
)
