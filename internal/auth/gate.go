package auth

import (
	"net/http"
	"slices"
	"strings"
)

// TokenVerifier decodes a raw bearer token into a principal.
type TokenVerifier interface {
	Verify(raw string) (Principal, error)
}

// Gate is the single place where bearer credentials are checked.
type Gate struct {
	verifier TokenVerifier
}

// NewGate constructs a Gate.
func NewGate(verifier TokenVerifier) *Gate {
	return &Gate{verifier: verifier}
}

// Authorize extracts the bearer token from h, verifies it and checks that the
// principal's role is one of allowed. An empty allowed set admits nobody.
func (g *Gate) Authorize(h http.Header, allowed ...Role) (Principal, error) {
	raw, err := BearerToken(h)
	if err != nil {
		return Principal{}, err
	}
	p, err := g.verifier.Verify(raw)
	if err != nil {
		return Principal{}, err
	}
	if !slices.Contains(allowed, p.Role) {
		return p, ErrForbiddenRole
	}
	return p, nil
}

// BearerToken returns the token from an "Authorization: Bearer <token>"
// header.
func BearerToken(h http.Header) (string, error) {
	value := strings.TrimSpace(h.Get("Authorization"))
	if value == "" {
		return "", ErrMissingCredential
	}
	parts := strings.SplitN(value, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", ErrMissingCredential
	}
	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", ErrMissingCredential
	}
	return token, nil
}
