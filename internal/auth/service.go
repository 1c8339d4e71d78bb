package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Session is returned to the client after a successful login.
type Session struct {
	User      Principal `json:"user"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Service wraps authentication business rules.
type Service struct {
	repo      Repository
	tokens    *TokenIssuer
	decoyHash []byte
}

// NewService constructs a new Service.
func NewService(repo Repository, tokens *TokenIssuer) (*Service, error) {
	decoy, err := bcrypt.GenerateFromPassword([]byte("decoy-password"), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("auth: decoy hash: %w", err)
	}
	return &Service{repo: repo, tokens: tokens, decoyHash: decoy}, nil
}

// Issue verifies email and password and returns a signed session. Admin
// logins are matched before staff logins.
func (s *Service) Issue(ctx context.Context, email, password string) (Session, error) {
	cred, err := s.lookup(ctx, normalizeEmail(email))
	if errors.Is(err, ErrCredentialNotFound) {
		// Keep the failure path as slow as a real comparison.
		_ = bcrypt.CompareHashAndPassword(s.decoyHash, []byte(password))
		return Session{}, ErrInvalidCredentials
	}
	if err != nil {
		return Session{}, fmt.Errorf("auth: lookup credential: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(password)); err != nil {
		return Session{}, ErrInvalidCredentials
	}
	principal := cred.Principal()
	token, expiresAt, err := s.tokens.Sign(principal)
	if err != nil {
		return Session{}, fmt.Errorf("auth: sign token: %w", err)
	}
	return Session{User: principal, Token: token, ExpiresAt: expiresAt}, nil
}

func (s *Service) lookup(ctx context.Context, email string) (Credential, error) {
	cred, err := s.repo.FindAdminByEmail(ctx, email)
	if err == nil || !errors.Is(err, ErrCredentialNotFound) {
		return cred, err
	}
	return s.repo.FindStaffByEmail(ctx, email)
}

// normalizeEmail trims and lower-cases an address with locale-independent
// rules, matching lower(email) in the lookup queries.
func normalizeEmail(email string) string {
	return cases.Lower(language.Und).String(strings.TrimSpace(email))
}
