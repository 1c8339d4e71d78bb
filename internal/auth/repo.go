package auth

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/ledgerdesk/backoffice/internal/platform/db"
)

// Repository defines credential lookups for the auth module. Emails passed in
// are already case-folded.
type Repository interface {
	FindAdminByEmail(ctx context.Context, email string) (Credential, error)
	FindStaffByEmail(ctx context.Context, email string) (Credential, error)
}

// PGRepository implements Repository using PostgreSQL.
type PGRepository struct {
	db db.Querier
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(q db.Querier) *PGRepository {
	return &PGRepository{db: q}
}

// FindAdminByEmail fetches an admin login.
func (r *PGRepository) FindAdminByEmail(ctx context.Context, email string) (Credential, error) {
	return r.find(ctx, `SELECT id, email, password_hash FROM admins WHERE lower(email) = $1 LIMIT 1`, email, RoleAdmin)
}

// FindStaffByEmail fetches a staff login.
func (r *PGRepository) FindStaffByEmail(ctx context.Context, email string) (Credential, error) {
	return r.find(ctx, `SELECT id, email, password_hash FROM staff WHERE lower(email) = $1 LIMIT 1`, email, RoleStaff)
}

func (r *PGRepository) find(ctx context.Context, query, email string, role Role) (Credential, error) {
	cred := Credential{Role: role}
	err := r.db.QueryRow(ctx, query, email).Scan(&cred.ID, &cred.Email, &cred.PasswordHash)
	if errors.Is(err, pgx.ErrNoRows) {
		return Credential{}, ErrCredentialNotFound
	}
	if err != nil {
		return Credential{}, err
	}
	return cred, nil
}

var _ Repository = (*PGRepository)(nil)
