package auth

// Role is the coarse permission class carried in every session token.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleStaff Role = "staff"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleStaff
}

// Principal is the authenticated identity decoded from a session token.
type Principal struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// IsAdmin reports whether the principal holds the admin role.
func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// Credential is a stored login for either an admin or a staff member.
type Credential struct {
	ID           int64
	Email        string
	PasswordHash string
	Role         Role
}

// Principal returns the identity a verified credential authenticates as.
func (c Credential) Principal() Principal {
	return Principal{ID: c.ID, Email: c.Email, Role: c.Role}
}
