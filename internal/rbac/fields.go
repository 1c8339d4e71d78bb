package rbac

import (
	"slices"
	"strings"

	"github.com/ledgerdesk/backoffice/internal/auth"
	"github.com/ledgerdesk/backoffice/internal/platform/httpx"
)

var (
	// ErrForbiddenField is returned when an update carries a field the
	// principal's role may not modify.
	ErrForbiddenField = httpx.Forbidden("field not modifiable by this role")
	// ErrNegativeQuantity is returned when staff try to record a negative
	// inventory quantity.
	ErrNegativeQuantity = httpx.Forbidden("staff cannot record negative inventory quantities")
)

// CheckFields rejects an update of res by p when present contains any field
// the policy restricts for p's role.
func CheckFields(p auth.Principal, res Resource, present []string) error {
	restricted := policies[res].RestrictedFields[p.Role]
	var hit []string
	for _, f := range restricted {
		if slices.Contains(present, f) {
			hit = append(hit, f)
		}
	}
	if len(hit) == 0 {
		return nil
	}
	return &httpx.Error{
		Kind:    ErrForbiddenField,
		Message: string(p.Role) + " cannot modify " + strings.Join(hit, " or "),
	}
}

// CheckNonNegative rejects a create of res by p that sets field below zero
// when the policy forbids it for p's role.
func CheckNonNegative(p auth.Principal, res Resource, field string, value float64) error {
	if value >= 0 {
		return nil
	}
	if slices.Contains(policies[res].NonNegativeOnCreate[p.Role], field) {
		return ErrNegativeQuantity
	}
	return nil
}
