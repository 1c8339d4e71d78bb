package rbac

import (
	"strconv"

	"github.com/ledgerdesk/backoffice/internal/auth"
)

// RowFilter restricts a statement to the rows a principal may see.
type RowFilter struct {
	All         bool
	OwnerColumn string
	OwnerID     int64
}

// ScopeFilter resolves the row filter for p performing op on res. It fails
// with auth.ErrForbiddenRole when the policy does not admit p's role.
func ScopeFilter(p auth.Principal, op Operation, res Resource) (RowFilter, error) {
	policy, ok := policies[res]
	if !ok {
		return RowFilter{}, auth.ErrForbiddenRole
	}
	rule, ok := policy.Rules[op]
	if !ok || !Permits(p, res, op) || p.ID <= 0 {
		return RowFilter{}, auth.ErrForbiddenRole
	}
	if p.IsAdmin() || rule.StaffScope == ScopeAll || policy.OwnerColumn == "" {
		return RowFilter{All: true}, nil
	}
	return RowFilter{OwnerColumn: policy.OwnerColumn, OwnerID: p.ID}, nil
}

// Allows reports whether a row owned by ownerID passes the filter.
func (f RowFilter) Allows(ownerID int64) bool {
	return f.All || ownerID == f.OwnerID
}

// Where returns a WHERE clause using placeholder $next, or an empty string
// when the filter admits every row.
func (f RowFilter) Where(next int) (string, []any) {
	return f.clause(" WHERE ", next)
}

// And returns an AND clause using placeholder $next for appending to a
// statement that already has a WHERE.
func (f RowFilter) And(next int) (string, []any) {
	return f.clause(" AND ", next)
}

func (f RowFilter) clause(prefix string, next int) (string, []any) {
	if f.All {
		return "", nil
	}
	return prefix + f.OwnerColumn + " = $" + strconv.Itoa(next), []any{f.OwnerID}
}

// OwnerFilter narrows res to rows owned by ownerID regardless of role. Callers
// use it after ScopeFilter has granted All to apply an explicit owner choice.
func OwnerFilter(res Resource, ownerID int64) RowFilter {
	return RowFilter{OwnerColumn: policies[res].OwnerColumn, OwnerID: ownerID}
}
