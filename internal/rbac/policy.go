// Package rbac holds the role-scoped access policy for every record resource
// and the middleware that enforces its role column.
package rbac

import (
	"slices"

	"github.com/ledgerdesk/backoffice/internal/auth"
)

// Resource names a table-backed record type.
type Resource string

const (
	ResourceSales            Resource = "sales"
	ResourceExpenses         Resource = "expenses"
	ResourceCompanyExpenses  Resource = "company_expenses"
	ResourceInventory        Resource = "inventory"
	ResourceStockAdjustments Resource = "stock_adjustments"
	ResourceStockMovements   Resource = "stock_movements"
	ResourcePayroll          Resource = "payroll"
	ResourceCustomers        Resource = "customers"
	ResourceCustomerLedger   Resource = "customer_ledger"
	ResourceSuppliers        Resource = "suppliers"
	ResourceSupplierLedger   Resource = "supplier_ledger"
	ResourceBankDeposits     Resource = "bank_deposits"
	ResourceReports          Resource = "reports"
	ResourcePayrollTotals    Resource = "payroll_totals"
	ResourceJobs             Resource = "jobs"
	ResourceAuditLogs        Resource = "audit_logs"
)

// Operation is one of the four record operations.
type Operation string

const (
	OpRead   Operation = "read"
	OpCreate Operation = "create"
	OpUpdate Operation = "update"
	OpDelete Operation = "delete"
)

// Scope says which rows a staff principal may touch.
type Scope int

const (
	// ScopeOwn limits staff to rows whose owner column equals their id.
	ScopeOwn Scope = iota
	// ScopeAll grants staff cross-owner access.
	ScopeAll
)

// Rule is the policy for one (resource, operation) pair.
type Rule struct {
	Roles      []auth.Role
	StaffScope Scope
}

// Policy describes one resource.
type Policy struct {
	OwnerColumn string
	Rules       map[Operation]Rule
	// RestrictedFields lists update fields a role may not send.
	RestrictedFields map[auth.Role][]string
	// NonNegativeOnCreate lists create fields a role may not set below zero.
	NonNegativeOnCreate map[auth.Role][]string
}

var (
	anyone    = []auth.Role{auth.RoleAdmin, auth.RoleStaff}
	adminOnly = []auth.Role{auth.RoleAdmin}
)

// ownedRecords is the shape shared by append-only resources: anyone creates,
// staff read their own rows, only admins delete.
func ownedRecords(column string) Policy {
	return Policy{
		OwnerColumn: column,
		Rules: map[Operation]Rule{
			OpRead:   {Roles: anyone, StaffScope: ScopeOwn},
			OpCreate: {Roles: anyone},
			OpDelete: {Roles: adminOnly},
		},
	}
}

// sharedDirectory is the shape of customers and suppliers: readable by all,
// edited by admins.
func sharedDirectory(column string) Policy {
	return Policy{
		OwnerColumn: column,
		Rules: map[Operation]Rule{
			OpRead:   {Roles: anyone, StaffScope: ScopeAll},
			OpCreate: {Roles: anyone},
			OpUpdate: {Roles: adminOnly},
			OpDelete: {Roles: adminOnly},
		},
	}
}

var policies = map[Resource]Policy{
	ResourceSales:            ownedRecords("recorded_by_user_id"),
	ResourceExpenses:         ownedRecords("recorded_by_user_id"),
	ResourceCompanyExpenses:  ownedRecords("initiated_by_user_id"),
	ResourceStockAdjustments: ownedRecords("recorded_by_user_id"),
	ResourceStockMovements:   ownedRecords("recorded_by_user_id"),
	ResourceCustomerLedger:   ownedRecords("recorded_by_user_id"),
	ResourceSupplierLedger:   ownedRecords("recorded_by_user_id"),
	ResourceBankDeposits:     ownedRecords("staff_id"),
	ResourceCustomers:        sharedDirectory("recorded_by_user_id"),
	ResourceSuppliers:        sharedDirectory("recorded_by_user_id"),
	ResourceInventory: {
		OwnerColumn: "recorded_by_user_id",
		Rules: map[Operation]Rule{
			OpRead:   {Roles: anyone, StaffScope: ScopeOwn},
			OpCreate: {Roles: anyone},
			OpUpdate: {Roles: anyone, StaffScope: ScopeOwn},
			OpDelete: {Roles: adminOnly},
		},
		RestrictedFields:    map[auth.Role][]string{auth.RoleStaff: {"unit_price", "reorder_level"}},
		NonNegativeOnCreate: map[auth.Role][]string{auth.RoleStaff: {"quantity"}},
	},
	ResourcePayroll: {
		OwnerColumn: "staff_id",
		Rules: map[Operation]Rule{
			OpRead:   {Roles: anyone, StaffScope: ScopeOwn},
			OpCreate: {Roles: adminOnly},
			OpUpdate: {Roles: adminOnly},
			OpDelete: {Roles: adminOnly},
		},
	},
	ResourceReports: {
		Rules: map[Operation]Rule{OpRead: {Roles: anyone, StaffScope: ScopeAll}},
	},
	ResourcePayrollTotals: {
		Rules: map[Operation]Rule{OpRead: {Roles: adminOnly}},
	},
	ResourceJobs: {
		Rules: map[Operation]Rule{OpRead: {Roles: adminOnly}},
	},
	ResourceAuditLogs: {
		Rules: map[Operation]Rule{OpRead: {Roles: adminOnly}},
	},
}

// Lookup returns the policy for res.
func Lookup(res Resource) (Policy, bool) {
	p, ok := policies[res]
	return p, ok
}

// AllowedRoles returns the roles admitted to op on res. Unknown pairs admit
// nobody.
func AllowedRoles(res Resource, op Operation) []auth.Role {
	rule, ok := policies[res].Rules[op]
	if !ok {
		return nil
	}
	return slices.Clone(rule.Roles)
}

// Permits reports whether p may perform op on res at all.
func Permits(p auth.Principal, res Resource, op Operation) bool {
	return slices.Contains(AllowedRoles(res, op), p.Role)
}
