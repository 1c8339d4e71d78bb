package rbac

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerdesk/backoffice/internal/auth"
	"github.com/ledgerdesk/backoffice/internal/platform/httpx"
)

var (
	admin = auth.Principal{ID: 1, Email: "boss@shop.test", Role: auth.RoleAdmin}
	staff = auth.Principal{ID: 7, Email: "rina@shop.test", Role: auth.RoleStaff}
)

func TestAllowedRolesTable(t *testing.T) {
	tests := []struct {
		res  Resource
		op   Operation
		want []auth.Role
	}{
		{ResourceSales, OpRead, []auth.Role{auth.RoleAdmin, auth.RoleStaff}},
		{ResourceSales, OpCreate, []auth.Role{auth.RoleAdmin, auth.RoleStaff}},
		{ResourceSales, OpUpdate, nil},
		{ResourceSales, OpDelete, []auth.Role{auth.RoleAdmin}},
		{ResourcePayroll, OpCreate, []auth.Role{auth.RoleAdmin}},
		{ResourceInventory, OpUpdate, []auth.Role{auth.RoleAdmin, auth.RoleStaff}},
		{ResourceCustomers, OpUpdate, []auth.Role{auth.RoleAdmin}},
		{ResourceBankDeposits, OpUpdate, nil},
		{ResourcePayrollTotals, OpRead, []auth.Role{auth.RoleAdmin}},
		{ResourceAuditLogs, OpRead, []auth.Role{auth.RoleAdmin}},
		{ResourceAuditLogs, OpDelete, nil},
		{Resource("unknown"), OpRead, nil},
	}
	for _, tc := range tests {
		t.Run(string(tc.res)+"/"+string(tc.op), func(t *testing.T) {
			assert.Equal(t, tc.want, AllowedRoles(tc.res, tc.op))
		})
	}
}

func TestAllowedRolesReturnsCopy(t *testing.T) {
	roles := AllowedRoles(ResourceSales, OpRead)
	roles[0] = auth.Role("owner")
	assert.Equal(t, auth.RoleAdmin, AllowedRoles(ResourceSales, OpRead)[0])
}

func TestScopeFilterAdminSeesAll(t *testing.T) {
	f, err := ScopeFilter(admin, OpRead, ResourceSales)
	require.NoError(t, err)
	assert.True(t, f.All)
	where, args := f.Where(1)
	assert.Empty(t, where)
	assert.Empty(t, args)
}

func TestScopeFilterStaffOwnRows(t *testing.T) {
	f, err := ScopeFilter(staff, OpRead, ResourceCompanyExpenses)
	require.NoError(t, err)
	assert.False(t, f.All)

	where, args := f.Where(1)
	assert.Equal(t, " WHERE initiated_by_user_id = $1", where)
	assert.Equal(t, []any{int64(7)}, args)

	and, args := f.And(3)
	assert.Equal(t, " AND initiated_by_user_id = $3", and)
	assert.Equal(t, []any{int64(7)}, args)

	assert.True(t, f.Allows(7))
	assert.False(t, f.Allows(8))
}

func TestScopeFilterPayrollUsesStaffID(t *testing.T) {
	f, err := ScopeFilter(staff, OpRead, ResourcePayroll)
	require.NoError(t, err)
	assert.Equal(t, "staff_id", f.OwnerColumn)
}

func TestScopeFilterDirectoryReadableByAll(t *testing.T) {
	for _, res := range []Resource{ResourceCustomers, ResourceSuppliers, ResourceReports} {
		f, err := ScopeFilter(staff, OpRead, res)
		require.NoError(t, err)
		assert.True(t, f.All, res)
	}
}

func TestScopeFilterRejectsRoleOutsidePolicy(t *testing.T) {
	_, err := ScopeFilter(staff, OpDelete, ResourceSales)
	require.ErrorIs(t, err, auth.ErrForbiddenRole)

	_, err = ScopeFilter(auth.Principal{}, OpRead, ResourceSales)
	require.ErrorIs(t, err, auth.ErrForbiddenRole)

	_, err = ScopeFilter(staff, OpRead, ResourcePayrollTotals)
	require.ErrorIs(t, err, auth.ErrForbiddenRole)
}

func TestCheckFields(t *testing.T) {
	err := CheckFields(staff, ResourceInventory, []string{"quantity", "unit_price"})
	require.ErrorIs(t, err, ErrForbiddenField)
	require.True(t, errors.Is(err, httpx.ErrForbidden))
	assert.Equal(t, "staff cannot modify unit_price", err.Error())

	require.NoError(t, CheckFields(staff, ResourceInventory, []string{"quantity", "item_name"}))
	require.NoError(t, CheckFields(admin, ResourceInventory, []string{"unit_price", "reorder_level"}))
}

func TestCheckNonNegative(t *testing.T) {
	require.ErrorIs(t, CheckNonNegative(staff, ResourceInventory, "quantity", -5), ErrNegativeQuantity)
	require.NoError(t, CheckNonNegative(admin, ResourceInventory, "quantity", -5))
	require.NoError(t, CheckNonNegative(staff, ResourceInventory, "quantity", 0))
}
