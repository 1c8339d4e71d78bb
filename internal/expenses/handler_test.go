package expenses

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerdesk/backoffice/internal/rbac"
	"github.com/ledgerdesk/backoffice/internal/rbac/rbactest"
	"github.com/ledgerdesk/backoffice/internal/shared"
)

type memoryRepo struct {
	expenses []Expense
	company  []CompanyExpense
	writes   int
}

func (m *memoryRepo) ListExpenses(_ context.Context, f rbac.RowFilter, _ shared.PageRequest) ([]Expense, int, error) {
	var out []Expense
	for _, e := range m.expenses {
		if f.Allows(e.RecordedByUserID) {
			out = append(out, e)
		}
	}
	return out, len(out), nil
}

func (m *memoryRepo) CreateExpense(_ context.Context, e Expense) (int64, error) {
	m.writes++
	e.ID = int64(len(m.expenses) + 1)
	m.expenses = append(m.expenses, e)
	return e.ID, nil
}

func (m *memoryRepo) DeleteExpense(_ context.Context, f rbac.RowFilter, id int64) (bool, error) {
	m.writes++
	for i, e := range m.expenses {
		if e.ID == id && f.Allows(e.RecordedByUserID) {
			m.expenses = append(m.expenses[:i], m.expenses[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (m *memoryRepo) ListCompanyExpenses(_ context.Context, f rbac.RowFilter, _ shared.PageRequest) ([]CompanyExpense, int, error) {
	var out []CompanyExpense
	for _, e := range m.company {
		if f.Allows(e.InitiatedByUserID) {
			out = append(out, e)
		}
	}
	return out, len(out), nil
}

func (m *memoryRepo) CreateCompanyExpense(_ context.Context, e CompanyExpense) (int64, error) {
	m.writes++
	e.ID = int64(len(m.company) + 1)
	m.company = append(m.company, e)
	return e.ID, nil
}

func (m *memoryRepo) DeleteCompanyExpense(_ context.Context, f rbac.RowFilter, id int64) (bool, error) {
	m.writes++
	for i, e := range m.company {
		if e.ID == id && f.Allows(e.InitiatedByUserID) {
			m.company = append(m.company[:i], m.company[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func newRouter(t *testing.T, repo *memoryRepo) (*rbactest.Harness, http.Handler) {
	t.Helper()
	h := rbactest.New(t)
	handler := NewHandler(h.Logger, NewService(repo, nil, nil, h.Logger), h.Middleware)
	r := chi.NewRouter()
	r.Route("/api/expenses", handler.MountRoutes)
	r.Route("/api/company-expenses", handler.MountCompanyRoutes)
	return h, r
}

func seedExpenses() []Expense {
	return []Expense{
		{ID: 1, LorryID: "B 1234 XY", ExpenseType: "fuel", Amount: 50, ExpenseDate: "2026-10-01", RecordedByUserID: rbactest.Staff.ID},
		{ID: 2, LorryID: "B 5678 ZZ", ExpenseType: "toll", Amount: 12, ExpenseDate: "2026-10-02", RecordedByUserID: rbactest.Other.ID},
		{ID: 3, LorryID: "B 9012 AB", ExpenseType: "repair", Amount: 300, ExpenseDate: "2026-10-03", RecordedByUserID: rbactest.Admin.ID},
	}
}

func TestStaffSeesOnlyOwnExpenses(t *testing.T) {
	repo := &memoryRepo{expenses: seedExpenses()}
	h, router := newRouter(t, repo)

	rec := h.Do(t, router, &rbactest.Staff, http.MethodGet, "/api/expenses", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var list shared.ListResponse[Expense]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list.Data, 1)
	assert.Equal(t, rbactest.Staff.ID, list.Data[0].RecordedByUserID)
	assert.Equal(t, 1, list.Total)
}

func TestAdminSeesAllExpenses(t *testing.T) {
	repo := &memoryRepo{expenses: seedExpenses()}
	h, router := newRouter(t, repo)

	rec := h.Do(t, router, &rbactest.Admin, http.MethodGet, "/api/expenses", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var list shared.ListResponse[Expense]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list.Data, 3)
	assert.Equal(t, 3, list.Total)
	owners := make([]int64, 0, len(list.Data))
	for _, e := range list.Data {
		owners = append(owners, e.RecordedByUserID)
	}
	assert.ElementsMatch(t, []int64{rbactest.Staff.ID, rbactest.Other.ID, rbactest.Admin.ID}, owners)
}

func TestCompanyExpensesScopedByInitiator(t *testing.T) {
	repo := &memoryRepo{company: []CompanyExpense{
		{ID: 1, Description: "Office rent", Amount: 900, InitiatedByUserID: rbactest.Admin.ID},
		{ID: 2, Description: "Printer ink", Amount: 35, InitiatedByUserID: rbactest.Staff.ID},
	}}
	h, router := newRouter(t, repo)

	rec := h.Do(t, router, &rbactest.Staff, http.MethodGet, "/api/company-expenses", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var list shared.ListResponse[CompanyExpense]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list.Data, 1)
	assert.Equal(t, "Printer ink", list.Data[0].Description)

	rec = h.Do(t, router, &rbactest.Admin, http.MethodGet, "/api/company-expenses", "")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Len(t, list.Data, 2)
}

func TestCreateCompanyExpenseAttributesInitiator(t *testing.T) {
	repo := &memoryRepo{}
	h, router := newRouter(t, repo)

	rec := h.Do(t, router, &rbactest.Staff, http.MethodPost, "/api/company-expenses", `{"description":"Courier","amount":12.5}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, repo.company, 1)
	assert.Equal(t, rbactest.Staff.ID, repo.company[0].InitiatedByUserID)
}

func TestCreateExpenseRejectsBadDate(t *testing.T) {
	repo := &memoryRepo{}
	h, router := newRouter(t, repo)

	body := `{"lorry_id":"B 1234 XY","expense_type":"fuel","amount":50,"expense_date":"03/01/2026"}`
	rec := h.Do(t, router, &rbactest.Staff, http.MethodPost, "/api/expenses", body)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"expense_date must be a date in YYYY-MM-DD form"}`, rec.Body.String())
	assert.Zero(t, repo.writes)
}

func TestExpenseDeleteAdminOnly(t *testing.T) {
	repo := &memoryRepo{expenses: []Expense{{ID: 1, LorryID: "B 1", ExpenseType: "fuel", Amount: 10, ExpenseDate: "2026-03-01", RecordedByUserID: rbactest.Staff.ID}}}
	h, router := newRouter(t, repo)

	rec := h.Do(t, router, &rbactest.Staff, http.MethodDelete, "/api/expenses?id=1", "")
	require.Equal(t, http.StatusForbidden, rec.Code)
	assert.Zero(t, repo.writes)

	rec = h.Do(t, router, &rbactest.Admin, http.MethodDelete, "/api/expenses?id=1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, repo.expenses)

	rec = h.Do(t, router, &rbactest.Admin, http.MethodDelete, "/api/expenses?id=1", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
}
