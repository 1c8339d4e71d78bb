package deposits

import (
	"context"
	"encoding/json"
	"net/http"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerdesk/backoffice/internal/rbac"
	"github.com/ledgerdesk/backoffice/internal/rbac/rbactest"
	"github.com/ledgerdesk/backoffice/internal/shared"
)

type memoryRepo struct {
	mu     sync.Mutex
	rows   map[int64]Deposit
	nextID int64
}

func (m *memoryRepo) List(_ context.Context, filter rbac.RowFilter) ([]Deposit, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Deposit
	for _, d := range m.rows {
		if filter.Allows(d.StaffID) {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memoryRepo) Create(_ context.Context, d Deposit) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	d.ID = m.nextID
	d.InitiatedAt = time.Now()
	m.rows[d.ID] = d
	return d.ID, nil
}

func (m *memoryRepo) Delete(_ context.Context, filter rbac.RowFilter, id int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.rows[id]
	if !ok || !filter.Allows(d.StaffID) {
		return false, nil
	}
	delete(m.rows, id)
	return true, nil
}

type memoryAudit struct{ entries []shared.AuditLog }

func (a *memoryAudit) Record(_ context.Context, log shared.AuditLog) error {
	a.entries = append(a.entries, log)
	return nil
}

func setup(t *testing.T) (*rbactest.Harness, *memoryRepo, http.Handler) {
	t.Helper()
	h := rbactest.New(t)
	repo := &memoryRepo{rows: map[int64]Deposit{
		1: {ID: 1, Amount: 300, Description: "Monday takings", StaffID: rbactest.Staff.ID},
		2: {ID: 2, Amount: 120.5, Description: "Tuesday takings", StaffID: rbactest.Staff.ID},
		3: {ID: 3, Amount: 80, Description: "Kiosk", StaffID: rbactest.Other.ID},
	}, nextID: 10}
	handler := NewHandler(h.Logger, NewService(repo, &memoryAudit{}, h.Logger), h.Middleware)
	r := chi.NewRouter()
	r.Route("/api/bank-deposits", handler.MountRoutes)
	return h, repo, r
}

func TestStaffListingTotalsOwnDeposits(t *testing.T) {
	h, _, router := setup(t)
	rec := h.Do(t, router, &rbactest.Staff, http.MethodGet, "/api/bank-deposits", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var out Listing
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Len(t, out.Deposits, 2)
	assert.InDelta(t, 420.5, out.Total, 0.001)
}

func TestEmptyListingRendersArray(t *testing.T) {
	h, repo, router := setup(t)
	repo.rows = map[int64]Deposit{}
	rec := h.Do(t, router, &rbactest.Admin, http.MethodGet, "/api/bank-deposits", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"deposits":[],"total":0}`, rec.Body.String())
}

func TestCreateLinksDepositToCaller(t *testing.T) {
	h, repo, router := setup(t)
	rec := h.Do(t, router, &rbactest.Other, http.MethodPost, "/api/bank-deposits", `{"amount":55,"description":"Kiosk float"}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, rbactest.Other.ID, repo.rows[11].StaffID)
}

func TestCreateRejectsNonPositiveAmount(t *testing.T) {
	h, repo, router := setup(t)
	rec := h.Do(t, router, &rbactest.Other, http.MethodPost, "/api/bank-deposits", `{"amount":-1,"description":"oops"}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Len(t, repo.rows, 3)
}

func TestPutIsNotAllowed(t *testing.T) {
	h, _, router := setup(t)

	rec := h.Do(t, router, nil, http.MethodPut, "/api/bank-deposits?id=1", `{"amount":1}`)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = h.Do(t, router, &rbactest.Admin, http.MethodPut, "/api/bank-deposits?id=1", `{"amount":1}`)
	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, []string{"GET", "POST", "DELETE"}, rec.Header().Values("Allow"))
}

func TestDeleteIsAdminOnly(t *testing.T) {
	h, repo, router := setup(t)

	rec := h.Do(t, router, &rbactest.Staff, http.MethodDelete, "/api/bank-deposits?id=1", "")
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = h.Do(t, router, &rbactest.Admin, http.MethodDelete, "/api/bank-deposits?id=1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, repo.rows, int64(1))
}
