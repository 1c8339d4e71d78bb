package suppliers

import (
	"context"
	"encoding/json"
	"net/http"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerdesk/backoffice/internal/masterdata/shared"
	"github.com/ledgerdesk/backoffice/internal/rbac"
	"github.com/ledgerdesk/backoffice/internal/rbac/rbactest"
	root "github.com/ledgerdesk/backoffice/internal/shared"
)

type memoryRepo struct {
	mu          sync.Mutex
	rows        map[int64]Supplier
	nextID      int64
	calls       int
	lastFilters shared.ListFilters
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{rows: map[int64]Supplier{
		1: {ID: 1, Name: "Sumber Beras", ContactName: "Pak Dedi", Email: "dedi@sumber.test", Phone: "+62 811 0001", RecordedByUserID: rbactest.Other.ID},
		2: {ID: 2, Name: "Minyak Jaya", ContactName: "Bu Lina", Email: "lina@jaya.test", Phone: "+62 811 0002", RecordedByUserID: rbactest.Admin.ID},
	}, nextID: 100}
}

func (m *memoryRepo) List(_ context.Context, filter rbac.RowFilter, filters shared.ListFilters) ([]Supplier, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	m.lastFilters = filters
	var out []Supplier
	for _, s := range m.rows {
		if !filter.Allows(s.RecordedByUserID) {
			continue
		}
		if filters.Search != "" && !strings.Contains(strings.ToLower(s.Name), strings.ToLower(filters.Search)) {
			continue
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, len(out), nil
}

func (m *memoryRepo) Create(_ context.Context, s Supplier) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	m.nextID++
	s.ID = m.nextID
	m.rows[s.ID] = s
	return s.ID, nil
}

func (m *memoryRepo) Update(_ context.Context, filter rbac.RowFilter, id int64, req UpdateRequest) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	s, ok := m.rows[id]
	if !ok || !filter.Allows(s.RecordedByUserID) {
		return false, nil
	}
	if req.Name != nil {
		s.Name = *req.Name
	}
	if req.Email != nil {
		s.Email = *req.Email
	}
	m.rows[id] = s
	return true, nil
}

func (m *memoryRepo) Delete(_ context.Context, filter rbac.RowFilter, id int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	s, ok := m.rows[id]
	if !ok || !filter.Allows(s.RecordedByUserID) {
		return false, nil
	}
	delete(m.rows, id)
	return true, nil
}

type memoryAudit struct{ entries []root.AuditLog }

func (a *memoryAudit) Record(_ context.Context, log root.AuditLog) error {
	a.entries = append(a.entries, log)
	return nil
}

func setup(t *testing.T) (*rbactest.Harness, *memoryRepo, *memoryAudit, http.Handler) {
	t.Helper()
	h := rbactest.New(t)
	repo := newMemoryRepo()
	audit := &memoryAudit{}
	handler := NewHandler(h.Logger, NewService(repo, audit, h.Logger), h.Middleware)
	r := chi.NewRouter()
	r.Route("/api/suppliers", handler.MountRoutes)
	return h, repo, audit, r
}

func TestStaffReadsWholeDirectory(t *testing.T) {
	h, _, _, router := setup(t)
	rec := h.Do(t, router, &rbactest.Staff, http.MethodGet, "/api/suppliers", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var list root.ListResponse[Supplier]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Len(t, list.Data, 2)
}

func TestListPassesSearch(t *testing.T) {
	h, repo, _, router := setup(t)
	rec := h.Do(t, router, &rbactest.Staff, http.MethodGet, "/api/suppliers?search=jaya&sort=email&dir=desc", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "jaya", repo.lastFilters.Search)
	assert.Equal(t, "email", repo.lastFilters.SortBy)
	var list root.ListResponse[Supplier]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list.Data, 1)
	assert.Equal(t, "Minyak Jaya", list.Data[0].Name)
}

func TestStaffCreatesSupplier(t *testing.T) {
	h, repo, _, router := setup(t)
	body := `{"name":"Gula Manis","contact_name":"Pak Ari","email":"ari@gula.test","phone":"+62 812 3456 789","address":"Jl. Kenanga 4"}`
	rec := h.Do(t, router, &rbactest.Staff, http.MethodPost, "/api/suppliers", body)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, rbactest.Staff.ID, repo.rows[101].RecordedByUserID)
}

func TestCreateValidation(t *testing.T) {
	cases := map[string]struct {
		body string
		want string
	}{
		"missing contact": {`{"name":"A","email":"a@b.test","phone":"+62 812 3456"}`, "contact_name is required"},
		"bad email":       {`{"name":"A","contact_name":"B","email":"nope","phone":"+62 812 3456"}`, "email must be a valid email address"},
		"bad phone":       {`{"name":"A","contact_name":"B","email":"a@b.test","phone":"call me"}`, "phone must be a valid phone number"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			h, repo, _, router := setup(t)
			rec := h.Do(t, router, &rbactest.Staff, http.MethodPost, "/api/suppliers", tc.body)

			require.Equal(t, http.StatusBadRequest, rec.Code)
			assert.JSONEq(t, `{"error":"`+tc.want+`"}`, rec.Body.String())
			assert.Zero(t, repo.calls)
		})
	}
}

func TestStaffCannotUpdateSupplier(t *testing.T) {
	h, repo, _, router := setup(t)
	rec := h.Do(t, router, &rbactest.Other, http.MethodPut, "/api/suppliers?id=1", `{"name":"Renamed"}`)

	require.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Sumber Beras", repo.rows[1].Name)
}

func TestAdminUpdateAndDeleteAreAudited(t *testing.T) {
	h, repo, audit, router := setup(t)

	rec := h.Do(t, router, &rbactest.Admin, http.MethodPut, "/api/suppliers?id=1", `{"email":"sales@sumber.test"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "sales@sumber.test", repo.rows[1].Email)

	rec = h.Do(t, router, &rbactest.Admin, http.MethodDelete, "/api/suppliers?id=2", "")
	require.Equal(t, http.StatusOK, rec.Code)

	require.Len(t, audit.entries, 2)
	assert.Equal(t, "update", audit.entries[0].Action)
	assert.Equal(t, "delete", audit.entries[1].Action)
}

func TestDeleteAbsentSupplier(t *testing.T) {
	h, _, audit, router := setup(t)
	rec := h.Do(t, router, &rbactest.Admin, http.MethodDelete, "/api/suppliers?id=99", "")

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Supplier not found"}`, rec.Body.String())
	assert.Empty(t, audit.entries)
}
