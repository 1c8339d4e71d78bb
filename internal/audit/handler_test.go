package audit

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerdesk/backoffice/internal/rbac/rbactest"
)

type stubTimelineRepo struct {
	rows       []TimelineRow
	err        error
	lastFilter TimelineFilters
	lastOffset int
	lastLimit  int
}

func (s *stubTimelineRepo) TimelineWindow(_ context.Context, f TimelineFilters, offset, limit int) ([]TimelineRow, error) {
	s.lastFilter, s.lastOffset, s.lastLimit = f, offset, limit
	if s.err != nil {
		return nil, s.err
	}
	end := min(offset+limit, len(s.rows))
	if offset >= end {
		return nil, nil
	}
	return s.rows[offset:end], nil
}

func (s *stubTimelineRepo) TimelineAll(_ context.Context, f TimelineFilters, limit int) ([]TimelineRow, error) {
	s.lastFilter, s.lastLimit = f, limit
	return s.rows, s.err
}

var fixedNow = time.Date(2026, 10, 14, 15, 30, 0, 0, time.UTC)

func sampleRows(n int) []TimelineRow {
	rows := make([]TimelineRow, n)
	for i := range rows {
		rows[i] = TimelineRow{
			ID:        int64(n - i),
			At:        fixedNow.Add(-time.Duration(i) * time.Hour),
			ActorID:   1,
			ActorRole: "admin",
			Action:    "delete",
			Entity:    "sales",
			EntityID:  "42",
			Meta:      json.RawMessage(`{}`),
		}
	}
	return rows
}

func newAuditRouter(t *testing.T, repo *stubTimelineRepo) (*rbactest.Harness, http.Handler) {
	t.Helper()
	h := rbactest.New(t)
	handler := NewHandler(h.Logger, NewService(repo), h.Middleware)
	handler.now = func() time.Time { return fixedNow }
	r := chi.NewRouter()
	r.Route("/audit-logs", handler.MountRoutes)
	return h, r
}

func TestTimelinePaging(t *testing.T) {
	repo := &stubTimelineRepo{rows: sampleRows(3)}
	h, r := newAuditRouter(t, repo)

	rec := h.Do(t, r, &rbactest.Admin, http.MethodGet, "/audit-logs?page_size=2", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body.Rows, 2)
	assert.Equal(t, PagingInfo{Page: 1, PageSize: 2, HasNext: true, NextPage: 2}, body.Paging)
	assert.Equal(t, 0, repo.lastOffset)
	assert.Equal(t, 3, repo.lastLimit)

	rec = h.Do(t, r, &rbactest.Admin, http.MethodGet, "/audit-logs?page_size=2&page=2", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body.Rows, 1)
	assert.Equal(t, PagingInfo{Page: 2, PageSize: 2, PrevPage: 1}, body.Paging)
}

func TestTimelineDefaultsToLastWeek(t *testing.T) {
	repo := &stubTimelineRepo{}
	h, r := newAuditRouter(t, repo)

	rec := h.Do(t, r, &rbactest.Admin, http.MethodGet, "/audit-logs?entity=payroll&actor_id=1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"data":[],"paging":{"page":1,"page_size":20,"has_next":false}}`, rec.Body.String())

	assert.Equal(t, time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC), repo.lastFilter.To)
	assert.Equal(t, time.Date(2026, 10, 7, 0, 0, 0, 0, time.UTC), repo.lastFilter.From)
	assert.Equal(t, "payroll", repo.lastFilter.Entity)
	assert.Equal(t, int64(1), repo.lastFilter.ActorID)
}

func TestTimelineRejectsBadFilters(t *testing.T) {
	h, r := newAuditRouter(t, &stubTimelineRepo{})

	tests := []struct {
		query string
		want  string
	}{
		{"to=14-10-2026", "to must be a date in YYYY-MM-DD form"},
		{"from=2026-10-20&to=2026-10-01", "from must not be after to"},
		{"from=2026-01-01&to=2026-10-01", "date range must not exceed 90 days"},
		{"actor_id=abc", "actor_id must be a positive integer"},
		{"page=0", "page must be a positive integer"},
	}
	for _, tc := range tests {
		t.Run(tc.query, func(t *testing.T) {
			rec := h.Do(t, r, &rbactest.Admin, http.MethodGet, "/audit-logs?"+tc.query, "")
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.JSONEq(t, `{"error":"`+tc.want+`"}`, rec.Body.String())
		})
	}
}

func TestTimelineAdminOnly(t *testing.T) {
	repo := &stubTimelineRepo{}
	h, r := newAuditRouter(t, repo)

	rec := h.Do(t, r, &rbactest.Staff, http.MethodGet, "/audit-logs", "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	rec = h.Do(t, r, &rbactest.Staff, http.MethodGet, "/audit-logs/export.csv", "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Zero(t, repo.lastLimit)
}

func TestTimelineStorageError(t *testing.T) {
	h, r := newAuditRouter(t, &stubTimelineRepo{err: errors.New("relation audit_logs does not exist")})

	rec := h.Do(t, r, &rbactest.Admin, http.MethodGet, "/audit-logs", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Internal server error"}`, rec.Body.String())
}

func TestExportCSV(t *testing.T) {
	repo := &stubTimelineRepo{rows: sampleRows(2)}
	h, r := newAuditRouter(t, repo)

	rec := h.Do(t, r, &rbactest.Admin, http.MethodGet, "/audit-logs/export.csv", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))

	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "at,actor_id,actor_role,action,entity,entity_id,meta", lines[0])
	assert.Equal(t, "2026-10-14T15:30:00Z,1,admin,delete,sales,42,{}", lines[1])
	assert.Equal(t, maxExportRows, repo.lastLimit)
}

func TestTimelineWhere(t *testing.T) {
	where, args := timelineWhere(TimelineFilters{
		From:   time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
		To:     time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC),
		Entity: "inventory",
	})
	assert.Equal(t, " WHERE occurred_at >= $1 AND occurred_at < $2 AND entity = $3", where)
	require.Len(t, args, 3)
	assert.Equal(t, time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC), args[1])

	where, args = timelineWhere(TimelineFilters{})
	assert.Empty(t, where)
	assert.Empty(t, args)
}
