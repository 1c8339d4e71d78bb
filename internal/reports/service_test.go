package reports

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerdesk/backoffice/internal/rbac/rbactest"
)

var fixedNow = time.Date(2026, time.October, 14, 15, 30, 0, 0, time.UTC)

type mockRepo struct {
	bucketCalls  atomic.Int32
	payrollCalls atomic.Int32
	gate         chan struct{}
	lastPeriod   Period
	lastSince    time.Time
	mu           sync.Mutex
}

func (m *mockRepo) Buckets(_ context.Context, period Period, since time.Time) ([]Bucket, error) {
	m.bucketCalls.Add(1)
	if m.gate != nil {
		<-m.gate
	}
	m.mu.Lock()
	m.lastPeriod, m.lastSince = period, since
	m.mu.Unlock()
	return []Bucket{
		{Start: time.Date(2026, time.October, 13, 0, 0, 0, 0, time.UTC), Sales: 500, Expenses: 120},
		{Start: time.Date(2026, time.October, 14, 0, 0, 0, 0, time.UTC), Sales: 300, Expenses: 400},
	}, nil
}

func (m *mockRepo) Totals(context.Context) (float64, float64, error) {
	return 800, 520, nil
}

func (m *mockRepo) PaidPayroll(_ context.Context, month string) (float64, error) {
	m.payrollCalls.Add(1)
	if month != "2026-10" {
		return 0, nil
	}
	return 1860, nil
}

func (m *mockRepo) PaymentTotals(context.Context) (PaymentTotals, error) {
	return PaymentTotals{CashTotal: 410, TransferTotal: 250}, nil
}

func (m *mockRepo) PaymentDays(context.Context, time.Time) ([]PaymentDayRow, error) {
	return []PaymentDayRow{{Day: time.Date(2026, time.October, 12, 0, 0, 0, 0, time.UTC), Cash: 50, Transfer: 20}}, nil
}

func newTestService(t *testing.T, repo Repository) (*Service, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := NewService(repo, NewCache(client, time.Minute, logger), logger, WithClock(func() time.Time { return fixedNow }))
	return svc, mr
}

func TestParsePeriod(t *testing.T) {
	p, err := ParsePeriod("")
	require.NoError(t, err)
	assert.Equal(t, PeriodDay, p)

	p, err = ParsePeriod("month")
	require.NoError(t, err)
	assert.Equal(t, PeriodMonth, p)

	_, err = ParsePeriod("decade")
	require.Error(t, err)
}

func TestPeriodWindows(t *testing.T) {
	cases := map[Period]time.Time{
		PeriodDay:   time.Date(2026, time.October, 8, 0, 0, 0, 0, time.UTC),
		PeriodWeek:  time.Date(2026, time.September, 21, 0, 0, 0, 0, time.UTC),
		PeriodMonth: time.Date(2025, time.November, 1, 0, 0, 0, 0, time.UTC),
		PeriodYear:  time.Date(2022, time.January, 1, 0, 0, 0, 0, time.UTC),
	}
	for period, want := range cases {
		assert.Equal(t, want, period.window(fixedNow), string(period))
	}
}

func TestPeriodLabels(t *testing.T) {
	at := time.Date(2026, time.October, 12, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "Oct 12", PeriodDay.label(at))
	assert.Equal(t, "Week 42, 2026", PeriodWeek.label(at))
	assert.Equal(t, "Oct 2026", PeriodMonth.label(at))
	assert.Equal(t, "2026", PeriodYear.label(at))
}

func TestSummaryIncludesPayrollForAdminOnly(t *testing.T) {
	repo := &mockRepo{}
	svc, _ := newTestService(t, repo)
	ctx := context.Background()

	admin, err := svc.Summary(ctx, rbactest.Admin, PeriodDay)
	require.NoError(t, err)
	require.NotNil(t, admin.Summary.TotalPayroll)
	assert.Equal(t, 1860.0, *admin.Summary.TotalPayroll)
	assert.Equal(t, "admin", admin.Role)

	staff, err := svc.Summary(ctx, rbactest.Staff, PeriodDay)
	require.NoError(t, err)
	assert.Nil(t, staff.Summary.TotalPayroll)
	assert.Equal(t, "staff", staff.Role)
	assert.Equal(t, 280.0, staff.Summary.TotalProfit)
	require.Len(t, staff.ChartData, 2)
	assert.Equal(t, ChartPoint{Date: "Oct 14", Sales: 300, Expenses: 400, Profit: -100}, staff.ChartData[1])

	assert.Equal(t, int32(1), repo.payrollCalls.Load())
	assert.Equal(t, int32(2), repo.bucketCalls.Load())
}

func TestSummaryCachesUntilBump(t *testing.T) {
	repo := &mockRepo{}
	svc, _ := newTestService(t, repo)
	ctx := context.Background()

	_, err := svc.Summary(ctx, rbactest.Staff, PeriodWeek)
	require.NoError(t, err)
	_, err = svc.Summary(ctx, rbactest.Other, PeriodWeek)
	require.NoError(t, err)
	assert.Equal(t, int32(1), repo.bucketCalls.Load())
	assert.Equal(t, PeriodWeek, repo.lastPeriod)

	require.NoError(t, svc.Bump(ctx))
	_, err = svc.Summary(ctx, rbactest.Staff, PeriodWeek)
	require.NoError(t, err)
	assert.Equal(t, int32(2), repo.bucketCalls.Load())
}

func TestConcurrentMissesLoadOnce(t *testing.T) {
	repo := &mockRepo{gate: make(chan struct{})}
	svc, _ := newTestService(t, repo)

	var wg sync.WaitGroup
	results := make([]Summary, 5)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			out, err := svc.Summary(context.Background(), rbactest.Staff, PeriodMonth)
			assert.NoError(t, err)
			results[i] = out
		}(i)
	}
	require.Eventually(t, func() bool { return repo.bucketCalls.Load() == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	close(repo.gate)
	wg.Wait()

	assert.Equal(t, int32(1), repo.bucketCalls.Load())
	for _, out := range results {
		assert.Len(t, out.ChartData, 2)
	}
}

func TestCacheOutageFallsBackToDirectLoad(t *testing.T) {
	repo := &mockRepo{}
	svc, mr := newTestService(t, repo)
	mr.Close()

	out, err := svc.Summary(context.Background(), rbactest.Staff, PeriodDay)
	require.NoError(t, err)
	assert.Equal(t, 800.0, out.Summary.TotalSales)
}

func TestPaymentMethods(t *testing.T) {
	svc, _ := newTestService(t, &mockRepo{})

	out, err := svc.PaymentMethods(context.Background(), rbactest.Staff)
	require.NoError(t, err)
	assert.Equal(t, PaymentTotals{CashTotal: 410, TransferTotal: 250}, out.Summary)
	require.Len(t, out.ChartData, 1)
	assert.Equal(t, PaymentDay{Date: "Mon", Cash: 50, Transfer: 20}, out.ChartData[0])
}

func TestNilCachePassesThrough(t *testing.T) {
	var c *Cache
	key, err := c.BuildKey(context.Background(), "reports", "summary")
	require.NoError(t, err)
	assert.Equal(t, "reports:summary", key)
	require.NoError(t, c.Bump(context.Background()))

	var out map[string]int
	err = c.FetchJSON(context.Background(), key, &out, func(context.Context) (any, error) {
		return map[string]int{"n": 1}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, out["n"])
}

func TestVersionIncrementsOnBump(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()
	c := NewCache(client, time.Minute, nil)
	ctx := context.Background()

	key, err := c.BuildKey(ctx, "reports", "summary", "staff", "day")
	require.NoError(t, err)
	assert.Equal(t, "reports:summary:staff:day:1", key)

	require.NoError(t, c.Bump(ctx))
	key, err = c.BuildKey(ctx, "reports", "summary", "staff", "day")
	require.NoError(t, err)
	assert.Equal(t, "reports:summary:staff:day:2", key)
}

type failingSetHook struct{}

func (failingSetHook) DialHook(next redis.DialHook) redis.DialHook { return next }

func (failingSetHook) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		if cmd.Name() == "set" {
			err := errors.New("READONLY You can't write against a read only replica.")
			cmd.SetErr(err)
			return err
		}
		return next(ctx, cmd)
	}
}

func (failingSetHook) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return next
}

func TestCacheWriteFailureStillServesLoad(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()
	client.AddHook(failingSetHook{})
	c := NewCache(client, time.Minute, nil)

	var out map[string]int
	err := c.FetchJSON(context.Background(), "reports:summary:staff:day:1", &out, func(context.Context) (any, error) {
		return map[string]int{"n": 3}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, out["n"])
	assert.False(t, mr.Exists("reports:summary:staff:day:1"))
}

func TestCacheReadFailureFallsBackToLoader(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	defer client.Close()
	c := NewCache(client, time.Minute, nil)
	mr.SetError("LOADING Redis is loading the dataset in memory")

	var out map[string]int
	err := c.FetchJSON(context.Background(), "reports:summary:staff:day:1", &out, func(context.Context) (any, error) {
		return map[string]int{"n": 4}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 4, out["n"])
}
