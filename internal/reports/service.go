package reports

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/ledgerdesk/backoffice/internal/auth"
	"github.com/ledgerdesk/backoffice/internal/rbac"
)

// Service builds report views, caching them per role and period.
type Service struct {
	repo   Repository
	cache  *Cache
	group  singleflight.Group
	now    func() time.Time
	logger *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the time source used for report windows.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService constructs a report service. cache may be nil.
func NewService(repo Repository, cache *Cache, logger *slog.Logger, opts ...Option) *Service {
	s := &Service{repo: repo, cache: cache, now: time.Now, logger: logger}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Summary returns the bucketed chart and all-time totals for period.
// Salary totals are included only for principals allowed to read them.
func (s *Service) Summary(ctx context.Context, p auth.Principal, period Period) (Summary, error) {
	if _, err := rbac.ScopeFilter(p, rbac.OpRead, rbac.ResourceReports); err != nil {
		return Summary{}, err
	}
	withPayroll := rbac.Permits(p, rbac.ResourcePayrollTotals, rbac.OpRead)
	var out Summary
	err := s.cached(ctx, &out, func(ctx context.Context) (any, error) {
		return s.buildSummary(ctx, period, withPayroll)
	}, "reports", "summary", string(p.Role), string(period))
	if err != nil {
		return Summary{}, err
	}
	out.Role = string(p.Role)
	return out, nil
}

// PaymentMethods returns cash and transfer totals and a seven-day chart.
func (s *Service) PaymentMethods(ctx context.Context, p auth.Principal) (PaymentMethods, error) {
	if _, err := rbac.ScopeFilter(p, rbac.OpRead, rbac.ResourceReports); err != nil {
		return PaymentMethods{}, err
	}
	var out PaymentMethods
	err := s.cached(ctx, &out, func(ctx context.Context) (any, error) {
		return s.buildPaymentMethods(ctx)
	}, "reports", "payment_methods")
	if err != nil {
		return PaymentMethods{}, err
	}
	out.Role = string(p.Role)
	return out, nil
}

// Bump invalidates every cached report.
func (s *Service) Bump(ctx context.Context) error {
	return s.cache.Bump(ctx)
}

// cached serves dest from the cache, collapsing concurrent misses on the
// same key into one load. Cache outages fall back to a direct load.
func (s *Service) cached(ctx context.Context, dest any, loader func(context.Context) (any, error), parts ...string) error {
	key, err := s.cache.BuildKey(ctx, parts...)
	if err != nil {
		s.logger.Warn("report cache unavailable", slog.Any("error", err))
		return load(ctx, dest, loader, nil)
	}
	raw, err := collapse(ctx, &s.group, key, func(ctx context.Context) ([]byte, error) {
		var payload rawJSON
		if err := s.cache.FetchJSON(ctx, key, &payload, loader); err != nil {
			return nil, err
		}
		return payload, nil
	})
	if err != nil {
		return err
	}
	return rawJSON(raw).decode(dest)
}

func (s *Service) buildSummary(ctx context.Context, period Period, withPayroll bool) (Summary, error) {
	now := s.now()
	buckets, err := s.repo.Buckets(ctx, period, period.window(now))
	if err != nil {
		return Summary{}, err
	}
	out := Summary{ChartData: make([]ChartPoint, 0, len(buckets))}
	for _, b := range buckets {
		out.ChartData = append(out.ChartData, ChartPoint{
			Date:     period.label(b.Start),
			Sales:    b.Sales,
			Expenses: b.Expenses,
			Profit:   b.Sales - b.Expenses,
		})
	}
	sales, expenses, err := s.repo.Totals(ctx)
	if err != nil {
		return Summary{}, err
	}
	out.Summary = Totals{TotalSales: sales, TotalExpenses: expenses, TotalProfit: sales - expenses}
	if withPayroll {
		payroll, err := s.repo.PaidPayroll(ctx, now.Format("2006-01"))
		if err != nil {
			return Summary{}, err
		}
		out.Summary.TotalPayroll = &payroll
	}
	return out, nil
}

func (s *Service) buildPaymentMethods(ctx context.Context) (PaymentMethods, error) {
	totals, err := s.repo.PaymentTotals(ctx)
	if err != nil {
		return PaymentMethods{}, err
	}
	days, err := s.repo.PaymentDays(ctx, PeriodDay.window(s.now()))
	if err != nil {
		return PaymentMethods{}, err
	}
	out := PaymentMethods{Summary: totals, ChartData: make([]PaymentDay, 0, len(days))}
	for _, d := range days {
		out.ChartData = append(out.ChartData, PaymentDay{Date: d.Day.Format("Mon"), Cash: d.Cash, Transfer: d.Transfer})
	}
	return out, nil
}
