package app

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"

	"github.com/ledgerdesk/backoffice/internal/audit"
	"github.com/ledgerdesk/backoffice/internal/auth"
	"github.com/ledgerdesk/backoffice/internal/deposits"
	"github.com/ledgerdesk/backoffice/internal/expenses"
	"github.com/ledgerdesk/backoffice/internal/inventory"
	"github.com/ledgerdesk/backoffice/internal/ledgers"
	"github.com/ledgerdesk/backoffice/internal/masterdata/customers"
	"github.com/ledgerdesk/backoffice/internal/masterdata/suppliers"
	"github.com/ledgerdesk/backoffice/internal/observability"
	"github.com/ledgerdesk/backoffice/internal/payroll"
	"github.com/ledgerdesk/backoffice/internal/platform/httpx"
	"github.com/ledgerdesk/backoffice/internal/reports"
	"github.com/ledgerdesk/backoffice/internal/sales"
	"github.com/ledgerdesk/backoffice/jobs"
)

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// RouterParams groups dependencies for building the HTTP router. Nil handlers
// leave their routes unmounted.
type RouterParams struct {
	Logger  *slog.Logger
	Config  *Config
	DB      Pinger
	Metrics *observability.Metrics

	AuthHandler      *auth.Handler
	SalesHandler     *sales.Handler
	ExpensesHandler  *expenses.Handler
	InventoryHandler *inventory.Handler
	PayrollHandler   *payroll.Handler
	CustomersHandler *customers.Handler
	SuppliersHandler *suppliers.Handler
	LedgersHandler   *ledgers.Handler
	DepositsHandler  *deposits.Handler
	ReportsHandler   *reports.Handler
	JobHandler       *jobs.Handler
	AuditHandler     *audit.Handler
}

// NewRouter constructs the chi.Router serving the API.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:  params.Logger,
		Config:  params.Config,
		Metrics: params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Get("/healthz", healthz(params.DB))
	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	r.Route("/api", func(r chi.Router) {
		if params.AuthHandler != nil {
			r.Route("/auth", func(r chi.Router) {
				r.Use(httprate.LimitByIP(loginLimit(params.Config), time.Minute))
				params.AuthHandler.MountRoutes(r)
			})
		}
		if h := params.SalesHandler; h != nil {
			r.Route("/sales", h.MountRoutes)
			r.Route("/staff-sales", h.MountStaffRoutes)
		}
		if h := params.ExpensesHandler; h != nil {
			r.Route("/expenses", h.MountRoutes)
			r.Route("/company-expenses", h.MountCompanyRoutes)
		}
		if h := params.InventoryHandler; h != nil {
			r.Route("/inventory", h.MountRoutes)
			r.Route("/stock-adjustments", h.MountAdjustmentRoutes)
			r.Route("/stock-movements", h.MountMovementRoutes)
		}
		if h := params.PayrollHandler; h != nil {
			r.Route("/payroll", h.MountRoutes)
		}
		if h := params.CustomersHandler; h != nil {
			r.Route("/customers", h.MountRoutes)
		}
		if h := params.SuppliersHandler; h != nil {
			r.Route("/suppliers", h.MountRoutes)
		}
		if h := params.LedgersHandler; h != nil {
			r.Route("/customer-ledger", h.MountCustomerRoutes)
			r.Route("/supplier-ledger", h.MountSupplierRoutes)
		}
		if h := params.DepositsHandler; h != nil {
			r.Route("/bank-deposits", h.MountRoutes)
		}
		if h := params.ReportsHandler; h != nil {
			r.Route("/reports", h.MountRoutes)
		}
		if h := params.JobHandler; h != nil {
			r.Route("/jobs", h.MountRoutes)
		}
		if h := params.AuditHandler; h != nil {
			r.Route("/audit-logs", h.MountRoutes)
		}
		r.NotFound(func(w http.ResponseWriter, r *http.Request) {
			httpx.JSON(w, http.StatusNotFound, map[string]string{"error": "Route not found"})
		})
	})

	return r
}

func healthz(db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if db != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := db.Ping(ctx); err != nil {
				httpx.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
				return
			}
		}
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

func loginLimit(cfg *Config) int {
	if cfg == nil || cfg.LoginRateLimitPerMinute <= 0 {
		return 10
	}
	return cfg.LoginRateLimitPerMinute
}
