package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	"github.com/ledgerdesk/backoffice/internal/app"
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
	"github.com/ledgerdesk/backoffice/internal/platform/cache"
	"github.com/ledgerdesk/backoffice/internal/platform/db"
	"github.com/ledgerdesk/backoffice/internal/rbac"
	"github.com/ledgerdesk/backoffice/internal/reports"
	"github.com/ledgerdesk/backoffice/internal/sales"
	"github.com/ledgerdesk/backoffice/internal/shared"
	"github.com/ledgerdesk/backoffice/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	pool, err := db.New(ctx, db.Options{
		DSN:            cfg.PGDSN,
		MaxConns:       cfg.PGMaxConns,
		AcquireTimeout: cfg.PGAcquireTimeout,
	})
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Warn("redis unavailable, report cache disabled", slog.Any("error", err))
	}
	if redisClient != nil {
		defer func() {
			if err := redisClient.Close(); err != nil {
				logger.Warn("redis close", slog.Any("error", err))
			}
		}()
	}

	tokens, err := auth.NewTokenIssuer(cfg.JWTSecret)
	if err != nil {
		logger.Error("init token issuer", slog.Any("error", err))
		os.Exit(1)
	}
	authService, err := auth.NewService(auth.NewRepository(pool), tokens)
	if err != nil {
		logger.Error("init auth service", slog.Any("error", err))
		os.Exit(1)
	}
	authHandler := auth.NewHandler(logger, authService)

	rbacMiddleware := rbac.Middleware{Gate: auth.NewGate(tokens), Logger: logger}
	auditLogger := shared.NewAuditLogger(pool)

	reportService := reports.NewService(
		reports.NewRepository(pool),
		reports.NewCache(redisClient, cfg.ReportCacheTTL, logger),
		logger,
	)
	reportHandler := reports.NewHandler(logger, reportService, rbacMiddleware)

	salesService := sales.NewService(sales.NewRepository(pool), auditLogger, reportService, logger)
	expenseService := expenses.NewService(expenses.NewRepository(pool), auditLogger, reportService, logger)
	payrollService := payroll.NewService(payroll.NewRepository(pool), auditLogger, reportService, logger)
	inventoryService := inventory.NewService(inventory.NewRepository(pool), auditLogger, logger)
	ledgerService := ledgers.NewService(ledgers.NewRepository(pool), auditLogger, logger)
	depositService := deposits.NewService(deposits.NewRepository(pool), auditLogger, logger)
	customerService := customers.NewService(customers.NewRepository(pool), auditLogger, logger)
	supplierService := suppliers.NewService(suppliers.NewRepository(pool), auditLogger, logger)

	var inspector jobs.QueueInspector
	if cfg.RedisAddr != "" {
		asynqInspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
		defer func() {
			if err := asynqInspector.Close(); err != nil {
				logger.Warn("inspector close", slog.Any("error", err))
			}
		}()
		inspector = asynqInspector
	}

	metrics := observability.NewMetrics()
	metrics.RegisterPool(pool.Stats)

	router := app.NewRouter(app.RouterParams{
		Logger:           logger,
		Config:           cfg,
		DB:               pool,
		Metrics:          metrics,
		AuthHandler:      authHandler,
		SalesHandler:     sales.NewHandler(logger, salesService, rbacMiddleware),
		ExpensesHandler:  expenses.NewHandler(logger, expenseService, rbacMiddleware),
		InventoryHandler: inventory.NewHandler(logger, inventoryService, rbacMiddleware),
		PayrollHandler:   payroll.NewHandler(logger, payrollService, rbacMiddleware),
		CustomersHandler: customers.NewHandler(logger, customerService, rbacMiddleware),
		SuppliersHandler: suppliers.NewHandler(logger, supplierService, rbacMiddleware),
		LedgersHandler:   ledgers.NewHandler(logger, ledgerService, rbacMiddleware),
		DepositsHandler:  deposits.NewHandler(logger, depositService, rbacMiddleware),
		ReportsHandler:   reportHandler,
		JobHandler:       jobs.NewHandler(inspector, logger, rbacMiddleware),
		AuditHandler:     audit.NewHandler(logger, audit.NewService(audit.NewRepository(pool)), rbacMiddleware),
	})

	server := &http.Server{
		Addr:              cfg.AppAddr,
		Handler:           router,
		ReadTimeout:       cfg.AppReadTimeout,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
