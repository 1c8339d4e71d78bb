package audit

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"

	"github.com/ledgerdesk/backoffice/internal/auth"
	"github.com/ledgerdesk/backoffice/internal/platform/httpx"
	"github.com/ledgerdesk/backoffice/internal/rbac"
)

const (
	defaultDateRange = 7 * 24 * time.Hour
	maxDateRange     = 90 * 24 * time.Hour
	exportRateLimit  = 10
	exportRateWindow = time.Minute
)

// TimelineService is the contract the handler needs.
type TimelineService interface {
	Timeline(ctx context.Context, filters TimelineFilters) (Result, error)
	ExportCSV(ctx context.Context, filters TimelineFilters) ([]byte, error)
}

// Handler serves /audit-logs.
type Handler struct {
	logger  *slog.Logger
	service TimelineService
	rbac    rbac.Middleware
	now     func() time.Time
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service TimelineService, mw rbac.Middleware) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{logger: logger, service: service, rbac: mw, now: time.Now}
}

// MountRoutes registers the timeline and its CSV export.
func (h *Handler) MountRoutes(r chi.Router) {
	limiter := httprate.Limit(exportRateLimit, exportRateWindow, httprate.WithKeyFuncs(exportKey))
	r.Group(func(r chi.Router) {
		r.Use(h.rbac.Require(rbac.ResourceAuditLogs, rbac.OpRead))
		r.Get("/", h.timeline)
		r.With(limiter).Get("/export.csv", h.export)
	})
}

func (h *Handler) timeline(w http.ResponseWriter, r *http.Request) {
	filters, err := h.parseFilters(r)
	if err != nil {
		httpx.Fail(w, r, h.logger, "audit.timeline", err)
		return
	}
	result, err := h.service.Timeline(r.Context(), filters)
	if err != nil {
		httpx.Fail(w, r, h.logger, "audit.timeline", err)
		return
	}
	httpx.JSON(w, http.StatusOK, result)
}

func (h *Handler) export(w http.ResponseWriter, r *http.Request) {
	filters, err := h.parseFilters(r)
	if err != nil {
		httpx.Fail(w, r, h.logger, "audit.export", err)
		return
	}
	body, err := h.service.ExportCSV(r.Context(), filters)
	if err != nil {
		httpx.Fail(w, r, h.logger, "audit.export", err)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="audit-logs.csv"`)
	if _, err := w.Write(body); err != nil {
		h.logger.Warn("write csv", slog.Any("error", err))
	}
}

func (h *Handler) parseFilters(r *http.Request) (TimelineFilters, error) {
	q := r.URL.Query()
	to := h.now().UTC().Truncate(24 * time.Hour)
	if v := strings.TrimSpace(q.Get("to")); v != "" {
		parsed, err := time.Parse(time.DateOnly, v)
		if err != nil {
			return TimelineFilters{}, httpx.Validation("to must be a date in YYYY-MM-DD form")
		}
		to = parsed
	}
	from := to.Add(-defaultDateRange)
	if v := strings.TrimSpace(q.Get("from")); v != "" {
		parsed, err := time.Parse(time.DateOnly, v)
		if err != nil {
			return TimelineFilters{}, httpx.Validation("from must be a date in YYYY-MM-DD form")
		}
		from = parsed
	}
	if from.After(to) {
		return TimelineFilters{}, httpx.Validation("from must not be after to")
	}
	if to.Sub(from) > maxDateRange {
		return TimelineFilters{}, httpx.Validation("date range must not exceed 90 days")
	}

	filters := TimelineFilters{
		From:   from,
		To:     to,
		Entity: strings.TrimSpace(q.Get("entity")),
		Action: strings.TrimSpace(q.Get("action")),
	}
	if v := strings.TrimSpace(q.Get("actor_id")); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil || id <= 0 {
			return TimelineFilters{}, httpx.Validation("actor_id must be a positive integer")
		}
		filters.ActorID = id
	}
	var err error
	if filters.Page, err = positiveInt(q.Get("page"), "page"); err != nil {
		return TimelineFilters{}, err
	}
	if filters.PageSize, err = positiveInt(q.Get("page_size"), "page_size"); err != nil {
		return TimelineFilters{}, err
	}
	return filters, nil
}

// positiveInt parses an optional query value; empty means zero.
func positiveInt(raw, name string) (int, error) {
	v := strings.TrimSpace(raw)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0, httpx.Validation("%s must be a positive integer", name)
	}
	return n, nil
}

// exportKey limits exports per admin rather than per address.
func exportKey(r *http.Request) (string, error) {
	if p := auth.PrincipalFrom(r.Context()); p.ID != 0 {
		return "user:" + strconv.FormatInt(p.ID, 10), nil
	}
	key, err := httprate.KeyByIP(r)
	if err != nil {
		return "", err
	}
	return "ip:" + key, nil
}
