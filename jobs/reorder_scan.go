package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/ledgerdesk/backoffice/internal/inventory"
	jobmetrics "github.com/ledgerdesk/backoffice/internal/jobs"
)

// ReorderSource lists items at or below their reorder level.
type ReorderSource interface {
	ReorderCandidates(ctx context.Context) ([]inventory.Item, error)
}

// ReorderScanJob logs and counts inventory items that need restocking.
type ReorderScanJob struct {
	Source  ReorderSource
	Logger  *slog.Logger
	Metrics *jobmetrics.Metrics
}

// NewReorderScanJob initialises the reorder scan handler.
func NewReorderScanJob(source ReorderSource, logger *slog.Logger, metrics *jobmetrics.Metrics) *ReorderScanJob {
	return &ReorderScanJob{Source: source, Logger: logger, Metrics: metrics}
}

// Handle executes the reorder scan.
func (j *ReorderScanJob) Handle(ctx context.Context, t *asynq.Task) (resultErr error) {
	if j == nil || j.Source == nil {
		return errors.New("reorder scan: handler not configured")
	}
	var payload ReorderScanPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return errors.Join(err, asynq.SkipRetry)
	}

	tracker := j.Metrics.Track(TaskReorderScan)
	defer func() {
		resultErr = tracker.End(resultErr)
	}()

	logger := j.logger()
	if !payload.ScheduledFor.IsZero() {
		logger = logger.With(slog.String("scheduled_for", payload.ScheduledFor.Format(time.RFC3339)))
	}

	items, err := j.Source.ReorderCandidates(ctx)
	if err != nil {
		logger.Error("reorder scan failed", slog.Any("error", err))
		return err
	}
	for _, it := range items {
		logger.Warn("inventory item below reorder level",
			slog.Int64("item_id", it.ID),
			slog.String("item_name", it.ItemName),
			slog.Int64("quantity", it.Quantity),
			slog.Int64("reorder_level", it.ReorderLevel),
		)
	}
	j.Metrics.SetReorderItems(len(items))
	logger.Info("reorder scan complete", slog.Int("items", len(items)))
	return nil
}

func (j *ReorderScanJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger
	}
	return slog.Default()
}
