package shared

import (
	"context"
	"log/slog"
)

// Invalidator drops cached aggregates after a write they depend on.
type Invalidator interface {
	Bump(ctx context.Context) error
}

// BumpQuietly invalidates and logs failures; a stale cache expires on its own.
func BumpQuietly(ctx context.Context, inv Invalidator, logger *slog.Logger, source string) {
	if inv == nil {
		return
	}
	if err := inv.Bump(ctx); err != nil && logger != nil {
		logger.Warn("cache invalidation failed", slog.String("source", source), slog.Any("error", err))
	}
}
