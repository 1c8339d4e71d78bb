package reports

import (
	"context"

	"golang.org/x/sync/singleflight"
)

// collapse runs fn once per key among concurrent callers. The shared call
// outlives any single caller's cancellation; each caller still stops waiting
// when its own ctx ends.
func collapse[T any](ctx context.Context, group *singleflight.Group, key string, fn func(context.Context) (T, error)) (T, error) {
	shared := context.WithoutCancel(ctx)
	resultChan := group.DoChan(key, func() (any, error) {
		return fn(shared)
	})
	var zero T
	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case res := <-resultChan:
		if res.Err != nil {
			return zero, res.Err
		}
		return res.Val.(T), nil
	}
}
