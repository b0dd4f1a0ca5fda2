package command

import (
	"context"

	"assistant/internal/domain/intent"

	"golang.org/x/sync/errgroup"
)

type ItemFunc func(ctx context.Context, index int, item intent.Item) ItemOutcome

// Dispatcher runs the per-item work. Implementations return one outcome per
// item at the item's original position, whatever the completion order.
type Dispatcher interface {
	Dispatch(ctx context.Context, items []intent.Item, fn ItemFunc) []ItemOutcome
}

type SequentialDispatcher struct{}

func (SequentialDispatcher) Dispatch(ctx context.Context, items []intent.Item, fn ItemFunc) []ItemOutcome {
	out := make([]ItemOutcome, len(items))
	for i, item := range items {
		out[i] = fn(ctx, i, item)
	}
	return out
}

// BoundedDispatcher runs at most Limit items at once. The group carries no
// shared context, so one item failing never cancels its siblings.
type BoundedDispatcher struct {
	Limit int
}

func (d BoundedDispatcher) Dispatch(ctx context.Context, items []intent.Item, fn ItemFunc) []ItemOutcome {
	out := make([]ItemOutcome, len(items))
	var g errgroup.Group
	if d.Limit > 0 {
		g.SetLimit(d.Limit)
	}
	for i, item := range items {
		g.Go(func() error {
			out[i] = fn(ctx, i, item)
			return nil
		})
	}
	_ = g.Wait()
	return out
}

// NewDispatcher picks the sequential loop for concurrency <= 1.
func NewDispatcher(concurrency int) Dispatcher {
	if concurrency <= 1 {
		return SequentialDispatcher{}
	}
	return BoundedDispatcher{Limit: concurrency}
}
