package command

import (
	"context"
	"errors"
	"time"
)

var errNotConfigured = errors.New("collaborator not configured")

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, d)
}
