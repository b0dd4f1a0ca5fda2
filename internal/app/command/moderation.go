package command

import (
	"context"
	"time"

	"assistant/internal/app/ports"
)

// Gate runs the single safety check on the raw command. A failing moderation
// call is returned as an error and never read as "not flagged".
type Gate struct {
	Moderator ports.Moderator
	Timeout   time.Duration
}

func (g Gate) Check(ctx context.Context, raw string) (ports.ModerationVerdict, error) {
	if g.Moderator == nil {
		return ports.ModerationVerdict{}, &CollaboratorError{Stage: StageModeration, Err: errNotConfigured}
	}
	callCtx, cancel := withTimeout(ctx, g.Timeout)
	defer cancel()
	verdict, err := g.Moderator.Moderate(callCtx, raw)
	if err != nil {
		return ports.ModerationVerdict{}, &CollaboratorError{Stage: StageModeration, Err: err}
	}
	return verdict, nil
}
