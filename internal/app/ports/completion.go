package ports

import (
	"context"
	"errors"
)

// ErrEmptyCompletion means the service answered with no text. Callers treat
// it as an unusable reply, not an outage.
var ErrEmptyCompletion = errors.New("completion returned no text")

// Completer is the language-model completion service. userText is already
// wrapped in the delimiter convention by the caller.
type Completer interface {
	Complete(ctx context.Context, systemPrompt, userText string) (string, error)
}

type ModerationVerdict struct {
	Flagged    bool
	Categories map[string]bool
}

type Moderator interface {
	Moderate(ctx context.Context, text string) (ModerationVerdict, error)
}
