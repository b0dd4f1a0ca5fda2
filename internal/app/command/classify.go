package command

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"assistant/internal/app/modelout"
	"assistant/internal/app/ports"
	"assistant/internal/app/prompt"
	"assistant/internal/domain/intent"
)

type Classifier struct {
	Completer ports.Completer
	Timeout   time.Duration
}

// Classify splits the raw command into ordered intent items. Any shape
// problem in the model output fails the whole command.
func (c Classifier) Classify(ctx context.Context, raw string) ([]intent.Item, string, error) {
	if c.Completer == nil {
		return nil, "", &CollaboratorError{Stage: StageClassification, Err: errNotConfigured}
	}
	callCtx, cancel := withTimeout(ctx, c.Timeout)
	defer cancel()
	out, err := c.Completer.Complete(callCtx, prompt.Classification(), prompt.Wrap(raw))
	if errors.Is(err, ports.ErrEmptyCompletion) {
		return nil, "", &ClassificationError{Reason: "empty reply", Err: err}
	}
	if err != nil {
		return nil, "", &CollaboratorError{Stage: StageClassification, Err: err}
	}
	items, err := ParseClassification(out)
	return items, out, err
}

type classificationPayload struct {
	Classification *[]categoryLabel `json:"classification"`
	Details        *[]string        `json:"details"`
}

// categoryLabel accepts {"category": "task"} and a bare "task".
type categoryLabel struct {
	Category string
}

func (l *categoryLabel) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		return json.Unmarshal(b, &l.Category)
	}
	var obj struct {
		Category *string `json:"category"`
	}
	if err := json.Unmarshal(b, &obj); err != nil {
		return err
	}
	if obj.Category == nil {
		return fmt.Errorf("classification entry has no category")
	}
	l.Category = *obj.Category
	return nil
}

func ParseClassification(out string) ([]intent.Item, error) {
	var payload classificationPayload
	if err := modelout.Decode(out, &payload); err != nil {
		return nil, &ClassificationError{Reason: "unparseable payload", Err: err}
	}
	if payload.Classification == nil {
		return nil, &ClassificationError{Reason: "missing classification"}
	}
	if payload.Details == nil {
		return nil, &ClassificationError{Reason: "missing details"}
	}
	labels, details := *payload.Classification, *payload.Details
	if len(labels) != len(details) {
		return nil, &ClassificationError{Reason: fmt.Sprintf("%d categories for %d details", len(labels), len(details))}
	}
	if len(labels) == 0 {
		return nil, &ClassificationError{Reason: "no requests found"}
	}
	items := make([]intent.Item, 0, len(labels))
	for i, label := range labels {
		category, ok := intent.ParseCategory(label.Category)
		if !ok {
			return nil, &UnknownCategoryError{Index: i, Category: label.Category}
		}
		detail := strings.TrimSpace(details[i])
		if detail == "" {
			return nil, &ClassificationError{Reason: fmt.Sprintf("empty detail at position %d", i)}
		}
		items = append(items, intent.Item{Category: category, Detail: detail})
	}
	return items, nil
}
