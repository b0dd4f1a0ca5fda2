// Package metrics fans pipeline metrics out to several recorders.
package metrics

import (
	"assistant/internal/app/ports"
	"assistant/internal/domain/intent"
)

type Multi []ports.PipelineMetrics

func (m Multi) RecordOutcome(outcome string) {
	for _, r := range m {
		r.RecordOutcome(outcome)
	}
}

func (m Multi) RecordItem(category intent.Category, status intent.ItemStatus) {
	for _, r := range m {
		r.RecordItem(category, status)
	}
}
