package ports

import "assistant/internal/domain/intent"

const (
	OutcomeAggregated    = "aggregated"
	OutcomeRefused       = "refused"
	OutcomeMisunderstood = "misunderstood"
	OutcomeUnclassified  = "unclassified"
	OutcomeFailed        = "failed"
)

type PipelineMetrics interface {
	RecordOutcome(outcome string)
	RecordItem(category intent.Category, status intent.ItemStatus)
}
