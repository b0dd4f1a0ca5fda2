package prom

import (
	"assistant/internal/domain/intent"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Recorder struct {
	outcomes *prometheus.CounterVec
	items    *prometheus.CounterVec
}

// NewRecorder registers the pipeline counters on reg. A nil reg means the
// default registry.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)
	return &Recorder{
		outcomes: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "assistant_requests_total",
				Help: "Commands processed, by terminal outcome",
			},
			[]string{"outcome"},
		),
		items: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "assistant_items_total",
				Help: "Intent items dispatched, by category and status",
			},
			[]string{"category", "status"},
		),
	}
}

func (r *Recorder) RecordOutcome(outcome string) {
	r.outcomes.WithLabelValues(outcome).Inc()
}

func (r *Recorder) RecordItem(category intent.Category, status intent.ItemStatus) {
	r.items.WithLabelValues(string(category), string(status)).Inc()
}
