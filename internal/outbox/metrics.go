package outbox

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels for the messages counter.
const (
	OutcomeProcessed = "processed"
	OutcomeSkipped   = "skipped"
	OutcomeFailed    = "failed"
)

// Metrics holds Prometheus metrics for outbox processing.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	Messages      *prometheus.CounterVec
	BatchDuration prometheus.Histogram
	Purged        prometheus.Counter
}

// NewMetrics creates the outbox metrics and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Messages: f.NewCounterVec(prometheus.CounterOpts{
			Name: "article_catalog_outbox_messages_total",
			Help: "Outbox messages handled, by event type and outcome (processed, skipped, failed)",
		}, []string{"event_type", "outcome"}),
		BatchDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "article_catalog_outbox_batch_duration_seconds",
			Help:    "Time spent processing one outbox batch",
			Buckets: prometheus.DefBuckets,
		}),
		Purged: f.NewCounter(prometheus.CounterOpts{
			Name: "article_catalog_outbox_purged_total",
			Help: "Processed outbox messages deleted by retention",
		}),
	}
}

// IncMessage counts one message with the given outcome.
func (m *Metrics) IncMessage(eventType, outcome string) {
	if m == nil {
		return
	}
	m.Messages.WithLabelValues(eventType, outcome).Inc()
}

// ObserveBatch records the duration of one batch in seconds.
func (m *Metrics) ObserveBatch(seconds float64) {
	if m == nil {
		return
	}
	m.BatchDuration.Observe(seconds)
}

// AddPurged counts purged messages.
func (m *Metrics) AddPurged(n int64) {
	if m == nil || n <= 0 {
		return
	}
	m.Purged.Add(float64(n))
}
