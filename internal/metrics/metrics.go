// Package metrics exposes Prometheus counters for bot activity.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "darts_bot"

// Metrics holds all Prometheus collectors for the bot.
type Metrics struct {
	SessionsStarted  prometheus.Counter
	SessionsRejected prometheus.Counter
	ThrowsRecorded   *prometheus.CounterVec
	ThrowsRejected   prometheus.Counter
	SummariesSent    prometheus.Counter
	ChartsRendered   prometheus.Counter
}

// New registers all collectors with the given registerer.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		SessionsStarted: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sessions_started_total",
			Help:      "Training sessions started.",
		}),
		SessionsRejected: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sessions_rejected_total",
			Help:      "Session starts rejected because one was already running.",
		}),
		ThrowsRecorded: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "throws_recorded_total",
			Help:      "Throw ratings persisted, by rating.",
		}, []string{"rating"}),
		ThrowsRejected: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "throws_rejected_total",
			Help:      "Throw ratings rejected outside an active session.",
		}),
		SummariesSent: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "summaries_sent_total",
			Help:      "Session summaries delivered after timer completion.",
		}),
		ChartsRendered: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "charts_rendered_total",
			Help:      "Trend charts rendered and sent.",
		}),
	}
}
