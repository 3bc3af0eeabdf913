// Package metric provides Prometheus metrics for the figo client library:
// HTTP requests issued against FIWARE components, vocabulary parse runs, and
// notification forwarding.
package metric

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics contains all library-level metrics. All record helpers are safe to
// call on a nil receiver, so components can treat metrics as optional.
type Metrics struct {
	// Client metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	// Vocabulary pipeline metrics
	ParseRunsTotal     *prometheus.CounterVec
	ParseDuration      prometheus.Histogram
	VocabularyElements *prometheus.GaugeVec

	// Notification forwarding metrics
	NotificationsReceived prometheus.Counter
	NotificationsRelayed  *prometheus.CounterVec
}

// NewMetrics creates a new Metrics instance.
func NewMetrics() *Metrics {
	return &Metrics{
		RequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "figo",
				Subsystem: "client",
				Name:      "requests_total",
				Help:      "Total number of requests sent to FIWARE components",
			},
			[]string{"client", "operation", "status"},
		),

		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "figo",
				Subsystem: "client",
				Name:      "request_duration_seconds",
				Help:      "Request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"client", "operation"},
		),

		ParseRunsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "figo",
				Subsystem: "vocabulary",
				Name:      "parse_runs_total",
				Help:      "Total number of vocabulary rebuild runs",
			},
			[]string{"status"},
		),

		ParseDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: "figo",
				Subsystem: "vocabulary",
				Name:      "parse_duration_seconds",
				Help:      "Vocabulary rebuild duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
		),

		VocabularyElements: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "figo",
				Subsystem: "vocabulary",
				Name:      "elements",
				Help:      "Number of parsed elements in the current vocabulary",
			},
			[]string{"kind"},
		),

		NotificationsReceived: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "figo",
				Subsystem: "notify",
				Name:      "received_total",
				Help:      "Total number of NGSI notifications received",
			},
		),

		NotificationsRelayed: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "figo",
				Subsystem: "notify",
				Name:      "relayed_total",
				Help:      "Total number of NGSI notifications relayed to NATS",
			},
			[]string{"status"},
		),
	}
}

// Register registers all metrics with the given registerer.
func (m *Metrics) Register(reg prometheus.Registerer) error {
	collectors := []prometheus.Collector{
		m.RequestsTotal,
		m.RequestDuration,
		m.ParseRunsTotal,
		m.ParseDuration,
		m.VocabularyElements,
		m.NotificationsReceived,
		m.NotificationsRelayed,
	}
	for _, c := range collectors {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// RecordRequest records one client request outcome.
func (m *Metrics) RecordRequest(client, operation, status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.RequestsTotal.WithLabelValues(client, operation, status).Inc()
	m.RequestDuration.WithLabelValues(client, operation).Observe(duration.Seconds())
}

// RecordParseRun records one vocabulary rebuild.
func (m *Metrics) RecordParseRun(status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.ParseRunsTotal.WithLabelValues(status).Inc()
	m.ParseDuration.Observe(duration.Seconds())
}

// RecordVocabularySize records the element counts of the current vocabulary.
func (m *Metrics) RecordVocabularySize(classes, objectProps, dataProps, individuals int) {
	if m == nil {
		return
	}
	m.VocabularyElements.WithLabelValues("class").Set(float64(classes))
	m.VocabularyElements.WithLabelValues("object_property").Set(float64(objectProps))
	m.VocabularyElements.WithLabelValues("data_property").Set(float64(dataProps))
	m.VocabularyElements.WithLabelValues("individual").Set(float64(individuals))
}

// RecordNotification records one received notification and its relay status.
func (m *Metrics) RecordNotification(relayStatus string) {
	if m == nil {
		return
	}
	m.NotificationsReceived.Inc()
	m.NotificationsRelayed.WithLabelValues(relayStatus).Inc()
}
