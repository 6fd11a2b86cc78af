package exaudit

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/ukaji3/exaudit-go/pkg/exaudit/models"
)

// Metrics holds the audit counters on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	sheetsTotal     *prometheus.CounterVec
	findingsTotal   *prometheus.CounterVec
	durationSeconds *prometheus.HistogramVec
	truncatedTotal  *prometheus.CounterVec
}

// NewMetrics creates and registers the audit metrics on a new registry.
func NewMetrics() *Metrics {
	m := &Metrics{registry: prometheus.NewRegistry()}

	m.sheetsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "exaudit_sheets_total",
			Help: "Total number of audited sheets",
		},
		[]string{"status"}, // status: success, error
	)
	m.findingsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "exaudit_findings_total",
			Help: "Total number of findings reported",
		},
		[]string{"strategy"},
	)
	m.durationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "exaudit_strategy_duration_seconds",
			Help:    "Time taken by one strategy on one sheet",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 14), // 0.5ms to ~4s
		},
		[]string{"strategy"},
	)
	m.truncatedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "exaudit_truncated_results_total",
			Help: "Total number of strategy results cut by their output cap",
		},
		[]string{"strategy"},
	)

	m.registry.MustRegister(m.sheetsTotal, m.findingsTotal, m.durationSeconds, m.truncatedTotal)
	return m
}

// Registry returns the registry holding the metrics.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// WriteTextfile writes the metrics in the node exporter textfile format.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}

func (m *Metrics) observeResult(res models.Result) {
	if m == nil || res == nil {
		return
	}
	base := res.Base()
	name := string(base.Name)
	m.findingsTotal.WithLabelValues(name).Add(float64(res.Findings()))
	m.durationSeconds.WithLabelValues(name).Observe(base.ExecutionTime.Seconds())
	if truncated(res) {
		m.truncatedTotal.WithLabelValues(name).Inc()
	}
}

func (m *Metrics) observeSheet(err error) {
	if m == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "error"
	}
	m.sheetsTotal.WithLabelValues(status).Inc()
}

func truncated(res models.Result) bool {
	switch r := res.(type) {
	case *models.DuplicateRowsResult:
		return r.Truncated
	case *models.RepeatedColumnSequencesResult:
		return r.Truncated
	}
	return false
}
