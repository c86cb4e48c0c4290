// Package metrics counts external tool invocations. A short-lived CLI
// process has no scrape endpoint, so metrics are written to a node exporter
// textfile when the process exits.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "cirrus"

// Metrics holds the collectors of one process
type Metrics struct {
	registry *prometheus.Registry
	commands *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// New creates Metrics backed by a private registry
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		commands: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cli_commands_total",
			Help:      "External tool invocations by command and outcome.",
		}, []string{"command", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "cli_command_duration_seconds",
			Help:      "Wall time of external tool invocations.",
			Buckets:   prometheus.ExponentialBuckets(0.05, 2, 10),
		}, []string{"command"}),
	}
	m.registry.MustRegister(m.commands, m.duration)
	return m
}

// ObserveCommand records one invocation
func (m *Metrics) ObserveCommand(command, outcome string, elapsed time.Duration) {
	m.commands.WithLabelValues(command, outcome).Inc()
	m.duration.WithLabelValues(command).Observe(elapsed.Seconds())
}

// Registry returns the underlying registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// WriteTextfile writes all metrics to path in the text exposition format.
// The file is replaced atomically.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
