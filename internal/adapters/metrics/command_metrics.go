package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// CommandMetricsCollector handles planner service operation metrics
type CommandMetricsCollector struct {
	commandDuration *prometheus.HistogramVec
	commandsTotal   *prometheus.CounterVec
}

// NewCommandMetricsCollector creates a new command metrics collector
func NewCommandMetricsCollector() *CommandMetricsCollector {
	return &CommandMetricsCollector{
		commandDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "command_duration_seconds",
				Help:      "Planner operation duration distribution",
				Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 5.0},
			},
			[]string{"command", "status"},
		),

		commandsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "commands_total",
				Help:      "Total planner operations by name and status",
			},
			[]string{"command", "status"},
		),
	}
}

// Register registers all command metrics with the Prometheus registry
func (c *CommandMetricsCollector) Register() error {
	if Registry == nil {
		return nil // Metrics not enabled
	}

	for _, metric := range []prometheus.Collector{c.commandDuration, c.commandsTotal} {
		if err := Registry.Register(metric); err != nil {
			return err
		}
	}

	return nil
}

// RecordCommandExecution records one planner operation
func (c *CommandMetricsCollector) RecordCommandExecution(command string, duration time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}

	c.commandDuration.WithLabelValues(command, status).Observe(duration.Seconds())
	c.commandsTotal.WithLabelValues(command, status).Inc()
}

// Track returns a function that records the operation when called with its
// result:
//
//	defer func() { track(err) }()
func (c *CommandMetricsCollector) Track(command string) func(err error) {
	start := time.Now()
	return func(err error) {
		if c == nil {
			return
		}
		c.RecordCommandExecution(command, time.Since(start), err)
	}
}
