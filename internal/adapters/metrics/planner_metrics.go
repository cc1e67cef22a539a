package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/andrescamacho/complex-planner/internal/domain/factorycomplex"
)

// baselineLabel marks optimizer runs won by the unconstrained baseline
const baselineLabel = "baseline"

// PlannerMetricsCollector handles optimizer and template code metrics
type PlannerMetricsCollector struct {
	// Optimizer metrics
	optimizationsTotal      *prometheus.CounterVec
	optimizationDuration    *prometheus.HistogramVec
	optimizationPasses      *prometheus.HistogramVec
	factionTrialsTotal      *prometheus.CounterVec
	synthesizedBuildings    *prometheus.GaugeVec
	unresolvedGoods         *prometheus.GaugeVec
	optimizationCappedTotal *prometheus.CounterVec

	// Template code metrics
	templateTotal *prometheus.CounterVec
}

// NewPlannerMetricsCollector creates a new planner metrics collector
func NewPlannerMetricsCollector() *PlannerMetricsCollector {
	return &PlannerMetricsCollector{
		optimizationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "optimizations_total",
				Help:      "Total optimizer runs by game and winning pivotal-good faction",
			},
			[]string{"game", "winner"},
		),

		optimizationDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "optimization_duration_seconds",
				Help:      "Optimizer run duration distribution",
				Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
			},
			[]string{"game"},
		),

		optimizationPasses: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "optimization_passes",
				Help:      "Greedy fill passes per optimizer run, faction trials included",
				Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
			},
			[]string{"game"},
		),

		factionTrialsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "faction_trials_total",
				Help:      "Total pivotal-good faction trials",
			},
			[]string{"game"},
		),

		synthesizedBuildings: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "synthesized_instances",
				Help:      "Building instances synthesized by the latest optimizer run",
			},
			[]string{"game"},
		),

		unresolvedGoods: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "unresolved_goods",
				Help:      "Goods left in deficit by the latest optimizer run",
			},
			[]string{"game"},
		),

		optimizationCappedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "optimization_capped_total",
				Help:      "Optimizer runs stopped by the pass limit",
			},
			[]string{"game"},
		),

		templateTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "template_codes_total",
				Help:      "Template codes handled by operation and validity",
			},
			[]string{"operation", "valid"},
		),
	}
}

// Register registers all planner metrics with the Prometheus registry
func (c *PlannerMetricsCollector) Register() error {
	if Registry == nil {
		return nil // Metrics not enabled
	}

	metrics := []prometheus.Collector{
		c.optimizationsTotal,
		c.optimizationDuration,
		c.optimizationPasses,
		c.factionTrialsTotal,
		c.synthesizedBuildings,
		c.unresolvedGoods,
		c.optimizationCappedTotal,
		c.templateTotal,
	}

	for _, metric := range metrics {
		if err := Registry.Register(metric); err != nil {
			return err
		}
	}

	return nil
}

// RecordOptimization records one optimizer run
func (c *PlannerMetricsCollector) RecordOptimization(stats factorycomplex.OptimizationStats) {
	winner := stats.WinningFaction
	if winner == "" {
		winner = baselineLabel
	}

	c.optimizationsTotal.WithLabelValues(stats.Game, winner).Inc()
	c.optimizationDuration.WithLabelValues(stats.Game).Observe(stats.Duration.Seconds())
	c.optimizationPasses.WithLabelValues(stats.Game).Observe(float64(stats.Passes))
	c.factionTrialsTotal.WithLabelValues(stats.Game).Add(float64(stats.FactionTrials))
	c.synthesizedBuildings.WithLabelValues(stats.Game).Set(float64(stats.Synthesized))
	c.unresolvedGoods.WithLabelValues(stats.Game).Set(float64(stats.Unresolved))
	if stats.Capped {
		c.optimizationCappedTotal.WithLabelValues(stats.Game).Inc()
	}
}

// RecordTemplate records one template code operation
func (c *PlannerMetricsCollector) RecordTemplate(operation string, valid bool) {
	c.templateTotal.WithLabelValues(operation, strconv.FormatBool(valid)).Inc()
}
