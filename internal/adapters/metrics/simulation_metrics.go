package metrics

import (
	"errors"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/andrescamacho/colonysim-go/internal/domain/planetary"
)

// Advance outcomes
const (
	OutcomeCompleted      = "completed"
	OutcomeBudgetExceeded = "budget_exceeded"
	OutcomeRejected       = "rejected"
	OutcomeError          = "error"
)

// SimulationMetricsCollector handles simulator run metrics
type SimulationMetricsCollector struct {
	advancesTotal    *prometheus.CounterVec
	advanceDuration  *prometheus.HistogramVec
	eventsTotal      *prometheus.CounterVec
	unitsTotal       *prometheus.CounterVec
	simulatedSeconds prometheus.Counter
}

// NewSimulationMetricsCollector creates a new simulation metrics collector
func NewSimulationMetricsCollector() *SimulationMetricsCollector {
	return &SimulationMetricsCollector{
		advancesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "simulation",
				Name:      "advances_total",
				Help:      "Total number of colony advances by outcome",
			},
			[]string{"outcome"},
		),

		advanceDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "simulation",
				Name:      "advance_duration_seconds",
				Help:      "Wall-clock duration of colony advances",
				Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0},
			},
			[]string{"outcome"},
		),

		eventsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "simulation",
				Name:      "events_total",
				Help:      "Total number of simulation events processed by kind",
			},
			[]string{"kind"},
		),

		unitsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "simulation",
				Name:      "units_total",
				Help:      "Commodity units moved by simulated facilities",
			},
			[]string{"flow", "type_id"},
		),

		simulatedSeconds: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "simulation",
				Name:      "simulated_seconds_total",
				Help:      "Total simulated time covered by completed advances",
			},
		),
	}
}

// Register registers all simulation metrics with the Prometheus registry
func (c *SimulationMetricsCollector) Register() error {
	if Registry == nil {
		return nil // Metrics not enabled
	}

	metrics := []prometheus.Collector{
		c.advancesTotal,
		c.advanceDuration,
		c.eventsTotal,
		c.unitsTotal,
		c.simulatedSeconds,
	}

	for _, metric := range metrics {
		if err := Registry.Register(metric); err != nil {
			return err
		}
	}

	return nil
}

// RecordSimulationAdvance records the outcome and totals of one simulator run.
// A budget overrun still reports the events it managed to apply.
func (c *SimulationMetricsCollector) RecordSimulationAdvance(report *planetary.SimulationReport, duration time.Duration, err error) {
	outcome := advanceOutcome(err)

	c.advancesTotal.WithLabelValues(outcome).Inc()
	c.advanceDuration.WithLabelValues(outcome).Observe(duration.Seconds())

	if report == nil {
		return
	}

	for kind, count := range report.EventsByKind {
		c.eventsTotal.WithLabelValues(kind.String()).Add(float64(count))
	}
	c.addUnits("extracted", report.Extracted)
	c.addUnits("produced", report.Produced)
	c.addUnits("consumed", report.Consumed)

	if outcome == OutcomeCompleted {
		c.simulatedSeconds.Add(report.Until.Sub(report.From).Seconds())
	}
}

func (c *SimulationMetricsCollector) addUnits(flow string, units map[int32]int) {
	for typeID, amount := range units {
		c.unitsTotal.WithLabelValues(flow, strconv.Itoa(int(typeID))).Add(float64(amount))
	}
}

func advanceOutcome(err error) string {
	var budget *planetary.SimulationBudgetError
	var regression *planetary.SimTimeRegressionError

	switch {
	case err == nil:
		return OutcomeCompleted
	case errors.As(err, &budget):
		return OutcomeBudgetExceeded
	case errors.As(err, &regression):
		return OutcomeRejected
	default:
		return OutcomeError
	}
}
