package actuator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/llm-d/llm-d-triage-allocator/pkg/core"
)

const (
	metricsNamespace = "triage"
	outcomeLabel     = "outcome"
	outcomeAllocated = "allocated"
	scenarioLabel    = "scenario"
	// defaultScenario labels results produced outside a named batch.
	defaultScenario = "default"
)

// MetricsEmitter records optimization results on a Prometheus registry.
// It is safe for concurrent use. Gauges are labelled by scenario, so concurrent
// batch runs keep separate series.
type MetricsEmitter struct {
	optimizations  prometheus.Counter
	unitsUsed      *prometheus.GaugeVec
	unitsAvailable *prometheus.GaugeVec
	hoursUsed      *prometheus.GaugeVec
	valueSaved     *prometheus.GaugeVec
	decisions      *prometheus.CounterVec
	bestCost       *prometheus.GaugeVec
	acceptedMoves  *prometheus.GaugeVec
}

// NewMetricsEmitter creates the collectors and registers them on reg.
// A nil reg registers on prometheus.DefaultRegisterer.
func NewMetricsEmitter(reg prometheus.Registerer) (*MetricsEmitter, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	e := &MetricsEmitter{
		optimizations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "optimizations_total",
			Help:      "Number of allocation plans computed.",
		}),
		unitsUsed: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "units_used",
			Help:      "Ventilators assigned by the most recent plan of the scenario.",
		}, []string{scenarioLabel}),
		unitsAvailable: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "units_available",
			Help:      "Ventilators available to the most recent plan of the scenario.",
		}, []string{scenarioLabel}),
		hoursUsed: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "hours_used",
			Help:      "Ventilator-hours committed by the most recent plan of the scenario.",
		}, []string{scenarioLabel}),
		valueSaved: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "value_saved",
			Help:      "Estimated value saved by the most recent plan of the scenario.",
		}, []string{scenarioLabel}),
		decisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "allocation_decisions_total",
			Help:      "Per-patient allocation decisions by outcome.",
		}, []string{outcomeLabel}),
		bestCost: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "annealing_best_cost",
			Help:      "Best QUBO cost found by the most recent annealing search of the scenario.",
		}, []string{scenarioLabel}),
		acceptedMoves: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "annealing_accepted_moves",
			Help:      "Moves accepted by the most recent annealing search of the scenario.",
		}, []string{scenarioLabel}),
	}

	collectors := []prometheus.Collector{
		e.optimizations, e.unitsUsed, e.unitsAvailable, e.hoursUsed,
		e.valueSaved, e.decisions, e.bestCost, e.acceptedMoves,
	}
	var errs []error
	for _, c := range collectors {
		if err := reg.Register(c); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		return nil, fmt.Errorf("registering triage metrics: %w", err)
	}
	return e, nil
}

// EmitResult records one optimization result.
func (e *MetricsEmitter) EmitResult(result core.OptimizationResult) {
	scenario := ScenarioLabel(result)

	e.optimizations.Inc()
	e.unitsUsed.WithLabelValues(scenario).Set(float64(result.UnitsUsed))
	e.unitsAvailable.WithLabelValues(scenario).Set(float64(result.UnitsAvailable))
	e.hoursUsed.WithLabelValues(scenario).Set(float64(result.HoursUsed))
	e.valueSaved.WithLabelValues(scenario).Set(result.ValueSaved)

	for reason, n := range result.DecisionCounts() {
		e.decisions.WithLabelValues(OutcomeLabel(reason)).Add(float64(n))
	}

	if d := result.Diagnostics; d != nil {
		e.bestCost.WithLabelValues(scenario).Set(d.BestCost)
		e.acceptedMoves.WithLabelValues(scenario).Set(float64(d.AcceptedMoves))
	}
}

// OutcomeLabel maps a decision reason to its outcome label value.
func OutcomeLabel(reason core.Reason) string {
	if reason == core.ReasonNone {
		return outcomeAllocated
	}
	return strings.ToLower(string(reason))
}

// ScenarioLabel returns the scenario label value for a result.
func ScenarioLabel(result core.OptimizationResult) string {
	if result.Scenario == "" {
		return defaultScenario
	}
	return result.Scenario
}
