// Package actuator publishes allocation results as Prometheus metrics.
//
// The optimizer computes a plan and hands the result to a ResultEmitter; the
// MetricsEmitter in this package is the production implementation:
//
//	Optimizer → MetricsEmitter → Prometheus registry → /metrics
//
// # Metrics
//
//	triage_optimizations_total                     counter
//	triage_units_used{scenario}                    gauge
//	triage_units_available{scenario}               gauge
//	triage_hours_used{scenario}                    gauge
//	triage_value_saved{scenario}                   gauge
//	triage_allocation_decisions_total{outcome}     counter
//	triage_annealing_best_cost{scenario}           gauge
//	triage_annealing_accepted_moves{scenario}      gauge
//
// The outcome label is one of allocated, not_needed, unit_limit or hour_limit.
// The scenario label is the batch scenario name, or "default" for single calls.
// Each gauge series holds the figures of the latest result for its scenario.
//
// # Usage Example
//
//	reg := prometheus.NewRegistry()
//	emitter, err := actuator.NewMetricsEmitter(reg)
//	if err != nil {
//	    return err
//	}
//	opt := optimizer.NewOptimizer(optimizer.WithEmitter(emitter))
package actuator
