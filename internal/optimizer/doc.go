// Package optimizer implements the allocation planner of the triage engine.
//
// The optimizer orchestrates scoring, ranking, the limited-capacity walk and the
// diagnostic annealing search for one patient queue.
//
// Architecture:
//
// The optimizer follows a pipeline pattern:
//
//	Annealing search (diagnostic) ─────────────────────────────┐
//	Utility scoring → Ranking → Greedy limiter → Totals → OptimizationResult → Emitter
//	  (core.Value)    (limiter.Rank)  (limiter)
//
// Example usage:
//
//	opt := optimizer.NewOptimizer(
//	    optimizer.WithEmitter(actuator.NewMetricsEmitter(registry)),
//	)
//
//	result := opt.Optimize(ctx, patients, core.DefaultResourceConfig(4, 120))
//	log.Info("optimization complete",
//	    "runID", result.RunID,
//	    "unitsUsed", result.UnitsUsed,
//	    "hoursUsed", result.HoursUsed,
//	    "valueSaved", result.ValueSaved)
//
// Optimization Flow:
//
//  1. Empty queue
//     - Return the canonical "No patients" result
//
//  2. Annealing search
//     - Seeded from ResourceConfig.Seed, the optimizer seed, or a fresh stream
//     - Bounded by IterationCount, SearchTimeBudget and ctx
//     - Attached to the result as Diagnostics only
//
//  3. Ranking and allocation
//     - Rank by utility value, ties by input position
//     - Walk the ranking against remaining units and hours
//
//  4. Emission
//     - Hand the result to the configured emitter (Prometheus metrics)
//
// The published allocation is deterministic: repeated calls with the same patients
// and config produce the same ranking, decisions and totals. Only Diagnostics and
// RunID vary between unseeded runs.
//
// The optimizer is designed to be:
//   - Safe for concurrent use (no per-call state on the Optimizer)
//   - Observable with structured logging, tracing and metrics
//   - Testable with injected emitters and seeds
package optimizer
