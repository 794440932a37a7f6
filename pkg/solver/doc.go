// Package solver implements the QUBO cost function and the simulated annealing search
// used to explore ventilator allocations.
//
// The solver package works over binary allocation vectors: element i is true when
// patient i receives a ventilator.
//
// Key Components:
//
//   - Evaluator / Cost: the QUBO cost of a vector (negated utility plus quadratic
//     penalties for exceeding the unit count and the hour budget)
//   - Annealer: a seedable, single-threaded simulated annealing search
//
// Cost Function:
//
//	cost = -Σ x_i·value_i + 100·max(0, Σ x_i - units)² + 50·max(0, Σ x_i·hours_i - budget)²
//
// Search Strategy:
//
//  1. Start from the all-zero vector
//  2. Flip one uniformly chosen bit per iteration
//  3. Accept improving moves, and worsening moves with probability exp(-Δ/T)
//  4. Track the best vector seen, cool T geometrically
//
// Example usage:
//
//	annealer := solver.NewAnnealer(rand.New(rand.NewPCG(42, 0)))
//	result := annealer.Search(ctx, patients, cfg)
//	log.V(logging.DEBUG).Info("annealing finished",
//	    "bestCost", result.BestCost,
//	    "allocated", result.Best.Count())
//
// The search result is diagnostic: the published allocation is produced by the
// deterministic greedy limiter, not by this package.
package solver
