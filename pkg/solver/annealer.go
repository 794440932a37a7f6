package solver

import (
	"context"
	"math"
	"math/rand/v2"

	ctrl "sigs.k8s.io/controller-runtime"

	"github.com/llm-d/llm-d-triage-allocator/internal/logging"
	"github.com/llm-d/llm-d-triage-allocator/pkg/core"
)

const (
	// cancelCheckInterval is the number of iterations between context checks.
	cancelCheckInterval = 64
	// temperatureEpsilon keeps the Metropolis exponent finite as T approaches zero.
	temperatureEpsilon = 1e-10
)

// SearchResult is the outcome of one annealing run.
type SearchResult struct {
	// Best is the lowest-cost vector seen, indexed like the input patients.
	Best     Vector
	BestCost float64
	// Iterations is the number of steps actually performed.
	Iterations int
	// Accepted is the number of accepted moves.
	Accepted         int
	FinalTemperature float64
	// Interrupted is true when the context was done before IterationCount steps.
	Interrupted bool
}

// Annealer runs simulated annealing over binary allocation vectors.
// An Annealer owns its random stream and must not be shared between goroutines.
type Annealer struct {
	rng *rand.Rand
}

// NewAnnealer creates an Annealer drawing from rng. A nil rng gets a randomly seeded PCG stream.
func NewAnnealer(rng *rand.Rand) *Annealer {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Annealer{rng: rng}
}

// NewSeededAnnealer creates an Annealer with a PCG stream fixed by seed.
func NewSeededAnnealer(seed uint64) *Annealer {
	return NewAnnealer(rand.New(rand.NewPCG(seed, seed)))
}

// Search minimises the QUBO cost of patients under cfg.
//
// The search starts from the all-zero vector and runs cfg.IterationCount steps. The
// context is checked every cancelCheckInterval steps; when it is done, or when
// cfg.SearchTimeBudget elapses, the best vector found so far is returned with
// Interrupted set.
func (a *Annealer) Search(ctx context.Context, patients []core.PatientCase, cfg core.ResourceConfig) SearchResult {
	logger := ctrl.LoggerFrom(ctx)

	eval := NewEvaluator(patients, cfg)
	n := eval.Size()

	current := make(Vector, n)
	currentCost := eval.Cost(current)
	result := SearchResult{
		Best:     current.Clone(),
		BestCost: currentCost,
	}

	temperature := cfg.InitialTemperature
	if n == 0 {
		result.FinalTemperature = temperature
		return result
	}

	if cfg.SearchTimeBudget > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.SearchTimeBudget)
		defer cancel()
	}

	for iter := 0; iter < cfg.IterationCount; iter++ {
		if iter%cancelCheckInterval == 0 && ctx.Err() != nil {
			result.Interrupted = true
			logger.V(logging.DEBUG).Info("Annealing search interrupted",
				"iteration", iter,
				"reason", ctx.Err().Error())
			break
		}

		// flip in place, revert on rejection
		idx := a.rng.IntN(n)
		current[idx] = !current[idx]
		neighborCost := eval.Cost(current)
		delta := neighborCost - currentCost

		if delta < 0 || a.rng.Float64() < math.Exp(-delta/(temperature+temperatureEpsilon)) {
			currentCost = neighborCost
			result.Accepted++
		} else {
			current[idx] = !current[idx]
		}

		if currentCost < result.BestCost {
			result.Best = current.Clone()
			result.BestCost = currentCost
		}

		temperature *= cfg.CoolingRate
		result.Iterations++
	}

	result.FinalTemperature = temperature
	logger.V(logging.TRACE).Info("Annealing search finished",
		"iterations", result.Iterations,
		"accepted", result.Accepted,
		"bestCost", result.BestCost,
		"finalTemperature", result.FinalTemperature)
	return result
}
