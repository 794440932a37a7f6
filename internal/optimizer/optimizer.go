package optimizer

import (
	"context"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	ctrl "sigs.k8s.io/controller-runtime"

	"github.com/llm-d/llm-d-triage-allocator/internal/engines/limiter"
	"github.com/llm-d/llm-d-triage-allocator/internal/logging"
	"github.com/llm-d/llm-d-triage-allocator/pkg/core"
	"github.com/llm-d/llm-d-triage-allocator/pkg/solver"
)

var tracer = otel.Tracer("triage.optimizer")

// ResultEmitter receives every result produced by the optimizer.
// Implementations must be safe for concurrent use.
type ResultEmitter interface {
	EmitResult(result core.OptimizationResult)
}

// Optimizer plans ventilator allocations. It holds no per-call state and is safe for
// concurrent use.
type Optimizer struct {
	limiter limiter.Limiter
	emitter ResultEmitter
	seed    *uint64
}

// Option configures an Optimizer.
type Option func(*Optimizer)

// WithLimiter replaces the default greedy limiter.
func WithLimiter(l limiter.Limiter) Option {
	return func(o *Optimizer) {
		o.limiter = l
	}
}

// WithEmitter sets the emitter that receives every result.
func WithEmitter(e ResultEmitter) Option {
	return func(o *Optimizer) {
		o.emitter = e
	}
}

// WithSeed fixes the annealing stream for calls whose config carries no seed.
func WithSeed(seed uint64) Option {
	return func(o *Optimizer) {
		o.seed = &seed
	}
}

// NewOptimizer creates an Optimizer using the greedy limiter unless overridden.
func NewOptimizer(opts ...Option) *Optimizer {
	o := &Optimizer{
		limiter: limiter.NewGreedyLimiter(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Optimize ranks patients and allocates ventilators under cfg.
//
// It never fails: an empty queue yields the canonical "No patients" result and zero
// capacity yields UNIT_LIMIT / HOUR_LIMIT records. The annealing search runs first and
// its best vector is attached as Diagnostics; it does not change the allocation.
func (o *Optimizer) Optimize(ctx context.Context, patients []core.PatientCase, cfg core.ResourceConfig) core.OptimizationResult {
	return o.optimize(ctx, "", patients, cfg)
}

// optimize stamps the result with scenario before it is emitted.
func (o *Optimizer) optimize(ctx context.Context, scenario string, patients []core.PatientCase, cfg core.ResourceConfig) core.OptimizationResult {
	runID := uuid.NewString()
	ctx, span := tracer.Start(ctx, "Optimize", trace.WithAttributes(
		attribute.String("triage.run_id", runID),
		attribute.String("triage.scenario", scenario),
		attribute.Int("triage.patients", len(patients)),
		attribute.Int("triage.units_available", cfg.UnitCount),
		attribute.Int("triage.hours_available", cfg.MaxTotalHours),
	))
	defer span.End()

	logger := ctrl.LoggerFrom(ctx).WithValues("runID", runID)
	ctx = ctrl.LoggerInto(ctx, logger)

	if len(patients) == 0 {
		result := core.EmptyResult()
		result.RunID = runID
		result.Scenario = scenario
		logger.V(logging.DEBUG).Info("No patients to allocate")
		o.emit(result)
		return result
	}

	search := o.search(ctx, patients, cfg)

	ranking := limiter.Rank(patients)
	capacity := limiter.CapacityFromConfig(cfg)
	alloc := o.limiter.Allocate(ctx, ranking, capacity)

	result := core.OptimizationResult{
		RunID:              runID,
		Scenario:           scenario,
		Records:            alloc.Records,
		UnitsUsed:          alloc.UnitsUsed,
		HoursUsed:          alloc.HoursUsed,
		UnitsAvailable:     cfg.UnitCount,
		HoursAvailable:     cfg.MaxTotalHours,
		ValueSaved:         alloc.ValueSaved,
		BaselineValueSaved: SeverityOnlyBaseline(patients, capacity.Units),
		Status:             core.StatusCompleted,
		Algorithm:          core.AlgorithmName,
		Diagnostics: &core.SearchDiagnostics{
			Vector:           search.Best,
			BestCost:         search.BestCost,
			Iterations:       search.Iterations,
			AcceptedMoves:    search.Accepted,
			FinalTemperature: search.FinalTemperature,
			Interrupted:      search.Interrupted,
		},
	}

	remaining := limiter.GetRemainingCapacity(capacity, alloc.Records)
	span.SetAttributes(
		attribute.Int("triage.units_used", result.UnitsUsed),
		attribute.Int("triage.hours_used", result.HoursUsed),
		attribute.Float64("triage.value_saved", result.ValueSaved),
	)
	logger.Info("Ventilator allocation completed",
		"patients", len(patients),
		"unitsUsed", result.UnitsUsed,
		"unitsAvailable", result.UnitsAvailable,
		"hoursUsed", result.HoursUsed,
		"remainingUnits", remaining.Units,
		"remainingHours", remaining.Hours,
		"valueSaved", result.ValueSaved)
	logger.V(logging.DEBUG).Info("Annealing diagnostics",
		"bestCost", search.BestCost,
		"searchAllocated", search.Best.Count(),
		"iterations", search.Iterations,
		"acceptedMoves", search.Accepted,
		"interrupted", search.Interrupted)

	o.emit(result)
	return result
}

// search runs the diagnostic annealing phase with a random stream private to this call.
func (o *Optimizer) search(ctx context.Context, patients []core.PatientCase, cfg core.ResourceConfig) solver.SearchResult {
	ctx, span := tracer.Start(ctx, "AnnealingSearch", trace.WithAttributes(
		attribute.Int("triage.iterations", cfg.IterationCount),
	))
	defer span.End()

	var annealer *solver.Annealer
	switch {
	case cfg.Seed != nil:
		annealer = solver.NewSeededAnnealer(*cfg.Seed)
	case o.seed != nil:
		annealer = solver.NewSeededAnnealer(*o.seed)
	default:
		annealer = solver.NewAnnealer(nil)
	}

	result := annealer.Search(ctx, patients, cfg)
	span.SetAttributes(
		attribute.Float64("triage.best_cost", result.BestCost),
		attribute.Bool("triage.interrupted", result.Interrupted),
	)
	return result
}

func (o *Optimizer) emit(result core.OptimizationResult) {
	if o.emitter != nil {
		o.emitter.EmitResult(result)
	}
}
