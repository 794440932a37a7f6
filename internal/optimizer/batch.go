package optimizer

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
	ctrl "sigs.k8s.io/controller-runtime"

	"github.com/llm-d/llm-d-triage-allocator/pkg/core"
)

// Scenario is one independent patient queue with its own resources.
type Scenario struct {
	Name      string
	Patients  []core.PatientCase
	Resources core.ResourceConfig
}

// OptimizeAll optimizes scenarios concurrently, at most GOMAXPROCS at a time. Each call
// gets its own random stream and is stamped with its scenario name. Results are
// returned in scenario order. An error is
// returned only when ctx is done before every scenario started.
func (o *Optimizer) OptimizeAll(ctx context.Context, scenarios []Scenario) ([]core.OptimizationResult, error) {
	logger := ctrl.LoggerFrom(ctx)
	results := make([]core.OptimizationResult, len(scenarios))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, s := range scenarios {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			sctx := ctrl.LoggerInto(gctx, logger.WithValues("scenario", s.Name))
			results[i] = o.optimize(sctx, s.Name, s.Patients, s.Resources)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("optimizing %d scenarios: %w", len(scenarios), err)
	}
	return results, nil
}
