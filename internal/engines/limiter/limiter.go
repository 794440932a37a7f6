package limiter

import (
	"context"
	"fmt"

	"github.com/llm-d/llm-d-triage-allocator/pkg/core"
)

// Limiter is an interface that defines the method for allocating limited ventilators among
// ranked patients
type Limiter interface {
	// Allocate walks the ranking and decides, for each candidate, whether it receives a unit
	Allocate(ctx context.Context, ranking []Candidate, capacity Capacity) Allocation
}

// LimiterStrategy is an enumeration of the different strategies that can be used by the Limiter
type LimiterStrategy int

// enumeration of LimiterStrategy
const (
	GreedyStrategy LimiterStrategy = iota
)

// NewLimiter is a factory that creates a new Limiter based on the provided strategy
func NewLimiter(strategy LimiterStrategy) (Limiter, error) {
	switch strategy {
	case GreedyStrategy:
		return NewGreedyLimiter(), nil
	default:
		return nil, fmt.Errorf("unsupported limiter strategy: %v", strategy)
	}
}

// Capacity is the ventilator supply available to one allocation walk.
type Capacity struct {
	Units int
	Hours int
}

// CapacityFromConfig extracts the capacity from a resource config. Negative values are treated as zero.
func CapacityFromConfig(cfg core.ResourceConfig) Capacity {
	return Capacity{
		Units: max(0, cfg.UnitCount),
		Hours: max(0, cfg.MaxTotalHours),
	}
}

// Allocation is the outcome of one allocation walk.
type Allocation struct {
	// Records are in ranking order.
	Records   []core.AllocationRecord
	UnitsUsed int
	HoursUsed int
	// ValueSaved is Σ(1 - severity) pairing ranking slot i with input patient i,
	// counted where slot i is allocated, rounded to 2 decimals.
	ValueSaved float64
}
