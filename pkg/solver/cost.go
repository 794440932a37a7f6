package solver

import (
	"github.com/llm-d/llm-d-triage-allocator/pkg/core"
)

// Penalty weights of the QUBO cost function.
const (
	UnitPenalty = 100.0
	HourPenalty = 50.0
)

// Vector is a binary allocation: element i is true when patient i is allocated.
type Vector []bool

// Count returns the number of set elements.
func (v Vector) Count() int {
	n := 0
	for _, x := range v {
		if x {
			n++
		}
	}
	return n
}

// Clone returns a copy of v.
func (v Vector) Clone() Vector {
	out := make(Vector, len(v))
	copy(out, v)
	return out
}

// Evaluator scores allocation vectors for a fixed patient list and config.
// Patient values are computed once at construction.
type Evaluator struct {
	values        []float64
	durations     []int
	unitCount     int
	maxTotalHours int
}

// NewEvaluator precomputes per-patient values and durations.
func NewEvaluator(patients []core.PatientCase, cfg core.ResourceConfig) *Evaluator {
	e := &Evaluator{
		values:        make([]float64, len(patients)),
		durations:     make([]int, len(patients)),
		unitCount:     cfg.UnitCount,
		maxTotalHours: cfg.MaxTotalHours,
	}
	for i, p := range patients {
		e.values[i] = core.Value(p)
		e.durations[i] = p.ExpectedDurationHours()
	}
	return e
}

// Size returns the number of patients the evaluator was built for.
func (e *Evaluator) Size() int {
	return len(e.values)
}

// Cost returns the QUBO cost of allocation. Elements beyond the patient list are ignored.
func (e *Evaluator) Cost(allocation Vector) float64 {
	var benefit float64
	units, hours := 0, 0
	for i := range e.values {
		if i >= len(allocation) || !allocation[i] {
			continue
		}
		benefit += e.values[i]
		units++
		hours += e.durations[i]
	}

	unitExcess := float64(max(0, units-e.unitCount))
	hourExcess := float64(max(0, hours-e.maxTotalHours))

	return -benefit + UnitPenalty*unitExcess*unitExcess + HourPenalty*hourExcess*hourExcess
}

// Cost returns the QUBO cost of allocation for patients under cfg.
func Cost(allocation Vector, patients []core.PatientCase, cfg core.ResourceConfig) float64 {
	return NewEvaluator(patients, cfg).Cost(allocation)
}
