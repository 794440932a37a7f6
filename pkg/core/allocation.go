package core

// Reason explains why a ranked patient did not receive a ventilator.
type Reason string

const (
	// ReasonNone is used for allocated records.
	ReasonNone Reason = ""
	// ReasonNotNeeded means the patient does not require a ventilator.
	ReasonNotNeeded Reason = "NOT_NEEDED"
	// ReasonUnitLimit means every ventilator was already assigned.
	ReasonUnitLimit Reason = "UNIT_LIMIT"
	// ReasonHourLimit means a ventilator was free but the remaining hour budget was too small.
	ReasonHourLimit Reason = "HOUR_LIMIT"
)

// Description returns the human-readable text printed for a reason.
func (r Reason) Description() string {
	switch r {
	case ReasonNotNeeded:
		return "Ventilator not required"
	case ReasonUnitLimit:
		return "No ventilators available"
	case ReasonHourLimit:
		return "Insufficient ventilator-hour budget"
	default:
		return ""
	}
}

// Static result descriptors.
const (
	StatusNoPatients = "No patients"
	StatusCompleted  = "Allocation computed by utility ranking; annealing search attached as diagnostics"
	AlgorithmName    = "Simulated Annealing (Quantum-Inspired QUBO Solver) + Greedy Utility Ranking"
)

// AllocationRecord is the decision taken for one patient.
type AllocationRecord struct {
	// Rank is the 1-based position in the utility ranking, not the allocation order.
	Rank          int
	PatientID     string
	Name          string
	Severity      float64
	PriorityValue float64
	Allocated     bool
	// DurationHours is set only when Allocated is true.
	DurationHours int
	// Reason is set only when Allocated is false.
	Reason Reason
}

// SearchDiagnostics holds the output of the annealing search. It is informational
// and does not drive the published allocation.
type SearchDiagnostics struct {
	// Vector is the best-found allocation, indexed like the input patient list.
	Vector           []bool
	BestCost         float64
	Iterations       int
	AcceptedMoves    int
	FinalTemperature float64
	// Interrupted is true when cancellation or the time budget cut the search short.
	Interrupted bool
}

// OptimizationResult is the output of one optimization call.
type OptimizationResult struct {
	RunID string
	// Scenario names the queue when it was optimized as part of a batch.
	Scenario string
	// Records are in ranking order.
	Records        []AllocationRecord
	UnitsUsed      int
	HoursUsed      int
	UnitsAvailable int
	HoursAvailable int
	// ValueSaved is the sum of (1 - severity) over allocated ranking slots, each slot paired
	// with the input patient at the same index, rounded to 2 decimals.
	ValueSaved float64
	// BaselineValueSaved is the same estimate for a naive top-N-by-severity assignment.
	BaselineValueSaved float64
	Status             string
	Algorithm          string
	Diagnostics        *SearchDiagnostics
}

// EmptyResult returns the canonical result for an empty patient queue.
func EmptyResult() OptimizationResult {
	return OptimizationResult{
		Records: []AllocationRecord{},
		Status:  StatusNoPatients,
	}
}

// DecisionCounts counts records per reason. Allocated records are counted under ReasonNone.
func (r OptimizationResult) DecisionCounts() map[Reason]int {
	counts := make(map[Reason]int, 4)
	for _, rec := range r.Records {
		counts[rec.Reason]++
	}
	return counts
}
