package limiter

import (
	"context"

	"gonum.org/v1/gonum/floats/scalar"
	ctrl "sigs.k8s.io/controller-runtime"

	"github.com/llm-d/llm-d-triage-allocator/internal/logging"
	"github.com/llm-d/llm-d-triage-allocator/pkg/core"
)

// valueSavedPrecision is the number of decimals kept in value-saved estimates.
const valueSavedPrecision = 2

// GreedyLimiter assigns ventilators in ranking order until units or hours run out.
type GreedyLimiter struct{}

// NewGreedyLimiter creates a new GreedyLimiter instance.
func NewGreedyLimiter() *GreedyLimiter {
	return &GreedyLimiter{}
}

// Allocate walks ranking in order. For each candidate:
//   - not needing a ventilator → NOT_NEEDED
//   - no unit left → UNIT_LIMIT
//   - duration above the remaining hours → HOUR_LIMIT (no unit is consumed)
//   - otherwise allocated, consuming one unit and its duration
func (l *GreedyLimiter) Allocate(ctx context.Context, ranking []Candidate, capacity Capacity) Allocation {
	logger := ctrl.LoggerFrom(ctx)

	remainingUnits := max(0, capacity.Units)
	remainingHours := max(0, capacity.Hours)

	alloc := Allocation{
		Records: make([]core.AllocationRecord, 0, len(ranking)),
	}
	for i, c := range ranking {
		p := c.Patient
		record := core.AllocationRecord{
			Rank:          i + 1,
			PatientID:     p.ID(),
			Name:          p.Name(),
			Severity:      p.SeverityScore(),
			PriorityValue: c.Value,
		}

		switch {
		case !p.NeedsResource():
			record.Reason = core.ReasonNotNeeded
		case remainingUnits == 0:
			record.Reason = core.ReasonUnitLimit
		case p.ExpectedDurationHours() > remainingHours:
			record.Reason = core.ReasonHourLimit
		default:
			record.Allocated = true
			record.DurationHours = p.ExpectedDurationHours()
			remainingUnits--
			remainingHours -= record.DurationHours
		}

		logger.V(logging.TRACE).Info("Allocation decision",
			"rank", record.Rank,
			"patient", record.PatientID,
			"allocated", record.Allocated,
			"reason", string(record.Reason),
			"remainingUnits", remainingUnits,
			"remainingHours", remainingHours)
		alloc.Records = append(alloc.Records, record)
	}

	alloc.UnitsUsed, alloc.HoursUsed, alloc.ValueSaved = summarize(alloc.Records, inputSeverities(ranking))
	return alloc
}

// inputSeverities restores the caller's input order from the candidate positions.
// Positions outside the ranking are ignored.
func inputSeverities(ranking []Candidate) []float64 {
	severities := make([]float64, len(ranking))
	for _, c := range ranking {
		if c.Position >= 0 && c.Position < len(severities) {
			severities[c.Position] = c.Patient.SeverityScore()
		}
	}
	return severities
}

// summarize totals the allocated records. Value saved is summed positionally: the
// record at ranking slot i contributes 1 - severity of the i-th input patient.
func summarize(records []core.AllocationRecord, inputSeverity []float64) (units, hours int, valueSaved float64) {
	for i, r := range records {
		if !r.Allocated {
			continue
		}
		units++
		hours += r.DurationHours
		valueSaved += 1.0 - inputSeverity[i]
	}
	return units, hours, scalar.Round(valueSaved, valueSavedPrecision)
}
