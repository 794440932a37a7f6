package limiter

import (
	"sort"

	"github.com/llm-d/llm-d-triage-allocator/pkg/core"
)

// Candidate is a patient placed in the utility ranking.
type Candidate struct {
	// Position is the index of the patient in the caller's input list.
	Position int
	Patient  core.PatientCase
	Value    float64
}

// Rank scores every patient and orders them by value, highest first. Equal values keep
// their input order.
func Rank(patients []core.PatientCase) []Candidate {
	ranking := make([]Candidate, len(patients))
	for i, p := range patients {
		ranking[i] = Candidate{
			Position: i,
			Patient:  p,
			Value:    core.Value(p),
		}
	}
	sort.SliceStable(ranking, func(i, j int) bool {
		return ranking[i].Value > ranking[j].Value
	})
	return ranking
}

// GetRemainingCapacity calculates the capacity left after the allocated records are
// subtracted from the total. Results never go below zero.
func GetRemainingCapacity(capacity Capacity, records []core.AllocationRecord) Capacity {
	remaining := capacity
	for _, r := range records {
		if !r.Allocated {
			continue
		}
		remaining.Units--
		remaining.Hours -= r.DurationHours
	}
	remaining.Units = max(0, remaining.Units)
	remaining.Hours = max(0, remaining.Hours)
	return remaining
}
