package optimizer

import (
	"slices"
	"sort"

	"gonum.org/v1/gonum/floats/scalar"

	"github.com/llm-d/llm-d-triage-allocator/pkg/core"
)

// SeverityOnlyBaseline estimates the value saved by the naive policy of handing the
// units to the most severe patients, ignoring need, duration and priority. It is
// reported next to the planner's own estimate for comparison.
func SeverityOnlyBaseline(patients []core.PatientCase, units int) float64 {
	bySeverity := slices.Clone(patients)
	sort.SliceStable(bySeverity, func(i, j int) bool {
		return bySeverity[i].SeverityScore() > bySeverity[j].SeverityScore()
	})

	var saved float64
	for _, p := range bySeverity[:min(max(0, units), len(bySeverity))] {
		saved += 1.0 - p.SeverityScore()
	}
	return scalar.Round(saved, 2)
}
