package core

// Utility weights and shaping constants.
const (
	SeverityWeight    = 0.4
	PriorityWeight    = 0.35
	RecoveryWeight    = 0.15
	AgeWeight         = 0.1
	severityRiskSlope = 0.7
	ageHorizonYears   = 150.0
	ageSpread         = 0.2
	minAgeFactor      = 0.5
)

// Value computes the allocation utility of a patient:
//
//	prob_success = 1 - 0.7*severity
//	age_factor   = max(0.5, 1 - (age/150)*0.2)
//	value        = 0.4*severity + 0.35*priority + 0.15*prob_success + 0.1*age_factor
//
// With clamped inputs the result lies in [0,1].
func Value(p PatientCase) float64 {
	probSuccess := 1.0 - severityRiskSlope*p.severityScore
	ageFactor := max(minAgeFactor, 1.0-(float64(p.age)/ageHorizonYears)*ageSpread)

	return SeverityWeight*p.severityScore +
		PriorityWeight*p.priorityFactor +
		RecoveryWeight*probSuccess +
		AgeWeight*ageFactor
}
