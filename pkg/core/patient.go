package core

// PatientSpec carries the raw, possibly out-of-range inputs for a PatientCase.
type PatientSpec struct {
	ID                      string
	Name                    string
	SeverityScore           float64
	NeedsResource           bool
	ExpectedDurationHours   int
	Age                     int
	HasAlternativeTreatment bool
	PriorityFactor          float64
}

// PatientCase describes one claimant. It is immutable once built by NewPatientCase.
type PatientCase struct {
	id                      string
	name                    string
	severityScore           float64
	needsResource           bool
	expectedDurationHours   int
	age                     int
	hasAlternativeTreatment bool
	priorityFactor          float64
}

// NewPatientCase builds a PatientCase from raw inputs.
// SeverityScore and PriorityFactor are clamped to [0,1]; negative durations and ages
// are clamped to 0.
func NewPatientCase(spec PatientSpec) PatientCase {
	return PatientCase{
		id:                      spec.ID,
		name:                    spec.Name,
		severityScore:           clampUnit(spec.SeverityScore),
		needsResource:           spec.NeedsResource,
		expectedDurationHours:   max(0, spec.ExpectedDurationHours),
		age:                     max(0, spec.Age),
		hasAlternativeTreatment: spec.HasAlternativeTreatment,
		priorityFactor:          clampUnit(spec.PriorityFactor),
	}
}

func (p PatientCase) ID() string                    { return p.id }
func (p PatientCase) Name() string                  { return p.name }
func (p PatientCase) SeverityScore() float64        { return p.severityScore }
func (p PatientCase) NeedsResource() bool           { return p.needsResource }
func (p PatientCase) ExpectedDurationHours() int    { return p.expectedDurationHours }
func (p PatientCase) Age() int                      { return p.age }
func (p PatientCase) HasAlternativeTreatment() bool { return p.hasAlternativeTreatment }
func (p PatientCase) PriorityFactor() float64       { return p.priorityFactor }

// clampUnit clamps v to [0,1]. NaN is mapped to 0.
func clampUnit(v float64) float64 {
	if !(v > 0) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
