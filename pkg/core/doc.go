// Package core provides the domain types and scoring logic of the triage allocation engine.
//
// This package contains the entities exchanged between the host application and the
// optimizer:
//
//   - PatientCase: one claimant competing for a ventilator
//   - ResourceConfig: available units, hour budget and search parameters
//   - AllocationRecord: the decision taken for one ranked patient
//   - OptimizationResult: the full ranked decision plus totals and diagnostics
//   - Value: the utility score used to rank patients
//
// Example usage:
//
//	// Severity and priority come from an external classifier; out-of-range
//	// values are clamped to [0,1] once, here.
//	p := core.NewPatientCase(core.PatientSpec{
//	    ID:                    "P001",
//	    Name:                  "Ahmed Mohamed",
//	    SeverityScore:         0.85,
//	    NeedsResource:         true,
//	    ExpectedDurationHours: 24,
//	    Age:                   65,
//	    PriorityFactor:        0.95,
//	})
//
//	cfg := core.DefaultResourceConfig(4, 120)
//	value := core.Value(p)
//
// The core package is designed to be:
//   - Immutable where possible (PatientCase is read through accessors)
//   - Free of I/O and global state
//   - Independent of the search and ranking algorithms that consume it
package core
