package solver

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/llm-d/llm-d-triage-allocator/pkg/core"
)

func makePatient(id string, severity, priority float64, hours int, needs bool) core.PatientCase {
	return core.NewPatientCase(core.PatientSpec{
		ID:                    id,
		Name:                  "patient-" + id,
		SeverityScore:         severity,
		PriorityFactor:        priority,
		ExpectedDurationHours: hours,
		NeedsResource:         needs,
	})
}

var _ = Describe("Cost", func() {
	var (
		patients []core.PatientCase
		cfg      core.ResourceConfig
	)

	BeforeEach(func() {
		patients = []core.PatientCase{
			makePatient("A", 0.9, 0.9, 10, true),
			makePatient("B", 0.8, 0.8, 200, true),
			makePatient("C", 0.1, 0.1, 5, false),
		}
		cfg = core.DefaultResourceConfig(2, 50)
	})

	It("should be zero for the empty allocation", func() {
		Expect(Cost(Vector{false, false, false}, patients, cfg)).To(Equal(0.0))
	})

	It("should be the negated value sum for a feasible allocation", func() {
		want := -(core.Value(patients[0]) + core.Value(patients[2]))
		Expect(Cost(Vector{true, false, true}, patients, cfg)).To(BeNumerically("~", want, 1e-12))
	})

	It("should add a quadratic unit penalty", func() {
		cfg.MaxTotalHours = 1000
		cfg.UnitCount = 1
		benefit := core.Value(patients[0]) + core.Value(patients[1]) + core.Value(patients[2])
		// 3 allocated, 1 unit: excess 2 → 100 * 4
		Expect(Cost(Vector{true, true, true}, patients, cfg)).To(BeNumerically("~", -benefit+400, 1e-9))
	})

	It("should add a quadratic hour penalty", func() {
		benefit := core.Value(patients[0]) + core.Value(patients[1])
		// 210 hours against 50: excess 160 → 50 * 25600
		Expect(Cost(Vector{true, true, false}, patients, cfg)).To(BeNumerically("~", -benefit+50*160*160, 1e-6))
	})

	It("should combine both penalties", func() {
		cfg.UnitCount = 0
		cfg.MaxTotalHours = 0
		benefit := core.Value(patients[2])
		Expect(Cost(Vector{false, false, true}, patients, cfg)).To(BeNumerically("~", -benefit+100+50*25, 1e-9))
	})

	It("should ignore vector elements beyond the patient list", func() {
		Expect(Cost(Vector{true, false, false, true}, patients, cfg)).
			To(Equal(Cost(Vector{true, false, false}, patients, cfg)))
	})

	It("should match between the evaluator and the one-shot form", func() {
		eval := NewEvaluator(patients, cfg)
		Expect(eval.Size()).To(Equal(3))
		for _, v := range []Vector{{true, true, true}, {false, true, false}, {true, false, true}} {
			Expect(eval.Cost(v)).To(Equal(Cost(v, patients, cfg)))
		}
	})
})

var _ = Describe("Vector", func() {
	It("should count set elements", func() {
		Expect(Vector{true, false, true, true}.Count()).To(Equal(3))
		Expect(Vector{}.Count()).To(Equal(0))
	})

	It("should clone without aliasing", func() {
		v := Vector{true, false}
		c := v.Clone()
		c[1] = true
		Expect(v[1]).To(BeFalse())
	})
})
