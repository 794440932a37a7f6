package optimizer

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/llm-d/llm-d-triage-allocator/pkg/core"
)

var _ = Describe("SeverityOnlyBaseline", func() {
	It("should sum (1 - severity) over the most severe patients", func() {
		patients := []core.PatientCase{
			makePatient("low", 0.2, 0, 1, true),
			makePatient("high", 0.9, 0, 1, false),
			makePatient("mid", 0.6, 0, 1, true),
		}
		// high (0.1) + mid (0.4)
		Expect(SeverityOnlyBaseline(patients, 2)).To(BeNumerically("~", 0.5, 1e-9))
	})

	It("should cap at the number of patients", func() {
		patients := []core.PatientCase{makePatient("only", 0.25, 0, 1, true)}
		Expect(SeverityOnlyBaseline(patients, 10)).To(BeNumerically("~", 0.75, 1e-9))
	})

	It("should be zero without units", func() {
		Expect(SeverityOnlyBaseline(abcScenario(), 0)).To(BeZero())
		Expect(SeverityOnlyBaseline(abcScenario(), -3)).To(BeZero())
	})

	It("should not reorder the caller's slice", func() {
		patients := []core.PatientCase{
			makePatient("low", 0.2, 0, 1, true),
			makePatient("high", 0.9, 0, 1, true),
		}
		SeverityOnlyBaseline(patients, 1)
		Expect(patients[0].ID()).To(Equal("low"))
	})
})
