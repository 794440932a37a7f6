package optimizer

import (
	"context"
	"fmt"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/llm-d/llm-d-triage-allocator/pkg/core"
)

var _ = Describe("OptimizeAll", func() {
	It("should return results in scenario order", func() {
		emitter := &recordingEmitter{}
		opt := NewOptimizer(WithEmitter(emitter))

		scenarios := make([]Scenario, 0, 12)
		for i := range 12 {
			scenarios = append(scenarios, Scenario{
				Name:      fmt.Sprintf("scenario-%d", i),
				Patients:  abcScenario()[:1+i%3],
				Resources: core.DefaultResourceConfig(i%3, 50),
			})
		}

		results, err := opt.OptimizeAll(context.Background(), scenarios)
		Expect(err).NotTo(HaveOccurred())
		Expect(results).To(HaveLen(len(scenarios)))
		for i, res := range results {
			Expect(res.Scenario).To(Equal(fmt.Sprintf("scenario-%d", i)))
			Expect(res.Records).To(HaveLen(1 + i%3))
			Expect(res.UnitsAvailable).To(Equal(i % 3))
			Expect(res.UnitsUsed).To(Equal(min(1, i%3)))
		}
		Expect(emitter.results).To(HaveLen(len(scenarios)))
	})

	It("should match sequential optimization", func() {
		opt := NewOptimizer(WithSeed(3))
		scenarios := []Scenario{
			{Name: "abc", Patients: abcScenario(), Resources: core.DefaultResourceConfig(2, 50)},
			{Name: "empty", Resources: core.DefaultResourceConfig(2, 50)},
		}
		results, err := opt.OptimizeAll(context.Background(), scenarios)
		Expect(err).NotTo(HaveOccurred())

		sequential := opt.Optimize(context.Background(), scenarios[0].Patients, scenarios[0].Resources)
		Expect(results[0].Records).To(Equal(sequential.Records))
		Expect(results[0].Diagnostics).To(Equal(sequential.Diagnostics))
		Expect(results[1].Status).To(Equal(core.StatusNoPatients))
		Expect(results[1].Scenario).To(Equal("empty"))
		Expect(sequential.Scenario).To(BeEmpty())
	})

	It("should fail when the context is already done", func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := NewOptimizer().OptimizeAll(ctx, []Scenario{{Name: "abc", Patients: abcScenario()}})
		Expect(err).To(MatchError(context.Canceled))
	})
})
