package solver

import (
	"context"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/llm-d/llm-d-triage-allocator/pkg/core"
)

var _ = Describe("Annealer", func() {
	var (
		ctx      context.Context
		patients []core.PatientCase
		cfg      core.ResourceConfig
	)

	BeforeEach(func() {
		ctx = context.Background()
		patients = []core.PatientCase{
			makePatient("A", 0.9, 0.9, 10, true),
			makePatient("B", 0.8, 0.8, 200, true),
			makePatient("C", 0.1, 0.1, 5, false),
		}
		cfg = core.DefaultResourceConfig(2, 50)
	})

	Context("with an empty patient list", func() {
		It("should return an empty vector without iterating", func() {
			res := NewSeededAnnealer(1).Search(ctx, nil, cfg)
			Expect(res.Best).To(BeEmpty())
			Expect(res.BestCost).To(Equal(0.0))
			Expect(res.Iterations).To(Equal(0))
			Expect(res.Interrupted).To(BeFalse())
		})
	})

	Context("with a fixed seed", func() {
		It("should be reproducible", func() {
			first := NewSeededAnnealer(42).Search(ctx, patients, cfg)
			second := NewSeededAnnealer(42).Search(ctx, patients, cfg)
			Expect(second).To(Equal(first))
		})

		It("should run every iteration", func() {
			res := NewSeededAnnealer(7).Search(ctx, patients, cfg)
			Expect(res.Iterations).To(Equal(cfg.IterationCount))
			Expect(res.Accepted).To(BeNumerically(">", 0))
			Expect(res.Interrupted).To(BeFalse())
		})

		It("should find the best feasible allocation", func() {
			res := NewSeededAnnealer(3).Search(ctx, patients, cfg)
			Expect(res.Best).To(Equal(Vector{true, false, true}))
			Expect(res.BestCost).To(BeNumerically("~", Cost(res.Best, patients, cfg), 1e-12))
			Expect(res.BestCost).To(BeNumerically("<", 0))
		})

		It("should cool geometrically", func() {
			cfg.IterationCount = 10
			cfg.InitialTemperature = 2.0
			cfg.CoolingRate = 0.5
			res := NewSeededAnnealer(5).Search(ctx, patients, cfg)
			Expect(res.FinalTemperature).To(BeNumerically("~", 2.0/1024, 1e-15))
		})
	})

	Context("with zero iterations", func() {
		It("should return the all-zero vector", func() {
			cfg.IterationCount = 0
			res := NewSeededAnnealer(9).Search(ctx, patients, cfg)
			Expect(res.Best).To(Equal(Vector{false, false, false}))
			Expect(res.BestCost).To(Equal(0.0))
			Expect(res.FinalTemperature).To(Equal(cfg.InitialTemperature))
		})
	})

	Context("with zero temperature", func() {
		It("should never accept a worsening move", func() {
			cfg.InitialTemperature = 0
			cfg.UnitCount = 0
			cfg.MaxTotalHours = 0
			// every non-empty vector is penalised above its benefit
			res := NewSeededAnnealer(11).Search(ctx, patients, cfg)
			Expect(res.Best).To(Equal(Vector{false, false, false}))
			Expect(res.Accepted).To(Equal(0))
		})
	})

	Context("with cancellation", func() {
		It("should stop immediately on a cancelled context", func() {
			cctx, cancel := context.WithCancel(ctx)
			cancel()
			res := NewSeededAnnealer(1).Search(cctx, patients, cfg)
			Expect(res.Interrupted).To(BeTrue())
			Expect(res.Iterations).To(Equal(0))
			Expect(res.Best).To(Equal(Vector{false, false, false}))
		})

		It("should stop when the search budget elapses", func() {
			cfg.IterationCount = 50_000_000
			cfg.SearchTimeBudget = time.Millisecond
			res := NewSeededAnnealer(1).Search(ctx, patients, cfg)
			Expect(res.Interrupted).To(BeTrue())
			Expect(res.Iterations).To(BeNumerically("<", cfg.IterationCount))
		})
	})
})
