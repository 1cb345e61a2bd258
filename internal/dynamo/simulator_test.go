package dynamo_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/predsim/internal/dynamo"
	"github.com/san-kum/predsim/internal/integrators"
	"github.com/san-kum/predsim/internal/physics"
)

type recorder struct {
	states []dynamo.State
	times  []float64
}

func (r *recorder) OnStep(x dynamo.State, t float64) {
	r.states = append(r.states, x)
	r.times = append(r.times, t)
}

var _ = Describe("Simulator", func() {
	var (
		coeffs physics.Coefficients
		x0     dynamo.State
	)

	BeforeEach(func() {
		coeffs = physics.NewCoefficients(0.5, 0.2, 0.1, 0.2)
		x0 = dynamo.State{Predators: 1, Prey: 3}
	})

	newSim := func(dt, runTime float64) *dynamo.Simulator {
		return dynamo.New(coeffs, integrators.NewMidpoint(), x0, dynamo.Config{Dt: dt, RunTime: runTime})
	}

	It("advances one midpoint step", func() {
		s := newSim(0.001, 50)

		Expect(s.Advance()).To(BeTrue())
		Expect(s.State().Predators).To(BeNumerically("~", 1.00010005000225, 1e-12))
		Expect(s.State().Prey).To(BeNumerically("~", 3.0009001049955, 1e-12))
		Expect(s.Time()).To(Equal(0.001))
		Expect(s.Steps()).To(Equal(1))
	})

	It("reports termination once the horizon is reached", func() {
		s := newSim(0.5, 1)

		Expect(s.Finished()).To(BeFalse())
		Expect(s.Advance()).To(BeTrue())
		Expect(s.Advance()).To(BeTrue())
		Expect(s.Finished()).To(BeTrue())
		Expect(s.Advance()).To(BeFalse())
	})

	It("is an idempotent no-op after finishing", func() {
		s := newSim(0.5, 1)
		for s.Advance() {
		}
		state, t, steps := s.State(), s.Time(), s.Steps()

		for i := 0; i < 5; i++ {
			Expect(s.Advance()).To(BeFalse())
		}
		Expect(s.State()).To(Equal(state))
		Expect(s.Time()).To(Equal(t))
		Expect(s.Steps()).To(Equal(steps))
	})

	It("never advances with a zero horizon", func() {
		s := newSim(0.1, 0)
		Expect(s.Advance()).To(BeFalse())
		Expect(s.State()).To(Equal(x0))
		Expect(s.Time()).To(Equal(0.0))
	})

	Context("tracing", func() {
		It("emits post-step states when enabled", func() {
			rec := &recorder{}
			s := dynamo.New(coeffs, integrators.NewMidpoint(), x0, dynamo.Config{Dt: 0.25, RunTime: 1, Trace: true})
			s.SetTracer(rec)

			for s.Advance() {
			}

			Expect(rec.times).To(HaveLen(4))
			Expect(rec.times[0]).To(Equal(0.25))
			Expect(rec.times[3]).To(Equal(1.0))
			Expect(rec.states[3]).To(Equal(s.State()))
		})

		It("emits nothing when disabled", func() {
			rec := &recorder{}
			s := newSim(0.25, 1)
			s.SetTracer(rec)
			for s.Advance() {
			}
			Expect(rec.times).To(BeEmpty())
		})

		It("can be toggled mid-run", func() {
			rec := &recorder{}
			s := newSim(0.25, 1)
			s.SetTracer(rec)

			s.Advance()
			s.SetTrace(true)
			Expect(s.Trace()).To(BeTrue())
			s.Advance()
			s.SetTrace(false)
			s.Advance()

			Expect(rec.times).To(Equal([]float64{0.5}))
		})

		It("tolerates a missing sink", func() {
			s := dynamo.New(coeffs, integrators.NewMidpoint(), x0, dynamo.Config{Dt: 0.25, RunTime: 1, Trace: true})
			Expect(s.Advance()).To(BeTrue())
		})
	})

	It("resets to the initial state", func() {
		s := newSim(0.1, 1)
		for s.Advance() {
		}
		s.Reset()

		Expect(s.State()).To(Equal(x0))
		Expect(s.Initial()).To(Equal(x0))
		Expect(s.Time()).To(Equal(0.0))
		Expect(s.Finished()).To(BeFalse())
	})

	It("keeps the predator density fixed without predator dynamics", func() {
		prey := physics.NewCoefficients(0.5, 0, 0, 0)
		s := dynamo.New(prey, integrators.NewMidpoint(), x0, dynamo.Config{Dt: 0.1, RunTime: 1})

		for s.Advance() {
			Expect(s.State().Predators).To(Equal(1.0))
		}
		// prey grows by (1 + h*a + (h*a)^2/2) per step
		growth := 1 + 0.1*0.5 + 0.5*math.Pow(0.1*0.5, 2)
		Expect(s.State().Prey).To(BeNumerically("~", 3*math.Pow(growth, 10), 1e-12))
	})
})
