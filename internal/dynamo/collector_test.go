package dynamo_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/predsim/internal/dynamo"
	"github.com/san-kum/predsim/internal/integrators"
	"github.com/san-kum/predsim/internal/physics"
)

type countMetric struct {
	observed int
	resets   int
}

func (c *countMetric) Name() string                      { return "count" }
func (c *countMetric) Observe(x dynamo.State, t float64) { c.observed++ }
func (c *countMetric) Value() float64                    { return float64(c.observed) }

func (c *countMetric) Reset() {
	c.observed = 0
	c.resets++
}

var _ = Describe("Collect", func() {
	var (
		coeffs physics.Coefficients
		x0     dynamo.State
		labels dynamo.Labels
	)

	BeforeEach(func() {
		coeffs = physics.NewCoefficients(0.5, 0.2, 0.1, 0.2)
		x0 = dynamo.State{Predators: 1, Prey: 3}
		labels = dynamo.Labels{Predator: "Lynx", Prey: "Hare"}
	})

	collect := func(dt, runTime float64, metrics ...dynamo.Metric) *dynamo.TimeSeries {
		s := dynamo.New(coeffs, integrators.NewMidpoint(), x0, dynamo.Config{Dt: dt, RunTime: runTime})
		return dynamo.Collect(s, labels, metrics...)
	}

	It("records the initial state first", func() {
		ts := collect(0.1, 1)

		Expect(ts.Times[0]).To(Equal(0.0))
		Expect(ts.StateAt(0)).To(Equal(x0))
	})

	It("keeps the three sequences the same length", func() {
		ts := collect(0.1, 1.05)

		Expect(ts.Predators.Values).To(HaveLen(ts.Len()))
		Expect(ts.Prey.Values).To(HaveLen(ts.Len()))
		Expect(ts.Len()).To(Equal(12))
	})

	It("returns a single sample for a zero horizon", func() {
		ts := collect(0.1, 0)

		Expect(ts.Len()).To(Equal(1))
		Expect(ts.Final()).To(Equal(dynamo.Sample{Time: 0, Predators: 1, Prey: 3}))
	})

	It("attaches labels", func() {
		ts := collect(0.1, 1)
		Expect(ts.Predators.Label).To(Equal("Lynx"))
		Expect(ts.Prey.Label).To(Equal("Hare"))
		Expect(ts.Labels()).To(Equal(labels))
	})

	It("collects 1 + runTime/dt samples over the full default horizon", func() {
		ts := collect(0.001, 50)

		Expect(ts.Len()).To(Equal(50001))
		Expect(ts.Final().Time).To(BeNumerically("~", 50, 1e-9))
		Expect(ts.Final().Predators).To(BeNumerically("~", 5.117959895677257, 1e-6))
		Expect(ts.Final().Prey).To(BeNumerically("~", 2.7639750525256868, 1e-6))
	})

	It("records strictly increasing times spaced by dt", func() {
		ts := collect(0.01, 10)

		Expect(ts.Times[0]).To(Equal(0.0))
		for i := 1; i < ts.Len(); i++ {
			Expect(ts.Times[i]).To(BeNumerically(">", ts.Times[i-1]))
			Expect(ts.Times[i] - ts.Times[i-1]).To(BeNumerically("~", 0.01, 1e-12))
		}
	})

	It("keeps every sample non-negative", func() {
		harsh := physics.NewCoefficients(0.5, 0.2, 0.1, 0.2)
		s := dynamo.New(harsh, integrators.NewMidpoint(), dynamo.State{Predators: 5, Prey: 10}, dynamo.Config{Dt: 2, RunTime: 20})
		ts := dynamo.Collect(s, labels)

		for i := 0; i < ts.Len(); i++ {
			Expect(ts.Predators.Values[i]).To(BeNumerically(">=", 0))
			Expect(ts.Prey.Values[i]).To(BeNumerically(">=", 0))
		}
		Expect(ts.Prey.Values[1]).To(Equal(0.0))
	})

	It("feeds metrics every recorded sample", func() {
		m := &countMetric{observed: 99}
		ts := collect(0.1, 1, m)

		Expect(m.resets).To(Equal(1))
		Expect(ts.Metrics).To(HaveKeyWithValue("count", 11.0))
	})

	It("bounds the up-front reservation for very long horizons", func() {
		Expect(dynamo.Preallocate(*dynamo.NewClock(0.1, 1))).To(Equal(11))
		Expect(dynamo.Preallocate(*dynamo.NewClock(1e-6, 1e6))).To(Equal(1 << 20))
	})

	It("grows past the reservation", func() {
		ts := collect(1e-6, 1.1)

		Expect(ts.Len()).To(Equal(1100001))
		Expect(cap(ts.Times)).To(BeNumerically(">", 1<<20))
	})

	It("rebuilds a series from samples", func() {
		ts := collect(0.1, 0.3)
		samples := make([]dynamo.Sample, ts.Len())
		for i := range samples {
			samples[i] = ts.At(i)
		}

		rebuilt := dynamo.FromSamples(labels, samples)
		Expect(rebuilt.Times).To(Equal(ts.Times))
		Expect(rebuilt.Predators).To(Equal(ts.Predators))
		Expect(rebuilt.Prey).To(Equal(ts.Prey))
	})
})
