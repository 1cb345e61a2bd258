package dynamo_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/predsim/internal/dynamo"
)

var _ = Describe("Clock", func() {
	It("starts at zero", func() {
		c := dynamo.NewClock(0.1, 1)
		Expect(c.Time()).To(Equal(0.0))
		Expect(c.Steps()).To(Equal(0))
		Expect(c.CanAdvance()).To(BeTrue())
	})

	It("cannot advance with a zero horizon", func() {
		c := dynamo.NewClock(0.1, 0)
		Expect(c.CanAdvance()).To(BeFalse())
		Expect(c.TotalSteps()).To(Equal(0))
	})

	It("derives time from the step count", func() {
		c := dynamo.NewClock(0.1, 1)
		for i := 0; i < 7; i++ {
			c.Tick()
		}
		Expect(c.Time()).To(BeNumerically("~", 0.7, 1e-15))
	})

	DescribeTable("stops exactly at an exact-multiple horizon",
		func(dt, runTime float64, steps int) {
			c := dynamo.NewClock(dt, runTime)
			Expect(c.TotalSteps()).To(Equal(steps))

			n := 0
			for c.CanAdvance() {
				c.Tick()
				n++
			}
			Expect(n).To(Equal(steps))
			Expect(c.Time()).To(BeNumerically("~", runTime, 1e-9))
		},
		Entry("dt=0.1 run=1", 0.1, 1.0, 10),
		Entry("dt=0.1 run=0.3", 0.1, 0.3, 3),
		Entry("dt=0.001 run=50", 0.001, 50.0, 50000),
		Entry("dt=0.01 run=10", 0.01, 10.0, 1000),
		Entry("dt=0.25 run=2", 0.25, 2.0, 8),
	)

	It("overshoots a horizon that is not a multiple of dt by less than dt", func() {
		c := dynamo.NewClock(0.1, 1.05)
		for c.CanAdvance() {
			c.Tick()
		}
		Expect(c.Steps()).To(Equal(11))
		Expect(c.TotalSteps()).To(Equal(11))
		Expect(c.Time()).To(BeNumerically(">=", 1.05))
		Expect(c.Time() - 1.05).To(BeNumerically("<", 0.1))
	})
})
