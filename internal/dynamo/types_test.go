package dynamo_test

import (
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/predsim/internal/dynamo"
)

var _ = Describe("State", func() {
	DescribeTable("IsValid",
		func(x dynamo.State, valid bool) {
			Expect(x.IsValid()).To(Equal(valid))
		},
		Entry("zeros", dynamo.State{}, true),
		Entry("positive", dynamo.State{Predators: 1, Prey: 3}, true),
		Entry("negative predators", dynamo.State{Predators: -1, Prey: 3}, false),
		Entry("negative prey", dynamo.State{Predators: 1, Prey: -3}, false),
		Entry("NaN", dynamo.State{Predators: math.NaN(), Prey: 3}, false),
		Entry("+Inf", dynamo.State{Predators: 1, Prey: math.Inf(1)}, false),
	)

	It("reports extinction when either density is zero", func() {
		Expect(dynamo.State{Predators: 0, Prey: 3}.Extinct()).To(BeTrue())
		Expect(dynamo.State{Predators: 1, Prey: 0}.Extinct()).To(BeTrue())
		Expect(dynamo.State{Predators: 1, Prey: 3}.Extinct()).To(BeFalse())
	})
})

var _ = Describe("Config", func() {
	DescribeTable("Validate",
		func(cfg dynamo.Config, want error) {
			err := cfg.Validate()
			if want == nil {
				Expect(err).NotTo(HaveOccurred())
				return
			}
			Expect(errors.Is(err, want)).To(BeTrue(), "got %v", err)
		},
		Entry("valid", dynamo.Config{Dt: 0.001, RunTime: 50}, nil),
		Entry("zero horizon", dynamo.Config{Dt: 0.001, RunTime: 0}, nil),
		Entry("zero dt", dynamo.Config{Dt: 0, RunTime: 1}, dynamo.ErrInvalidStep),
		Entry("negative dt", dynamo.Config{Dt: -0.1, RunTime: 1}, dynamo.ErrInvalidStep),
		Entry("NaN dt", dynamo.Config{Dt: math.NaN(), RunTime: 1}, dynamo.ErrInvalidStep),
		Entry("negative horizon", dynamo.Config{Dt: 0.1, RunTime: -1}, dynamo.ErrInvalidHorizon),
		Entry("infinite horizon", dynamo.Config{Dt: 0.1, RunTime: math.Inf(1)}, dynamo.ErrInvalidHorizon),
	)

	It("rejects negative initial densities", func() {
		err := dynamo.ValidateState(dynamo.State{Predators: -1, Prey: 1})
		Expect(errors.Is(err, dynamo.ErrNegativeDensity)).To(BeTrue())
		Expect(dynamo.ValidateState(dynamo.State{Predators: 1, Prey: 1})).To(Succeed())
	})
})
