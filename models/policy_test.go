package models_test

import (
	"errors"
	"math"

	. "github.com/cloudsql-replica-autoscaler/autoscaler/models"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("ScalingPolicy", func() {
	var (
		policy ScalingPolicy
		err    error
	)

	BeforeEach(func() {
		policy = ScalingPolicy{
			MinReplicas:    1,
			MaxReplicas:    5,
			CPUHigh:        80,
			CPULow:         20,
			ConnectionHigh: 100,
		}
	})

	JustBeforeEach(func() {
		err = policy.Validate()
	})

	Context("when the policy is valid", func() {
		It("succeeds", func() {
			Expect(err).NotTo(HaveOccurred())
		})
	})

	Context("when min equals max", func() {
		BeforeEach(func() {
			policy.MinReplicas = 3
			policy.MaxReplicas = 3
		})

		It("accepts the pinned configuration", func() {
			Expect(err).NotTo(HaveOccurred())
			Expect(policy.IsPinned()).To(BeTrue())
		})
	})

	Context("when min and max are both zero", func() {
		BeforeEach(func() {
			policy.MinReplicas = 0
			policy.MaxReplicas = 0
		})

		It("succeeds", func() {
			Expect(err).NotTo(HaveOccurred())
		})
	})

	Context("when min is greater than max", func() {
		BeforeEach(func() {
			policy.MinReplicas = 6
		})

		It("returns a configuration error", func() {
			var confErr *ConfigurationError
			Expect(errors.As(err, &confErr)).To(BeTrue())
			Expect(confErr.Field).To(Equal("max_replica_count"))
			Expect(errors.Is(err, ErrConfiguration)).To(BeTrue())
		})
	})

	Context("when min is negative", func() {
		BeforeEach(func() {
			policy.MinReplicas = -1
		})

		It("returns a configuration error", func() {
			Expect(err).To(MatchError("Configuration error: min_replica_count must be greater than or equal to 0, got -1"))
		})
	})

	Context("when cpu low equals cpu high", func() {
		BeforeEach(func() {
			policy.CPULow = 80
		})

		It("returns a configuration error", func() {
			Expect(err).To(MatchError(ContainSubstring("cpu_threshold_low must be less than cpu_threshold_high")))
		})
	})

	Context("when cpu high exceeds 100", func() {
		BeforeEach(func() {
			policy.CPUHigh = 101
		})

		It("returns a configuration error", func() {
			Expect(err).To(MatchError(ContainSubstring("cpu_threshold_high must be less than or equal to 100")))
		})
	})

	Context("when the connection threshold is negative", func() {
		BeforeEach(func() {
			policy.ConnectionHigh = -5
		})

		It("returns a configuration error", func() {
			Expect(err).To(MatchError(ContainSubstring("connection_threshold_high")))
		})
	})

	DescribeTable("non-finite cpu thresholds",
		func(field string, set func(p *ScalingPolicy)) {
			p := ScalingPolicy{MinReplicas: 1, MaxReplicas: 5, CPUHigh: 80, CPULow: 20, ConnectionHigh: 100}
			set(&p)
			err := p.Validate()
			Expect(err).To(MatchError(ErrConfiguration))
			Expect(err).To(MatchError(ContainSubstring(field + " must be a finite number")))
		},
		Entry("NaN high", "cpu_threshold_high", func(p *ScalingPolicy) { p.CPUHigh = math.NaN() }),
		Entry("NaN low", "cpu_threshold_low", func(p *ScalingPolicy) { p.CPULow = math.NaN() }),
		Entry("+Inf high", "cpu_threshold_high", func(p *ScalingPolicy) { p.CPUHigh = math.Inf(1) }),
		Entry("-Inf low", "cpu_threshold_low", func(p *ScalingPolicy) { p.CPULow = math.Inf(-1) }),
	)

	It("derives the scale down connection threshold", func() {
		Expect(policy.ConnectionLow()).To(Equal(50.0))
	})
})
