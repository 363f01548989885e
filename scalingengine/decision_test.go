package scalingengine_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/cloudsql-replica-autoscaler/autoscaler/models"
	"github.com/cloudsql-replica-autoscaler/autoscaler/scalingengine"
)

var _ = Describe("Decide", func() {
	var policy models.ScalingPolicy

	BeforeEach(func() {
		policy = models.ScalingPolicy{
			MinReplicas:    1,
			MaxReplicas:    5,
			CPUHigh:        80,
			CPULow:         20,
			ConnectionHigh: 100,
		}
	})

	snapshot := func(cpu float64, connections int64, lag float64) models.MetricSnapshot {
		return models.MetricSnapshot{CPUUtilizationPercent: cpu, ConnectionCount: connections, ReplicationLagSeconds: lag}
	}

	DescribeTable("within the replica band",
		func(current int, s models.MetricSnapshot, action models.ScalingAction, target int) {
			decision := scalingengine.Decide(current, s, policy)
			Expect(decision.Action).To(Equal(action))
			Expect(decision.CurrentReplicaCount).To(Equal(current))
			Expect(decision.TargetReplicaCount).To(Equal(target))
			Expect(decision.Reason).NotTo(BeEmpty())
		},
		Entry("cpu above high scales up", 2, snapshot(85, 10, 1), models.ScaleUp, 3),
		Entry("cpu above high scales up from min", 1, snapshot(90, 0, 0), models.ScaleUp, 2),
		Entry("connections above high scales up", 2, snapshot(50, 101, 1), models.ScaleUp, 3),
		Entry("lag above its threshold scales up", 2, snapshot(50, 60, 11), models.ScaleUp, 3),
		Entry("cpu at high holds", 2, snapshot(80, 60, 1), models.NoOp, 2),
		Entry("connections at high holds", 2, snapshot(50, 100, 1), models.NoOp, 2),
		Entry("lag at its threshold holds", 2, snapshot(50, 60, 10), models.NoOp, 2),
		Entry("all signals low scales down", 3, snapshot(10, 2, 1), models.ScaleDown, 2),
		Entry("an empty snapshot scales down", 3, models.MetricSnapshot{}, models.ScaleDown, 2),
		Entry("connections at half of high holds", 3, snapshot(10, 50, 1), models.NoOp, 3),
		Entry("cpu at low holds", 3, snapshot(20, 2, 1), models.NoOp, 3),
		Entry("lag at its low threshold holds", 3, snapshot(10, 2, 5), models.NoOp, 3),
		Entry("cpu high with connections low scales up", 3, snapshot(95, 2, 1), models.ScaleUp, 4),
	)

	Context("at max replicas", func() {
		It("does not scale up", func() {
			decision := scalingengine.Decide(5, snapshot(90, 0, 0), policy)
			Expect(decision.Action).To(Equal(models.NoOp))
			Expect(decision.TargetReplicaCount).To(Equal(5))
			Expect(decision.Reason).To(ContainSubstring("already at max replicas 5"))
		})
	})

	Context("at min replicas", func() {
		It("does not scale down", func() {
			decision := scalingengine.Decide(1, snapshot(10, 2, 1), policy)
			Expect(decision.Action).To(Equal(models.NoOp))
			Expect(decision.TargetReplicaCount).To(Equal(1))
			Expect(decision.Reason).To(ContainSubstring("already at min replicas 1"))
		})
	})

	Context("when min equals max", func() {
		BeforeEach(func() {
			policy.MinReplicas = 2
			policy.MaxReplicas = 2
		})

		It("never moves", func() {
			Expect(scalingengine.Decide(2, snapshot(99, 1000, 60), policy).Action).To(Equal(models.NoOp))
			Expect(scalingengine.Decide(2, models.MetricSnapshot{}, policy).Action).To(Equal(models.NoOp))
		})
	})

	Context("when the pool is outside the band", func() {
		It("pulls an oversized pool down to max", func() {
			decision := scalingengine.Decide(7, snapshot(90, 0, 0), policy)
			Expect(decision.Action).To(Equal(models.ScaleDown))
			Expect(decision.TargetReplicaCount).To(Equal(5))
			Expect(decision.Reason).To(Equal("limited by max replicas 5"))
		})

		It("pulls an undersized pool up to min", func() {
			decision := scalingengine.Decide(0, models.MetricSnapshot{}, policy)
			Expect(decision.Action).To(Equal(models.ScaleUp))
			Expect(decision.TargetReplicaCount).To(Equal(1))
			Expect(decision.Reason).To(Equal("limited by min replicas 1"))
		})
	})

	Context("with every signal inside its hysteresis band", func() {
		It("never acts", func() {
			for current := policy.MinReplicas; current <= policy.MaxReplicas; current++ {
				for cpu := policy.CPULow; cpu <= policy.CPUHigh; cpu += 2.5 {
					for connections := int64(policy.ConnectionLow()); connections <= policy.ConnectionHigh; connections += 5 {
						for lag := models.ReplicationLagScaleDownThresholdSeconds; lag <= models.ReplicationLagScaleUpThresholdSeconds; lag += 0.5 {
							decision := scalingengine.Decide(current, snapshot(cpu, connections, lag), policy)
							Expect(decision.Action).To(Equal(models.NoOp), "current=%d cpu=%g connections=%d lag=%g", current, cpu, connections, lag)
							Expect(decision.TargetReplicaCount).To(Equal(current))
						}
					}
				}
			}
		})
	})

	DescribeTable("keeps every target within the replica band",
		func(minReplicas int, maxReplicas int) {
			policy.MinReplicas = minReplicas
			policy.MaxReplicas = maxReplicas
			snapshots := []models.MetricSnapshot{
				{},
				snapshot(100, 10000, 3600),
				snapshot(0, 10000, 0),
				snapshot(50, 75, 7),
				snapshot(100, 0, 0),
				snapshot(0, 0, 3600),
			}
			for current := 0; current <= maxReplicas+3; current++ {
				for _, s := range snapshots {
					decision := scalingengine.Decide(current, s, policy)
					Expect(decision.TargetReplicaCount).To(BeNumerically(">=", minReplicas), "current=%d snapshot=%+v", current, s)
					Expect(decision.TargetReplicaCount).To(BeNumerically("<=", maxReplicas), "current=%d snapshot=%+v", current, s)
					if current >= minReplicas && current <= maxReplicas {
						Expect(decision.TargetReplicaCount - current).To(BeNumerically("~", 0, 1))
					}
				}
			}
		},
		Entry("default band", 1, 5),
		Entry("zero to two", 0, 2),
		Entry("pinned", 3, 3),
		Entry("pinned at zero", 0, 0),
	)

	It("is deterministic", func() {
		s := snapshot(85, 10, 1)
		Expect(scalingengine.Decide(2, s, policy)).To(Equal(scalingengine.Decide(2, s, policy)))
	})
})
