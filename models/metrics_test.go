package models_test

import (
	. "github.com/cloudsql-replica-autoscaler/autoscaler/models"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("MetricSnapshot", func() {
	It("keeps observed readings", func() {
		snapshot := NewMetricSnapshot(OkReading(42.5), OkReading(17), OkReading(3.25))
		Expect(snapshot).To(Equal(MetricSnapshot{
			CPUUtilizationPercent: 42.5,
			ConnectionCount:       17,
			ReplicationLagSeconds: 3.25,
		}))
		Expect(snapshot.IsDegraded()).To(BeFalse())
	})

	It("zeroes and tags degraded readings", func() {
		snapshot := NewMetricSnapshot(DegradedReading("no samples"), OkReading(17), DegradedReading("timeout"))
		Expect(snapshot.CPUUtilizationPercent).To(BeZero())
		Expect(snapshot.ReplicationLagSeconds).To(BeZero())
		Expect(snapshot.ConnectionCount).To(Equal(int64(17)))
		Expect(snapshot.IsDegraded()).To(BeTrue())
		Expect(snapshot.IsMetricDegraded(MetricNameCPUUtilization)).To(BeTrue())
		Expect(snapshot.IsMetricDegraded(MetricNameConnections)).To(BeFalse())
		Expect(snapshot.DegradationSummary()).To(Equal("cpu_utilization: no samples; replication_lag: timeout"))
	})

	It("clamps negative readings to zero", func() {
		snapshot := NewMetricSnapshot(OkReading(-1), OkReading(-3), OkReading(-0.5))
		Expect(snapshot.CPUUtilizationPercent).To(BeZero())
		Expect(snapshot.ConnectionCount).To(BeZero())
		Expect(snapshot.ReplicationLagSeconds).To(BeZero())
	})
})

var _ = Describe("StatusFromOps", func() {
	ok := OpResult{Op: CreateOp("a"), Succeeded: true}
	ko := OpResult{Op: DeleteOp("b"), Error: "boom"}

	It("is ignored without ops", func() {
		Expect(StatusFromOps(nil)).To(Equal(ScalingStatusIgnored))
	})

	It("is succeeded when every op succeeded", func() {
		Expect(StatusFromOps([]OpResult{ok, ok})).To(Equal(ScalingStatusSucceeded))
	})

	It("is partially succeeded when some ops failed", func() {
		Expect(StatusFromOps([]OpResult{ok, ko})).To(Equal(ScalingStatusPartiallySucceeded))
	})

	It("is failed when every op failed", func() {
		Expect(StatusFromOps([]OpResult{ko})).To(Equal(ScalingStatusFailed))
	})
})
