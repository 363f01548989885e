package healthendpoint_test

import (
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/cloudsql-replica-autoscaler/autoscaler/healthendpoint"
	"github.com/cloudsql-replica-autoscaler/autoscaler/models"
)

var _ = Describe("ScalingStatusCollector", func() {
	var (
		collector healthendpoint.ScalingStatusCollector
		outcome   *models.ScalingOutcome
	)

	BeforeEach(func() {
		collector = healthendpoint.NewScalingStatusCollector("replica_autoscaler", "engine")
		outcome = &models.ScalingOutcome{
			PrimaryName: "primary-1",
			Timestamp:   1700000000000000000,
			Status:      models.ScalingStatusPartiallySucceeded,
			Decision: models.ScalingDecision{
				Action:              models.ScaleUp,
				CurrentReplicaCount: 1,
				TargetReplicaCount:  2,
			},
			Snapshot: models.NewMetricSnapshot(models.OkReading(90), models.DegradedReading("no data points in lookback window"), models.OkReading(0)),
			Ops: []models.OpResult{
				{Op: models.CreateOp("primary-1-replica-auto-2"), Succeeded: true},
				{Op: models.CreateOp("primary-1-replica-auto-3"), Succeeded: false, Error: "quota exceeded"},
			},
		}
	})

	It("exports the pool size, decision and lifecycle op results", func() {
		collector.RecordOutcome(outcome)

		expected := `
# HELP replica_autoscaler_engine_replicas Number of read replicas observed in the last pass
# TYPE replica_autoscaler_engine_replicas gauge
replica_autoscaler_engine_replicas{primary="primary-1"} 1
# HELP replica_autoscaler_engine_target_replicas Replica count decided in the last pass
# TYPE replica_autoscaler_engine_target_replicas gauge
replica_autoscaler_engine_target_replicas{primary="primary-1"} 2
# HELP replica_autoscaler_engine_decisions_total Number of scaling decisions by action
# TYPE replica_autoscaler_engine_decisions_total counter
replica_autoscaler_engine_decisions_total{action="scale_up",primary="primary-1"} 1
# HELP replica_autoscaler_engine_lifecycle_ops_total Number of submitted replica create and delete requests by result
# TYPE replica_autoscaler_engine_lifecycle_ops_total counter
replica_autoscaler_engine_lifecycle_ops_total{primary="primary-1",result="failed",type="create"} 1
replica_autoscaler_engine_lifecycle_ops_total{primary="primary-1",result="succeeded",type="create"} 1
# HELP replica_autoscaler_engine_degraded_metrics_total Number of load signals that could not be observed and were replaced by 0
# TYPE replica_autoscaler_engine_degraded_metrics_total counter
replica_autoscaler_engine_degraded_metrics_total{metric="connections",primary="primary-1"} 1
`
		Expect(testutil.CollectAndCompare(collector, strings.NewReader(expected),
			"replica_autoscaler_engine_replicas",
			"replica_autoscaler_engine_target_replicas",
			"replica_autoscaler_engine_decisions_total",
			"replica_autoscaler_engine_lifecycle_ops_total",
			"replica_autoscaler_engine_degraded_metrics_total",
		)).To(Succeed())
		Expect(collector.LastPassFailed()).To(BeFalse())
	})

	It("accumulates decisions across passes", func() {
		collector.RecordOutcome(outcome)
		outcome.Decision.Action = models.NoOp
		outcome.Ops = nil
		collector.RecordOutcome(outcome)
		collector.RecordOutcome(outcome)

		expected := `
# HELP replica_autoscaler_engine_decisions_total Number of scaling decisions by action
# TYPE replica_autoscaler_engine_decisions_total counter
replica_autoscaler_engine_decisions_total{action="no_op",primary="primary-1"} 2
replica_autoscaler_engine_decisions_total{action="scale_up",primary="primary-1"} 1
`
		Expect(testutil.CollectAndCompare(collector, strings.NewReader(expected), "replica_autoscaler_engine_decisions_total")).To(Succeed())
	})

	Context("when the pass could not observe the pool", func() {
		BeforeEach(func() {
			outcome = &models.ScalingOutcome{
				PrimaryName: "primary-1",
				Timestamp:   1700000000000000000,
				Status:      models.ScalingStatusFailed,
				Decision:    models.ScalingDecision{Action: models.NoOp},
				Error:       "failed to list replicas: boom",
			}
		})

		It("reports the pass as failed and leaves the pool gauges alone", func() {
			collector.RecordOutcome(outcome)

			Expect(collector.LastPassFailed()).To(BeTrue())
			Expect(testutil.CollectAndCount(collector, "replica_autoscaler_engine_replicas")).To(Equal(0))
			Expect(testutil.CollectAndCount(collector, "replica_autoscaler_engine_last_pass_timestamp_seconds")).To(Equal(1))
		})

		It("recovers on the next successful pass", func() {
			collector.RecordOutcome(outcome)
			collector.RecordOutcome(&models.ScalingOutcome{PrimaryName: "primary-1", Status: models.ScalingStatusIgnored})

			Expect(collector.LastPassFailed()).To(BeFalse())
		})
	})

	It("ignores nil outcomes", func() {
		Expect(func() { collector.RecordOutcome(nil) }).NotTo(Panic())
		Expect(testutil.CollectAndCount(collector)).To(Equal(0))
	})
})
