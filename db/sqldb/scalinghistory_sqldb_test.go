package sqldb_test

import (
	"os"

	"code.cloudfoundry.org/lager/v3/lagertest"

	"github.com/cloudsql-replica-autoscaler/autoscaler/db"
	. "github.com/cloudsql-replica-autoscaler/autoscaler/db/sqldb"
	"github.com/cloudsql-replica-autoscaler/autoscaler/models"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("ScalingHistorySQLDB", func() {
	var (
		sdb       *ScalingHistorySQLDB
		histories []*models.ScalingOutcome
		err       error
	)

	outcome := func(timestamp int64, status models.ScalingStatus) *models.ScalingOutcome {
		return &models.ScalingOutcome{
			PrimaryName: "p:primary-a",
			Timestamp:   timestamp,
			Status:      status,
			Decision: models.ScalingDecision{
				Action:              models.ScaleUp,
				CurrentReplicaCount: 1,
				TargetReplicaCount:  2,
				Reason:              "cpu utilization 90.00% > 75.00%",
			},
			Snapshot: models.MetricSnapshot{CPUUtilizationPercent: 90, ConnectionCount: 10},
			Ops: []models.OpResult{{
				Op:        models.CreateOp("primary-a-replica-auto-2"),
				Succeeded: true,
			}},
		}
	}

	BeforeEach(func() {
		sdb, err = NewScalingHistorySQLDB(db.DatabaseConfig{
			URL:                os.Getenv("DBURL"),
			MaxOpenConnections: 10,
			MaxIdleConnections: 5,
		}, lagertest.NewTestLogger("scaling-history-sqldb-test"))
		Expect(err).NotTo(HaveOccurred())
		cleanScalingHistoryTable()

		Expect(sdb.SaveScalingHistory(outcome(111, models.ScalingStatusSucceeded))).To(Succeed())
		Expect(sdb.SaveScalingHistory(outcome(222, models.ScalingStatusIgnored))).To(Succeed())
		Expect(sdb.SaveScalingHistory(outcome(333, models.ScalingStatusFailed))).To(Succeed())
	})

	AfterEach(func() {
		Expect(sdb.Close()).To(Succeed())
	})

	Describe("RetrieveScalingHistories", func() {
		Context("when ignored outcomes are excluded", func() {
			It("returns the remaining outcomes newest first", func() {
				histories, err = sdb.RetrieveScalingHistories("p:primary-a", 0, -1, db.DESC, false)
				Expect(err).NotTo(HaveOccurred())
				Expect(histories).To(HaveLen(2))
				Expect(histories[0].Timestamp).To(BeEquivalentTo(333))
				Expect(histories[1]).To(Equal(outcome(111, models.ScalingStatusSucceeded)))
			})
		})

		Context("when all outcomes are included", func() {
			It("returns all outcomes oldest first", func() {
				histories, err = sdb.RetrieveScalingHistories("p:primary-a", 0, -1, db.ASC, true)
				Expect(err).NotTo(HaveOccurred())
				Expect(histories).To(HaveLen(3))
				Expect(histories[0].Timestamp).To(BeEquivalentTo(111))
			})
		})

		Context("when the time range is bounded", func() {
			It("only returns outcomes in range", func() {
				histories, err = sdb.RetrieveScalingHistories("p:primary-a", 200, 300, db.ASC, true)
				Expect(err).NotTo(HaveOccurred())
				Expect(histories).To(HaveLen(1))
				Expect(histories[0].Status).To(Equal(models.ScalingStatusIgnored))
			})
		})
	})

	Describe("PruneScalingHistories", func() {
		It("removes outcomes at or before the cutoff", func() {
			Expect(sdb.PruneScalingHistories(222)).To(Succeed())
			histories, err = sdb.RetrieveScalingHistories("p:primary-a", 0, -1, db.ASC, true)
			Expect(err).NotTo(HaveOccurred())
			Expect(histories).To(HaveLen(1))
			Expect(histories[0].Timestamp).To(BeEquivalentTo(333))
		})
	})

	It("reports connection pool stats", func() {
		Expect(sdb.Ping()).To(Succeed())
		Expect(sdb.GetDBStatus().MaxOpenConnections).To(Equal(10))
	})

})
