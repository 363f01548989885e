package cachedb_test

import (
	"time"

	"code.cloudfoundry.org/lager/v3/lagertest"

	"github.com/cloudsql-replica-autoscaler/autoscaler/db"
	. "github.com/cloudsql-replica-autoscaler/autoscaler/db/cachedb"
	"github.com/cloudsql-replica-autoscaler/autoscaler/models"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("ScalingHistoryCacheDB", func() {
	var (
		cdb       *ScalingHistoryCacheDB
		histories []*models.ScalingOutcome
		err       error
	)

	BeforeEach(func() {
		cdb = NewScalingHistoryCacheDB(time.Hour, lagertest.NewTestLogger("cachedb"))
		Expect(cdb.SaveScalingHistory(&models.ScalingOutcome{PrimaryName: "p:a", Timestamp: 100, Status: models.ScalingStatusSucceeded})).To(Succeed())
		Expect(cdb.SaveScalingHistory(&models.ScalingOutcome{PrimaryName: "p:a", Timestamp: 200, Status: models.ScalingStatusIgnored})).To(Succeed())
		Expect(cdb.SaveScalingHistory(&models.ScalingOutcome{PrimaryName: "p:a", Timestamp: 300, Status: models.ScalingStatusFailed})).To(Succeed())
		Expect(cdb.SaveScalingHistory(&models.ScalingOutcome{PrimaryName: "p:b", Timestamp: 150, Status: models.ScalingStatusSucceeded})).To(Succeed())
	})

	AfterEach(func() {
		Expect(cdb.Close()).To(Succeed())
	})

	Describe("RetrieveScalingHistories", func() {
		It("filters by primary and skips ignored outcomes", func() {
			histories, err = cdb.RetrieveScalingHistories("p:a", 0, -1, db.DESC, false)
			Expect(err).NotTo(HaveOccurred())
			Expect(histories).To(HaveLen(2))
			Expect(histories[0].Timestamp).To(BeEquivalentTo(300))
			Expect(histories[1].Timestamp).To(BeEquivalentTo(100))
		})

		It("includes ignored outcomes on request in ascending order", func() {
			histories, err = cdb.RetrieveScalingHistories("p:a", 0, -1, db.ASC, true)
			Expect(err).NotTo(HaveOccurred())
			Expect(histories).To(HaveLen(3))
			Expect(histories[0].Timestamp).To(BeEquivalentTo(100))
			Expect(histories[2].Timestamp).To(BeEquivalentTo(300))
		})

		It("honours the time range", func() {
			histories, err = cdb.RetrieveScalingHistories("p:a", 150, 250, db.ASC, true)
			Expect(err).NotTo(HaveOccurred())
			Expect(histories).To(HaveLen(1))
			Expect(histories[0].Status).To(Equal(models.ScalingStatusIgnored))
		})
	})

	Describe("PruneScalingHistories", func() {
		It("drops outcomes at or before the cutoff", func() {
			Expect(cdb.PruneScalingHistories(200)).To(Succeed())
			histories, err = cdb.RetrieveScalingHistories("p:a", 0, -1, db.ASC, true)
			Expect(err).NotTo(HaveOccurred())
			Expect(histories).To(HaveLen(1))
			Expect(histories[0].Timestamp).To(BeEquivalentTo(300))

			histories, err = cdb.RetrieveScalingHistories("p:b", 0, -1, db.ASC, true)
			Expect(err).NotTo(HaveOccurred())
			Expect(histories).To(HaveLen(1))
		})
	})
})
