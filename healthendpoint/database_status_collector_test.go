package healthendpoint_test

import (
	"database/sql"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/prometheus/client_golang/prometheus"

	. "github.com/cloudsql-replica-autoscaler/autoscaler/healthendpoint"
)

type stubDatabaseStatus struct {
	stats sql.DBStats
}

func (s *stubDatabaseStatus) GetDBStatus() sql.DBStats {
	return s.stats
}

var _ = Describe("DatabaseStatusCollector", func() {
	var (
		databaseStatusCollector prometheus.Collector
		namespace               = "test_name_space"
		subSystem               = "test_sub_system"
		dbName                  = "scaling_history_db"
		descChan                chan *prometheus.Desc
		metricChan              chan prometheus.Metric
		dbStatusResult          = sql.DBStats{
			MaxOpenConnections: 100,
			OpenConnections:    50,
			InUse:              25,
			Idle:               25,
			WaitCount:          20,
			WaitDuration:       10 * time.Second,
			MaxIdleClosed:      10,
			MaxLifetimeClosed:  15,
		}
		maxOpenConnectionsDesc = prometheus.NewDesc(
			prometheus.BuildFQName(namespace, subSystem, dbName+"_max_open_connections"),
			"Maximum number of open connections to the database",
			nil,
			nil,
		)
		inUseDesc = prometheus.NewDesc(
			prometheus.BuildFQName(namespace, subSystem, dbName+"_in_use"),
			"The number of connections currently in use",
			nil,
			nil,
		)
		waitDurationDesc = prometheus.NewDesc(
			prometheus.BuildFQName(namespace, subSystem, dbName+"_wait_duration"),
			"The total time blocked waiting for a new connection",
			nil,
			nil,
		)
	)

	BeforeEach(func() {
		databaseStatusCollector = NewDatabaseStatusCollector(namespace, subSystem, dbName, &stubDatabaseStatus{stats: dbStatusResult})
		descChan = make(chan *prometheus.Desc, 10)
		metricChan = make(chan prometheus.Metric, 100)
	})

	Context("Describe", func() {
		BeforeEach(func() {
			databaseStatusCollector.Describe(descChan)
		})
		It("sends one desc per pool stat", func() {
			Expect(descChan).To(HaveLen(8))
			Expect(<-descChan).To(Equal(maxOpenConnectionsDesc))
			<-descChan
			Expect(<-descChan).To(Equal(inUseDesc))
		})
	})

	Context("Collect", func() {
		BeforeEach(func() {
			databaseStatusCollector.Collect(metricChan)
		})
		It("sends the current pool stats", func() {
			Expect(metricChan).To(HaveLen(8))
			Expect(<-metricChan).To(Equal(prometheus.MustNewConstMetric(maxOpenConnectionsDesc, prometheus.GaugeValue, 100)))
			for i := 0; i < 4; i++ {
				<-metricChan
			}
			Expect(<-metricChan).To(Equal(prometheus.MustNewConstMetric(waitDurationDesc, prometheus.GaugeValue, float64(10*time.Second))))
		})
	})
})
