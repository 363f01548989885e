package metric_test

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"code.cloudfoundry.org/clock/fakeclock"
	"code.cloudfoundry.org/lager/v3/lagertest"

	. "github.com/cloudsql-replica-autoscaler/autoscaler/metric"
	"github.com/cloudsql-replica-autoscaler/autoscaler/models"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/onsi/gomega/ghttp"
)

func vectorResponse(values ...string) string {
	samples := []string{}
	for _, v := range values {
		samples = append(samples, fmt.Sprintf(`{"metric":{},"value":[1700000000,"%s"]}`, v))
	}
	return fmt.Sprintf(`{"status":"success","data":{"resultType":"vector","result":[%s]}}`, strings.Join(samples, ","))
}

var _ = Describe("PrometheusCollector", func() {
	var (
		server    *ghttp.Server
		collector *PrometheusCollector
		snapshot  models.MetricSnapshot
		replicas  []string
		responses map[string]string
		queries   []string
		lock      sync.Mutex
	)

	BeforeEach(func() {
		server = ghttp.NewServer()
		replicas = []string{"primary-replica-auto-1", "primary-replica-auto-2"}
		queries = nil
		responses = map[string]string{
			"cpu_utilization":     vectorResponse("0.425"),
			"network_connections": vectorResponse("12", "40"),
			"replica_lag":         vectorResponse("3.5"),
		}

		server.RouteToHandler(http.MethodPost, "/api/v1/query", func(w http.ResponseWriter, r *http.Request) {
			query := r.FormValue("query")
			lock.Lock()
			queries = append(queries, query)
			lock.Unlock()
			for metric, body := range responses {
				if strings.Contains(query, metric) {
					w.Header().Set("Content-Type", "application/json")
					_, _ = w.Write([]byte(body))
					return
				}
			}
			w.WriteHeader(http.StatusBadRequest)
		})

		var err error
		collector, err = NewPrometheusCollector(PrometheusConfig{URL: server.URL()}, "my-project", 5*time.Minute,
			fakeclock.NewFakeClock(time.Now()), lagertest.NewTestLogger("prometheus-collector"))
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		server.Close()
	})

	JustBeforeEach(func() {
		snapshot = collector.GetMetricSnapshot(context.Background(), "primary", replicas)
	})

	Context("when every metric has data", func() {
		It("builds the snapshot", func() {
			Expect(snapshot.IsDegraded()).To(BeFalse())
			Expect(snapshot.CPUUtilizationPercent).To(BeNumerically("~", 42.5, 0.001))
			Expect(snapshot.ConnectionCount).To(BeEquivalentTo(40))
			Expect(snapshot.ReplicationLagSeconds).To(BeNumerically("~", 3.5, 0.001))
		})

		It("averages cpu over every sample rather than over per-series means", func() {
			cpuSelector := DefaultCPUMetric + `{database_id="my-project:primary"}[5m]`
			Expect(queries).To(ContainElement(Equal(
				"sum(sum_over_time(" + cpuSelector + ")) / sum(count_over_time(" + cpuSelector + "))")))
		})

		It("scopes queries to the primary and the replica pool", func() {
			Expect(queries).To(ContainElement(ContainSubstring(`{database_id="my-project:primary"}[5m]`)))
			Expect(queries).To(ContainElement(ContainSubstring("{database_id=~`my-project:primary-replica-auto-1|my-project:primary-replica-auto-2`}[5m]")))
		})
	})

	Context("when the pool is empty", func() {
		BeforeEach(func() {
			replicas = nil
		})

		It("does not query replication lag", func() {
			Expect(snapshot.IsDegraded()).To(BeFalse())
			Expect(snapshot.ReplicationLagSeconds).To(BeZero())
			Expect(queries).To(HaveLen(2))
		})
	})

	Context("when a metric has no data", func() {
		BeforeEach(func() {
			responses["network_connections"] = vectorResponse()
		})

		It("zeroes and tags the metric", func() {
			Expect(snapshot.ConnectionCount).To(BeZero())
			Expect(snapshot.IsMetricDegraded(models.MetricNameConnections)).To(BeTrue())
			Expect(snapshot.IsMetricDegraded(models.MetricNameCPUUtilization)).To(BeFalse())
			Expect(snapshot.DegradationSummary()).To(ContainSubstring("no data points in lookback window"))
		})
	})

	Context("when prometheus rejects a query", func() {
		BeforeEach(func() {
			delete(responses, "cpu_utilization")
		})

		It("zeroes and tags the metric", func() {
			Expect(snapshot.CPUUtilizationPercent).To(BeZero())
			Expect(snapshot.IsMetricDegraded(models.MetricNameCPUUtilization)).To(BeTrue())
			Expect(snapshot.DegradationSummary()).To(ContainSubstring("query failed"))
		})
	})
})
