package healthendpoint_test

import (
	"code.cloudfoundry.org/lager/v3"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/cloudsql-replica-autoscaler/autoscaler/healthendpoint"
)

var _ = Describe("RegisterCollectors", func() {
	var (
		logger    = lager.NewLogger("test")
		registrar *spyRegistrar
	)

	BeforeEach(func() {
		registrar = newSpyRegistrar()
	})

	Context("with the default collectors", func() {
		BeforeEach(func() {
			healthendpoint.RegisterCollectors(registrar, []prometheus.Collector{
				&simpleCollector{},
				&simpleCollector{},
			}, true, logger)
		})

		It("registers the process and go collectors as well", func() {
			Expect(registrar.collectors).To(HaveLen(4))
		})
	})

	Context("without the default collectors", func() {
		BeforeEach(func() {
			healthendpoint.RegisterCollectors(registrar, []prometheus.Collector{
				&simpleCollector{},
				&simpleCollector{},
			}, false, logger)
		})

		It("registers only the custom collectors", func() {
			Expect(registrar.collectors).To(HaveLen(2))
		})
	})
})

type spyRegistrar struct {
	prometheus.Registerer
	collectors []prometheus.Collector
}

func newSpyRegistrar() *spyRegistrar {
	return &spyRegistrar{}
}

func (s *spyRegistrar) Register(c prometheus.Collector) error {
	s.collectors = append(s.collectors, c)
	return nil
}

type simpleCollector struct{}

func (c *simpleCollector) Describe(chan<- *prometheus.Desc) {}
func (c *simpleCollector) Collect(chan<- prometheus.Metric) {}
