package helpers_test

import (
	"bytes"
	"time"

	"code.cloudfoundry.org/lager/v3"

	"github.com/cloudsql-replica-autoscaler/autoscaler/helpers"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("TextWriterSink", func() {
	var (
		sink   lager.Sink
		buffer *bytes.Buffer
	)

	BeforeEach(func() {
		buffer = &bytes.Buffer{}
		sink = helpers.NewTextWriterSink(buffer, lager.INFO)
	})

	It("writes entries at or above the minimum level", func() {
		sink.Log(lager.LogFormat{Timestamp: timestamp2String(time.Now().UnixNano()), LogLevel: lager.INFO, Source: "replica-autoscaler",
			Message: "replica-autoscaler.scaling-engine.decided", Data: lager.Data{"action": "scale_up"}})
		Expect(buffer.String()).To(ContainSubstring("level=INFO"))
		Expect(buffer.String()).To(ContainSubstring("msg=replica-autoscaler.scaling-engine.decided"))
		Expect(buffer.String()).To(ContainSubstring("source=replica-autoscaler"))
		Expect(buffer.String()).To(ContainSubstring("action=scale_up"))
	})

	It("drops entries below the minimum level", func() {
		sink.Log(lager.LogFormat{LogLevel: lager.DEBUG, Message: "hello world"})
		Expect(buffer.String()).To(BeEmpty())
	})
})
