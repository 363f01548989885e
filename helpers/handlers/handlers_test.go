package handlers_test

import (
	"net/http/httptest"

	"code.cloudfoundry.org/lager/v3/lagertest"

	. "github.com/cloudsql-replica-autoscaler/autoscaler/helpers/handlers"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/onsi/gomega/gbytes"
)

type Response struct {
	Key string `json:"key"`
}

var _ = Describe("WriteJSONResponse", func() {
	var (
		w      *httptest.ResponseRecorder
		logger *lagertest.TestLogger
	)

	BeforeEach(func() {
		w = httptest.NewRecorder()
		logger = lagertest.NewTestLogger("handlers")
	})

	Context("with a valid json structure", func() {
		It("writes the body and headers", func() {
			WriteJSONResponse(w, logger, 200, Response{Key: "val"})
			Expect(w.Result().Header.Values("Content-Length")).To(Equal([]string{"13"}))
			Expect(w.Header().Get("Content-Type")).To(Equal("application/json"))
			Expect(w.Body.String()).To(Equal(`{"key":"val"}`))
			Expect(w.Code).To(Equal(200))
		})
	})

	Context("with an invalid json structure", func() {
		It("returns an internal server error", func() {
			var garbage map[float64]func()
			garbage = map[float64]func(){1: func() {}}
			WriteJSONResponse(w, logger, 200, garbage)
			Expect(w.Code).To(Equal(500))
			Expect(logger.Buffer()).To(gbytes.Say("marshal-json-response"))
		})
	})
})
