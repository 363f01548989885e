package cloudsql_test

import (
	"fmt"

	. "github.com/cloudsql-replica-autoscaler/autoscaler/cloudsql"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("APIError", func() {
	It("parses the google error body", func() {
		err := NewAPIError("DELETE", "https://sqladmin/v1/x", 404,
			[]byte(`{"error":{"code":404,"message":"The Cloud SQL instance does not exist.","status":"NOT_FOUND","errors":[{"domain":"global","reason":"instanceDoesNotExist","message":"The Cloud SQL instance does not exist."}]}}`))
		Expect(err.Error()).To(Equal("DELETE https://sqladmin/v1/x failed with 404 NOT_FOUND: The Cloud SQL instance does not exist. (instanceDoesNotExist)"))
		Expect(err.IsNotFound()).To(BeTrue())
	})

	It("keeps a non json body as message", func() {
		err := NewAPIError("GET", "https://sqladmin/v1/x", 502, []byte("bad gateway"))
		Expect(err.Error()).To(Equal("GET https://sqladmin/v1/x failed with 502 Bad Gateway: bad gateway"))
	})

	It("is found through wrapping", func() {
		wrapped := fmt.Errorf("create failed: %w", NewAPIError("POST", "u", 409, nil))
		Expect(IsConflict(wrapped)).To(BeTrue())
		Expect(IsNotFound(wrapped)).To(BeFalse())
	})
})
