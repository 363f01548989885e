package ratelimiter_test

import (
	"time"

	"code.cloudfoundry.org/lager/v3"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	. "github.com/cloudsql-replica-autoscaler/autoscaler/ratelimiter"
)

var _ = Describe("Store", func() {
	const (
		bucketCapacity      = 5
		maxAmount           = 2
		validDuration       = 1 * time.Second
		expireDuration      = 2 * time.Second
		expireCheckInterval = 500 * time.Millisecond
	)

	var store Store

	BeforeEach(func() {
		store = NewStore(bucketCapacity, maxAmount, validDuration, expireDuration, expireCheckInterval, lager.NewLogger("ratelimiter"))
	})

	Describe("Increment", func() {
		It("empties the bucket and refills it at the configured rate", func() {
			for i := 0; i < bucketCapacity; i++ {
				Expect(store.Increment("foo")).To(Succeed())
			}
			Expect(store.Increment("foo")).To(MatchError(ErrEmptyBucket))

			time.Sleep(validDuration)
			for i := 0; i < maxAmount; i++ {
				Expect(store.Increment("foo")).To(Succeed())
			}
			Expect(store.Increment("foo")).To(MatchError(ErrEmptyBucket))
		})

		It("keeps one bucket per key", func() {
			for i := 0; i < bucketCapacity; i++ {
				Expect(store.Increment("foo")).To(Succeed())
			}
			Expect(store.Increment("foo")).To(HaveOccurred())
			Expect(store.Increment("bar")).To(Succeed())
		})
	})

	Describe("expiry", func() {
		It("forgets a bucket that was not used for the expire duration", func() {
			store = NewStore(bucketCapacity, 1, time.Hour, expireDuration, expireCheckInterval, lager.NewLogger("ratelimiter"))
			for i := 0; i < bucketCapacity; i++ {
				Expect(store.Increment("foo")).To(Succeed())
			}
			Expect(store.Increment("foo")).To(HaveOccurred())

			time.Sleep(expireDuration + expireCheckInterval)
			Expect(store.Increment("foo")).To(Succeed())
		})
	})
})
