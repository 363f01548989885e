package ratelimiter

import (
	"time"

	"code.cloudfoundry.org/lager/v3"

	"github.com/cloudsql-replica-autoscaler/autoscaler/models"
)

const (
	defaultExpireDuration      = 10 * time.Minute
	defaultExpireCheckInterval = 30 * time.Second
)

type Limiter interface {
	ExceedsLimit(string) bool
}

type RateLimiter struct {
	store Store
}

// DefaultRateLimiter allows bursts of up to MaxAmount requests per key,
// refilled at MaxAmount per ValidDuration.
func DefaultRateLimiter(conf models.RateLimitConfig, logger lager.Logger) *RateLimiter {
	return NewRateLimiter(conf.MaxAmount, conf.MaxAmount, conf.ValidDuration, defaultExpireDuration, defaultExpireCheckInterval, logger)
}

func NewRateLimiter(bucketCapacity int, maxAmount int, validDuration time.Duration, expireDuration time.Duration, expireCheckInterval time.Duration, logger lager.Logger) *RateLimiter {
	return &RateLimiter{
		store: NewStore(bucketCapacity, maxAmount, validDuration, expireDuration, expireCheckInterval, logger),
	}
}

func (r *RateLimiter) ExceedsLimit(key string) bool {
	return r.store.Increment(key) != nil
}
