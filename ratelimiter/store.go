package ratelimiter

import (
	"errors"
	"sync"
	"time"

	"code.cloudfoundry.org/lager/v3"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

var ErrEmptyBucket = errors.New("empty bucket")

type Store interface {
	Increment(string) error
}

// InMemoryStore keeps one token bucket per key. A bucket that has not been
// touched for expireDuration is evicted.
type InMemoryStore struct {
	bucketCapacity int
	maxAmount      int
	validDuration  time.Duration
	expireDuration time.Duration
	buckets        *cache.Cache
	logger         lager.Logger
	lock           sync.Mutex
}

func NewStore(bucketCapacity int, maxAmount int, validDuration time.Duration, expireDuration time.Duration, expireCheckInterval time.Duration, logger lager.Logger) Store {
	store := &InMemoryStore{
		bucketCapacity: bucketCapacity,
		maxAmount:      maxAmount,
		validDuration:  validDuration,
		expireDuration: expireDuration,
		buckets:        cache.New(expireDuration, expireCheckInterval),
		logger:         logger,
	}
	store.buckets.OnEvicted(func(key string, _ interface{}) {
		store.logger.Info("removing-expired-key", lager.Data{"key": key})
	})
	return store
}

func (s *InMemoryStore) newLimiter() *rate.Limiter {
	limit := 1e9 * float64(s.maxAmount) / float64(s.validDuration)
	return rate.NewLimiter(rate.Limit(limit), s.bucketCapacity)
}

func (s *InMemoryStore) Increment(key string) error {
	s.lock.Lock()
	var limiter *rate.Limiter
	if v, ok := s.buckets.Get(key); ok {
		limiter = v.(*rate.Limiter)
	} else {
		limiter = s.newLimiter()
	}
	s.buckets.Set(key, limiter, s.expireDuration)
	s.lock.Unlock()

	if !limiter.Allow() {
		return ErrEmptyBucket
	}
	return nil
}
