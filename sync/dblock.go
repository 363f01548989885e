package sync

import (
	"os"
	"sync/atomic"
	"time"

	"code.cloudfoundry.org/clock"
	"code.cloudfoundry.org/lager/v3"
	"github.com/tedsuo/ifrit"

	"github.com/cloudsql-replica-autoscaler/autoscaler/db"
	"github.com/cloudsql-replica-autoscaler/autoscaler/models"
)

const (
	LockStatusHeld int32 = iota
	LockStatusLost
)

// DatabaseLock keeps a row in the lock table for as long as its runner is
// alive, so that only one autoscaler process reconciles a given primary.
type DatabaseLock struct {
	logger     lager.Logger
	clock      clock.Clock
	lockStatus atomic.Int32
}

func NewDatabaseLock(logger lager.Logger, clock clock.Clock) *DatabaseLock {
	dblock := &DatabaseLock{
		logger: logger.Session("database-lock"),
		clock:  clock,
	}
	dblock.lockStatus.Store(LockStatusLost)
	return dblock
}

func (dblock *DatabaseLock) IsHeld() bool {
	return dblock.lockStatus.Load() == LockStatusHeld
}

// InitDBLockRunner returns a runner that becomes ready once the lock for key
// is acquired and renews it every retryInterval. callbackOnLostLock is
// invoked when a renewal fails or a competitor takes the lock over.
func (dblock *DatabaseLock) InitDBLockRunner(retryInterval time.Duration, ttl time.Duration, key string, owner string, lockDB db.LockDB, callbackOnAcquiredLock func(), callbackOnLostLock func()) ifrit.Runner {
	return ifrit.RunFunc(func(signals <-chan os.Signal, ready chan<- struct{}) error {
		logger := dblock.logger.WithData(lager.Data{"key": key, "owner": owner})
		lockTicker := dblock.clock.NewTicker(retryInterval)
		defer lockTicker.Stop()

		readyToAcquireLock := true
		tryLock := func() {
			isLockAcquired, lockErr := lockDB.Lock(&models.Lock{Key: key, Owner: owner, Ttl: ttl})
			if lockErr != nil {
				logger.Error("failed-to-acquire-lock", lockErr)
				if releaseErr := lockDB.Release(key, owner); releaseErr != nil {
					logger.Error("failed-to-release-lock", releaseErr)
				}
				if dblock.lockStatus.Swap(LockStatusLost) == LockStatusHeld {
					callbackOnLostLock()
				}
				return
			}

			if !isLockAcquired {
				if dblock.lockStatus.Swap(LockStatusLost) == LockStatusHeld {
					logger.Info("lock-has-been-acquired-by-competitor")
					callbackOnLostLock()
				}
				logger.Debug("lock-held-by-another-owner")
				return
			}

			dblock.lockStatus.Store(LockStatusHeld)
			if readyToAcquireLock {
				readyToAcquireLock = false
				logger.Info("successfully-acquired-lock")
				callbackOnAcquiredLock()
				close(ready)
			}
		}

		tryLock()
		for {
			select {
			case <-signals:
				logger.Info("received-interrupt-signal")
				if err := lockDB.Release(key, owner); err != nil {
					logger.Error("failed-to-release-lock", err)
				} else {
					logger.Debug("successfully-released-lock")
				}
				dblock.lockStatus.Store(LockStatusLost)
				return nil

			case <-lockTicker.C():
				logger.Debug("retry-acquiring-lock")
				tryLock()
			}
		}
	})
}
