package sync_test

import (
	"errors"
	"os"
	"sync/atomic"
	"time"

	"code.cloudfoundry.org/clock/fakeclock"
	"code.cloudfoundry.org/lager/v3/lagertest"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/onsi/gomega/gbytes"
	"github.com/tedsuo/ifrit"

	"github.com/cloudsql-replica-autoscaler/autoscaler/fakes"
	"github.com/cloudsql-replica-autoscaler/autoscaler/models"
	. "github.com/cloudsql-replica-autoscaler/autoscaler/sync"
)

var _ = Describe("DatabaseLock", func() {
	const (
		retryInterval = 5 * time.Second
		lockTTL       = 15 * time.Second
		lockKey       = "db-primary"
		lockOwner     = "owner-1"
	)

	var (
		logger     *lagertest.TestLogger
		fclock     *fakeclock.FakeClock
		lockDB     *fakes.FakeLockDB
		dblock     *DatabaseLock
		process    ifrit.Process
		acquired   atomic.Int32
		lost       atomic.Int32
		lockRunner ifrit.Runner
	)

	BeforeEach(func() {
		logger = lagertest.NewTestLogger("dblock")
		fclock = fakeclock.NewFakeClock(time.Now())
		lockDB = &fakes.FakeLockDB{}
		acquired.Store(0)
		lost.Store(0)
		dblock = NewDatabaseLock(logger, fclock)
		lockRunner = dblock.InitDBLockRunner(retryInterval, lockTTL, lockKey, lockOwner, lockDB,
			func() { acquired.Add(1) },
			func() { lost.Add(1) })
	})

	JustBeforeEach(func() {
		process = ifrit.Background(lockRunner)
	})

	AfterEach(func() {
		process.Signal(os.Interrupt)
		Eventually(process.Wait()).Should(Receive())
	})

	Context("when the lock is free", func() {
		BeforeEach(func() {
			lockDB.LockReturns(true, nil)
		})

		It("acquires it at once and becomes ready", func() {
			Eventually(process.Ready()).Should(BeClosed())
			Expect(acquired.Load()).To(Equal(int32(1)))
			Expect(dblock.IsHeld()).To(BeTrue())

			lock := lockDB.LockArgsForCall(0)
			Expect(*lock).To(Equal(models.Lock{Key: lockKey, Owner: lockOwner, Ttl: lockTTL}))
			Expect(logger).To(gbytes.Say("successfully-acquired-lock"))
		})

		It("renews it on every tick", func() {
			Eventually(process.Ready()).Should(BeClosed())
			fclock.WaitForWatcherAndIncrement(retryInterval)
			Eventually(lockDB.LockCallCount).Should(Equal(2))
			fclock.WaitForWatcherAndIncrement(retryInterval)
			Eventually(lockDB.LockCallCount).Should(Equal(3))
			Expect(acquired.Load()).To(Equal(int32(1)))
		})

		It("releases it when signalled", func() {
			Eventually(process.Ready()).Should(BeClosed())
			process.Signal(os.Interrupt)
			Eventually(process.Wait()).Should(Receive(BeNil()))

			Expect(lockDB.ReleaseCallCount()).To(Equal(1))
			key, owner := lockDB.ReleaseArgsForCall(0)
			Expect(key).To(Equal(lockKey))
			Expect(owner).To(Equal(lockOwner))
			Expect(dblock.IsHeld()).To(BeFalse())
		})
	})

	Context("when another owner holds the lock", func() {
		BeforeEach(func() {
			lockDB.LockReturnsOnCall(0, false, nil)
			lockDB.LockReturnsOnCall(1, false, nil)
			lockDB.LockReturns(true, nil)
		})

		It("keeps retrying until it gets the lock", func() {
			Consistently(process.Ready()).ShouldNot(BeClosed())
			Expect(dblock.IsHeld()).To(BeFalse())

			fclock.WaitForWatcherAndIncrement(retryInterval)
			Eventually(lockDB.LockCallCount).Should(Equal(2))
			Consistently(process.Ready()).ShouldNot(BeClosed())

			fclock.WaitForWatcherAndIncrement(retryInterval)
			Eventually(process.Ready()).Should(BeClosed())
			Expect(acquired.Load()).To(Equal(int32(1)))
			Expect(lost.Load()).To(Equal(int32(0)))
		})
	})

	Context("when a competitor takes the lock over", func() {
		BeforeEach(func() {
			lockDB.LockReturnsOnCall(0, true, nil)
			lockDB.LockReturns(false, nil)
		})

		It("reports the lost lock once", func() {
			Eventually(process.Ready()).Should(BeClosed())

			fclock.WaitForWatcherAndIncrement(retryInterval)
			Eventually(lost.Load).Should(Equal(int32(1)))
			Expect(dblock.IsHeld()).To(BeFalse())
			Expect(logger).To(gbytes.Say("lock-has-been-acquired-by-competitor"))

			fclock.WaitForWatcherAndIncrement(retryInterval)
			Eventually(lockDB.LockCallCount).Should(Equal(3))
			Consistently(lost.Load).Should(Equal(int32(1)))
		})
	})

	Context("when renewing the lock fails", func() {
		BeforeEach(func() {
			lockDB.LockReturnsOnCall(0, true, nil)
			lockDB.LockReturns(false, errors.New("connection refused"))
		})

		It("releases the lock and reports it as lost", func() {
			Eventually(process.Ready()).Should(BeClosed())

			fclock.WaitForWatcherAndIncrement(retryInterval)
			Eventually(lost.Load).Should(Equal(int32(1)))
			Expect(lockDB.ReleaseCallCount()).To(BeNumerically(">=", 1))
			Expect(logger).To(gbytes.Say("failed-to-acquire-lock"))
		})
	})
})
