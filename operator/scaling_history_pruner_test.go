package operator_test

import (
	"context"
	"errors"
	"time"

	"code.cloudfoundry.org/clock/fakeclock"
	"code.cloudfoundry.org/lager/v3/lagertest"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/onsi/gomega/gbytes"

	"github.com/cloudsql-replica-autoscaler/autoscaler/fakes"
	"github.com/cloudsql-replica-autoscaler/autoscaler/operator"
)

var _ = Describe("ScalingHistoryPruner", func() {
	var (
		historyDB      *fakes.FakeScalingHistoryDB
		fclock         *fakeclock.FakeClock
		cutoffDuration time.Duration
		logger         *lagertest.TestLogger
		pruner         *operator.ScalingHistoryPruner
	)

	BeforeEach(func() {
		cutoffDuration = 20 * time.Hour
		logger = lagertest.NewTestLogger("scaling-history-pruner-test")
		historyDB = &fakes.FakeScalingHistoryDB{}
		fclock = fakeclock.NewFakeClock(time.Now())
		pruner = operator.NewScalingHistoryPruner(historyDB, cutoffDuration, fclock, logger)
	})

	JustBeforeEach(func() {
		pruner.Operate(context.Background())
	})

	It("prunes histories older than the cutoff", func() {
		Expect(historyDB.PruneScalingHistoriesCallCount()).To(Equal(1))
		Expect(historyDB.PruneScalingHistoriesArgsForCall(0)).To(Equal(fclock.Now().Add(-cutoffDuration).UnixNano()))
	})

	When("pruning fails", func() {
		BeforeEach(func() {
			historyDB.PruneScalingHistoriesReturns(errors.New("test error"))
		})

		It("logs the error", func() {
			Eventually(logger.Buffer()).Should(gbytes.Say("failed-prune-scaling-histories"))
			Eventually(logger.Buffer()).Should(gbytes.Say("test error"))
		})
	})
})
