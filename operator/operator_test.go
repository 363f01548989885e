package operator_test

import (
	"context"
	"os"
	"time"

	"code.cloudfoundry.org/clock/fakeclock"
	"code.cloudfoundry.org/lager/v3"
	"code.cloudfoundry.org/lager/v3/lagertest"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/onsi/gomega/gbytes"
	"github.com/tedsuo/ifrit"

	"github.com/cloudsql-replica-autoscaler/autoscaler/fakes"
	"github.com/cloudsql-replica-autoscaler/autoscaler/operator"
)

var _ = Describe("Operator", func() {
	var (
		fakeOperator *fakes.FakeOperator
		fclock       *fakeclock.FakeClock
		logger       *lagertest.TestLogger
		runner       *operator.OperatorRunner
		process      ifrit.Process
	)

	BeforeEach(func() {
		fakeOperator = &fakes.FakeOperator{}
		fclock = fakeclock.NewFakeClock(time.Now())
		logger = lagertest.NewTestLogger("operator-test")
		logger.RegisterSink(lager.NewWriterSink(GinkgoWriter, lager.DEBUG))
		runner = operator.NewOperatorRunner(fakeOperator, TestRefreshInterval, fclock, logger)
	})

	JustBeforeEach(func() {
		process = ifrit.Invoke(runner)
		Eventually(logger.Buffer()).Should(gbytes.Say("started"))
	})

	AfterEach(func() {
		process.Signal(os.Interrupt)
		Eventually(process.Wait()).Should(Receive())
	})

	It("operates once at start", func() {
		Eventually(fakeOperator.OperateCallCount).Should(Equal(1))
		Consistently(fakeOperator.OperateCallCount).Should(Equal(1))
	})

	When("the refresh interval elapses", func() {
		It("operates again on every tick", func() {
			Eventually(fakeOperator.OperateCallCount).Should(Equal(1))

			fclock.WaitForWatcherAndIncrement(TestRefreshInterval)
			Eventually(fakeOperator.OperateCallCount).Should(Equal(2))

			fclock.Increment(TestRefreshInterval)
			Eventually(fakeOperator.OperateCallCount).Should(Equal(3))
		})
	})

	When("the runner is signalled", func() {
		It("cancels the context it handed to the operator", func() {
			Eventually(fakeOperator.OperateCallCount).Should(Equal(1))
			ctx := fakeOperator.OperateArgsForCall(0)
			Expect(ctx.Err()).NotTo(HaveOccurred())

			process.Signal(os.Interrupt)
			Eventually(process.Wait()).Should(Receive(BeNil()))
			Eventually(ctx.Done()).Should(BeClosed())
			Expect(ctx.Err()).To(MatchError(context.Canceled))
			Eventually(logger.Buffer()).Should(gbytes.Say("stopped"))
		})
	})
})
