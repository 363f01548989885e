package operator

import (
	"context"
	"time"

	"code.cloudfoundry.org/lager/v3"

	"github.com/cloudsql-replica-autoscaler/autoscaler/scalingengine"
)

var _ Operator = &ReplicaReconciler{}

// ReplicaReconciler runs one reconciliation pass per tick. A failed pass is
// logged and retried on the next tick.
type ReplicaReconciler struct {
	engine  scalingengine.ScalingEngine
	timeout time.Duration
	logger  lager.Logger
}

func NewReplicaReconciler(engine scalingengine.ScalingEngine, timeout time.Duration, logger lager.Logger) *ReplicaReconciler {
	return &ReplicaReconciler{
		engine:  engine,
		timeout: timeout,
		logger:  logger.Session("replica-reconciler"),
	}
}

func (rr *ReplicaReconciler) Operate(ctx context.Context) {
	logger := rr.logger.Session("reconcile")
	logger.Debug("starting")

	if rr.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, rr.timeout)
		defer cancel()
	}

	outcome, err := rr.engine.Scale(ctx)
	if err != nil {
		logger.Error("failed-to-reconcile", err)
		return
	}
	logger.Info("completed", lager.Data{
		"status":  outcome.Status,
		"action":  outcome.Decision.Action,
		"current": outcome.Decision.CurrentReplicaCount,
		"target":  outcome.Decision.TargetReplicaCount,
		"message": outcome.Message,
	})
}
