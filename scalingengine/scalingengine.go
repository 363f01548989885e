package scalingengine

import (
	"context"
	"fmt"
	"sync"

	"code.cloudfoundry.org/clock"
	"code.cloudfoundry.org/lager/v3"

	"github.com/cloudsql-replica-autoscaler/autoscaler/db"
	"github.com/cloudsql-replica-autoscaler/autoscaler/healthendpoint"
	"github.com/cloudsql-replica-autoscaler/autoscaler/metric"
	"github.com/cloudsql-replica-autoscaler/autoscaler/models"
)

const MessageReconciliationInProgress = "reconciliation already in progress"

// ScalingEngine runs reconciliation passes for one primary instance.
type ScalingEngine interface {
	// Scale observes the pool and the load of the primary, decides on a
	// target replica count, and submits the lifecycle ops needed to reach
	// it. Lifecycle op rejections are reported in the outcome, not as an
	// error. An error means the pass could not run at all.
	Scale(ctx context.Context) (*models.ScalingOutcome, error)
}

type scalingEngine struct {
	logger          lager.Logger
	primary         string
	policy          models.ScalingPolicy
	pool            ReplicaPool
	collector       metric.Collector
	reconciler      *Reconciler
	historyDB       db.ScalingHistoryDB
	statusCollector healthendpoint.ScalingStatusCollector
	clock           clock.Clock

	passLock sync.Mutex
}

var _ ScalingEngine = &scalingEngine{}

func NewScalingEngine(logger lager.Logger, primary string, policy models.ScalingPolicy, pool ReplicaPool, collector metric.Collector, reconciler *Reconciler, historyDB db.ScalingHistoryDB, statusCollector healthendpoint.ScalingStatusCollector, clock clock.Clock) ScalingEngine {
	return &scalingEngine{
		logger:          logger.Session("scaling-engine"),
		primary:         primary,
		policy:          policy,
		pool:            pool,
		collector:       collector,
		reconciler:      reconciler,
		historyDB:       historyDB,
		statusCollector: statusCollector,
		clock:           clock,
	}
}

func (s *scalingEngine) Scale(ctx context.Context) (*models.ScalingOutcome, error) {
	logger := s.logger.Session("scale", lager.Data{"primary": s.primary})

	if !s.passLock.TryLock() {
		logger.Info("skip-scale", lager.Data{"message": MessageReconciliationInProgress})
		return &models.ScalingOutcome{
			PrimaryName: s.primary,
			Timestamp:   s.clock.Now().UnixNano(),
			Status:      models.ScalingStatusIgnored,
			Decision:    models.ScalingDecision{Action: models.NoOp},
			Ops:         []models.OpResult{},
			Message:     MessageReconciliationInProgress,
		}, nil
	}
	defer s.passLock.Unlock()

	if err := s.policy.Validate(); err != nil {
		logger.Error("invalid-scaling-policy", err, lager.Data{"policy": s.policy})
		return nil, err
	}

	outcome := &models.ScalingOutcome{
		PrimaryName: s.primary,
		Timestamp:   s.clock.Now().UnixNano(),
		Status:      models.ScalingStatusFailed,
		Decision:    models.ScalingDecision{Action: models.NoOp},
		Ops:         []models.OpResult{},
	}

	defer func() {
		s.statusCollector.RecordOutcome(outcome)
		if err := s.historyDB.SaveScalingHistory(outcome); err != nil {
			logger.Error("failed-to-save-scaling-history", err)
		}
	}()

	pool, err := s.pool.ListReplicas(ctx, s.primary)
	if err != nil {
		logger.Error("failed-to-list-replicas", err)
		outcome.Error = "failed to list replicas: " + err.Error()
		return nil, fmt.Errorf("failed to list replicas of %s: %w", s.primary, err)
	}
	outcome.Decision.CurrentReplicaCount = len(pool)
	outcome.Decision.TargetReplicaCount = len(pool)

	snapshot := s.collector.GetMetricSnapshot(ctx, s.primary, replicaNames(pool))
	outcome.Snapshot = snapshot
	if snapshot.IsDegraded() {
		logger.Error("metrics-degraded", models.ErrObservabilityDegraded, lager.Data{"degradations": snapshot.Degradations, "message": "missing signals were replaced by 0"})
	}
	logger.Info("observed", lager.Data{
		"replicas":        len(pool),
		"cpu":             snapshot.CPUUtilizationPercent,
		"connections":     snapshot.ConnectionCount,
		"replication_lag": snapshot.ReplicationLagSeconds,
	})

	decision := Decide(len(pool), snapshot, s.policy)
	outcome.Decision = decision
	logger.Info("decided", lager.Data{"action": decision.Action, "current": decision.CurrentReplicaCount, "target": decision.TargetReplicaCount, "reason": decision.Reason})

	ops := PlanOps(s.primary, decision.TargetReplicaCount, pool)
	outcome.Message = planMessage(decision, ops)
	if len(ops) == 0 {
		outcome.Status = models.ScalingStatusIgnored
		return outcome, nil
	}

	results := s.reconciler.Apply(ctx, s.primary, ops)
	outcome.Ops = results
	outcome.Status = models.StatusFromOps(results)

	if failed := outcome.OpsFailed(); len(failed) > 0 {
		logger.Error("lifecycle-ops-failed", fmt.Errorf("%d of %d lifecycle ops failed", len(failed), len(results)), lager.Data{"failed": failed})
	} else {
		logger.Info("lifecycle-ops-submitted", lager.Data{"ops": len(results)})
	}
	return outcome, nil
}

func planMessage(decision models.ScalingDecision, ops []models.LifecycleOp) string {
	if decision.Action == models.NoOp {
		return decision.Reason
	}
	wanted := decision.Delta()
	if wanted < 0 {
		wanted = -wanted
	}
	if len(ops) < wanted {
		return fmt.Sprintf("%s; only %d managed replica(s) available for deletion", decision.Reason, len(ops))
	}
	return decision.Reason
}

func replicaNames(pool []models.ReplicaRecord) []string {
	names := make([]string, 0, len(pool))
	for _, replica := range pool {
		names = append(names, replica.Name)
	}
	return names
}
