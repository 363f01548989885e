package scalingengine

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"code.cloudfoundry.org/lager/v3"
	"github.com/sourcegraph/conc/pool"

	"github.com/cloudsql-replica-autoscaler/autoscaler/models"
)

const DefaultMaxConcurrentOps = 4

type ReplicaInspector interface {
	ListReplicas(ctx context.Context, primary string) ([]models.ReplicaRecord, error)
}

type ReplicaLifecycle interface {
	CreateReplica(ctx context.Context, primary string, name string) (models.OperationHandle, error)
	DeleteReplica(ctx context.Context, name string) (models.OperationHandle, error)
}

type ReplicaPool interface {
	ReplicaInspector
	ReplicaLifecycle
}

// PlanOps computes the lifecycle operations that bring pool to target
// replicas. Unmanaged replicas count toward the pool size but are never
// deleted; when there are not enough managed replicas the plan deletes what
// it can. A pool that already has target replicas yields no ops.
func PlanOps(primary string, target int, pool []models.ReplicaRecord) []models.LifecycleOp {
	current := len(pool)
	switch {
	case target > current:
		return createOps(primary, target-current, pool)
	case target < current:
		return deleteOps(current-target, pool)
	}
	return nil
}

// createOps numbers new replicas after the highest index in use so that
// survivors of an earlier partially failed batch are never collided with.
func createOps(primary string, count int, pool []models.ReplicaRecord) []models.LifecycleOp {
	next := highestManagedIndex(primary, pool) + 1
	ops := make([]models.LifecycleOp, 0, count)
	for i := 0; i < count; i++ {
		ops = append(ops, models.CreateOp(models.ManagedReplicaName(primary, next+i)))
	}
	return ops
}

func highestManagedIndex(primary string, pool []models.ReplicaRecord) int {
	highest := 0
	for _, replica := range pool {
		if index, ok := models.ParseManagedReplicaIndex(primary, replica.Name); ok && index > highest {
			highest = index
		}
	}
	return highest
}

func deleteOps(count int, pool []models.ReplicaRecord) []models.LifecycleOp {
	candidates := DeletionCandidates(pool)
	if count > len(candidates) {
		count = len(candidates)
	}
	ops := make([]models.LifecycleOp, 0, count)
	for _, replica := range candidates[:count] {
		ops = append(ops, models.DeleteOp(replica.Name))
	}
	return ops
}

// DeletionCandidates returns the managed replicas oldest first, ties broken
// by name.
func DeletionCandidates(pool []models.ReplicaRecord) []models.ReplicaRecord {
	candidates := make([]models.ReplicaRecord, 0, len(pool))
	for _, replica := range pool {
		if replica.ManagedByController {
			candidates = append(candidates, replica)
		}
	}
	slices.SortFunc(candidates, func(a, b models.ReplicaRecord) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.Name, b.Name)
	})
	return candidates
}

// Reconciler submits planned operations to the replica lifecycle API.
type Reconciler struct {
	lifecycle        ReplicaLifecycle
	maxConcurrentOps int
	logger           lager.Logger
}

func NewReconciler(lifecycle ReplicaLifecycle, maxConcurrentOps int, logger lager.Logger) *Reconciler {
	if maxConcurrentOps <= 0 {
		maxConcurrentOps = DefaultMaxConcurrentOps
	}
	return &Reconciler{
		lifecycle:        lifecycle,
		maxConcurrentOps: maxConcurrentOps,
		logger:           logger.Session("reconciler"),
	}
}

// Apply submits every op, concurrently, and waits until each one has been
// accepted or rejected. A rejected op is recorded and never stops the rest
// of the batch. Results are returned in the order of ops.
func (r *Reconciler) Apply(ctx context.Context, primary string, ops []models.LifecycleOp) []models.OpResult {
	results := make([]models.OpResult, len(ops))
	p := pool.New().WithMaxGoroutines(r.maxConcurrentOps)
	for i, op := range ops {
		i, op := i, op
		p.Go(func() {
			results[i] = r.apply(ctx, primary, op)
		})
	}
	p.Wait()
	return results
}

func (r *Reconciler) apply(ctx context.Context, primary string, op models.LifecycleOp) models.OpResult {
	logger := r.logger.WithData(lager.Data{"primary": primary, "replica": op.ReplicaName, "op": op.Type})
	result := models.OpResult{Op: op}

	var (
		handle models.OperationHandle
		err    error
	)
	switch op.Type {
	case models.OpCreate:
		handle, err = r.lifecycle.CreateReplica(ctx, primary, op.ReplicaName)
	case models.OpDelete:
		handle, err = r.lifecycle.DeleteReplica(ctx, op.ReplicaName)
	default:
		err = fmt.Errorf("unknown lifecycle op type %q", op.Type)
	}
	if err != nil {
		failure := &models.LifecycleOpFailure{Op: op, Err: err}
		logger.Error("failed-to-submit-lifecycle-op", failure)
		result.Error = err.Error()
		return result
	}

	logger.Info("submitted-lifecycle-op", lager.Data{"operation": handle.Name, "status": handle.Status})
	result.Succeeded = true
	result.Operation = handle
	return result
}
