package scalingengine

import (
	"fmt"
	"strings"

	"github.com/cloudsql-replica-autoscaler/autoscaler/models"
)

// Decide maps the current pool size and a metric snapshot to a scaling
// decision. It is pure: the same inputs always yield the same decision.
//
// Scale up is checked first and fires on ANY signal above its high
// threshold; scale down needs ALL signals below their low thresholds. The
// step is always a single replica. The returned target always lies within
// [MinReplicas, MaxReplicas].
func Decide(current int, snapshot models.MetricSnapshot, policy models.ScalingPolicy) models.ScalingDecision {
	decision := models.ScalingDecision{
		Action:              models.NoOp,
		CurrentReplicaCount: current,
		TargetReplicaCount:  current,
	}

	upSignals := scaleUpSignals(snapshot, policy)
	downSignals, scaleDown := scaleDownSignals(snapshot, policy)

	switch {
	case len(upSignals) > 0 && current < policy.MaxReplicas:
		decision.Action = models.ScaleUp
		decision.TargetReplicaCount = min(current+1, policy.MaxReplicas)
		decision.Reason = strings.Join(upSignals, ", ")
	case len(upSignals) > 0:
		decision.Reason = fmt.Sprintf("%s but already at max replicas %d", strings.Join(upSignals, ", "), policy.MaxReplicas)
	case scaleDown && current > policy.MinReplicas:
		decision.Action = models.ScaleDown
		decision.TargetReplicaCount = max(current-1, policy.MinReplicas)
		decision.Reason = strings.Join(downSignals, ", ")
	case scaleDown:
		decision.Reason = fmt.Sprintf("%s but already at min replicas %d", strings.Join(downSignals, ", "), policy.MinReplicas)
	default:
		decision.Reason = "load within thresholds"
	}

	return clamp(decision, policy)
}

// clamp pulls a target back into the policy band. This only changes the
// decision when the live pool is already outside the band.
func clamp(decision models.ScalingDecision, policy models.ScalingPolicy) models.ScalingDecision {
	target := decision.TargetReplicaCount
	switch {
	case target < policy.MinReplicas:
		target = policy.MinReplicas
		decision.Reason = fmt.Sprintf("limited by min replicas %d", policy.MinReplicas)
	case target > policy.MaxReplicas:
		target = policy.MaxReplicas
		decision.Reason = fmt.Sprintf("limited by max replicas %d", policy.MaxReplicas)
	default:
		return decision
	}

	decision.TargetReplicaCount = target
	switch {
	case target > decision.CurrentReplicaCount:
		decision.Action = models.ScaleUp
	case target < decision.CurrentReplicaCount:
		decision.Action = models.ScaleDown
	default:
		decision.Action = models.NoOp
	}
	return decision
}

func scaleUpSignals(snapshot models.MetricSnapshot, policy models.ScalingPolicy) []string {
	var signals []string
	if snapshot.CPUUtilizationPercent > policy.CPUHigh {
		signals = append(signals, fmt.Sprintf("cpu utilization %.2f%% > %.2f%%", snapshot.CPUUtilizationPercent, policy.CPUHigh))
	}
	if snapshot.ConnectionCount > policy.ConnectionHigh {
		signals = append(signals, fmt.Sprintf("connections %d > %d", snapshot.ConnectionCount, policy.ConnectionHigh))
	}
	if snapshot.ReplicationLagSeconds > models.ReplicationLagScaleUpThresholdSeconds {
		signals = append(signals, fmt.Sprintf("replication lag %.1fs > %gs", snapshot.ReplicationLagSeconds, models.ReplicationLagScaleUpThresholdSeconds))
	}
	return signals
}

func scaleDownSignals(snapshot models.MetricSnapshot, policy models.ScalingPolicy) ([]string, bool) {
	cpuLow := snapshot.CPUUtilizationPercent < policy.CPULow
	connectionsLow := float64(snapshot.ConnectionCount) < policy.ConnectionLow()
	lagLow := snapshot.ReplicationLagSeconds < models.ReplicationLagScaleDownThresholdSeconds
	if !cpuLow || !connectionsLow || !lagLow {
		return nil, false
	}
	return []string{
		fmt.Sprintf("cpu utilization %.2f%% < %.2f%%", snapshot.CPUUtilizationPercent, policy.CPULow),
		fmt.Sprintf("connections %d < %g", snapshot.ConnectionCount, policy.ConnectionLow()),
		fmt.Sprintf("replication lag %.1fs < %gs", snapshot.ReplicationLagSeconds, models.ReplicationLagScaleDownThresholdSeconds),
	}, true
}
