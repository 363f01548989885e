package models

import (
	"fmt"
	"time"
)

type ScalingAction string

const (
	ScaleUp   ScalingAction = "scale_up"
	ScaleDown ScalingAction = "scale_down"
	NoOp      ScalingAction = "no_op"
)

// ScalingDecision is the output of the decision engine for one pass.
type ScalingDecision struct {
	Action              ScalingAction `json:"action"`
	CurrentReplicaCount int           `json:"current_replica_count"`
	TargetReplicaCount  int           `json:"target_replica_count"`
	Reason              string        `json:"reason,omitempty"`
}

func (d ScalingDecision) Delta() int {
	return d.TargetReplicaCount - d.CurrentReplicaCount
}

type LifecycleOpType string

const (
	OpCreate LifecycleOpType = "create"
	OpDelete LifecycleOpType = "delete"
)

type LifecycleOp struct {
	Type        LifecycleOpType `json:"type"`
	ReplicaName string          `json:"replica_name"`
}

func CreateOp(name string) LifecycleOp {
	return LifecycleOp{Type: OpCreate, ReplicaName: name}
}

func DeleteOp(name string) LifecycleOp {
	return LifecycleOp{Type: OpDelete, ReplicaName: name}
}

// OperationHandle is the acknowledgement of an accepted asynchronous
// lifecycle request.
type OperationHandle struct {
	Name   string `json:"name"`
	Status string `json:"status,omitempty"`
}

type OpResult struct {
	Op        LifecycleOp     `json:"op"`
	Succeeded bool            `json:"succeeded"`
	Operation OperationHandle `json:"operation,omitempty"`
	Error     string          `json:"error,omitempty"`
}

type ScalingStatus int

const (
	ScalingStatusSucceeded ScalingStatus = iota
	ScalingStatusPartiallySucceeded
	ScalingStatusFailed
	ScalingStatusIgnored
)

func (s ScalingStatus) String() string {
	switch s {
	case ScalingStatusSucceeded:
		return "succeeded"
	case ScalingStatusPartiallySucceeded:
		return "partially_succeeded"
	case ScalingStatusFailed:
		return "failed"
	case ScalingStatusIgnored:
		return "ignored"
	}
	return "unknown"
}

func (s ScalingStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *ScalingStatus) UnmarshalText(text []byte) error {
	for _, candidate := range []ScalingStatus{ScalingStatusSucceeded, ScalingStatusPartiallySucceeded, ScalingStatusFailed, ScalingStatusIgnored} {
		if candidate.String() == string(text) {
			*s = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown scaling status %q", string(text))
}

// ScalingOutcome is the structured record of one reconciliation pass.
type ScalingOutcome struct {
	PrimaryName string          `json:"primary_name"`
	Timestamp   int64           `json:"timestamp"`
	Status      ScalingStatus   `json:"status"`
	Decision    ScalingDecision `json:"decision"`
	Snapshot    MetricSnapshot  `json:"snapshot"`
	Ops         []OpResult      `json:"ops"`
	Message     string          `json:"message,omitempty"`
	Error       string          `json:"error,omitempty"`
}

func (o *ScalingOutcome) OpsSucceeded() []OpResult {
	return o.filterOps(true)
}

func (o *ScalingOutcome) OpsFailed() []OpResult {
	return o.filterOps(false)
}

func (o *ScalingOutcome) filterOps(succeeded bool) []OpResult {
	results := []OpResult{}
	for _, r := range o.Ops {
		if r.Succeeded == succeeded {
			results = append(results, r)
		}
	}
	return results
}

// StatusFromOps derives the outcome status of an executed batch.
func StatusFromOps(results []OpResult) ScalingStatus {
	if len(results) == 0 {
		return ScalingStatusIgnored
	}
	failed := 0
	for _, r := range results {
		if !r.Succeeded {
			failed++
		}
	}
	switch failed {
	case 0:
		return ScalingStatusSucceeded
	case len(results):
		return ScalingStatusFailed
	default:
		return ScalingStatusPartiallySucceeded
	}
}

type Lock struct {
	Key                   string
	Owner                 string
	LastModifiedTimestamp time.Time
	Ttl                   time.Duration
}
