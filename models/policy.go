package models

import (
	"fmt"
	"math"
)

// The replication lag thresholds form a hysteresis band together with the
// CPU and connection thresholds of the ScalingPolicy.
const (
	ReplicationLagScaleUpThresholdSeconds   = 10.0
	ReplicationLagScaleDownThresholdSeconds = 5.0

	// ConnectionScaleDownRatio is applied to ConnectionHigh to obtain the
	// connection count below which a scale down may happen.
	ConnectionScaleDownRatio = 0.5
)

// ScalingPolicy governs the replica pool of one primary instance.
type ScalingPolicy struct {
	MinReplicas    int     `json:"min_replica_count"`
	MaxReplicas    int     `json:"max_replica_count"`
	CPUHigh        float64 `json:"cpu_threshold_high"`
	CPULow         float64 `json:"cpu_threshold_low"`
	ConnectionHigh int64   `json:"connection_threshold_high"`
}

func (p ScalingPolicy) ConnectionLow() float64 {
	return float64(p.ConnectionHigh) * ConnectionScaleDownRatio
}

// IsPinned is true when the band has a single allowed size.
func (p ScalingPolicy) IsPinned() bool {
	return p.MinReplicas == p.MaxReplicas
}

func (p ScalingPolicy) Validate() error {
	if p.MinReplicas < 0 {
		return NewConfigurationError("min_replica_count", fmt.Sprintf("must be greater than or equal to 0, got %d", p.MinReplicas))
	}
	if p.MaxReplicas < p.MinReplicas {
		return NewConfigurationError("max_replica_count", fmt.Sprintf("must be greater than or equal to min_replica_count %d, got %d", p.MinReplicas, p.MaxReplicas))
	}
	if !isFinite(p.CPULow) {
		return NewConfigurationError("cpu_threshold_low", fmt.Sprintf("must be a finite number, got %g", p.CPULow))
	}
	if !isFinite(p.CPUHigh) {
		return NewConfigurationError("cpu_threshold_high", fmt.Sprintf("must be a finite number, got %g", p.CPUHigh))
	}
	if p.CPULow < 0 {
		return NewConfigurationError("cpu_threshold_low", fmt.Sprintf("must be greater than or equal to 0, got %g", p.CPULow))
	}
	if p.CPUHigh > 100 {
		return NewConfigurationError("cpu_threshold_high", fmt.Sprintf("must be less than or equal to 100, got %g", p.CPUHigh))
	}
	if p.CPULow >= p.CPUHigh {
		return NewConfigurationError("cpu_threshold_low", fmt.Sprintf("must be less than cpu_threshold_high %g, got %g", p.CPUHigh, p.CPULow))
	}
	if p.ConnectionHigh < 0 {
		return NewConfigurationError("connection_threshold_high", fmt.Sprintf("must be greater than or equal to 0, got %d", p.ConnectionHigh))
	}
	return nil
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
