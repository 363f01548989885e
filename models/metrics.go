package models

import (
	"fmt"
	"strings"
)

const (
	MetricNameCPUUtilization = "cpu_utilization"
	MetricNameConnections    = "connections"
	MetricNameReplicationLag = "replication_lag"

	UnitPercentage = "percentage"
	UnitNum        = "num"
	UnitSeconds    = "seconds"
)

// MetricDegradation records that a signal could not be observed and was
// replaced by its most conservative value (0).
type MetricDegradation struct {
	Metric string `json:"metric"`
	Reason string `json:"reason"`
}

// MetricSnapshot is a point-in-time reading of the load signals of one
// primary instance. A snapshot is produced once per reconciliation pass and
// never mutated afterwards.
type MetricSnapshot struct {
	CPUUtilizationPercent float64             `json:"cpu_utilization_percent"`
	ConnectionCount       int64               `json:"connection_count"`
	ReplicationLagSeconds float64             `json:"replication_lag_seconds"`
	Degradations          []MetricDegradation `json:"degradations,omitempty"`
}

func (s MetricSnapshot) IsDegraded() bool {
	return len(s.Degradations) > 0
}

// IsMetricDegraded reports whether the named signal was zeroed because it
// could not be observed.
func (s MetricSnapshot) IsMetricDegraded(metric string) bool {
	for _, d := range s.Degradations {
		if d.Metric == metric {
			return true
		}
	}
	return false
}

func (s MetricSnapshot) DegradationSummary() string {
	reasons := make([]string, 0, len(s.Degradations))
	for _, d := range s.Degradations {
		reasons = append(reasons, fmt.Sprintf("%s: %s", d.Metric, d.Reason))
	}
	return strings.Join(reasons, "; ")
}

// MetricReading is the tagged result of observing a single signal: either
// Ok(value) or Degraded(0, reason).
type MetricReading struct {
	Value    float64
	Degraded bool
	Reason   string
}

func OkReading(value float64) MetricReading {
	return MetricReading{Value: value}
}

func DegradedReading(reason string) MetricReading {
	return MetricReading{Value: 0, Degraded: true, Reason: reason}
}

// NewMetricSnapshot assembles a snapshot from the three readings, zeroing and
// tagging every degraded signal.
func NewMetricSnapshot(cpu, connections, lag MetricReading) MetricSnapshot {
	snapshot := MetricSnapshot{}
	add := func(metric string, r MetricReading) float64 {
		if r.Degraded {
			snapshot.Degradations = append(snapshot.Degradations, MetricDegradation{Metric: metric, Reason: r.Reason})
			return 0
		}
		if r.Value < 0 {
			return 0
		}
		return r.Value
	}
	snapshot.CPUUtilizationPercent = add(MetricNameCPUUtilization, cpu)
	snapshot.ConnectionCount = int64(add(MetricNameConnections, connections))
	snapshot.ReplicationLagSeconds = add(MetricNameReplicationLag, lag)
	return snapshot
}
