package healthendpoint

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/cloudsql-replica-autoscaler/autoscaler/models"
)

// ScalingStatusCollector turns reconciliation outcomes into prometheus
// metrics.
type ScalingStatusCollector interface {
	prometheus.Collector
	RecordOutcome(outcome *models.ScalingOutcome)
	// LastPassFailed is true when the most recent pass could not observe
	// the replica pool.
	LastPassFailed() bool
}

type scalingStatusCollector struct {
	replicas          *prometheus.GaugeVec
	targetReplicas    *prometheus.GaugeVec
	decisions         *prometheus.CounterVec
	lifecycleOps      *prometheus.CounterVec
	degradedMetrics   *prometheus.CounterVec
	lastPassTimestamp *prometheus.GaugeVec

	lock           sync.RWMutex
	lastPassFailed bool
}

func NewScalingStatusCollector(namespace, subSystem string) ScalingStatusCollector {
	return &scalingStatusCollector{
		replicas: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subSystem,
			Name:      "replicas",
			Help:      "Number of read replicas observed in the last pass",
		}, []string{"primary"}),
		targetReplicas: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subSystem,
			Name:      "target_replicas",
			Help:      "Replica count decided in the last pass",
		}, []string{"primary"}),
		decisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subSystem,
			Name:      "decisions_total",
			Help:      "Number of scaling decisions by action",
		}, []string{"primary", "action"}),
		lifecycleOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subSystem,
			Name:      "lifecycle_ops_total",
			Help:      "Number of submitted replica create and delete requests by result",
		}, []string{"primary", "type", "result"}),
		degradedMetrics: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subSystem,
			Name:      "degraded_metrics_total",
			Help:      "Number of load signals that could not be observed and were replaced by 0",
		}, []string{"primary", "metric"}),
		lastPassTimestamp: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subSystem,
			Name:      "last_pass_timestamp_seconds",
			Help:      "Unix time of the last reconciliation pass",
		}, []string{"primary", "status"}),
	}
}

func (c *scalingStatusCollector) Describe(ch chan<- *prometheus.Desc) {
	c.replicas.Describe(ch)
	c.targetReplicas.Describe(ch)
	c.decisions.Describe(ch)
	c.lifecycleOps.Describe(ch)
	c.degradedMetrics.Describe(ch)
	c.lastPassTimestamp.Describe(ch)
}

func (c *scalingStatusCollector) Collect(ch chan<- prometheus.Metric) {
	c.replicas.Collect(ch)
	c.targetReplicas.Collect(ch)
	c.decisions.Collect(ch)
	c.lifecycleOps.Collect(ch)
	c.degradedMetrics.Collect(ch)
	c.lastPassTimestamp.Collect(ch)
}

func (c *scalingStatusCollector) RecordOutcome(outcome *models.ScalingOutcome) {
	if outcome == nil {
		return
	}
	primary := outcome.PrimaryName

	c.lock.Lock()
	c.lastPassFailed = outcome.Error != ""
	c.lock.Unlock()

	c.lastPassTimestamp.WithLabelValues(primary, outcome.Status.String()).Set(float64(outcome.Timestamp) / 1e9)
	if outcome.Error != "" {
		return
	}

	c.replicas.WithLabelValues(primary).Set(float64(outcome.Decision.CurrentReplicaCount))
	c.targetReplicas.WithLabelValues(primary).Set(float64(outcome.Decision.TargetReplicaCount))
	c.decisions.WithLabelValues(primary, string(outcome.Decision.Action)).Inc()
	for _, degradation := range outcome.Snapshot.Degradations {
		c.degradedMetrics.WithLabelValues(primary, degradation.Metric).Inc()
	}
	for _, result := range outcome.Ops {
		status := "succeeded"
		if !result.Succeeded {
			status = "failed"
		}
		c.lifecycleOps.WithLabelValues(primary, string(result.Op.Type), status).Inc()
	}
}

func (c *scalingStatusCollector) LastPassFailed() bool {
	c.lock.RLock()
	defer c.lock.RUnlock()
	return c.lastPassFailed
}
