package metric

import (
	"context"

	"github.com/cloudsql-replica-autoscaler/autoscaler/models"
)

// Collector produces the load snapshot for one primary and its replica pool.
// It never fails: a signal that cannot be read is zeroed and tagged as
// degraded on the returned snapshot.
type Collector interface {
	GetMetricSnapshot(ctx context.Context, primary string, replicas []string) models.MetricSnapshot
}

// DatabaseID is the monitoring resource label for a Cloud SQL instance.
func DatabaseID(project string, instance string) string {
	return project + ":" + instance
}
