package cloudsql

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"code.cloudfoundry.org/clock"
	"code.cloudfoundry.org/lager/v3"

	"github.com/cloudsql-replica-autoscaler/autoscaler/metric"
	"github.com/cloudsql-replica-autoscaler/autoscaler/models"
)

const (
	MetricTypeCPUUtilization = "cloudsql.googleapis.com/database/cpu/utilization"
	MetricTypeConnections    = "cloudsql.googleapis.com/database/network/connections"
	MetricTypeReplicaLag     = "cloudsql.googleapis.com/database/replication/replica_lag"

	DefaultLookback = 5 * time.Minute
)

// MonitoringCollector reads Cloud SQL metrics from the Cloud Monitoring
// timeSeries.list API.
type MonitoringCollector struct {
	*Client
	logger   lager.Logger
	project  string
	lookback time.Duration
	clock    clock.Clock
}

var _ metric.Collector = &MonitoringCollector{}

func NewMonitoringCollector(client *Client, project string, lookback time.Duration, clock clock.Clock, logger lager.Logger) *MonitoringCollector {
	if lookback <= 0 {
		lookback = DefaultLookback
	}
	return &MonitoringCollector{
		Client:   client,
		logger:   logger.Session("cloud-monitoring-collector"),
		project:  project,
		lookback: lookback,
		clock:    clock,
	}
}

func (m *MonitoringCollector) GetMetricSnapshot(ctx context.Context, primary string, replicas []string) models.MetricSnapshot {
	end := m.clock.Now()
	start := end.Add(-m.lookback)
	primaryFilter := fmt.Sprintf(`resource.labels.database_id="%s"`, metric.DatabaseID(m.project, primary))

	cpu := m.reading(ctx, MetricTypeCPUUtilization, primaryFilter, start, end, averageOfPoints(100))
	connections := m.reading(ctx, MetricTypeConnections, primaryFilter, start, end, maxOfLatestPoints)

	lag := models.OkReading(0)
	if len(replicas) > 0 {
		ids := make([]string, 0, len(replicas))
		for _, replica := range replicas {
			ids = append(ids, fmt.Sprintf(`"%s"`, metric.DatabaseID(m.project, replica)))
		}
		replicaFilter := fmt.Sprintf("resource.labels.database_id=one_of(%s)", strings.Join(ids, ","))
		lag = m.reading(ctx, MetricTypeReplicaLag, replicaFilter, start, end, maxOfPoints)
	}

	return models.NewMetricSnapshot(cpu, connections, lag)
}

type aggregation func(series []TimeSeries) (float64, bool)

// averageOfPoints averages every point of every series and scales the result.
// Cloud SQL reports cpu utilization as a 0..1 fraction.
func averageOfPoints(scale float64) aggregation {
	return func(series []TimeSeries) (float64, bool) {
		sum, count := 0.0, 0
		for _, s := range series {
			for _, p := range s.Points {
				if v, ok := p.Value.Float64(); ok {
					sum += v
					count++
				}
			}
		}
		if count == 0 {
			return 0, false
		}
		return sum / float64(count) * scale, true
	}
}

// maxOfLatestPoints takes the newest point of each series. Points are
// returned newest first.
func maxOfLatestPoints(series []TimeSeries) (float64, bool) {
	result, found := 0.0, false
	for _, s := range series {
		if len(s.Points) == 0 {
			continue
		}
		if v, ok := s.Points[0].Value.Float64(); ok {
			if !found || v > result {
				result = v
			}
			found = true
		}
	}
	return result, found
}

func maxOfPoints(series []TimeSeries) (float64, bool) {
	result, found := 0.0, false
	for _, s := range series {
		for _, p := range s.Points {
			if v, ok := p.Value.Float64(); ok {
				if !found || v > result {
					result = v
				}
				found = true
			}
		}
	}
	return result, found
}

func (m *MonitoringCollector) reading(ctx context.Context, metricType string, resourceFilter string, start time.Time, end time.Time, aggregate aggregation) models.MetricReading {
	logger := m.logger.Session("list-time-series", lager.Data{"metric": metricType})

	series, err := m.listTimeSeries(ctx, fmt.Sprintf(`metric.type="%s" AND %s`, metricType, resourceFilter), start, end)
	if err != nil {
		logger.Error("failed-to-list-time-series", err)
		return models.DegradedReading(fmt.Sprintf("query failed: %s", err.Error()))
	}

	value, ok := aggregate(series)
	if !ok {
		return models.DegradedReading("no data points in lookback window")
	}
	logger.Debug("aggregated", lager.Data{"series": len(series), "value": value})
	return models.OkReading(value)
}

func (m *MonitoringCollector) listTimeSeries(ctx context.Context, filter string, start time.Time, end time.Time) ([]TimeSeries, error) {
	var series []TimeSeries
	query := url.Values{}
	query.Set("filter", filter)
	query.Set("interval.startTime", start.UTC().Format(time.RFC3339))
	query.Set("interval.endTime", end.UTC().Format(time.RFC3339))
	query.Set("view", "FULL")

	for pageNumber := 1; ; pageNumber++ {
		listURL := fmt.Sprintf("%s/v3/projects/%s/timeSeries?%s", m.conf.MonitoringAPIURL, url.PathEscape(m.project), query.Encode())
		page := TimeSeriesListResponse{}
		if err := m.get(ctx, listURL, &page); err != nil {
			return nil, fmt.Errorf("failed getting page %d: %w", pageNumber, err)
		}
		series = append(series, page.TimeSeries...)
		if page.NextPageToken == "" {
			return series, nil
		}
		query.Set("pageToken", page.NextPageToken)
	}
}
