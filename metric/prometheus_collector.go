package metric

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"code.cloudfoundry.org/clock"
	"code.cloudfoundry.org/lager/v3"
	"github.com/prometheus/client_golang/api"
	v1 "github.com/prometheus/client_golang/api/prometheus/v1"
	"github.com/prometheus/common/model"

	"github.com/cloudsql-replica-autoscaler/autoscaler/helpers"
	"github.com/cloudsql-replica-autoscaler/autoscaler/models"
)

const (
	DefaultCPUMetric         = "stackdriver_cloudsql_database_cloudsql_googleapis_com_database_cpu_utilization"
	DefaultConnectionsMetric = "stackdriver_cloudsql_database_cloudsql_googleapis_com_database_network_connections"
	DefaultReplicaLagMetric  = "stackdriver_cloudsql_database_cloudsql_googleapis_com_database_replication_replica_lag"

	cpuUtilizationScale = 100
)

type PrometheusConfig struct {
	URL               string          `yaml:"url"`
	CPUMetric         string          `yaml:"cpu_metric"`
	ConnectionsMetric string          `yaml:"connections_metric"`
	ReplicaLagMetric  string          `yaml:"replica_lag_metric"`
	TLS               models.TLSCerts `yaml:"tls"`
}

// PrometheusCollector reads the Cloud SQL metrics re-exported by the
// stackdriver exporter. The exporter keeps the database_id label of the
// monitored resource.
type PrometheusCollector struct {
	client   v1.API
	project  string
	conf     PrometheusConfig
	lookback time.Duration
	clock    clock.Clock
	logger   lager.Logger
}

func NewPrometheusCollector(conf PrometheusConfig, project string, lookback time.Duration, clock clock.Clock, logger lager.Logger) (*PrometheusCollector, error) {
	httpClient, err := helpers.CreateHTTPClient(&conf.TLS, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to create prometheus http client: %w", err)
	}
	client, err := api.NewClient(api.Config{Address: conf.URL, RoundTripper: httpClient.Transport})
	if err != nil {
		return nil, fmt.Errorf("failed to create prometheus client: %w", err)
	}
	if conf.CPUMetric == "" {
		conf.CPUMetric = DefaultCPUMetric
	}
	if conf.ConnectionsMetric == "" {
		conf.ConnectionsMetric = DefaultConnectionsMetric
	}
	if conf.ReplicaLagMetric == "" {
		conf.ReplicaLagMetric = DefaultReplicaLagMetric
	}

	return &PrometheusCollector{
		client:   v1.NewAPI(client),
		project:  project,
		conf:     conf,
		lookback: lookback,
		clock:    clock,
		logger:   logger.Session("prometheus-collector"),
	}, nil
}

func (c *PrometheusCollector) GetMetricSnapshot(ctx context.Context, primary string, replicas []string) models.MetricSnapshot {
	now := c.clock.Now()
	window := model.Duration(c.lookback).String()
	primaryID := DatabaseID(c.project, primary)

	// Cloud SQL reports cpu utilization as a 0..1 fraction. The mean is taken
	// over every sample in the window, not over per-series means.
	cpuSelector := fmt.Sprintf(`%s{database_id="%s"}[%s]`, c.conf.CPUMetric, primaryID, window)
	cpu := c.query(ctx, now, fmt.Sprintf(`sum(sum_over_time(%s)) / sum(count_over_time(%s))`, cpuSelector, cpuSelector))
	cpu.Value *= cpuUtilizationScale
	connections := c.query(ctx, now, fmt.Sprintf(`max(last_over_time(%s{database_id="%s"}[%s]))`,
		c.conf.ConnectionsMetric, primaryID, window))

	lag := models.OkReading(0)
	if len(replicas) > 0 {
		lag = c.query(ctx, now, fmt.Sprintf("max(max_over_time(%s{database_id=~`%s`}[%s]))",
			c.conf.ReplicaLagMetric, c.replicaPattern(replicas), window))
	}

	return models.NewMetricSnapshot(cpu, connections, lag)
}

func (c *PrometheusCollector) replicaPattern(replicas []string) string {
	ids := make([]string, 0, len(replicas))
	for _, replica := range replicas {
		ids = append(ids, regexp.QuoteMeta(DatabaseID(c.project, replica)))
	}
	return strings.Join(ids, "|")
}

func (c *PrometheusCollector) query(ctx context.Context, now time.Time, query string) models.MetricReading {
	logger := c.logger.Session("query", lager.Data{"query": query})

	result, warnings, err := c.client.Query(ctx, query, now)
	if err != nil {
		logger.Error("failed-to-query-prometheus", err)
		return models.DegradedReading(fmt.Sprintf("query failed: %s", err.Error()))
	}
	if len(warnings) > 0 {
		logger.Info("prometheus-warnings", lager.Data{"warnings": warnings})
	}

	vector, ok := result.(model.Vector)
	if !ok {
		return models.DegradedReading(fmt.Sprintf("unexpected result type %s", result.Type()))
	}
	if len(vector) == 0 {
		return models.DegradedReading("no data points in lookback window")
	}

	value := float64(vector[0].Value)
	for _, sample := range vector[1:] {
		value = max(value, float64(sample.Value))
	}
	logger.Debug("queried", lager.Data{"value": value})
	return models.OkReading(value)
}
