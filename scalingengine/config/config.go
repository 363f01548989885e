package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/cloudsql-replica-autoscaler/autoscaler/cloudsql"
	"github.com/cloudsql-replica-autoscaler/autoscaler/configutil"
	"github.com/cloudsql-replica-autoscaler/autoscaler/db"
	"github.com/cloudsql-replica-autoscaler/autoscaler/helpers"
	"github.com/cloudsql-replica-autoscaler/autoscaler/metric"
	"github.com/cloudsql-replica-autoscaler/autoscaler/models"
)

const (
	DefaultLoggingLevel        = "info"
	DefaultScalingInterval     = 5 * time.Minute
	DefaultMetricsLookback     = 5 * time.Minute
	DefaultMaxConcurrentOps    = 4
	DefaultRefreshInterval     = 24 * time.Hour
	DefaultCutoffDuration      = 30 * 24 * time.Hour
	DefaultDBLockRetryInterval = 5 * time.Second
	DefaultDBLockTTL           = 15 * time.Second
	DefaultMaxRetries          = 3
	DefaultMaxRetryWait        = 5 * time.Second
	DefaultRequestTimeout      = 30 * time.Second

	MetricsSourceCloudMonitoring = "cloud_monitoring"
	MetricsSourcePrometheus      = "prometheus"
)

// Environment variables read on top of the config file.
const (
	EnvProjectID               = "PROJECT_ID"
	EnvRegion                  = "REGION"
	EnvPrimaryInstanceName     = "PRIMARY_INSTANCE_NAME"
	EnvMinReplicaCount         = "MIN_REPLICA_COUNT"
	EnvMaxReplicaCount         = "MAX_REPLICA_COUNT"
	EnvCPUThresholdHigh        = "CPU_THRESHOLD_HIGH"
	EnvCPUThresholdLow         = "CPU_THRESHOLD_LOW"
	EnvConnectionThresholdHigh = "CONNECTION_THRESHOLD_HIGH"

	EnvLogLevel               = "LOG_LEVEL"
	EnvMetricsSource          = "METRICS_SOURCE"
	EnvPrometheusURL          = "PROMETHEUS_URL"
	EnvScalingHistoryDBURL    = "SCALING_HISTORY_DB_URL"
	EnvLockDBURL              = "LOCK_DB_URL"
	EnvReplicaTier            = "REPLICA_TIER"
	EnvReplicaDatabaseVersion = "REPLICA_DATABASE_VERSION"

	envScalingHistoryDBCertPrefix = "SCALING_HISTORY_DB"
	envLockDBCertPrefix           = "LOCK_DB"
)

type PrimaryConfig struct {
	ProjectID    string `yaml:"project_id"`
	Region       string `yaml:"region"`
	InstanceName string `yaml:"instance_name"`
}

// PolicyConfig uses pointers so that a missing value can be told apart from
// an explicit zero.
type PolicyConfig struct {
	MinReplicas    *int     `yaml:"min_replica_count"`
	MaxReplicas    *int     `yaml:"max_replica_count"`
	CPUHigh        *float64 `yaml:"cpu_threshold_high"`
	CPULow         *float64 `yaml:"cpu_threshold_low"`
	ConnectionHigh *int64   `yaml:"connection_threshold_high"`
}

type MetricsConfig struct {
	Source     string                  `yaml:"source"`
	Lookback   time.Duration           `yaml:"lookback"`
	Prometheus metric.PrometheusConfig `yaml:"prometheus"`
}

type ReconcilerConfig struct {
	MaxConcurrentOps int `yaml:"max_concurrent_ops"`
}

type ScalingConfig struct {
	Interval time.Duration `yaml:"interval"`
}

// ServerConfig is the webhook trigger server. A port of 0 disables it.
type ServerConfig struct {
	helpers.ServerConfig `yaml:",inline"`
	BasicAuth            models.BasicAuth       `yaml:"basic_auth"`
	RateLimit            models.RateLimitConfig `yaml:"rate_limit"`
}

type DBConfig struct {
	ScalingHistoryDB db.DatabaseConfig `yaml:"scaling_history_db"`
	LockDB           db.DatabaseConfig `yaml:"lock_db"`
}

type ScalingHistoryConfig struct {
	RefreshInterval time.Duration `yaml:"refresh_interval"`
	CutoffDuration  time.Duration `yaml:"cutoff_duration"`
}

type DBLockConfig struct {
	LockTTL           time.Duration `yaml:"ttl"`
	LockRetryInterval time.Duration `yaml:"retry_interval"`
}

type Config struct {
	Logging         helpers.LoggingConfig    `yaml:"logging"`
	Primary         PrimaryConfig            `yaml:"primary"`
	Policy          PolicyConfig             `yaml:"policy"`
	ReplicaTemplate cloudsql.ReplicaTemplate `yaml:"replica_template"`
	CloudSQL        cloudsql.Config          `yaml:"cloudsql"`
	Metrics         MetricsConfig            `yaml:"metrics"`
	Reconciler      ReconcilerConfig         `yaml:"reconciler"`
	Scaling         ScalingConfig            `yaml:"scaling"`
	Server          ServerConfig             `yaml:"server"`
	Health          helpers.HealthConfig     `yaml:"health"`
	DB              DBConfig                 `yaml:"db"`
	ScalingHistory  ScalingHistoryConfig     `yaml:"scaling_history"`
	DBLock          DBLockConfig             `yaml:"db_lock"`
}

func defaultConfig() Config {
	return Config{
		Logging:         helpers.LoggingConfig{Level: DefaultLoggingLevel},
		ReplicaTemplate: cloudsql.DefaultReplicaTemplate(),
		CloudSQL: cloudsql.Config{
			AdminAPIURL:      cloudsql.DefaultAdminAPIURL,
			MonitoringAPIURL: cloudsql.DefaultMonitoringAPIURL,
			MaxRetries:       DefaultMaxRetries,
			MaxRetryWait:     DefaultMaxRetryWait,
			RequestTimeout:   DefaultRequestTimeout,
		},
		Metrics: MetricsConfig{
			Source:   MetricsSourceCloudMonitoring,
			Lookback: DefaultMetricsLookback,
		},
		Reconciler: ReconcilerConfig{MaxConcurrentOps: DefaultMaxConcurrentOps},
		Scaling:    ScalingConfig{Interval: DefaultScalingInterval},
		Server: ServerConfig{
			RateLimit: models.RateLimitConfig{MaxAmount: 10, ValidDuration: time.Minute},
		},
		Health: helpers.HealthConfig{
			ServerConfig:          helpers.ServerConfig{Port: 8081},
			ReadinessCheckEnabled: true,
		},
		ScalingHistory: ScalingHistoryConfig{
			RefreshInterval: DefaultRefreshInterval,
			CutoffDuration:  DefaultCutoffDuration,
		},
		DBLock: DBLockConfig{
			LockTTL:           DefaultDBLockTTL,
			LockRetryInterval: DefaultDBLockRetryInterval,
		},
	}
}

func LoadConfig(filepath string, lookup configutil.LookupFunc) (*Config, error) {
	conf, err := configutil.GenericLoadConfig(filepath, lookup, defaultConfig, LoadEnvConfig)
	if err != nil {
		return nil, err
	}
	conf.Logging.Level = strings.ToLower(conf.Logging.Level)
	conf.Metrics.Source = strings.ToLower(conf.Metrics.Source)
	return conf, nil
}

// LoadEnvConfig overrides conf with every environment variable that is set.
// A variable that does not parse is an error naming the variable.
func LoadEnvConfig(conf *Config, lookup configutil.LookupFunc) error {
	lookup.SetString(EnvProjectID, &conf.Primary.ProjectID)
	lookup.SetString(EnvRegion, &conf.Primary.Region)
	lookup.SetString(EnvPrimaryInstanceName, &conf.Primary.InstanceName)

	if err := setPtr(lookup, EnvMinReplicaCount, &conf.Policy.MinReplicas, lookup.SetInt); err != nil {
		return err
	}
	if err := setPtr(lookup, EnvMaxReplicaCount, &conf.Policy.MaxReplicas, lookup.SetInt); err != nil {
		return err
	}
	if err := setPtr(lookup, EnvCPUThresholdHigh, &conf.Policy.CPUHigh, lookup.SetFloat); err != nil {
		return err
	}
	if err := setPtr(lookup, EnvCPUThresholdLow, &conf.Policy.CPULow, lookup.SetFloat); err != nil {
		return err
	}
	if err := setPtr(lookup, EnvConnectionThresholdHigh, &conf.Policy.ConnectionHigh, lookup.SetInt64); err != nil {
		return err
	}

	lookup.SetString(EnvLogLevel, &conf.Logging.Level)
	lookup.SetString(EnvMetricsSource, &conf.Metrics.Source)
	lookup.SetString(EnvPrometheusURL, &conf.Metrics.Prometheus.URL)
	lookup.SetString(EnvScalingHistoryDBURL, &conf.DB.ScalingHistoryDB.URL)
	lookup.SetString(EnvLockDBURL, &conf.DB.LockDB.URL)
	lookup.SetString(EnvReplicaTier, &conf.ReplicaTemplate.Tier)
	lookup.SetString(EnvReplicaDatabaseVersion, &conf.ReplicaTemplate.DatabaseVersion)

	var err error
	if conf.DB.ScalingHistoryDB.URL != "" {
		conf.DB.ScalingHistoryDB.URL, err = configutil.MaterializeDBURL(db.ScalingHistoryDb, conf.DB.ScalingHistoryDB.URL, lookup.LookupDBCertificates(envScalingHistoryDBCertPrefix))
		if err != nil {
			return err
		}
	}
	if conf.DB.LockDB.URL != "" {
		conf.DB.LockDB.URL, err = configutil.MaterializeDBURL(db.LockDb, conf.DB.LockDB.URL, lookup.LookupDBCertificates(envLockDBCertPrefix))
		if err != nil {
			return err
		}
	}
	return nil
}

// setPtr allocates *target only when the variable is set.
func setPtr[T any](lookup configutil.LookupFunc, key string, target **T, set func(string, *T) error) error {
	if !lookup.IsSet(key) {
		return nil
	}
	var value T
	if err := set(key, &value); err != nil {
		return err
	}
	*target = &value
	return nil
}

// ScalingPolicy returns the policy once Validate has passed.
func (c *Config) ScalingPolicy() models.ScalingPolicy {
	policy := models.ScalingPolicy{}
	if c.Policy.MinReplicas != nil {
		policy.MinReplicas = *c.Policy.MinReplicas
	}
	if c.Policy.MaxReplicas != nil {
		policy.MaxReplicas = *c.Policy.MaxReplicas
	}
	if c.Policy.CPUHigh != nil {
		policy.CPUHigh = *c.Policy.CPUHigh
	}
	if c.Policy.CPULow != nil {
		policy.CPULow = *c.Policy.CPULow
	}
	if c.Policy.ConnectionHigh != nil {
		policy.ConnectionHigh = *c.Policy.ConnectionHigh
	}
	return policy
}

func (c *Config) GetLogging() *helpers.LoggingConfig {
	return &c.Logging
}

func (c *Config) PrimaryRef() models.InstanceRef {
	return models.InstanceRef{Project: c.Primary.ProjectID, Instance: c.Primary.InstanceName}
}

func (c *Config) validatePrimary() error {
	if c.Primary.ProjectID == "" {
		return models.NewConfigurationError(EnvProjectID, "is not set")
	}
	if c.Primary.Region == "" {
		return models.NewConfigurationError(EnvRegion, "is not set")
	}
	if c.Primary.InstanceName == "" {
		return models.NewConfigurationError(EnvPrimaryInstanceName, "is not set")
	}
	return nil
}

func (c *Config) validatePolicy() error {
	missing := []struct {
		name  string
		isSet bool
	}{
		{EnvMinReplicaCount, c.Policy.MinReplicas != nil},
		{EnvMaxReplicaCount, c.Policy.MaxReplicas != nil},
		{EnvCPUThresholdHigh, c.Policy.CPUHigh != nil},
		{EnvCPUThresholdLow, c.Policy.CPULow != nil},
		{EnvConnectionThresholdHigh, c.Policy.ConnectionHigh != nil},
	}
	for _, m := range missing {
		if !m.isSet {
			return models.NewConfigurationError(m.name, "is not set")
		}
	}
	return c.ScalingPolicy().Validate()
}

func (c *Config) Validate() error {
	if err := c.validatePrimary(); err != nil {
		return err
	}
	if err := c.validatePolicy(); err != nil {
		return err
	}

	if _, err := helpers.ParseLogLevel(c.Logging.Level); err != nil {
		return models.NewConfigurationError("logging.level", err.Error())
	}

	if err := c.ReplicaTemplate.Validate(); err != nil {
		return err
	}
	if err := c.CloudSQL.Validate(); err != nil {
		return err
	}

	switch c.Metrics.Source {
	case MetricsSourceCloudMonitoring:
	case MetricsSourcePrometheus:
		if c.Metrics.Prometheus.URL == "" {
			return models.NewConfigurationError("metrics.prometheus.url", "is empty while metrics.source is prometheus")
		}
	default:
		return models.NewConfigurationError("metrics.source", fmt.Sprintf("must be one of %s or %s, got %q", MetricsSourceCloudMonitoring, MetricsSourcePrometheus, c.Metrics.Source))
	}
	if c.Metrics.Lookback <= 0 {
		return models.NewConfigurationError("metrics.lookback", "is less than or equal to 0")
	}

	if c.Reconciler.MaxConcurrentOps <= 0 {
		return models.NewConfigurationError("reconciler.max_concurrent_ops", "is less than or equal to 0")
	}
	if c.Scaling.Interval <= 0 {
		return models.NewConfigurationError("scaling.interval", "is less than or equal to 0")
	}

	if c.Server.Port != 0 {
		if c.Server.RateLimit.MaxAmount <= 0 {
			return models.NewConfigurationError("server.rate_limit.max_amount", "is less than or equal to 0")
		}
		if c.Server.RateLimit.ValidDuration <= 0 {
			return models.NewConfigurationError("server.rate_limit.valid_duration", "is less than or equal to 0")
		}
		hasUsername := c.Server.BasicAuth.Username != "" || c.Server.BasicAuth.UsernameHash != ""
		hasPassword := c.Server.BasicAuth.Password != "" || c.Server.BasicAuth.PasswordHash != ""
		if hasUsername != hasPassword {
			return models.NewConfigurationError("server.basic_auth", "needs both a username and a password")
		}
	}

	if err := c.Health.Validate(); err != nil {
		return err
	}

	if c.ScalingHistory.RefreshInterval <= 0 {
		return models.NewConfigurationError("scaling_history.refresh_interval", "is less than or equal to 0")
	}
	if c.ScalingHistory.CutoffDuration <= 0 {
		return models.NewConfigurationError("scaling_history.cutoff_duration", "is less than or equal to 0")
	}

	if c.DB.LockDB.URL != "" {
		if c.DBLock.LockTTL <= 0 {
			return models.NewConfigurationError("db_lock.ttl", "is less than or equal to 0")
		}
		if c.DBLock.LockRetryInterval <= 0 {
			return models.NewConfigurationError("db_lock.retry_interval", "is less than or equal to 0")
		}
	}

	return nil
}
