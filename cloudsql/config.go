package cloudsql

import (
	"net/url"
	"strings"
	"time"

	"github.com/cloudsql-replica-autoscaler/autoscaler/models"
)

const (
	DefaultAdminAPIURL      = "https://sqladmin.googleapis.com"
	DefaultMonitoringAPIURL = "https://monitoring.googleapis.com"
	DefaultDatabaseVersion  = "MYSQL_8_0"
	DefaultTier             = "db-n1-standard-1"

	ManagedByLabel      = "managed-by"
	ManagedByLabelValue = "replica-autoscaler"
)

type Config struct {
	AdminAPIURL      string        `yaml:"admin_api_url"`
	MonitoringAPIURL string        `yaml:"monitoring_api_url"`
	MaxRetries       int           `yaml:"max_retries"`
	MaxRetryWait     time.Duration `yaml:"max_retry_wait"`
	SkipAuth         bool          `yaml:"skip_auth"`
	RequestTimeout   time.Duration `yaml:"request_timeout"`
}

// ReplicaTemplate holds the settings every replica created by the
// autoscaler is provisioned with.
type ReplicaTemplate struct {
	Tier            string `yaml:"tier"`
	DatabaseVersion string `yaml:"database_version"`
	IPv4Enabled     bool   `yaml:"ipv4_enabled"`
	RequireSSL      bool   `yaml:"require_ssl"`
}

func DefaultReplicaTemplate() ReplicaTemplate {
	return ReplicaTemplate{
		Tier:            DefaultTier,
		DatabaseVersion: DefaultDatabaseVersion,
		IPv4Enabled:     false,
		RequireSSL:      true,
	}
}

func validateAPIURL(name string, value string) (string, error) {
	if value == "" {
		return "", models.NewConfigurationError("cloudsql."+name, "is empty")
	}
	apiURL, err := url.Parse(value)
	if err != nil {
		return "", models.NewConfigurationError("cloudsql."+name, "is not a valid url")
	}
	scheme := strings.ToLower(apiURL.Scheme)
	if scheme != "http" && scheme != "https" {
		return "", models.NewConfigurationError("cloudsql."+name, "scheme is invalid")
	}
	apiURL.Path = strings.TrimSuffix(apiURL.Path, "/")
	return apiURL.String(), nil
}

func (conf *Config) Validate() error {
	var err error
	if conf.AdminAPIURL, err = validateAPIURL("admin_api_url", conf.AdminAPIURL); err != nil {
		return err
	}
	if conf.MonitoringAPIURL, err = validateAPIURL("monitoring_api_url", conf.MonitoringAPIURL); err != nil {
		return err
	}
	if conf.MaxRetries < 0 {
		return models.NewConfigurationError("cloudsql.max_retries", "is less than 0")
	}
	if conf.RequestTimeout < 0 {
		return models.NewConfigurationError("cloudsql.request_timeout", "is less than 0")
	}
	return nil
}

func (t ReplicaTemplate) Validate() error {
	if t.Tier == "" {
		return models.NewConfigurationError("replica_template.tier", "is empty")
	}
	if t.DatabaseVersion == "" {
		return models.NewConfigurationError("replica_template.database_version", "is empty")
	}
	return nil
}
