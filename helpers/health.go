package helpers

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/cloudsql-replica-autoscaler/autoscaler/models"
)

type HealthConfig struct {
	ServerConfig          ServerConfig     `yaml:"server_config" json:"server_config"`
	BasicAuth             models.BasicAuth `yaml:"basic_auth" json:"basic_auth"`
	ReadinessCheckEnabled bool             `yaml:"readiness_enabled" json:"readiness_enabled"`
}

func (c *HealthConfig) Validate() error {
	if c.BasicAuth.Username != "" && c.BasicAuth.UsernameHash != "" {
		return fmt.Errorf("%w: both healthcheck username and healthcheck username_hash are set, please provide only one of them", models.ErrConfiguration)
	}

	if c.BasicAuth.Password != "" && c.BasicAuth.PasswordHash != "" {
		return fmt.Errorf("%w: both healthcheck password and healthcheck password_hash are provided, please provide only one of them", models.ErrConfiguration)
	}

	if c.BasicAuth.UsernameHash != "" {
		if _, err := bcrypt.Cost([]byte(c.BasicAuth.UsernameHash)); err != nil {
			return fmt.Errorf("%w: healthcheck username_hash is not a valid bcrypt hash", models.ErrConfiguration)
		}
	}

	if c.BasicAuth.PasswordHash != "" {
		if _, err := bcrypt.Cost([]byte(c.BasicAuth.PasswordHash)); err != nil {
			return fmt.Errorf("%w: healthcheck password_hash is not a valid bcrypt hash", models.ErrConfiguration)
		}
	}

	hasUsername := c.BasicAuth.Username != "" || c.BasicAuth.UsernameHash != ""
	hasPassword := c.BasicAuth.Password != "" || c.BasicAuth.PasswordHash != ""
	if !hasUsername && hasPassword {
		return fmt.Errorf("%w: healthcheck username is empty", models.ErrConfiguration)
	}
	if hasUsername && !hasPassword {
		return fmt.Errorf("%w: healthcheck password is empty", models.ErrConfiguration)
	}

	return nil
}
