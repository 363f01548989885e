package models

import (
	"errors"
	"fmt"
)

var (
	ErrConfiguration         = errors.New("configuration error")
	ErrObservabilityDegraded = errors.New("observability degraded")
)

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ConfigurationError is returned for invalid or missing settings. It is
// always fatal: nothing may touch the infrastructure after one is raised.
type ConfigurationError struct {
	Field   string
	Message string
}

func NewConfigurationError(field, message string) *ConfigurationError {
	return &ConfigurationError{Field: field, Message: message}
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("Configuration error: %s %s", e.Field, e.Message)
}

func (e *ConfigurationError) Unwrap() error {
	return ErrConfiguration
}

// LifecycleOpFailure is the rejection of a single create or delete request.
// It is recorded against the replica and never aborts the rest of a batch.
type LifecycleOpFailure struct {
	Op  LifecycleOp
	Err error
}

func (e *LifecycleOpFailure) Error() string {
	return fmt.Sprintf("failed to %s replica %s: %s", e.Op.Type, e.Op.ReplicaName, e.Err)
}

func (e *LifecycleOpFailure) Unwrap() error {
	return e.Err
}
