package configutil

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cloudsql-replica-autoscaler/autoscaler/models"
)

// LookupFunc reads one environment variable. os.LookupEnv is the production
// implementation.
type LookupFunc func(key string) (string, bool)

var OSLookup LookupFunc = os.LookupEnv

// MapLookup serves variables from a map.
func MapLookup(vars map[string]string) LookupFunc {
	return func(key string) (string, bool) {
		value, ok := vars[key]
		return value, ok
	}
}

// lookup treats a variable that is set to blanks as unset.
func (l LookupFunc) lookup(key string) (string, bool) {
	if l == nil {
		return "", false
	}
	value, ok := l(key)
	value = strings.TrimSpace(value)
	return value, ok && value != ""
}

func (l LookupFunc) IsSet(key string) bool {
	_, ok := l.lookup(key)
	return ok
}

func (l LookupFunc) SetString(key string, target *string) {
	if value, ok := l.lookup(key); ok {
		*target = value
	}
}

func (l LookupFunc) SetInt(key string, target *int) error {
	value, ok := l.lookup(key)
	if !ok {
		return nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return models.NewConfigurationError(key, fmt.Sprintf("must be an integer, got %q", value))
	}
	*target = parsed
	return nil
}

func (l LookupFunc) SetInt64(key string, target *int64) error {
	value, ok := l.lookup(key)
	if !ok {
		return nil
	}
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return models.NewConfigurationError(key, fmt.Sprintf("must be an integer, got %q", value))
	}
	*target = parsed
	return nil
}

func (l LookupFunc) SetFloat(key string, target *float64) error {
	value, ok := l.lookup(key)
	if !ok {
		return nil
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return models.NewConfigurationError(key, fmt.Sprintf("must be a number, got %q", value))
	}
	*target = parsed
	return nil
}

func (l LookupFunc) SetBool(key string, target *bool) error {
	value, ok := l.lookup(key)
	if !ok {
		return nil
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return models.NewConfigurationError(key, fmt.Sprintf("must be a boolean, got %q", value))
	}
	*target = parsed
	return nil
}

func (l LookupFunc) SetDuration(key string, target *time.Duration) error {
	value, ok := l.lookup(key)
	if !ok {
		return nil
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return models.NewConfigurationError(key, fmt.Sprintf("must be a duration, got %q", value))
	}
	*target = parsed
	return nil
}
