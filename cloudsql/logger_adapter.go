package cloudsql

import (
	"strings"

	"code.cloudfoundry.org/lager/v3"
	"github.com/hashicorp/go-retryablehttp"
)

var _ retryablehttp.LeveledLogger = RetryLogger{}

// RetryLogger records the Cloud SQL API retry loop in lager. Messages such as
// "retrying request" become events like "retrying-request".
type RetryLogger struct{ lager.Logger }

func (l RetryLogger) Error(msg string, keysAndValues ...interface{}) {
	l.Logger.Error(eventName(msg), nil, retryData(keysAndValues))
}

func (l RetryLogger) Info(msg string, keysAndValues ...interface{}) {
	l.Logger.Info(eventName(msg), retryData(keysAndValues))
}

func (l RetryLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.Logger.Debug(eventName(msg), retryData(keysAndValues))
}

// Warn is logged at info with a level field since lager has no warn level.
func (l RetryLogger) Warn(msg string, keysAndValues ...interface{}) {
	data := retryData(keysAndValues)
	data["level"] = "warn"
	l.Logger.Info(eventName(msg), data)
}

func eventName(msg string) string {
	return strings.Join(strings.Fields(strings.ToLower(strings.Trim(msg, " .:"))), "-")
}

// retryData pairs up keys and values. Non-string keys and a trailing key
// without a value are dropped.
func retryData(keysAndValues []interface{}) lager.Data {
	data := lager.Data{}
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		if key, ok := keysAndValues[i].(string); ok {
			data[key] = keysAndValues[i+1]
		}
	}
	return data
}
