package helpers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"sync"
	"time"

	"code.cloudfoundry.org/lager/v3"
)

const (
	postgresDbURLPattern = `^(postgres|postgresql):\/\/(.+):(.+)@([\da-zA-Z\.-]+)(:[\d]{4,5})?\/(.+)`
	mysqlDSNPattern      = `^([^:/@\s]+):([^@\s]+)@(tcp|unix)\((.*)$`
)

// TimeLogFormat adds a human readable timestamp to lager's epoch based one.
type TimeLogFormat struct {
	lager.LogFormat
	LogTime string `json:"log_time"`
}

func NewTimeLogFormat(log lager.LogFormat) TimeLogFormat {
	floatTime, err := strconv.ParseFloat(log.Timestamp, 64)
	if err != nil {
		floatTime = 0.0
	}
	return TimeLogFormat{
		LogTime:   time.Unix(int64(floatTime), 0).Format(time.RFC3339),
		LogFormat: log,
	}
}

func (tlf TimeLogFormat) ToJSON() []byte {
	content, err := json.Marshal(tlf)
	var unSupportedErr *json.UnsupportedTypeError
	var marshalErr *json.MarshalerError
	if err != nil {
		if errors.As(err, &unSupportedErr) || errors.As(err, &marshalErr) {
			tlf.Data = map[string]interface{}{"lager serialisation error": err.Error(), "data_dump": fmt.Sprintf("%#v", tlf.Data)}
			content, err = json.Marshal(tlf)
		}
		if err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "%s", err.Error())
			content = []byte("{}")
		}
	}
	return content
}

// JSONRedacterWithURLCred redacts matching keys and values like
// lager.JSONRedacter and also masks the password part of database urls.
type JSONRedacterWithURLCred struct {
	jsonRedacter *lager.JSONRedacter
	urlMatchers  []urlCredMatcher
}

type urlCredMatcher struct {
	pattern     *regexp.Regexp
	replacement string
}

func NewJSONRedacterWithURLCred(keyPatterns []string, valuePatterns []string) (*JSONRedacterWithURLCred, error) {
	jsonRedacter, err := lager.NewJSONRedacter(keyPatterns, valuePatterns)
	if err != nil {
		return nil, err
	}
	postgresMatcher, err := regexp.Compile(postgresDbURLPattern)
	if err != nil {
		return nil, err
	}
	mysqlMatcher, err := regexp.Compile(mysqlDSNPattern)
	if err != nil {
		return nil, err
	}
	return &JSONRedacterWithURLCred{
		jsonRedacter: jsonRedacter,
		urlMatchers: []urlCredMatcher{
			{pattern: postgresMatcher, replacement: `$1://$2:*REDACTED*@$4$5/$6`},
			{pattern: mysqlMatcher, replacement: `$1:*REDACTED*@$3($4`},
		},
	}, nil
}

func (r JSONRedacterWithURLCred) Redact(data []byte) []byte {
	if len(data) == 0 {
		return data
	}
	var jsonBlob interface{}
	err := json.Unmarshal(data, &jsonBlob)
	if err != nil {
		return errorToBytes(err)
	}
	jsonBlob = r.redactValue(jsonBlob)

	data, err = json.Marshal(jsonBlob)
	if err != nil {
		return errorToBytes(err)
	}
	return r.jsonRedacter.Redact(data)
}

func (r JSONRedacterWithURLCred) redactValue(data interface{}) interface{} {
	switch v := data.(type) {
	case []interface{}:
		for i := range v {
			v[i] = r.redactValue(v[i])
		}
	case map[string]interface{}:
		for k, val := range v {
			v[k] = r.redactValue(val)
		}
	case string:
		for _, m := range r.urlMatchers {
			if m.pattern.MatchString(v) {
				return m.pattern.ReplaceAllString(v, m.replacement)
			}
		}
	}
	return data
}

func errorToBytes(err error) []byte {
	var content []byte
	var errType *json.UnsupportedTypeError
	if errors.As(err, &errType) {
		content, err = json.Marshal(map[string]interface{}{"lager serialisation error": errType.Error()})
	}
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "%s", err.Error())
	}
	return content
}

type redactingWriterWithURLCredSink struct {
	writer      io.Writer
	minLogLevel lager.LogLevel
	writeL      sync.Mutex
	redacter    *JSONRedacterWithURLCred
}

func NewRedactingWriterWithURLCredSink(writer io.Writer, minLogLevel lager.LogLevel, keyPatterns []string, valuePatterns []string) (lager.Sink, error) {
	redacter, err := NewJSONRedacterWithURLCred(keyPatterns, valuePatterns)
	if err != nil {
		return nil, err
	}
	return &redactingWriterWithURLCredSink{
		writer:      writer,
		minLogLevel: minLogLevel,
		redacter:    redacter,
	}, nil
}

func (sink *redactingWriterWithURLCredSink) Log(log lager.LogFormat) {
	if log.LogLevel < sink.minLogLevel {
		return
	}
	line := sink.redacter.Redact(NewTimeLogFormat(log).ToJSON())

	sink.writeL.Lock()
	defer sink.writeL.Unlock()
	_, _ = sink.writer.Write(line)
	_, _ = sink.writer.Write([]byte("\n"))
}
