package helpers

import (
	"context"
	"io"
	"log/slog"
	"time"

	"code.cloudfoundry.org/lager/v3"
)

type textWriterSink struct {
	logger *slog.Logger
}

var _ lager.Sink = &textWriterSink{}

func NewTextWriterSink(writer io.Writer, logLevel lager.LogLevel) lager.Sink {
	opts := &slog.HandlerOptions{
		Level: toSlogLevel(logLevel),
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.String("time", a.Value.Time().Format(time.RFC3339))
			}
			return a
		},
	}
	return &textWriterSink{logger: slog.New(slog.NewTextHandler(writer, opts))}
}

func toSlogLevel(l lager.LogLevel) slog.Level {
	switch l {
	case lager.DEBUG:
		return slog.LevelDebug
	case lager.ERROR, lager.FATAL:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Log lets slog take its own timestamp; lager only hands over a formatted one.
func (sink *textWriterSink) Log(log lager.LogFormat) {
	attrs := make([]slog.Attr, 0, len(log.Data)+1)
	if log.Source != "" {
		attrs = append(attrs, slog.String("source", log.Source))
	}
	for key, value := range log.Data {
		attrs = append(attrs, slog.Any(key, value))
	}
	sink.logger.LogAttrs(context.Background(), toSlogLevel(log.LogLevel), log.Message, attrs...)
}
