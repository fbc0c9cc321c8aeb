package instrumentation

import (
	"context"

	"github.com/grafana/grafana-plugin-sdk-go/backend/log"
)

// Logger wraps the plugin SDK logger. Callers pass key/value pairs and must
// never pass the API key.
type Logger struct {
	logger log.Logger
}

func NewLogger(logger log.Logger) *Logger {
	if logger == nil {
		logger = log.DefaultLogger
	}
	return &Logger{
		logger: logger,
	}
}

func (l *Logger) With(args ...interface{}) *Logger {
	return &Logger{
		logger: l.logger.With(args...),
	}
}

func (l *Logger) FromContext(ctx context.Context) *Logger {
	return &Logger{
		logger: l.logger.FromContext(ctx),
	}
}

func (l *Logger) Debug(msg string, args ...interface{}) {
	l.logger.Debug(msg, args...)
}

func (l *Logger) Info(msg string, args ...interface{}) {
	l.logger.Info(msg, args...)
}

func (l *Logger) Warn(msg string, args ...interface{}) {
	l.logger.Warn(msg, args...)
}

func (l *Logger) Error(msg string, args ...interface{}) {
	l.logger.Error(msg, args...)
}
