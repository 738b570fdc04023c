package logger

import (
	"io"

	"github.com/rs/zerolog"

	"github.com/aleister1102/geoprobe/internal/common"
)

// Logger represents the main logger with configuration
type Logger struct {
	zerolog zerolog.Logger
	config  LoggerConfig
	closers []io.Closer
}

// GetZerolog returns the underlying zerolog instance
func (l *Logger) GetZerolog() *zerolog.Logger {
	return &l.zerolog
}

// Config returns the resolved configuration
func (l *Logger) Config() LoggerConfig {
	return l.config
}

// Close releases the log files opened by the logger. Writing after Close is
// not supported.
func (l *Logger) Close() error {
	errs := make([]error, 0, len(l.closers))
	for _, c := range l.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	l.closers = nil
	return common.CombineErrors(errs)
}

// New creates a process-wide logger
func New(cfg FileLogConfig) (zerolog.Logger, error) {
	logger, err := NewLoggerBuilder().WithConfig(cfg).Build()
	if err != nil {
		return zerolog.Logger{}, err
	}
	return *logger.GetZerolog(), nil
}

// NewWithRunID creates a logger whose file output lives under the run's
// subdirectory. The caller closes it once the run is over.
func NewWithRunID(cfg FileLogConfig, runID string) (*Logger, error) {
	return NewLoggerBuilder().
		WithConfig(cfg).
		WithRunID(runID).
		Build()
}
