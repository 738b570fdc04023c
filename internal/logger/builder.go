package logger

import (
	"io"
	stdlog "log"

	"github.com/aleister1102/geoprobe/internal/common"
	"github.com/rs/zerolog"
)

// LoggerBuilder provides fluent interface for building loggers
type LoggerBuilder struct {
	config    LoggerConfig
	factory   *WriterFactory
	converter *ConfigConverter
	err       error
}

// NewLoggerBuilder creates a new logger builder
func NewLoggerBuilder() *LoggerBuilder {
	return &LoggerBuilder{
		config:    DefaultLoggerConfig(),
		factory:   NewWriterFactory(),
		converter: NewConfigConverter(),
	}
}

// WithConfig sets the logger configuration
func (lb *LoggerBuilder) WithConfig(cfg FileLogConfig) *LoggerBuilder {
	loggerConfig, err := lb.converter.ConvertConfig(cfg)
	loggerConfig.ConsoleOutput = lb.config.ConsoleOutput
	lb.config = loggerConfig
	lb.err = err
	return lb
}

// WithRunID places the log file under the run's subdirectory
func (lb *LoggerBuilder) WithRunID(runID string) *LoggerBuilder {
	lb.config.RunID = runID
	return lb
}

// WithConsoleOutput redirects the console writer
func (lb *LoggerBuilder) WithConsoleOutput(out io.Writer) *LoggerBuilder {
	lb.config.ConsoleOutput = out
	return lb
}

// Build creates the logger instance
func (lb *LoggerBuilder) Build() (*Logger, error) {
	if lb.err != nil {
		return nil, lb.err
	}
	if err := lb.validateConfig(); err != nil {
		return nil, err
	}

	writers, closers := lb.createWriters()
	if len(writers) == 0 {
		return nil, common.NewValidationError("writers", 0, "no output writers configured")
	}

	multiWriter := zerolog.MultiLevelWriter(writers...)
	zerologInstance := zerolog.New(multiWriter).
		Level(lb.config.Level).
		With().
		Timestamp().
		Logger()

	// Per-run loggers are closed when the run ends, so only the process logger takes over stdlog.
	if lb.config.RunID == "" {
		lb.configureStandardLog(zerologInstance)
	}

	return &Logger{
		zerolog: zerologInstance,
		config:  lb.config,
		closers: closers,
	}, nil
}

func (lb *LoggerBuilder) validateConfig() error {
	if lb.config.EnableFile && lb.config.FilePath == "" {
		return common.NewValidationError("file_path", lb.config.FilePath, "file path required when file logging enabled")
	}

	if lb.config.MaxSizeMB <= 0 {
		return common.NewValidationError("max_size_mb", lb.config.MaxSizeMB, "max size must be positive")
	}

	return nil
}

func (lb *LoggerBuilder) createWriters() ([]io.Writer, []io.Closer) {
	var (
		writers []io.Writer
		closers []io.Closer
	)

	if lb.config.EnableConsole {
		writers = append(writers, lb.factory.CreateConsoleWriter(lb.config))
	}

	if lb.config.EnableFile {
		writer, closer := lb.factory.CreateFileWriter(lb.config)
		writers = append(writers, writer)
		closers = append(closers, closer)
	}

	return writers, closers
}

// configureStandardLog routes the standard log package through zerolog
func (lb *LoggerBuilder) configureStandardLog(logger zerolog.Logger) {
	stdlog.SetOutput(logger)
	stdlog.SetFlags(0)
}
