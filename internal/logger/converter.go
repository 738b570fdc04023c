package logger

import (
	"strings"

	"github.com/rs/zerolog"

	"github.com/aleister1102/geoprobe/internal/common"
)

// formatsByName maps the accepted log_format values. Unknown names fall back to console.
var formatsByName = map[string]LogFormat{
	"json":    FormatJSON,
	"console": FormatConsole,
	"text":    FormatText,
}

// ConfigConverter converts FileLogConfig to LoggerConfig
type ConfigConverter struct{}

// NewConfigConverter creates a new config converter
func NewConfigConverter() *ConfigConverter {
	return &ConfigConverter{}
}

// ConvertConfig converts application config to logger config. An unknown
// level falls back to info and is reported through the returned error.
func (cc *ConfigConverter) ConvertConfig(cfg FileLogConfig) (LoggerConfig, error) {
	level, err := parseLevel(cfg.LogLevel)

	return LoggerConfig{
		Level:         level,
		Format:        parseFormat(cfg.LogFormat),
		EnableConsole: true,
		EnableFile:    cfg.LogFile != "",
		FilePath:      cfg.LogFile,
		MaxSizeMB:     positiveOr(cfg.MaxLogSizeMB, DefaultMaxLogSizeMB),
		MaxBackups:    positiveOr(cfg.MaxLogBackups, DefaultMaxLogBackups),
		UseSubdirs:    cfg.PerRunFiles,
	}, err
}

// parseLevel reads a log_level value; empty means info.
func parseLevel(raw string) (zerolog.Level, error) {
	name := strings.ToLower(strings.TrimSpace(raw))
	if name == "" {
		return zerolog.InfoLevel, nil
	}
	level, err := zerolog.ParseLevel(name)
	if err != nil {
		return zerolog.InfoLevel, common.WrapError(err, "invalid log level")
	}
	return level, nil
}

func parseFormat(raw string) LogFormat {
	if format, ok := formatsByName[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return format
	}
	return FormatConsole
}

func positiveOr(value, fallback int) int {
	if value <= 0 {
		return fallback
	}
	return value
}
