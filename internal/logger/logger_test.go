package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_DefaultLogger(t *testing.T) {
	log, err := New(NewDefaultFileLogConfig())
	require.NoError(t, err)
	assert.Equal(t, zerolog.InfoLevel, log.GetLevel())
}

func TestNew_InvalidLevel(t *testing.T) {
	cfg := NewDefaultFileLogConfig()
	cfg.LogLevel = "verbose"

	_, err := New(cfg)
	assert.Error(t, err)
}

func TestLoggerBuilder_JSONConsoleOutput(t *testing.T) {
	var out bytes.Buffer
	cfg := NewDefaultFileLogConfig()
	cfg.LogFormat = "json"
	cfg.LogLevel = "debug"

	built, err := NewLoggerBuilder().WithConfig(cfg).WithConsoleOutput(&out).Build()
	require.NoError(t, err)

	log := built.GetZerolog()
	log.Debug().Str("component", "Test").Msg("hello")

	assert.Contains(t, out.String(), `"message":"hello"`)
	assert.Contains(t, out.String(), `"component":"Test"`)
	assert.Equal(t, FormatJSON, built.Config().Format)
}

func TestNewWithRunID_WritesUnderRunsDir(t *testing.T) {
	dir := t.TempDir()
	cfg := NewDefaultFileLogConfig()
	cfg.LogFile = filepath.Join(dir, "geoprobe.log")
	cfg.LogFormat = "json"

	built, err := NewLoggerBuilder().
		WithConfig(cfg).
		WithConsoleOutput(&bytes.Buffer{}).
		WithRunID("20240101-120000").
		Build()
	require.NoError(t, err)

	log := built.GetZerolog()
	log.Info().Msg("run started")

	data, err := os.ReadFile(filepath.Join(dir, "runs", "20240101-120000", "geoprobe.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "run started")
}

func TestWriterFactory_BuildLogPath(t *testing.T) {
	wf := NewWriterFactory()
	tests := []struct {
		name   string
		config LoggerConfig
		want   string
	}{
		{"no run id", LoggerConfig{FilePath: "logs/app.log", UseSubdirs: true}, "logs/app.log"},
		{"subdirs disabled", LoggerConfig{FilePath: "logs/app.log", RunID: "r1"}, "logs/app.log"},
		{"run id", LoggerConfig{FilePath: "logs/app.log", RunID: "r1", UseSubdirs: true}, filepath.Join("logs", "runs", "r1", "app.log")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, wf.BuildLogPath(tt.config))
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    zerolog.Level
		wantErr bool
	}{
		{"WARN", zerolog.WarnLevel, false},
		{" debug ", zerolog.DebugLevel, false},
		{"", zerolog.InfoLevel, false},
		{"verbose", zerolog.InfoLevel, true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			level, err := parseLevel(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.want, level)
		})
	}
}

func TestParseFormat(t *testing.T) {
	assert.Equal(t, FormatJSON, parseFormat("json"))
	assert.Equal(t, FormatText, parseFormat("Text"))
	assert.Equal(t, FormatConsole, parseFormat("unknown"))
	assert.Equal(t, "console", FormatConsole.String())
}

func TestConfigConverter_Defaults(t *testing.T) {
	converted, err := NewConfigConverter().ConvertConfig(FileLogConfig{LogFile: "app.log"})
	require.NoError(t, err)
	assert.True(t, converted.EnableFile)
	assert.Equal(t, DefaultMaxLogSizeMB, converted.MaxSizeMB)
	assert.Equal(t, DefaultMaxLogBackups, converted.MaxBackups)
}

func TestNewWithRunID_Close(t *testing.T) {
	dir := t.TempDir()
	cfg := NewDefaultFileLogConfig()
	cfg.LogFile = filepath.Join(dir, "geoprobe.log")
	cfg.LogFormat = "json"

	runLogger, err := NewWithRunID(cfg, "20240101-130000")
	require.NoError(t, err)
	require.Len(t, runLogger.closers, 1)

	runLogger.GetZerolog().Info().Msg("probing")
	require.NoError(t, runLogger.Close())
	assert.Empty(t, runLogger.closers)
	assert.NoError(t, runLogger.Close())

	data, err := os.ReadFile(filepath.Join(dir, "runs", "20240101-130000", "geoprobe.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "probing")
}

func TestLogger_CloseWithoutFile(t *testing.T) {
	built, err := NewLoggerBuilder().WithConsoleOutput(&bytes.Buffer{}).Build()
	require.NoError(t, err)
	assert.NoError(t, built.Close())
}
