package config

import (
	"encoding/json"
	"path/filepath"

	"github.com/aleister1102/geoprobe/internal/common"
	"github.com/aleister1102/geoprobe/internal/logger"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// GlobalConfig contains all configuration sections for the application
type GlobalConfig struct {
	Mode               string               `json:"mode,omitempty" yaml:"mode,omitempty" validate:"required,mode"`
	TargetURL          string               `json:"target_url,omitempty" yaml:"target_url,omitempty"`
	Countries          []string             `json:"countries,omitempty" yaml:"countries,omitempty" validate:"dive,len=2"`
	ProbeConfig        ProbeConfig          `json:"probe_config,omitempty" yaml:"probe_config,omitempty"`
	TargetingConfig    TargetingConfig      `json:"targeting_config,omitempty" yaml:"targeting_config,omitempty"`
	SessionConfig      SessionConfig        `json:"session_config,omitempty" yaml:"session_config,omitempty"`
	StorageConfig      StorageConfig        `json:"storage_config,omitempty" yaml:"storage_config,omitempty"`
	HistoryConfig      HistoryConfig        `json:"history_config,omitempty" yaml:"history_config,omitempty"`
	ReporterConfig     ReporterConfig       `json:"reporter_config,omitempty" yaml:"reporter_config,omitempty"`
	NotificationConfig NotificationConfig   `json:"notification_config,omitempty" yaml:"notification_config,omitempty"`
	ProgressConfig     ProgressConfig       `json:"progress_config,omitempty" yaml:"progress_config,omitempty"`
	LogConfig          logger.FileLogConfig `json:"log_config,omitempty" yaml:"log_config,omitempty"`
}

// NewDefaultGlobalConfig creates a new GlobalConfig with default values
func NewDefaultGlobalConfig() *GlobalConfig {
	return &GlobalConfig{
		Mode:               ModeOnetime,
		ProbeConfig:        NewDefaultProbeConfig(),
		TargetingConfig:    NewDefaultTargetingConfig(),
		SessionConfig:      NewDefaultSessionConfig(),
		StorageConfig:      NewDefaultStorageConfig(),
		HistoryConfig:      NewDefaultHistoryConfig(),
		ReporterConfig:     NewDefaultReporterConfig(),
		NotificationConfig: NewDefaultNotificationConfig(),
		ProgressConfig:     NewDefaultProgressConfig(),
		LogConfig:          logger.NewDefaultFileLogConfig(),
	}
}

// LoadGlobalConfig loads the configuration from a file or default locations.
// The file is decoded over the defaults, so omitted keys keep their default
// values. YAML is used for .yaml and .yml, JSON otherwise.
func LoadGlobalConfig(providedPath string, logger zerolog.Logger) (*GlobalConfig, error) {
	cfg := NewDefaultGlobalConfig()

	if providedPath != "" && !fileExists(providedPath) {
		return nil, common.NewValidationError("config_file", providedPath, "config file does not exist")
	}

	filePath := GetConfigPath(providedPath)
	if filePath == "" {
		logger.Debug().Msg("No config file found, using defaults")
		return cfg, nil
	}

	fileManager := common.NewFileManager(logger)
	data, err := loadConfigFileContent(fileManager, filePath)
	if err != nil {
		return nil, common.WrapError(err, "failed to load config file content")
	}

	if err := parseConfigContent(data, filePath, cfg); err != nil {
		return nil, common.WrapError(err, "failed to parse config content")
	}

	logger.Debug().Str("path", filePath).Msg("Configuration loaded")
	return cfg, nil
}

func loadConfigFileContent(fileManager *common.FileManager, filePath string) ([]byte, error) {
	opts := common.DefaultFileReadOptions()
	opts.MaxSize = maxConfigFileSize

	return fileManager.ReadFile(filePath, opts)
}

func parseConfigContent(data []byte, filePath string, cfg *GlobalConfig) error {
	if isYAMLFile(filepath.Ext(filePath)) {
		return parseYAMLConfig(data, filePath, cfg)
	}
	return parseJSONConfig(data, filePath, cfg)
}

func isYAMLFile(ext string) bool {
	return ext == ".yaml" || ext == ".yml"
}

func parseYAMLConfig(data []byte, filePath string, cfg *GlobalConfig) error {
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return common.WrapErrorf(err, "failed to unmarshal YAML from '%s'", filePath)
	}
	return nil
}

func parseJSONConfig(data []byte, filePath string, cfg *GlobalConfig) error {
	if err := json.Unmarshal(data, cfg); err != nil {
		return common.WrapErrorf(err, "failed to unmarshal JSON from '%s'", filePath)
	}
	return nil
}
