package config

import (
	"errors"
	"testing"

	"github.com/aleister1102/geoprobe/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cfg *GlobalConfig)
		wantErr string
	}{
		{"defaults", func(cfg *GlobalConfig) {}, ""},
		{"interactive mode", func(cfg *GlobalConfig) { cfg.Mode = "interactive" }, ""},
		{"unknown mode", func(cfg *GlobalConfig) { cfg.Mode = "automated" }, "rule 'mode'"},
		{"empty mode", func(cfg *GlobalConfig) { cfg.Mode = "" }, "rule 'required'"},
		{"bad log level", func(cfg *GlobalConfig) { cfg.LogConfig.LogLevel = "verbose" }, "rule 'loglevel'"},
		{"bad log format", func(cfg *GlobalConfig) { cfg.LogConfig.LogFormat = "xml" }, "rule 'logformat'"},
		{"bad target mode", func(cfg *GlobalConfig) { cfg.TargetingConfig.Mode = "fragment" }, "rule 'targetmode'"},
		{"bad codec", func(cfg *GlobalConfig) { cfg.StorageConfig.CompressionCodec = "lz4" }, "rule 'codec'"},
		{"zero concurrency", func(cfg *GlobalConfig) { cfg.ProbeConfig.Concurrency = 0 }, "Concurrency"},
		{"bad method", func(cfg *GlobalConfig) { cfg.ProbeConfig.Method = "DELETE" }, "rule 'oneof'"},
		{"bad webhook", func(cfg *GlobalConfig) { cfg.NotificationConfig.DiscordWebhookURL = "not a url" }, "rule 'url'"},
		{"history without path", func(cfg *GlobalConfig) {
			cfg.HistoryConfig.Enabled = true
			cfg.HistoryConfig.DBPath = ""
		}, "rule 'required_if'"},
		{"bad country length", func(cfg *GlobalConfig) { cfg.Countries = []string{"USA"} }, "rule 'len'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewDefaultGlobalConfig()
			tt.mutate(cfg)

			err := ValidateConfig(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.True(t, errors.Is(err, common.ErrInvalidConfiguration))
		})
	}
}

func TestValidateConfig_Nil(t *testing.T) {
	err := ValidateConfig(nil)
	assert.True(t, errors.Is(err, common.ErrInvalidConfiguration))
}
