package main

import (
	"bytes"
	"flag"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aleister1102/geoprobe/internal/config"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected AppFlags
	}{
		{
			name:     "no flags",
			args:     nil,
			expected: AppFlags{},
		},
		{
			name: "long flags",
			args: []string{"-url", "https://example.com/{code}", "-config", "cfg.yaml", "-countries", "us,de", "-mode", "Interactive"},
			expected: AppFlags{
				TargetURL:        "https://example.com/{code}",
				GlobalConfigFile: "cfg.yaml",
				Countries:        "us,de",
				Mode:             "interactive",
			},
		},
		{
			name: "aliases",
			args: []string{"-u", "https://example.com", "-c", "cfg.json", "-m", "onetime"},
			expected: AppFlags{
				TargetURL:        "https://example.com",
				GlobalConfigFile: "cfg.json",
				Mode:             "onetime",
			},
		},
		{
			name:     "long form wins over alias",
			args:     []string{"-u", "https://alias.example.com", "-url", "https://long.example.com"},
			expected: AppFlags{TargetURL: "https://long.example.com"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flags, err := ParseFlags(tt.args, &bytes.Buffer{})
			require.NoError(t, err)
			assert.Equal(t, tt.expected, flags)
		})
	}
}

func TestParseFlags_Errors(t *testing.T) {
	var out bytes.Buffer

	_, err := ParseFlags([]string{"-unknown"}, &out)
	require.Error(t, err)
	assert.Contains(t, out.String(), "flag provided but not defined")

	_, err = ParseFlags([]string{"-h"}, &out)
	assert.ErrorIs(t, err, flag.ErrHelp)
}

func TestAppFlags_Apply(t *testing.T) {
	cfg := config.NewDefaultGlobalConfig()
	cfg.TargetURL = "https://from-config.example.com"

	AppFlags{}.Apply(cfg)
	assert.Equal(t, config.ModeOnetime, cfg.Mode)
	assert.Equal(t, "https://from-config.example.com", cfg.TargetURL)
	assert.Empty(t, cfg.Countries)

	AppFlags{
		TargetURL: "https://from-flag.example.com",
		Countries: "us, de,,fr",
		Mode:      config.ModeInteractive,
	}.Apply(cfg)
	assert.Equal(t, config.ModeInteractive, cfg.Mode)
	assert.Equal(t, "https://from-flag.example.com", cfg.TargetURL)
	assert.Equal(t, []string{"us", "de", "fr"}, cfg.Countries)
}
