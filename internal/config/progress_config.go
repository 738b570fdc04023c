package config

import "time"

// ProgressConfig contains configuration for progress display
type ProgressConfig struct {
	// DisplayInterval is how often to display progress updates (in seconds)
	DisplayInterval int `json:"display_interval,omitempty" yaml:"display_interval,omitempty" validate:"min=1,max=60"`

	// EnableProgress enables or disables progress display
	EnableProgress bool `json:"enable_progress" yaml:"enable_progress"`

	// ShowETAEstimation enables or disables ETA calculation and display
	ShowETAEstimation bool `json:"show_eta_estimation" yaml:"show_eta_estimation"`

	// LogEachCode logs a line per completed country code
	LogEachCode bool `json:"log_each_code" yaml:"log_each_code"`
}

// NewDefaultProgressConfig creates a new ProgressConfig with default values
func NewDefaultProgressConfig() ProgressConfig {
	return ProgressConfig{
		DisplayInterval:   DefaultProgressDisplayIntervalSecs,
		EnableProgress:    true,
		ShowETAEstimation: true,
		LogEachCode:       true,
	}
}

// GetDisplayIntervalDuration returns the display interval as time.Duration
func (pc *ProgressConfig) GetDisplayIntervalDuration() time.Duration {
	return time.Duration(pc.DisplayInterval) * time.Second
}
