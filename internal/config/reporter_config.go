package config

// ReporterConfig defines how the summary table is rendered
type ReporterConfig struct {
	Color               bool `json:"color" yaml:"color"`
	MaxDescriptionWidth int  `json:"max_description_width,omitempty" yaml:"max_description_width,omitempty" validate:"min=0"`
}

// NewDefaultReporterConfig creates default reporter configuration
func NewDefaultReporterConfig() ReporterConfig {
	return ReporterConfig{
		Color:               true,
		MaxDescriptionWidth: DefaultReporterMaxDescriptionWidth,
	}
}
