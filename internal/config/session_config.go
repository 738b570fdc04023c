package config

// SessionConfig controls where run directories are created
type SessionConfig struct {
	BaseDir      string `json:"base_dir,omitempty" yaml:"base_dir,omitempty" validate:"required"`
	UniqueSuffix bool   `json:"unique_suffix" yaml:"unique_suffix"`
}

// NewDefaultSessionConfig creates default session configuration
func NewDefaultSessionConfig() SessionConfig {
	return SessionConfig{
		BaseDir:      DefaultSessionBaseDir,
		UniqueSuffix: true,
	}
}
