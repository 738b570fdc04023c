package config

// HistoryConfig defines the SQLite run ledger
type HistoryConfig struct {
	Enabled bool   `json:"enabled" yaml:"enabled"`
	DBPath  string `json:"db_path,omitempty" yaml:"db_path,omitempty" validate:"required_if=Enabled true"`
}

// NewDefaultHistoryConfig creates default history configuration
func NewDefaultHistoryConfig() HistoryConfig {
	return HistoryConfig{
		Enabled: false,
		DBPath:  DefaultHistoryDBPath,
	}
}
