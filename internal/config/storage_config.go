package config

// StorageConfig defines configuration for columnar export of outcomes
type StorageConfig struct {
	ParquetExport    bool   `json:"parquet_export" yaml:"parquet_export"`
	CompressionCodec string `json:"compression_codec,omitempty" yaml:"compression_codec,omitempty" validate:"omitempty,codec"`
}

// NewDefaultStorageConfig creates default storage configuration
func NewDefaultStorageConfig() StorageConfig {
	return StorageConfig{
		ParquetExport:    false,
		CompressionCodec: DefaultStorageCompressionCodec,
	}
}
