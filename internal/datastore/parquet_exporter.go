package datastore

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/rs/zerolog"

	"github.com/aleister1102/geoprobe/internal/common"
	"github.com/aleister1102/geoprobe/internal/models"
)

const (
	// ParquetFileName is written to the session root.
	ParquetFileName = "outcomes.parquet"

	opExportParquet = "export_parquet"
)

// ParquetExporterConfig holds configuration for ParquetExporter
type ParquetExporterConfig struct {
	CompressionType string
}

// DefaultParquetExporterConfig returns default configuration
func DefaultParquetExporterConfig() ParquetExporterConfig {
	return ParquetExporterConfig{
		CompressionType: "zstd",
	}
}

// ExportResult contains the result of an export
type ExportResult struct {
	FilePath       string
	RecordsWritten int
	FileSize       int64
	WriteTime      time.Duration
}

// ParquetExporter writes all outcomes of a run into one Parquet file.
type ParquetExporter struct {
	config ParquetExporterConfig
	logger zerolog.Logger
}

// NewParquetExporter creates a ParquetExporter.
func NewParquetExporter(config ParquetExporterConfig, logger zerolog.Logger) *ParquetExporter {
	if config.CompressionType == "" {
		config.CompressionType = DefaultParquetExporterConfig().CompressionType
	}
	return &ParquetExporter{
		config: config,
		logger: logger.With().Str("component", "ParquetExporter").Logger(),
	}
}

// Export writes outcomes to <session root>/outcomes.parquet. Errors are
// non-fatal *common.StorageError values.
func (e *ParquetExporter) Export(ctx context.Context, session *models.RunSession, outcomes []models.ProbeOutcome) (*ExportResult, error) {
	startTime := time.Now()
	filePath := filepath.Join(session.RootPath, ParquetFileName)

	if err := ctx.Err(); err != nil {
		return nil, common.NewStorageError(opExportParquet, filePath, common.WrapError(err, "export cancelled"))
	}

	records := make([]ParquetOutcome, 0, len(outcomes))
	for _, o := range outcomes {
		records = append(records, toParquetOutcome(session.ID, o))
	}

	written, err := e.writeFile(filePath, records)
	if err != nil {
		return nil, common.NewStorageError(opExportParquet, filePath, err)
	}

	var fileSize int64
	if info, statErr := os.Stat(filePath); statErr == nil {
		fileSize = info.Size()
	}

	result := &ExportResult{
		FilePath:       filePath,
		RecordsWritten: written,
		FileSize:       fileSize,
		WriteTime:      time.Since(startTime),
	}

	e.logger.Info().
		Str("file_path", result.FilePath).
		Int("records_written", result.RecordsWritten).
		Dur("write_time", result.WriteTime).
		Msg("Exported outcomes to Parquet file")

	return result, nil
}

func (e *ParquetExporter) writeFile(filePath string, records []ParquetOutcome) (int, error) {
	file, err := os.Create(filePath)
	if err != nil {
		return 0, common.WrapError(err, "failed to create parquet file: "+filePath)
	}
	defer file.Close()

	writer := parquet.NewGenericWriter[ParquetOutcome](file, e.compressionOption())

	written, err := writer.Write(records)
	if err != nil {
		_ = writer.Close()
		return 0, common.WrapError(err, "failed to write outcomes to parquet file")
	}
	if err := writer.Close(); err != nil {
		return 0, common.WrapError(err, "failed to finalize parquet file")
	}

	return written, nil
}

// compressionOption returns the compression option based on configuration
func (e *ParquetExporter) compressionOption() parquet.WriterOption {
	switch e.config.CompressionType {
	case "gzip":
		return parquet.Compression(&parquet.Gzip)
	case "snappy":
		return parquet.Compression(&parquet.Snappy)
	case "none":
		return parquet.Compression(&parquet.Uncompressed)
	default:
		return parquet.Compression(&parquet.Zstd)
	}
}

// LoadOutcomes reads back a file produced by Export.
func LoadOutcomes(filePath string) ([]models.ProbeOutcome, error) {
	records, err := parquet.ReadFile[ParquetOutcome](filePath)
	if err != nil {
		return nil, common.WrapError(err, "failed to read parquet file: "+filePath)
	}

	outcomes := make([]models.ProbeOutcome, 0, len(records))
	for _, r := range records {
		outcomes = append(outcomes, models.ProbeOutcome{
			Code:       r.Code,
			Country:    r.Country,
			TargetURL:  r.TargetURL,
			StatusCode: int(r.StatusCode),
			Succeeded:  r.Succeeded,
			Detail:     StringOrEmpty(r.Detail),
			DurationMS: r.DurationMS,
			Timestamp:  time.UnixMilli(r.CompletedAt),
		})
	}
	return outcomes, nil
}

func toParquetOutcome(sessionID string, o models.ProbeOutcome) ParquetOutcome {
	return ParquetOutcome{
		SessionID:   sessionID,
		Code:        o.Code,
		Country:     o.Country,
		TargetURL:   o.TargetURL,
		StatusCode:  int32(o.StatusCode),
		Succeeded:   o.Succeeded,
		Detail:      StringPtrOrNil(o.Detail),
		DurationMS:  o.DurationMS,
		CompletedAt: o.Timestamp.UnixMilli(),
	}
}
