package datastore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aleister1102/geoprobe/internal/models"
)

func TestParquetExporter_RoundTrip(t *testing.T) {
	codecs := []string{"zstd", "gzip", "snappy", "none", ""}

	for _, codec := range codecs {
		t.Run("codec "+codec, func(t *testing.T) {
			session := newTestSession(t)
			exporter := NewParquetExporter(ParquetExporterConfig{CompressionType: codec}, zerolog.Nop())

			completed := time.UnixMilli(1704067201000)
			outcomes := []models.ProbeOutcome{
				models.NewProbeOutcome(models.NewCountryCode("AD", "Andorra"), "https://x/?country=ad", 200, "", 12*time.Millisecond, completed),
				models.NewTransportFailure(models.NewCountryCode("AE", "United Arab Emirates"), "https://x/?country=ae", errors.New("refused"), 0, completed),
			}

			result, err := exporter.Export(context.Background(), session, outcomes)
			require.NoError(t, err)
			assert.Equal(t, 2, result.RecordsWritten)
			assert.Positive(t, result.FileSize)
			assert.FileExists(t, result.FilePath)

			loaded, err := LoadOutcomes(result.FilePath)
			require.NoError(t, err)
			require.Len(t, loaded, 2)
			assert.Equal(t, "AD", loaded[0].Code)
			assert.True(t, loaded[0].Succeeded)
			assert.Empty(t, loaded[0].Detail)
			assert.Equal(t, 0, loaded[1].StatusCode)
			assert.Equal(t, "refused", loaded[1].Detail)
			assert.Equal(t, completed.UnixMilli(), loaded[1].Timestamp.UnixMilli())
		})
	}
}

func TestParquetExporter_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewParquetExporter(DefaultParquetExporterConfig(), zerolog.Nop()).Export(ctx, newTestSession(t), nil)
	assert.Error(t, err)
}

func TestParquetPointerHelpers(t *testing.T) {
	assert.Nil(t, StringPtrOrNil(""))
	assert.Equal(t, "x", StringOrEmpty(StringPtrOrNil("x")))
	assert.Equal(t, "", StringOrEmpty(nil))
}
