// Package datastore persists probe outcomes and run summaries to disk.
package datastore

import (
	"encoding/json"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/aleister1102/geoprobe/internal/common"
	"github.com/aleister1102/geoprobe/internal/models"
	"github.com/aleister1102/geoprobe/internal/urlhandler"
)

const (
	opWriteOutcome = "write_outcome"
	opWriteSummary = "write_summary"
)

// ResultStore writes one JSON artifact per outcome and the summary table.
// Writes target distinct files, so concurrent WriteOutcome calls need no lock.
type ResultStore struct {
	fm     *common.FileManager
	logger zerolog.Logger
}

// NewResultStore creates a ResultStore.
func NewResultStore(logger zerolog.Logger) *ResultStore {
	componentLogger := logger.With().Str("component", "ResultStore").Logger()
	return &ResultStore{
		fm:     common.NewFileManager(componentLogger),
		logger: componentLogger,
	}
}

// OutcomePath is the artifact location of outcome inside session, named by
// the country's display name.
func OutcomePath(session *models.RunSession, outcome models.ProbeOutcome) string {
	name := outcome.Country
	if name == "" {
		name = outcome.Code
	}
	return filepath.Join(session.AnalysisPath, urlhandler.SanitizeFilename(name)+".json")
}

// WriteOutcome serializes outcome under the session's analysis directory.
// Failures are returned as non-fatal *common.StorageError values.
func (s *ResultStore) WriteOutcome(session *models.RunSession, outcome models.ProbeOutcome) error {
	path := OutcomePath(session, outcome)

	data, err := json.MarshalIndent(outcome, "", "  ")
	if err != nil {
		return common.NewStorageError(opWriteOutcome, path, common.WrapError(err, "failed to marshal outcome"))
	}

	if err := s.fm.WriteFile(path, data, common.DefaultFileWriteOptions()); err != nil {
		s.logger.Warn().Err(err).Str("code", outcome.Code).Str("path", path).Msg("Failed to persist outcome")
		return common.NewStorageError(opWriteOutcome, path, err)
	}

	return nil
}

// WriteSummary writes the rendered summary table to the session's summary path.
func (s *ResultStore) WriteSummary(session *models.RunSession, summary string) error {
	path := session.SummaryPath
	if err := s.fm.WriteFile(path, []byte(summary), common.DefaultFileWriteOptions()); err != nil {
		s.logger.Warn().Err(err).Str("path", path).Msg("Failed to persist summary")
		return common.NewStorageError(opWriteSummary, path, err)
	}

	s.logger.Debug().Str("path", path).Int("bytes", len(summary)).Msg("Summary written")
	return nil
}
