package datastore

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aleister1102/geoprobe/internal/common"
	"github.com/aleister1102/geoprobe/internal/models"
)

func newTestSession(t *testing.T) *models.RunSession {
	t.Helper()
	root := filepath.Join(t.TempDir(), "20240101-000000")
	analysis := filepath.Join(root, "analysis")
	require.NoError(t, os.MkdirAll(analysis, 0755))
	return &models.RunSession{
		ID:           "20240101-000000",
		RootPath:     root,
		AnalysisPath: analysis,
		SummaryPath:  filepath.Join(root, "summary.txt"),
	}
}

func TestResultStore_WriteOutcome(t *testing.T) {
	session := newTestSession(t)
	store := NewResultStore(zerolog.Nop())

	completed := time.Date(2024, 1, 1, 0, 0, 1, 0, time.UTC)
	outcome := models.NewProbeOutcome(models.NewCountryCode("KR", "Korea, Republic of"), "https://example.com?country=kr", 404, "missing", 0, completed)

	require.NoError(t, store.WriteOutcome(session, outcome))

	path := filepath.Join(session.AnalysisPath, "Korea, Republic of.json")
	assert.Equal(t, path, OutcomePath(session, outcome))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded models.ProbeOutcome
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, outcome, decoded)
}

func TestResultStore_WriteOutcome_Concurrent(t *testing.T) {
	session := newTestSession(t)
	store := NewResultStore(zerolog.Nop())

	codes := []models.CountryCode{
		models.NewCountryCode("AD", "Andorra"),
		models.NewCountryCode("AE", "United Arab Emirates"),
		models.NewCountryCode("AF", "Afghanistan"),
		models.NewCountryCode("AG", "Antigua and Barbuda"),
	}

	var wg sync.WaitGroup
	for _, code := range codes {
		wg.Add(1)
		go func(code models.CountryCode) {
			defer wg.Done()
			assert.NoError(t, store.WriteOutcome(session, models.NewProbeOutcome(code, "", 200, "", 0, time.Now())))
		}(code)
	}
	wg.Wait()

	entries, err := os.ReadDir(session.AnalysisPath)
	require.NoError(t, err)
	assert.Len(t, entries, len(codes))
}

func TestResultStore_WriteOutcome_FailureIsNonFatal(t *testing.T) {
	session := newTestSession(t)
	require.NoError(t, os.RemoveAll(session.AnalysisPath))

	store := NewResultStore(zerolog.Nop())
	err := store.WriteOutcome(session, models.NewProbeOutcome(models.NewCountryCode("AD", "Andorra"), "", 200, "", 0, time.Now()))
	require.Error(t, err)

	var storageErr *common.StorageError
	require.True(t, errors.As(err, &storageErr))
	assert.False(t, storageErr.Fatal)
	assert.Equal(t, "write_outcome", storageErr.Op)
	assert.False(t, common.IsFatal(err))
}

func TestResultStore_WriteSummary(t *testing.T) {
	session := newTestSession(t)
	store := NewResultStore(zerolog.Nop())

	require.NoError(t, store.WriteSummary(session, "CODE  COUNTRY\n"))
	data, err := os.ReadFile(session.SummaryPath)
	require.NoError(t, err)
	assert.Equal(t, "CODE  COUNTRY\n", string(data))

	require.NoError(t, os.RemoveAll(session.RootPath))
	err = store.WriteSummary(session, "x")
	require.Error(t, err)
	assert.False(t, common.IsFatal(err))
}
