package history

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := NewDB(filepath.Join(t.TempDir(), "db", "history.db"), zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestDB_RunLifecycle(t *testing.T) {
	db := newTestDB(t)

	_, err := db.LastRun()
	assert.True(t, IsNoRows(err))

	start := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	id, err := db.RecordRunStart("20240601-100000", "https://example.com", 249, start)
	require.NoError(t, err)
	assert.Positive(t, id)

	run, err := db.LastRun()
	require.NoError(t, err)
	assert.Equal(t, StatusStarted, run.Status)
	assert.False(t, run.FinishedAt.Valid)
	assert.False(t, run.SummaryPath.Valid)

	err = db.UpdateRunCompletion(id, RunCompletion{
		FinishedAt:  start.Add(time.Minute),
		Status:      StatusCompleted,
		Succeeded:   200,
		Failed:      49,
		Warnings:    1,
		SummaryPath: "responses/20240601-100000/summary.txt",
	})
	require.NoError(t, err)

	run, err = db.LastRun()
	require.NoError(t, err)
	assert.Equal(t, "20240601-100000", run.SessionID)
	assert.Equal(t, "https://example.com", run.TargetURL)
	assert.Equal(t, StatusCompleted, run.Status)
	assert.Equal(t, 249, run.NumCodes)
	assert.Equal(t, 200, run.Succeeded)
	assert.Equal(t, 49, run.Failed)
	assert.Equal(t, 1, run.Warnings)
	assert.True(t, run.FinishedAt.Valid)
	assert.True(t, run.StartedAt.Equal(start))
	assert.Equal(t, "responses/20240601-100000/summary.txt", run.SummaryPath.String)
}

func TestDB_DuplicateSessionRejected(t *testing.T) {
	db := newTestDB(t)

	_, err := db.RecordRunStart("same", "https://example.com", 1, time.Now())
	require.NoError(t, err)
	_, err = db.RecordRunStart("same", "https://example.com", 1, time.Now())
	assert.Error(t, err)
}

func TestDB_UpdateUnknownRun(t *testing.T) {
	db := newTestDB(t)
	err := db.UpdateRunCompletion(999, RunCompletion{FinishedAt: time.Now(), Status: StatusFailed})
	assert.Error(t, err)
}

func TestDB_RecentRunsOrder(t *testing.T) {
	db := newTestDB(t)
	base := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

	for i, id := range []string{"a", "b", "c"} {
		_, err := db.RecordRunStart(id, "https://example.com", 1, base.Add(time.Duration(i)*time.Hour))
		require.NoError(t, err)
	}

	runs, err := db.RecentRuns(2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "c", runs[0].SessionID)
	assert.Equal(t, "b", runs[1].SessionID)
}

func TestNewDB_InMemory(t *testing.T) {
	db, err := NewDB(":memory:", zerolog.Nop())
	require.NoError(t, err)
	defer db.Close()

	_, err = db.RecordRunStart("mem", "https://example.com", 2, time.Now())
	assert.NoError(t, err)
}
