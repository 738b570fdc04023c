package session

import (
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aleister1102/geoprobe/internal/common"
)

var fixedTime = time.Date(2024, 3, 9, 14, 5, 7, 0, time.Local)

func fixedClock() time.Time { return fixedTime }

func TestManager_Create(t *testing.T) {
	base := filepath.Join(t.TempDir(), "responses")
	m := NewManager(Config{BaseDir: base}, zerolog.Nop(), WithClock(fixedClock))

	s, err := m.Create()
	require.NoError(t, err)

	assert.Equal(t, "20240309-140507", s.ID)
	assert.Equal(t, filepath.Join(base, "20240309-140507"), s.RootPath)
	assert.Equal(t, filepath.Join(s.RootPath, "analysis"), s.AnalysisPath)
	assert.Equal(t, filepath.Join(s.RootPath, "summary.txt"), s.SummaryPath)
	assert.Equal(t, fixedTime, s.CreatedAt)
	assert.DirExists(t, s.AnalysisPath)

	entries, err := os.ReadDir(s.AnalysisPath)
	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.NoFileExists(t, s.SummaryPath)
}

func TestManager_Create_ExistingSessionIsFatal(t *testing.T) {
	base := t.TempDir()
	m := NewManager(Config{BaseDir: base}, zerolog.Nop(), WithClock(fixedClock))

	_, err := m.Create()
	require.NoError(t, err)

	_, err = m.Create()
	require.Error(t, err)
	assert.True(t, common.IsFatal(err))
	assert.ErrorIs(t, err, common.ErrSessionExists)

	var storageErr *common.StorageError
	require.True(t, errors.As(err, &storageErr))
	assert.Equal(t, "create_session", storageErr.Op)
}

func TestManager_Create_UniqueSuffix(t *testing.T) {
	base := t.TempDir()
	m := NewManager(Config{BaseDir: base, UniqueSuffix: true}, zerolog.Nop(), WithClock(fixedClock))

	first, err := m.Create()
	require.NoError(t, err)
	second, err := m.Create()
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	assert.Regexp(t, regexp.MustCompile(`^20240309-140507-[0-9a-f]{8}$`), first.ID)
}

func TestManager_Create_UnwritableBase(t *testing.T) {
	base := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(base, []byte("x"), 0644))

	m := NewManager(Config{BaseDir: base}, zerolog.Nop(), WithClock(fixedClock))
	_, err := m.Create()
	require.Error(t, err)
	assert.True(t, common.IsFatal(err))
}

func TestNewManager_DefaultBaseDir(t *testing.T) {
	m := NewManager(Config{}, zerolog.Nop())
	assert.Equal(t, DefaultBaseDir, m.config.BaseDir)
}
