// Package session allocates the isolated output directory of a probing run.
package session

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/aleister1102/geoprobe/internal/common"
	"github.com/aleister1102/geoprobe/internal/models"
)

const (
	// IDLayout formats the creation time of a session at second resolution.
	IDLayout = "20060102-150405"
	// AnalysisDirName holds one artifact per country.
	AnalysisDirName = "analysis"
	// SummaryFileName is the rendered summary table.
	SummaryFileName = "summary.txt"
	// DefaultBaseDir is relative to the working directory.
	DefaultBaseDir = "responses"

	opCreateSession = "create_session"
)

// Config controls where and how sessions are created.
type Config struct {
	BaseDir      string
	UniqueSuffix bool
}

// Manager creates a new RunSession per invocation.
type Manager struct {
	config Config
	fm     *common.FileManager
	logger zerolog.Logger
	now    func() time.Time
	suffix func() string
}

// Option customizes a Manager.
type Option func(*Manager)

// WithClock overrides the clock used to derive session IDs.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		m.now = now
	}
}

// NewManager creates a session Manager.
func NewManager(config Config, logger zerolog.Logger, opts ...Option) *Manager {
	if config.BaseDir == "" {
		config.BaseDir = DefaultBaseDir
	}
	m := &Manager{
		config: config,
		fm:     common.NewFileManager(logger),
		logger: logger.With().Str("component", "SessionManager").Logger(),
		now:    time.Now,
		suffix: func() string {
			return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
		},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// NewID derives a session ID from t, with an optional random suffix.
func (m *Manager) NewID(t time.Time) string {
	id := t.Format(IDLayout)
	if m.config.UniqueSuffix {
		id += "-" + m.suffix()
	}
	return id
}

// Create lays out responses/<id>/analysis. The session root must not exist
// yet; any failure is returned as a fatal StorageError.
func (m *Manager) Create() (*models.RunSession, error) {
	createdAt := m.now()
	id := m.NewID(createdAt)
	root := filepath.Join(m.config.BaseDir, id)

	if err := m.fm.EnsureDirectory(m.config.BaseDir, common.DirPermissions); err != nil {
		return nil, common.NewFatalStorageError(opCreateSession, m.config.BaseDir, err)
	}
	if err := m.fm.CreateDirectory(root, common.DirPermissions); err != nil {
		return nil, common.NewFatalStorageError(opCreateSession, root, err)
	}

	analysis := filepath.Join(root, AnalysisDirName)
	if err := m.fm.CreateDirectory(analysis, common.DirPermissions); err != nil {
		return nil, common.NewFatalStorageError(opCreateSession, analysis, err)
	}

	s := &models.RunSession{
		ID:           id,
		RootPath:     root,
		AnalysisPath: analysis,
		SummaryPath:  filepath.Join(root, SummaryFileName),
		CreatedAt:    createdAt,
	}

	m.logger.Info().Str("session_id", id).Str("path", root).Msg("Run session created")
	return s, nil
}
