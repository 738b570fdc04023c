package progress

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/aleister1102/geoprobe/internal/models"
	"github.com/rs/zerolog"
)

// DisplayConfig controls the periodic progress log.
type DisplayConfig struct {
	DisplayInterval   time.Duration
	EnableProgress    bool
	ShowETAEstimation bool
	// LogEachCode logs one "[i/N] Loading XX..." line per completed code.
	LogEachCode bool
}

// DefaultDisplayConfig returns the display defaults.
func DefaultDisplayConfig() DisplayConfig {
	return DisplayConfig{
		DisplayInterval:   3 * time.Second,
		EnableProgress:    true,
		ShowETAEstimation: true,
		LogEachCode:       true,
	}
}

// DisplayManager tracks probe progress and renders it as log lines.
// It satisfies the orchestrator's progress sink.
type DisplayManager struct {
	progress       *Progress
	mutex          sync.Mutex
	logger         zerolog.Logger
	config         DisplayConfig
	isRunning      bool
	cancel         context.CancelFunc
	done           chan struct{}
	lastDisplayed  string
	triggerDisplay chan struct{}
}

// NewDisplayManager creates a display manager. A zero DisplayInterval falls
// back to the default interval.
func NewDisplayManager(logger zerolog.Logger, config DisplayConfig) *DisplayManager {
	if config.DisplayInterval <= 0 {
		config.DisplayInterval = DefaultDisplayConfig().DisplayInterval
	}

	return &DisplayManager{
		progress:       NewProgress(ProgressTypeProbe),
		logger:         logger.With().Str("component", "ProgressDisplay").Logger(),
		config:         config,
		triggerDisplay: make(chan struct{}, 1),
	}
}

// Start begins the periodic display loop.
func (dm *DisplayManager) Start() {
	dm.mutex.Lock()
	defer dm.mutex.Unlock()

	if dm.isRunning {
		return
	}

	if !dm.config.EnableProgress {
		dm.logger.Debug().Msg("Progress display disabled in configuration")
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	dm.cancel = cancel
	dm.done = make(chan struct{})
	dm.isRunning = true

	go dm.displayLoop(ctx, time.NewTicker(dm.config.DisplayInterval), dm.done)
}

// Stop halts the display loop and logs the final state once.
func (dm *DisplayManager) Stop() {
	dm.mutex.Lock()
	if !dm.isRunning {
		dm.mutex.Unlock()
		return
	}
	dm.isRunning = false
	dm.cancel()
	done := dm.done
	dm.mutex.Unlock()

	<-done
	dm.displayProgress()
}

// Begin resets the indicator for a run over total codes.
func (dm *DisplayManager) Begin(total int, stage string) {
	dm.progress.Reset(int64(total), stage)
	dm.mutex.Lock()
	dm.lastDisplayed = ""
	dm.mutex.Unlock()
}

// OnProgress records a completed code.
func (dm *DisplayManager) OnProgress(event models.ProgressEvent) {
	dm.progress.Advance(int64(event.Index), int64(event.Total), event.Code)

	if dm.config.LogEachCode {
		dm.logger.Info().
			Int("index", event.Index).
			Int("total", event.Total).
			Str("code", event.Code).
			Msg(FormatLoadingLine(event))
	}

	dm.triggerImmediateDisplay()
}

// Finish marks the run complete, cancelled or failed.
func (dm *DisplayManager) Finish(status ProgressStatus, message string) {
	dm.progress.SetStatus(status, message)
	dm.triggerImmediateDisplay()
}

// Info returns a snapshot of the current progress.
func (dm *DisplayManager) Info() ProgressInfo {
	return dm.progress.Info()
}

// FormatLoadingLine renders "[i/N] Loading XX...".
func FormatLoadingLine(event models.ProgressEvent) string {
	return fmt.Sprintf("[%d/%d] Loading %s...", event.Index, event.Total, event.Code)
}

func (dm *DisplayManager) triggerImmediateDisplay() {
	select {
	case dm.triggerDisplay <- struct{}{}:
	default:
	}
}
