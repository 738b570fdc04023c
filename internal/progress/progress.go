package progress

import (
	"sync"
	"time"
)

// Progress encapsulates a single progress indicator.
type Progress struct {
	mu   sync.RWMutex
	info ProgressInfo
	now  func() time.Time
}

// NewProgress creates a new Progress indicator.
func NewProgress(progressType ProgressType) *Progress {
	return &Progress{
		info: ProgressInfo{
			Type:   progressType,
			Status: ProgressStatusIdle,
		},
		now: time.Now,
	}
}

// Info returns a copy of the ProgressInfo.
func (p *Progress) Info() ProgressInfo {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.info
}

// Update updates the progress.
func (p *Progress) Update(current, total int64, stage, message string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.update(current, total, stage, message)
}

// Advance records one completed code. Current never moves backwards, so
// completions reported out of order by concurrent workers are safe.
func (p *Progress) Advance(current, total int64, code string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if current < p.info.Current {
		current = p.info.Current
	}
	p.update(current, total, p.info.Stage, p.info.Message)
	p.info.LastCode = code
}

func (p *Progress) update(current, total int64, stage, message string) {
	now := p.now()

	if p.info.Status == ProgressStatusIdle || p.info.StartTime.IsZero() {
		p.info.StartTime = now
		p.info.Status = ProgressStatusRunning
	}

	p.info.Current = current
	p.info.Total = total
	p.info.Stage = stage
	p.info.Message = message
	p.info.LastUpdateTime = now
	p.info.UpdateETA()
}

// SetStatus sets the progress status.
func (p *Progress) SetStatus(status ProgressStatus, message string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.info.Status = status
	p.info.Message = message
	p.info.LastUpdateTime = p.now()
	if p.info.IsFinished() {
		p.info.EstimatedETA = 0
	}
}

// Reset returns the indicator to idle for a new run.
func (p *Progress) Reset(total int64, stage string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.info = ProgressInfo{
		Type:   p.info.Type,
		Status: ProgressStatusIdle,
		Total:  total,
		Stage:  stage,
	}
}
