package progress

import "time"

// ProgressType identifies what a progress indicator tracks.
type ProgressType string

const (
	ProgressTypeProbe ProgressType = "PROBE"
)

// ProgressStatus is the lifecycle state of a progress indicator.
type ProgressStatus string

const (
	ProgressStatusIdle      ProgressStatus = "IDLE"
	ProgressStatusRunning   ProgressStatus = "RUNNING"
	ProgressStatusComplete  ProgressStatus = "COMPLETE"
	ProgressStatusError     ProgressStatus = "ERROR"
	ProgressStatusCancelled ProgressStatus = "CANCELLED"
)

// ProgressInfo is a point-in-time snapshot of a run's progress.
type ProgressInfo struct {
	Type           ProgressType   `json:"type"`
	Status         ProgressStatus `json:"status"`
	Current        int64          `json:"current"`
	Total          int64          `json:"total"`
	Stage          string         `json:"stage"`
	Message        string         `json:"message"`
	LastCode       string         `json:"last_code,omitempty"`
	StartTime      time.Time      `json:"start_time"`
	LastUpdateTime time.Time      `json:"last_update_time"`
	EstimatedETA   time.Duration  `json:"estimated_eta"`
}

// UpdateETA estimates the remaining time from the average rate so far.
func (pi *ProgressInfo) UpdateETA() {
	if pi.Total <= 0 || pi.Current <= 0 || pi.Status != ProgressStatusRunning {
		pi.EstimatedETA = 0
		return
	}

	elapsed := pi.LastUpdateTime.Sub(pi.StartTime)
	if elapsed <= 0 {
		pi.EstimatedETA = 0
		return
	}

	rate := float64(pi.Current) / elapsed.Seconds()
	if rate <= 0 {
		pi.EstimatedETA = 0
		return
	}

	remaining := float64(pi.Total - pi.Current)
	if remaining <= 0 {
		pi.EstimatedETA = 0
		return
	}

	pi.EstimatedETA = time.Duration(remaining / rate * float64(time.Second))
}

// GetPercentage returns completion in [0, 100].
func (pi *ProgressInfo) GetPercentage() float64 {
	if pi.Total <= 0 {
		return 0.0
	}
	percentage := float64(pi.Current) * 100 / float64(pi.Total)
	if percentage > 100 {
		return 100.0
	}
	return percentage
}

// IsFinished reports whether the indicator reached a terminal status.
func (pi *ProgressInfo) IsFinished() bool {
	switch pi.Status {
	case ProgressStatusComplete, ProgressStatusError, ProgressStatusCancelled:
		return true
	}
	return false
}
