package models

import "time"

// RunSession describes the isolated output location of one probing run.
type RunSession struct {
	ID           string    `json:"id"`
	RootPath     string    `json:"root_path"`
	AnalysisPath string    `json:"analysis_path"`
	SummaryPath  string    `json:"summary_path"`
	CreatedAt    time.Time `json:"created_at"`
}

// ProgressEvent is emitted once per completed probe.
type ProgressEvent struct {
	Index int    `json:"index"` // 1-based count of completed probes
	Total int    `json:"total"`
	Code  string `json:"code"`
}

// RunReport is what a probing run hands back to its caller.
type RunReport struct {
	Session   RunSession     `json:"session"`
	TargetURL string         `json:"target_url"`
	Outcomes  []ProbeOutcome `json:"outcomes"`
	Summary   string         `json:"summary"`
	Cancelled bool           `json:"cancelled"`

	// Warnings holds every non-fatal problem, including history and export errors.
	Warnings []string `json:"warnings,omitempty"`

	// PersistFailures counts the country files and summary that were not written.
	PersistFailures int `json:"persist_failures"`

	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
}

// SucceededCount returns the number of outcomes with status 200.
func (r *RunReport) SucceededCount() int {
	if r == nil {
		return 0
	}
	n := 0
	for _, o := range r.Outcomes {
		if o.Succeeded {
			n++
		}
	}
	return n
}

// FailedCount returns the number of outcomes that did not succeed.
func (r *RunReport) FailedCount() int {
	if r == nil {
		return 0
	}
	return len(r.Outcomes) - r.SucceededCount()
}

// Duration returns the wall time of the run.
func (r *RunReport) Duration() time.Duration {
	if r == nil || r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}
