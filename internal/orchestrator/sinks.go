package orchestrator

import (
	"context"

	"github.com/aleister1102/geoprobe/internal/models"
)

// ProgressSink receives one event per completed probe. It may be called
// from several goroutines at once.
type ProgressSink interface {
	OnProgress(event models.ProgressEvent)
}

// SummarySink receives the finished report once per run.
type SummarySink interface {
	OnSummary(ctx context.Context, report *models.RunReport)
}

// ProgressSinkFunc adapts a function to ProgressSink.
type ProgressSinkFunc func(event models.ProgressEvent)

func (f ProgressSinkFunc) OnProgress(event models.ProgressEvent) { f(event) }

// SummarySinkFunc adapts a function to SummarySink.
type SummarySinkFunc func(ctx context.Context, report *models.RunReport)

func (f SummarySinkFunc) OnSummary(ctx context.Context, report *models.RunReport) { f(ctx, report) }
