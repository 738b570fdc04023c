// Package orchestrator runs one probe per catalog country against a target
// URL and assembles the results into a RunReport.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/semaphore"

	"github.com/aleister1102/geoprobe/internal/catalog"
	"github.com/aleister1102/geoprobe/internal/common"
	"github.com/aleister1102/geoprobe/internal/datastore"
	"github.com/aleister1102/geoprobe/internal/history"
	"github.com/aleister1102/geoprobe/internal/models"
	"github.com/aleister1102/geoprobe/internal/reporter"
	"github.com/aleister1102/geoprobe/internal/urlhandler"
)

// DefaultConcurrency bounds in-flight probes when Config.Concurrency is unset.
const DefaultConcurrency = 8

// Prober performs a single request for one country.
type Prober interface {
	Probe(ctx context.Context, targetTemplate string, code models.CountryCode) models.ProbeOutcome
}

// SessionCreator lays out a fresh run directory.
type SessionCreator interface {
	Create() (*models.RunSession, error)
}

// OutcomeStore persists per-country artifacts and the run summary.
type OutcomeStore interface {
	WriteOutcome(session *models.RunSession, outcome models.ProbeOutcome) error
	WriteSummary(session *models.RunSession, summary string) error
}

// Exporter writes all outcomes of a run in one columnar file.
type Exporter interface {
	Export(ctx context.Context, session *models.RunSession, outcomes []models.ProbeOutcome) (*datastore.ExportResult, error)
}

// RunRecorder keeps a ledger of runs.
type RunRecorder interface {
	RecordRunStart(sessionID, targetURL string, numCodes int, startTime time.Time) (int64, error)
	UpdateRunCompletion(id int64, c history.RunCompletion) error
}

// Config tunes a run.
type Config struct {
	Concurrency     int
	Rule            urlhandler.TargetRule
	ReporterOptions reporter.Options
}

// Orchestrator owns no per-run state; Run may be called repeatedly.
type Orchestrator struct {
	catalog       *catalog.Catalog
	prober        Prober
	sessions      SessionCreator
	store         OutcomeStore
	config        Config
	logger        zerolog.Logger
	progressSinks []ProgressSink
	summarySinks  []SummarySink
	exporter      Exporter
	recorder      RunRecorder
	runLogger     func(sessionID string) (zerolog.Logger, io.Closer)
	now           func() time.Time
}

// Option customizes an Orchestrator.
type Option func(*Orchestrator)

// WithProgressSinks registers progress sinks.
func WithProgressSinks(sinks ...ProgressSink) Option {
	return func(o *Orchestrator) {
		o.progressSinks = append(o.progressSinks, sinks...)
	}
}

// WithSummarySinks registers summary sinks.
func WithSummarySinks(sinks ...SummarySink) Option {
	return func(o *Orchestrator) {
		o.summarySinks = append(o.summarySinks, sinks...)
	}
}

// WithExporter enables columnar export after each run.
func WithExporter(e Exporter) Option {
	return func(o *Orchestrator) {
		o.exporter = e
	}
}

// WithRunRecorder enables the run ledger.
func WithRunRecorder(r RunRecorder) Option {
	return func(o *Orchestrator) {
		o.recorder = r
	}
}

// WithRunLogger derives the logger used for one run from its session ID. A
// non-nil closer is closed when the run returns.
func WithRunLogger(factory func(sessionID string) (zerolog.Logger, io.Closer)) Option {
	return func(o *Orchestrator) {
		o.runLogger = factory
	}
}

// WithClock overrides the clock used for run timestamps.
func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) {
		o.now = now
	}
}

// New creates an Orchestrator.
func New(cat *catalog.Catalog, prober Prober, sessions SessionCreator, store OutcomeStore, config Config, logger zerolog.Logger, opts ...Option) *Orchestrator {
	if config.Concurrency <= 0 {
		config.Concurrency = DefaultConcurrency
	}
	if config.ReporterOptions == (reporter.Options{}) {
		config.ReporterOptions = reporter.DefaultOptions()
	}
	o := &Orchestrator{
		catalog:  cat,
		prober:   prober,
		sessions: sessions,
		store:    store,
		config:   config,
		logger:   logger.With().Str("component", "ProbeOrchestrator").Logger(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Catalog returns the countries probed by each run.
func (o *Orchestrator) Catalog() *catalog.Catalog {
	return o.catalog
}

// Run probes every catalog country once against targetURL.
//
// An invalid URL yields an InputError and a session that cannot be created
// yields a fatal StorageError; no request is sent in either case. Every other
// failure is recorded in the report: per-code problems as failed outcomes,
// persistence problems as warnings. When ctx is cancelled no further probes
// start, and the outcomes collected so far are still rendered and saved.
func (o *Orchestrator) Run(ctx context.Context, targetURL string) (*models.RunReport, error) {
	if err := o.validateTarget(targetURL); err != nil {
		return nil, err
	}

	session, err := o.sessions.Create()
	if err != nil {
		return nil, err
	}

	codes := o.catalog.List()
	startedAt := o.now()
	warnings := &common.ErrorCollector{}
	runLogger := o.logger
	if o.runLogger != nil {
		base, closer := o.runLogger(session.ID)
		if closer != nil {
			defer func() {
				if err := closer.Close(); err != nil {
					o.logger.Warn().Err(err).Str("session_id", session.ID).Msg("Failed to close run logger")
				}
			}()
		}
		runLogger = base.With().Str("component", "ProbeOrchestrator").Logger()
	}
	runLogger = runLogger.With().Str("session_id", session.ID).Logger()
	runLogger.Info().Str("target_url", targetURL).Int("codes", len(codes)).Int("concurrency", o.config.Concurrency).Msg("Starting probe run")

	runID, recording := o.recordStart(session, targetURL, len(codes), startedAt, warnings)

	outcomes, persistFailures := o.probeAll(ctx, session, targetURL, codes, warnings, runLogger)
	// A cancel that lands after the last probe leaves the run complete.
	cancelled := len(outcomes) < len(codes)

	sort.Slice(outcomes, func(i, j int) bool {
		return outcomes[i].Code < outcomes[j].Code
	})

	summary := reporter.RenderWithOptions(outcomes, o.config.ReporterOptions)
	if err := o.store.WriteSummary(session, summary.Text()); err != nil {
		warnings.AddWithContext(err, "summary")
		persistFailures++
	}

	// Post-run steps run even when the probing context was cancelled.
	postCtx := context.WithoutCancel(ctx)
	if o.exporter != nil {
		if _, err := o.exporter.Export(postCtx, session, outcomes); err != nil {
			warnings.AddWithContext(err, "parquet export")
		}
	}

	report := &models.RunReport{
		Session:         *session,
		TargetURL:       targetURL,
		Outcomes:        outcomes,
		Summary:         summary.Text(),
		Cancelled:       cancelled,
		PersistFailures: persistFailures,
		StartedAt:       startedAt,
		FinishedAt:      o.now(),
	}

	if recording {
		o.recordCompletion(runID, report, warnings)
	}
	report.Warnings = warnings.Messages()

	stats := summary.Stats()
	runLogger.Info().
		Int("total", stats.Total).
		Int("succeeded", stats.Succeeded).
		Int("failed", stats.Failed).
		Int("warnings", len(report.Warnings)).
		Int("persist_failures", persistFailures).
		Bool("cancelled", cancelled).
		Dur("duration", report.Duration()).
		Msg("Probe run finished")

	o.emitSummary(postCtx, report)
	return report, nil
}

func (o *Orchestrator) validateTarget(targetURL string) error {
	rule := o.config.Rule
	placeholder := rule.Placeholder
	if placeholder == "" {
		placeholder = urlhandler.DefaultPlaceholder
	}
	if err := urlhandler.ValidateTargetURL(targetURL, placeholder); err != nil {
		return err
	}
	// Rejects templates the targeting mode cannot use, such as a missing placeholder.
	if _, err := urlhandler.BuildCountryURL(targetURL, "xx", rule); err != nil {
		return err
	}
	return nil
}

// probeAll runs the bounded worker pool and returns the unsorted outcomes
// together with the number of per-country files that could not be written.
func (o *Orchestrator) probeAll(ctx context.Context, session *models.RunSession, targetURL string, codes []models.CountryCode, warnings *common.ErrorCollector, logger zerolog.Logger) ([]models.ProbeOutcome, int) {
	var (
		mu            sync.Mutex
		outcomes      = make([]models.ProbeOutcome, 0, len(codes))
		writeFailures int
		wg            sync.WaitGroup
	)
	sem := semaphore.NewWeighted(int64(o.config.Concurrency))
	total := len(codes)

	for _, code := range codes {
		if err := sem.Acquire(ctx, 1); err != nil {
			logger.Warn().Str("next_code", code.Alpha2).Msg("Run cancelled, no further probes will start")
			break
		}
		// Acquire can succeed on a done context when a slot is free.
		if ctx.Err() != nil {
			sem.Release(1)
			logger.Warn().Str("next_code", code.Alpha2).Msg("Run cancelled, no further probes will start")
			break
		}

		wg.Add(1)
		go func(code models.CountryCode) {
			defer wg.Done()
			defer sem.Release(1)

			outcome := o.probeOne(ctx, targetURL, code, logger)
			writeErr := o.store.WriteOutcome(session, outcome)
			if writeErr != nil {
				warnings.AddWithContext(writeErr, code.Alpha2)
			}

			mu.Lock()
			if writeErr != nil {
				writeFailures++
			}
			outcomes = append(outcomes, outcome)
			index := len(outcomes)
			mu.Unlock()

			o.emitProgress(models.ProgressEvent{Index: index, Total: total, Code: code.Alpha2}, logger)
		}(code)
	}

	wg.Wait()
	return outcomes, writeFailures
}

// probeOne converts a prober panic into a failed outcome for the code.
func (o *Orchestrator) probeOne(ctx context.Context, targetURL string, code models.CountryCode, logger zerolog.Logger) (outcome models.ProbeOutcome) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error().Interface("panic", r).Str("code", code.Alpha2).Msg("Probe panicked")
			outcome = models.NewTransportFailure(code, targetURL, fmt.Errorf("probe panicked: %v", r), 0, o.now())
		}
	}()
	return o.prober.Probe(ctx, targetURL, code)
}

func (o *Orchestrator) emitProgress(event models.ProgressEvent, logger zerolog.Logger) {
	for _, sink := range o.progressSinks {
		func() {
			defer func() {
				if r := recover(); r != nil {
					logger.Error().Interface("panic", r).Str("code", event.Code).Msg("Progress sink panicked")
				}
			}()
			sink.OnProgress(event)
		}()
	}
}

func (o *Orchestrator) emitSummary(ctx context.Context, report *models.RunReport) {
	for _, sink := range o.summarySinks {
		func() {
			defer func() {
				if r := recover(); r != nil {
					o.logger.Error().Interface("panic", r).Str("session_id", report.Session.ID).Msg("Summary sink panicked")
				}
			}()
			sink.OnSummary(ctx, report)
		}()
	}
}

func (o *Orchestrator) recordStart(session *models.RunSession, targetURL string, numCodes int, startedAt time.Time, warnings *common.ErrorCollector) (int64, bool) {
	if o.recorder == nil {
		return 0, false
	}
	id, err := o.recorder.RecordRunStart(session.ID, targetURL, numCodes, startedAt)
	if err != nil {
		warnings.AddWithContext(err, "run history")
		return 0, false
	}
	return id, true
}

func (o *Orchestrator) recordCompletion(id int64, report *models.RunReport, warnings *common.ErrorCollector) {
	status := history.StatusCompleted
	if report.Cancelled {
		status = history.StatusCancelled
	}

	err := o.recorder.UpdateRunCompletion(id, history.RunCompletion{
		FinishedAt:  report.FinishedAt,
		Status:      status,
		Succeeded:   report.SucceededCount(),
		Failed:      report.FailedCount(),
		Warnings:    warnings.Count(),
		SummaryPath: report.Session.SummaryPath,
	})
	if err != nil {
		warnings.AddWithContext(err, "run history")
	}
}

// IsFatal reports whether err from Run aborted the run before any request.
func IsFatal(err error) bool {
	return common.IsInputError(err) || common.IsFatal(err) || errors.Is(err, common.ErrSessionExists)
}
