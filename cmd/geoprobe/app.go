package main

import (
	"context"
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/aleister1102/geoprobe/internal/catalog"
	"github.com/aleister1102/geoprobe/internal/config"
	"github.com/aleister1102/geoprobe/internal/datastore"
	"github.com/aleister1102/geoprobe/internal/history"
	"github.com/aleister1102/geoprobe/internal/httpclient"
	"github.com/aleister1102/geoprobe/internal/logger"
	"github.com/aleister1102/geoprobe/internal/models"
	"github.com/aleister1102/geoprobe/internal/notifier"
	"github.com/aleister1102/geoprobe/internal/orchestrator"
	"github.com/aleister1102/geoprobe/internal/progress"
	"github.com/aleister1102/geoprobe/internal/prober"
	"github.com/aleister1102/geoprobe/internal/reporter"
	"github.com/aleister1102/geoprobe/internal/session"
)

const notifierTimeout = 20 * time.Second

// app holds the wired components shared by both modes.
type app struct {
	cfg          *config.GlobalConfig
	logger       zerolog.Logger
	catalog      *catalog.Catalog
	orchestrator *orchestrator.Orchestrator
	display      *progress.DisplayManager
	history      *history.DB
}

func newApp(cfg *config.GlobalConfig, zLogger zerolog.Logger, out io.Writer) (*app, error) {
	cat, err := selectCatalog(cfg.Countries)
	if err != nil {
		return nil, err
	}

	probeClient, err := newProbeClient(cfg.ProbeConfig, zLogger)
	if err != nil {
		return nil, err
	}

	proberCfg := prober.DefaultConfig()
	proberCfg.Method = cfg.ProbeConfig.Method
	proberCfg.Timeout = cfg.ProbeConfig.Timeout()
	proberCfg.MaxDetailBytes = cfg.ProbeConfig.MaxDetailBytes
	proberCfg.Rule = cfg.TargetingConfig.Rule()

	reporterOptions := reporter.Options{
		Padding:             reporter.DefaultPadding,
		MaxDescriptionWidth: cfg.ReporterConfig.MaxDescriptionWidth,
	}

	display := progress.NewDisplayManager(zLogger, progress.DisplayConfig{
		DisplayInterval:   cfg.ProgressConfig.GetDisplayIntervalDuration(),
		EnableProgress:    cfg.ProgressConfig.EnableProgress,
		ShowETAEstimation: cfg.ProgressConfig.ShowETAEstimation,
		LogEachCode:       cfg.ProgressConfig.LogEachCode,
	})

	opts := []orchestrator.Option{
		orchestrator.WithProgressSinks(display),
		orchestrator.WithSummarySinks(&consoleSink{out: out, color: cfg.ReporterConfig.Color, options: reporterOptions}),
	}

	if cfg.NotificationConfig.Enabled() {
		notifyClient, err := httpclient.NewHTTPClientBuilder(zLogger).WithTimeout(notifierTimeout).Build()
		if err != nil {
			return nil, err
		}
		sink := notifier.NewSummarySink(notifier.NewDiscordNotifier(zLogger, notifyClient), notifier.SummarySinkConfig{
			WebhookURL:    cfg.NotificationConfig.DiscordWebhookURL,
			Username:      cfg.NotificationConfig.Username,
			AttachSummary: cfg.NotificationConfig.AttachSummary,
			OnlyOnFailure: cfg.NotificationConfig.OnlyOnFailure,
		}, zLogger)
		opts = append(opts, orchestrator.WithSummarySinks(sink))
	}

	if cfg.StorageConfig.ParquetExport {
		exporter := datastore.NewParquetExporter(datastore.ParquetExporterConfig{
			CompressionType: cfg.StorageConfig.CompressionCodec,
		}, zLogger)
		opts = append(opts, orchestrator.WithExporter(exporter))
	}

	var db *history.DB
	if cfg.HistoryConfig.Enabled {
		db, err = history.NewDB(cfg.HistoryConfig.DBPath, zLogger)
		if err != nil {
			return nil, err
		}
		opts = append(opts, orchestrator.WithRunRecorder(db))
	}

	if cfg.LogConfig.LogFile != "" && cfg.LogConfig.PerRunFiles {
		logCfg := cfg.LogConfig
		opts = append(opts, orchestrator.WithRunLogger(func(sessionID string) (zerolog.Logger, io.Closer) {
			runLogger, err := logger.NewWithRunID(logCfg, sessionID)
			if err != nil {
				zLogger.Warn().Err(err).Str("session_id", sessionID).Msg("Could not open per-run log file, using main log")
				return zLogger, nil
			}
			return *runLogger.GetZerolog(), runLogger
		}))
	}

	orch := orchestrator.New(
		cat,
		prober.New(probeClient, proberCfg, zLogger),
		session.NewManager(session.Config{
			BaseDir:      cfg.SessionConfig.BaseDir,
			UniqueSuffix: cfg.SessionConfig.UniqueSuffix,
		}, zLogger),
		datastore.NewResultStore(zLogger),
		orchestrator.Config{
			Concurrency:     cfg.ProbeConfig.Concurrency,
			Rule:            cfg.TargetingConfig.Rule(),
			ReporterOptions: reporterOptions,
		},
		zLogger,
		opts...,
	)

	return &app{
		cfg:          cfg,
		logger:       zLogger,
		catalog:      cat,
		orchestrator: orch,
		display:      display,
		history:      db,
	}, nil
}

func selectCatalog(codes []string) (*catalog.Catalog, error) {
	full, err := catalog.Default()
	if err != nil {
		return nil, err
	}
	if len(codes) == 0 {
		return full, nil
	}
	return full.Subset(codes...)
}

func newProbeClient(pc config.ProbeConfig, zLogger zerolog.Logger) (*httpclient.HTTPClient, error) {
	return httpclient.NewHTTPClientBuilder(zLogger).
		WithTimeout(pc.Timeout()).
		WithInsecureSkipVerify(pc.InsecureSkipVerify).
		WithFollowRedirects(pc.FollowRedirects).
		WithMaxRedirects(pc.MaxRedirects).
		WithUserAgent(pc.UserAgent).
		WithHeaders(pc.CustomHeaders).
		WithProxy(pc.Proxy).
		WithMaxBodyBytes(pc.MaxBodyBytes).
		WithConnectionPooling(pc.Concurrency*2, pc.Concurrency, 0).
		WithHTTP2(pc.EnableHTTP2).
		Build()
}

// run performs one probing run with the progress display active.
func (a *app) run(ctx context.Context, targetURL string) (*models.RunReport, error) {
	a.display.Begin(a.catalog.Len(), "probing")
	a.display.Start()

	report, err := a.orchestrator.Run(ctx, targetURL)

	switch {
	case err != nil:
		a.display.Finish(progress.ProgressStatusError, err.Error())
	case report.Cancelled:
		a.display.Finish(progress.ProgressStatusCancelled, "cancelled")
	default:
		a.display.Finish(progress.ProgressStatusComplete, "done")
	}
	a.display.Stop()

	return report, err
}

// lastRun returns the newest ledger entry, or nil when history is off or empty.
func (a *app) lastRun() *history.RunEntry {
	if a.history == nil {
		return nil
	}
	entry, err := a.history.LastRun()
	if err != nil {
		if !history.IsNoRows(err) {
			a.logger.Warn().Err(err).Msg("Could not read run history")
		}
		return nil
	}
	return entry
}

func (a *app) Close() error {
	if a.history != nil {
		return a.history.Close()
	}
	return nil
}
