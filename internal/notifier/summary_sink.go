package notifier

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/aleister1102/geoprobe/internal/models"
)

// maxFailedCodesListed bounds the failed-codes field of the embed.
const maxFailedCodesListed = 40

// SummarySinkConfig controls when and how run summaries are sent.
type SummarySinkConfig struct {
	WebhookURL    string
	Username      string
	AttachSummary bool
	OnlyOnFailure bool
}

// SummarySink posts a run report to Discord once a run finishes.
type SummarySink struct {
	notifier *DiscordNotifier
	config   SummarySinkConfig
	logger   zerolog.Logger
}

// NewSummarySink creates a SummarySink.
func NewSummarySink(notifier *DiscordNotifier, config SummarySinkConfig, logger zerolog.Logger) *SummarySink {
	return &SummarySink{
		notifier: notifier,
		config:   config,
		logger:   logger.With().Str("component", "DiscordSummarySink").Logger(),
	}
}

// OnSummary sends the report. Delivery errors are logged, never returned.
func (s *SummarySink) OnSummary(ctx context.Context, report *models.RunReport) {
	if report == nil || s.config.WebhookURL == "" {
		return
	}
	if s.config.OnlyOnFailure && report.FailedCount() == 0 && len(report.Warnings) == 0 {
		s.logger.Debug().Str("session_id", report.Session.ID).Msg("All probes succeeded, notification skipped")
		return
	}

	// The summary file is missing when its write failed.
	attachment := ""
	if s.config.AttachSummary && report.Session.SummaryPath != "" {
		if _, err := os.Stat(report.Session.SummaryPath); err == nil {
			attachment = report.Session.SummaryPath
		}
	}

	err := s.notifier.SendNotification(ctx, s.config.WebhookURL, BuildRunPayload(report, s.config.Username), attachment)
	if err != nil {
		s.logger.Error().Err(err).Str("session_id", report.Session.ID).Msg("Failed to deliver run summary")
	}
}

// BuildRunPayload formats a report as a single embed.
func BuildRunPayload(report *models.RunReport, username string) DiscordMessagePayload {
	succeeded := report.SucceededCount()
	failed := report.FailedCount()

	color := ColorSuccess
	switch {
	case failed > 0 && succeeded == 0:
		color = ColorFailure
	case failed > 0 || report.Cancelled || len(report.Warnings) > 0:
		color = ColorWarning
	}

	title := "Country probe completed"
	if report.Cancelled {
		title = "Country probe cancelled"
	}

	fields := []DiscordEmbedField{
		{Name: "Session", Value: report.Session.ID, Inline: true},
		{Name: "Probed", Value: fmt.Sprintf("%d", len(report.Outcomes)), Inline: true},
		{Name: "Succeeded", Value: fmt.Sprintf("%d", succeeded), Inline: true},
		{Name: "Failed", Value: fmt.Sprintf("%d", failed), Inline: true},
		{Name: "Duration", Value: report.Duration().Round(time.Millisecond).String(), Inline: true},
	}
	if len(report.Warnings) > 0 {
		fields = append(fields, DiscordEmbedField{Name: "Warnings", Value: fmt.Sprintf("%d artifacts failed to persist", len(report.Warnings))})
	}
	if codes := failedCodes(report.Outcomes); codes != "" {
		fields = append(fields, DiscordEmbedField{Name: "Failed codes", Value: codes})
	}

	finished := report.FinishedAt
	if finished.IsZero() {
		finished = time.Now()
	}

	return DiscordMessagePayload{
		Username: username,
		Embeds: []DiscordEmbed{{
			Title:       title,
			Description: fmt.Sprintf("Target: `%s`", report.TargetURL),
			Timestamp:   finished.Format(time.RFC3339),
			Color:       color,
			Fields:      fields,
			Footer:      &DiscordEmbedFooter{Text: "geoprobe"},
		}},
	}
}

func failedCodes(outcomes []models.ProbeOutcome) string {
	var codes []string
	total := 0
	for _, o := range outcomes {
		if o.Succeeded {
			continue
		}
		total++
		if len(codes) < maxFailedCodesListed {
			codes = append(codes, o.Code)
		}
	}
	if total == 0 {
		return ""
	}
	out := strings.Join(codes, ", ")
	if total > len(codes) {
		out += fmt.Sprintf(" and %d more", total-len(codes))
	}
	return out
}
