package progress

import (
	"context"
	"fmt"
	"strings"
	"time"
)

func (dm *DisplayManager) displayLoop(ctx context.Context, ticker *time.Ticker, done chan struct{}) {
	defer close(done)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			dm.displayProgress()
		case <-dm.triggerDisplay:
			dm.displayProgress()
		}
	}
}

// displayProgress logs the current state unless it repeats the last line.
func (dm *DisplayManager) displayProgress() {
	output := dm.formatProgress(dm.progress.Info())

	dm.mutex.Lock()
	defer dm.mutex.Unlock()

	if output == "" || output == dm.lastDisplayed {
		return
	}
	dm.lastDisplayed = output
	dm.logger.Info().Msg(output)
}

func (dm *DisplayManager) formatProgress(info ProgressInfo) string {
	if info.Total <= 0 || (info.Status == ProgressStatusIdle && info.Current == 0) {
		return ""
	}

	var builder strings.Builder
	percentage := info.GetPercentage()

	builder.WriteString(fmt.Sprintf("🌍 Probe: %s %s %.1f%% (%d/%d)",
		getStatusIcon(info.Status), createProgressBar(percentage, 20), percentage, info.Current, info.Total))

	if info.Stage != "" {
		builder.WriteString(fmt.Sprintf(" | %s", info.Stage))
	}

	if dm.config.ShowETAEstimation && info.EstimatedETA > 0 && info.Status == ProgressStatusRunning {
		builder.WriteString(fmt.Sprintf(" | ETA: %s", formatDuration(info.EstimatedETA)))
	}

	if info.Message != "" {
		builder.WriteString(fmt.Sprintf(" | %s", info.Message))
	}

	return builder.String()
}

func getStatusIcon(status ProgressStatus) string {
	switch status {
	case ProgressStatusRunning:
		return "⏳"
	case ProgressStatusComplete:
		return "✅"
	case ProgressStatusError:
		return "❌"
	case ProgressStatusCancelled:
		return "🚫"
	case ProgressStatusIdle:
		return "💤"
	default:
		return "❓"
	}
}

func createProgressBar(percentage float64, width int) string {
	if width <= 0 {
		return ""
	}

	filled := int((percentage / 100.0) * float64(width))
	if filled > width {
		filled = width
	}

	return fmt.Sprintf("[%s]", strings.Repeat("█", filled)+strings.Repeat("░", width-filled))
}

func formatDuration(d time.Duration) string {
	switch {
	case d < time.Minute:
		return fmt.Sprintf("%.0fs", d.Seconds())
	case d < time.Hour:
		return fmt.Sprintf("%.0fm", d.Minutes())
	default:
		return fmt.Sprintf("%.1fh", d.Hours())
	}
}
