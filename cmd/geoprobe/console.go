package main

import (
	"context"
	"fmt"
	"io"

	"github.com/aleister1102/geoprobe/internal/models"
	"github.com/aleister1102/geoprobe/internal/reporter"
)

// consoleSink prints the finished summary table.
type consoleSink struct {
	out     io.Writer
	color   bool
	options reporter.Options
}

func (c *consoleSink) OnSummary(_ context.Context, report *models.RunReport) {
	summary := reporter.RenderWithOptions(report.Outcomes, c.options)

	text := summary.Text()
	if c.color {
		text = summary.ColorText()
	}
	fmt.Fprintln(c.out, text)
	fmt.Fprintln(c.out, summary.Footer())

	if report.PersistFailures > 0 {
		fmt.Fprintf(c.out, "%d artifacts failed to persist\n", report.PersistFailures)
	}
	if other := len(report.Warnings) - report.PersistFailures; other > 0 {
		fmt.Fprintf(c.out, "%d other warnings (history or export), see the log\n", other)
	}
	if report.Cancelled {
		fmt.Fprintln(c.out, "Run cancelled: only the countries probed so far are listed")
	}
	fmt.Fprintf(c.out, "Results saved to %s\n", report.Session.RootPath)
}
