// Package reporter renders probe outcomes as a summary table.
package reporter

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"github.com/rodaine/table"

	"github.com/aleister1102/geoprobe/internal/models"
)

// Options controls table layout.
type Options struct {
	Padding             int
	MaxDescriptionWidth int
}

// DefaultOptions returns the layout used by Render.
func DefaultOptions() Options {
	return Options{
		Padding:             DefaultPadding,
		MaxDescriptionWidth: DefaultMaxDescriptionWidth,
	}
}

// Row is one rendered line of the summary.
type Row struct {
	Code        string
	Country     string
	Status      string
	Description string
}

// Stats are the counts printed under the table.
type Stats struct {
	Total             int
	Succeeded         int
	Failed            int
	TransportFailures int
}

// Summary is an immutable rendering of a sequence of outcomes.
type Summary struct {
	rows    []Row
	stats   Stats
	options Options
}

// Render builds a Summary with the default layout. Row order equals input order.
func Render(outcomes []models.ProbeOutcome) Summary {
	return RenderWithOptions(outcomes, DefaultOptions())
}

// RenderWithOptions builds a Summary with a custom layout.
func RenderWithOptions(outcomes []models.ProbeOutcome, options Options) Summary {
	if options.Padding <= 0 {
		options.Padding = DefaultPadding
	}

	s := Summary{
		rows:    make([]Row, 0, len(outcomes)),
		options: options,
	}

	for _, o := range outcomes {
		s.rows = append(s.rows, buildRow(o, options.MaxDescriptionWidth))
		s.stats.Total++
		switch {
		case o.Succeeded:
			s.stats.Succeeded++
		case o.IsTransportFailure():
			s.stats.Failed++
			s.stats.TransportFailures++
		default:
			s.stats.Failed++
		}
	}

	return s
}

func buildRow(o models.ProbeOutcome, maxWidth int) Row {
	row := Row{
		Code:    strings.ToUpper(o.Code),
		Country: o.Country,
	}
	if o.Succeeded {
		row.Status = fmt.Sprintf("%d %s", o.StatusCode, SuccessMarker)
		return row
	}
	row.Status = fmt.Sprintf("%d %s", o.StatusCode, FailureMarker)
	row.Description = collapseWhitespace(o.Detail)
	if maxWidth > 0 {
		row.Description = runewidth.Truncate(row.Description, maxWidth, "…")
	}
	return row
}

// collapseWhitespace folds newlines and runs of spaces into single spaces.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Rows returns a copy of the rendered rows.
func (s Summary) Rows() []Row {
	out := make([]Row, len(s.rows))
	copy(out, s.rows)
	return out
}

// Stats returns the outcome counts.
func (s Summary) Stats() Stats {
	return s.stats
}

// Text returns the plain table, suitable for summary.txt.
func (s Summary) Text() string {
	return s.print(nil, nil)
}

// ColorText returns the table with a colorized header and code column.
// Colors are dropped automatically when stdout is not a terminal.
func (s Summary) ColorText() string {
	header := color.New(color.FgBlue, color.Bold).SprintfFunc()
	code := color.New(color.FgCyan).SprintfFunc()
	return s.print(header, code)
}

// Footer is the one-line count summary.
func (s Summary) Footer() string {
	return fmt.Sprintf("%d countries probed: %d succeeded, %d failed (%d transport failures)",
		s.stats.Total, s.stats.Succeeded, s.stats.Failed, s.stats.TransportFailures)
}

func (s Summary) print(header, firstColumn table.Formatter) string {
	var buf bytes.Buffer

	tbl := table.New(HeaderCode, HeaderCountry, HeaderStatus, HeaderDescription).
		WithWriter(&buf).
		WithPadding(s.options.Padding).
		WithWidthFunc(runewidth.StringWidth)
	if header != nil {
		tbl.WithHeaderFormatter(header)
	}
	if firstColumn != nil {
		tbl.WithFirstColumnFormatter(firstColumn)
	}

	for _, row := range s.rows {
		tbl.AddRow(row.Code, row.Country, row.Status, row.Description)
	}
	tbl.Print()

	return buf.String()
}
