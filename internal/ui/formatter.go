package ui

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"

	"kevlar/internal/domain"
)

// Formatter formats and displays run summaries
type Formatter struct {
	out io.Writer
}

// NewFormatter creates a new Formatter writing to out
func NewFormatter(out io.Writer) *Formatter {
	return &Formatter{out: out}
}

// StatusColor returns the color used for a status
func StatusColor(status domain.Status) *color.Color {
	switch status {
	case domain.Passed:
		return color.New(color.FgGreen)
	case domain.KnownFailure:
		return color.New(color.FgYellow)
	case domain.Failed:
		return color.New(color.FgRed)
	case domain.Skipped:
		return color.New(color.FgMagenta)
	}
	return color.New(color.FgWhite)
}

// PrintSummary prints a statistics table followed by the event history
func (f *Formatter) PrintSummary(summary *domain.RecordSummary) {
	cyan := color.New(color.FgCyan)
	white := color.New(color.FgWhite)

	// Print header
	fmt.Fprint(f.out, "\n")
	cyan.Fprintln(f.out, "╔═══════════════════════════════════════════════════════════════╗")
	cyan.Fprintln(f.out, "║                       Kevlar Test Result                      ║")
	cyan.Fprintln(f.out, "╚═══════════════════════════════════════════════════════════════╝")
	fmt.Fprintln(f.out)

	artifacts := 0
	for _, event := range summary.History {
		artifacts += len(event.Artifacts)
	}

	rows := []struct {
		label string
		value string
		color *color.Color
	}{
		{"Test Name", summary.Name, white},
		{"Run ID", summary.RunID, white},
		{"Status", summary.Status.String(), StatusColor(summary.Status)},
		{"Events", fmt.Sprintf("%d", len(summary.History)), white},
		{"Artifacts", fmt.Sprintf("%d", artifacts), white},
		{"Duration", formatDuration(summary), white},
		{"Workspace", summary.Workspace, white},
	}

	fmt.Fprintln(f.out, "┌─────────────────────────────────┬─────────────────────────────┐")
	for i, row := range rows {
		fmt.Fprintf(f.out, "│ %-31s │ ", row.label)
		row.color.Fprintf(f.out, "%-27s │\n", row.value)
		if i < len(rows)-1 {
			fmt.Fprintln(f.out, "├─────────────────────────────────┼─────────────────────────────┤")
		}
	}
	fmt.Fprintln(f.out, "└─────────────────────────────────┴─────────────────────────────┘")

	if len(summary.History) > 0 {
		fmt.Fprintln(f.out)
		cyan.Fprintln(f.out, "History:")
		f.PrintHistory(summary.History)
	}

	// Print summary line
	fmt.Fprintln(f.out)
	if summary.Status.IsSuccessful() {
		StatusColor(summary.Status).Fprintf(f.out, "✓ %s finished with %s\n", summary.Name, summary.Status)
	} else {
		StatusColor(summary.Status).Fprintf(f.out, "✗ %s finished with %s\n", summary.Name, summary.Status)
	}
}

// PrintHistory prints every event, with its artifacts as children
func (f *Formatter) PrintHistory(history []domain.Event) {
	for i, event := range history {
		isLastEvent := i == len(history)-1
		connector := "├── "
		childPrefix := "│   "
		if isLastEvent {
			connector = "└── "
			childPrefix = "    "
		}

		fmt.Fprint(f.out, connector)
		StatusColor(event.Status).Fprintln(f.out, event.String())

		for j, artifact := range event.Artifacts {
			branch := "├── "
			if j == len(event.Artifacts)-1 {
				branch = "└── "
			}
			fmt.Fprintf(f.out, "%s%s%s\n", childPrefix, branch, color.YellowString("[%s] %s: %s", artifact.Kind, artifact.Label, artifact.Path))
		}
	}
}

func formatDuration(summary *domain.RecordSummary) string {
	if summary.FinishedAt.IsZero() || summary.StartedAt.IsZero() {
		return "-"
	}
	return fmt.Sprintf("%.2fs", summary.FinishedAt.Sub(summary.StartedAt).Round(10*time.Millisecond).Seconds())
}
