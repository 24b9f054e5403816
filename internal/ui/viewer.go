package ui

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"kevlar/internal/domain"
)

// Viewer displays a run summary interactively
type Viewer interface {
	View(summary *domain.RecordSummary) error
}

// HistoryViewer browses a run's events and artifacts in a TUI
type HistoryViewer struct {
	out io.Writer
}

// NewHistoryViewer creates a new HistoryViewer. Messages that do not need the
// TUI are written to out.
func NewHistoryViewer(out io.Writer) *HistoryViewer {
	if out == nil {
		out = os.Stdout
	}
	return &HistoryViewer{out: out}
}

// tviewColor maps a status onto a tview color tag
func tviewColor(status domain.Status) string {
	switch status {
	case domain.Passed:
		return "green"
	case domain.KnownFailure:
		return "yellow"
	case domain.Failed:
		return "red"
	case domain.Skipped:
		return "fuchsia"
	}
	return "white"
}

// View displays the event history in an interactive TUI
func (hv *HistoryViewer) View(summary *domain.RecordSummary) error {
	if len(summary.History) == 0 {
		StatusColor(summary.Status).Fprintf(hv.out, "%s finished with %s and recorded no events\n", summary.Name, summary.Status)
		return nil
	}

	app := tview.NewApplication()

	// Events on the left side
	list := tview.NewList().
		ShowSecondaryText(false).
		SetHighlightFullLine(true)
	for i := range summary.History {
		list.AddItem(listItemText(i, summary.History[i]), "", 0, nil)
	}
	list.SetMainTextColor(tview.Styles.PrimaryTextColor).
		SetSelectedTextColor(tcell.ColorWhite).
		SetSelectedBackgroundColor(tcell.ColorDarkCyan)

	// Details of the selected event on the right side
	detailsView := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(true).
		SetWordWrap(true)

	flex := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(list, 0, 1, true).
		AddItem(detailsView, 0, 2, false)

	headerView := tview.NewTextView().
		SetTextAlign(tview.AlignCenter).
		SetDynamicColors(true).
		SetText(headerText(summary))

	updateDetails := func() {
		index := list.GetCurrentItem()
		if index >= 0 && index < len(summary.History) {
			detailsView.SetText(formatEventDetails(index+1, summary.History[index]))
			detailsView.ScrollToBeginning()
		}
	}

	list.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyEnter, tcell.KeyRight:
			app.SetFocus(detailsView)
			return nil
		case tcell.KeyCtrlC, tcell.KeyEsc:
			app.Stop()
			return nil
		case tcell.KeyRune:
			if event.Rune() == 'q' {
				app.Stop()
				return nil
			}
		}
		return event
	})

	detailsView.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyLeft, tcell.KeyEsc:
			app.SetFocus(list)
			return nil
		case tcell.KeyCtrlC:
			app.Stop()
			return nil
		}
		return event
	})

	list.SetChangedFunc(func(index int, mainText string, secondaryText string, shortcut rune) {
		updateDetails()
	})
	updateDetails()

	mainLayout := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(headerView, 1, 0, false).
		AddItem(tview.NewBox(), 1, 0, false).
		AddItem(flex, 0, 1, true)

	if err := app.SetRoot(mainLayout, true).SetFocus(list).Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func headerText(summary *domain.RecordSummary) string {
	return fmt.Sprintf(" %s [%s]%s[white] (%d events) | ↑↓ navigate, → details, ← back, q to exit ",
		tview.Escape(summary.Name), tviewColor(summary.Status), summary.Status, len(summary.History))
}

func listItemText(index int, event domain.Event) string {
	text := event.Status.String()
	if event.Description != "" {
		text += " " + event.Description
	}
	return fmt.Sprintf("[yellow]%d.[%s] %s[white]", index+1, tviewColor(event.Status), tview.Escape(text))
}

// formatEventDetails formats one event for display using tview color tags
func formatEventDetails(number int, event domain.Event) string {
	var builder strings.Builder
	w := tabwriter.NewWriter(&builder, 0, 0, 2, ' ', 0)

	fmt.Fprintf(w, "[%s]Event %d: %s[white]\n\n", tviewColor(event.Status), number, event.Status)

	if event.Description != "" {
		fmt.Fprintf(w, "[yellow]Description:[white]\n%s\n\n", tview.Escape(event.Description))
	}

	if len(event.Artifacts) == 0 {
		fmt.Fprintf(w, "[gray]No artifacts captured[white]\n")
	} else {
		fmt.Fprintf(w, "[yellow]Artifacts (%d):[white]\n", len(event.Artifacts))
		for _, artifact := range event.Artifacts {
			fmt.Fprintf(w, "  [cyan]%s\t[white]%s\t%s\n", artifact.Kind, tview.Escape(artifact.Label), tview.Escape(artifact.Path))
			if artifact.Description != "" {
				fmt.Fprintf(w, "  \t[gray]%s[white]\n", tview.Escape(artifact.Description))
			}
		}
	}

	w.Flush()
	return builder.String()
}

var _ Viewer = (*HistoryViewer)(nil)
