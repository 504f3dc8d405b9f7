// Package ui holds the interactive review browser and the case listing.
package ui

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"goldrun/internal/domain"
	"goldrun/internal/storage"
)

// ReviewBrowser displays failing cases of the last run in an interactive TUI
type ReviewBrowser struct {
	storage storage.Storage
}

// NewReviewBrowser creates a new ReviewBrowser
func NewReviewBrowser(st storage.Storage) *ReviewBrowser {
	return &ReviewBrowser{storage: st}
}

// View displays the failures and persists the reviewed marks as they change
func (rb *ReviewBrowser) View(results *domain.ResultsOutput) error {
	failures := results.Failures()
	if len(failures) == 0 {
		color.Green("✓ No failing cases in the last run!")
		return nil
	}

	app := tview.NewApplication()

	list := tview.NewList().
		ShowSecondaryText(false).
		SetHighlightFullLine(true)
	for i, f := range failures {
		list.AddItem(listItemText(f, i), "", 0, nil)
	}
	list.SetMainTextColor(tview.Styles.PrimaryTextColor).
		SetSelectedTextColor(tcell.ColorWhite).
		SetSelectedBackgroundColor(tcell.ColorDarkCyan)

	statsView := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(false)

	detailsView := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(true).
		SetWordWrap(false)

	detailsContainer := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(detailsView, 0, 1, false).
		AddItem(tview.NewBox(), 2, 0, false)

	rightSide := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(statsView, 3, 0, false).
		AddItem(detailsContainer, 0, 1, false)

	flex := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(list, 0, 1, true).
		AddItem(rightSide, 0, 2, false)

	headerView := tview.NewTextView().
		SetTextAlign(tview.AlignCenter).
		SetDynamicColors(true)

	updateHeader := func() {
		headerView.SetText(headerText(failures))
	}
	updateDetails := func() {
		index := list.GetCurrentItem()
		if index >= 0 && index < len(failures) {
			statsView.SetText(formatFailureStats(failures[index]))
			detailsView.SetText(formatFailureDetails(failures[index])).ScrollToBeginning()
		}
	}
	var saveErr error

	list.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyEnter, tcell.KeyRight:
			app.SetFocus(detailsView)
			return nil
		case tcell.KeyCtrlC:
			app.Stop()
			return nil
		case tcell.KeyRune:
			if event.Rune() == 'r' || event.Rune() == 'R' {
				index := list.GetCurrentItem()
				if index >= 0 && index < len(failures) {
					failures[index].Reviewed = !failures[index].Reviewed
					list.SetItemText(index, listItemText(failures[index], index), "")
					updateHeader()
					updateDetails()
					if err := rb.storage.SaveOutput(results); err != nil {
						saveErr = err
						app.Stop()
					}
				}
				return nil
			}
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

	list.SetChangedFunc(func(int, string, string, rune) {
		updateDetails()
	})

	updateHeader()
	updateDetails()

	mainLayout := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(headerView, 1, 0, false).
		AddItem(tview.NewBox(), 1, 0, false).
		AddItem(flex, 0, 1, true)

	if err := app.SetRoot(mainLayout, true).SetFocus(list).Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	if saveErr != nil {
		return fmt.Errorf("failed to save reviewed status: %w", saveErr)
	}
	return nil
}

func countUnreviewed(failures []*domain.CaseFailure) int {
	count := 0
	for _, f := range failures {
		if !f.Reviewed {
			count++
		}
	}
	return count
}

func headerText(failures []*domain.CaseFailure) string {
	return fmt.Sprintf(" Failing Cases (%d total, %d unreviewed) | ↑↓ navigate, [yellow]R[white] mark reviewed, → details, ← back, q quit ",
		len(failures), countUnreviewed(failures))
}

// listItemText formats one entry of the failure list using tview color tags
func listItemText(f *domain.CaseFailure, index int) string {
	name := fmt.Sprintf("%s %02d", f.Suite, f.CaseID)
	if f.Title != "" {
		name += " " + tview.Escape(f.Title)
	}
	if f.Reviewed {
		return fmt.Sprintf("[gray]✓ [yellow]%d.[gray] %s[white]", index+1, name)
	}
	return fmt.Sprintf("[yellow]%d.[white] %s", index+1, name)
}

// formatFailureStats formats the header line above the details
func formatFailureStats(f *domain.CaseFailure) string {
	expected := f.Expected
	if expected == "" {
		expected = "-"
	}
	return fmt.Sprintf("[cyan]input:[white] [yellow]%s[white]\n[cyan]expected:[white] [yellow]%s[white]\n",
		tview.Escape(f.InputPath), tview.Escape(expected))
}

// formatFailureDetails renders a failure's reason, diff and raw output using tview color tags
func formatFailureDetails(f *domain.CaseFailure) string {
	var b strings.Builder

	fmt.Fprintf(&b, "[red]✗ %s case %02d: %s[white]\n\n", f.Suite, f.CaseID, f.Reason)
	if f.Message != "" {
		fmt.Fprintf(&b, "[yellow]Message:[white]\n%s\n\n", tview.Escape(f.Message))
	}

	if f.Rendered != "" {
		b.WriteString("[yellow]Diff (- expected, + actual):[white]\n")
		for _, line := range strings.Split(f.Rendered, "\n") {
			tag := "white"
			switch {
			case strings.HasPrefix(line, "@@"):
				tag = "cyan"
			case strings.HasPrefix(line, "-"):
				tag = "red"
			case strings.HasPrefix(line, "+"):
				tag = "green"
			}
			fmt.Fprintf(&b, "[%s]%s[white]\n", tag, tview.Escape(line))
		}
		b.WriteString("\n")
	}

	if f.Output != "" {
		fmt.Fprintf(&b, "[yellow]Subject output:[white]\n%s\n", tview.Escape(f.Output))
	}
	return b.String()
}
