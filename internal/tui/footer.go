package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// FooterModel renders the key hints and the run status.
type FooterModel struct {
	keys     KeyMap
	width    int
	paused   bool
	done     bool
	hasError bool
}

// NewFooterModel creates a footer showing the bindings of keys.
func NewFooterModel(keys KeyMap) FooterModel {
	return FooterModel{keys: keys}
}

// SetWidth updates the available width.
func (f *FooterModel) SetWidth(w int) { f.width = w }

// SetPaused toggles the paused indicator.
func (f *FooterModel) SetPaused(p bool) { f.paused = p }

// SetDone toggles the done indicator.
func (f *FooterModel) SetDone(d bool) { f.done = d }

// SetError toggles the error indicator.
func (f *FooterModel) SetError(e bool) { f.hasError = e }

// status returns the rendered status label.
func (f FooterModel) status() string {
	switch {
	case f.hasError:
		return statusErrorStyle.Render("FAILED")
	case f.done:
		return statusDoneStyle.Render("DONE")
	case f.paused:
		return statusPausedStyle.Render("PAUSED")
	default:
		return statusRunningStyle.Render("SOLVING")
	}
}

// View renders the footer.
func (f FooterModel) View() string {
	hints := make([]string, 0, len(f.keys.ShortHelp()))
	for _, b := range f.keys.ShortHelp() {
		h := b.Help()
		hints = append(hints, footerKeyStyle.Render(h.Key)+" "+footerDescStyle.Render(h.Desc))
	}
	left := " " + strings.Join(hints, footerDescStyle.Render("  "))
	right := f.status() + " "
	gap := max(f.width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return left + strings.Repeat(" ", gap) + right
}
