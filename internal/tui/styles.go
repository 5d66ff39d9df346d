package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Makepad-fr/orderup/internal/ui"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	pendingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	accentStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	mutedStyle   = lipgloss.NewStyle().Faint(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)

	selectedStyle = lipgloss.NewStyle().Bold(true).Reverse(true)
	doneStyle     = lipgloss.NewStyle().Faint(true).Strikethrough(true)
	helpStyle     = lipgloss.NewStyle().Faint(true)
	activeTab     = lipgloss.NewStyle().Bold(true).Underline(true).Foreground(lipgloss.Color("12"))

	boxChecked   = "☑"
	boxUnchecked = "☐"
)

// badgeStyle colours a status the way the CLI badge does.
func badgeStyle(status string) lipgloss.Style {
	c := lipgloss.Color("8")
	switch ui.StatusTone(status) {
	case ui.ToneInfo:
		c = lipgloss.Color("12")
	case ui.ToneSuccess:
		c = lipgloss.Color("42")
	case ui.TonePending:
		c = lipgloss.Color("214")
	}
	return lipgloss.NewStyle().Foreground(c)
}

func badge(status string) string {
	return badgeStyle(status).Render("[" + ui.StatusLabel(status) + "]")
}

func checkbox(on bool) string {
	if on {
		return successStyle.Render(boxChecked)
	}
	return mutedStyle.Render(boxUnchecked)
}

func panelString(inner string) string {
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("8")).
		Padding(0, 1)
	return border.Render(inner)
}

func progressBar(done, total, width int) string {
	return accentStyle.Render(ui.ProgressBar(done, total, width))
}
