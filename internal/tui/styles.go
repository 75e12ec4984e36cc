package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/robalobadob/wordle-core/internal/game"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	cellStyle  = lipgloss.NewStyle().Width(3).Align(lipgloss.Center).Bold(true).MarginRight(1)
	keyStyle   = lipgloss.NewStyle().Padding(0, 1).MarginRight(1)

	matchStyle = lipgloss.NewStyle().Background(lipgloss.Color("34")).Foreground(lipgloss.Color("231"))
	closeStyle = lipgloss.NewStyle().Background(lipgloss.Color("178")).Foreground(lipgloss.Color("16"))
	wrongStyle = lipgloss.NewStyle().Background(lipgloss.Color("240")).Foreground(lipgloss.Color("231"))
	unsetStyle = lipgloss.NewStyle().Background(lipgloss.Color("236")).Foreground(lipgloss.Color("252"))

	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	winStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true).MarginTop(1)
	loseStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true).MarginTop(1)
	sectionStyle = lipgloss.NewStyle().MarginTop(1)
)

// verdictStyle returns the fill for a verdict.
func verdictStyle(v game.Verdict) lipgloss.Style {
	switch v {
	case game.Match:
		return matchStyle
	case game.Close:
		return closeStyle
	case game.Wrong:
		return wrongStyle
	default:
		return unsetStyle
	}
}
