package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/robalobadob/wordle-core/internal/game"
)

var keyboardRows = []string{"QWERTYUIOP", "ASDFGHJKL", "ZXCVBNM"}

// View renders the board, keyboard, errors and help.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n\n")
	b.WriteString(m.renderBoard())
	b.WriteString(sectionStyle.Render(m.renderKeyboard()))
	b.WriteString("\n")

	if m.state.IsGameOver() {
		answer, _ := m.state.Answer()
		if m.state.IsWin() {
			score, _ := m.state.Engine().Score()
			b.WriteString(winStyle.Render(fmt.Sprintf("Solved in %d/%d. ctrl+n for another.", score, m.state.MaxGuesses())))
		} else {
			b.WriteString(loseStyle.Render(fmt.Sprintf("The word was %s. ctrl+n to try again.", answer)))
		}
		b.WriteString("\n")
	}

	for _, e := range m.state.Errors() {
		b.WriteString(errorStyle.Render("✗ " + e.Message))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	b.WriteString("\n")
	return b.String()
}

// renderBoard draws one row per allowed guess: past guesses with their
// verdicts, then the active buffer, then empty rows.
func (m Model) renderBoard() string {
	guesses := m.state.Guesses()
	results := m.state.Results()
	width := m.state.WordLength()

	rows := make([]string, 0, m.state.MaxGuesses())
	for i := 0; i < m.state.MaxGuesses(); i++ {
		cells := make([]string, width)
		for j := 0; j < width; j++ {
			letter, verdict := " ", game.Unset
			switch {
			case i < len(guesses):
				letter, verdict = guesses[i][j:j+1], results[i][j]
			case i == len(guesses) && j < len(m.state.ActiveGuess()):
				letter = m.state.ActiveGuess()[j : j+1]
			}
			cells[j] = cellStyle.Inherit(verdictStyle(verdict)).Render(letter)
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// renderKeyboard colors each letter by its best known verdict.
func (m Model) renderKeyboard() string {
	status := m.state.Status()
	lines := make([]string, 0, len(keyboardRows))
	for _, row := range keyboardRows {
		keys := make([]string, 0, len(row))
		for i := 0; i < len(row); i++ {
			keys = append(keys, keyStyle.Inherit(verdictStyle(status.Get(row[i]))).Render(row[i:i+1]))
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, keys...))
	}
	return lipgloss.JoinVertical(lipgloss.Center, lines...)
}
