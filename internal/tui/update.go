package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/robalobadob/wordle-core/internal/app"
)

// historyLimit caps the undo stack.
const historyLimit = 32

// Update handles incoming messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case dismissErrorMsg:
		if msg.Gen != m.gen {
			return m, nil
		}
		m.state = app.Reduce(m.state, app.RemoveErrorAction(msg.ID))
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Undo):
		return m.undo()
	case key.Matches(msg, m.keys.Submit):
		return m.dispatch(app.SubmitGuessAction())
	case key.Matches(msg, m.keys.Delete):
		return m.dispatch(app.RemoveCharacterAction())
	case key.Matches(msg, m.keys.NewGame):
		return m.dispatch(app.NewGameAction())
	}

	if msg.Type == tea.KeyRunes && len(msg.Runes) == 1 {
		return m.dispatch(app.AddCharacterAction(strings.ToUpper(string(msg.Runes))))
	}
	return m, nil
}

// dispatch applies a, remembering the prior state when the action
// succeeds, and schedules dismissal of any error it produced.
func (m Model) dispatch(a app.Action) (tea.Model, tea.Cmd) {
	prevMax := maxErrorID(m.state)
	next, err := app.Apply(m.state, a)
	if err != nil {
		next = m.state.WithError(err.Error())
	} else {
		m.history = append(m.history, m.state)
		if len(m.history) > historyLimit {
			m.history = m.history[len(m.history)-historyLimit:]
		}
	}
	m.state = next
	return m, m.dismissCmds(prevMax)
}

// undo restores the previous state. Pending ticks are invalidated and
// every restored error gets a fresh TTL.
func (m Model) undo() (tea.Model, tea.Cmd) {
	n := len(m.history)
	if n == 0 {
		return m, nil
	}
	m.state = m.history[n-1]
	m.history = m.history[:n-1]
	m.gen++
	return m, m.dismissCmds(0)
}

// dismissCmds schedules REMOVE_ERROR for every error newer than after.
func (m Model) dismissCmds(after int) tea.Cmd {
	if m.errorTTL <= 0 {
		return nil
	}
	var cmds []tea.Cmd
	for _, e := range m.state.Errors() {
		if e.ID <= after {
			continue
		}
		msg := dismissErrorMsg{ID: e.ID, Gen: m.gen}
		cmds = append(cmds, tea.Tick(m.errorTTL, func(time.Time) tea.Msg { return msg }))
	}
	return tea.Batch(cmds...)
}

func maxErrorID(st app.State) int {
	highest := 0
	for _, e := range st.Errors() {
		if e.ID > highest {
			highest = e.ID
		}
	}
	return highest
}
