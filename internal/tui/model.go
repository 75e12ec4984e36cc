// Package tui is an interactive terminal client for the app state machine.
// Every key press becomes one action; errors fade after a TTL through
// REMOVE_ERROR ticks.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/robalobadob/wordle-core/internal/app"
)

// dismissErrorMsg asks the model to drop one error. Gen is the undo
// generation the tick was scheduled in; ticks from an older generation are
// ignored because undo rewinds error ids.
type dismissErrorMsg struct {
	ID  int
	Gen int
}

// Model contains the Bubbletea state for the game client.
type Model struct {
	state    app.State
	history  []app.State
	gen      int
	keys     keyMap
	help     help.Model
	title    string
	errorTTL time.Duration
	width    int
	quitting bool
}

// Option configures a Model.
type Option func(*Model)

// WithTitle sets the header line, e.g. the daily date.
func WithTitle(title string) Option {
	return func(m *Model) { m.title = title }
}

// WithErrorTTL sets how long errors stay on screen. Zero keeps them until
// the next round.
func WithErrorTTL(d time.Duration) Option {
	return func(m *Model) { m.errorTTL = d }
}

// NewModel wraps a ready state. Callers normally apply NEW_GAME first.
func NewModel(st app.State, opts ...Option) Model {
	m := Model{
		state:    st,
		keys:     defaultKeys(),
		help:     help.New(),
		title:    "WORDLE",
		errorTTL: 3 * time.Second,
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Init starts the Bubbletea program.
func (m Model) Init() tea.Cmd {
	return m.dismissCmds(0)
}

// State returns the current app state.
func (m Model) State() app.State {
	return m.state
}

// Quitting reports whether the user asked to leave.
func (m Model) Quitting() bool {
	return m.quitting
}
