// internal/app/state.go
//
// Application state machine composed around the game engine.
// Responsibilities:
//   - Track setup progress: unconfigured → awaiting vocabulary → ready.
//   - Edit the active guess buffer one character at a time.
//   - Aggregate per-letter status across submitted guesses.
//   - Reveal the answer and final letter status once the round is over.
//   - Collect pending error messages for the UI.
//
// Notes:
//   - State is an immutable value. Each transition returns a new State and
//     the receiver remains valid, which is what the session undo stack and
//     the pure Reduce function rely on.
//   - Game-rule failures come back as errors from the transition methods;
//     Reduce converts them into ErrorEntry values.

package app

import (
	"fmt"
	"slices"

	"github.com/robalobadob/wordle-core/internal/game"
)

// Phase is the setup stage of the state machine.
type Phase int

const (
	Unconfigured Phase = iota
	AwaitingVocabulary
	Ready
)

func (p Phase) String() string {
	switch p {
	case Unconfigured:
		return "unconfigured"
	case AwaitingVocabulary:
		return "awaiting_vocabulary"
	case Ready:
		return "ready"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// State is the complete, read-only application state handed to renderers.
type State struct {
	engine game.Engine
	phase  Phase
	src    game.Source

	active   string
	status   CharacterStatus
	gameOver bool
	answer   string

	errors      []ErrorEntry
	lastErrorID int
}

// Option configures a new State.
type Option func(*State)

// WithSource sets the random source used to pick answers for new games.
// Without it the process random source is used.
func WithSource(src game.Source) Option {
	return func(s *State) { s.src = src }
}

// New returns an unconfigured State.
func New(opts ...Option) State {
	var s State
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// Using returns a copy of s whose later NEW_GAME actions pick answers from
// src. A nil src restores the process random source.
func (s State) Using(src game.Source) State {
	s.src = src
	return s
}

// SetProperties configures the engine dimensions. Vocabulary and any round
// in progress are discarded.
func (s State) SetProperties(maxGuesses, wordLength int) (State, error) {
	e, err := s.engine.Configure(maxGuesses, wordLength)
	if err != nil {
		return s, err
	}
	s.engine = e
	s.phase = AwaitingVocabulary
	return s.clearRound(), nil
}

// LoadData hands the vocabulary to the engine. Properties must be set first.
func (s State) LoadData(guesses, answers []string) (State, error) {
	if s.phase == Unconfigured {
		return s, fmt.Errorf("%w: properties must be set before loading data", game.ErrNotConfigured)
	}
	e, err := s.engine.LoadVocabulary(game.NewWordSet(guesses...), game.NewWordSet(answers...))
	if err != nil {
		return s, err
	}
	s.engine = e
	s.phase = Ready
	return s.clearRound(), nil
}

// NewGame starts a round with a random answer from the configured source.
func (s State) NewGame() (State, error) {
	return s.newGame(func(e game.Engine) (game.Engine, error) { return e.StartRound(s.src) })
}

// NewGameWith starts a round with a fixed answer.
func (s State) NewGameWith(answer string) (State, error) {
	return s.newGame(func(e game.Engine) (game.Engine, error) { return e.StartRoundWith(answer) })
}

func (s State) newGame(start func(game.Engine) (game.Engine, error)) (State, error) {
	if s.phase != Ready || !s.engine.HasVocabulary() {
		return s, fmt.Errorf("%w: data has not been loaded", game.ErrNotConfigured)
	}
	e, err := start(s.engine)
	if err != nil {
		return s, err
	}
	s.engine = e
	return s.clearRound(), nil
}

// AddCharacter appends one uppercase letter to the active guess.
func (s State) AddCharacter(ch string) (State, error) {
	if err := s.checkEditable(); err != nil {
		return s, err
	}
	if len(s.active) >= s.engine.WordLength() {
		return s, fmt.Errorf("%w: a guess has %d letters", ErrBufferFull, s.engine.WordLength())
	}
	if len(ch) != 1 || ch[0] < 'A' || ch[0] > 'Z' {
		return s, fmt.Errorf("%w: %q", ErrInvalidCharacter, ch)
	}
	s.active += ch
	return s, nil
}

// RemoveCharacter drops the last letter of the active guess.
func (s State) RemoveCharacter() (State, error) {
	if err := s.checkEditable(); err != nil {
		return s, err
	}
	if s.active == "" {
		return s, ErrBufferEmpty
	}
	s.active = s.active[:len(s.active)-1]
	return s, nil
}

func (s State) checkEditable() error {
	if !s.engine.InRound() {
		return fmt.Errorf("%w: start a new game first", game.ErrNotConfigured)
	}
	if s.gameOver {
		return game.ErrRoundOver
	}
	return nil
}

// SubmitGuess sends the full active guess to the engine, merges the result
// into the letter status and, when the round ends, reveals the answer.
func (s State) SubmitGuess() (State, error) {
	if !s.engine.InRound() {
		return s, fmt.Errorf("%w: start a new game first", game.ErrNotConfigured)
	}
	if s.gameOver {
		return s, game.ErrRoundOver
	}
	if len(s.active) != s.engine.WordLength() {
		return s, fmt.Errorf("%w: a guess has %d letters", ErrBufferNotFull, s.engine.WordLength())
	}

	guess := s.active
	e, err := s.engine.SubmitGuess(guess)
	if err != nil {
		return s, err
	}
	s.engine = e
	s.active = ""
	if result, ok := e.LastResult(); ok {
		s.status = s.status.merge(guess, result)
	}

	if e.IsRoundOver() {
		answer, err := e.RevealAnswer()
		if err != nil {
			return s, err
		}
		s.gameOver = true
		s.answer = answer
		s.status = revealStatus(answer)
	}
	return s, nil
}

// WithError appends a pending error message under a fresh id.
func (s State) WithError(msg string) State {
	s.lastErrorID++
	s.errors = append(slices.Clone(s.errors), ErrorEntry{ID: s.lastErrorID, Message: msg})
	return s
}

// RemoveError drops the pending error with the given id. Unknown ids are ignored.
func (s State) RemoveError(id int) State {
	i := slices.IndexFunc(s.errors, func(e ErrorEntry) bool { return e.ID == id })
	if i < 0 {
		return s
	}
	s.errors = slices.Delete(slices.Clone(s.errors), i, i+1)
	return s
}

func (s State) clearRound() State {
	s.active = ""
	s.status = CharacterStatus{}
	s.gameOver = false
	s.answer = ""
	return s
}

func (s State) Phase() Phase { return s.phase }
func (s State) Engine() game.Engine { return s.engine }
func (s State) MaxGuesses() int { return s.engine.MaxGuesses() }
func (s State) WordLength() int { return s.engine.WordLength() }
func (s State) Guesses() []string { return s.engine.Guesses() }
func (s State) Results() []game.GuessResult { return s.engine.Results() }
func (s State) ActiveGuess() string { return s.active }
func (s State) IsGameOver() bool { return s.gameOver }
func (s State) InRound() bool { return s.engine.InRound() }
func (s State) Status() CharacterStatus { return s.status }

// Answer returns the secret once the game is over.
func (s State) Answer() (string, bool) { return s.answer, s.gameOver }

// IsWin reports whether the finished round was won.
func (s State) IsWin() bool { return s.gameOver && s.engine.IsWin() }

// Errors returns a copy of the pending errors, oldest first.
func (s State) Errors() []ErrorEntry { return slices.Clone(s.errors) }
