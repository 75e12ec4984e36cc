package app

import (
	"errors"
	"fmt"
)

// ActionType tags an Action.
type ActionType string

const (
	ActionSetProperties   ActionType = "SET_PROPERTIES"
	ActionLoadData        ActionType = "LOAD_DATA"
	ActionNewGame         ActionType = "NEW_GAME"
	ActionAddCharacter    ActionType = "ADD_CHARACTER"
	ActionRemoveCharacter ActionType = "REMOVE_CHARACTER"
	ActionSubmitGuess     ActionType = "SUBMIT_GUESS"
	ActionRemoveError     ActionType = "REMOVE_ERROR"
)

// Known reports whether t is one of the action types Reduce handles.
func (t ActionType) Known() bool {
	switch t {
	case ActionSetProperties, ActionLoadData, ActionNewGame, ActionAddCharacter,
		ActionRemoveCharacter, ActionSubmitGuess, ActionRemoveError:
		return true
	}
	return false
}

// Action is the tagged union dispatched by a UI. Only the fields relevant
// to Type are read.
type Action struct {
	Type ActionType `json:"type"`

	// SET_PROPERTIES
	MaxGuesses int `json:"maxGuesses,omitempty"`
	WordLength int `json:"wordLength,omitempty"`

	// LOAD_DATA
	Guesses []string `json:"guesses,omitempty"`
	Answers []string `json:"answers,omitempty"`

	// NEW_GAME (optional fixed answer)
	Answer string `json:"answer,omitempty"`

	// ADD_CHARACTER
	Character string `json:"character,omitempty"`

	// REMOVE_ERROR
	ID int `json:"id,omitempty"`
}

func SetPropertiesAction(maxGuesses, wordLength int) Action {
	return Action{Type: ActionSetProperties, MaxGuesses: maxGuesses, WordLength: wordLength}
}

func LoadDataAction(guesses, answers []string) Action {
	return Action{Type: ActionLoadData, Guesses: guesses, Answers: answers}
}

func NewGameAction() Action { return Action{Type: ActionNewGame} }

// NewGameWithAction starts a round with a fixed answer.
func NewGameWithAction(answer string) Action {
	return Action{Type: ActionNewGame, Answer: answer}
}

func AddCharacterAction(ch string) Action {
	return Action{Type: ActionAddCharacter, Character: ch}
}

func RemoveCharacterAction() Action { return Action{Type: ActionRemoveCharacter} }
func SubmitGuessAction() Action { return Action{Type: ActionSubmitGuess} }

func RemoveErrorAction(id int) Action { return Action{Type: ActionRemoveError, ID: id} }

// Apply runs the transition for a and returns the new state. On failure the
// original state is returned with the error; unknown types yield ErrUnknownAction.
func Apply(s State, a Action) (State, error) {
	switch a.Type {
	case ActionSetProperties:
		return s.SetProperties(a.MaxGuesses, a.WordLength)
	case ActionLoadData:
		return s.LoadData(a.Guesses, a.Answers)
	case ActionNewGame:
		if a.Answer != "" {
			return s.NewGameWith(a.Answer)
		}
		return s.NewGame()
	case ActionAddCharacter:
		return s.AddCharacter(a.Character)
	case ActionRemoveCharacter:
		return s.RemoveCharacter()
	case ActionSubmitGuess:
		return s.SubmitGuess()
	case ActionRemoveError:
		return s.RemoveError(a.ID), nil
	default:
		return s, fmt.Errorf("%w: %q", ErrUnknownAction, a.Type)
	}
}

// Reduce is the top-level dispatch function. It never fails: a rejected
// action leaves the state as it was plus one pending error, and an unknown
// action leaves it entirely unchanged.
func Reduce(s State, a Action) State {
	next, err := Apply(s, a)
	switch {
	case err == nil:
		return next
	case errors.Is(err, ErrUnknownAction):
		return s
	default:
		return s.WithError(err.Error())
	}
}
