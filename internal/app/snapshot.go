package app

import "github.com/robalobadob/wordle-core/internal/game"

// Snapshot is the JSON view of a State consumed by renderers and bots.
// Answer is null until the game is over.
type Snapshot struct {
	Phase           string                  `json:"phase"`
	MaxGuesses      int                     `json:"maxGuesses"`
	WordLength      int                     `json:"wordLength"`
	Guesses         []string                `json:"guesses"`
	Results         []game.GuessResult      `json:"results"`
	ActiveGuess     string                  `json:"activeGuess"`
	IsGameOver      bool                    `json:"isGameOver"`
	IsWin           bool                    `json:"isWin"`
	Answer          *string                 `json:"answer"`
	CharacterStatus map[string]game.Verdict `json:"characterStatus"`
	Errors          []ErrorEntry            `json:"errors"`
}

// Snapshot copies s into its serializable form.
func (s State) Snapshot() Snapshot {
	snap := Snapshot{
		Phase:           s.phase.String(),
		MaxGuesses:      s.MaxGuesses(),
		WordLength:      s.WordLength(),
		Guesses:         s.Guesses(),
		Results:         s.Results(),
		ActiveGuess:     s.active,
		IsGameOver:      s.gameOver,
		IsWin:           s.IsWin(),
		CharacterStatus: s.status.Map(),
		Errors:          s.Errors(),
	}
	if snap.Guesses == nil {
		snap.Guesses = []string{}
	}
	if snap.Results == nil {
		snap.Results = []game.GuessResult{}
	}
	if snap.Errors == nil {
		snap.Errors = []ErrorEntry{}
	}
	if answer, ok := s.Answer(); ok {
		snap.Answer = &answer
	}
	return snap
}
