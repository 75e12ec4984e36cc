// internal/game/engine.go
//
// Core game engine for a single Wordle round.
// Responsibilities:
//   - Hold the configured dimensions (max guesses × word length).
//   - Validate and store the vocabulary (allowed guesses ⊇ allowed answers).
//   - Pick the secret answer from a pluggable Source.
//   - Validate and score guesses, tracking history until the round is over.
//
// Notes:
//   - Engine is an immutable value: every mutator returns a new Engine and
//     leaves the receiver untouched, so earlier states stay valid.
//   - Word sets are copied on load and never written afterwards, which makes
//     sharing them between Engine values safe.
//   - Round-over is derived from history on every call, never cached.
package game

import (
	"fmt"
	"math/rand/v2"
	"slices"
)

// Engine holds the vocabulary, secret answer and guess history of a round.
// The zero value is unconfigured.
type Engine struct {
	maxGuesses int
	wordLength int

	guessSet  WordSet
	answerSet WordSet
	answers   []string // answerSet in sorted order, indexed by Source

	answer  string // empty until a round starts
	guesses []string
	results []GuessResult
}

// NewEngine returns an Engine configured with the given dimensions.
func NewEngine(maxGuesses, wordLength int) (Engine, error) {
	return Engine{}.Configure(maxGuesses, wordLength)
}

// Configure sets the round dimensions. The vocabulary is cleared and any
// round in progress is discarded.
func (e Engine) Configure(maxGuesses, wordLength int) (Engine, error) {
	if maxGuesses <= 0 || wordLength <= 0 {
		return e, fmt.Errorf("%w: got %d guesses, %d letters", ErrInvalidConfiguration, maxGuesses, wordLength)
	}
	return Engine{maxGuesses: maxGuesses, wordLength: wordLength}, nil
}

// LoadVocabulary validates and stores the allowed guesses and answers.
//
// Validation rules:
//   - Every word must be exactly WordLength letters A–Z.
//   - Every answer must also be an allowed guess.
//
// Loading a vocabulary discards any round in progress.
func (e Engine) LoadVocabulary(guesses, answers WordSet) (Engine, error) {
	if !e.Configured() {
		return e, fmt.Errorf("%w: set max guesses and word length first", ErrNotConfigured)
	}
	for _, w := range guesses.Sorted() {
		if !e.validWord(w) {
			return e, fmt.Errorf("%w: guess %q must be %d letters A-Z", ErrInvalidVocabulary, w, e.wordLength)
		}
	}
	sortedAnswers := answers.Sorted()
	for _, w := range sortedAnswers {
		if !e.validWord(w) {
			return e, fmt.Errorf("%w: answer %q must be %d letters A-Z", ErrInvalidVocabulary, w, e.wordLength)
		}
		if !guesses.Has(w) {
			return e, fmt.Errorf("%w: answer %q is not an allowed guess", ErrInvalidVocabulary, w)
		}
	}

	next := Engine{maxGuesses: e.maxGuesses, wordLength: e.wordLength}
	next.guessSet = guesses.clone()
	next.answerSet = answers.clone()
	next.answers = sortedAnswers
	return next, nil
}

// StartRound clears the history and picks a uniformly random answer using src.
// A nil src falls back to the process random source.
func (e Engine) StartRound(src Source) (Engine, error) {
	if len(e.answers) == 0 {
		return e, fmt.Errorf("%w: no answers loaded", ErrNotConfigured)
	}
	if src == nil {
		src = processSource{}
	}
	return e.withRound(e.answers[src.IntN(len(e.answers))]), nil
}

// StartRoundWith clears the history and uses answer as the secret.
// The answer must be one of the allowed answers.
func (e Engine) StartRoundWith(answer string) (Engine, error) {
	if len(e.answers) == 0 {
		return e, fmt.Errorf("%w: no answers loaded", ErrNotConfigured)
	}
	if !e.answerSet.Has(answer) {
		return e, fmt.Errorf("%w: %q", ErrAnswerNotAllowed, answer)
	}
	return e.withRound(answer), nil
}

func (e Engine) withRound(answer string) Engine {
	e.answer = answer
	e.guesses = nil
	e.results = nil
	return e
}

// SubmitGuess validates word, scores it against the secret and records both.
func (e Engine) SubmitGuess(word string) (Engine, error) {
	if e.answer == "" {
		return e, fmt.Errorf("%w: no round in progress", ErrNotConfigured)
	}
	if e.IsRoundOver() {
		return e, ErrRoundOver
	}
	if !e.guessSet.Has(word) {
		return e, fmt.Errorf("%w: %q", ErrGuessNotAllowed, word)
	}

	next := e
	next.guesses = append(slices.Clone(e.guesses), word)
	next.results = append(slices.Clone(e.results), Evaluate(word, e.answer))
	return next, nil
}

// IsRoundOver reports whether max guesses were used or the answer was guessed.
func (e Engine) IsRoundOver() bool {
	if e.answer == "" {
		return false
	}
	return len(e.guesses) >= e.maxGuesses || slices.Contains(e.guesses, e.answer)
}

// IsWin reports whether the answer appears in the guess history.
func (e Engine) IsWin() bool {
	return e.answer != "" && slices.Contains(e.guesses, e.answer)
}

// RevealAnswer returns the secret once the round is over.
func (e Engine) RevealAnswer() (string, error) {
	if !e.IsRoundOver() {
		return "", ErrRoundNotOver
	}
	return e.answer, nil
}

// Score returns the number of guesses a won round took.
func (e Engine) Score() (int, error) {
	if !e.IsRoundOver() {
		return 0, ErrRoundNotOver
	}
	if !e.IsWin() {
		return 0, ErrNotWon
	}
	return slices.Index(e.guesses, e.answer) + 1, nil
}

// RemainingGuesses returns how many guesses are left in the round.
func (e Engine) RemainingGuesses() int { return e.maxGuesses - len(e.guesses) }

// MaxGuesses returns the configured guess limit.
func (e Engine) MaxGuesses() int { return e.maxGuesses }

// WordLength returns the configured word length.
func (e Engine) WordLength() int { return e.wordLength }

// Configured reports whether dimensions have been set.
func (e Engine) Configured() bool { return e.maxGuesses > 0 && e.wordLength > 0 }

// HasVocabulary reports whether at least one answer is loaded.
func (e Engine) HasVocabulary() bool { return len(e.answers) > 0 }

// InRound reports whether a secret answer has been chosen.
func (e Engine) InRound() bool { return e.answer != "" }

// IsAllowedGuess reports whether w may be submitted.
func (e Engine) IsAllowedGuess(w string) bool { return e.guessSet.Has(w) }

// IsAllowedAnswer reports whether w may be chosen as the secret.
func (e Engine) IsAllowedAnswer(w string) bool { return e.answerSet.Has(w) }

// Guesses returns a copy of the submitted guesses.
func (e Engine) Guesses() []string { return slices.Clone(e.guesses) }

// Results returns a copy of the guess results.
func (e Engine) Results() []GuessResult { return cloneResults(e.results) }

// LastResult returns the result of the most recent guess, if any.
func (e Engine) LastResult() (GuessResult, bool) {
	if len(e.results) == 0 {
		return nil, false
	}
	return slices.Clone(e.results[len(e.results)-1]), true
}

// Stats returns counts of loaded words: (answers, allowed).
func (e Engine) Stats() (answersCount int, allowedCount int) {
	return len(e.answerSet), len(e.guessSet)
}

func (e Engine) validWord(w string) bool {
	return len(w) == e.wordLength && isWord(w)
}

// processSource delegates to math/rand/v2 (auto-seeded).
type processSource struct{}

func (processSource) IntN(n int) int { return rand.IntN(n) }
