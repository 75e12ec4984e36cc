package game

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

// fixedSource always returns val modulo n.
type fixedSource struct{ val int }

func (s fixedSource) IntN(n int) int { return s.val % n }

var (
	testGuesses = NewWordSet("CRANE", "SNAKE", "SLATE", "BUMPY", "QUICK", "JUMPY", "WORDS", "EERIE")
	testAnswers = NewWordSet("SNAKE", "SLATE")
)

func loadedEngine(t *testing.T) Engine {
	t.Helper()
	e, err := NewEngine(6, 5)
	require.NoError(t, err)
	e, err = e.LoadVocabulary(testGuesses, testAnswers)
	require.NoError(t, err)
	return e
}

func TestConfigureRejectsNonPositive(t *testing.T) {
	t.Parallel()

	for _, dims := range [][2]int{{0, 5}, {6, 0}, {-1, 5}, {6, -3}} {
		_, err := NewEngine(dims[0], dims[1])
		require.ErrorIs(t, err, ErrInvalidConfiguration)
	}

	e, err := NewEngine(6, 5)
	require.NoError(t, err)
	require.True(t, e.Configured())
	require.False(t, e.HasVocabulary())
}

func TestConfigureResetsVocabulary(t *testing.T) {
	t.Parallel()

	e := loadedEngine(t)
	e, err := e.StartRound(fixedSource{0})
	require.NoError(t, err)

	e, err = e.Configure(4, 5)
	require.NoError(t, err)
	require.False(t, e.HasVocabulary())
	require.False(t, e.InRound())
	require.Equal(t, 4, e.MaxGuesses())
	require.Equal(t, 5, e.WordLength())
}

func TestLoadVocabularyValidation(t *testing.T) {
	t.Parallel()

	e, err := NewEngine(6, 5)
	require.NoError(t, err)

	tests := []struct {
		name    string
		guesses WordSet
		answers WordSet
	}{
		{"wrong length guess", NewWordSet("CRANE", "CAT"), NewWordSet("CRANE")},
		{"lowercase guess", NewWordSet("crane"), NewWordSet()},
		{"non letter", NewWordSet("CRAN3"), NewWordSet()},
		{"answer not a guess", NewWordSet("CRANE"), NewWordSet("SNAKE")},
		{"wrong length answer", NewWordSet("CRANE"), NewWordSet("CRANES")},
	}
	for _, tc := range tests {
		_, err := e.LoadVocabulary(tc.guesses, tc.answers)
		require.ErrorIs(t, err, ErrInvalidVocabulary, tc.name)
	}

	_, err = Engine{}.LoadVocabulary(testGuesses, testAnswers)
	require.ErrorIs(t, err, ErrNotConfigured)
}

func TestLoadVocabularyCopiesSets(t *testing.T) {
	t.Parallel()

	guesses := NewWordSet("CRANE", "SNAKE")
	answers := NewWordSet("SNAKE")
	e, err := NewEngine(6, 5)
	require.NoError(t, err)
	e, err = e.LoadVocabulary(guesses, answers)
	require.NoError(t, err)

	delete(guesses, "CRANE")
	require.True(t, e.IsAllowedGuess("CRANE"))
	a, g := e.Stats()
	require.Equal(t, 1, a)
	require.Equal(t, 2, g)
}

func TestStartRound(t *testing.T) {
	t.Parallel()

	_, err := Engine{}.StartRound(nil)
	require.ErrorIs(t, err, ErrNotConfigured)

	e := loadedEngine(t)
	// Sorted answers are [SLATE SNAKE].
	r, err := e.StartRound(fixedSource{1})
	require.NoError(t, err)
	require.True(t, r.InRound())
	require.False(t, e.InRound(), "receiver must be untouched")

	r, err = r.SubmitGuess("SNAKE")
	require.NoError(t, err)
	answer, err := r.RevealAnswer()
	require.NoError(t, err)
	require.Equal(t, "SNAKE", answer)

	// A nil source still yields an allowed answer.
	r, err = e.StartRound(nil)
	require.NoError(t, err)
	r, err = r.StartRoundWith("SLATE")
	require.NoError(t, err)
	require.Empty(t, r.Guesses())
}

func TestStartRoundWithRejectsUnknownAnswer(t *testing.T) {
	t.Parallel()

	e := loadedEngine(t)
	_, err := e.StartRoundWith("CRANE")
	require.ErrorIs(t, err, ErrAnswerNotAllowed)
}

func TestSubmitGuess(t *testing.T) {
	t.Parallel()

	e := loadedEngine(t)
	_, err := e.SubmitGuess("CRANE")
	require.ErrorIs(t, err, ErrNotConfigured)

	e, err = e.StartRoundWith("SNAKE")
	require.NoError(t, err)

	_, err = e.SubmitGuess("ZZZZZ")
	require.ErrorIs(t, err, ErrGuessNotAllowed)

	next, err := e.SubmitGuess("CRANE")
	require.NoError(t, err)
	require.Empty(t, e.Guesses(), "receiver must be untouched")
	require.Equal(t, []string{"CRANE"}, next.Guesses())

	last, ok := next.LastResult()
	require.True(t, ok)
	require.Equal(t, GuessResult{Wrong, Wrong, Match, Close, Match}, last)
	require.Equal(t, 5, next.RemainingGuesses())
	require.False(t, next.IsRoundOver())

	_, err = next.RevealAnswer()
	require.ErrorIs(t, err, ErrRoundNotOver)
	_, err = next.Score()
	require.ErrorIs(t, err, ErrRoundNotOver)
}

func TestResultsAreCopies(t *testing.T) {
	t.Parallel()

	e, err := loadedEngine(t).StartRoundWith("SNAKE")
	require.NoError(t, err)
	e, err = e.SubmitGuess("CRANE")
	require.NoError(t, err)

	res := e.Results()
	res[0][0] = Match
	guesses := e.Guesses()
	guesses[0] = "XXXXX"

	require.Equal(t, Wrong, e.Results()[0][0])
	require.Equal(t, "CRANE", e.Guesses()[0])
}

func TestRoundOverAfterMaxGuesses(t *testing.T) {
	t.Parallel()

	e, err := loadedEngine(t).StartRoundWith("SNAKE")
	require.NoError(t, err)
	for _, w := range []string{"CRANE", "SLATE", "BUMPY", "QUICK", "JUMPY", "WORDS"} {
		require.False(t, e.IsRoundOver())
		e, err = e.SubmitGuess(w)
		require.NoError(t, err)
	}
	require.True(t, e.IsRoundOver())
	require.False(t, e.IsWin())

	_, err = e.SubmitGuess("SNAKE")
	require.ErrorIs(t, err, ErrRoundOver)

	answer, err := e.RevealAnswer()
	require.NoError(t, err)
	require.Equal(t, "SNAKE", answer)

	_, err = e.Score()
	require.True(t, errors.Is(err, ErrNotWon))
}

func TestRoundOverOnWin(t *testing.T) {
	t.Parallel()

	e, err := loadedEngine(t).StartRoundWith("SNAKE")
	require.NoError(t, err)
	e, err = e.SubmitGuess("CRANE")
	require.NoError(t, err)
	e, err = e.SubmitGuess("SNAKE")
	require.NoError(t, err)

	require.True(t, e.IsRoundOver())
	require.True(t, e.IsWin())
	score, err := e.Score()
	require.NoError(t, err)
	require.Equal(t, 2, score)

	_, err = e.SubmitGuess("SLATE")
	require.ErrorIs(t, err, ErrRoundOver)
}
