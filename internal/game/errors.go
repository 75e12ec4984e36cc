package game

import "errors"

var (
	ErrInvalidConfiguration = errors.New("max guesses and word length must be positive integers")
	ErrInvalidVocabulary    = errors.New("invalid vocabulary")
	ErrNotConfigured        = errors.New("game is not ready")
	ErrGuessNotAllowed      = errors.New("not in word list")
	ErrAnswerNotAllowed     = errors.New("answer is not an allowed answer")
	ErrRoundOver            = errors.New("game finished")
	ErrRoundNotOver         = errors.New("game is not over")
	ErrNotWon               = errors.New("game was not won")
)
