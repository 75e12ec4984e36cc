package app

import "errors"

var (
	ErrInvalidCharacter = errors.New("invalid character")
	ErrBufferNotFull    = errors.New("not enough letters")
	ErrBufferFull       = errors.New("too many letters")
	ErrBufferEmpty      = errors.New("no letters to remove")
	ErrUnknownAction    = errors.New("unknown action")
)

// ErrorEntry is a pending, human-readable error shown to the player.
// IDs are positive and increase monotonically within a State lineage.
type ErrorEntry struct {
	ID      int    `json:"id"`
	Message string `json:"message"`
}
