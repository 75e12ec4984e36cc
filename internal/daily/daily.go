// internal/daily/daily.go
//
// Deterministic daily answer selection.
//
// Responsibilities:
//   - Derive a stable date key (YYYY-MM-DD, UTC) for "today".
//   - Map (date, salt) to an index into the answers list with a keyed
//     BLAKE2b hash, so every player sees the same word on the same day and
//     the word cannot be predicted without the salt.
//   - Expose that mapping as a game.Source so the engine's StartRound picks
//     the daily word without knowing about dates.
//
// Notes:
//   • The engine sorts answers before indexing, so the index is stable for a
//     given vocabulary regardless of load order.
//   • Changing the vocabulary changes the daily word.

package daily

import (
	"encoding/binary"
	"time"

	"golang.org/x/crypto/blake2b"
)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// ParseDateKey parses a YYYY-MM-DD key as midnight UTC.
func ParseDateKey(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}

// WordIndex returns a deterministic index for a date using
// BLAKE2b-256(key=salt, YYYY-MM-DD) % answersLen.
func WordIndex(date time.Time, salt string, answersLen int) int {
	if answersLen <= 0 {
		return 0
	}
	h, err := blake2b.New256(macKey(salt))
	if err != nil {
		// macKey never returns more than blake2b.Size bytes
		panic(err)
	}
	h.Write([]byte(DateKey(date)))
	sum := h.Sum(nil)
	// take first 8 bytes to uint64 for modulus distribution
	n := binary.BigEndian.Uint64(sum[:8])
	return int(n % uint64(answersLen))
}

// macKey fits salt into the 64-byte BLAKE2b key limit.
func macKey(salt string) []byte {
	key := []byte(salt)
	if len(key) > blake2b.Size {
		sum := blake2b.Sum512(key)
		key = sum[:]
	}
	return key
}

// Source is a game.Source that always yields the word index for one day.
type Source struct {
	date time.Time
	salt string
}

// For returns the source for the day containing t.
func For(t time.Time, salt string) Source {
	return Source{date: t.UTC(), salt: salt}
}

// Today returns the source for the current UTC day.
func Today(salt string) Source {
	return For(time.Now(), salt)
}

// IntN implements game.Source.
func (s Source) IntN(n int) int {
	return WordIndex(s.date, s.salt, n)
}

// Date returns the day's key.
func (s Source) Date() string {
	return DateKey(s.date)
}
