// internal/game/types.go
//
// Core type definitions for the Wordle game engine.
// Defines:
//   - Verdict: per-letter result of a guess (unset/wrong/close/match).
//   - GuessResult: the verdicts for one submitted guess.
//   - WordSet: a set of uppercase words used for vocabulary lookups.
//   - Source: random index source used to pick the secret answer.

package game

import (
	"fmt"
	"slices"
	"sort"
)

// Verdict represents the evaluation result for a single letter.
// Values are ordered by how much they tell the player:
// Unset < Wrong < Close < Match.
type Verdict int

const (
	Unset Verdict = iota // letter not yet seen in any guess
	Wrong                // letter (or this extra copy of it) is not in the answer
	Close                // letter is in the answer at another position
	Match                // letter is at this position in the answer
)

var verdictNames = [...]string{"unset", "wrong", "close", "match"}

func (v Verdict) String() string {
	if v < Unset || v > Match {
		return fmt.Sprintf("verdict(%d)", int(v))
	}
	return verdictNames[v]
}

// MarshalText encodes the verdict as its lowercase name so JSON output is readable.
func (v Verdict) MarshalText() ([]byte, error) {
	if v < Unset || v > Match {
		return nil, fmt.Errorf("invalid verdict %d", int(v))
	}
	return []byte(verdictNames[v]), nil
}

// UnmarshalText parses a lowercase verdict name.
func (v *Verdict) UnmarshalText(b []byte) error {
	for i, name := range verdictNames {
		if name == string(b) {
			*v = Verdict(i)
			return nil
		}
	}
	return fmt.Errorf("unknown verdict %q", b)
}

// Stronger returns whichever of v and o carries more information.
func (v Verdict) Stronger(o Verdict) Verdict {
	if o > v {
		return o
	}
	return v
}

// GuessResult holds one verdict per letter position of a submitted guess.
type GuessResult []Verdict

// Solved reports whether every position is a Match.
func (r GuessResult) Solved() bool {
	if len(r) == 0 {
		return false
	}
	for _, v := range r {
		if v != Match {
			return false
		}
	}
	return true
}

// WordSet is a lookup set of uppercase words.
type WordSet map[string]struct{}

// NewWordSet builds a set from the given words. Duplicates collapse.
func NewWordSet(words ...string) WordSet {
	s := make(WordSet, len(words))
	for _, w := range words {
		s[w] = struct{}{}
	}
	return s
}

// Has reports whether w is in the set.
func (s WordSet) Has(w string) bool {
	_, ok := s[w]
	return ok
}

// Sorted returns the words in lexicographic order.
func (s WordSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for w := range s {
		out = append(out, w)
	}
	sort.Strings(out)
	return out
}

// clone copies the set so the engine never aliases caller-owned maps.
func (s WordSet) clone() WordSet {
	out := make(WordSet, len(s))
	for w := range s {
		out[w] = struct{}{}
	}
	return out
}

// Source abstracts random index selection for deterministic testing.
// *math/rand/v2.Rand satisfies it.
type Source interface {
	// IntN returns a non-negative random int in [0, n).
	IntN(n int) int
}

// cloneResults deep-copies a result history.
func cloneResults(in []GuessResult) []GuessResult {
	out := make([]GuessResult, len(in), len(in)+1)
	for i, r := range in {
		out[i] = slices.Clone(r)
	}
	return out
}
