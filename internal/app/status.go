package app

import "github.com/robalobadob/wordle-core/internal/game"

// CharacterStatus aggregates the strongest verdict seen for each letter A–Z.
// It is an array so State copies never share it.
type CharacterStatus [26]game.Verdict

// Get returns the verdict for an uppercase letter, or Unset for anything else.
func (c CharacterStatus) Get(letter byte) game.Verdict {
	if letter < 'A' || letter > 'Z' {
		return game.Unset
	}
	return c[letter-'A']
}

// Map returns the status keyed by single-letter strings.
func (c CharacterStatus) Map() map[string]game.Verdict {
	m := make(map[string]game.Verdict, len(c))
	for i, v := range c {
		m[string(rune('A'+i))] = v
	}
	return m
}

// merge folds one guess result into the status. Within the guess the
// strongest verdict per letter wins; against the existing status a letter is
// only ever upgraded.
func (c CharacterStatus) merge(guess string, result game.GuessResult) CharacterStatus {
	var strongest CharacterStatus
	for i := 0; i < len(guess) && i < len(result); i++ {
		if guess[i] < 'A' || guess[i] > 'Z' {
			continue
		}
		j := guess[i] - 'A'
		strongest[j] = strongest[j].Stronger(result[i])
	}
	for j := range c {
		c[j] = c[j].Stronger(strongest[j])
	}
	return c
}

// revealStatus marks every letter of answer Match and all others Wrong.
func revealStatus(answer string) CharacterStatus {
	var c CharacterStatus
	for j := range c {
		c[j] = game.Wrong
	}
	for i := 0; i < len(answer); i++ {
		if answer[i] >= 'A' && answer[i] <= 'Z' {
			c[answer[i]-'A'] = game.Match
		}
	}
	return c
}
