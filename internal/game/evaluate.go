package game

// Evaluate scores guess against answer with the two-pass Wordle algorithm.
//
// Pass 1 marks exact matches and counts the answer letters left at the
// unresolved positions. Pass 2 walks the unresolved positions left to right
// and marks Close while a copy of the letter remains, so surplus duplicates
// in the guess stay Wrong.
//
// Both inputs must have the same length and consist of A–Z; callers validate.
func Evaluate(guess, answer string) GuessResult {
	n := len(guess)
	res := make(GuessResult, n)

	// Remaining answer letters at unresolved positions (A–Z).
	var counts [26]int

	for i := 0; i < n; i++ {
		if guess[i] == answer[i] {
			res[i] = Match
			continue
		}
		res[i] = Wrong
		if j := idx(answer[i]); j >= 0 {
			counts[j]++
		}
	}

	for i := 0; i < n; i++ {
		if res[i] == Match {
			continue
		}
		if j := idx(guess[i]); j >= 0 && counts[j] > 0 {
			res[i] = Close
			counts[j]--
		}
	}
	return res
}

// idx maps an uppercase ASCII letter to 0..25, or -1 for anything else.
func idx(b byte) int {
	if b < 'A' || b > 'Z' {
		return -1
	}
	return int(b - 'A')
}

// isWord reports whether s is non-empty and only uppercase A–Z.
func isWord(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if idx(s[i]) < 0 {
			return false
		}
	}
	return true
}
