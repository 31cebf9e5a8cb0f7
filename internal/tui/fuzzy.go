package tui

import (
	"strings"
	"unicode"
)

// Match reports whether every rune of query appears in text in order,
// ignoring case, and scores the match. Higher scores mean a closer match:
// runs of adjacent runes, a match on the first rune and matches at the start
// of a word all add to the score.
func Match(query, text string) (bool, int) {
	q := []rune(strings.ToLower(strings.TrimSpace(query)))
	if len(q) == 0 {
		return true, 0
	}
	t := []rune(strings.ToLower(text))

	qi, score, run := 0, 0, 0
	for ti := 0; ti < len(t) && qi < len(q); ti++ {
		if t[ti] != q[qi] {
			run = 0
			continue
		}
		qi++
		run++
		score += run
		switch {
		case ti == 0:
			score += 3
		case !unicode.IsLetter(t[ti-1]) && !unicode.IsDigit(t[ti-1]):
			score += 2
		}
	}
	return qi == len(q), score
}
