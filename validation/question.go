package validation

import (
	"strings"
	"unicode"
)

// IsValidQuestion filters out input that is not worth a generation call:
// empty, absurdly long, symbol-only, or a single repeated character.
// Questions arrive in Chinese or English, so no wordlist heuristics here.
func IsValidQuestion(question string) bool {
	trimmed := strings.TrimSpace(question)
	runes := []rune(trimmed)

	if len(runes) < 2 || len(runes) > 2000 {
		return false
	}

	letters := 0
	total := 0
	for _, r := range runes {
		if unicode.IsSpace(r) {
			continue
		}
		total++
		if unicode.IsLetter(r) {
			letters++
		}
	}
	if total == 0 || float64(letters)/float64(total) < 0.3 {
		return false
	}

	return !isRepeatedRune(runes)
}

func isRepeatedRune(runes []rune) bool {
	if len(runes) < 3 {
		return false
	}
	first := runes[0]
	for _, r := range runes[1:] {
		if r != first && !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}
