// Package lexical turns arbitrary selected text into a lookup key for the
// Latin dictionary service.
package lexical

import (
	"regexp"
	"strings"
)

const (
	leadingPunctuation  = `("[`
	trailingPunctuation = `.,;:!?)"]`
)

var candidatePattern = regexp.MustCompile(`^[a-zA-Z\x{0101}\x{0113}\x{012B}\x{014D}\x{016B}\x{0100}\x{0112}\x{012A}\x{014C}\x{016A}]{2,}$`)

// ExtractCandidate returns the first token of the selection that normalizes
// into a valid lookup candidate.
func ExtractCandidate(selectedText string) (string, bool) {
	for _, token := range strings.Fields(selectedText) {
		normalized := Normalize(token)
		if IsValidCandidate(normalized) {
			return normalized, true
		}
	}
	return "", false
}

// Normalize strips opening brackets and quotes from the start of a token and
// punctuation, quotes and closing brackets from its end.
func Normalize(token string) string {
	token = strings.TrimLeft(token, leadingPunctuation)
	return strings.TrimRight(token, trailingPunctuation)
}

// IsValidCandidate reports whether token is at least two Latin letters,
// macron vowels included.
func IsValidCandidate(token string) bool {
	if !candidatePattern.MatchString(token) {
		return false
	}
	return !isDigits(token)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
