package lexical

import (
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

var plainVowels = map[rune]rune{
	'ā': 'a', 'ē': 'e', 'ī': 'i', 'ō': 'o', 'ū': 'u',
	'Ā': 'A', 'Ē': 'E', 'Ī': 'I', 'Ō': 'O', 'Ū': 'U',
}

var stripMacrons = runes.Map(func(r rune) rune {
	if plain, ok := plainVowels[r]; ok {
		return plain
	}
	return r
})

// StripMacrons replaces every macron vowel with its plain vowel. The service
// indexes unmarked forms, so lookup keys always go through this.
func StripMacrons(token string) string {
	result, _, err := transform.String(stripMacrons, token)
	if err != nil {
		return token
	}
	return result
}
