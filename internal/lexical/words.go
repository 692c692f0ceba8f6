package lexical

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// ExtractWords returns every valid candidate in text, in first-seen order,
// without duplicates.
func ExtractWords(text string) []string {
	words := make([]string, 0)
	seen := make(map[string]bool)
	collectWords(text, &words, seen)
	return words
}

// ExtractWordsFromHTML tokenizes the visible text of an HTML document the same
// way as ExtractWords. Script and style contents are ignored.
func ExtractWordsFromHTML(r io.Reader) ([]string, error) {
	words := make([]string, 0)
	seen := make(map[string]bool)

	tokenizer := html.NewTokenizer(r)
	skipDepth := 0
	for {
		switch tokenizer.Next() {
		case html.ErrorToken:
			if err := tokenizer.Err(); !errors.Is(err, io.EOF) {
				return nil, fmt.Errorf("tokenizer.Next() > %w", err)
			}
			return words, nil
		case html.StartTagToken:
			if isInvisibleTag(tokenizer) {
				skipDepth++
			}
		case html.EndTagToken:
			if isInvisibleTag(tokenizer) && skipDepth > 0 {
				skipDepth--
			}
		case html.TextToken:
			if skipDepth > 0 {
				continue
			}
			collectWords(string(tokenizer.Text()), &words, seen)
		}
	}
}

func isInvisibleTag(tokenizer *html.Tokenizer) bool {
	name, _ := tokenizer.TagName()
	switch string(name) {
	case "script", "style", "noscript":
		return true
	}
	return false
}

func collectWords(text string, words *[]string, seen map[string]bool) {
	for _, token := range strings.Fields(text) {
		word := Normalize(token)
		if !IsValidCandidate(word) || seen[word] {
			continue
		}
		seen[word] = true
		*words = append(*words, word)
	}
}
