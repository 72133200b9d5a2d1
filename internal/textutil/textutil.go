// Package textutil provides text helpers for rendering show titles.
//
// Indexer APIs return titles with inconsistent casing and stray separator
// characters. DisplayTitle normalizes those for CLI output without touching
// what gets persisted.
package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DisplayTitle cleans separator characters out of a title and applies
// title casing. An empty or unusable input yields "Unknown Show".
func DisplayTitle(title string) string {
	cleaned := strings.Builder{}
	prevSpace := false
	for _, r := range title {
		switch {
		case unicode.IsLetter(r) || unicode.IsNumber(r) || r == '\'' || r == ':' || r == '&':
			cleaned.WriteRune(r)
			prevSpace = false
		case unicode.IsSpace(r) || r == '-' || r == '_' || r == '.':
			if !prevSpace {
				cleaned.WriteRune(' ')
				prevSpace = true
			}
		}
	}
	result := strings.TrimSpace(cleaned.String())
	if result == "" {
		return "Unknown Show"
	}

	// Only re-case words the API sent fully lowercased. Mixed-case words
	// like "NCIS" or "iZombie" are deliberate and stay as-is.
	caser := cases.Title(language.Und)
	words := strings.Fields(result)
	for i, word := range words {
		if word == strings.ToLower(word) {
			words[i] = caser.String(word)
		}
	}
	return strings.Join(words, " ")
}

// Truncate shortens a string for table cells, appending an ellipsis when
// anything was cut. Limits below 4 return the bare prefix.
func Truncate(value string, limit int) string {
	if limit <= 0 || len(value) <= limit {
		return value
	}
	if limit < 4 {
		return value[:limit]
	}
	return value[:limit-3] + "..."
}
