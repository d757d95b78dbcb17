package extractive

import (
	"regexp"
	"strings"
	"unicode"
)

// minWordLength is the shortest word that can carry salience.
const minWordLength = 3

var wordPattern = regexp.MustCompile(`[A-Za-z]+`)

var stopWords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "and": {}, "or": {}, "but": {},
	"in": {}, "on": {}, "at": {}, "to": {}, "for": {}, "of": {},
	"with": {}, "by": {}, "is": {}, "are": {}, "was": {}, "were": {},
	"be": {}, "been": {}, "being": {}, "have": {}, "has": {}, "had": {},
	"do": {}, "does": {}, "did": {}, "will": {}, "would": {}, "could": {},
	"should": {}, "may": {}, "might": {}, "must": {}, "can": {},
	"this": {}, "that": {}, "these": {}, "those": {},
	"i": {}, "you": {}, "he": {}, "she": {}, "it": {}, "we": {}, "they": {},
	"me": {}, "him": {}, "her": {}, "us": {}, "them": {},
}

// IsStopWord reports whether word (already lowercased) is a functional word
// excluded from scoring.
func IsStopWord(word string) bool {
	_, ok := stopWords[word]
	return ok
}

// Words returns the lowercased alphabetic tokens of text in order.
func Words(text string) []string {
	return wordPattern.FindAllString(strings.ToLower(text), -1)
}

// SignificantWords returns the words of text that qualify for salience:
// not a stop word, not punctuation, and longer than two letters.
func SignificantWords(text string) []string {
	raw := Words(text)
	out := make([]string, 0, len(raw))
	for _, w := range raw {
		if qualifies(w) {
			out = append(out, w)
		}
	}
	return out
}

func qualifies(word string) bool {
	if len(word) < minWordLength || IsStopWord(word) {
		return false
	}
	return !isPunctuation(word)
}

func isPunctuation(word string) bool {
	for _, r := range word {
		if !unicode.IsPunct(r) && !unicode.IsSymbol(r) {
			return false
		}
	}
	return true
}
