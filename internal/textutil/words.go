// Package textutil provides word extraction helpers shared by the text analyzers.
package textutil

import (
	"regexp"
	"strings"
)

var wordPattern = regexp.MustCompile(`[a-z0-9']+`)

// stopWords are common English words that carry no topical signal.
var stopWords = map[string]bool{
	"a": true, "about": true, "after": true, "all": true, "also": true, "an": true,
	"and": true, "any": true, "are": true, "as": true, "at": true, "be": true,
	"been": true, "before": true, "being": true, "but": true, "by": true, "can": true,
	"could": true, "did": true, "do": true, "does": true, "doing": true, "each": true,
	"even": true, "for": true, "from": true, "had": true, "has": true, "have": true,
	"having": true, "he": true, "her": true, "here": true, "his": true, "how": true,
	"i": true, "if": true, "in": true, "into": true, "is": true, "it": true,
	"its": true, "just": true, "more": true, "most": true, "much": true, "must": true,
	"my": true, "no": true, "not": true, "now": true, "of": true, "on": true,
	"one": true, "only": true, "or": true, "other": true, "our": true, "out": true,
	"over": true, "own": true, "same": true, "she": true, "should": true, "so": true,
	"some": true, "such": true, "than": true, "that": true, "the": true, "their": true,
	"them": true, "then": true, "there": true, "these": true, "they": true, "this": true,
	"those": true, "through": true, "to": true, "too": true, "under": true, "up": true,
	"use": true, "uses": true, "using": true, "very": true, "was": true, "we": true,
	"were": true, "what": true, "when": true, "where": true, "which": true, "while": true,
	"who": true, "why": true, "will": true, "with": true, "would": true, "you": true,
	"your": true, "it's": true, "don't": true, "what's": true,
}

// IsStopWord reports whether word (lower-case) is a stop word.
func IsStopWord(word string) bool {
	return stopWords[word]
}

// Words splits text into lower-case word tokens.
func Words(text string) []string {
	return wordPattern.FindAllString(strings.ToLower(text), -1)
}

// SignificantWords returns the non-stop-word tokens of text longer than minLen characters, in order.
func SignificantWords(text string, minLen int) []string {
	var out []string
	for _, w := range Words(text) {
		if len(w) <= minLen || stopWords[w] {
			continue
		}
		out = append(out, w)
	}
	return out
}

// ExtractKeywords returns the distinct significant words of text (stop-word filtered,
// longer than three characters) in order of first appearance.
func ExtractKeywords(text string) []string {
	seen := make(map[string]bool)
	var keywords []string
	for _, w := range SignificantWords(text, 3) {
		if seen[w] {
			continue
		}
		seen[w] = true
		keywords = append(keywords, w)
	}
	return keywords
}

// CountPresent returns how many of words occur as substrings of lowerText.
func CountPresent(lowerText string, words []string) int {
	count := 0
	for _, w := range words {
		if strings.Contains(lowerText, w) {
			count++
		}
	}
	return count
}

// NormalizeName lower-cases name and turns underscores and dashes into spaces.
func NormalizeName(name string) string {
	replacer := strings.NewReplacer("_", " ", "-", " ")
	return strings.TrimSpace(strings.ToLower(replacer.Replace(name)))
}
