// Package fuzzy implements the approximate word, keyword, and name matching
// used across query resolution. Matching is token-based, never substring
// based: a keyword cannot match as an infix of an unrelated token.
package fuzzy

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// minFuzzyLen is the minimum word length for edit-distance matching. Shorter
// tokens ("gin", "rye", "dry") must match exactly: one edit on a three-letter
// word is a third of the word, which makes false positives rampant.
const minFuzzyLen = 5

// wordMatchThreshold is the minimum normalized edit similarity for two
// fuzzy-eligible words to count as a match.
const wordMatchThreshold = 0.8

// WordMatch reports whether two words match approximately. Words under five
// characters must match exactly; longer words match at >= 80% normalized
// edit similarity.
func WordMatch(a, b string) bool {
	if a == b {
		return true
	}
	if len(a) < minFuzzyLen || len(b) < minFuzzyLen {
		return false
	}
	return Similarity(a, b) >= wordMatchThreshold
}

// Similarity returns the normalized edit similarity of two strings in [0, 1]:
// 1 minus the Levenshtein distance over the longer length.
func Similarity(a, b string) float64 {
	if a == b {
		return 1
	}
	ra, rb := []rune(a), []rune(b)
	longest := len(ra)
	if len(rb) > longest {
		longest = len(rb)
	}
	if longest == 0 {
		return 1
	}
	dist := levenshtein.ComputeDistance(a, b)
	return 1 - float64(dist)/float64(longest)
}

// PartialSimilarity returns the best similarity of the shorter string
// against any equal-length rune window of the longer string. It rewards a
// query that names part of a longer title ("margarita" vs "frozen margarita").
func PartialSimilarity(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	short, long := ra, rb
	if len(short) > len(long) {
		short, long = long, short
	}
	if len(short) == 0 {
		return 0
	}
	if len(short) == len(long) {
		return Similarity(string(short), string(long))
	}

	best := 0.0
	for i := 0; i+len(short) <= len(long); i++ {
		s := Similarity(string(short), string(long[i:i+len(short)]))
		if s > best {
			best = s
		}
	}
	return best
}

// KeywordInText reports whether keyword occurs in text. A multi-word keyword
// matches only over a contiguous window of text tokens, each compared with
// WordMatch. Tokens are split on whitespace with trailing punctuation
// stripped.
func KeywordInText(text, keyword string) bool {
	words := Tokenize(text)
	parts := strings.Fields(keyword)
	if len(parts) == 0 || len(words) < len(parts) {
		return false
	}

	for i := 0; i+len(parts) <= len(words); i++ {
		matched := true
		for j, part := range parts {
			if !WordMatch(words[i+j], part) {
				matched = false
				break
			}
		}
		if matched {
			return true
		}
	}
	return false
}

// Tokenize splits text on whitespace and strips trailing punctuation from
// each token.
func Tokenize(text string) []string {
	raw := strings.Fields(text)
	tokens := make([]string, 0, len(raw))
	for _, t := range raw {
		t = strings.TrimRight(t, ".,!?;:'\"")
		if t != "" {
			tokens = append(tokens, t)
		}
	}
	return tokens
}
