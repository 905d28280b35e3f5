package intent

import "github.com/cezzis-com/cocktails-aisearch/internal/fuzzy"

// maxCapturedWords bounds how many ingredient words one pattern occurrence
// may capture.
const maxCapturedWords = 3

// Exclusion patterns run before inclusion patterns so that "not containing
// honey" is consumed as an exclusion and never re-read as a bare
// "containing" inclusion.
var (
	exclusionPatterns = [][]string{
		{"without"},
		{"no"},
		{"excluding"},
		{"exclude"},
		{"not", "containing"},
		{"not", "featuring"},
		{"that", "exclude"},
	}

	inclusionPatterns = [][]string{
		{"made", "with"},
		{"with"},
		{"using"},
		{"containing"},
		{"contains"},
		{"featuring"},
		{"that", "have"},
		{"that", "include"},
	}
)

// captureStopWords terminate a capture run. "and"/"or" are connectors: they
// are skipped without ending the run, so "with honey and lemon" captures
// both words.
var captureStopWords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "in": {}, "on": {}, "of": {},
	"for": {}, "to": {}, "that": {}, "but": {}, "please": {}, "me": {}, "some": {},
	"cocktail": {}, "cocktails": {}, "drink": {}, "drinks": {},
	"recipe": {}, "recipes": {},
	"ingredient": {}, "ingredients": {}, "minute": {}, "minutes": {},
}

var captureSkipWords = map[string]struct{}{"and": {}, "or": {}}

// ingredientTerms scans the query once, left to right, extracting excluded
// and included ingredient words. Inclusion terms already captured as
// exclusions are dropped: "no mint but with lime" must not demand mint.
func ingredientTerms(query string) (excluded, included []string) {
	tokens := fuzzy.Tokenize(query)
	excludedSet := make(map[string]struct{})

	i := 0
	for i < len(tokens) {
		if n := matchPattern(tokens[i:], exclusionPatterns); n > 0 {
			words, consumed := captureWords(tokens[i+n:])
			for _, w := range words {
				if _, dup := excludedSet[w]; !dup {
					excludedSet[w] = struct{}{}
					excluded = append(excluded, w)
				}
			}
			i += n + consumed
			continue
		}
		if n := matchPattern(tokens[i:], inclusionPatterns); n > 0 {
			words, consumed := captureWords(tokens[i+n:])
			included = append(included, words...)
			i += n + consumed
			continue
		}
		i++
	}

	// Filter inclusions against captured exclusions, deduplicated.
	includedSet := make(map[string]struct{})
	kept := included[:0]
	for _, w := range included {
		if _, isExcluded := excludedSet[w]; isExcluded {
			continue
		}
		if _, dup := includedSet[w]; dup {
			continue
		}
		includedSet[w] = struct{}{}
		kept = append(kept, w)
	}
	return excluded, kept
}

// matchPattern returns the token length of the first pattern matching at the
// head of tokens, or 0. Longer patterns are tried first so "made with" wins
// over "with".
func matchPattern(tokens []string, patterns [][]string) int {
	best := 0
	for _, p := range patterns {
		if len(p) <= best || len(p) > len(tokens) {
			continue
		}
		ok := true
		for j, w := range p {
			if tokens[j] != w {
				ok = false
				break
			}
		}
		if ok {
			best = len(p)
		}
	}
	return best
}

// captureWords collects up to maxCapturedWords ingredient words following a
// pattern, stopping at a stop word or at the start of another pattern.
// Returns the captured words and how many tokens were consumed.
func captureWords(tokens []string) (words []string, consumed int) {
	for consumed < len(tokens) && len(words) < maxCapturedWords {
		tok := tokens[consumed]
		if _, skip := captureSkipWords[tok]; skip {
			consumed++
			continue
		}
		if _, stop := captureStopWords[tok]; stop {
			break
		}
		if matchPattern(tokens[consumed:], exclusionPatterns) > 0 ||
			matchPattern(tokens[consumed:], inclusionPatterns) > 0 {
			break
		}
		// Words under three characters are not in the ingredient-word
		// index; capturing them would filter everything out.
		if len(tok) >= 3 {
			words = append(words, tok)
		}
		consumed++
	}
	return words, consumed
}
