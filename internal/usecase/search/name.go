package search

import (
	"sort"
	"strings"

	"github.com/cezzis-com/cocktails-aisearch/internal/domain/cocktail"
	"github.com/cezzis-com/cocktails-aisearch/internal/fuzzy"
)

// fuzzyNameThreshold is the minimum similarity for a catalog title to count
// as a fuzzy name match.
const fuzzyNameThreshold = 0.72

// Trailing descriptor words stripped before name matching: "sazerac
// cocktail" is a name lookup for "sazerac".
var nameDescriptors = []string{"cocktail", "cocktails", "drink", "drinks", "recipe", "recipes"}

// Plural descriptors mark a descriptive phrase, not a name: "gin cocktails"
// asks for a category of drinks, not a drink called "gin".
var pluralDescriptors = []string{"cocktails", "drinks", "recipes"}

var descriptivePrefixes = []string{"cocktails ", "drinks ", "show me ", "find "}

// nameQuery normalizes a query for title matching. ok is false when the
// query is a descriptive phrase rather than a cocktail name, in which case
// the name-match states are skipped entirely.
func nameQuery(query string) (string, bool) {
	normalized := strings.ToLower(strings.TrimSpace(query))

	for _, prefix := range descriptivePrefixes {
		if strings.HasPrefix(normalized, prefix) {
			return "", false
		}
	}

	tokens := strings.Fields(normalized)
	if len(tokens) == 0 {
		return "", false
	}

	// Plural rejection is exact: fuzzy matching here would also swallow the
	// singular forms ("cocktail" sits within edit distance of "cocktails")
	// and no singular descriptor would ever reach the stripping loop.
	last := tokens[len(tokens)-1]
	for _, plural := range pluralDescriptors {
		if last == plural {
			return "", false
		}
	}
	for _, descriptor := range nameDescriptors {
		if fuzzy.WordMatch(last, descriptor) {
			tokens = tokens[:len(tokens)-1]
			break
		}
	}
	if len(tokens) == 0 {
		return "", false
	}

	return strings.Join(tokens, " "), true
}

// matchExactName collects exact title matches first, then substring matches
// sorted alphabetically.
func matchExactName(catalog []cocktail.Cocktail, name string) []cocktail.Cocktail {
	var exact, partial []cocktail.Cocktail

	for _, c := range catalog {
		title := strings.ToLower(c.Title)
		switch {
		case title == name:
			exact = append(exact, c)
		case strings.Contains(title, name):
			partial = append(partial, c)
		}
	}

	sortByTitle(exact)
	sortByTitle(partial)

	return append(exact, partial...)
}

// matchFuzzyName scores every catalog title against the name with both
// full-string and windowed similarity, keeping titles at or above the
// acceptance threshold sorted by score descending then title.
func matchFuzzyName(catalog []cocktail.Cocktail, name string) []cocktail.Cocktail {
	type scored struct {
		doc   cocktail.Cocktail
		score float64
	}

	var matches []scored
	for _, c := range catalog {
		title := strings.ToLower(c.Title)
		score := fuzzy.Similarity(name, title)
		if partial := fuzzy.PartialSimilarity(name, title); partial > score {
			score = partial
		}
		if score >= fuzzyNameThreshold {
			matches = append(matches, scored{doc: c, score: score})
		}
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].score != matches[j].score {
			return matches[i].score > matches[j].score
		}
		if matches[i].doc.Title != matches[j].doc.Title {
			return matches[i].doc.Title < matches[j].doc.Title
		}
		return matches[i].doc.ID < matches[j].doc.ID
	})

	result := make([]cocktail.Cocktail, len(matches))
	for i, m := range matches {
		result[i] = m.doc
	}
	return result
}

// matchSubstring is the short-query fallback: case-insensitive substring
// matching over title, descriptive title, and ingredient names.
func matchSubstring(catalog []cocktail.Cocktail, query string) []cocktail.Cocktail {
	var matches []cocktail.Cocktail

	for _, c := range catalog {
		if containsFold(c.Title, query) || containsFold(c.DescriptiveTitle, query) {
			matches = append(matches, c)
			continue
		}
		for _, name := range c.IngredientNames() {
			if strings.Contains(name, query) {
				matches = append(matches, c)
				break
			}
		}
	}

	sortByTitle(matches)
	return matches
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), substr)
}

func sortByTitle(docs []cocktail.Cocktail) {
	sort.Slice(docs, func(i, j int) bool {
		if docs[i].Title != docs[j].Title {
			return docs[i].Title < docs[j].Title
		}
		return docs[i].ID < docs[j].ID
	})
}
