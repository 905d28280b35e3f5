// Package intent turns a normalized free-text query into the structured
// predicate used to constrain vector retrieval: IBA status, glassware,
// numeric ranges, per-dimension keyword conditions, and ingredient
// inclusions/exclusions. All rules are fixed pattern/lexicon tables.
package intent

import (
	"regexp"
	"strconv"

	"github.com/cezzis-com/cocktails-aisearch/internal/domain/cocktail"
	"github.com/cezzis-com/cocktails-aisearch/internal/domain/search/filter"
	"github.com/cezzis-com/cocktails-aisearch/internal/fuzzy"
)

var (
	ingredientCountRe = regexp.MustCompile(`\b(\d+)[ -]ingredient`)
	prepTimeRe        = regexp.MustCompile(`\b(5|10)[ -]minute`)
	servesRe          = regexp.MustCompile(`\bserves?\s+(\d+)\b`)
)

// Extract builds a QueryFilter from a lower-cased, trimmed query. The second
// return value reports whether any structured signal was found; callers run
// unfiltered retrieval when it is false.
func Extract(query string) (filter.Expression, bool) {
	var must, mustNot []filter.Condition

	if c, ok := ibaCondition(query); ok {
		must = append(must, c)
	}
	if c, ok := glasswareCondition(query); ok {
		must = append(must, c)
	}
	if c, ok := ingredientCountCondition(query); ok {
		must = append(must, c)
	}
	if c, ok := prepTimeCondition(query); ok {
		must = append(must, c)
	}
	if c, ok := servesCondition(query); ok {
		must = append(must, c)
	}

	must = append(must, keywordConditions(query)...)

	excluded, included := ingredientTerms(query)
	for _, w := range excluded {
		mustNot = append(mustNot, filter.NewMatch(filter.FieldIngredientWords, w))
	}
	for _, w := range included {
		must = append(must, filter.NewMatch(filter.FieldIngredientWords, w))
	}

	expr := filter.NewExpression(must, mustNot)
	return expr, !expr.IsEmpty()
}

// TopRated reports whether the query signals a "top rated / popular"
// rating-sort override.
func TopRated(query string) bool {
	for _, t := range topRatedTerms {
		if fuzzy.KeywordInText(query, t) {
			return true
		}
	}
	return false
}

func ibaCondition(query string) (filter.Condition, bool) {
	// Negation first: "non-iba" would otherwise also trigger the positive
	// "iba" rule.
	for _, t := range nonIbaTerms {
		if fuzzy.KeywordInText(query, t) {
			return filter.NewMatchBool(filter.FieldIsIba, false), true
		}
	}
	for _, t := range ibaTerms {
		if fuzzy.KeywordInText(query, t) {
			return filter.NewMatchBool(filter.FieldIsIba, true), true
		}
	}
	return filter.Condition{}, false
}

func glasswareCondition(query string) (filter.Condition, bool) {
	// Only the first matching term applies; stacking glass conditions
	// over-constrains the search.
	for _, gt := range cocktail.GlasswareTerms {
		if fuzzy.KeywordInText(query, gt.Term) {
			return filter.NewMatch(filter.FieldGlassware, string(gt.Value)), true
		}
	}
	return filter.Condition{}, false
}

func ingredientCountCondition(query string) (filter.Condition, bool) {
	if m := ingredientCountRe.FindStringSubmatch(query); m != nil {
		n, err := strconv.Atoi(m[1])
		if err == nil && n > 0 {
			return filter.NewRange(filter.FieldIngredientCount, filter.Exactly(float64(n))), true
		}
	}
	for _, t := range fewIngredientTerms {
		if fuzzy.KeywordInText(query, t) {
			return filter.NewRange(filter.FieldIngredientCount, filter.AtMost(4)), true
		}
	}
	for _, t := range manyIngredientTerms {
		if fuzzy.KeywordInText(query, t) {
			return filter.NewRange(filter.FieldIngredientCount, filter.AtLeast(6)), true
		}
	}
	return filter.Condition{}, false
}

func prepTimeCondition(query string) (filter.Condition, bool) {
	if m := prepTimeRe.FindStringSubmatch(query); m != nil {
		n, err := strconv.Atoi(m[1])
		if err == nil {
			return filter.NewRange(filter.FieldPrepTime, filter.AtMost(float64(n))), true
		}
	}
	for _, t := range quickTerms {
		if fuzzy.KeywordInText(query, t) {
			return filter.NewRange(filter.FieldPrepTime, filter.AtMost(5)), true
		}
	}
	return filter.Condition{}, false
}

func servesCondition(query string) (filter.Condition, bool) {
	if m := servesRe.FindStringSubmatch(query); m != nil {
		n, err := strconv.Atoi(m[1])
		if err == nil && n > 0 {
			return filter.NewRange(filter.FieldServes, filter.Exactly(float64(n))), true
		}
	}
	return filter.Condition{}, false
}

// dimension binds a lexicon to its payload field and per-query match cap.
type dimension struct {
	field    string
	terms    []term
	maxMatch int
}

func keywordConditions(query string) []filter.Condition {
	// Flavor and mood tolerate two matches ("sweet and sour"); the other
	// dimensions take at most one condition to avoid over-constraining.
	dims := []dimension{
		{filter.FieldBaseSpirit, baseSpiritTerms, 1},
		{filter.FieldSpiritSubtype, spiritSubtypeTerms, 1},
		{filter.FieldFlavorProfile, flavorProfileTerms, 2},
		{filter.FieldCocktailFamily, cocktailFamilyTerms, 1},
		{filter.FieldTechnique, techniqueTerms, 1},
		{filter.FieldStrength, strengthTerms, 1},
		{filter.FieldTemperature, temperatureTerms, 1},
		{filter.FieldOccasion, occasionTerms, 1},
		{filter.FieldMood, moodTerms, 2},
	}

	var conds []filter.Condition
	for _, d := range dims {
		matched := 0
		seen := make(map[string]struct{})
		for _, t := range d.terms {
			if matched >= d.maxMatch {
				break
			}
			if _, dup := seen[t.Value]; dup {
				continue
			}
			if fuzzy.KeywordInText(query, t.Surface) {
				conds = append(conds, filter.NewMatch(d.field, t.Value))
				seen[t.Value] = struct{}{}
				matched++
			}
		}
	}

	// Seasons are multi-valued set membership, with autumn folded into fall.
	var seasons []string
	seenSeason := make(map[string]struct{})
	for _, t := range seasonTerms {
		if _, dup := seenSeason[t.Value]; dup {
			continue
		}
		if fuzzy.KeywordInText(query, t.Surface) {
			seasons = append(seasons, t.Value)
			seenSeason[t.Value] = struct{}{}
		}
	}
	if len(seasons) > 0 {
		conds = append(conds, filter.NewMatchAny(filter.FieldSeason, seasons))
	}

	return conds
}
