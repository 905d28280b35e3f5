// Package filter models the structured predicate applied to vector-store
// queries: a conjunction of must conditions and a conjunction of negated
// must-not conditions over cocktail payload fields.
package filter

import "fmt"

// Payload field keys the engine filters on. These mirror the ingestion
// payload schema; renaming one here without re-ingesting breaks filtering.
const (
	FieldIsIba           = "is_iba"
	FieldGlassware       = "glassware_values"
	FieldIngredientCount = "ingredient_count"
	FieldIngredientWords = "ingredient_words"
	FieldPrepTime        = "prep_time_minutes"
	FieldServes          = "serves"
	FieldRating          = "rating"
	FieldBaseSpirit      = "keywords_base_spirit"
	FieldSpiritSubtype   = "keywords_spirit_subtype"
	FieldFlavorProfile   = "keywords_flavor_profile"
	FieldCocktailFamily  = "keywords_cocktail_family"
	FieldTechnique       = "keywords_technique"
	FieldStrength        = "keywords_strength"
	FieldTemperature     = "keywords_temperature"
	FieldSeason          = "keywords_season"
	FieldOccasion        = "keywords_occasion"
	FieldMood            = "keywords_mood"
)

// Expression is a boolean predicate: AND over must, AND-NOT over mustNot.
type Expression struct {
	must    []Condition
	mustNot []Condition
}

// NewExpression creates a filter expression from condition groups.
func NewExpression(must, mustNot []Condition) Expression {
	return Expression{must: must, mustNot: mustNot}
}

// Must returns the must conditions.
func (e Expression) Must() []Condition { return e.must }

// MustNot returns the must-not conditions.
func (e Expression) MustNot() []Condition { return e.mustNot }

// IsEmpty reports whether the expression has no conditions.
func (e Expression) IsEmpty() bool { return len(e.must) == 0 && len(e.mustNot) == 0 }

// Append returns a copy of the expression with extra conditions added.
func (e Expression) Append(must, mustNot []Condition) Expression {
	return Expression{
		must:    append(append([]Condition{}, e.must...), must...),
		mustNot: append(append([]Condition{}, e.mustNot...), mustNot...),
	}
}

// Condition is a single filter clause: a keyword match, a boolean match,
// a set-membership match, or a numeric range.
type Condition struct {
	key       string
	match     string
	matchBool *bool
	matchAny  []string
	rangeExpr *Range
}

// NewMatch creates an exact keyword match condition.
func NewMatch(key, match string) Condition {
	return Condition{key: key, match: match}
}

// NewMatchBool creates a boolean equality condition.
func NewMatchBool(key string, value bool) Condition {
	return Condition{key: key, matchBool: &value}
}

// NewMatchAny creates a set-membership condition: the field matches any of
// the given values.
func NewMatchAny(key string, values []string) Condition {
	return Condition{key: key, matchAny: values}
}

// NewRange creates a numeric range condition.
func NewRange(key string, r Range) Condition {
	return Condition{key: key, rangeExpr: &r}
}

// Key returns the payload field name.
func (c Condition) Key() string { return c.key }

// Match returns the exact keyword value.
func (c Condition) Match() string { return c.match }

// MatchBool returns the boolean value, if this is a boolean condition.
func (c Condition) MatchBool() *bool { return c.matchBool }

// MatchAny returns the set-membership values.
func (c Condition) MatchAny() []string { return c.matchAny }

// Range returns the numeric range expression.
func (c Condition) Range() *Range { return c.rangeExpr }

// IsMatch reports whether this is an exact keyword condition.
func (c Condition) IsMatch() bool { return c.match != "" }

// IsBool reports whether this is a boolean condition.
func (c Condition) IsBool() bool { return c.matchBool != nil }

// IsAny reports whether this is a set-membership condition.
func (c Condition) IsAny() bool { return len(c.matchAny) > 0 }

// IsRange reports whether this is a numeric range condition.
func (c Condition) IsRange() bool { return c.rangeExpr != nil }

func (c Condition) String() string {
	switch {
	case c.IsBool():
		return fmt.Sprintf("%s=%t", c.key, *c.matchBool)
	case c.IsMatch():
		return fmt.Sprintf("%s=%q", c.key, c.match)
	case c.IsAny():
		return fmt.Sprintf("%s in %v", c.key, c.matchAny)
	case c.IsRange():
		return fmt.Sprintf("%s in %s", c.key, c.rangeExpr)
	default:
		return c.key
	}
}

// Range is a numeric range with optional inclusive boundaries.
type Range struct {
	gte *float64
	lte *float64
}

// AtLeast creates a range with only a lower inclusive bound.
func AtLeast(v float64) Range { return Range{gte: &v} }

// AtMost creates a range with only an upper inclusive bound.
func AtMost(v float64) Range { return Range{lte: &v} }

// Exactly creates a degenerate range [v, v], used for numeric equality.
func Exactly(v float64) Range { return Range{gte: &v, lte: &v} }

// GTE returns the lower inclusive bound.
func (r Range) GTE() *float64 { return r.gte }

// LTE returns the upper inclusive bound.
func (r Range) LTE() *float64 { return r.lte }

func (r Range) String() string {
	lo, hi := "-inf", "+inf"
	if r.gte != nil {
		lo = fmt.Sprintf("%g", *r.gte)
	}
	if r.lte != nil {
		hi = fmt.Sprintf("%g", *r.lte)
	}
	return fmt.Sprintf("[%s, %s]", lo, hi)
}
