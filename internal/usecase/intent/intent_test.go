package intent

import (
	"testing"

	"github.com/cezzis-com/cocktails-aisearch/internal/domain/search/filter"
)

func findCondition(conds []filter.Condition, key string) (filter.Condition, bool) {
	for _, c := range conds {
		if c.Key() == key {
			return c, true
		}
	}
	return filter.Condition{}, false
}

func countConditions(conds []filter.Condition, key string) int {
	n := 0
	for _, c := range conds {
		if c.Key() == key {
			n++
		}
	}
	return n
}

func TestExtract_NoSignal(t *testing.T) {
	expr, found := Extract("something delicious tonight")
	if found {
		t.Fatalf("expected no structured signal, got %+v", expr)
	}
	if !expr.IsEmpty() {
		t.Error("expression should be empty when nothing matched")
	}
}

func TestExtract_IbaStatus(t *testing.T) {
	tests := []struct {
		query string
		want  bool
	}{
		{"iba cocktails", true},
		{"official cocktail list", true},
		{"classic iba drinks", true},
		{"non-iba cocktails", false},
		{"modern drinks", false},
		{"contemporary cocktails", false},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			expr, found := Extract(tt.query)
			if !found {
				t.Fatal("expected a structured signal")
			}
			c, ok := findCondition(expr.Must(), filter.FieldIsIba)
			if !ok {
				t.Fatalf("no is_iba condition in %v", expr.Must())
			}
			if c.MatchBool() == nil || *c.MatchBool() != tt.want {
				t.Errorf("is_iba = %v, want %t", c.MatchBool(), tt.want)
			}
		})
	}
}

func TestExtract_GlasswareFirstMatchOnly(t *testing.T) {
	expr, _ := Extract("a coupe or highball drink")
	if n := countConditions(expr.Must(), filter.FieldGlassware); n != 1 {
		t.Fatalf("expected exactly 1 glassware condition, got %d", n)
	}
}

func TestExtract_IngredientCount(t *testing.T) {
	expr, _ := Extract("cocktails with 3 ingredients")
	c, ok := findCondition(expr.Must(), filter.FieldIngredientCount)
	if !ok {
		t.Fatal("no ingredient_count condition")
	}
	r := c.Range()
	if r == nil || r.GTE() == nil || r.LTE() == nil || *r.GTE() != 3 || *r.LTE() != 3 {
		t.Errorf("expected equality range [3,3], got %v", r)
	}

	expr, _ = Extract("simple cocktails")
	c, _ = findCondition(expr.Must(), filter.FieldIngredientCount)
	if c.Range() == nil || c.Range().LTE() == nil || *c.Range().LTE() != 4 {
		t.Errorf("simple should cap ingredients at 4, got %v", c.Range())
	}

	expr, _ = Extract("elaborate cocktails")
	c, _ = findCondition(expr.Must(), filter.FieldIngredientCount)
	if c.Range() == nil || c.Range().GTE() == nil || *c.Range().GTE() != 6 {
		t.Errorf("elaborate should require at least 6 ingredients, got %v", c.Range())
	}
}

func TestExtract_PrepTimeAndServes(t *testing.T) {
	expr, _ := Extract("quick drinks that serve 2")
	c, ok := findCondition(expr.Must(), filter.FieldPrepTime)
	if !ok || c.Range().LTE() == nil || *c.Range().LTE() != 5 {
		t.Errorf("quick should cap prep time at 5 minutes, got %v", c.Range())
	}

	expr, _ = Extract("a 10 minute punch serves 4")
	c, _ = findCondition(expr.Must(), filter.FieldPrepTime)
	if c.Range() == nil || c.Range().LTE() == nil || *c.Range().LTE() != 10 {
		t.Errorf("10 minute should cap prep time at 10, got %v", c.Range())
	}
	c, ok = findCondition(expr.Must(), filter.FieldServes)
	if !ok || c.Range().GTE() == nil || *c.Range().GTE() != 4 {
		t.Errorf("serves 4 should produce equality range, got %v", c.Range())
	}
}

func TestExtract_KeywordDimensionCaps(t *testing.T) {
	expr, _ := Extract("sweet sour bitter gin vodka drinks")

	if n := countConditions(expr.Must(), filter.FieldFlavorProfile); n != 2 {
		t.Errorf("flavor profile allows up to 2 matches, got %d", n)
	}
	if n := countConditions(expr.Must(), filter.FieldBaseSpirit); n != 1 {
		t.Errorf("base spirit allows 1 match, got %d", n)
	}
}

func TestExtract_SeasonNormalizationAndMembership(t *testing.T) {
	expr, _ := Extract("autumn or winter cocktails")
	c, ok := findCondition(expr.Must(), filter.FieldSeason)
	if !ok {
		t.Fatal("no season condition")
	}
	vals := c.MatchAny()
	if len(vals) != 2 {
		t.Fatalf("expected 2 season values, got %v", vals)
	}
	if vals[0] != "fall" && vals[1] != "fall" {
		t.Errorf("autumn should normalize to fall, got %v", vals)
	}
	if vals[0] != "winter" && vals[1] != "winter" {
		t.Errorf("winter missing from %v", vals)
	}
}

func TestExtract_ExclusionSingleTerm(t *testing.T) {
	expr, found := Extract("cocktails without honey")
	if !found {
		t.Fatal("expected a structured signal")
	}
	mustNot := expr.MustNot()
	if len(mustNot) != 1 {
		t.Fatalf("expected exactly 1 must_not condition, got %d: %v", len(mustNot), mustNot)
	}
	c := mustNot[0]
	if c.Key() != filter.FieldIngredientWords || c.Match() != "honey" {
		t.Errorf("got %s=%q, want ingredient_words=honey", c.Key(), c.Match())
	}
}

func TestExtract_ExclusionMultiWordPattern(t *testing.T) {
	expr, _ := Extract("drinks not containing mint or basil")
	vals := make(map[string]bool)
	for _, c := range expr.MustNot() {
		vals[c.Match()] = true
	}
	if !vals["mint"] || !vals["basil"] {
		t.Errorf("expected mint and basil excluded, got %v", expr.MustNot())
	}
	// "not containing" must not fire the bare "containing" inclusion.
	if _, ok := findCondition(expr.Must(), filter.FieldIngredientWords); ok {
		t.Errorf("exclusion pattern leaked into inclusions: %v", expr.Must())
	}
}

func TestExtract_InclusionProducesMust(t *testing.T) {
	expr, _ := Extract("made with honey and lemon")
	vals := make(map[string]bool)
	for _, c := range expr.Must() {
		if c.Key() == filter.FieldIngredientWords {
			vals[c.Match()] = true
		}
	}
	if !vals["honey"] || !vals["lemon"] {
		t.Errorf("expected honey and lemon included, got %v", expr.Must())
	}
}

func TestExtract_InclusionSkipsExcludedTerms(t *testing.T) {
	expr, _ := Extract("with lime no mint")
	for _, c := range expr.Must() {
		if c.Key() == filter.FieldIngredientWords && c.Match() == "mint" {
			t.Error("mint is excluded and must not appear as an inclusion")
		}
	}
	if _, ok := findCondition(expr.MustNot(), filter.FieldIngredientWords); !ok {
		t.Error("expected mint exclusion")
	}
}

func TestExtract_CaptureStopsAtStopWord(t *testing.T) {
	expr, _ := Extract("without mint please something else entirely")
	if len(expr.MustNot()) != 1 {
		t.Errorf("capture should stop at stop word, got %v", expr.MustNot())
	}
}

func TestExtract_CaptureCapsAtThreeWords(t *testing.T) {
	expr, _ := Extract("without honey mint basil ginger")
	if len(expr.MustNot()) != 3 {
		t.Errorf("capture caps at 3 words, got %d: %v", len(expr.MustNot()), expr.MustNot())
	}
}

func TestTopRated(t *testing.T) {
	if !TopRated("top rated tequila cocktails") {
		t.Error("expected top-rated intent")
	}
	if !TopRated("popular drinks") {
		t.Error("expected top-rated intent for popular")
	}
	if TopRated("sour tequila cocktails") {
		t.Error("unexpected top-rated intent")
	}
}
