package intent

// term maps one query surface form to the canonical payload value it
// signals. Terms may be multi-word; matching is fuzzy at the word level.
type term struct {
	Surface string
	Value   string
}

// Keyword dimension lexicons. Fixed, enumerable rule sets: this extractor is
// deliberately not a trained classifier.
var (
	baseSpiritTerms = []term{
		{"gin", "gin"},
		{"vodka", "vodka"},
		{"rum", "rum"},
		{"tequila", "tequila"},
		{"whiskey", "whiskey"},
		{"whisky", "whiskey"},
		{"bourbon", "bourbon"},
		{"scotch", "scotch"},
		{"rye", "rye"},
		{"brandy", "brandy"},
		{"cognac", "cognac"},
		{"mezcal", "mezcal"},
		{"absinthe", "absinthe"},
		{"pisco", "pisco"},
		{"cachaca", "cachaca"},
		{"champagne", "champagne"},
		{"prosecco", "prosecco"},
	}

	spiritSubtypeTerms = []term{
		{"aged rum", "aged-rum"},
		{"dark rum", "dark-rum"},
		{"white rum", "white-rum"},
		{"spiced rum", "spiced-rum"},
		{"islay scotch", "islay-scotch"},
		{"reposado", "reposado-tequila"},
		{"anejo", "anejo-tequila"},
		{"blanco", "blanco-tequila"},
		{"london dry", "london-dry-gin"},
		{"navy strength", "navy-strength-gin"},
		{"overproof", "overproof-rum"},
	}

	flavorProfileTerms = []term{
		{"sweet", "sweet"},
		{"sour", "sour"},
		{"bitter", "bitter"},
		{"citrus", "citrus"},
		{"citrusy", "citrus"},
		{"fruity", "fruity"},
		{"herbal", "herbal"},
		{"spicy", "spicy"},
		{"smoky", "smoky"},
		{"creamy", "creamy"},
		{"tart", "tart"},
		{"tropical", "tropical"},
		{"floral", "floral"},
		{"minty", "mint"},
		{"nutty", "nutty"},
		{"chocolatey", "chocolate"},
	}

	cocktailFamilyTerms = []term{
		{"tiki", "tiki"},
		{"martini", "martini"},
		{"negroni", "negroni"},
		{"highball", "highball"},
		{"fizz", "fizz"},
		{"spritz", "spritz"},
		{"punch", "punch"},
		{"julep", "julep"},
		{"flip", "flip"},
		{"smash", "smash"},
		{"mule", "mule"},
		{"collins", "collins"},
		{"old fashioned", "old-fashioned"},
		{"daisy", "daisy"},
	}

	techniqueTerms = []term{
		{"shaken", "shaken"},
		{"stirred", "stirred"},
		{"built", "built"},
		{"blended", "blended"},
		{"muddled", "muddled"},
		{"layered", "layered"},
		{"thrown", "thrown"},
	}

	strengthTerms = []term{
		{"light", "light"},
		{"low abv", "light"},
		{"low-abv", "light"},
		{"weak", "light"},
		{"session", "light"},
		{"medium strength", "medium"},
		{"strong", "strong"},
		{"stiff", "strong"},
		{"boozy", "strong"},
		{"spirit forward", "strong"},
		{"spirit-forward", "strong"},
	}

	temperatureTerms = []term{
		{"frozen", "frozen"},
		{"slushy", "frozen"},
		{"blended ice", "frozen"},
		{"cold", "cold"},
		{"chilled", "cold"},
		{"iced", "cold"},
		{"warm", "warm"},
		{"hot", "warm"},
	}

	// Season terms, with autumn normalized to fall. Seasons are
	// set-membership: "spring or summer drinks" keeps both.
	seasonTerms = []term{
		{"spring", "spring"},
		{"summer", "summer"},
		{"fall", "fall"},
		{"autumn", "fall"},
		{"winter", "winter"},
	}

	occasionTerms = []term{
		{"party", "party"},
		{"brunch", "brunch"},
		{"aperitif", "aperitif"},
		{"before dinner", "aperitif"},
		{"digestif", "digestif"},
		{"after dinner", "digestif"},
		{"nightcap", "nightcap"},
		{"holiday", "holiday"},
		{"christmas", "holiday"},
		{"celebration", "celebration"},
	}

	moodTerms = []term{
		{"sophisticated", "sophisticated"},
		{"elegant", "sophisticated"},
		{"fun", "fun"},
		{"playful", "fun"},
		{"refreshing", "refreshing"},
		{"cozy", "cozy"},
		{"romantic", "romantic"},
		{"festive", "festive"},
		{"relaxing", "relaxing"},
	}
)

// Negated IBA surface forms are evaluated before the positive ones: at the
// word level "non-iba" contains "iba", so negation must win.
var (
	nonIbaTerms = []string{"non-iba", "non iba", "not iba", "modern", "contemporary"}
	ibaTerms    = []string{"iba", "official cocktail", "classic iba"}
)

// Ingredient-count and prep-time trigger words.
var (
	fewIngredientTerms  = []string{"simple", "easy", "few ingredients", "basic"}
	manyIngredientTerms = []string{"complex", "many ingredients", "elaborate"}
	quickTerms          = []string{"quick", "fast"}
)

// topRatedTerms signal a rating-sort override instead of a filter.
var topRatedTerms = []string{"top rated", "top-rated", "best rated", "highest rated", "popular", "most loved"}
