package cocktail

// Keywords is per-dimension retrieval metadata attached to a cocktail's
// vector payload for filtering. It is never surfaced in search responses.
// Tags mirror the ingestion wire schema.
type Keywords struct {
	BaseSpirit     []string `json:"keywordsBaseSpirit"`
	SpiritSubtype  []string `json:"keywordsSpiritSubtype"`
	FlavorProfile  []string `json:"keywordsFlavorProfile"`
	CocktailFamily []string `json:"keywordsCocktailFamily"`
	Technique      []string `json:"keywordsTechnique"`
	Strength       string   `json:"keywordsStrength"`
	Temperature    string   `json:"keywordsTemperature"`
	Season         []string `json:"keywordsSeason"`
	Occasion       []string `json:"keywordsOccasion"`
	Mood           []string `json:"keywordsMood"`
	SearchTerms    []string `json:"keywordsSearchTerms"`
}
