// Package cocktail holds the cocktail document model shared by the search
// engine, the vector repository, and the HTTP transport. Documents are
// produced by the out-of-scope ingestion pipeline and stored as JSON inside
// vector-store payloads; this package owns the strict decode of that JSON.
package cocktail

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cezzis-com/cocktails-aisearch/internal/domain"
)

// Cocktail is one cocktail document. Field names mirror the persisted
// payload schema, so changing a tag is a breaking schema change.
type Cocktail struct {
	ID               string            `json:"id"`
	Title            string            `json:"title"`
	DescriptiveTitle string            `json:"descriptiveTitle"`
	Rating           float64           `json:"rating"`
	Ingredients      []Ingredient      `json:"ingredients"`
	IsIba            bool              `json:"isIba"`
	Serves           int               `json:"serves"`
	PrepTimeMinutes  int               `json:"prepTimeMinutes"`
	SearchTiles      []string          `json:"searchTiles"`
	Glassware        []Glassware       `json:"glassware"`
	SearchStatistics *SearchStatistics `json:"searchStatistics,omitempty"`
}

// Ingredient is one entry of a cocktail's ordered ingredient list.
type Ingredient struct {
	Name         string   `json:"name"`
	UoM          string   `json:"uoM"`
	Requirement  []string `json:"requirement"`
	Display      string   `json:"display"`
	Units        float64  `json:"units"`
	Preparation  string   `json:"preparation"`
	Suggestions  string   `json:"suggestions"`
	Types        []string `json:"types"`
	Applications []string `json:"applications"`
}

// FromModelJSON decodes a cocktail document from its persisted payload JSON.
// Fails loudly on malformed JSON or missing identity fields instead of
// handing back a half-defaulted document.
func FromModelJSON(data []byte) (Cocktail, error) {
	var c Cocktail
	if err := json.Unmarshal(data, &c); err != nil {
		return Cocktail{}, fmt.Errorf("%w: decode cocktail model: %v", domain.ErrPayloadSchema, err)
	}
	if c.ID == "" {
		return Cocktail{}, fmt.Errorf("%w: cocktail model has no id", domain.ErrPayloadSchema)
	}
	if c.Title == "" {
		return Cocktail{}, fmt.Errorf("%w: cocktail %q has no title", domain.ErrPayloadSchema, c.ID)
	}
	return c, nil
}

// ModelJSON serializes the document the way the ingestion pipeline persists
// it, with search statistics stripped (they are ephemeral, per-query state).
func (c Cocktail) ModelJSON() ([]byte, error) {
	clone := c
	clone.SearchStatistics = nil
	data, err := json.Marshal(clone)
	if err != nil {
		return nil, fmt.Errorf("encode cocktail model %s: %w", c.ID, err)
	}
	return data, nil
}

// IngredientNames returns the lower-cased names of all named ingredients.
func (c Cocktail) IngredientNames() []string {
	names := make([]string, 0, len(c.Ingredients))
	for _, ing := range c.Ingredients {
		if ing.Name != "" {
			names = append(names, strings.ToLower(ing.Name))
		}
	}
	return names
}

// IngredientWords returns the deduplicated lower-cased words of all
// ingredient names, skipping words shorter than three characters. This is
// the word-level index that inclusion/exclusion filters match against.
func (c Cocktail) IngredientWords() []string {
	seen := make(map[string]struct{})
	var words []string
	for _, name := range c.IngredientNames() {
		for _, word := range strings.Fields(name) {
			if len(word) < 3 {
				continue
			}
			if _, ok := seen[word]; ok {
				continue
			}
			seen[word] = struct{}{}
			words = append(words, word)
		}
	}
	return words
}
