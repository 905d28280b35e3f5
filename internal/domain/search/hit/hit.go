// Package hit carries raw chunk-level retrieval results from the vector
// repository to the aggregation stage.
package hit

// Hit is one scored chunk match returned by the vector store. Multiple hits
// may reference the same cocktail id, one per matching description chunk.
type Hit struct {
	cocktailID string
	score      float64
	modelJSON  []byte
}

// New creates a retrieval hit.
func New(cocktailID string, score float64, modelJSON []byte) Hit {
	return Hit{cocktailID: cocktailID, score: score, modelJSON: modelJSON}
}

// CocktailID returns the parent cocktail id of the matched chunk.
func (h Hit) CocktailID() string { return h.cocktailID }

// Score returns the raw similarity score of the chunk match.
func (h Hit) Score() float64 { return h.score }

// ModelJSON returns the serialized cocktail document attached to the chunk.
func (h Hit) ModelJSON() []byte { return h.modelJSON }
