package cocktail

import "github.com/google/uuid"

// DescriptionChunk is one embeddable unit of a cocktail's textual
// description.
type DescriptionChunk struct {
	Category string `json:"category"`
	Content  string `json:"content"`
}

// PointID derives the chunk's stable vector-store identity: a name-based
// UUID over category and content. Re-embedding identical text yields the
// same point id, so re-ingestion is idempotent.
func (c DescriptionChunk) PointID() string {
	return uuid.NewSHA1(uuid.NameSpaceDNS, []byte(c.Category+"-"+c.Content)).String()
}
