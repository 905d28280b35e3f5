package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/cezzis-com/cocktails-aisearch/internal/domain/cocktail"
)

// TypeAhead serves title autocomplete from the cached catalog: prefix
// matches on title or descriptive title come first, and substring matches
// fill the page only when the prefix matches alone cannot.
func (s *Service) TypeAhead(ctx context.Context, freeText string, skip, take int) ([]cocktail.Cocktail, error) {
	if take <= 0 {
		take = defaultTake
	}

	docs, err := s.catalog.AllByTitle(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	needle := strings.ToLower(strings.TrimSpace(freeText))
	if needle == "" {
		return paginate(docs, skip, take), nil
	}

	var prefixed []cocktail.Cocktail
	seen := make(map[string]struct{})
	for _, c := range docs {
		if hasPrefixFold(c.Title, needle) || hasPrefixFold(c.DescriptiveTitle, needle) {
			prefixed = append(prefixed, c)
			seen[c.ID] = struct{}{}
		}
	}

	matched := prefixed
	if len(prefixed) < take {
		for _, c := range docs {
			if _, ok := seen[c.ID]; ok {
				continue
			}
			if containsFold(c.Title, needle) || containsFold(c.DescriptiveTitle, needle) {
				matched = append(matched, c)
			}
		}
	}

	return paginate(matched, skip, take), nil
}

func hasPrefixFold(s, prefix string) bool {
	return strings.HasPrefix(strings.ToLower(s), prefix)
}
