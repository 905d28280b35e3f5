package search

import (
	"sort"

	"go.uber.org/zap"

	"github.com/cezzis-com/cocktails-aisearch/internal/domain/cocktail"
	"github.com/cezzis-com/cocktails-aisearch/internal/domain/search/hit"
)

// aggregate merges chunk-level hits into one document per distinct cocktail
// id with accumulated search statistics, sorted by weighted score descending
// with ascending id as the tie-break. Hits with undecodable payloads are
// dropped with a warning; one bad chunk must not fail the query.
func aggregate(hits []hit.Hit, logger *zap.Logger) []cocktail.Cocktail {
	byID := make(map[string]*cocktail.Cocktail)
	order := make([]string, 0, len(hits))

	for _, h := range hits {
		doc, ok := byID[h.CocktailID()]
		if !ok {
			decoded, err := cocktail.FromModelJSON(h.ModelJSON())
			if err != nil {
				logger.Warn("skipping hit with undecodable payload",
					zap.String("cocktail_id", h.CocktailID()), zap.Error(err))
				continue
			}
			decoded.SearchStatistics = &cocktail.SearchStatistics{}
			doc = &decoded
			byID[h.CocktailID()] = doc
			order = append(order, h.CocktailID())
		}
		doc.SearchStatistics.AddHit(h.Score())
	}

	docs := make([]cocktail.Cocktail, 0, len(order))
	for _, id := range order {
		doc := byID[id]
		doc.SearchStatistics.Finalize()
		docs = append(docs, *doc)
	}

	sort.Slice(docs, func(i, j int) bool {
		si, sj := docs[i].SearchStatistics.WeightedScore, docs[j].SearchStatistics.WeightedScore
		if si != sj {
			return si > sj
		}
		return docs[i].ID < docs[j].ID
	})

	return docs
}

// sortByRating reorders documents by rating descending for "top rated"
// queries, with ascending id as the tie-break.
func sortByRating(docs []cocktail.Cocktail) {
	sort.Slice(docs, func(i, j int) bool {
		if docs[i].Rating != docs[j].Rating {
			return docs[i].Rating > docs[j].Rating
		}
		return docs[i].ID < docs[j].ID
	})
}

// paginate applies the skip/take window with bounds clamping.
func paginate(docs []cocktail.Cocktail, skip, take int) []cocktail.Cocktail {
	if skip < 0 {
		skip = 0
	}
	if skip >= len(docs) {
		return nil
	}
	docs = docs[skip:]
	if take > 0 && len(docs) > take {
		docs = docs[:take]
	}
	return docs
}
