package vector

import (
	pb "github.com/qdrant/go-client/qdrant"

	"github.com/cezzis-com/cocktails-aisearch/internal/domain/search/filter"
)

// toQdrantFilter translates the engine's predicate tree into a Qdrant
// filter. Returns nil for an empty expression so unfiltered queries stay
// unfiltered.
func toQdrantFilter(f filter.Expression) *pb.Filter {
	if f.IsEmpty() {
		return nil
	}

	qf := &pb.Filter{}
	for _, c := range f.Must() {
		qf.Must = append(qf.Must, toCondition(c))
	}
	for _, c := range f.MustNot() {
		qf.MustNot = append(qf.MustNot, toCondition(c))
	}
	return qf
}

func toCondition(c filter.Condition) *pb.Condition {
	fc := &pb.FieldCondition{Key: c.Key()}

	switch {
	case c.IsBool():
		fc.Match = &pb.Match{MatchValue: &pb.Match_Boolean{Boolean: *c.MatchBool()}}
	case c.IsMatch():
		fc.Match = &pb.Match{MatchValue: &pb.Match_Keyword{Keyword: c.Match()}}
	case c.IsAny():
		fc.Match = &pb.Match{MatchValue: &pb.Match_Keywords{
			Keywords: &pb.RepeatedStrings{Strings: c.MatchAny()},
		}}
	case c.IsRange():
		fc.Range = &pb.Range{Gte: c.Range().GTE(), Lte: c.Range().LTE()}
	}

	return &pb.Condition{ConditionOneOf: &pb.Condition_Field{Field: fc}}
}
