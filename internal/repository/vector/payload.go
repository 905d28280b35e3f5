package vector

import (
	"fmt"
	"strings"

	pb "github.com/qdrant/go-client/qdrant"

	"github.com/cezzis-com/cocktails-aisearch/internal/domain"
	"github.com/cezzis-com/cocktails-aisearch/internal/domain/cocktail"
	"github.com/cezzis-com/cocktails-aisearch/internal/domain/search/filter"
)

// Payload keys outside the filterable field set.
const (
	payloadCocktailID  = "cocktail_id"
	payloadCategory    = "category"
	payloadDescription = "description"
	payloadModel       = "model"
	payloadTitle       = "title"
)

// identityFromPayload extracts the cocktail id and serialized model from a
// point payload. A point missing either is a schema violation, not a
// default-and-continue case.
func identityFromPayload(payload map[string]*pb.Value) (string, []byte, error) {
	id := payload[payloadCocktailID].GetStringValue()
	if id == "" {
		return "", nil, fmt.Errorf("%w: point payload has no %s", domain.ErrPayloadSchema, payloadCocktailID)
	}
	model := payload[payloadModel].GetStringValue()
	if model == "" {
		return "", nil, fmt.Errorf("%w: point %s has no %s payload", domain.ErrPayloadSchema, id, payloadModel)
	}
	return id, []byte(model), nil
}

// chunkPayload builds the persisted payload for one description chunk. The
// flat metadata fields exist so QueryFilter conditions can run inside the
// vector store; the model field carries the full document for decoding.
func chunkPayload(
	doc cocktail.Cocktail, chunk cocktail.DescriptionChunk, kw cocktail.Keywords, modelJSON []byte,
) map[string]*pb.Value {
	glassware := make([]string, len(doc.Glassware))
	for i, g := range doc.Glassware {
		glassware[i] = string(g)
	}

	return map[string]*pb.Value{
		payloadCocktailID:           stringValue(doc.ID),
		payloadCategory:             stringValue(chunk.Category),
		payloadDescription:          stringValue(chunk.Content),
		payloadModel:                stringValue(string(modelJSON)),
		payloadTitle:                stringValue(strings.ToLower(doc.Title)),
		filter.FieldIsIba:           boolValue(doc.IsIba),
		filter.FieldServes:          intValue(doc.Serves),
		filter.FieldPrepTime:        intValue(doc.PrepTimeMinutes),
		filter.FieldIngredientCount: intValue(len(doc.Ingredients)),
		filter.FieldRating:          doubleValue(doc.Rating),
		"ingredient_names":          listValue(doc.IngredientNames()),
		filter.FieldIngredientWords: listValue(doc.IngredientWords()),
		filter.FieldGlassware:       listValue(glassware),
		filter.FieldBaseSpirit:      listValue(kw.BaseSpirit),
		filter.FieldSpiritSubtype:   listValue(kw.SpiritSubtype),
		filter.FieldFlavorProfile:   listValue(kw.FlavorProfile),
		filter.FieldCocktailFamily:  listValue(kw.CocktailFamily),
		filter.FieldTechnique:       listValue(kw.Technique),
		filter.FieldStrength:        stringValue(kw.Strength),
		filter.FieldTemperature:     stringValue(kw.Temperature),
		filter.FieldSeason:          listValue(kw.Season),
		filter.FieldOccasion:        listValue(kw.Occasion),
		filter.FieldMood:            listValue(kw.Mood),
		"keywords_search_terms":     listValue(kw.SearchTerms),
	}
}

func stringValue(s string) *pb.Value {
	return &pb.Value{Kind: &pb.Value_StringValue{StringValue: s}}
}

func boolValue(b bool) *pb.Value {
	return &pb.Value{Kind: &pb.Value_BoolValue{BoolValue: b}}
}

func intValue(n int) *pb.Value {
	return &pb.Value{Kind: &pb.Value_IntegerValue{IntegerValue: int64(n)}}
}

func doubleValue(f float64) *pb.Value {
	return &pb.Value{Kind: &pb.Value_DoubleValue{DoubleValue: f}}
}

func listValue(items []string) *pb.Value {
	values := make([]*pb.Value, len(items))
	for i, s := range items {
		values[i] = stringValue(s)
	}
	return &pb.Value{Kind: &pb.Value_ListValue{ListValue: &pb.ListValue{Values: values}}}
}
