package cocktail

// Glassware is a serving-glass tag. Values mirror the persisted enum.
type Glassware string

const (
	GlasswareNone            Glassware = "None"
	GlasswareRocks           Glassware = "Rocks"
	GlasswareHighball        Glassware = "Highball"
	GlasswareShotGlass       Glassware = "Shot Glass"
	GlasswareCoupe           Glassware = "Coupe"
	GlasswareCopperMug       Glassware = "Copper Mug"
	GlasswareCollins         Glassware = "Collins"
	GlasswareCocktailGlass   Glassware = "Cocktail Glass"
	GlasswareWineGlass       Glassware = "Wine Glass"
	GlasswareFlute           Glassware = "Flute"
	GlasswareLowball         Glassware = "Lowball"
	GlasswareFizz            Glassware = "Fizz"
	GlasswareTikiMug         Glassware = "Tiki Mug"
	GlasswarePintGlass       Glassware = "Pint Glass"
	GlasswareJulepTin        Glassware = "Julep Tin"
	GlasswareDoubleRocks     Glassware = "Double Rocks"
	GlasswareHurricane       Glassware = "Hurricane"
	GlasswareHollowPineapple Glassware = "Hollowed Pineapple"
	GlasswareSnifter         Glassware = "Snifter"
	GlasswareScorpionBowl    Glassware = "Scorpion Bowl"
)

// GlasswareTerm maps one query surface form to a glassware value.
type GlasswareTerm struct {
	Term  string
	Value Glassware
}

// GlasswareTerms is the ordered query-term lexicon for glassware filters.
// Order matters: the filter extractor applies only the first matching term,
// and more specific phrases must come before their substrings.
var GlasswareTerms = []GlasswareTerm{
	{"double rocks", GlasswareDoubleRocks},
	{"rocks glass", GlasswareRocks},
	{"old fashioned glass", GlasswareRocks},
	{"highball", GlasswareHighball},
	{"shot glass", GlasswareShotGlass},
	{"coupe", GlasswareCoupe},
	{"copper mug", GlasswareCopperMug},
	{"moscow mule mug", GlasswareCopperMug},
	{"collins glass", GlasswareCollins},
	{"cocktail glass", GlasswareCocktailGlass},
	{"martini glass", GlasswareCocktailGlass},
	{"wine glass", GlasswareWineGlass},
	{"flute", GlasswareFlute},
	{"champagne glass", GlasswareFlute},
	{"lowball", GlasswareLowball},
	{"fizz glass", GlasswareFizz},
	{"tiki mug", GlasswareTikiMug},
	{"pint glass", GlasswarePintGlass},
	{"julep tin", GlasswareJulepTin},
	{"julep cup", GlasswareJulepTin},
	{"hurricane glass", GlasswareHurricane},
	{"hollowed pineapple", GlasswareHollowPineapple},
	{"pineapple glass", GlasswareHollowPineapple},
	{"snifter", GlasswareSnifter},
	{"scorpion bowl", GlasswareScorpionBowl},
}
