package tutor

import "github.com/ramonehamilton/commander-analyzer/internal/cards"

type namedRule struct {
	typ   cards.CardType
	match func(*cards.Card) bool
}

func anyCard(*cards.Card) bool { return true }

func creature(c *cards.Card) bool { return c.IsType(cards.Creature) }

func withSubtype(s cards.Subtype) func(*cards.Card) bool {
	return func(c *cards.Card) bool { return c.HasSubtype(s) }
}

// namedRules cover tutors whose wording defeats the general rules.
var namedRules = map[string]namedRule{
	"Urza's Saga": {
		typ:   cards.CardType{Primary: cards.Artifact, Subtypes: []cards.Subtype{}},
		match: func(c *cards.Card) bool { return c.IsType(cards.Artifact) && c.ManaValue <= 1 },
	},
	"Gifts Ungiven": {typ: genericType, match: anyCard},
	"Intuition":     {typ: genericType, match: anyCard},

	"Birthing Pod":                {typ: creatureType, match: creature},
	"Eldritch Evolution":          {typ: creatureType, match: creature},
	"Neoform":                     {typ: creatureType, match: creature},
	"Prime Speaker Vannifar":      {typ: creatureType, match: creature},
	"Yisan, the Wanderer Bard":    {typ: creatureType, match: creature},
	"Tiamat":                      {typ: subtypeOf("Dragon"), match: withSubtype("Dragon")},
	"Scion of the Ur-Dragon":      {typ: subtypeOf("Dragon"), match: withSubtype("Dragon")},
	"Lin Sivvi, Defiant Hero":     {typ: subtypeOf("Rebel"), match: withSubtype("Rebel")},
	"Sisay, Weatherlight Captain": {typ: genericType, match: func(c *cards.Card) bool { return c.Legendary }},
}

var (
	genericType  = cards.CardType{Primary: cards.Generic, Subtypes: []cards.Subtype{}}
	creatureType = cards.CardType{Primary: cards.Creature, Subtypes: []cards.Subtype{}}
)

func subtypeOf(s cards.Subtype) cards.CardType {
	return cards.CardType{Primary: cards.Creature, Subtypes: []cards.Subtype{s}}
}
