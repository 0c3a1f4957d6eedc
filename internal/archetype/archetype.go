// Package archetype finds the strategies a commander deck leans toward by
// matching rules-text fragments and keyword abilities.
package archetype

import (
	"sort"
	"strings"

	"github.com/ramonehamilton/commander-analyzer/internal/cards"
	"github.com/ramonehamilton/commander-analyzer/internal/effects"
)

// Archetype represents a deck strategy.
type Archetype string

const (
	Aristocrats  Archetype = "Aristocrats"
	Spellslinger Archetype = "Spellslinger"
	Tokens       Archetype = "Tokens"
	Counters     Archetype = "Counters"
	Lifegain     Archetype = "Lifegain"
	Reanimator   Archetype = "Reanimator"
	Voltron      Archetype = "Voltron"
	Landfall     Archetype = "Landfall"
	Blink        Archetype = "Blink"
	Graveyard    Archetype = "Graveyard"
	Wheels       Archetype = "Wheels"
	Artifacts    Archetype = "Artifacts"
	Enchantress  Archetype = "Enchantress"
)

// All lists every archetype in report order.
var All = []Archetype{
	Aristocrats, Spellslinger, Tokens, Counters, Lifegain, Reanimator, Voltron,
	Landfall, Blink, Graveyard, Wheels, Artifacts, Enchantress,
}

// Signal defines what marks a card as part of an archetype. A card matches
// when every fragment of any one group occurs in its lowercased rules text,
// or when it carries one of the keywords.
type Signal struct {
	Fragments [][]string
	Keywords  []cards.Keyword
}

var archetypeSignals = map[Archetype]Signal{
	Aristocrats: {
		Fragments: [][]string{{"sacrifice a creature"}, {"sacrifice another"}, {"whenever", "dies"}},
		Keywords:  []cards.Keyword{cards.Exploit, cards.Afterlife, cards.Casualty, cards.Devour},
	},
	Spellslinger: {
		Fragments: [][]string{{"instant or sorcery"}, {"noncreature spell"}, {"copy target", "spell"}},
		Keywords:  []cards.Keyword{cards.Prowess, cards.Storm, cards.Rebound, cards.Splice, cards.Cipher},
	},
	Tokens: {
		Fragments: [][]string{{"create", "token"}, {"populate"}},
		Keywords:  []cards.Keyword{cards.Fabricate, cards.Myriad, cards.Convoke},
	},
	Counters: {
		Fragments: [][]string{{"+1/+1 counter"}, {"proliferate"}},
		Keywords:  []cards.Keyword{cards.Evolve, cards.Modular, cards.Graft, cards.Outlast, cards.Mentor, cards.Training, cards.Riot, cards.Undying, cards.Backup},
	},
	Lifegain: {
		Fragments: [][]string{{"you gain life"}, {"gain", "life"}},
		Keywords:  []cards.Keyword{cards.Lifelink, cards.Extort},
	},
	Reanimator: {
		Fragments: [][]string{{"from a graveyard onto the battlefield"}, {"from your graveyard onto the battlefield"}, {"return", "graveyard", "to the battlefield"}},
		Keywords:  []cards.Keyword{cards.Unearth, cards.Embalm, cards.Eternalize, cards.Persist, cards.Encore},
	},
	Voltron: {
		Fragments: [][]string{{"equipped creature"}, {"enchanted creature gets"}, {"commander damage"}},
		Keywords:  []cards.Keyword{cards.Equip, cards.Reconfigure, cards.Bestow, cards.LivingWeapon, cards.TotemArmor, cards.DoubleStrike},
	},
	Landfall: {
		Fragments: [][]string{{"landfall"}, {"whenever a land enters"}, {"play an additional land"}, {"land", "from your graveyard"}},
	},
	Blink: {
		Fragments: [][]string{{"exile", "return", "to the battlefield"}, {"flicker"}},
		Keywords:  []cards.Keyword{cards.Champion},
	},
	Graveyard: {
		Fragments: [][]string{{"mill"}, {"from your graveyard"}, {"surveil"}},
		Keywords:  []cards.Keyword{cards.Dredge, cards.Flashback, cards.Delve, cards.Escape, cards.JumpStart, cards.Disturb, cards.Scavenge, cards.Aftermath},
	},
	Wheels: {
		Fragments: [][]string{{"each player discards", "draws"}, {"discards their hand"}, {"shuffles their hand"}, {"whenever an opponent draws"}},
		Keywords:  []cards.Keyword{cards.Madness},
	},
	Artifacts: {
		Fragments: [][]string{{"artifact you control"}, {"artifacts you control"}, {"whenever an artifact"}, {"for each artifact"}},
		Keywords:  []cards.Keyword{cards.Affinity, cards.Improvise, cards.Modular},
	},
	Enchantress: {
		Fragments: [][]string{{"whenever you cast an enchantment"}, {"enchantment spell"}, {"enchantments you control"}, {"for each enchantment"}},
		Keywords:  []cards.Keyword{cards.Bestow},
	},
}

// archetypeDescriptions provides human-readable descriptions.
var archetypeDescriptions = map[Archetype]string{
	Aristocrats:  "Sacrifices creatures for value and drains opponents as they die",
	Spellslinger: "Chains instants and sorceries and rewards casting them",
	Tokens:       "Goes wide with creature and artifact tokens",
	Counters:     "Grows creatures with +1/+1 counters and proliferate",
	Lifegain:     "Gains life and converts it into advantage",
	Reanimator:   "Cheats big threats from the graveyard onto the battlefield",
	Voltron:      "Suits up one creature, usually the commander, with equipment and auras",
	Landfall:     "Triggers off lands entering the battlefield",
	Blink:        "Exiles and returns permanents to reuse their enter effects",
	Graveyard:    "Fills and uses the graveyard as a second hand",
	Wheels:       "Refills every hand and punishes opponents for drawing",
	Artifacts:    "Built around artifact synergies",
	Enchantress:  "Draws and gains value from casting enchantments",
}

// Description returns the human-readable summary of the archetype.
func (a Archetype) Description() string {
	return archetypeDescriptions[a]
}

// Matches reports whether either face of the card fits the archetype.
// Removal, counterspells and bounce never count toward an archetype.
func Matches(c *cards.Card, a Archetype) bool {
	signal, ok := archetypeSignals[a]
	if !ok || effects.Interaction(c) {
		return false
	}
	return effects.Matches(c, func(face *cards.Card) bool {
		return signal.matches(face)
	})
}

func (s Signal) matches(c *cards.Card) bool {
	for _, kw := range s.Keywords {
		if c.Has(kw) {
			return true
		}
	}

	text := strings.ToLower(c.OracleText)
	for _, group := range s.Fragments {
		if containsAll(text, group) {
			return true
		}
	}
	return false
}

func containsAll(text string, fragments []string) bool {
	for _, f := range fragments {
		if !strings.Contains(text, f) {
			return false
		}
	}
	return true
}

// Focus is the set of cards in a deck that support one archetype.
type Focus struct {
	Archetype   Archetype `json:"archetype"`
	Description string    `json:"description"`
	Cards       []string  `json:"cards"`
	// Share is the fraction of the deck's cards in this focus.
	Share float64 `json:"share"`
}

// Classify returns every archetype with at least one supporting card,
// largest focus first.
func Classify(deck []*cards.Card) []Focus {
	if len(deck) == 0 {
		return nil
	}

	var foci []Focus
	for _, a := range All {
		var names []string
		for _, c := range deck {
			if Matches(c, a) {
				names = append(names, c.Name)
			}
		}
		if len(names) == 0 {
			continue
		}
		foci = append(foci, Focus{
			Archetype:   a,
			Description: a.Description(),
			Cards:       names,
			Share:       float64(len(names)) / float64(len(deck)),
		})
	}

	// Sort by size descending; ties keep report order.
	sort.SliceStable(foci, func(i, j int) bool {
		return len(foci[i].Cards) > len(foci[j].Cards)
	})

	return foci
}

// Primary returns the largest focus, if any.
func Primary(foci []Focus) (Focus, bool) {
	if len(foci) == 0 {
		return Focus{}, false
	}
	return foci[0], true
}
