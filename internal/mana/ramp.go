package mana

import (
	"slices"

	"github.com/samber/lo"

	"github.com/ramonehamilton/commander-analyzer/internal/cards"
)

// Ramp sorts a deck's acceleration by the kind of permanent providing it.
type Ramp struct {
	Dorks        []string `json:"dorks"`
	Artifacts    []string `json:"artifacts"`
	Enchantments []string `json:"enchantments"`
	Lands        []string `json:"lands"`
}

// Total returns the number of distinct ramp cards.
func (r Ramp) Total() int {
	return len(r.Dorks) + len(r.Artifacts) + len(r.Enchantments) + len(r.Lands)
}

// Cost reducers whose text fits the pattern but which only discount
// themselves or a narrow slice of spells.
var reducerExclusions = []string{
	"Blasphemous Act",
	"Ghalta, Primal Hunger",
	"Myr Enforcer",
	"Frogmite",
	"Thoughtcast",
}

// FindRamp collects mana rocks, dorks, enchantments, land ramp and cost
// reducers. Each list is deduplicated by name.
func FindRamp(deck []*cards.Card) Ramp {
	r := Ramp{
		Dorks:        []string{},
		Artifacts:    []string{},
		Enchantments: []string{},
		Lands:        []string{},
	}

	for _, c := range deck {
		switch {
		case IsRampSource(c):
			switch {
			case c.IsType(cards.Creature):
				r.Dorks = append(r.Dorks, c.Name)
			case c.IsType(cards.Artifact):
				if !c.Has(cards.KeySacrifice) {
					r.Artifacts = append(r.Artifacts, c.Name)
				}
			case c.IsType(cards.Enchantment):
				r.Enchantments = append(r.Enchantments, c.Name)
			}
		case IsCostReducer(c):
			if c.IsType(cards.Artifact) {
				r.Artifacts = append(r.Artifacts, c.Name)
			} else {
				r.Dorks = append(r.Dorks, c.Name)
			}
		}
		if IsLandRamp(c) {
			r.Lands = append(r.Lands, c.Name)
		}
	}

	r.Dorks = lo.Uniq(r.Dorks)
	r.Artifacts = lo.Uniq(r.Artifacts)
	r.Enchantments = lo.Uniq(r.Enchantments)
	r.Lands = lo.Uniq(r.Lands)
	return r
}

// IsRampSource matches non-land permanents that tap, or are enchantments,
// and add mana.
func IsRampSource(c *cards.Card) bool {
	return producer(c) && producesMana(c) && !c.IsType(cards.Land)
}

// IsLandRamp matches spells and permanents that fetch lands onto the
// battlefield or allow extra land drops.
func IsLandRamp(c *cards.Card) bool {
	if c.Says("additional land") {
		return true
	}
	return c.Has(cards.KeySearch) &&
		c.Mentions(cards.Land) &&
		c.Has(cards.ZoneLibrary) &&
		c.Has(cards.ZoneBattlefield) &&
		!c.IsType(cards.Land) &&
		!c.IsType(cards.Instant)
}

// IsCostReducer matches cards that make other spells cheaper.
func IsCostReducer(c *cards.Card) bool {
	if slices.Contains(reducerExclusions, c.Name) || c.Text("This spell costs") {
		return false
	}
	return c.Has(cards.KeyCost) &&
		c.Has(cards.RestrictLess) &&
		c.Has(cards.KeyCast) &&
		c.Has(cards.KeySpell)
}
