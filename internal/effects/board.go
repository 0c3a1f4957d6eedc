package effects

import (
	"github.com/ramonehamilton/commander-analyzer/internal/cards"
)

// IsStax matches permanents that tax or lock opponents. Mana producers,
// ETB effects and cards naming themselves are excluded.
func IsStax(c *cards.Card) bool {
	permanent := c.IsType(cards.Creature) ||
		c.IsType(cards.Artifact) ||
		c.IsType(cards.Enchantment) ||
		c.IsType(cards.Planeswalker)
	if !permanent {
		return false
	}
	if c.Has(cards.KeyAdd) || c.Has(cards.KeyETB) || c.SelfReferential() {
		return false
	}

	tax := (c.Says("each opponent") || c.Says("each player")) && (c.Says("pay") || c.Has(cards.KeyCost))
	return c.Has(cards.RestrictCant) ||
		tax ||
		(c.Has(cards.KeyCost) && c.Text("more")) ||
		c.Says("don't untap") ||
		c.Says("doesn't untap")
}

// IsFastMana matches one-shot mana: sacrifice-for-mana permanents, rituals,
// non-tapping creatures that add mana, and Treasure makers.
func IsFastMana(c *cards.Card) bool {
	if c.Text("additional") || c.Has(cards.Retrace) || c.Has(cards.KeyDraw) {
		return false
	}

	sacrificed := c.Has(cards.KeySacrifice) &&
		c.SelfReferential() &&
		!c.IsType(cards.Land) &&
		!c.Has(cards.KeySearch)
	oneShot := sacrificed ||
		c.IsType(cards.Instant) ||
		c.IsType(cards.Sorcery) ||
		(c.IsType(cards.Creature) && !c.Has(cards.KeyTap))

	return oneShot && (c.Has(cards.KeyAdd) || c.Text("Treasure"))
}

// IsLord matches anthems that pump a group of creatures.
func IsLord(c *cards.Card) bool {
	grouped := c.Has(cards.RestrictEach) ||
		c.Has(cards.RestrictAll) ||
		c.Has(cards.RestrictEvery) ||
		c.Says("creatures you control")
	if !grouped || !c.Text("get") || !c.Has(cards.RestrictPlus) {
		return false
	}
	return !c.IsType(cards.Planeswalker) &&
		!c.Has(cards.Exalted) &&
		!c.Has(cards.RestrictMinus) &&
		!c.Has(cards.KeyRemove)
}

var payoffTriggers = []string{
	"you cast",
	"you copy",
	"you play",
	"combat damage to a player",
	"damage to an opponent",
	"you discard",
	"you gain life",
	"you draw",
}

// IsPayoff matches triggered abilities that reward a repeated action, and
// free sacrifice outlets.
func IsPayoff(c *cards.Card) bool {
	if c.Has(cards.RestrictWhenever) {
		if c.Has(cards.KeyETB) || c.Has(cards.KeyDies) {
			return true
		}
		for _, phrase := range payoffTriggers {
			if c.Says(phrase) {
				return true
			}
		}
	}

	outlet := c.Says("sacrifice a creature") || c.Says("sacrifice an artifact")
	return outlet && !c.SelfReferential() && !c.Has(cards.KeySearch)
}
