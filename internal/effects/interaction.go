package effects

import (
	"github.com/ramonehamilton/commander-analyzer/internal/cards"
)

// IsRemoval matches targeted destroy or exile effects. Exiling the card
// itself, or exiling and returning (blink), is not removal.
func IsRemoval(c *cards.Card) bool {
	hits := c.Has(cards.KeyDestroy) ||
		(c.Has(cards.KeyExile) && !c.SelfReferential() && !c.Has(cards.KeyReturn))
	if !hits || !c.Has(cards.RestrictTarget) {
		return false
	}
	if c.Text("from your hand") && !c.Text("any number") {
		return false
	}
	return !c.Has(cards.Flashback) && !c.Has(cards.RestrictOwn)
}

// IsBoardwipe matches mass removal: overloaded removal or bounce, or a
// quantified destroy, exile, bounce, -X/-X or edict effect.
func IsBoardwipe(c *cards.Card) bool {
	if IsRemoval(c) && c.Has(cards.Overload) {
		return true
	}
	if IsBounce(c) && c.Has(cards.Overload) && c.Text("owner") {
		return true
	}

	quantified := c.Has(cards.RestrictEach) || c.Has(cards.RestrictAll) || c.Has(cards.RestrictEvery)
	if !quantified {
		return false
	}
	effect := c.Has(cards.KeyDestroy) ||
		c.Has(cards.KeyExile) ||
		(c.Has(cards.KeyReturn) && c.Text("owner")) ||
		c.Has(cards.RestrictMinus) ||
		c.Has(cards.KeySacrifice)
	if !effect {
		return false
	}

	switch {
	case c.Has(cards.Overload), c.Has(cards.Phasing), c.Has(cards.Flashback):
		return false
	case c.IsType(cards.Planeswalker):
		return false
	case c.Has(cards.ZoneHand):
		return false
	case c.Says("each opponent"), c.Says("target opponent"):
		return false
	}
	return true
}

// IsCounter matches counterspells and spell redirection. Artifacts and
// Storm cards that mention counters are not counterspells.
func IsCounter(c *cards.Card) bool {
	if c.IsType(cards.Artifact) || c.Has(cards.Storm) {
		return false
	}
	counters := c.Has(cards.KeyCounter) &&
		!c.Has(cards.RestrictCant) &&
		!c.Has(cards.KeyPut) &&
		c.Has(cards.RestrictTarget) &&
		c.Has(cards.KeySpell)
	return counters || c.Text("new target")
}

// IsBounce matches effects that return permanents to their owner's hand.
func IsBounce(c *cards.Card) bool {
	return c.Has(cards.KeyReturn) &&
		c.Text("owner") &&
		c.Has(cards.ZoneHand) &&
		!c.Has(cards.Dash) &&
		!c.Has(cards.ZoneGraveyard)
}
