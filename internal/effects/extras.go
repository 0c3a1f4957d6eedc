package effects

import (
	"github.com/ramonehamilton/commander-analyzer/internal/cards"
)

var protectionGrants = func() []string {
	var out []string
	for _, verb := range []string{"gain", "gains", "have", "has"} {
		for _, what := range []string{"hexproof", "indestructible", "protection", "shroud"} {
			out = append(out, verb+" "+what)
		}
	}
	return append(out, "phase out", "phases out")
}()

// IsProtection matches effects that grant hexproof, indestructible,
// protection or shroud, or phase permanents out.
func IsProtection(c *cards.Card) bool {
	for _, phrase := range protectionGrants {
		if c.Says(phrase) {
			return true
		}
	}
	return false
}

// IsHandAttack matches forced discard aimed at other players.
func IsHandAttack(c *cards.Card) bool {
	if !c.Has(cards.KeyDiscard) {
		return false
	}
	return c.Says("target player") ||
		c.Says("target opponent") ||
		c.Says("each opponent") ||
		c.Says("each player") ||
		c.Says("that player discards")
}

// IsGraveyardHate matches graveyard exile effects.
func IsGraveyardHate(c *cards.Card) bool {
	if !c.Has(cards.KeyExile) || !c.Has(cards.ZoneGraveyard) {
		return false
	}
	return c.Says("target player's graveyard") ||
		c.Says("all graveyards") ||
		c.Says("each graveyard") ||
		c.Says("each opponent's graveyard") ||
		c.Says("card from a graveyard") ||
		c.Says("cards from graveyards") ||
		c.Says("would be put into a graveyard")
}

// IsTokenMaker matches cards that create tokens.
func IsTokenMaker(c *cards.Card) bool {
	return c.Says("create") && c.Has(cards.KeyToken)
}

// IsExtraTurn matches extra turn effects.
func IsExtraTurn(c *cards.Card) bool {
	return c.Says("extra turn")
}

// IsBurn matches damage aimed at players or any target.
func IsBurn(c *cards.Card) bool {
	if !c.Has(cards.KeyDamage) {
		return false
	}
	return c.Says("any target") ||
		c.Says("each opponent") ||
		c.Says("target player") ||
		c.Says("target opponent")
}
