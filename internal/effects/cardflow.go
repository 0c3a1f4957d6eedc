package effects

import (
	"slices"

	"github.com/ramonehamilton/commander-analyzer/internal/cards"
)

// IsDraw matches card draw and impulsive draw (exile the top card and play it).
func IsDraw(c *cards.Card) bool {
	switch {
	case c.IsType(cards.Artifact) && c.Has(cards.KeyAnyColor):
		return false
	case c.IsType(cards.Land) && c.Has(cards.KeyTap):
		return false
	case c.Has(cards.Imprint), c.Has(cards.KeySearch):
		return false
	}

	costClause := c.Text("would draw") || c.Text("skip") || c.Text("can't draw")
	restricted := c.Text("upkeep") || c.Text("draw step")
	draws := c.Has(cards.KeyDraw) && !costClause && !restricted && !c.Has(cards.KeyExile)

	impulse := c.Has(cards.KeyExile) &&
		c.Text("top") &&
		c.Mentions(cards.Generic) &&
		c.Has(cards.ZoneLibrary) &&
		!c.Has(cards.KeyReveal) &&
		!c.Has(cards.RestrictUntil) &&
		!c.Has(cards.RestrictInstead)

	return draws || impulse
}

// IsRecursion matches effects that move cards from a graveyard back to hand
// or to the top of the library.
func IsRecursion(c *cards.Card) bool {
	if !(c.Has(cards.KeyReturn) || c.Has(cards.KeyPut)) || !c.Has(cards.ZoneGraveyard) {
		return false
	}
	if c.Text("draw step") || c.Has(cards.KeyCounter) || c.Has(cards.KeySurveil) {
		return false
	}
	toHand := c.Has(cards.ZoneHand) && !c.Has(cards.KeyReveal)
	toTop := c.Has(cards.ZoneLibrary) && c.Text("top")
	return toHand || toTop
}

// IsReanimation matches effects that put cards from a graveyard onto the
// battlefield.
func IsReanimation(c *cards.Card) bool {
	if !(c.Has(cards.KeyReturn) || c.Has(cards.KeyPut)) {
		return false
	}
	if !c.Has(cards.ZoneGraveyard) || !c.Has(cards.ZoneBattlefield) || c.Has(cards.ZoneHand) {
		return false
	}
	if c.SelfReferential() && !c.Text("tapped") {
		return false
	}
	return !c.Says("one mana of any") &&
		!c.Has(cards.RestrictInstead) &&
		!c.Has(cards.KeySearch)
}

// nonTutors search libraries without being tutors for their controller.
var nonTutors = []string{
	"Aven Mindcensor",
	"Leonin Arbiter",
	"Stranglehold",
	"Opposition Agent",
	"Ashiok, Dream Render",
	"Mindlock Orb",
	"Shadow of Doubt",
	"Archive Trap",
	"Ob Nixilis, Unshackled",
}

// IsTutor matches effects that search their controller's library.
func IsTutor(c *cards.Card) bool {
	if !c.Has(cards.KeySearch) || !c.Has(cards.ZoneLibrary) {
		return false
	}
	if c.Has(cards.RestrictCant) || slices.Contains(nonTutors, c.Name) {
		return false
	}
	return !searchesOpponent(c)
}

func searchesOpponent(c *cards.Card) bool {
	return c.Says("search their library") ||
		c.Says("searches their library") ||
		c.Says("opponent searches") ||
		c.Says("player searches")
}
