// Package effects tags cards with the functional roles their rules text
// implies. Every detector is a pure predicate over one card face; a card
// may carry any number of tags.
package effects

import (
	"github.com/ramonehamilton/commander-analyzer/internal/cards"
)

// Category is a functional role a card plays in a deck.
type Category string

const (
	Draw          Category = "draw"
	Removal       Category = "removal"
	Boardwipe     Category = "boardwipe"
	Counter       Category = "counter"
	Bounce        Category = "bounce"
	Recursion     Category = "recursion"
	Reanimation   Category = "reanimation"
	Stax          Category = "stax"
	FastMana      Category = "fast_mana"
	Lord          Category = "lord"
	Payoff        Category = "payoff"
	Tutor         Category = "tutor"
	Protection    Category = "protection"
	HandAttack    Category = "hand_attack"
	GraveyardHate Category = "graveyard_hate"
	TokenMaker    Category = "token_maker"
	ExtraTurn     Category = "extra_turn"
	Burn          Category = "burn"
)

// Detector reports whether a single card face plays a role.
type Detector func(*cards.Card) bool

type detector struct {
	category Category
	match    Detector
}

// detectors is the full battery in report order.
var detectors = []detector{
	{Draw, IsDraw},
	{Removal, IsRemoval},
	{Boardwipe, IsBoardwipe},
	{Counter, IsCounter},
	{Bounce, IsBounce},
	{Recursion, IsRecursion},
	{Reanimation, IsReanimation},
	{Stax, IsStax},
	{FastMana, IsFastMana},
	{Lord, IsLord},
	{Payoff, IsPayoff},
	{Tutor, IsTutor},
	{Protection, IsProtection},
	{HandAttack, IsHandAttack},
	{GraveyardHate, IsGraveyardHate},
	{TokenMaker, IsTokenMaker},
	{ExtraTurn, IsExtraTurn},
	{Burn, IsBurn},
}

// Categories lists every category in report order.
func Categories() []Category {
	out := make([]Category, len(detectors))
	for i, d := range detectors {
		out[i] = d.category
	}
	return out
}

// Matches evaluates a detector on the card's front face and, when present,
// its back face.
func Matches(c *cards.Card, match Detector) bool {
	for _, face := range c.Faces() {
		if match(face) {
			return true
		}
	}
	return false
}

// Classify returns every category either face of the card belongs to.
func Classify(c *cards.Card) []Category {
	var out []Category
	for _, d := range detectors {
		if Matches(c, d.match) {
			out = append(out, d.category)
		}
	}
	return out
}

// Buckets maps each category to the names of the cards in it, in deck order.
type Buckets map[Category][]string

// Bucket classifies every card. Cards listed twice are counted twice.
func Bucket(deck []*cards.Card) Buckets {
	b := make(Buckets, len(detectors))
	for _, d := range detectors {
		b[d.category] = []string{}
	}
	for _, c := range deck {
		for _, cat := range Classify(c) {
			b[cat] = append(b[cat], c.Name)
		}
	}
	return b
}

// Counts returns the size of each bucket.
func (b Buckets) Counts() map[Category]int {
	out := make(map[Category]int, len(b))
	for cat, names := range b {
		out[cat] = len(names)
	}
	return out
}

// Interaction reports whether the card is removal, a counterspell or
// bounce on either face.
func Interaction(c *cards.Card) bool {
	return Matches(c, IsRemoval) || Matches(c, IsCounter) || Matches(c, IsBounce)
}
