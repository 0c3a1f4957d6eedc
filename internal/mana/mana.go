// Package mana tallies a deck's curve, colored requirements and mana
// production, and finds its ramp.
package mana

import (
	"math"
	"slices"
	"strings"

	"github.com/samber/lo"

	"github.com/ramonehamilton/commander-analyzer/internal/cards"
)

// CurveBucket holds the non-land cards at one mana value.
type CurveBucket struct {
	ManaValue int      `json:"mana_value"`
	Cards     []string `json:"cards"`
}

// Curve is ordered by ascending mana value.
type Curve []CurveBucket

// BuildCurve groups non-land cards by the floor of their mana value.
func BuildCurve(deck []*cards.Card) Curve {
	spells := lo.Filter(deck, func(c *cards.Card, _ int) bool {
		return !c.IsType(cards.Land)
	})
	groups := lo.GroupBy(spells, func(c *cards.Card) int {
		return int(math.Floor(c.ManaValue))
	})

	values := lo.Keys(groups)
	slices.Sort(values)

	curve := make(Curve, 0, len(values))
	for _, v := range values {
		curve = append(curve, CurveBucket{
			ManaValue: v,
			Cards:     lo.Map(groups[v], func(c *cards.Card, _ int) string { return c.Name }),
		})
	}
	return curve
}

// Count returns the number of cards on the curve.
func (c Curve) Count() int {
	n := 0
	for _, b := range c {
		n += len(b.Cards)
	}
	return n
}

// Average returns the mean mana value of the curve, or 0 when it is empty.
func (c Curve) Average() float64 {
	total, n := 0, 0
	for _, b := range c {
		total += b.ManaValue * len(b.Cards)
		n += len(b.Cards)
	}
	if n == 0 {
		return 0
	}
	return float64(total) / float64(n)
}

// Pips counts colored mana symbols in the costs of every card.
func Pips(deck []*cards.Card) map[cards.Color]int {
	out := make(map[cards.Color]int, len(cards.Colors))
	for _, color := range cards.Colors {
		out[color] = 0
	}
	for _, c := range deck {
		for _, color := range cards.Colors {
			out[color] += c.PipCount(color)
		}
	}
	return out
}

// Production counts the mana symbols each producer can add, per color.
// Producers must tap or be enchantments, and must say "add".
func Production(deck []*cards.Card) map[cards.Color]int {
	colors := append(slices.Clone(cards.Colors), cards.Colorless)
	out := make(map[cards.Color]int, len(colors))
	for _, color := range colors {
		out[color] = 0
	}
	for _, c := range deck {
		if !producer(c) {
			continue
		}
		for _, color := range colors {
			if c.Has(color.ManaKey()) {
				out[color] += strings.Count(c.OracleText, color.Symbol())
			}
		}
	}
	return out
}

func producer(c *cards.Card) bool {
	return (c.Has(cards.KeyTap) || c.IsType(cards.Enchantment)) && c.Has(cards.KeyAdd)
}

func producesMana(c *cards.Card) bool {
	if c.Has(cards.KeyColorless) || c.Has(cards.KeyAnyColor) {
		return true
	}
	for _, color := range cards.Colors {
		if c.Has(color.ManaKey()) {
			return true
		}
	}
	return false
}
