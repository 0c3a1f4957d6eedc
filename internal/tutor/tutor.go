// Package tutor links every library-search effect in a deck to the cards
// it can find there.
package tutor

import (
	"slices"

	"github.com/samber/lo"

	"github.com/ramonehamilton/commander-analyzer/internal/cards"
	"github.com/ramonehamilton/commander-analyzer/internal/effects"
)

// Branch names the rule that produced a target set.
type Branch string

const (
	BranchNamed       Branch = "named"
	BranchLandSubtype Branch = "land_subtype"
	BranchTransmute   Branch = "transmute"
	BranchManaValue   Branch = "mana_value"
	BranchPower       Branch = "power"
	BranchToughness   Branch = "toughness"
	BranchTypeFilter  Branch = "type_filter"
	BranchKeyword     Branch = "keyword"
	BranchLegendary   Branch = "legendary"
	BranchSubtype     Branch = "subtype"
	BranchLibrary     Branch = "library"
	BranchColor       Branch = "color"
	BranchType        Branch = "type"
)

// Search is the resolution of one searched card type.
type Search struct {
	Type      cards.CardType  `json:"type"`
	Branch    Branch          `json:"branch"`
	Op        Op              `json:"op,omitempty"`
	Threshold *float64        `json:"threshold,omitempty"`
	Keywords  []cards.Keyword `json:"keywords,omitempty"`
	Targets   []string        `json:"targets"`
}

// Link pairs a tutor with what it can find.
type Link struct {
	Tutor    string   `json:"tutor"`
	Searches []Search `json:"searches"`
}

// Targets returns the union of every search's targets.
func (l Link) Targets() []string {
	return lo.Uniq(lo.FlatMap(l.Searches, func(s Search, _ int) []string { return s.Targets }))
}

// LinkDeck resolves every tutor among the commanders and the library.
// Targets are always drawn from the library.
func LinkDeck(commanders, library []*cards.Card) []Link {
	var links []Link
	for _, c := range lo.Flatten([][]*cards.Card{commanders, library}) {
		for _, face := range c.Faces() {
			if !effects.IsTutor(face) {
				continue
			}
			pool := without(library, c.Name, face.Name)
			links = append(links, Link{Tutor: c.Name, Searches: resolve(face, pool)})
			break
		}
	}
	return links
}

// Resolve computes the target sets of a single tutor face against library.
// The tutor never targets itself.
func Resolve(tutor *cards.Card, library []*cards.Card) []Search {
	return resolve(tutor, without(library, tutor.Name))
}

func resolve(tutor *cards.Card, pool []*cards.Card) []Search {
	if rule, ok := namedRules[tutor.Name]; ok {
		return []Search{{
			Type:    rule.typ,
			Branch:  BranchNamed,
			Targets: names(lo.Filter(pool, func(c *cards.Card, _ int) bool { return rule.match(c) })),
		}}
	}

	var out []Search
	for _, t := range searchedTypes(tutor) {
		out = append(out, resolveType(tutor, t, pool))
	}
	return out
}

func resolveType(tutor *cards.Card, t cards.CardType, pool []*cards.Card) Search {
	switch {
	case isLandSearch(t) && len(t.Subtypes) > 0:
		return landSubtypeSearch(tutor, t, pool)
	case qualified(tutor):
		return restrictedSearch(tutor, t, pool)
	case t.Primary == cards.Generic:
		return genericSearch(tutor, t, pool)
	default:
		return colorOrTypeSearch(tutor, t, pool)
	}
}

// searchedTypes returns the card types a tutor looks for. Basic supersedes
// Land and inherits its subtypes. With no specific type, the tutor searches
// for a generic card.
func searchedTypes(tutor *cards.Card) []cards.CardType {
	basic := tutor.Mentions(cards.Basic)
	var landSubtypes []cards.Subtype
	var specific []cards.CardType

	for _, t := range tutor.OracleTypes {
		switch t.Primary {
		case cards.Generic, cards.Token, cards.Invalid:
			continue
		case cards.Land:
			if basic {
				landSubtypes = t.Subtypes
				continue
			}
		}
		specific = append(specific, t)
	}

	if basic {
		for i := range specific {
			if specific[i].Primary == cards.Basic {
				specific[i] = cards.CardType{Primary: cards.Basic, Subtypes: landSubtypes}
			}
		}
	}

	if len(specific) == 0 {
		return []cards.CardType{{Primary: cards.Generic, Subtypes: []cards.Subtype{}}}
	}
	return specific
}

func isLandSearch(t cards.CardType) bool {
	return t.Primary == cards.Land || t.Primary == cards.Basic
}

// qualified reports whether the tutor narrows its search with "card with".
func qualified(tutor *cards.Card) bool {
	if !tutor.Text("card with") && !tutor.Text("cards with") {
		return false
	}
	return !tutor.Has(cards.KeyExile) && !tutor.Has(cards.KeyToken) && !tutor.Has(cards.KeyCounter)
}

func landSubtypeSearch(tutor *cards.Card, t cards.CardType, pool []*cards.Card) Search {
	s := Search{Type: t, Branch: BranchLandSubtype, Targets: []string{}}
	if tutor.Has(cards.KeyInvestigate) {
		return s
	}
	s.Targets = names(lo.Filter(pool, func(c *cards.Card, _ int) bool {
		if !c.IsType(t.Primary) {
			return false
		}
		return lo.SomeBy(t.Subtypes, func(sub cards.Subtype) bool { return c.HasSubtype(sub) })
	}))
	return s
}

// genericSearch handles tutors that name no specific card type.
func genericSearch(tutor *cards.Card, t cards.CardType, pool []*cards.Card) Search {
	s := Search{Type: t}

	switch {
	case tutor.Has(cards.KeyNonLegendary):
		s.Branch = BranchLegendary
		s.Targets = names(lo.Filter(pool, func(c *cards.Card, _ int) bool { return !c.Legendary }))
		return s
	case tutor.Has(cards.KeyLegendary):
		s.Branch = BranchLegendary
		s.Targets = names(lo.Filter(pool, func(c *cards.Card, _ int) bool { return c.Legendary }))
		return s
	}

	var mentioned []cards.Subtype
	for _, p := range []cards.PrimaryType{cards.Artifact, cards.Creature, cards.Enchantment, cards.Instant, cards.Sorcery} {
		mentioned = append(mentioned, tutor.MentionedSubtypes(p)...)
	}
	if len(mentioned) > 0 {
		s.Branch = BranchSubtype
		s.Targets = names(lo.Filter(pool, func(c *cards.Card, _ int) bool {
			return lo.SomeBy(mentioned, func(sub cards.Subtype) bool { return c.HasSubtype(sub) })
		}))
		return s
	}

	s.Branch = BranchLibrary
	s.Targets = names(pool)
	return s
}

// colorOrTypeSearch returns the cards of type t, narrowed to the colors the
// tutor names when it names any.
func colorOrTypeSearch(tutor *cards.Card, t cards.CardType, pool []*cards.Card) Search {
	candidates, colored := typeAndColor(tutor, t, pool)
	branch := BranchType
	if colored {
		branch = BranchColor
	}
	return Search{Type: t, Branch: branch, Targets: names(candidates)}
}

func typeAndColor(tutor *cards.Card, t cards.CardType, pool []*cards.Card) ([]*cards.Card, bool) {
	candidates := ofType(t, pool)
	colors := lo.Filter(cards.Colors, func(col cards.Color, _ int) bool {
		k, ok := col.SearchKey()
		return ok && tutor.Has(k)
	})
	if len(colors) == 0 {
		return candidates, false
	}
	return lo.Filter(candidates, func(c *cards.Card, _ int) bool {
		return lo.SomeBy(colors, func(col cards.Color) bool { return c.PipCount(col) > 0 })
	}), true
}

// ofType filters pool to type t. A needle carrying subtypes matches cards
// sharing any one of them.
func ofType(t cards.CardType, pool []*cards.Card) []*cards.Card {
	return lo.Filter(pool, func(c *cards.Card, _ int) bool {
		if t.Primary == cards.Generic {
			return true
		}
		if !c.IsType(t.Primary) {
			return false
		}
		if len(t.Subtypes) == 0 {
			return true
		}
		return lo.SomeBy(t.Subtypes, func(sub cards.Subtype) bool { return c.HasSubtype(sub) })
	})
}

func without(library []*cards.Card, excluded ...string) []*cards.Card {
	return lo.Filter(library, func(c *cards.Card, _ int) bool {
		return !slices.Contains(excluded, c.Name)
	})
}

func names(cs []*cards.Card) []string {
	return lo.Uniq(lo.Map(cs, func(c *cards.Card, _ int) string { return c.Name }))
}
