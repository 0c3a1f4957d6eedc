// Package analysis classifies built decks and ties the deck pipeline
// together: build, classify and save.
package analysis

import (
	"github.com/ramonehamilton/commander-analyzer/internal/archetype"
	"github.com/ramonehamilton/commander-analyzer/internal/cards"
	"github.com/ramonehamilton/commander-analyzer/internal/combo"
	"github.com/ramonehamilton/commander-analyzer/internal/deck"
	"github.com/ramonehamilton/commander-analyzer/internal/effects"
	"github.com/ramonehamilton/commander-analyzer/internal/mana"
	"github.com/ramonehamilton/commander-analyzer/internal/tutor"
)

// TypeBuckets groups the library by printed card type. A card with several
// types, such as an artifact creature, is listed under each of them.
type TypeBuckets struct {
	Creatures     []string `json:"creatures"`
	Enchantments  []string `json:"enchantments"`
	Artifacts     []string `json:"artifacts"`
	Lands         []string `json:"lands"`
	Planeswalkers []string `json:"planeswalkers"`
	Instants      []string `json:"instants"`
	Sorceries     []string `json:"sorceries"`
}

// CardTypes buckets the library by card type. Commanders are not included.
func CardTypes(library []*cards.Card) TypeBuckets {
	b := TypeBuckets{
		Creatures:     []string{},
		Enchantments:  []string{},
		Artifacts:     []string{},
		Lands:         []string{},
		Planeswalkers: []string{},
		Instants:      []string{},
		Sorceries:     []string{},
	}

	for _, c := range library {
		for _, t := range c.CardTypes {
			switch t.Primary {
			case cards.Creature:
				b.Creatures = append(b.Creatures, c.Name)
			case cards.Enchantment:
				b.Enchantments = append(b.Enchantments, c.Name)
			case cards.Artifact:
				b.Artifacts = append(b.Artifacts, c.Name)
			case cards.Land:
				b.Lands = append(b.Lands, c.Name)
			case cards.Planeswalker:
				b.Planeswalkers = append(b.Planeswalkers, c.Name)
			case cards.Instant:
				b.Instants = append(b.Instants, c.Name)
			case cards.Sorcery:
				b.Sorceries = append(b.Sorceries, c.Name)
			}
		}
	}
	return b
}

// Report is the full classification of a deck.
type Report struct {
	DeckID       string                   `json:"deck_id"`
	Deck         string                   `json:"deck"`
	Commanders   []string                 `json:"commanders"`
	Size         int                      `json:"size"`
	Build        deck.BuildReport         `json:"build"`
	CardTypes    TypeBuckets              `json:"card_types"`
	Mana         mana.Report              `json:"mana"`
	Effects      effects.Buckets          `json:"effects"`
	EffectCounts map[effects.Category]int `json:"effect_counts"`
	Tutors       []tutor.Link             `json:"tutors"`
	Archetypes   []archetype.Focus        `json:"archetypes"`
	Primary      archetype.Archetype      `json:"primary_archetype,omitempty"`
	Combos       combo.Matches            `json:"combos"`
}

// Classify runs every classifier over a built deck. It never fails and
// does not modify the deck, so classifying the same deck twice gives the
// same report. combos may be empty.
func Classify(d *deck.Deck, combos []combo.Combo) *Report {
	all := d.Cards()

	commanders := make([]string, 0, len(d.Commanders))
	for _, c := range d.Commanders {
		commanders = append(commanders, c.Name)
	}

	buckets := effects.Bucket(all)
	links := tutor.LinkDeck(d.Commanders, d.Library)
	if links == nil {
		links = []tutor.Link{}
	}
	foci := archetype.Classify(all)
	if foci == nil {
		foci = []archetype.Focus{}
	}

	r := &Report{
		DeckID:       d.ID,
		Deck:         d.Name,
		Commanders:   commanders,
		Size:         d.Size(),
		Build:        d.Report,
		CardTypes:    CardTypes(d.Library),
		Mana:         mana.Analyze(all),
		Effects:      buckets,
		EffectCounts: buckets.Counts(),
		Tutors:       links,
		Archetypes:   foci,
		Combos:       combo.Match(d.Commanders, d.Library, combos),
	}
	if primary, ok := archetype.Primary(foci); ok {
		r.Primary = primary.Archetype
	}
	return r
}
