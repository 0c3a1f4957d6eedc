// Package combo loads a table of known card combinations and finds the ones
// a deck assembles.
package combo

import (
	"strings"

	"github.com/samber/lo"

	"github.com/ramonehamilton/commander-analyzer/internal/cards"
)

// MaxPieces is the number of card-name columns read from each table row.
const MaxPieces = 10

// MinPieces is the smallest row kept as a combo.
const MinPieces = 2

// Combo is one row of the combo table.
type Combo struct {
	Pieces []string `json:"pieces"`
}

// NumPieces returns the number of named cards in the combo.
func (c Combo) NumPieces() int {
	return len(c.Pieces)
}

// FromRow reads the card slots of one table row. Empty slots are skipped
// and cells past MaxPieces are ignored. ok is false when fewer than
// MinPieces names remain.
func FromRow(row []string) (Combo, bool) {
	if len(row) > MaxPieces {
		row = row[:MaxPieces]
	}
	var pieces []string
	for _, cell := range row {
		if name := strings.TrimSpace(cell); name != "" {
			pieces = append(pieces, name)
		}
	}
	if len(pieces) < MinPieces {
		return Combo{}, false
	}
	return Combo{Pieces: pieces}, true
}

// FromRows converts table rows to combos, dropping rows that are too short.
func FromRows(rows [][]string) []Combo {
	out := make([]Combo, 0, len(rows))
	for _, row := range rows {
		if c, ok := FromRow(row); ok {
			out = append(out, c)
		}
	}
	return out
}

// Rows converts combos back to table rows.
func Rows(combos []Combo) [][]string {
	return lo.Map(combos, func(c Combo, _ int) []string { return c.Pieces })
}

// Found is a combo every piece of which is in the deck.
type Found struct {
	Pieces []string `json:"pieces"`
	// Commander is true when one of the pieces is a commander.
	Commander bool `json:"commander"`
}

// NearMiss is a combo the deck is exactly one card away from.
type NearMiss struct {
	Pieces  []string `json:"pieces"`
	Missing string   `json:"missing"`
}

// Matches holds the result of checking a deck against the combo table.
type Matches struct {
	Found      []Found    `json:"found"`
	NearMisses []NearMiss `json:"near_misses"`
}

// Match checks every combo against the deck's commanders and library by
// card name.
func Match(commanders, library []*cards.Card, combos []Combo) Matches {
	inLibrary := nameSet(library)
	inCommand := nameSet(commanders)

	m := Matches{Found: []Found{}, NearMisses: []NearMiss{}}
	for _, c := range combos {
		var hits int
		var commander bool
		var missing []string
		for _, piece := range c.Pieces {
			switch {
			case inCommand[piece]:
				hits++
				commander = true
			case inLibrary[piece]:
				hits++
			default:
				missing = append(missing, piece)
			}
		}

		switch {
		case hits == c.NumPieces():
			m.Found = append(m.Found, Found{Pieces: c.Pieces, Commander: commander})
		case len(missing) == 1:
			m.NearMisses = append(m.NearMisses, NearMiss{Pieces: c.Pieces, Missing: missing[0]})
		}
	}
	return m
}

func nameSet(deck []*cards.Card) map[string]bool {
	set := make(map[string]bool, len(deck))
	for _, c := range deck {
		set[c.Name] = true
	}
	return set
}
