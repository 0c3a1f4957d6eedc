package deck

import (
	"fmt"
	"sort"

	"github.com/ramonehamilton/commander-analyzer/internal/cards"
)

// CommanderDeckSize is the expected number of cards in a commander deck,
// commanders included.
const CommanderDeckSize = 100

// Deck is a built commander deck. Library holds one element per copy, so a
// decklist line "10 Forest" contributes ten entries. Order carries no
// meaning.
type Deck struct {
	ID         string        `json:"id"`
	Name       string        `json:"name"`
	Commanders []*cards.Card `json:"commanders"`
	Library    []*cards.Card `json:"library"`
	Report     BuildReport   `json:"report"`
}

// BuildReport describes how completely a decklist resolved.
type BuildReport struct {
	Requested  int      `json:"requested"`
	Resolved   int      `json:"resolved"`
	Unresolved []string `json:"unresolved"`
	// InvalidLines are decklist lines that could not be parsed.
	InvalidLines []string `json:"invalid_lines,omitempty"`
	// CommanderCandidates lists the possible commanders when none was
	// marked and none could be chosen.
	CommanderCandidates []string `json:"commander_candidates,omitempty"`
	Warnings            []string `json:"warnings"`
}

// Complete reports whether every requested copy resolved.
func (r BuildReport) Complete() bool {
	return r.Resolved == r.Requested && len(r.Unresolved) == 0
}

// Cards returns the commanders followed by the library.
func (d *Deck) Cards() []*cards.Card {
	out := make([]*cards.Card, 0, len(d.Commanders)+len(d.Library))
	out = append(out, d.Commanders...)
	return append(out, d.Library...)
}

// Size returns the number of cards in the deck, commanders included.
func (d *Deck) Size() int {
	return len(d.Commanders) + len(d.Library)
}

// Validate refreshes the report's warnings about deck size and commanders.
func (d *Deck) Validate() {
	var warnings []string
	if n := d.Size(); n != CommanderDeckSize {
		warnings = append(warnings, fmt.Sprintf("deck has %d cards, expected %d", n, CommanderDeckSize))
	}
	switch n := len(d.Commanders); {
	case n == 0:
		warnings = append(warnings, "deck has no commander")
	case n > 2:
		warnings = append(warnings, fmt.Sprintf("deck has %d commanders, at most 2 are allowed", n))
	}
	if missing := d.Report.Requested - d.Report.Resolved; missing > 0 {
		warnings = append(warnings, fmt.Sprintf("%d of %d cards could not be resolved", missing, d.Report.Requested))
	}
	if warnings == nil {
		warnings = []string{}
	}
	d.Report.Warnings = warnings
}

func sortByName(deck []*cards.Card) {
	sort.SliceStable(deck, func(i, j int) bool { return deck[i].Name < deck[j].Name })
}
