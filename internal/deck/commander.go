package deck

import (
	"errors"
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/ramonehamilton/commander-analyzer/internal/cards"
)

// ErrCommanderMissing is returned when no commander is marked and the
// library does not contain exactly one possible commander.
var ErrCommanderMissing = errors.New("commander missing")

// CommanderError carries the possible commanders found in the library.
type CommanderError struct {
	Candidates []string
}

func (e *CommanderError) Error() string {
	if len(e.Candidates) == 0 {
		return "commander missing: no legendary creature in the library"
	}
	return fmt.Sprintf("commander missing: choose one of %s", strings.Join(e.Candidates, ", "))
}

func (e *CommanderError) Unwrap() error { return ErrCommanderMissing }

// CanBeCommander reports whether the card may lead a deck: a legendary
// creature, or a card that says it can be your commander.
func CanBeCommander(c *cards.Card) bool {
	if c.Legendary && c.IsType(cards.Creature) {
		return true
	}
	return c.Says("can be your commander")
}

// CompleteCommander promotes the library's only possible commander when no
// commander is set. It returns a *CommanderError when there is none or more
// than one.
func (d *Deck) CompleteCommander() error {
	if len(d.Commanders) > 0 {
		return nil
	}

	candidates := lo.Uniq(lo.FilterMap(d.Library, func(c *cards.Card, _ int) (string, bool) {
		return c.Name, CanBeCommander(c)
	}))
	if len(candidates) != 1 {
		return &CommanderError{Candidates: candidates}
	}

	return d.Promote(candidates[0])
}

// Promote moves one copy of the named card from the library to the
// commanders.
func (d *Deck) Promote(name string) error {
	for i, c := range d.Library {
		if c.Name != name {
			continue
		}
		d.Library = append(d.Library[:i:i], d.Library[i+1:]...)
		d.Commanders = append(d.Commanders, asCommander(c))
		return nil
	}
	return fmt.Errorf("%q is not in the library", name)
}

func asCommander(c *cards.Card) *cards.Card {
	if c.Commander {
		return c
	}
	promoted := *c
	promoted.Commander = true
	return &promoted
}
