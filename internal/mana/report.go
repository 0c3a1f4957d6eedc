package mana

import "github.com/ramonehamilton/commander-analyzer/internal/cards"

// Report is the mana picture of a deck.
type Report struct {
	Curve            Curve               `json:"curve"`
	AverageManaValue float64             `json:"average_mana_value"`
	Pips             map[cards.Color]int `json:"pips"`
	Production       map[cards.Color]int `json:"production"`
	Ramp             Ramp                `json:"ramp"`
}

// Analyze builds the full mana report. The deck should include the
// commanders.
func Analyze(deck []*cards.Card) Report {
	curve := BuildCurve(deck)
	return Report{
		Curve:            curve,
		AverageManaValue: curve.Average(),
		Pips:             Pips(deck),
		Production:       Production(deck),
		Ramp:             FindRamp(deck),
	}
}
