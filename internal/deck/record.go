package deck

import (
	"time"

	"github.com/ramonehamilton/commander-analyzer/internal/storage/models"
)

// ToRecord converts a built deck and the decklist it came from to storage
// rows. Only resolved entries are stored.
func ToRecord(d *Deck, list *Decklist, source string) (*models.Deck, []*models.DeckCard) {
	now := time.Now().UTC()
	rec := &models.Deck{
		ID:          d.ID,
		Name:        d.Name,
		Fingerprint: list.Fingerprint(),
		Source:      source,
		Requested:   d.Report.Requested,
		Resolved:    d.Report.Resolved,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	commanders := make(map[string]bool, len(d.Commanders))
	for _, c := range d.Commanders {
		commanders[c.Name] = true
	}

	counts := make(map[string]int)
	var order []string
	for _, c := range d.Cards() {
		if counts[c.Name] == 0 {
			order = append(order, c.Name)
		}
		counts[c.Name]++
	}

	rows := make([]*models.DeckCard, 0, len(order))
	for _, name := range order {
		n := counts[name]
		if commanders[name] {
			// A promoted commander may share its name with library copies.
			rows = append(rows, &models.DeckCard{DeckID: d.ID, Name: name, Quantity: 1, Commander: true})
			n--
		}
		if n > 0 {
			rows = append(rows, &models.DeckCard{DeckID: d.ID, Name: name, Quantity: n})
		}
	}
	return rec, rows
}

// FromRecord rebuilds the decklist of a saved deck.
func FromRecord(rec *models.Deck, rows []*models.DeckCard) *Decklist {
	list := &Decklist{Name: rec.Name, Entries: make([]Entry, 0, len(rows))}
	for _, r := range rows {
		list.Entries = append(list.Entries, Entry{
			Quantity:  r.Quantity,
			Name:      r.Name,
			Commander: r.Commander,
		})
	}
	return list
}
