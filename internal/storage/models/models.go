// Package models defines the rows stored in the analyzer database.
package models

import "time"

// CardRecord is one raw card record from the local card database, keyed
// by card name.
type CardRecord struct {
	Name      string
	OracleID  string
	TypeLine  string
	Data      []byte // Raw Scryfall JSON
	UpdatedAt time.Time
}

// Deck is a saved, built deck.
type Deck struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Fingerprint string    `json:"fingerprint"` // Decklist fingerprint, unique per saved deck
	Source      string    `json:"source"`      // File path or "api"
	Requested   int       `json:"requested"`   // Total requested copies
	Resolved    int       `json:"resolved"`    // Copies that resolved to a card
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// DeckCard is one decklist entry of a saved deck.
type DeckCard struct {
	ID        int    `json:"id"`
	DeckID    string `json:"deck_id"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	Commander bool   `json:"commander"`
}
