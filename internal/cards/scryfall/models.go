package scryfall

import (
	"errors"
	"fmt"
	"time"
)

// Card is a card record as served by Scryfall's card endpoints and bulk files.
type Card struct {
	Object   string `json:"object,omitempty"`
	Code     string `json:"code,omitempty"`
	ID       string `json:"id"`
	OracleID string `json:"oracle_id"`

	Name          string   `json:"name"`
	Lang          string   `json:"lang,omitempty"`
	Layout        string   `json:"layout"`
	ManaCost      string   `json:"mana_cost,omitempty"`
	CMC           float64  `json:"cmc"`
	TypeLine      string   `json:"type_line"`
	OracleText    string   `json:"oracle_text,omitempty"`
	Colors        []string `json:"colors,omitempty"`
	ColorIdentity []string `json:"color_identity"`
	Keywords      []string `json:"keywords,omitempty"`

	Power     string `json:"power,omitempty"`
	Toughness string `json:"toughness,omitempty"`
	Loyalty   string `json:"loyalty,omitempty"`

	SetCode     string `json:"set,omitempty"`
	ScryfallURI string `json:"scryfall_uri,omitempty"`

	// Card faces (for DFCs, MDFCs, split and adventure cards)
	CardFaces []CardFace `json:"card_faces,omitempty"`

	Legalities Legalities `json:"legalities"`
}

// NotFound reports whether the record is Scryfall's "not_found" sentinel.
func (c *Card) NotFound() bool {
	return c.Object == "error" && c.Code == "not_found"
}

// CardFace represents one face of a multi-faced card.
type CardFace struct {
	Name       string   `json:"name"`
	ManaCost   string   `json:"mana_cost,omitempty"`
	TypeLine   string   `json:"type_line"`
	OracleText string   `json:"oracle_text,omitempty"`
	Colors     []string `json:"colors,omitempty"`
	Power      string   `json:"power,omitempty"`
	Toughness  string   `json:"toughness,omitempty"`
	Loyalty    string   `json:"loyalty,omitempty"`
}

// Legalities holds the formats this tool cares about.
type Legalities struct {
	Commander       string `json:"commander"`
	Oathbreaker     string `json:"oathbreaker,omitempty"`
	Brawl           string `json:"brawl,omitempty"`
	PauperCommander string `json:"paupercommander,omitempty"`
	Predh           string `json:"predh,omitempty"`
}

// BulkDataList represents the list of bulk data files.
type BulkDataList struct {
	Object  string     `json:"object"`
	HasMore bool       `json:"has_more"`
	Data    []BulkData `json:"data"`
}

// BulkData represents a bulk data file download.
type BulkData struct {
	ID              string    `json:"id"`
	Type            string    `json:"type"`
	UpdatedAt       time.Time `json:"updated_at"`
	Name            string    `json:"name"`
	Size            int64     `json:"size"`
	DownloadURI     string    `json:"download_uri"`
	ContentType     string    `json:"content_type"`
	ContentEncoding string    `json:"content_encoding"`
}

// Find returns the bulk file of the given type ("oracle_cards", "default_cards").
func (l *BulkDataList) Find(kind string) (*BulkData, bool) {
	for i := range l.Data {
		if l.Data[i].Type == kind {
			return &l.Data[i], true
		}
	}
	return nil, false
}

// APIError represents an error response from the Scryfall API.
type APIError struct {
	Object   string   `json:"object"`
	Code     string   `json:"code"`
	Status   int      `json:"status"`
	Details  string   `json:"details"`
	Warnings []string `json:"warnings,omitempty"`
}

// Error implements the error interface for APIError.
func (e *APIError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("Scryfall API error (HTTP %d): %s", e.Status, e.Details)
	}
	return fmt.Sprintf("Scryfall API error (HTTP %d): %s", e.Status, e.Code)
}

// NotFoundError represents a 404 error from the API.
type NotFoundError struct {
	URL string
}

// Error implements the error interface for NotFoundError.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("resource not found: %s", e.URL)
}

// IsNotFound returns true if the error is, or wraps, a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
