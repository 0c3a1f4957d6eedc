package storage

import (
	"context"
	"time"

	"github.com/ramonehamilton/commander-analyzer/internal/storage/models"
	"github.com/ramonehamilton/commander-analyzer/internal/storage/repository"
)

// Service provides high-level access to the card database, saved decks and
// the combo cache.
type Service struct {
	db     *DB
	cards  repository.CardRecordRepository
	decks  repository.DeckRepository
	combos repository.ComboRepository
}

// NewService creates a new storage service.
func NewService(db *DB) *Service {
	return &Service{
		db:     db,
		cards:  repository.NewCardRecordRepository(db.Conn()),
		decks:  repository.NewDeckRepository(db.Conn()),
		combos: repository.NewComboRepository(db.Conn()),
	}
}

// Close closes the underlying database.
func (s *Service) Close() error {
	return s.db.Close()
}

// FindCardRecord returns the stored record for name, or nil.
func (s *Service) FindCardRecord(ctx context.Context, name string) (*models.CardRecord, error) {
	return s.cards.GetByName(ctx, name)
}

// SaveCardRecords stores card records in one batch.
func (s *Service) SaveCardRecords(ctx context.Context, recs []*models.CardRecord) error {
	return s.cards.SaveBatch(ctx, recs)
}

// CountCardRecords returns the size of the local card database.
func (s *Service) CountCardRecords(ctx context.Context) (int, error) {
	return s.cards.Count(ctx)
}

// SaveDeck stores a deck and its decklist entries.
func (s *Service) SaveDeck(ctx context.Context, deck *models.Deck, cards []*models.DeckCard) error {
	return s.decks.Save(ctx, deck, cards)
}

// GetDeck returns a saved deck with its entries. The deck is nil when absent.
func (s *Service) GetDeck(ctx context.Context, id string) (*models.Deck, []*models.DeckCard, error) {
	deck, err := s.decks.GetByID(ctx, id)
	if err != nil || deck == nil {
		return nil, nil, err
	}
	cards, err := s.decks.GetCards(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return deck, cards, nil
}

// FindDeckByFingerprint returns the saved deck with the fingerprint, or nil.
func (s *Service) FindDeckByFingerprint(ctx context.Context, fingerprint string) (*models.Deck, error) {
	return s.decks.GetByFingerprint(ctx, fingerprint)
}

// ListDecks returns every saved deck.
func (s *Service) ListDecks(ctx context.Context) ([]*models.Deck, error) {
	return s.decks.List(ctx)
}

// DeleteDeck removes a saved deck.
func (s *Service) DeleteDeck(ctx context.Context, id string) error {
	return s.decks.Delete(ctx, id)
}

// ListCombos returns the cached combo rows and their fetch time.
func (s *Service) ListCombos(ctx context.Context) ([][]string, time.Time, error) {
	return s.combos.List(ctx)
}

// ReplaceCombos replaces the cached combo rows.
func (s *Service) ReplaceCombos(ctx context.Context, rows [][]string, fetchedAt time.Time) error {
	return s.combos.Replace(ctx, rows, fetchedAt)
}
