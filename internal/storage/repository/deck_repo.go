package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ramonehamilton/commander-analyzer/internal/storage/models"
)

// DeckRepository handles database operations for saved decks.
type DeckRepository interface {
	// Save inserts the deck and its cards, replacing any deck with the same
	// ID.
	Save(ctx context.Context, deck *models.Deck, cards []*models.DeckCard) error

	// GetByID retrieves a deck by its ID. Returns nil when absent.
	GetByID(ctx context.Context, id string) (*models.Deck, error)

	// GetByFingerprint retrieves a deck by decklist fingerprint.
	GetByFingerprint(ctx context.Context, fingerprint string) (*models.Deck, error)

	// List retrieves all decks, newest first.
	List(ctx context.Context) ([]*models.Deck, error)

	// GetCards retrieves all entries of a deck, commanders first.
	GetCards(ctx context.Context, deckID string) ([]*models.DeckCard, error)

	// Delete deletes a deck and its cards.
	Delete(ctx context.Context, id string) error
}

type deckRepository struct {
	db *sql.DB
}

// NewDeckRepository creates a new deck repository.
func NewDeckRepository(db *sql.DB) DeckRepository {
	return &deckRepository{db: db}
}

// Save inserts the deck and its cards in one transaction.
func (r *deckRepository) Save(ctx context.Context, deck *models.Deck, cards []*models.DeckCard) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO decks (id, name, fingerprint, source, requested, resolved, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			fingerprint = excluded.fingerprint,
			source = excluded.source,
			requested = excluded.requested,
			resolved = excluded.resolved,
			updated_at = excluded.updated_at
	`,
		deck.ID,
		deck.Name,
		deck.Fingerprint,
		deck.Source,
		deck.Requested,
		deck.Resolved,
		deck.CreatedAt,
		deck.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save deck: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM deck_cards WHERE deck_id = ?`, deck.ID); err != nil {
		return fmt.Errorf("failed to clear deck cards: %w", err)
	}

	for _, card := range cards {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO deck_cards (deck_id, name, quantity, commander)
			VALUES (?, ?, ?, ?)
			ON CONFLICT(deck_id, name, commander) DO UPDATE SET
				quantity = deck_cards.quantity + excluded.quantity
		`, deck.ID, card.Name, card.Quantity, card.Commander)
		if err != nil {
			return fmt.Errorf("failed to add card %q to deck: %w", card.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit deck: %w", err)
	}
	return nil
}

const deckColumns = `id, name, fingerprint, source, requested, resolved, created_at, updated_at`

// GetByID retrieves a deck by its ID.
func (r *deckRepository) GetByID(ctx context.Context, id string) (*models.Deck, error) {
	return r.getOne(ctx, `SELECT `+deckColumns+` FROM decks WHERE id = ?`, id)
}

// GetByFingerprint retrieves a deck by decklist fingerprint.
func (r *deckRepository) GetByFingerprint(ctx context.Context, fingerprint string) (*models.Deck, error) {
	return r.getOne(ctx, `SELECT `+deckColumns+` FROM decks WHERE fingerprint = ?`, fingerprint)
}

func (r *deckRepository) getOne(ctx context.Context, query string, arg any) (*models.Deck, error) {
	deck, err := scanDeck(r.db.QueryRowContext(ctx, query, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get deck: %w", err)
	}
	return deck, nil
}

// List retrieves all decks, newest first.
func (r *deckRepository) List(ctx context.Context) ([]*models.Deck, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+deckColumns+` FROM decks ORDER BY updated_at DESC, name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list decks: %w", err)
	}
	defer func() { _ = rows.Close() }()

	decks := []*models.Deck{}
	for rows.Next() {
		deck, err := scanDeck(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan deck: %w", err)
		}
		decks = append(decks, deck)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating decks: %w", err)
	}
	return decks, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanDeck(s scanner) (*models.Deck, error) {
	deck := &models.Deck{}
	err := s.Scan(
		&deck.ID,
		&deck.Name,
		&deck.Fingerprint,
		&deck.Source,
		&deck.Requested,
		&deck.Resolved,
		&deck.CreatedAt,
		&deck.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return deck, nil
}

// GetCards retrieves all entries of a deck, commanders first.
func (r *deckRepository) GetCards(ctx context.Context, deckID string) ([]*models.DeckCard, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, deck_id, name, quantity, commander
		FROM deck_cards
		WHERE deck_id = ?
		ORDER BY commander DESC, id
	`, deckID)
	if err != nil {
		return nil, fmt.Errorf("failed to get deck cards: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var cards []*models.DeckCard
	for rows.Next() {
		card := &models.DeckCard{}
		if err := rows.Scan(&card.ID, &card.DeckID, &card.Name, &card.Quantity, &card.Commander); err != nil {
			return nil, fmt.Errorf("failed to scan deck card: %w", err)
		}
		cards = append(cards, card)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating deck cards: %w", err)
	}
	return cards, nil
}

// Delete deletes a deck and its cards.
func (r *deckRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM decks WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete deck: %w", err)
	}
	return nil
}
