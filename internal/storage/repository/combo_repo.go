package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// ComboRepository caches the combo table. Each row is a list of card
// names.
type ComboRepository interface {
	// List returns the cached rows and the oldest fetch time. The time is
	// zero when the cache is empty.
	List(ctx context.Context) ([][]string, time.Time, error)

	// Replace swaps the whole cache for rows.
	Replace(ctx context.Context, rows [][]string, fetchedAt time.Time) error
}

type comboRepository struct {
	db *sql.DB
}

// NewComboRepository creates a new combo repository.
func NewComboRepository(db *sql.DB) ComboRepository {
	return &comboRepository{db: db}
}

// List returns the cached rows in insertion order.
func (r *comboRepository) List(ctx context.Context) ([][]string, time.Time, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT pieces, fetched_at FROM combos ORDER BY id`)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("failed to list combos: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out [][]string
	var oldest time.Time
	for rows.Next() {
		var raw string
		var fetchedAt time.Time
		if err := rows.Scan(&raw, &fetchedAt); err != nil {
			return nil, time.Time{}, fmt.Errorf("failed to scan combo: %w", err)
		}

		var pieces []string
		if err := json.Unmarshal([]byte(raw), &pieces); err != nil {
			return nil, time.Time{}, fmt.Errorf("failed to decode combo pieces: %w", err)
		}
		out = append(out, pieces)

		if oldest.IsZero() || fetchedAt.Before(oldest) {
			oldest = fetchedAt
		}
	}
	if err := rows.Err(); err != nil {
		return nil, time.Time{}, fmt.Errorf("error iterating combos: %w", err)
	}
	return out, oldest, nil
}

// Replace swaps the whole cache for rows in one transaction.
func (r *comboRepository) Replace(ctx context.Context, rows [][]string, fetchedAt time.Time) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM combos`); err != nil {
		return fmt.Errorf("failed to clear combos: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO combos (pieces, fetched_at) VALUES (?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, row := range rows {
		raw, err := json.Marshal(row)
		if err != nil {
			return fmt.Errorf("failed to encode combo pieces: %w", err)
		}
		if _, err := stmt.ExecContext(ctx, string(raw), fetchedAt); err != nil {
			return fmt.Errorf("failed to insert combo: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit combos: %w", err)
	}
	return nil
}
