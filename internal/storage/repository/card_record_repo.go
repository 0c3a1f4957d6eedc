package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ramonehamilton/commander-analyzer/internal/storage/models"
)

// CardRecordRepository stores raw card records for offline lookup.
type CardRecordRepository interface {
	// Save inserts or replaces a card record.
	Save(ctx context.Context, rec *models.CardRecord) error

	// SaveBatch inserts or replaces records in a single transaction.
	SaveBatch(ctx context.Context, recs []*models.CardRecord) error

	// GetByName finds a record by exact name, then case-insensitively, then
	// by substring. Returns nil when nothing matches.
	GetByName(ctx context.Context, name string) (*models.CardRecord, error)

	// Count returns the number of stored records.
	Count(ctx context.Context) (int, error)
}

type cardRecordRepository struct {
	db *sql.DB
}

// NewCardRecordRepository creates a new card record repository.
func NewCardRecordRepository(db *sql.DB) CardRecordRepository {
	return &cardRecordRepository{db: db}
}

const upsertCardRecord = `
	INSERT INTO card_records (name, oracle_id, type_line, data, updated_at)
	VALUES (?, ?, ?, ?, ?)
	ON CONFLICT(name) DO UPDATE SET
		oracle_id = excluded.oracle_id,
		type_line = excluded.type_line,
		data = excluded.data,
		updated_at = excluded.updated_at
`

// Save inserts or replaces a card record.
func (r *cardRecordRepository) Save(ctx context.Context, rec *models.CardRecord) error {
	if rec.UpdatedAt.IsZero() {
		rec.UpdatedAt = time.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx, upsertCardRecord,
		rec.Name, rec.OracleID, rec.TypeLine, string(rec.Data), rec.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to save card record %q: %w", rec.Name, err)
	}
	return nil
}

// SaveBatch inserts or replaces records in a single transaction.
func (r *cardRecordRepository) SaveBatch(ctx context.Context, recs []*models.CardRecord) error {
	if len(recs) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, upsertCardRecord)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	now := time.Now().UTC()
	for _, rec := range recs {
		if rec.UpdatedAt.IsZero() {
			rec.UpdatedAt = now
		}
		if _, err := stmt.ExecContext(ctx, rec.Name, rec.OracleID, rec.TypeLine, string(rec.Data), rec.UpdatedAt); err != nil {
			return fmt.Errorf("failed to save card record %q: %w", rec.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit card records: %w", err)
	}
	return nil
}

// GetByName finds a record by exact name, then case-insensitively, then by
// substring. The shortest substring match wins.
func (r *cardRecordRepository) GetByName(ctx context.Context, name string) (*models.CardRecord, error) {
	queries := []string{
		`SELECT name, oracle_id, type_line, data, updated_at FROM card_records WHERE name = ?`,
		`SELECT name, oracle_id, type_line, data, updated_at FROM card_records WHERE name = ? COLLATE NOCASE LIMIT 1`,
		`SELECT name, oracle_id, type_line, data, updated_at FROM card_records
		 WHERE name LIKE '%' || ? || '%' ORDER BY length(name), name LIMIT 1`,
	}

	for _, query := range queries {
		rec, err := r.scanOne(ctx, query, name)
		if err != nil {
			return nil, err
		}
		if rec != nil {
			return rec, nil
		}
	}
	return nil, nil
}

func (r *cardRecordRepository) scanOne(ctx context.Context, query, name string) (*models.CardRecord, error) {
	rec := &models.CardRecord{}
	var oracleID sql.NullString
	var data string
	err := r.db.QueryRowContext(ctx, query, name).Scan(
		&rec.Name,
		&oracleID,
		&rec.TypeLine,
		&data,
		&rec.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get card record: %w", err)
	}
	rec.OracleID = oracleID.String
	rec.Data = []byte(data)
	return rec, nil
}

// Count returns the number of stored records.
func (r *cardRecordRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM card_records`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count card records: %w", err)
	}
	return n, nil
}
