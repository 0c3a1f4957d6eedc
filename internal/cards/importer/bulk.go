// Package importer fills the local card database from Scryfall bulk files.
package importer

import (
	"bufio"
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ramonehamilton/commander-analyzer/internal/cards/scryfall"
	"github.com/ramonehamilton/commander-analyzer/internal/storage/models"
)

// OracleCards is the bulk file with one record per unique card.
const OracleCards = "oracle_cards"

// BulkSource lists and downloads Scryfall bulk files.
type BulkSource interface {
	GetBulkData(ctx context.Context) (*scryfall.BulkDataList, error)
	Download(ctx context.Context, uri string) (io.ReadCloser, error)
}

// RecordStore receives imported card records.
type RecordStore interface {
	SaveCardRecords(ctx context.Context, recs []*models.CardRecord) error
}

// BulkImporter handles importing card data from Scryfall bulk files.
type BulkImporter struct {
	source  BulkSource
	store   RecordStore
	options BulkImportOptions
	log     logrus.FieldLogger
}

// BulkImportOptions configures the bulk import process.
type BulkImportOptions struct {
	// Kind is the bulk file type to import.
	Kind string

	// BatchSize is the number of cards to insert per transaction.
	BatchSize int

	// DataDir is the directory to store downloaded bulk files.
	DataDir string

	// MaxAge is the maximum age of a bulk file before re-downloading.
	MaxAge time.Duration

	// Progress is an optional callback invoked after each batch with the
	// number of records imported so far.
	Progress func(imported int)

	// ForceDownload forces re-download even if file exists and is fresh.
	ForceDownload bool

	// KeepFile keeps the downloaded file after the import.
	KeepFile bool
}

// DefaultBulkImportOptions returns sensible default options.
func DefaultBulkImportOptions() BulkImportOptions {
	return BulkImportOptions{
		Kind:      OracleCards,
		BatchSize: 500,
		DataDir:   filepath.Join(os.TempDir(), "commander-analyzer", "bulk"),
		MaxAge:    24 * time.Hour,
		KeepFile:  true,
	}
}

// NewBulkImporter creates a new bulk importer.
func NewBulkImporter(source BulkSource, store RecordStore, options BulkImportOptions, log logrus.FieldLogger) *BulkImporter {
	defaults := DefaultBulkImportOptions()
	if options.Kind == "" {
		options.Kind = defaults.Kind
	}
	if options.BatchSize <= 0 {
		options.BatchSize = defaults.BatchSize
	}
	if options.DataDir == "" {
		options.DataDir = defaults.DataDir
	}
	if log == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		log = discard
	}

	return &BulkImporter{
		source:  source,
		store:   store,
		options: options,
		log:     log,
	}
}

// ImportStats contains statistics about the import process.
type ImportStats struct {
	TotalCards     int
	ImportedCards  int
	SkippedCards   int
	ErrorCards     int
	Duration       time.Duration
	BulkFileURL    string
	BulkFileSize   int64
	DownloadTime   time.Duration
	ProcessingTime time.Duration
}

// Import downloads the configured bulk file and stores every card record.
func (bi *BulkImporter) Import(ctx context.Context) (*ImportStats, error) {
	startTime := time.Now()
	stats := &ImportStats{}

	if err := os.MkdirAll(bi.options.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	bi.log.Info("Fetching bulk data information from Scryfall")
	list, err := bi.source.GetBulkData(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get bulk data info: %w", err)
	}

	bulk, ok := list.Find(bi.options.Kind)
	if !ok {
		return nil, fmt.Errorf("%s bulk data not found", bi.options.Kind)
	}
	stats.BulkFileURL = bulk.DownloadURI
	stats.BulkFileSize = bulk.Size

	bi.log.WithFields(logrus.Fields{
		"file":    bulk.Name,
		"size_mb": fmt.Sprintf("%.2f", float64(bulk.Size)/(1024*1024)),
	}).Info("Found bulk file")

	downloadStart := time.Now()
	filePath, err := bi.downloadBulkFile(ctx, bulk)
	if err != nil {
		return nil, fmt.Errorf("failed to download bulk file: %w", err)
	}
	if !bi.options.KeepFile {
		defer func() { _ = os.Remove(filePath) }()
	}
	stats.DownloadTime = time.Since(downloadStart)

	processStart := time.Now()
	if err := bi.processBulkFile(ctx, filePath, stats); err != nil {
		return nil, fmt.Errorf("failed to process bulk file: %w", err)
	}
	stats.ProcessingTime = time.Since(processStart)
	stats.Duration = time.Since(startTime)

	bi.log.WithFields(logrus.Fields{
		"total":    stats.TotalCards,
		"imported": stats.ImportedCards,
		"skipped":  stats.SkippedCards,
		"errors":   stats.ErrorCards,
		"duration": stats.Duration.Round(time.Millisecond),
	}).Info("Import complete")

	return stats, nil
}

// downloadBulkFile downloads the bulk file unless a fresh copy exists.
func (bi *BulkImporter) downloadBulkFile(ctx context.Context, bulk *scryfall.BulkData) (string, error) {
	filePath := filepath.Join(bi.options.DataDir, filepath.Base(bulk.DownloadURI))

	if !bi.options.ForceDownload {
		if info, err := os.Stat(filePath); err == nil {
			if age := time.Since(info.ModTime()); age < bi.options.MaxAge {
				bi.log.WithField("age", age.Round(time.Minute)).Info("Using existing bulk file")
				return filePath, nil
			}
		}
	}

	bi.log.WithField("uri", bulk.DownloadURI).Info("Downloading bulk file")
	body, err := bi.source.Download(ctx, bulk.DownloadURI)
	if err != nil {
		return "", err
	}
	defer func() { _ = body.Close() }()

	tmpFile, err := os.CreateTemp(bi.options.DataDir, "bulk-*.tmp")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	written, err := io.Copy(tmpFile, body)
	if closeErr := tmpFile.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	if err := os.Rename(tmpPath, filePath); err != nil {
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("failed to rename file: %w", err)
	}

	bi.log.WithField("size_mb", fmt.Sprintf("%.2f", float64(written)/(1024*1024))).Debug("Downloaded bulk file")
	return filePath, nil
}

// processBulkFile streams the JSON array in the bulk file and stores its
// records in batches.
func (bi *BulkImporter) processBulkFile(ctx context.Context, filePath string, stats *ImportStats) error {
	file, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	r, err := maybeGzip(bufio.NewReaderSize(file, 1<<20))
	if err != nil {
		return err
	}

	dec := json.NewDecoder(r)
	if tok, err := dec.Token(); err != nil {
		return fmt.Errorf("failed to read bulk file: %w", err)
	} else if delim, ok := tok.(json.Delim); !ok || delim != '[' {
		return fmt.Errorf("bulk file is not a JSON array")
	}

	batch := make([]*models.CardRecord, 0, bi.options.BatchSize)
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := bi.store.SaveCardRecords(ctx, batch); err != nil {
			return fmt.Errorf("failed to insert batch: %w", err)
		}
		stats.ImportedCards += len(batch)
		if bi.options.Progress != nil {
			bi.options.Progress(stats.ImportedCards)
		}
		bi.log.WithField("imported", stats.ImportedCards).Debug("Batch stored")
		batch = batch[:0]
		return nil
	}

	for dec.More() {
		if err := ctx.Err(); err != nil {
			return err
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("failed to decode card %d: %w", stats.TotalCards+1, err)
		}
		stats.TotalCards++

		rec, err := toRecord(raw)
		if err != nil {
			stats.ErrorCards++
			bi.log.WithField("index", stats.TotalCards).WithError(err).Debug("Skipping unreadable card")
			continue
		}
		if rec == nil {
			stats.SkippedCards++
			continue
		}

		batch = append(batch, rec)
		if len(batch) >= bi.options.BatchSize {
			if err := flush(); err != nil {
				return err
			}
		}
	}

	return flush()
}

// nonCardLayouts are bulk entries that never appear in a decklist.
var nonCardLayouts = map[string]bool{
	"token":              true,
	"double_faced_token": true,
	"emblem":             true,
	"art_series":         true,
	"vanguard":           true,
	"scheme":             true,
	"planar":             true,
}

// toRecord converts one bulk entry. It returns nil for entries that are
// not deck cards.
func toRecord(raw json.RawMessage) (*models.CardRecord, error) {
	var card scryfall.Card
	if err := json.Unmarshal(raw, &card); err != nil {
		return nil, err
	}
	if card.Name == "" {
		return nil, fmt.Errorf("card has no name")
	}
	if nonCardLayouts[card.Layout] {
		return nil, nil
	}

	return &models.CardRecord{
		Name:     card.Name,
		OracleID: card.OracleID,
		TypeLine: card.TypeLine,
		Data:     []byte(raw),
	}, nil
}

func maybeGzip(r *bufio.Reader) (io.Reader, error) {
	magic, err := r.Peek(2)
	if err != nil || magic[0] != 0x1f || magic[1] != 0x8b {
		return r, nil
	}
	gz, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to create gzip reader: %w", err)
	}
	return gz, nil
}
