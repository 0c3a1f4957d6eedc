package analysis

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ramonehamilton/commander-analyzer/internal/combo"
	"github.com/ramonehamilton/commander-analyzer/internal/deck"
	"github.com/ramonehamilton/commander-analyzer/internal/metrics"
	"github.com/ramonehamilton/commander-analyzer/internal/storage/models"
)

// ErrDeckNotFound is returned when a saved deck does not exist.
var ErrDeckNotFound = errors.New("deck not found")

// DeckBuilder builds decklists into decks.
type DeckBuilder interface {
	Build(ctx context.Context, list *deck.Decklist) (*deck.Deck, error)
}

// ComboLoader provides the combo table.
type ComboLoader interface {
	Load(ctx context.Context) ([]combo.Combo, error)
}

// DeckStore persists built decks.
type DeckStore interface {
	SaveDeck(ctx context.Context, deck *models.Deck, cards []*models.DeckCard) error
	GetDeck(ctx context.Context, id string) (*models.Deck, []*models.DeckCard, error)
	FindDeckByFingerprint(ctx context.Context, fingerprint string) (*models.Deck, error)
}

// Analyzer builds, classifies and saves decks.
type Analyzer struct {
	builder DeckBuilder
	combos  ComboLoader
	store   DeckStore
	log     logrus.FieldLogger
	metrics *metrics.Collector
}

// NewAnalyzer creates an analyzer. combos and store may be nil, in which
// case combo matching and persistence are skipped.
func NewAnalyzer(builder DeckBuilder, combos ComboLoader, store DeckStore, log logrus.FieldLogger) *Analyzer {
	if log == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		log = discard
	}
	return &Analyzer{builder: builder, combos: combos, store: store, log: log}
}

// WithMetrics makes the analyzer record build and classification timings
// into m.
func (a *Analyzer) WithMetrics(m *metrics.Collector) *Analyzer {
	a.metrics = m
	return a
}

// Analyze builds the decklist, classifies the deck and saves it. source
// records where the decklist came from, such as a file path. A decklist
// already saved under the same fingerprint keeps its deck ID.
func (a *Analyzer) Analyze(ctx context.Context, list *deck.Decklist, source string) (*Report, error) {
	return a.analyze(ctx, list, source, "")
}

func (a *Analyzer) analyze(ctx context.Context, list *deck.Decklist, source, id string) (report *Report, err error) {
	defer func() { a.metrics.ObserveAnalysis(err) }()

	start := time.Now()
	d, err := a.builder.Build(ctx, list)
	if err != nil {
		return nil, fmt.Errorf("failed to build deck %q: %w", list.Name, err)
	}
	a.metrics.ObserveBuild(start)

	if id != "" {
		d.ID = id
	}
	combos := a.loadCombos(ctx)

	start = time.Now()
	report = Classify(d, combos)
	a.metrics.ObserveClassify(start)

	if a.store != nil {
		if err := a.save(ctx, d, list, source, id != ""); err != nil {
			return nil, err
		}
		report.DeckID = d.ID
	}

	a.log.WithFields(logrus.Fields{
		"deck":      d.Name,
		"id":        d.ID,
		"size":      report.Size,
		"archetype": report.Primary,
		"combos":    len(report.Combos.Found),
	}).Info("Deck analyzed")

	return report, nil
}

// AnalyzeFile loads a decklist file and analyzes it.
func (a *Analyzer) AnalyzeFile(ctx context.Context, path string) (*Report, error) {
	list, err := deck.LoadFile(path)
	if err != nil {
		return nil, err
	}
	return a.Analyze(ctx, list, path)
}

// Reanalyze rebuilds a saved deck from its stored decklist.
func (a *Analyzer) Reanalyze(ctx context.Context, id string) (*Report, error) {
	if a.store == nil {
		return nil, ErrDeckNotFound
	}
	rec, rows, err := a.store.GetDeck(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load deck: %w", err)
	}
	if rec == nil {
		return nil, fmt.Errorf("%w: %s", ErrDeckNotFound, id)
	}
	return a.analyze(ctx, deck.FromRecord(rec, rows), rec.Source, rec.ID)
}

func (a *Analyzer) loadCombos(ctx context.Context) []combo.Combo {
	if a.combos == nil {
		return nil
	}
	combos, err := a.combos.Load(ctx)
	if err != nil {
		a.log.WithError(err).Warn("Combo table unavailable, skipping combo matching")
		return nil
	}
	return combos
}

func (a *Analyzer) save(ctx context.Context, d *deck.Deck, list *deck.Decklist, source string, pinned bool) error {
	if !pinned {
		existing, err := a.store.FindDeckByFingerprint(ctx, list.Fingerprint())
		if err != nil {
			return fmt.Errorf("failed to look up deck: %w", err)
		}
		if existing != nil {
			d.ID = existing.ID
		}
	}

	rec, rows := deck.ToRecord(d, list, source)
	if err := a.store.SaveDeck(ctx, rec, rows); err != nil {
		return fmt.Errorf("failed to save deck: %w", err)
	}
	return nil
}
