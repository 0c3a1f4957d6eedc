package deck

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ramonehamilton/commander-analyzer/internal/cards"
	"github.com/ramonehamilton/commander-analyzer/internal/cards/scryfall"
)

// DefaultWorkers is the number of parallel card lookups during a build.
const DefaultWorkers = 4

// ErrNoCardsResolved is returned when not a single decklist entry resolved.
var ErrNoCardsResolved = errors.New("no cards resolved")

// Source resolves a card name to its record.
type Source interface {
	Lookup(ctx context.Context, name string) (*scryfall.Card, error)
}

// Builder turns decklists into decks.
type Builder struct {
	source  Source
	workers int
	log     logrus.FieldLogger
}

// Option configures a Builder.
type Option func(*Builder)

// WithWorkers sets the number of parallel lookups.
func WithWorkers(n int) Option {
	return func(b *Builder) {
		if n > 0 {
			b.workers = n
		}
	}
}

// WithLogger sets the logger.
func WithLogger(log logrus.FieldLogger) Option {
	return func(b *Builder) {
		if log != nil {
			b.log = log
		}
	}
}

// NewBuilder creates a deck builder that resolves cards through source.
func NewBuilder(source Source, opts ...Option) *Builder {
	discard := logrus.New()
	discard.SetOutput(io.Discard)

	b := &Builder{source: source, workers: DefaultWorkers, log: discard}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

type result struct {
	entry Entry
	card  *cards.Card
	err   error
}

// Build resolves every decklist entry and assembles the deck. Entries that
// fail to resolve are skipped and listed in the report; the build fails
// only when the decklist is empty or nothing resolved.
func (b *Builder) Build(ctx context.Context, list *Decklist) (*Deck, error) {
	if list == nil || len(list.Entries) == 0 {
		return nil, ErrEmptyDecklist
	}

	log := b.log.WithField("deck", list.Name)
	results := make(chan result)

	var wg sync.WaitGroup
	for _, part := range partition(list.Entries, b.workers) {
		wg.Add(1)
		go func(entries []Entry) {
			defer wg.Done()
			for _, e := range entries {
				card, err := b.resolve(ctx, e)
				select {
				case results <- result{entry: e, card: card, err: err}:
				case <-ctx.Done():
					return
				}
			}
		}(part)
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	d := &Deck{
		ID:         uuid.NewString(),
		Name:       list.Name,
		Commanders: []*cards.Card{},
		Library:    []*cards.Card{},
		Report: BuildReport{
			Requested:  list.Requested(),
			Unresolved: []string{},
		},
	}

	for r := range results {
		if r.err != nil {
			log.WithFields(logrus.Fields{
				"card": r.entry.Name,
				"line": r.entry.Line,
			}).WithError(r.err).Warn("Skipping card")
			d.Report.Unresolved = append(d.Report.Unresolved, r.entry.Name)
			continue
		}

		d.Report.Resolved += r.entry.Quantity
		for i := 0; i < r.entry.Quantity; i++ {
			if r.card.Commander {
				d.Commanders = append(d.Commanders, r.card)
			} else {
				d.Library = append(d.Library, r.card)
			}
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if d.Report.Resolved == 0 {
		return nil, fmt.Errorf("%w: %d entries requested", ErrNoCardsResolved, len(list.Entries))
	}

	sort.Strings(d.Report.Unresolved)
	sortByName(d.Commanders)
	sortByName(d.Library)

	for _, inv := range list.Invalid {
		d.Report.InvalidLines = append(d.Report.InvalidLines, inv.Error())
	}

	if err := d.CompleteCommander(); err != nil {
		var cmdErr *CommanderError
		if errors.As(err, &cmdErr) {
			d.Report.CommanderCandidates = cmdErr.Candidates
		}
		log.WithError(err).Warn("No commander set")
	}
	d.Validate()

	log.WithFields(logrus.Fields{
		"requested": d.Report.Requested,
		"resolved":  d.Report.Resolved,
		"commander": len(d.Commanders),
	}).Info("Deck built")

	return d, nil
}

func (b *Builder) resolve(ctx context.Context, e Entry) (*cards.Card, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rec, err := b.source.Lookup(ctx, e.Name)
	if err != nil {
		return nil, err
	}
	return cards.FromScryfall(rec, e.Commander)
}

// partition splits entries into at most n contiguous, non-empty parts.
func partition(entries []Entry, n int) [][]Entry {
	if n > len(entries) {
		n = len(entries)
	}
	parts := make([][]Entry, 0, n)
	for i := 0; i < n; i++ {
		lo, hi := i*len(entries)/n, (i+1)*len(entries)/n
		if lo < hi {
			parts = append(parts, entries[lo:hi])
		}
	}
	return parts
}
