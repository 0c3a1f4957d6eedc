// Package cardlookup resolves card names to card records, trying the local
// card database before Scryfall.
package cardlookup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ramonehamilton/commander-analyzer/internal/cards"
	"github.com/ramonehamilton/commander-analyzer/internal/cards/scryfall"
	"github.com/ramonehamilton/commander-analyzer/internal/metrics"
	"github.com/ramonehamilton/commander-analyzer/internal/storage/models"
)

// ErrTransport marks a source that failed to answer. The chain treats it
// as a miss and moves on to the next source.
var ErrTransport = errors.New("card source unavailable")

// LocalStore is the local card database.
type LocalStore interface {
	FindCardRecord(ctx context.Context, name string) (*models.CardRecord, error)
	SaveCardRecords(ctx context.Context, recs []*models.CardRecord) error
}

// Remote is a remote card source such as the Scryfall client.
type Remote interface {
	GetCardNamed(ctx context.Context, name string) (*scryfall.Card, error)
	GetCardFuzzy(ctx context.Context, name string) (*scryfall.Card, error)
}

// Service provides card lookup with a local cache.
type Service struct {
	store   LocalStore
	remote  Remote
	fuzzy   bool
	log     logrus.FieldLogger
	metrics *metrics.Collector
}

// ServiceOptions configures the card lookup service.
type ServiceOptions struct {
	// FuzzyFallback retries a remote miss with a fuzzy name query.
	// Default: true
	FuzzyFallback bool

	// Logger receives lookup diagnostics. Default: discard.
	Logger logrus.FieldLogger

	// Metrics counts hits and misses per source. Optional.
	Metrics *metrics.Collector
}

// DefaultServiceOptions returns sensible defaults.
func DefaultServiceOptions() ServiceOptions {
	return ServiceOptions{FuzzyFallback: true}
}

// NewService creates a new card lookup service. Either source may be nil.
func NewService(store LocalStore, remote Remote, options ServiceOptions) *Service {
	log := options.Logger
	if log == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		log = discard
	}

	return &Service{
		store:   store,
		remote:  remote,
		fuzzy:   options.FuzzyFallback,
		log:     log,
		metrics: options.Metrics,
	}
}

// Lookup returns the record for name. Sources are tried in order: local
// database, remote exact name, remote fuzzy name. Remote hits are saved to
// the local database.
//
// The error wraps cards.ErrRecordNotFound when every source answered with
// a miss, or ErrTransport when at least one source failed and none hit.
func (s *Service) Lookup(ctx context.Context, name string) (*scryfall.Card, error) {
	start := time.Now()
	rec, local, err := s.lookup(ctx, name)

	result := metrics.LookupRemote
	switch {
	case errors.Is(err, ErrTransport):
		result = metrics.LookupError
	case err != nil:
		result = metrics.LookupMiss
	case local:
		result = metrics.LookupLocal
	}
	s.metrics.ObserveLookup(result, start)

	return rec, err
}

// lookup walks the source chain. local reports whether the hit came from
// the local database.
func (s *Service) lookup(ctx context.Context, name string) (rec *scryfall.Card, local bool, err error) {
	log := s.log.WithField("card", name)
	var transportErr error

	if s.store != nil {
		rec, err := s.lookupLocal(ctx, name)
		switch {
		case err != nil:
			transportErr = err
			log.WithError(err).Debug("Local card lookup failed")
		case rec != nil:
			log.Debug("Card found in local database")
			return rec, true, nil
		}
	}

	if s.remote == nil {
		return nil, false, s.miss(name, transportErr)
	}

	rec, err = s.lookupRemote(ctx, name, s.remote.GetCardNamed)
	if err != nil {
		transportErr = err
		log.WithError(err).Debug("Exact card lookup failed")
	}
	if rec == nil && s.fuzzy {
		fuzzyRec, err := s.lookupRemote(ctx, name, s.remote.GetCardFuzzy)
		if err != nil {
			transportErr = err
			log.WithError(err).Debug("Fuzzy card lookup failed")
		}
		rec = fuzzyRec
	}
	if rec == nil {
		return nil, false, s.miss(name, transportErr)
	}

	s.cache(ctx, rec)
	log.WithField("resolved", rec.Name).Debug("Card fetched from Scryfall")
	return rec, false, nil
}

// Card looks up name and builds it.
func (s *Service) Card(ctx context.Context, name string, commander bool) (*cards.Card, error) {
	rec, err := s.Lookup(ctx, name)
	if err != nil {
		return nil, err
	}
	return cards.FromScryfall(rec, commander)
}

func (s *Service) lookupLocal(ctx context.Context, name string) (*scryfall.Card, error) {
	row, err := s.store.FindCardRecord(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	if row == nil {
		return nil, nil
	}

	var rec scryfall.Card
	if err := json.Unmarshal(row.Data, &rec); err != nil {
		// A corrupt row is a miss; the remote answer will overwrite it.
		s.log.WithField("card", row.Name).WithError(err).Warn("Discarding unreadable card record")
		return nil, nil
	}
	if rec.NotFound() {
		return nil, nil
	}
	return &rec, nil
}

func (s *Service) lookupRemote(ctx context.Context, name string, fetch func(context.Context, string) (*scryfall.Card, error)) (*scryfall.Card, error) {
	rec, err := fetch(ctx, name)
	switch {
	case scryfall.IsNotFound(err):
		return nil, nil
	case err != nil:
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	case rec == nil || rec.NotFound():
		return nil, nil
	}
	return rec, nil
}

// cache stores a remote hit locally. Failures only cost a future lookup.
func (s *Service) cache(ctx context.Context, rec *scryfall.Card) {
	if s.store == nil {
		return
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return
	}
	row := &models.CardRecord{
		Name:      rec.Name,
		OracleID:  rec.OracleID,
		TypeLine:  rec.TypeLine,
		Data:      data,
		UpdatedAt: time.Now().UTC(),
	}
	if err := s.store.SaveCardRecords(ctx, []*models.CardRecord{row}); err != nil {
		s.log.WithField("card", rec.Name).WithError(err).Warn("Failed to cache card record")
	}
}

func (s *Service) miss(name string, transportErr error) error {
	if transportErr != nil {
		return fmt.Errorf("lookup %q: %w", name, transportErr)
	}
	return fmt.Errorf("lookup %q: %w", name, cards.ErrRecordNotFound)
}
