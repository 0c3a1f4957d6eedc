package combo

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"
)

// DefaultRefreshInterval is how long a cached combo table stays fresh.
const DefaultRefreshInterval = 24 * time.Hour

// Store caches the combo table between runs.
type Store interface {
	// ListCombos returns the cached rows and when they were fetched. A
	// zero time means nothing is cached.
	ListCombos(ctx context.Context) ([][]string, time.Time, error)

	// ReplaceCombos swaps the cached rows for rows.
	ReplaceCombos(ctx context.Context, rows [][]string, fetchedAt time.Time) error
}

// Source produces a fresh combo table.
type Source interface {
	Fetch(ctx context.Context) ([]Combo, error)
}

// Service serves the combo table from the cache, refreshing it from the
// source once it is older than the refresh interval.
type Service struct {
	store    Store
	source   Source
	interval time.Duration
	log      logrus.FieldLogger
	now      func() time.Time
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithRefreshInterval sets how long cached combos stay fresh.
func WithRefreshInterval(d time.Duration) ServiceOption {
	return func(s *Service) {
		if d > 0 {
			s.interval = d
		}
	}
}

// WithLogger sets the logger.
func WithLogger(log logrus.FieldLogger) ServiceOption {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// NewService creates a combo service. store may be nil, in which case every
// Load fetches from source.
func NewService(store Store, source Source, opts ...ServiceOption) *Service {
	discard := logrus.New()
	discard.SetOutput(io.Discard)

	s := &Service{
		store:    store,
		source:   source,
		interval: DefaultRefreshInterval,
		log:      discard,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load returns the combo table. A stale cache is refreshed; if the refresh
// fails the stale rows are returned with a warning.
func (s *Service) Load(ctx context.Context) ([]Combo, error) {
	if s.store == nil {
		return s.fetch(ctx)
	}

	rows, fetchedAt, err := s.store.ListCombos(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read cached combos: %w", err)
	}

	cached := FromRows(rows)
	if len(cached) > 0 && s.now().Sub(fetchedAt) < s.interval {
		s.log.WithField("combos", len(cached)).Debug("Using cached combo table")
		return cached, nil
	}

	fresh, err := s.Refresh(ctx)
	if err != nil {
		if len(cached) > 0 {
			s.log.WithError(err).Warn("Combo refresh failed, using stale cache")
			return cached, nil
		}
		return nil, err
	}
	return fresh, nil
}

// Refresh fetches the table from the source and replaces the cache.
func (s *Service) Refresh(ctx context.Context) ([]Combo, error) {
	combos, err := s.fetch(ctx)
	if err != nil {
		return nil, err
	}

	if s.store != nil {
		if err := s.store.ReplaceCombos(ctx, Rows(combos), s.now()); err != nil {
			return nil, fmt.Errorf("failed to cache combos: %w", err)
		}
	}

	s.log.WithField("combos", len(combos)).Info("Combo table refreshed")
	return combos, nil
}

func (s *Service) fetch(ctx context.Context) ([]Combo, error) {
	if s.source == nil {
		return nil, fmt.Errorf("no combo source configured")
	}
	combos, err := s.source.Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch combos: %w", err)
	}
	return combos, nil
}
