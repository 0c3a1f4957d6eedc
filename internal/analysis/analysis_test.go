package analysis

import (
	"context"
	"errors"
	"slices"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ramonehamilton/commander-analyzer/internal/cards"
	"github.com/ramonehamilton/commander-analyzer/internal/cards/scryfall"
	"github.com/ramonehamilton/commander-analyzer/internal/combo"
	"github.com/ramonehamilton/commander-analyzer/internal/deck"
	"github.com/ramonehamilton/commander-analyzer/internal/effects"
	"github.com/ramonehamilton/commander-analyzer/internal/metrics"
	"github.com/ramonehamilton/commander-analyzer/internal/storage/models"
)

var records = []*scryfall.Card{
	{Name: "Atraxa, Praetors' Voice", ManaCost: "{G}{W}{U}{B}", TypeLine: "Legendary Creature — Phyrexian Angel Horror", OracleText: "Flying, vigilance, deathtouch, lifelink\nAt the beginning of your end step, proliferate.", Power: "4", Toughness: "4"},
	{Name: "Sol Ring", ManaCost: "{1}", TypeLine: "Artifact", OracleText: "{T}: Add {C}{C}."},
	{Name: "Llanowar Elves", ManaCost: "{G}", TypeLine: "Creature — Elf Druid", OracleText: "{T}: Add {G}.", Power: "1", Toughness: "1"},
	{Name: "Swords to Plowshares", ManaCost: "{W}", TypeLine: "Instant", OracleText: "Exile target creature. Its controller gains life equal to its power."},
	{Name: "Demonic Tutor", ManaCost: "{1}{B}", TypeLine: "Sorcery", OracleText: "Search your library for a card, put that card into your hand, then shuffle."},
	{Name: "Forest", TypeLine: "Basic Land — Forest", OracleText: "({T}: Add {G}.)"},
}

type fakeSource struct{}

func (fakeSource) Lookup(_ context.Context, name string) (*scryfall.Card, error) {
	for _, r := range records {
		if r.Name == name {
			return r, nil
		}
	}
	return nil, cards.ErrRecordNotFound
}

func decklist(t testing.TB) *deck.Decklist {
	t.Helper()
	list, err := deck.ParseLines("atraxa", []string{
		"1 Atraxa, Praetors' Voice *CMDR*",
		"1 Sol Ring",
		"1 Llanowar Elves",
		"1 Swords to Plowshares",
		"1 Demonic Tutor",
		"3 Forest",
	})
	require.NoError(t, err)
	return list
}

func buildDeck(t testing.TB) *deck.Deck {
	t.Helper()
	d, err := deck.NewBuilder(fakeSource{}).Build(context.Background(), decklist(t))
	require.NoError(t, err)
	return d
}

var testCombos = []combo.Combo{
	{Pieces: []string{"Atraxa, Praetors' Voice", "Sol Ring"}},
	{Pieces: []string{"Sol Ring", "Black Lotus"}},
	{Pieces: []string{"Thassa's Oracle", "Demonic Consultation"}},
}

func TestCardTypes(t *testing.T) {
	d := buildDeck(t)
	got := CardTypes(d.Library)

	want := TypeBuckets{
		Creatures:     []string{"Llanowar Elves"},
		Enchantments:  []string{},
		Artifacts:     []string{"Sol Ring"},
		Lands:         []string{"Forest", "Forest", "Forest"},
		Planeswalkers: []string{},
		Instants:      []string{"Swords to Plowshares"},
		Sorceries:     []string{"Demonic Tutor"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("CardTypes() mismatch (-want +got):\n%s", diff)
	}
}

func TestClassify(t *testing.T) {
	d := buildDeck(t)
	r := Classify(d, testCombos)

	assert.Equal(t, "atraxa", r.Deck)
	assert.Equal(t, []string{"Atraxa, Praetors' Voice"}, r.Commanders)
	assert.Equal(t, 8, r.Size)
	assert.Equal(t, 8, r.Build.Resolved)

	assert.Contains(t, r.Effects[effects.Removal], "Swords to Plowshares")
	assert.Contains(t, r.Effects[effects.Tutor], "Demonic Tutor")
	assert.Equal(t, len(r.Effects[effects.Removal]), r.EffectCounts[effects.Removal])

	require.Len(t, r.Combos.Found, 1)
	assert.True(t, r.Combos.Found[0].Commander)
	require.Len(t, r.Combos.NearMisses, 1)
	assert.Equal(t, "Black Lotus", r.Combos.NearMisses[0].Missing)

	require.NotEmpty(t, r.Tutors)
	for _, link := range r.Tutors {
		targets := link.Targets()
		if slices.Contains(targets, link.Tutor) {
			t.Errorf("tutor %q targets itself", link.Tutor)
		}
	}

	assert.Greater(t, r.Mana.AverageManaValue, 0.0)
}

func TestClassify_Idempotent(t *testing.T) {
	d := buildDeck(t)

	first := Classify(d, testCombos)
	second := Classify(d, testCombos)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("Classify() not idempotent (-first +second):\n%s", diff)
	}
}

func TestClassify_NoCombos(t *testing.T) {
	r := Classify(buildDeck(t), nil)
	assert.Empty(t, r.Combos.Found)
	assert.NotNil(t, r.Combos.Found)
}

type memStore struct {
	mu    sync.Mutex
	decks map[string]*models.Deck
	cards map[string][]*models.DeckCard
}

func newMemStore() *memStore {
	return &memStore{decks: map[string]*models.Deck{}, cards: map[string][]*models.DeckCard{}}
}

func (s *memStore) SaveDeck(_ context.Context, d *models.Deck, rows []*models.DeckCard) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.decks[d.ID] = d
	s.cards[d.ID] = rows
	return nil
}

func (s *memStore) GetDeck(_ context.Context, id string) (*models.Deck, []*models.DeckCard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.decks[id], s.cards[id], nil
}

func (s *memStore) FindDeckByFingerprint(_ context.Context, fp string) (*models.Deck, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, d := range s.decks {
		if d.Fingerprint == fp {
			return d, nil
		}
	}
	return nil, nil
}

type comboLoader struct {
	combos []combo.Combo
	err    error
}

func (l comboLoader) Load(context.Context) ([]combo.Combo, error) { return l.combos, l.err }

func TestAnalyzer_Analyze(t *testing.T) {
	store := newMemStore()
	a := NewAnalyzer(deck.NewBuilder(fakeSource{}), comboLoader{combos: testCombos}, store, nil)
	ctx := context.Background()

	first, err := a.Analyze(ctx, decklist(t), "decks/atraxa.txt")
	require.NoError(t, err)
	require.NotEmpty(t, first.DeckID)
	assert.Len(t, first.Combos.Found, 1)

	saved, rows, err := store.GetDeck(ctx, first.DeckID)
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, "decks/atraxa.txt", saved.Source)
	assert.NotEmpty(t, rows)

	second, err := a.Analyze(ctx, decklist(t), "decks/atraxa.txt")
	require.NoError(t, err)
	assert.Equal(t, first.DeckID, second.DeckID, "same decklist should keep its deck ID")
	assert.Len(t, store.decks, 1)
}

func TestAnalyzer_Reanalyze(t *testing.T) {
	store := newMemStore()
	a := NewAnalyzer(deck.NewBuilder(fakeSource{}), nil, store, nil)
	ctx := context.Background()

	first, err := a.Analyze(ctx, decklist(t), "decks/atraxa.txt")
	require.NoError(t, err)

	again, err := a.Reanalyze(ctx, first.DeckID)
	require.NoError(t, err)
	assert.Equal(t, first.DeckID, again.DeckID)
	assert.Equal(t, first.Size, again.Size)
	assert.Equal(t, first.Commanders, again.Commanders)

	_, err = a.Reanalyze(ctx, "missing")
	assert.ErrorIs(t, err, ErrDeckNotFound)
}

func TestAnalyzer_ComboFailureIsNotFatal(t *testing.T) {
	a := NewAnalyzer(deck.NewBuilder(fakeSource{}), comboLoader{err: errors.New("sheet unavailable")}, nil, nil)

	r, err := a.Analyze(context.Background(), decklist(t), "")
	require.NoError(t, err)
	assert.Empty(t, r.Combos.Found)
}

func TestAnalyzer_BuildError(t *testing.T) {
	a := NewAnalyzer(deck.NewBuilder(fakeSource{}), nil, nil, nil)

	list, err := deck.ParseText("unknown", strings.NewReader("1 Nothing Real\n"))
	require.NoError(t, err)

	_, err = a.Analyze(context.Background(), list, "")
	assert.ErrorIs(t, err, deck.ErrNoCardsResolved)
}

func TestAnalyzer_Metrics(t *testing.T) {
	m := metrics.New()
	a := NewAnalyzer(deck.NewBuilder(fakeSource{}), nil, nil, nil).WithMetrics(m)
	ctx := context.Background()

	_, err := a.Analyze(ctx, decklist(t), "")
	require.NoError(t, err)

	list, err := deck.ParseText("unknown", strings.NewReader("1 Nothing Real\n"))
	require.NoError(t, err)
	_, err = a.Analyze(ctx, list, "")
	require.Error(t, err)

	snap := m.Snapshot()
	assert.Equal(t, uint64(1), snap.DecksAnalyzed)
	assert.Equal(t, uint64(1), snap.AnalyzeErrors)
	assert.Equal(t, 1, snap.BuildLatency.Count)
	assert.Equal(t, 1, snap.ClassifyLatency.Count)
}
