package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/ramonehamilton/commander-analyzer/internal/analysis"
	"github.com/ramonehamilton/commander-analyzer/internal/api/response"
	"github.com/ramonehamilton/commander-analyzer/internal/deck"
	"github.com/ramonehamilton/commander-analyzer/internal/storage/models"
)

// DeckAnalyzer builds and classifies decklists.
type DeckAnalyzer interface {
	Analyze(ctx context.Context, list *deck.Decklist, source string) (*analysis.Report, error)
	Reanalyze(ctx context.Context, id string) (*analysis.Report, error)
}

// DeckStore reads saved decks.
type DeckStore interface {
	ListDecks(ctx context.Context) ([]*models.Deck, error)
	GetDeck(ctx context.Context, id string) (*models.Deck, []*models.DeckCard, error)
	DeleteDeck(ctx context.Context, id string) error
}

// DeckHandler handles deck-related API requests.
type DeckHandler struct {
	analyzer DeckAnalyzer
	store    DeckStore
}

// NewDeckHandler creates a new DeckHandler.
func NewDeckHandler(analyzer DeckAnalyzer, store DeckStore) *DeckHandler {
	return &DeckHandler{analyzer: analyzer, store: store}
}

// AnalyzeRequest carries a decklist to analyze. Decklist is plain text,
// one "<quantity> <name>" line per entry, unless Format is "yaml".
type AnalyzeRequest struct {
	Name     string `json:"name"`
	Decklist string `json:"decklist"`
	Format   string `json:"format,omitempty"`
}

// AnalyzeDeck builds, classifies and saves a decklist.
func (h *DeckHandler) AnalyzeDeck(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if err := response.Decode(w, r, &req); err != nil {
		response.BadRequest(w, err)
		return
	}
	if strings.TrimSpace(req.Decklist) == "" {
		response.BadRequest(w, errors.New("decklist is required"))
		return
	}

	list, err := parseDecklist(req)
	if err != nil {
		response.BadRequest(w, err)
		return
	}

	report, err := h.analyzer.Analyze(r.Context(), list, "api")
	switch {
	case errors.Is(err, deck.ErrNoCardsResolved), errors.Is(err, deck.ErrEmptyDecklist):
		response.Unprocessable(w, err)
		return
	case err != nil:
		response.InternalError(w, err)
		return
	}

	response.Success(w, report)
}

func parseDecklist(req AnalyzeRequest) (*deck.Decklist, error) {
	name := req.Name
	if name == "" {
		name = "untitled"
	}

	switch strings.ToLower(req.Format) {
	case "", "text", "txt":
		return deck.ParseText(name, strings.NewReader(req.Decklist))
	case "yaml", "yml":
		list, err := deck.ParseYAML(strings.NewReader(req.Decklist))
		if list != nil && list.Name == "" {
			list.Name = name
		}
		return list, err
	default:
		return nil, errors.New("format must be text or yaml")
	}
}

// GetDecks returns one page of saved decks, newest first.
func (h *DeckHandler) GetDecks(w http.ResponseWriter, r *http.Request) {
	page := queryInt(r, "page", 1)
	pageSize := queryInt(r, "page_size", 50)

	decks, err := h.store.ListDecks(r.Context())
	if err != nil {
		response.InternalError(w, err)
		return
	}

	response.Page(w, decks, page, pageSize)
}

// DeckWithCards is a saved deck and its decklist.
type DeckWithCards struct {
	Deck  *models.Deck       `json:"deck"`
	Cards []*models.DeckCard `json:"cards"`
}

// GetDeck returns a saved deck by ID.
func (h *DeckHandler) GetDeck(w http.ResponseWriter, r *http.Request) {
	deckID := chi.URLParam(r, "deckID")

	rec, cards, err := h.store.GetDeck(r.Context(), deckID)
	if err != nil {
		response.InternalError(w, err)
		return
	}
	if rec == nil {
		response.NotFound(w, errors.New("deck not found"))
		return
	}

	response.Success(w, DeckWithCards{Deck: rec, Cards: cards})
}

// GetDeckAnalysis rebuilds and classifies a saved deck.
func (h *DeckHandler) GetDeckAnalysis(w http.ResponseWriter, r *http.Request) {
	deckID := chi.URLParam(r, "deckID")

	report, err := h.analyzer.Reanalyze(r.Context(), deckID)
	switch {
	case errors.Is(err, analysis.ErrDeckNotFound):
		response.NotFound(w, err)
		return
	case errors.Is(err, deck.ErrNoCardsResolved):
		response.Unprocessable(w, err)
		return
	case err != nil:
		response.InternalError(w, err)
		return
	}

	response.Success(w, report)
}

// DeleteDeck removes a saved deck.
func (h *DeckHandler) DeleteDeck(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteDeck(r.Context(), chi.URLParam(r, "deckID")); err != nil {
		response.InternalError(w, err)
		return
	}
	response.NoContent(w)
}

func queryInt(r *http.Request, key string, fallback int) int {
	v, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil || v < 1 {
		return fallback
	}
	return v
}
