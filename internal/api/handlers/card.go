package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/ramonehamilton/commander-analyzer/internal/api/response"
	"github.com/ramonehamilton/commander-analyzer/internal/cardlookup"
	"github.com/ramonehamilton/commander-analyzer/internal/cards"
	"github.com/ramonehamilton/commander-analyzer/internal/deck"
	"github.com/ramonehamilton/commander-analyzer/internal/effects"
)

// CardSource resolves a card by name.
type CardSource interface {
	Card(ctx context.Context, name string, commander bool) (*cards.Card, error)
}

// CardHandler handles card-related API requests.
type CardHandler struct {
	source CardSource
}

// NewCardHandler creates a new CardHandler.
func NewCardHandler(source CardSource) *CardHandler {
	return &CardHandler{source: source}
}

// CardResponse is a built card with its effect categories.
type CardResponse struct {
	Card           *cards.Card        `json:"card"`
	Effects        []effects.Category `json:"effects"`
	CanBeCommander bool               `json:"can_be_commander"`
}

// GetCard looks up a card by name and classifies it.
func (h *CardHandler) GetCard(w http.ResponseWriter, r *http.Request) {
	name, err := url.PathUnescape(chi.URLParam(r, "name"))
	if err != nil || strings.TrimSpace(name) == "" {
		response.BadRequest(w, errors.New("card name is required"))
		return
	}

	card, err := h.source.Card(r.Context(), name, false)
	switch {
	case errors.Is(err, cards.ErrRecordNotFound):
		response.NotFound(w, err)
		return
	case errors.Is(err, cardlookup.ErrTransport):
		response.ServiceUnavailable(w, err)
		return
	case err != nil:
		response.InternalError(w, err)
		return
	}

	categories := effects.Classify(card)
	if categories == nil {
		categories = []effects.Category{}
	}

	response.Success(w, CardResponse{
		Card:           card,
		Effects:        categories,
		CanBeCommander: deck.CanBeCommander(card),
	})
}
