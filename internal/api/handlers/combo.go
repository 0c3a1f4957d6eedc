package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/ramonehamilton/commander-analyzer/internal/api/response"
	"github.com/ramonehamilton/commander-analyzer/internal/combo"
)

// ComboRefresher refetches the combo table.
type ComboRefresher interface {
	Refresh(ctx context.Context) ([]combo.Combo, error)
}

// ComboHandler handles combo table requests.
type ComboHandler struct {
	combos ComboRefresher
}

// NewComboHandler creates a new ComboHandler. combos may be nil when the
// combo table is disabled.
func NewComboHandler(combos ComboRefresher) *ComboHandler {
	return &ComboHandler{combos: combos}
}

// RefreshResponse reports the size of the refreshed table.
type RefreshResponse struct {
	Combos int `json:"combos"`
}

// RefreshCombos refetches the combo table and replaces the cache.
func (h *ComboHandler) RefreshCombos(w http.ResponseWriter, r *http.Request) {
	if h.combos == nil {
		response.ServiceUnavailable(w, errors.New("combo table is not configured"))
		return
	}

	combos, err := h.combos.Refresh(r.Context())
	if err != nil {
		response.Error(w, http.StatusBadGateway, err)
		return
	}

	response.Success(w, RefreshResponse{Combos: len(combos)})
}
