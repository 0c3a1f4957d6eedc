package handlers

import (
	"net/http"

	"github.com/ramonehamilton/commander-analyzer/internal/api/response"
	"github.com/ramonehamilton/commander-analyzer/internal/effects"
)

// GetEffectCategories lists the effect categories in report order.
func GetEffectCategories(w http.ResponseWriter, _ *http.Request) {
	response.Success(w, map[string]any{
		"categories": effects.Categories(),
	})
}
