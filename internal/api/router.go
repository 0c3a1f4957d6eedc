package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ramonehamilton/commander-analyzer/internal/api/handlers"
	"github.com/ramonehamilton/commander-analyzer/internal/api/response"
	"github.com/ramonehamilton/commander-analyzer/internal/version"
)

// setupRoutes configures all API routes.
func (s *Server) setupRoutes() {
	s.router.Get("/health", s.healthCheck)

	s.router.Route("/api/v1", func(r chi.Router) {
		deckHandler := handlers.NewDeckHandler(s.analyzer, s.decks)
		r.Route("/decks", func(r chi.Router) {
			r.Get("/", deckHandler.GetDecks)
			r.Post("/analyze", deckHandler.AnalyzeDeck)
			r.Get("/{deckID}", deckHandler.GetDeck)
			r.Get("/{deckID}/analysis", deckHandler.GetDeckAnalysis)
			r.Delete("/{deckID}", deckHandler.DeleteDeck)
		})

		cardHandler := handlers.NewCardHandler(s.cards)
		r.Get("/cards/{name}", cardHandler.GetCard)
		r.Get("/effects", handlers.GetEffectCategories)

		comboHandler := handlers.NewComboHandler(s.combos)
		r.Post("/combos/refresh", comboHandler.RefreshCombos)

		r.Get("/metrics", handlers.NewMetricsHandler(s.metrics).GetMetrics)
	})
}

// healthCheck returns server health status.
func (s *Server) healthCheck(w http.ResponseWriter, _ *http.Request) {
	response.JSON(w, http.StatusOK, map[string]any{
		"status":  "healthy",
		"service": "commander-analyzer-api",
		"version": version.Version,
	})
}
